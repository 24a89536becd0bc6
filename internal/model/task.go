package model

import (
	"time"

	"github.com/google/uuid"
)

// Task workflow statuses. The status is a flat enum: any member may set
// any value, there is no enforced transition graph.
const (
	StatusToDo       = "to-do"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusDone       = "done"
)

// Task priority levels
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusToDo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"not null"`
	Description string
	Status      string     `gorm:"not null;default:'to-do';check:status IN ('to-do', 'in-progress', 'review', 'done')"`
	Priority    string     `gorm:"not null;default:'medium';check:priority IN ('low', 'medium', 'high')"`
	AssigneeID  *uuid.UUID `gorm:"type:uuid"`
	ReviewerID  *uuid.UUID `gorm:"type:uuid"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Board    Board `gorm:"foreignKey:BoardID"`
	Assignee *User `gorm:"foreignKey:AssigneeID"`
	Reviewer *User `gorm:"foreignKey:ReviewerID"`
	Creator  User  `gorm:"foreignKey:CreatedBy"`
}
