package model

import (
	"time"

	"github.com/google/uuid"
)

type Board struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `gorm:"not null"`
	Description string
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner   User   `gorm:"foreignKey:OwnerID"`
	Members []User `gorm:"many2many:board_members"`
}

// HasMember reports whether the user belongs to the board. The owner
// counts as a member even without a board_members row.
func (b *Board) HasMember(userID uuid.UUID) bool {
	if b.OwnerID == userID {
		return true
	}
	for _, m := range b.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
