package service

import (
	"context"

	"github.com/google/uuid"

	"taskboard/internal/model"
)

// Store interfaces abstract the persistence layer. The repository
// package provides the GORM implementations.

type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}

type BoardStore interface {
	Create(ctx context.Context, board *model.Board) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Board, error)
	GetForUser(ctx context.Context, userID uuid.UUID) ([]model.Board, error)
	Update(ctx context.Context, board *model.Board) error
	UpdateWithMembers(ctx context.Context, board *model.Board, members []model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	GetByBoardID(ctx context.Context, boardID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	ListByReviewer(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	CountByBoard(ctx context.Context, boardID uuid.UUID) (int64, error)
	CountByBoardAndStatus(ctx context.Context, boardID uuid.UUID, status string) (int64, error)
	CountByBoardAndPriority(ctx context.Context, boardID uuid.UUID, priority string) (int64, error)
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]model.Comment, error)
	CountByTask(ctx context.Context, taskID uuid.UUID) (int64, error)
	CountByTasks(ctx context.Context, taskIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
