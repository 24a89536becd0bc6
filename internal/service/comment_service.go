package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/authz"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type CommentService struct {
	comments CommentStore
	tasks    TaskStore
	boards   BoardStore
	users    UserStore
}

func NewCommentService(comments CommentStore, tasks TaskStore, boards BoardStore, users UserStore) *CommentService {
	return &CommentService{
		comments: comments,
		tasks:    tasks,
		boards:   boards,
		users:    users,
	}
}

// Create adds a comment to the task. The actor must be a member of the
// task's board and becomes the immutable author.
func (s *CommentService) Create(ctx context.Context, actor, taskID uuid.UUID, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, validationErr("content", "must not be empty")
	}

	task, board, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionCreate, authz.Comment(board, task, nil)) {
		return nil, ErrForbidden
	}

	comment := &model.Comment{
		TaskID:   taskID,
		AuthorID: actor,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, actor)
	if err != nil {
		return nil, err
	}
	if author != nil {
		comment.Author = *author
	}
	return comment, nil
}

// List returns the task's comments in chronological order with authors
// attached.
func (s *CommentService) List(ctx context.Context, actor, taskID uuid.UUID) ([]model.Comment, error) {
	task, board, err := s.loadTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionRead, authz.Comment(board, task, nil)) {
		return nil, ErrForbidden
	}
	return s.comments.ListByTask(ctx, taskID)
}

// Delete removes a comment. Only the author may delete it; the board
// owner has no override.
func (s *CommentService) Delete(ctx context.Context, actor, commentID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !authz.Allowed(actor, authz.ActionDelete, authz.Comment(nil, nil, comment)) {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) loadTask(ctx context.Context, taskID uuid.UUID) (*model.Task, *model.Board, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	board, err := s.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		return nil, nil, err
	}
	if board == nil {
		return nil, nil, ErrNotFound
	}
	return task, board, nil
}
