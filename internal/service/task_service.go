package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskboard/internal/authz"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

type TaskService struct {
	tasks    TaskStore
	boards   BoardStore
	comments CommentStore
}

func NewTaskService(tasks TaskStore, boards BoardStore, comments CommentStore) *TaskService {
	return &TaskService{
		tasks:    tasks,
		boards:   boards,
		comments: comments,
	}
}

// TaskWithCount pairs a task with its live comment count. The count is
// computed from the comments table on every read, never stored.
type TaskWithCount struct {
	Task          model.Task
	CommentsCount int64
}

// CreateTaskInput carries the fields accepted at task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	AssigneeID  *uuid.UUID
	ReviewerID  *uuid.UUID
	DueDate     *time.Time
}

// TaskPatch enumerates the updatable task fields. Nil means unchanged;
// clearing assignee, reviewer or due date goes through the dedicated
// Unassign, ClearReviewer and SetDueDate operations.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssigneeID  *uuid.UUID
	ReviewerID  *uuid.UUID
	DueDate     *time.Time
}

// Create creates a task on the board. The actor must be a member; the
// actor becomes the immutable creator.
func (s *TaskService) Create(ctx context.Context, actor, boardID uuid.UUID, in CreateTaskInput) (*TaskWithCount, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}
	if !authz.Allowed(actor, authz.ActionCreate, authz.Task(board, nil)) {
		return nil, ErrForbidden
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, validationErr("title", "must not be empty")
	}
	status := in.Status
	if status == "" {
		status = model.StatusToDo
	}
	if !model.ValidStatus(status) {
		return nil, validationErr("status", "must be one of: to-do, in-progress, review, done")
	}
	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, validationErr("priority", "must be one of: low, medium, high")
	}
	if err := validateBoardMember(board, in.AssigneeID, "assignee_id"); err != nil {
		return nil, err
	}
	if err := validateBoardMember(board, in.ReviewerID, "reviewer_id"); err != nil {
		return nil, err
	}

	task := &model.Task{
		BoardID:     boardID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		AssigneeID:  in.AssigneeID,
		ReviewerID:  in.ReviewerID,
		CreatedBy:   actor,
		DueDate:     in.DueDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return s.reload(ctx, task.ID)
}

// Get returns a task the actor may read, with its comment count.
func (s *TaskService) Get(ctx context.Context, actor, taskID uuid.UUID) (*TaskWithCount, error) {
	task, board, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionRead, authz.Task(board, task)) {
		return nil, ErrForbidden
	}
	count, err := s.comments.CountByTask(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	return &TaskWithCount{Task: *task, CommentsCount: count}, nil
}

// ListByBoard returns a board's tasks with their comment counts.
func (s *TaskService) ListByBoard(ctx context.Context, actor, boardID uuid.UUID) ([]TaskWithCount, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}
	if !authz.Allowed(actor, authz.ActionRead, authz.Board(board)) {
		return nil, ErrForbidden
	}

	tasks, err := s.tasks.GetByBoardID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, tasks)
}

// Update applies a partial update. Assignee and reviewer changes are
// re-validated against the board's member set.
func (s *TaskService) Update(ctx context.Context, actor, taskID uuid.UUID, patch TaskPatch) (*TaskWithCount, error) {
	task, board, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionUpdate, authz.Task(board, task)) {
		return nil, ErrForbidden
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, validationErr("title", "must not be empty")
		}
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Status != nil {
		if !model.ValidStatus(*patch.Status) {
			return nil, validationErr("status", "must be one of: to-do, in-progress, review, done")
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !model.ValidPriority(*patch.Priority) {
			return nil, validationErr("priority", "must be one of: low, medium, high")
		}
		task.Priority = *patch.Priority
	}
	if patch.AssigneeID != nil {
		if err := validateBoardMember(board, patch.AssigneeID, "assignee_id"); err != nil {
			return nil, err
		}
		task.AssigneeID = patch.AssigneeID
	}
	if patch.ReviewerID != nil {
		if err := validateBoardMember(board, patch.ReviewerID, "reviewer_id"); err != nil {
			return nil, err
		}
		task.ReviewerID = patch.ReviewerID
	}
	if patch.DueDate != nil {
		task.DueDate = patch.DueDate
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.reload(ctx, task.ID)
}

// Delete removes a task and its comments. Allowed for the task's creator
// and the board's owner only.
func (s *TaskService) Delete(ctx context.Context, actor, taskID uuid.UUID) error {
	task, board, err := s.load(ctx, taskID)
	if err != nil {
		return err
	}
	if !authz.Allowed(actor, authz.ActionDelete, authz.Task(board, task)) {
		return ErrForbidden
	}
	return s.tasks.Delete(ctx, taskID)
}

// ListAssignedTo returns tasks assigned to the actor across all boards,
// including boards the actor has since left.
func (s *TaskService) ListAssignedTo(ctx context.Context, actor uuid.UUID) ([]TaskWithCount, error) {
	tasks, err := s.tasks.ListByAssignee(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, tasks)
}

// ListReviewing returns tasks the actor reviews across all boards.
func (s *TaskService) ListReviewing(ctx context.Context, actor uuid.UUID) ([]TaskWithCount, error) {
	tasks, err := s.tasks.ListByReviewer(ctx, actor)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, tasks)
}

// Assign sets the task's assignee. The user must be a board member.
func (s *TaskService) Assign(ctx context.Context, actor, taskID, userID uuid.UUID) (*TaskWithCount, error) {
	return s.setUserField(ctx, actor, taskID, &userID, "assignee_id")
}

// Unassign clears the task's assignee.
func (s *TaskService) Unassign(ctx context.Context, actor, taskID uuid.UUID) (*TaskWithCount, error) {
	return s.setUserField(ctx, actor, taskID, nil, "assignee_id")
}

// SetReviewer sets the task's reviewer. The user must be a board member.
func (s *TaskService) SetReviewer(ctx context.Context, actor, taskID, userID uuid.UUID) (*TaskWithCount, error) {
	return s.setUserField(ctx, actor, taskID, &userID, "reviewer_id")
}

// ClearReviewer clears the task's reviewer.
func (s *TaskService) ClearReviewer(ctx context.Context, actor, taskID uuid.UUID) (*TaskWithCount, error) {
	return s.setUserField(ctx, actor, taskID, nil, "reviewer_id")
}

// SetDueDate sets or clears the task's due date.
func (s *TaskService) SetDueDate(ctx context.Context, actor, taskID uuid.UUID, due *time.Time) (*TaskWithCount, error) {
	task, board, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionUpdate, authz.Task(board, task)) {
		return nil, ErrForbidden
	}
	task.DueDate = due
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.reload(ctx, task.ID)
}

func (s *TaskService) setUserField(ctx context.Context, actor, taskID uuid.UUID, userID *uuid.UUID, field string) (*TaskWithCount, error) {
	task, board, err := s.load(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !authz.Allowed(actor, authz.ActionUpdate, authz.Task(board, task)) {
		return nil, ErrForbidden
	}
	if err := validateBoardMember(board, userID, field); err != nil {
		return nil, err
	}

	switch field {
	case "assignee_id":
		task.AssigneeID = userID
	case "reviewer_id":
		task.ReviewerID = userID
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.reload(ctx, task.ID)
}

// load fetches a task together with its board.
func (s *TaskService) load(ctx context.Context, taskID uuid.UUID) (*model.Task, *model.Board, error) {
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

// reload re-reads a task after a mutation so associations and the
// comment count reflect the stored state.
func (s *TaskService) reload(ctx context.Context, taskID uuid.UUID) (*TaskWithCount, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	count, err := s.comments.CountByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &TaskWithCount{Task: *task, CommentsCount: count}, nil
}

func (s *TaskService) withCounts(ctx context.Context, tasks []model.Task) ([]TaskWithCount, error) {
	ids := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	counts, err := s.comments.CountByTasks(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]TaskWithCount, len(tasks))
	for i, t := range tasks {
		result[i] = TaskWithCount{Task: t, CommentsCount: counts[t.ID]}
	}
	return result, nil
}

// validateBoardMember checks that a referenced user belongs to the board.
func validateBoardMember(board *model.Board, userID *uuid.UUID, field string) error {
	if userID == nil {
		return nil
	}
	if !board.HasMember(*userID) {
		return validationErr(field, "user must be a member of the board")
	}
	return nil
}
