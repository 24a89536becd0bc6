package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"taskboard/internal/authz"
	"taskboard/internal/model"
)

type BoardService struct {
	boards BoardStore
	tasks  TaskStore
	users  UserStore
}

func NewBoardService(boards BoardStore, tasks TaskStore, users UserStore) *BoardService {
	return &BoardService{
		boards: boards,
		tasks:  tasks,
		users:  users,
	}
}

// BoardPatch enumerates the updatable board fields. Nil means unchanged.
type BoardPatch struct {
	Title       *string
	Description *string
	MemberIDs   *[]uuid.UUID
}

// BoardSummary pairs a board with the aggregate counts shown in listings.
type BoardSummary struct {
	Board              model.Board
	MemberCount        int
	TicketCount        int64
	TasksToDoCount     int64
	TasksHighPrioCount int64
}

// Create creates a board owned by the actor. The actor is always added
// to the member set; additional member ids must resolve to existing users.
func (s *BoardService) Create(ctx context.Context, actor uuid.UUID, title, description string, memberIDs []uuid.UUID) (*model.Board, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validationErr("title", "must not be empty")
	}

	members, err := s.resolveMembers(ctx, memberIDs)
	if err != nil {
		return nil, err
	}

	hasActor := false
	for _, m := range members {
		if m.ID == actor {
			hasActor = true
			break
		}
	}
	if !hasActor {
		owner, err := s.users.GetByID(ctx, actor)
		if err != nil {
			return nil, err
		}
		if owner == nil {
			return nil, ErrNotFound
		}
		members = append(members, *owner)
	}

	board := &model.Board{
		Title:       title,
		Description: description,
		OwnerID:     actor,
		Members:     members,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// List returns the boards the actor owns or belongs to, with aggregates.
func (s *BoardService) List(ctx context.Context, actor uuid.UUID) ([]BoardSummary, error) {
	boards, err := s.boards.GetForUser(ctx, actor)
	if err != nil {
		return nil, err
	}

	summaries := make([]BoardSummary, 0, len(boards))
	for _, board := range boards {
		summary, err := s.summarize(ctx, board)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Get returns a single board the actor may read.
func (s *BoardService) Get(ctx context.Context, actor, boardID uuid.UUID) (*model.Board, error) {
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
	return board, nil
}

// Update applies a partial update. Members and owner always see the
// board; only they may change it.
func (s *BoardService) Update(ctx context.Context, actor, boardID uuid.UUID, patch BoardPatch) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrNotFound
	}
	if !authz.Allowed(actor, authz.ActionUpdate, authz.Board(board)) {
		return nil, ErrForbidden
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, validationErr("title", "must not be empty")
		}
		board.Title = *patch.Title
	}
	if patch.Description != nil {
		board.Description = *patch.Description
	}

	if patch.MemberIDs != nil {
		newMembers, err := s.resolveMembers(ctx, *patch.MemberIDs)
		if err != nil {
			return nil, err
		}
		if err := s.boards.UpdateWithMembers(ctx, board, newMembers); err != nil {
			return nil, err
		}
		return board, nil
	}

	if err := s.boards.Update(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

// Delete removes a board and everything on it. Owner only.
func (s *BoardService) Delete(ctx context.Context, actor, boardID uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return ErrNotFound
	}
	if !authz.Allowed(actor, authz.ActionDelete, authz.Board(board)) {
		return ErrForbidden
	}
	return s.boards.Delete(ctx, boardID)
}

func (s *BoardService) summarize(ctx context.Context, board model.Board) (BoardSummary, error) {
	ticketCount, err := s.tasks.CountByBoard(ctx, board.ID)
	if err != nil {
		return BoardSummary{}, err
	}
	toDoCount, err := s.tasks.CountByBoardAndStatus(ctx, board.ID, model.StatusToDo)
	if err != nil {
		return BoardSummary{}, err
	}
	highPrioCount, err := s.tasks.CountByBoardAndPriority(ctx, board.ID, model.PriorityHigh)
	if err != nil {
		return BoardSummary{}, err
	}
	return BoardSummary{
		Board:              board,
		MemberCount:        len(board.Members),
		TicketCount:        ticketCount,
		TasksToDoCount:     toDoCount,
		TasksHighPrioCount: highPrioCount,
	}, nil
}

// resolveMembers loads the users behind the given ids and fails with a
// validation error when any id is unknown.
func (s *BoardService) resolveMembers(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return nil, nil
	}

	users, err := s.users.GetByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(users) != len(unique) {
		return nil, validationErr("members", "contains unknown user ids")
	}
	return users, nil
}
