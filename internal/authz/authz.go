// Package authz holds the access decision rules for boards, tasks and
// comments. Decisions are pure: all entities are fetched by the caller
// and the engine never touches the database.
package authz

import (
	"github.com/google/uuid"

	"taskboard/internal/model"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type kind int

const (
	kindBoard kind = iota
	kindTask
	kindComment
)

// Resource identifies the entity a decision is made about. Board must be
// set for any membership-based rule; Task and Comment narrow the decision
// to the nested entity.
type Resource struct {
	kind    kind
	Board   *model.Board
	Task    *model.Task
	Comment *model.Comment
}

// Board builds a resource for board-level decisions.
func Board(board *model.Board) Resource {
	return Resource{kind: kindBoard, Board: board}
}

// Task builds a resource for task-level decisions. The task may be nil
// for ActionCreate, where only the target board exists yet.
func Task(board *model.Board, task *model.Task) Resource {
	return Resource{kind: kindTask, Board: board, Task: task}
}

// Comment builds a resource for comment-level decisions. The comment may
// be nil for ActionCreate.
func Comment(board *model.Board, task *model.Task, comment *model.Comment) Resource {
	return Resource{kind: kindComment, Board: board, Task: task, Comment: comment}
}

// Allowed decides whether the actor may perform the action on the
// resource. Unknown combinations deny.
func Allowed(actor uuid.UUID, action Action, res Resource) bool {
	switch res.kind {
	case kindBoard:
		return boardAllowed(actor, action, res.Board)
	case kindTask:
		return taskAllowed(actor, action, res)
	case kindComment:
		return commentAllowed(actor, action, res)
	}
	return false
}

func boardAllowed(actor uuid.UUID, action Action, board *model.Board) bool {
	if board == nil {
		return false
	}
	switch action {
	case ActionRead, ActionUpdate:
		return board.HasMember(actor)
	case ActionDelete:
		// Owner only. Members cannot delete the board.
		return board.OwnerID == actor
	}
	return false
}

func taskAllowed(actor uuid.UUID, action Action, res Resource) bool {
	if res.Board == nil {
		return false
	}
	switch action {
	case ActionCreate, ActionRead, ActionUpdate:
		return res.Board.HasMember(actor)
	case ActionDelete:
		return res.Task != nil && (res.Task.CreatedBy == actor || res.Board.OwnerID == actor)
	}
	return false
}

func commentAllowed(actor uuid.UUID, action Action, res Resource) bool {
	switch action {
	case ActionCreate, ActionRead:
		return res.Board != nil && res.Board.HasMember(actor)
	case ActionDelete:
		// Author only. The board owner has no override.
		return res.Comment != nil && res.Comment.AuthorID == actor
	}
	return false
}
