package service_test

import (
	"context"
	"testing"

	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCommentService() (*service.CommentService, *MockCommentStore, *MockTaskStore, *MockBoardStore, *MockUserStore) {
	comments := new(MockCommentStore)
	tasks := new(MockTaskStore)
	boards := new(MockBoardStore)
	users := new(MockUserStore)
	return service.NewCommentService(comments, tasks, boards, users), comments, tasks, boards, users
}

func TestCreateComment_ActorBecomesAuthor(t *testing.T) {
	svc, comments, tasks, boards, users := newCommentService()
	owner := uuid.New()
	member := uuid.New()
	board := memberBoard(owner, owner, member)
	task := &model.Task{ID: uuid.New(), BoardID: board.ID, CreatedBy: owner}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)
	users.On("GetByID", mock.Anything, member).
		Return(&model.User{ID: member, Username: "bob", FirstName: "Bob", LastName: "Builder"}, nil)

	comment, err := svc.Create(context.Background(), member, task.ID, "LGTM")

	assert.NoError(t, err)
	assert.Equal(t, member, comment.AuthorID)
	assert.Equal(t, "LGTM", comment.Content)
	assert.Equal(t, "Bob Builder", comment.Author.DisplayName())
	comments.AssertExpectations(t)
}

func TestCreateComment_EmptyContent(t *testing.T) {
	svc, comments, _, _, _ := newCommentService()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "   ")

	var verr *service.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_NonMemberForbidden(t *testing.T) {
	svc, comments, tasks, boards, _ := newCommentService()
	owner := uuid.New()
	board := memberBoard(owner, owner)
	task := &model.Task{ID: uuid.New(), BoardID: board.ID, CreatedBy: owner}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	_, err := svc.Create(context.Background(), uuid.New(), task.ID, "hi")

	assert.ErrorIs(t, err, service.ErrForbidden)
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListComments_NonMemberForbidden(t *testing.T) {
	svc, comments, tasks, boards, _ := newCommentService()
	owner := uuid.New()
	board := memberBoard(owner, owner)
	task := &model.Task{ID: uuid.New(), BoardID: board.ID, CreatedBy: owner}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)

	_, err := svc.List(context.Background(), uuid.New(), task.ID)

	assert.ErrorIs(t, err, service.ErrForbidden)
	comments.AssertNotCalled(t, "ListByTask", mock.Anything, mock.Anything)
}

func TestListComments_MemberSeesAll(t *testing.T) {
	svc, comments, tasks, boards, _ := newCommentService()
	owner := uuid.New()
	member := uuid.New()
	board := memberBoard(owner, owner, member)
	task := &model.Task{ID: uuid.New(), BoardID: board.ID, CreatedBy: owner}

	tasks.On("GetByID", mock.Anything, task.ID).Return(task, nil)
	boards.On("GetByID", mock.Anything, board.ID).Return(board, nil)
	comments.On("ListByTask", mock.Anything, task.ID).Return([]model.Comment{
		{ID: uuid.New(), TaskID: task.ID, AuthorID: member, Content: "first"},
		{ID: uuid.New(), TaskID: task.ID, AuthorID: owner, Content: "second"},
	}, nil)

	got, err := svc.List(context.Background(), member, task.ID)

	assert.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteComment_AuthorSucceeds(t *testing.T) {
	svc, comments, _, _, _ := newCommentService()
	author := uuid.New()
	comment := &model.Comment{ID: uuid.New(), TaskID: uuid.New(), AuthorID: author}

	comments.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)
	comments.On("Delete", mock.Anything, comment.ID).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), author, comment.ID))
	comments.AssertExpectations(t)
}

func TestDeleteComment_BoardOwnerHasNoOverride(t *testing.T) {
	svc, comments, _, _, _ := newCommentService()
	author := uuid.New()
	owner := uuid.New()
	comment := &model.Comment{ID: uuid.New(), TaskID: uuid.New(), AuthorID: author}

	comments.On("GetByID", mock.Anything, comment.ID).Return(comment, nil)

	err := svc.Delete(context.Background(), owner, comment.ID)

	assert.ErrorIs(t, err, service.ErrForbidden)
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteComment_NotFound(t *testing.T) {
	svc, comments, _, _, _ := newCommentService()
	commentID := uuid.New()

	comments.On("GetByID", mock.Anything, commentID).Return(nil, repository.ErrCommentNotFound)

	err := svc.Delete(context.Background(), uuid.New(), commentID)

	assert.ErrorIs(t, err, service.ErrNotFound)
}
