package repository_test

import (
	"context"
	"testing"

	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTaskRepository_Delete_CascadesComments(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()

	// Comments go first, then the task, inside one transaction.
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE task_id = .*`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .*`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), taskID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_RollsBackWhenTaskDeleteFails(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE task_id = .*`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .*`).
		WithArgs(taskID).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	// Act
	err := taskRepo.Delete(context.Background(), taskID)

	// Assert — the comment delete never commits on its own
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	taskID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE task_id = .*`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = .*`).
		WithArgs(taskID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Act
	err := taskRepo.Delete(context.Background(), taskID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
