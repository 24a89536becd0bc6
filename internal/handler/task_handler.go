package handler

import (
	"context"
	"net/http"
	"time"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assignee_id"`
	ReviewerID  *string    `json:"reviewer_id"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssigneeID  *string    `json:"assignee_id"`
	ReviewerID  *string    `json:"reviewer_id"`
	DueDate     *time.Time `json:"due_date"`
}

type TaskUserRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type DueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

type TaskResponse struct {
	ID            string       `json:"id"`
	BoardID       string       `json:"board_id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Status        string       `json:"status"`
	Priority      string       `json:"priority"`
	Assignee      *UserProfile `json:"assignee,omitempty"`
	Reviewer      *UserProfile `json:"reviewer,omitempty"`
	CreatedBy     string       `json:"created_by"`
	DueDate       *string      `json:"due_date,omitempty"`
	CommentsCount int64        `json:"comments_count"`
}

func taskResponse(t service.TaskWithCount) TaskResponse {
	response := TaskResponse{
		ID:            t.Task.ID.String(),
		BoardID:       t.Task.BoardID.String(),
		Title:         t.Task.Title,
		Description:   t.Task.Description,
		Status:        t.Task.Status,
		Priority:      t.Task.Priority,
		CreatedBy:     t.Task.CreatedBy.String(),
		CommentsCount: t.CommentsCount,
	}
	if t.Task.Assignee != nil {
		profile := userProfile(t.Task.Assignee)
		response.Assignee = &profile
	}
	if t.Task.Reviewer != nil {
		profile := userProfile(t.Task.Reviewer)
		response.Reviewer = &profile
	}
	if t.Task.DueDate != nil {
		dueDate := t.Task.DueDate.Format(time.RFC3339)
		response.DueDate = &dueDate
	}
	return response
}

// Create creates a new task on a board
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assigneeID, err := parseOptionalUUID(req.AssigneeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
		return
	}
	reviewerID, err := parseOptionalUUID(req.ReviewerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer ID format"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), actor, boardID, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  assigneeID,
		ReviewerID:  reviewerID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, taskResponse(*task))
}

// GetByID returns a single task
func (h *TaskHandler) GetByID(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), actor, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse(*task))
}

// GetByBoardID lists all tasks on a board
func (h *TaskHandler) GetByBoardID(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	tasks, err := h.tasks.ListByBoard(c.Request.Context(), actor, boardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponses(tasks))
}

// Update applies a partial update to a task
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	assigneeID, err := parseOptionalUUID(req.AssigneeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
		return
	}
	reviewerID, err := parseOptionalUUID(req.ReviewerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reviewer ID format"})
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), actor, taskID, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  assigneeID,
		ReviewerID:  reviewerID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse(*task))
}

// Delete removes a task and its comments
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), actor, taskID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignedToMe lists tasks assigned to the authenticated user
func (h *TaskHandler) AssignedToMe(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListAssignedTo(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponses(tasks))
}

// Reviewing lists tasks the authenticated user reviews
func (h *TaskHandler) Reviewing(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.ListReviewing(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponses(tasks))
}

// AssignUser sets the task's assignee
func (h *TaskHandler) AssignUser(c *gin.Context) {
	h.setUser(c, h.tasks.Assign)
}

// UnassignUser clears the task's assignee
func (h *TaskHandler) UnassignUser(c *gin.Context) {
	h.clearUser(c, h.tasks.Unassign)
}

// SetReviewer sets the task's reviewer
func (h *TaskHandler) SetReviewer(c *gin.Context) {
	h.setUser(c, h.tasks.SetReviewer)
}

// ClearReviewer clears the task's reviewer
func (h *TaskHandler) ClearReviewer(c *gin.Context) {
	h.clearUser(c, h.tasks.ClearReviewer)
}

// SetDueDate sets or clears the task's due date
func (h *TaskHandler) SetDueDate(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req DueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.SetDueDate(c.Request.Context(), actor, taskID, req.DueDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse(*task))
}

type setUserFunc func(ctx context.Context, actor, taskID, userID uuid.UUID) (*service.TaskWithCount, error)

type clearUserFunc func(ctx context.Context, actor, taskID uuid.UUID) (*service.TaskWithCount, error)

func (h *TaskHandler) setUser(c *gin.Context, fn setUserFunc) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	task, err := fn(c.Request.Context(), actor, taskID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse(*task))
}

func (h *TaskHandler) clearUser(c *gin.Context, fn clearUserFunc) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := fn(c.Request.Context(), actor, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, taskResponse(*task))
}

func taskResponses(tasks []service.TaskWithCount) []TaskResponse {
	response := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		response[i] = taskResponse(t)
	}
	return response
}

func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
