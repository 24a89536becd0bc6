package handler

import (
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CommentHandler struct {
	comments *service.CommentService
}

func NewCommentHandler(comments *service.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Author    string `json:"author"`
	Content   string `json:"content"`
}

func commentResponse(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		Author:    comment.Author.DisplayName(),
		Content:   comment.Content,
	}
}

// Create adds a comment to a task
func (h *CommentHandler) Create(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), actor, taskID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentResponse(comment))
}

// List returns a task's comments in chronological order
func (h *CommentHandler) List(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	comments, err := h.comments.List(c.Request.Context(), actor, taskID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]CommentResponse, len(comments))
	for i := range comments {
		response[i] = commentResponse(&comments[i])
	}
	c.JSON(http.StatusOK, response)
}

// Delete removes a comment. Author only.
func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID format"})
		return
	}

	if err := h.comments.Delete(c.Request.Context(), actor, commentID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
