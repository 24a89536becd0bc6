package handler

import (
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	boards *service.BoardService
	tasks  *service.TaskService
}

func NewBoardHandler(boards *service.BoardService, tasks *service.TaskService) *BoardHandler {
	return &BoardHandler{
		boards: boards,
		tasks:  tasks,
	}
}

type CreateBoardRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Members     []string `json:"members"`
}

type UpdateBoardRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Members     *[]string `json:"members"`
}

type BoardSummaryResponse struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	OwnerID            string `json:"owner_id"`
	MemberCount        int    `json:"member_count"`
	TicketCount        int64  `json:"ticket_count"`
	TasksToDoCount     int64  `json:"tasks_to_do_count"`
	TasksHighPrioCount int64  `json:"tasks_high_prio_count"`
}

type BoardDetailResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	OwnerID     string         `json:"owner_id"`
	Members     []UserProfile  `json:"members"`
	Tasks       []TaskResponse `json:"tasks"`
}

func boardSummaryResponse(s service.BoardSummary) BoardSummaryResponse {
	return BoardSummaryResponse{
		ID:                 s.Board.ID.String(),
		Title:              s.Board.Title,
		OwnerID:            s.Board.OwnerID.String(),
		MemberCount:        s.MemberCount,
		TicketCount:        s.TicketCount,
		TasksToDoCount:     s.TasksToDoCount,
		TasksHighPrioCount: s.TasksHighPrioCount,
	}
}

func memberProfiles(members []model.User) []UserProfile {
	profiles := make([]UserProfile, len(members))
	for i := range members {
		profiles[i] = userProfile(&members[i])
	}
	return profiles
}

// Create creates a new board owned by the authenticated user
func (h *BoardHandler) Create(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	memberIDs, err := parseUUIDs(req.Members)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format in members"})
		return
	}

	board, err := h.boards.Create(c.Request.Context(), actor, req.Title, req.Description, memberIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, boardSummaryResponse(service.BoardSummary{
		Board:       *board,
		MemberCount: len(board.Members),
	}))
}

// GetAll lists the boards the authenticated user owns or belongs to
func (h *BoardHandler) GetAll(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	summaries, err := h.boards.List(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := make([]BoardSummaryResponse, len(summaries))
	for i, s := range summaries {
		response[i] = boardSummaryResponse(s)
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns a board with its members and tasks
func (h *BoardHandler) GetByID(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	board, err := h.boards.Get(c.Request.Context(), actor, boardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tasks, err := h.tasks.ListByBoard(c.Request.Context(), actor, boardID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	taskResponses := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		taskResponses[i] = taskResponse(t)
	}

	c.JSON(http.StatusOK, BoardDetailResponse{
		ID:          board.ID.String(),
		Title:       board.Title,
		Description: board.Description,
		OwnerID:     board.OwnerID.String(),
		Members:     memberProfiles(board.Members),
		Tasks:       taskResponses,
	})
}

// Update applies a partial update to a board
func (h *BoardHandler) Update(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := service.BoardPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Members != nil {
		memberIDs, err := parseUUIDs(*req.Members)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format in members"})
			return
		}
		patch.MemberIDs = &memberIDs
	}

	board, err := h.boards.Update(c.Request.Context(), actor, boardID, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          board.ID.String(),
		"title":       board.Title,
		"description": board.Description,
		"owner_id":    board.OwnerID.String(),
		"members":     memberProfiles(board.Members),
	})
}

// Delete removes a board with all its tasks and comments. Owner only.
func (h *BoardHandler) Delete(c *gin.Context) {
	actor, ok := currentUserID(c)
	if !ok {
		return
	}

	boardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return
	}

	if err := h.boards.Delete(c.Request.Context(), actor, boardID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseUUIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, len(values))
	for i, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}
