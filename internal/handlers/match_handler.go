package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/services"
)

// MatchHandler handles match endpoints
type MatchHandler struct {
	matchService *services.MatchService
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// GetMatches returns a page of matches in kickoff order
// GET /api/matches
func (h *MatchHandler) GetMatches(c *gin.Context) {
	page, limit := parsePagination(c)

	matches, pagination, err := h.matchService.ListMatches(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       matches,
		"pagination": pagination,
	})
}

// GetMatchByID returns a single match with its teams
// GET /api/matches/:id
func (h *MatchHandler) GetMatchByID(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid match id"})
		return
	}

	match, err := h.matchService.GetMatchByID(c.Request.Context(), matchID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": match})
}

// CreateMatch schedules a new match (admin only)
// POST /api/matches
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	match, err := h.matchService.CreateMatch(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Match schedule created successfully",
		"data":    match,
	})
}

// UpdateMatch applies a partial update (admin only). A score update on an
// open match finishes it; the settlement summary is included when that
// happens.
// PUT /api/matches/:id
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid match id"})
		return
	}

	var req models.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	match, settlement, err := h.matchService.UpdateMatch(c.Request.Context(), matchID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{
		"success": true,
		"message": "Match schedule updated successfully",
		"data":    match,
	}
	if settlement != nil {
		response["settlement"] = settlement
	}

	c.JSON(http.StatusOK, response)
}

// FinishMatch finishes a match (admin only). A body with final scores
// settles with those; an empty body settles with the stored scores.
// PUT /api/matches/:id/finish
func (h *MatchHandler) FinishMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid match id"})
		return
	}

	var result *models.SettlementResult
	var err error

	if c.Request.ContentLength > 0 {
		var req models.FinishMatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		result, err = h.matchService.FinishMatchWithScores(c.Request.Context(), matchID, *req.Score1, *req.Score2)
	} else {
		result, err = h.matchService.FinishMatch(c.Request.Context(), matchID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Match finished and predictions settled"
	if result.AlreadyFinished {
		message = "Match already finished"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data":    result,
	})
}

// DeleteMatch deletes a match and its predictions (admin only)
// DELETE /api/matches/:id
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	matchID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid match id"})
		return
	}

	if err := h.matchService.DeleteMatch(c.Request.Context(), matchID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Match deleted successfully",
	})
}
