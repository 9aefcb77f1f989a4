package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/auth"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/services"
)

// PredictionHandler handles prediction endpoints
type PredictionHandler struct {
	predictionService *services.PredictionService
	settlementService *services.SettlementService
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(
	predictionService *services.PredictionService,
	settlementService *services.SettlementService,
) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
		settlementService: settlementService,
	}
}

// CreatePrediction submits (or replaces) the user's pick for a match
// POST /api/predictions
func (h *PredictionHandler) CreatePrediction(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	var req models.CreatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	prediction, err := h.predictionService.SubmitPrediction(
		c.Request.Context(),
		userID,
		req.MatchScheduleID,
		*req.PredictedTeamID,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Prediction submitted successfully",
		"data":    prediction,
	})
}

// GetUserPredictions returns the authenticated user's predictions
// GET /api/predictions
func (h *PredictionHandler) GetUserPredictions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	page, limit := parsePagination(c)

	predictions, pagination, err := h.predictionService.GetUserPredictions(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       predictions,
		"pagination": pagination,
	})
}

// GetAllPredictions returns every prediction, optionally filtered by match
// (admin only)
// GET /api/predictions/all
func (h *PredictionHandler) GetAllPredictions(c *gin.Context) {
	page, limit := parsePagination(c)

	var matchID uint
	if raw := c.Query("match_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid match_id"})
			return
		}
		matchID = uint(parsed)
	}

	predictions, pagination, err := h.predictionService.GetAllPredictions(c.Request.Context(), matchID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       predictions,
		"pagination": pagination,
	})
}

// ResettleFinishedMatches re-scans finished matches and settles anything
// still pending (admin only). Safe to call repeatedly.
// POST /api/predictions/resettle
func (h *PredictionHandler) ResettleFinishedMatches(c *gin.Context) {
	results, err := h.settlementService.ResettleFinishedMatches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Updated predictions for all finished matches",
		"data":    results,
	})
}
