package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/auth"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/services"
)

// LeaderboardHandler handles leaderboard reads
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard returns the top users ranked by points
// GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	entries, err := h.leaderboardService.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Leaderboard retrieved successfully",
		"data":    entries,
	})
}

// GetMyRank returns the authenticated user's standing
// GET /api/leaderboard/my-rank
func (h *LeaderboardHandler) GetMyRank(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
		return
	}

	rank, err := h.leaderboardService.GetUserRank(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User rank retrieved successfully",
		"data":    rank,
	})
}

// GetStats returns aggregate standings statistics
// GET /api/leaderboard/stats
func (h *LeaderboardHandler) GetStats(c *gin.Context) {
	stats, err := h.leaderboardService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Leaderboard statistics retrieved successfully",
		"data":    stats,
	})
}
