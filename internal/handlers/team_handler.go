package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/services"
)

// TeamHandler handles team endpoints
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

// GetTeams returns a page of teams
// GET /api/teams
func (h *TeamHandler) GetTeams(c *gin.Context) {
	page, limit := parsePagination(c)

	teams, pagination, err := h.teamService.ListTeams(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       teams,
		"pagination": pagination,
	})
}

// GetTeamByID returns a single team
// GET /api/teams/:id
func (h *TeamHandler) GetTeamByID(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid team id"})
		return
	}

	team, err := h.teamService.GetTeamByID(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": team})
}

// CreateTeam creates a new team (admin only)
// POST /api/teams
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req models.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Team created successfully",
		"data":    team,
	})
}

// UpdateTeam updates a team (admin only)
// PUT /api/teams/:id
func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid team id"})
		return
	}

	var req models.TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), teamID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Team updated successfully",
		"data":    team,
	})
}

// DeleteTeam deletes a team (admin only)
// DELETE /api/teams/:id
func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	teamID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid team id"})
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), teamID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Team deleted successfully",
	})
}
