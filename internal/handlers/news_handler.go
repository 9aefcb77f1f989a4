package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naitfess/prak-tpm-projek-akhir/internal/models"
	"github.com/naitfess/prak-tpm-projek-akhir/internal/services"
)

// NewsHandler handles news endpoints
type NewsHandler struct {
	newsService *services.NewsService
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// GetNews returns a page of news articles
// GET /api/news
func (h *NewsHandler) GetNews(c *gin.Context) {
	page, limit := parsePagination(c)

	news, pagination, err := h.newsService.ListNews(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       news,
		"pagination": pagination,
	})
}

// GetNewsByID returns a single news article
// GET /api/news/:id
func (h *NewsHandler) GetNewsByID(c *gin.Context) {
	newsID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid news id"})
		return
	}

	news, err := h.newsService.GetNewsByID(c.Request.Context(), newsID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": news})
}

// CreateNews creates a news article (admin only)
// POST /api/news
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	news, err := h.newsService.CreateNews(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "News created successfully",
		"data":    news,
	})
}

// UpdateNews updates a news article (admin only)
// PUT /api/news/:id
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	newsID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid news id"})
		return
	}

	var req models.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	news, err := h.newsService.UpdateNews(c.Request.Context(), newsID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "News updated successfully",
		"data":    news,
	})
}

// DeleteNews deletes a news article (admin only)
// DELETE /api/news/:id
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	newsID, ok := parseIDParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid news id"})
		return
	}

	if err := h.newsService.DeleteNews(c.Request.Context(), newsID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "News deleted successfully",
	})
}
