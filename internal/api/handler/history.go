package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/frenzy2004/JetSki/internal/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultHistoryLimit = 20

// HistoryHandler handles read endpoints over persisted runs.
type HistoryHandler struct {
	videos *repository.VideoRepository
	comics *repository.StoryboardRepository
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(videos *repository.VideoRepository, comics *repository.StoryboardRepository) *HistoryHandler {
	return &HistoryHandler{videos: videos, comics: comics}
}

// ListHistory handles GET /api/v1/history.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	videos, err := h.videos.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list videos: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"total":  len(videos),
	})
}

// ListComics handles GET /api/v1/comics.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *HistoryHandler) ListComics(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	boards, err := h.comics.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list comics: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comics": boards,
		"total":  len(boards),
	})
}

// GetStoryboard handles GET /api/v1/storyboards/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *HistoryHandler) GetStoryboard(c *gin.Context) {
	id := c.Param("id")
	board, err := h.comics.GetWithPanels(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Storyboard not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get storyboard: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, board)
}

func parseLimit(raw string) int {
	if raw == "" {
		return defaultHistoryLimit
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 100 {
		return defaultHistoryLimit
	}
	return limit
}
