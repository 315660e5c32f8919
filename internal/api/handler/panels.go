package handler

import (
	"net/http"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/service"
	"github.com/gin-gonic/gin"
)

// PanelsHandler handles render-only requests for callers that already hold a
// storyboard.
type PanelsHandler struct {
	renderer service.PanelRenderer
}

// NewPanelsHandler creates a new panels handler.
func NewPanelsHandler(renderer service.PanelRenderer) *PanelsHandler {
	return &PanelsHandler{renderer: renderer}
}

type panelsRequest struct {
	Panels []domain.ComicPanel `json:"panels" binding:"required,min=1"`
}

// Render handles POST /api/v1/panels.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PanelsHandler) Render(c *gin.Context) {
	var req panelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result := h.renderer.RenderPanels(c.Request.Context(), req.Panels)
	c.JSON(http.StatusOK, result)
}
