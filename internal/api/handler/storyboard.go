package handler

import (
	"net/http"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/service"
	"github.com/gin-gonic/gin"
)

// StoryboardHandler turns one chosen moment into a storyboard with its
// advisory review. Rendering is a separate endpoint.
type StoryboardHandler struct {
	storyboards service.StoryboardMaker
}

// NewStoryboardHandler creates a new storyboard handler.
func NewStoryboardHandler(storyboards service.StoryboardMaker) *StoryboardHandler {
	return &StoryboardHandler{storyboards: storyboards}
}

type storyboardRequest struct {
	Moment *domain.ViralSegment `json:"moment" binding:"required"`
}

// Generate handles POST /api/v1/storyboard.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *StoryboardHandler) Generate(c *gin.Context) {
	var req storyboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	sb, err := h.storyboards.Generate(ctx, req.Moment)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"storyboard": sb}

	// Review stays advisory here as well.
	if review, err := h.storyboards.Review(ctx, sb); err == nil {
		resp["coherence_review"] = review
	}

	c.JSON(http.StatusOK, resp)
}
