package handler

import (
	"net/http"
	"sync"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/service"
	"github.com/gin-gonic/gin"
)

// ComicHandler handles the manual flow's second step: a chosen moment becomes a
// storyboard, gets reviewed, and is rendered while the summary is written.
type ComicHandler struct {
	storyboards service.StoryboardMaker
	summaries   service.SummaryWriter
	renderer    service.PanelRenderer
}

// NewComicHandler creates a new comic handler.
func NewComicHandler(storyboards service.StoryboardMaker, summaries service.SummaryWriter, renderer service.PanelRenderer) *ComicHandler {
	return &ComicHandler{storyboards: storyboards, summaries: summaries, renderer: renderer}
}

type comicRequest struct {
	Moment         *domain.ViralSegment `json:"moment" binding:"required"`
	GenerateImages *bool                `json:"generate_images"`
}

// Generate handles POST /api/v1/comic.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ComicHandler) Generate(c *gin.Context) {
	var req comicRequest
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

	// Review stays advisory.
	if review, err := h.storyboards.Review(ctx, sb); err == nil {
		resp["coherence_review"] = review
	}

	// Images and summary are independent optional steps; run them together.
	wantImages := req.GenerateImages == nil || *req.GenerateImages

	var wg sync.WaitGroup
	var images *domain.RenderResult
	var summary *domain.ComicSummary

	if wantImages && h.renderer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			images = h.renderer.RenderPanels(ctx, sb.Panels)
		}()
	}
	if h.summaries != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			summary, _ = h.summaries.Breakdown(ctx, req.Moment, sb)
		}()
	}
	wg.Wait()

	if images != nil {
		resp["comic_images"] = images
	}
	if summary != nil {
		resp["comic_summary"] = summary
	}

	c.JSON(http.StatusOK, resp)
}
