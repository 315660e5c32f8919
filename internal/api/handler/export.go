package handler

import (
	"context"
	"net/http"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/repository"
	"github.com/gin-gonic/gin"
)

// Exporter publishes a finished comic to the export drive.
type Exporter interface {
	Export(ctx context.Context, sb *domain.Storyboard, images *domain.RenderResult, summary *domain.ComicSummary) (*domain.ExportResult, error)
}

// ExportHandler handles drive export endpoints.
type ExportHandler struct {
	exporter Exporter
	comics   *repository.StoryboardRepository
}

// NewExportHandler creates a new export handler. The repository may be nil when
// persistence is disabled; exports then require the full payload in the body.
func NewExportHandler(exporter Exporter, comics *repository.StoryboardRepository) *ExportHandler {
	return &ExportHandler{exporter: exporter, comics: comics}
}

type exportRequest struct {
	StoryboardID string               `json:"storyboard_id"`
	Storyboard   *domain.Storyboard   `json:"storyboard"`
	ComicImages  *domain.RenderResult `json:"comic_images"`
	ComicSummary *domain.ComicSummary `json:"comic_summary"`
}

// Export handles POST /api/v1/export. The comic comes either inline in the
// request body or by storyboard_id from storage.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ExportHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Export is not configured",
		})
		return
	}

	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	sb := req.Storyboard
	images := req.ComicImages
	summary := req.ComicSummary

	if sb == nil {
		if req.StoryboardID == "" || h.comics == nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Either storyboard or storyboard_id is required",
			})
			return
		}
		stored, err := h.comics.GetWithPanels(ctx, req.StoryboardID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Storyboard not found: " + err.Error(),
			})
			return
		}
		sb, images = fromRecords(stored)
	}

	result, err := h.exporter.Export(ctx, sb, images, summary)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// fromRecords rebuilds the storyboard and render result from persisted records.
func fromRecords(stored *domain.StoryboardWithPanels) (*domain.Storyboard, *domain.RenderResult) {
	sb := &domain.Storyboard{
		Title:        stored.Title,
		Style:        stored.Style,
		Tone:         stored.Tone,
		NarrativeArc: stored.NarrativeArc,
		Hashtags:     []string(stored.Hashtags),
		PostingTip:   stored.PostingTip,
	}

	images := &domain.RenderResult{TotalPanels: len(stored.Panels)}
	for _, rec := range stored.Panels {
		sb.Panels = append(sb.Panels, domain.ComicPanel{
			PanelNumber:       rec.PanelNumber,
			Caption:           rec.Caption,
			VisualDescription: rec.VisualDescription,
			CharacterDetails:  rec.CharacterDetails,
			Composition:       rec.Composition,
			Mood:              rec.Mood,
		})
		rendered := domain.RenderedPanel{
			PanelNumber: rec.PanelNumber,
			Caption:     rec.Caption,
			ImageBase64: rec.ImageBase64,
			MimeType:    rec.MimeType,
			Error:       rec.RenderError,
		}
		if rendered.OK() {
			images.SuccessCount++
		}
		images.Panels = append(images.Panels, rendered)
	}
	return sb, images
}
