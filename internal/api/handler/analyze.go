package handler

import (
	"net/http"

	"github.com/frenzy2004/JetSki/internal/service"
	"github.com/gin-gonic/gin"
)

// AnalyzeHandler handles viral analysis endpoints.
type AnalyzeHandler struct {
	transcripts service.TranscriptFetcher
	viral       service.MomentFinder
}

// NewAnalyzeHandler creates a new analysis handler.
func NewAnalyzeHandler(transcripts service.TranscriptFetcher, viral service.MomentFinder) *AnalyzeHandler {
	return &AnalyzeHandler{transcripts: transcripts, viral: viral}
}

type analyzeRequest struct {
	VideoURL   string `json:"video_url"`
	Transcript string `json:"transcript"`
}

// Analyze handles POST /api/v1/analyze. The caller provides either a video URL
// (captions are fetched) or a raw transcript.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	transcript := req.Transcript
	if transcript == "" {
		if req.VideoURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Either video_url or transcript is required",
			})
			return
		}
		fetched, err := h.transcripts.Fetch(ctx, req.VideoURL)
		if err != nil {
			respondError(c, err)
			return
		}
		transcript = fetched.Text
	}

	analysis, err := h.viral.FindMoments(ctx, transcript)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"viral_analysis":   analysis,
		"transcript_words": service.CountWords(transcript),
	})
}
