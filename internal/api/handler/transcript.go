package handler

import (
	"net/http"

	"github.com/frenzy2004/JetSki/internal/service"
	"github.com/gin-gonic/gin"
)

// TranscriptHandler handles transcript retrieval endpoints.
type TranscriptHandler struct {
	transcripts service.TranscriptFetcher
}

// NewTranscriptHandler creates a new transcript handler.
func NewTranscriptHandler(transcripts service.TranscriptFetcher) *TranscriptHandler {
	return &TranscriptHandler{transcripts: transcripts}
}

type transcriptRequest struct {
	VideoURL string `json:"video_url" binding:"required"`
}

// GetTranscript handles POST /api/v1/transcript.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *TranscriptHandler) GetTranscript(c *gin.Context) {
	var req transcriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	transcript, err := h.transcripts.Fetch(c.Request.Context(), req.VideoURL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transcript)
}
