package handler

import (
	"context"
	"net/http"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/gin-gonic/gin"
)

// PipelineRunner executes a full pipeline run.
type PipelineRunner interface {
	Run(ctx context.Context, req *domain.PipelineRequest) (*domain.PipelineResult, error)
}

// PipelineHandler handles the end-to-end pipeline endpoint.
type PipelineHandler struct {
	pipeline PipelineRunner
}

// NewPipelineHandler creates a new pipeline handler.
func NewPipelineHandler(pipeline PipelineRunner) *PipelineHandler {
	return &PipelineHandler{pipeline: pipeline}
}

// Run handles POST /api/v1/pipeline.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *PipelineHandler) Run(c *gin.Context) {
	var req domain.PipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
