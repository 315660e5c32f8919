package handler

import (
	"errors"
	"net/http"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps pipeline sentinel errors to HTTP status codes. Step-tagged
// errors include the failing step so clients can show where a run died.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoTranscript):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSelectionMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrGeneration):
		status = http.StatusBadGateway
	}

	body := gin.H{"error": err.Error()}
	if step := domain.StepOf(err); step != "" {
		body["step"] = step
	}
	c.JSON(status, body)
}
