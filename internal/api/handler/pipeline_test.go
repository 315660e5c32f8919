package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/gin-gonic/gin"
)

type fakeRunner struct {
	result *domain.PipelineResult
	err    error
	last   *domain.PipelineRequest
}

func (f *fakeRunner) Run(_ context.Context, req *domain.PipelineRequest) (*domain.PipelineResult, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func pipelineTestRouter(runner PipelineRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPipelineHandler(runner)
	r.POST("/api/v1/pipeline", h.Run)
	return r
}

func TestPipelineHandler_Run(t *testing.T) {
	runner := &fakeRunner{
		result: &domain.PipelineResult{
			TranscriptWords: 100,
			SelectedSegment: &domain.ViralSegment{Rank: 1, Title: "A"},
		},
	}
	r := pipelineTestRouter(runner)

	body := `{"video_url": "https://youtu.be/dQw4w9WgXcQ", "generate_images": false}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pipeline", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.PipelineResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.TranscriptWords != 100 {
		t.Errorf("expected 100 words, got %d", result.TranscriptWords)
	}
	if runner.last.WantImages() {
		t.Error("expected generate_images=false to reach the pipeline")
	}
}

func TestPipelineHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantStep   string
	}{
		{
			name:       "invalid input",
			err:        domain.ErrInvalidInput,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no transcript",
			err:        domain.NewStepError(domain.StepTranscript, domain.ErrNoTranscript),
			wantStatus: http.StatusNotFound,
			wantStep:   domain.StepTranscript,
		},
		{
			name:       "selection mismatch",
			err:        domain.NewStepError(domain.StepSelection, domain.ErrSelectionMismatch),
			wantStatus: http.StatusUnprocessableEntity,
			wantStep:   domain.StepSelection,
		},
		{
			name:       "generation failure",
			err:        domain.NewStepError(domain.StepStoryboard, domain.ErrGeneration),
			wantStatus: http.StatusBadGateway,
			wantStep:   domain.StepStoryboard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pipelineTestRouter(&fakeRunner{err: tt.err})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/pipeline",
				strings.NewReader(`{"video_url": "https://youtu.be/dQw4w9WgXcQ"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if tt.wantStep != "" {
				if step, _ := body["step"].(string); step != tt.wantStep {
					t.Errorf("expected step %q, got %q", tt.wantStep, step)
				}
			}
		})
	}
}

func TestPipelineHandler_BadJSON(t *testing.T) {
	r := pipelineTestRouter(&fakeRunner{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pipeline", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
