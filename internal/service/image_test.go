package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/frenzy2004/JetSki/internal/config"
	"github.com/frenzy2004/JetSki/internal/domain"
)

// 1x1 PNG, valid base64.
const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func sseChunk(parts string) string {
	return fmt.Sprintf("data: {\"candidates\":[{\"content\":{\"parts\":[%s]}}]}\n\n", parts)
}

func newTestImageService(baseURL string) *ImageService {
	return NewImageService(&config.ImageConfig{
		Model:   "test-image-model",
		APIKey:  "test-key",
		BaseURL: baseURL,
	}, pipelineTestConfig())
}

func testPanels(n int) []domain.ComicPanel {
	panels := make([]domain.ComicPanel, n)
	for i := range panels {
		panels[i] = domain.ComicPanel{
			PanelNumber:       i + 1,
			Caption:           fmt.Sprintf("caption %d", i+1),
			VisualDescription: fmt.Sprintf("scene %d", i+1),
			CharacterDetails:  "hero",
			Composition:       "wide shot",
			Mood:              "tense",
		}
	}
	return panels
}

func TestImageService_FirstImageChunkWins(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		// Text chunk first, then two image chunks. Only the first image counts.
		io.WriteString(w, sseChunk(`{"text":"thinking about the scene"}`))
		io.WriteString(w, sseChunk(fmt.Sprintf(`{"inlineData":{"mimeType":"image/png","data":"%s"}}`, tinyPNG)))
		io.WriteString(w, sseChunk(`{"inlineData":{"mimeType":"image/png","data":"SECOND_IMAGE"}}`))
	}))
	defer srv.Close()

	svc := newTestImageService(srv.URL)
	data, mimeType, err := svc.renderOne(context.Background(), "a prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data != tinyPNG {
		t.Errorf("expected first image chunk, got %q", data)
	}
	if mimeType != "image/png" {
		t.Errorf("expected image/png, got %q", mimeType)
	}
}

func TestImageService_StreamWithoutImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sseChunk(`{"text":"only text, no image"}`))
	}))
	defer srv.Close()

	svc := newTestImageService(srv.URL)
	if _, _, err := svc.renderOne(context.Background(), "a prompt"); err == nil {
		t.Fatal("expected error for image-less stream")
	}
}

func TestImageService_RenderPanels_IsolatesFailures(t *testing.T) {
	var mu sync.Mutex
	prompts := []string{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		prompt := string(body)
		mu.Lock()
		prompts = append(prompts, prompt)
		mu.Unlock()

		// Panel 2 fails; everything else renders.
		if strings.Contains(prompt, "PANEL 2") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sseChunk(fmt.Sprintf(`{"inlineData":{"mimeType":"image/png","data":"%s"}}`, tinyPNG)))
	}))
	defer srv.Close()

	svc := newTestImageService(srv.URL)
	result := svc.RenderPanels(context.Background(), testPanels(6))

	if result.TotalPanels != 6 {
		t.Errorf("expected 6 total panels, got %d", result.TotalPanels)
	}
	if result.SuccessCount != 5 {
		t.Errorf("expected 5 successes, got %d", result.SuccessCount)
	}

	for _, panel := range result.Panels {
		if panel.PanelNumber == 2 {
			if panel.OK() {
				t.Error("expected panel 2 to fail")
			}
			if panel.Error == "" {
				t.Error("expected panel 2 to carry an error message")
			}
		} else if !panel.OK() {
			t.Errorf("expected panel %d to succeed, got error %q", panel.PanelNumber, panel.Error)
		}
	}

	// The configured grid panel renders with the composite layout prompt.
	gridSeen := false
	mu.Lock()
	for _, p := range prompts {
		if strings.Contains(p, "4-PANEL GRID") {
			gridSeen = true
		}
	}
	mu.Unlock()
	if !gridSeen {
		t.Error("expected the grid panel to use the composite layout prompt")
	}
}

func TestImageService_RenderPanels_PreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, sseChunk(fmt.Sprintf(`{"inlineData":{"mimeType":"image/png","data":"%s"}}`, tinyPNG)))
	}))
	defer srv.Close()

	svc := newTestImageService(srv.URL)
	result := svc.RenderPanels(context.Background(), testPanels(6))

	for i, panel := range result.Panels {
		if panel.PanelNumber != i+1 {
			t.Fatalf("expected panel %d at index %d, got %d", i+1, i, panel.PanelNumber)
		}
	}
}
