package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/frenzy2004/JetSki/internal/config"
	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/logger"
	"github.com/frenzy2004/JetSki/internal/prompts"
	"github.com/go-resty/resty/v2"
)

// PanelRenderer renders all panels of a storyboard. Per-panel failures are
// recorded in the result, never returned as an error.
type PanelRenderer interface {
	RenderPanels(ctx context.Context, panels []domain.ComicPanel) *domain.RenderResult
}

// ImageService renders storyboard panels through a Gemini-style streaming
// image endpoint. Panels are rendered concurrently and each panel's failure is
// isolated; the aggregate result reports how many succeeded.
type ImageService struct {
	client *resty.Client
	model  string
	apiKey string
	base   string
	cfg    *config.PipelineConfig
}

// NewImageService creates a new ImageService.
// Parameters:
//   - imgCfg: model, API key, and base URL of the image endpoint.
//   - cfg: pipeline knobs (grid panel number, art style).
// Returns:
//   - *ImageService: initialized service.
func NewImageService(imgCfg *config.ImageConfig, cfg *config.PipelineConfig) *ImageService {
	client := resty.New()
	client.SetTimeout(180 * time.Second)
	// The stream is consumed manually; resty must not buffer or parse the body.
	client.SetDoNotParseResponse(true)

	base := imgCfg.BaseURL
	if base == "" {
		base = "https://generativelanguage.googleapis.com/v1beta"
	}

	return &ImageService{
		client: client,
		model:  imgCfg.Model,
		apiKey: imgCfg.APIKey,
		base:   strings.TrimSuffix(base, "/"),
		cfg:    cfg,
	}
}

// Gemini streaming request/response structures
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiGenConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type geminiChunk struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// RenderPanels renders every panel concurrently. The configured grid panel is
// rendered with the 2x2 composite prompt; all others use the single-scene
// prompt. Results come back ordered by panel number.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - panels: storyboard panels to render.
// Returns:
//   - *domain.RenderResult: per-panel outcomes plus the success count.
func (s *ImageService) RenderPanels(ctx context.Context, panels []domain.ComicPanel) *domain.RenderResult {
	log := logger.FromContext(ctx).WithField(logger.FieldComponent, "image_generation")
	log.WithField(logger.FieldCount, len(panels)).Info("Rendering storyboard panels")

	start := time.Now()
	results := make([]domain.RenderedPanel, len(panels))
	var success atomic.Int32

	var wg sync.WaitGroup
	for i := range panels {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			panel := &panels[idx]

			rendered := domain.RenderedPanel{
				PanelNumber: panel.PanelNumber,
				Caption:     panel.Caption,
			}

			prompt := prompts.PanelImagePrompt(panel, s.cfg.ArtStyle)
			if panel.PanelNumber == s.cfg.GridPanel {
				prompt = prompts.GridPanelImagePrompt(panel, s.cfg.ArtStyle)
			}

			data, mimeType, err := s.renderOne(ctx, prompt)
			if err != nil {
				rendered.Error = err.Error()
				log.WithField(logger.FieldPanel, panel.PanelNumber).
					WithError(err).
					Warn("Panel render failed")
			} else {
				rendered.ImageBase64 = data
				rendered.MimeType = mimeType
				success.Add(1)
			}

			results[idx] = rendered
		}(i)
	}
	wg.Wait()

	log.WithFields(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		"success_count":        success.Load(),
		"total":                len(panels),
	}).Info("Panel rendering complete")

	return &domain.RenderResult{
		Panels:       results,
		TotalPanels:  len(panels),
		SuccessCount: int(success.Load()),
	}
}

// renderOne streams one panel's generation and returns the first inline image
// chunk. The stream is abandoned as soon as an image arrives; trailing text
// chunks are never read.
func (s *ImageService) renderOne(ctx context.Context, prompt string) (string, string, error) {
	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", s.base, s.model)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", s.apiKey).
		SetBody(req).
		Post(url)
	if err != nil {
		return "", "", fmt.Errorf("%w: image request failed: %v", domain.ErrGeneration, err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return "", "", fmt.Errorf("%w: image endpoint returned HTTP %d", domain.ErrGeneration, resp.StatusCode())
	}

	scanner := bufio.NewScanner(body)
	// Inline image chunks carry whole base64 payloads on one SSE line.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" || payload == "[DONE]" {
			continue
		}

		var chunk geminiChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			continue
		}
		if chunk.Error != nil {
			return "", "", fmt.Errorf("%w: %s", domain.ErrGeneration, chunk.Error.Message)
		}

		for _, cand := range chunk.Candidates {
			for _, part := range cand.Content.Parts {
				if part.InlineData != nil && part.InlineData.Data != "" {
					mimeType := part.InlineData.MimeType
					if mimeType == "" {
						mimeType = "image/png"
					}
					// First image wins; stop consuming the stream.
					return part.InlineData.Data, mimeType, nil
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return "", "", fmt.Errorf("%w: stream read failed: %v", domain.ErrGeneration, err)
	}

	return "", "", fmt.Errorf("%w: stream ended without an image", domain.ErrGeneration)
}
