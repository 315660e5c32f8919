package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/frenzy2004/JetSki/internal/config"
	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/logger"
	"github.com/frenzy2004/JetSki/internal/prompts"
)

// StoryboardService turns a selected viral moment into a fixed-panel-count
// storyboard and optionally reviews it for coherence.
type StoryboardService struct {
	gen Generator
	cfg *config.PipelineConfig
}

// NewStoryboardService creates a new StoryboardService.
func NewStoryboardService(gen Generator, cfg *config.PipelineConfig) *StoryboardService {
	return &StoryboardService{gen: gen, cfg: cfg}
}

// Generate creates a storyboard for the selected moment.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - moment: the selected viral segment.
// Returns:
//   - *domain.Storyboard: exactly PanelCount panels with dense panel numbers.
//   - error: domain.ErrGeneration when the model output violates the schema.
func (s *StoryboardService) Generate(ctx context.Context, moment *domain.ViralSegment) (*domain.Storyboard, error) {
	if moment == nil || moment.Excerpt == "" {
		return nil, fmt.Errorf("%w: missing viral moment", domain.ErrInvalidInput)
	}

	log := logger.FromContext(ctx).WithField(logger.FieldComponent, "storyboard")
	log.WithField("moment_title", moment.Title).Info("Generating storyboard")

	start := time.Now()
	raw, err := s.gen.Generate(ctx,
		prompts.StoryboardSystemPrompt(s.cfg.PanelCount),
		prompts.StoryboardUserPrompt(moment, s.cfg.PanelCount, s.cfg.ArtStyle),
		s.cfg.StoryboardTemperature)
	if err != nil {
		return nil, err
	}

	sb, err := ParseStoryboard(raw, s.cfg.PanelCount)
	if err != nil {
		return nil, err
	}

	log.WithFields(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		"title":                sb.Title,
	}).Info("Storyboard complete")

	return sb, nil
}

// Review runs the advisory coherence check on a finished storyboard. A failed
// review never blocks downstream steps; callers attach the result when present
// and log the error when not.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sb: the storyboard to review.
// Returns:
//   - *domain.CoherenceReview: the self-critique.
//   - error: domain.ErrGeneration when the review output cannot be parsed.
func (s *StoryboardService) Review(ctx context.Context, sb *domain.Storyboard) (*domain.CoherenceReview, error) {
	raw, err := s.gen.Generate(ctx, prompts.ReviewSystemPrompt, prompts.ReviewUserPrompt(sb), s.cfg.ReviewTemperature)
	if err != nil {
		return nil, err
	}

	var review domain.CoherenceReview
	if err := json.Unmarshal(raw, &review); err != nil {
		return nil, fmt.Errorf("%w: malformed review response: %v", domain.ErrGeneration, err)
	}
	return &review, nil
}

// ParseStoryboard decodes and validates a storyboard response. The panel list
// must contain exactly want panels carrying unique dense numbers 1..want.
func ParseStoryboard(raw json.RawMessage, want int) (*domain.Storyboard, error) {
	var sb domain.Storyboard
	if err := json.Unmarshal(raw, &sb); err != nil {
		return nil, fmt.Errorf("%w: malformed storyboard response: %v", domain.ErrGeneration, err)
	}

	if len(sb.Panels) != want {
		return nil, fmt.Errorf("%w: expected %d panels, got %d", domain.ErrGeneration, want, len(sb.Panels))
	}

	seen := make(map[int]bool, want)
	for _, p := range sb.Panels {
		if p.PanelNumber < 1 || p.PanelNumber > want {
			return nil, fmt.Errorf("%w: panel number %d out of range 1..%d", domain.ErrGeneration, p.PanelNumber, want)
		}
		if seen[p.PanelNumber] {
			return nil, fmt.Errorf("%w: duplicate panel number %d", domain.ErrGeneration, p.PanelNumber)
		}
		seen[p.PanelNumber] = true
		if p.VisualDescription == "" {
			return nil, fmt.Errorf("%w: panel %d has empty visual description", domain.ErrGeneration, p.PanelNumber)
		}
	}

	return &sb, nil
}
