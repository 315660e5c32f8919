package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/frenzy2004/JetSki/internal/config"
	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/prompts"
)

// SummaryService writes the optional narrative breakdown of a finished comic.
type SummaryService struct {
	gen Generator
	cfg *config.PipelineConfig
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(gen Generator, cfg *config.PipelineConfig) *SummaryService {
	return &SummaryService{gen: gen, cfg: cfg}
}

// Breakdown generates the comic summary for a moment/storyboard pair. The
// summary is an optional pipeline step; callers treat a failure here as
// advisory.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - moment: the selected viral segment.
//   - sb: the finished storyboard.
// Returns:
//   - *domain.ComicSummary: the breakdown document.
//   - error: domain.ErrGeneration when the output cannot be parsed.
func (s *SummaryService) Breakdown(ctx context.Context, moment *domain.ViralSegment, sb *domain.Storyboard) (*domain.ComicSummary, error) {
	raw, err := s.gen.Generate(ctx, prompts.SummarySystemPrompt, prompts.SummaryUserPrompt(moment, sb), s.cfg.SummaryTemperature)
	if err != nil {
		return nil, err
	}

	var summary domain.ComicSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("%w: malformed summary response: %v", domain.ErrGeneration, err)
	}
	return &summary, nil
}
