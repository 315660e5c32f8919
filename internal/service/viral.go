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

// ViralService ranks transcript excerpts by viral potential.
type ViralService struct {
	gen Generator
	cfg *config.PipelineConfig
}

// NewViralService creates a new ViralService.
// Parameters:
//   - gen: structured-generation client.
//   - cfg: pipeline tuning knobs (budget, segment count, temperature).
// Returns:
//   - *ViralService: initialized service.
func NewViralService(gen Generator, cfg *config.PipelineConfig) *ViralService {
	return &ViralService{gen: gen, cfg: cfg}
}

// FindMoments analyzes a transcript and returns the ranked candidate list plus
// the model's own nomination. The transcript is truncated to the configured
// character budget before analysis.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - transcript: full transcript text.
// Returns:
//   - *domain.ViralAnalysis: exactly SegmentCount candidates with dense ranks.
//   - error: domain.ErrInvalidInput for an empty transcript, domain.ErrGeneration
//     when the model output violates the schema.
func (s *ViralService) FindMoments(ctx context.Context, transcript string) (*domain.ViralAnalysis, error) {
	if transcript == "" {
		return nil, fmt.Errorf("%w: empty transcript", domain.ErrInvalidInput)
	}

	truncated := TruncateTranscript(transcript, s.cfg.TranscriptBudget)

	log := logger.FromContext(ctx).WithField(logger.FieldComponent, "viral_analysis")
	log.WithFields(logger.Fields{
		"transcript_chars": len(transcript),
		"analyzed_chars":   len(truncated),
	}).Info("Analyzing transcript for viral moments")

	start := time.Now()
	raw, err := s.gen.Generate(ctx, prompts.ViralSystemPrompt, prompts.ViralUserPrompt(truncated), s.cfg.AnalysisTemperature)
	if err != nil {
		return nil, err
	}

	analysis, err := ParseViralAnalysis(raw, s.cfg.SegmentCount)
	if err != nil {
		return nil, err
	}

	log.WithFields(logger.Fields{
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
		logger.FieldCount:      len(analysis.Segments),
		"selected_rank":        analysis.Selected.Rank,
	}).Info("Viral analysis complete")

	return analysis, nil
}

// ParseViralAnalysis decodes and validates a ranking response. The candidate
// list must contain exactly want segments carrying unique dense ranks 1..want,
// and the nomination must reference one of them.
func ParseViralAnalysis(raw json.RawMessage, want int) (*domain.ViralAnalysis, error) {
	var analysis domain.ViralAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("%w: malformed analysis response: %v", domain.ErrGeneration, err)
	}

	if len(analysis.Segments) != want {
		return nil, fmt.Errorf("%w: expected %d segments, got %d", domain.ErrGeneration, want, len(analysis.Segments))
	}

	seen := make(map[int]bool, want)
	for _, seg := range analysis.Segments {
		if seg.Rank < 1 || seg.Rank > want {
			return nil, fmt.Errorf("%w: segment rank %d out of range 1..%d", domain.ErrGeneration, seg.Rank, want)
		}
		if seen[seg.Rank] {
			return nil, fmt.Errorf("%w: duplicate segment rank %d", domain.ErrGeneration, seg.Rank)
		}
		seen[seg.Rank] = true
		if seg.Excerpt == "" {
			return nil, fmt.Errorf("%w: segment rank %d has empty excerpt", domain.ErrGeneration, seg.Rank)
		}
	}

	if analysis.SegmentByRank(analysis.Selected.Rank) == nil {
		return nil, fmt.Errorf("%w: selected rank %d does not match any segment", domain.ErrGeneration, analysis.Selected.Rank)
	}

	return &analysis, nil
}
