package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"sync"
	"time"

	// Registered decoders for panel dimension extraction.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/logger"
	"github.com/google/uuid"
)

// TranscriptFetcher retrieves a transcript for a video URL.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoURL string) (*Transcript, error)
}

// MomentFinder ranks transcript excerpts by viral potential.
type MomentFinder interface {
	FindMoments(ctx context.Context, transcript string) (*domain.ViralAnalysis, error)
}

// StoryboardMaker generates and reviews storyboards.
type StoryboardMaker interface {
	Generate(ctx context.Context, moment *domain.ViralSegment) (*domain.Storyboard, error)
	Review(ctx context.Context, sb *domain.Storyboard) (*domain.CoherenceReview, error)
}

// SummaryWriter writes the optional narrative breakdown.
type SummaryWriter interface {
	Breakdown(ctx context.Context, moment *domain.ViralSegment, sb *domain.Storyboard) (*domain.ComicSummary, error)
}

// VideoStore persists processed video records.
type VideoStore interface {
	Create(ctx context.Context, video *domain.VideoRecord) error
}

// ComicStore persists storyboard and panel records.
type ComicStore interface {
	Create(ctx context.Context, sb *domain.StoryboardRecord) error
	CreatePanels(ctx context.Context, panels []domain.PanelRecord) error
}

// Pipeline orchestrates the full run: transcript, viral analysis, selection,
// storyboard, advisory review, then images and summary in parallel, and
// finally persistence. Required step failures abort the run with a step-tagged
// error; optional step failures are caught locally and the run continues.
type Pipeline struct {
	transcripts TranscriptFetcher
	viral       MomentFinder
	storyboards StoryboardMaker
	summaries   SummaryWriter
	renderer    PanelRenderer
	videos      VideoStore
	comics      ComicStore
}

// NewPipeline creates a new Pipeline. Stores may be nil, in which case
// persistence is skipped for every run.
func NewPipeline(
	transcripts TranscriptFetcher,
	viral MomentFinder,
	storyboards StoryboardMaker,
	summaries SummaryWriter,
	renderer PanelRenderer,
	videos VideoStore,
	comics ComicStore,
) *Pipeline {
	return &Pipeline{
		transcripts: transcripts,
		viral:       viral,
		storyboards: storyboards,
		summaries:   summaries,
		renderer:    renderer,
		videos:      videos,
		comics:      comics,
	}
}

// Run executes the pipeline end to end.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - req: run input; either VideoURL or ManualTranscript must be set.
// Returns:
//   - *domain.PipelineResult: aggregate output with optional artifacts absent
//     when their step failed or was skipped.
//   - error: step-tagged error for required step failures.
func (p *Pipeline) Run(ctx context.Context, req *domain.PipelineRequest) (*domain.PipelineResult, error) {
	if req.VideoURL == "" && req.ManualTranscript == "" {
		return nil, fmt.Errorf("%w: either video_url or manual_transcript is required", domain.ErrInvalidInput)
	}

	pipelineID := uuid.New().String()
	ctx = logger.SetPipelineID(ctx, pipelineID)
	log := logger.FromContext(ctx)
	log.WithField("video_url", req.VideoURL).Info("Pipeline run started")

	runStart := time.Now()
	result := &domain.PipelineResult{VideoURL: req.VideoURL}

	// Transcript
	logState(log, domain.StateTranscriptPending)
	transcript, err := p.resolveTranscript(ctx, req)
	if err != nil {
		return nil, domain.NewStepError(domain.StepTranscript, err)
	}
	result.TranscriptWords = CountWords(transcript)
	result.Metrics.TranscriptMs = time.Since(runStart).Milliseconds()
	logState(log, domain.StateTranscribed)

	// Viral analysis
	logState(log, domain.StateAnalyzingVirality)
	stepStart := time.Now()
	analysis, err := p.viral.FindMoments(ctx, transcript)
	if err != nil {
		return nil, domain.NewStepError(domain.StepAnalysis, err)
	}
	result.ViralAnalysis = analysis
	result.Metrics.ViralAnalysisMs = time.Since(stepStart).Milliseconds()

	// Selection: manual rank when provided, otherwise the model's nomination.
	selectedRank := analysis.Selected.Rank
	if req.SelectedRank != nil {
		logState(log, domain.StateAwaitingSelection)
		selectedRank = *req.SelectedRank
	}
	moment := analysis.SegmentByRank(selectedRank)
	if moment == nil {
		return nil, domain.NewStepError(domain.StepSelection,
			fmt.Errorf("%w: rank %d", domain.ErrSelectionMismatch, selectedRank))
	}
	result.SelectedSegment = moment
	logState(log, domain.StateSelected)

	// Storyboard
	logState(log, domain.StateGeneratingStoryboard)
	stepStart = time.Now()
	sb, err := p.storyboards.Generate(ctx, moment)
	if err != nil {
		return nil, domain.NewStepError(domain.StepStoryboard, err)
	}
	result.Storyboard = sb
	result.Metrics.StoryboardMs = time.Since(stepStart).Milliseconds()
	logState(log, domain.StateStoryboarded)

	// Coherence review is advisory: a failure is logged and the run continues.
	stepStart = time.Now()
	if review, err := p.storyboards.Review(ctx, sb); err != nil {
		log.WithError(err).Warn("Coherence review failed, continuing without it")
	} else {
		result.CoherenceReview = review
	}
	result.Metrics.ReviewMs = time.Since(stepStart).Milliseconds()

	// Images and summary are independent; run them in parallel. Both are
	// optional, so each catches its own failure.
	var wg sync.WaitGroup
	if req.WantImages() && p.renderer != nil {
		logState(log, domain.StateRenderingImages)
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			result.ComicImages = p.renderer.RenderPanels(ctx, sb.Panels)
			result.Metrics.ImageGenerationMs = time.Since(start).Milliseconds()
		}()
	}
	if p.summaries != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			summary, err := p.summaries.Breakdown(ctx, moment, sb)
			if err != nil {
				log.WithError(err).Warn("Summary generation failed, continuing without it")
			} else {
				result.ComicSummary = summary
			}
			result.Metrics.SummaryMs = time.Since(start).Milliseconds()
		}()
	}
	wg.Wait()

	// Persistence never fails the run; the caller still gets the artifacts.
	if req.WantPersist() && p.videos != nil && p.comics != nil {
		stepStart = time.Now()
		videoID, storyboardID, err := p.persist(ctx, req, result)
		if err != nil {
			log.WithError(err).Error("Persistence failed, returning unpersisted result")
			result.PersistError = err.Error()
		} else {
			result.VideoID = videoID
			result.StoryboardID = storyboardID
		}
		result.Metrics.PersistenceMs = time.Since(stepStart).Milliseconds()
	}

	result.Metrics.TotalTimeSeconds = time.Since(runStart).Seconds()
	logState(log, domain.StateComplete)
	log.WithFields(logger.Fields{
		"total_seconds": result.Metrics.TotalTimeSeconds,
		"video_id":      result.VideoID,
	}).Info("Pipeline run complete")

	return result, nil
}

func logState(log *logger.Logger, state domain.PipelineState) {
	log.WithField("state", state).Debug("Pipeline state changed")
}

func (p *Pipeline) resolveTranscript(ctx context.Context, req *domain.PipelineRequest) (string, error) {
	if req.ManualTranscript != "" {
		return req.ManualTranscript, nil
	}
	t, err := p.transcripts.Fetch(ctx, req.VideoURL)
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

// persist writes the run in parent-first order: video, storyboard, panels.
func (p *Pipeline) persist(ctx context.Context, req *domain.PipelineRequest, result *domain.PipelineResult) (string, string, error) {
	status := domain.ProcessingStatusComplete
	if result.ComicImages != nil && result.ComicImages.SuccessCount < result.ComicImages.TotalPanels {
		status = domain.ProcessingStatusPartial
	}

	video := &domain.VideoRecord{
		ID:                   uuid.New().String(),
		VideoURL:             req.VideoURL,
		TranscriptWords:      result.TranscriptWords,
		SelectedSegmentRank:  result.SelectedSegment.Rank,
		SelectedSegmentScore: result.SelectedSegment.Score,
		ViralType:            result.SelectedSegment.ViralType,
		ProcessingStatus:     status,
	}
	if err := p.videos.Create(ctx, video); err != nil {
		return "", "", fmt.Errorf("video record: %w", err)
	}

	sb := result.Storyboard
	board := &domain.StoryboardRecord{
		ID:           uuid.New().String(),
		VideoID:      video.ID,
		Title:        sb.Title,
		Style:        sb.Style,
		Tone:         sb.Tone,
		NarrativeArc: sb.NarrativeArc,
		Hashtags:     domain.StringArray(sb.Hashtags),
		PostingTip:   sb.PostingTip,
	}
	if err := p.comics.Create(ctx, board); err != nil {
		return "", "", fmt.Errorf("storyboard record: %w", err)
	}

	panels := make([]domain.PanelRecord, 0, len(sb.Panels))
	for _, panel := range sb.Panels {
		rec := domain.PanelRecord{
			ID:                uuid.New().String(),
			StoryboardID:      board.ID,
			PanelNumber:       panel.PanelNumber,
			Caption:           panel.Caption,
			VisualDescription: panel.VisualDescription,
			CharacterDetails:  panel.CharacterDetails,
			Composition:       panel.Composition,
			Mood:              panel.Mood,
		}
		if result.ComicImages != nil {
			if rendered := renderedFor(result.ComicImages, panel.PanelNumber); rendered != nil {
				if rendered.OK() {
					rec.ImageBase64 = rendered.ImageBase64
					rec.MimeType = rendered.MimeType
					rec.ImageWidth, rec.ImageHeight = imageDimensions(rendered.ImageBase64)
				} else {
					rec.RenderError = rendered.Error
				}
			}
		}
		panels = append(panels, rec)
	}
	if err := p.comics.CreatePanels(ctx, panels); err != nil {
		return "", "", fmt.Errorf("panel records: %w", err)
	}

	return video.ID, board.ID, nil
}

func renderedFor(images *domain.RenderResult, panelNumber int) *domain.RenderedPanel {
	for i := range images.Panels {
		if images.Panels[i].PanelNumber == panelNumber {
			return &images.Panels[i]
		}
	}
	return nil
}

// imageDimensions decodes just the image header to record width and height.
// Returns zeros when the payload cannot be decoded; dimensions are metadata,
// not a validity gate.
func imageDimensions(imageBase64 string) (int, int) {
	data, err := base64.StdEncoding.DecodeString(imageBase64)
	if err != nil {
		return 0, 0
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
