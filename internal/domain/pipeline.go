package domain

// PipelineState represents where a pipeline run is in its lifecycle.
type PipelineState string

const (
	StateTranscriptPending    PipelineState = "transcript_pending"
	StateTranscribed          PipelineState = "transcribed"
	StateAnalyzingVirality    PipelineState = "analyzing_virality"
	StateAwaitingSelection    PipelineState = "awaiting_selection"
	StateSelected             PipelineState = "selected"
	StateGeneratingStoryboard PipelineState = "generating_storyboard"
	StateStoryboarded         PipelineState = "storyboarded"
	StateRenderingImages      PipelineState = "rendering_images"
	StateComplete             PipelineState = "complete"
)

// Step names used for step-tagged errors and per-step metrics.
const (
	StepTranscript = "transcript"
	StepAnalysis   = "viral_analysis"
	StepSelection  = "selection"
	StepStoryboard = "storyboard"
	StepReview     = "review"
	StepImages     = "image_generation"
	StepSummary    = "summary"
	StepPersist    = "persistence"
	StepExport     = "export"
)

// PipelineMetrics holds per-step elapsed durations. Purely observational; it
// never affects control flow.
type PipelineMetrics struct {
	TotalTimeSeconds  float64 `json:"total_time_seconds"`
	TranscriptMs      int64   `json:"transcript_time_ms,omitempty"`
	ViralAnalysisMs   int64   `json:"viral_analysis_time_ms,omitempty"`
	StoryboardMs      int64   `json:"storyboard_time_ms,omitempty"`
	ReviewMs          int64   `json:"review_time_ms,omitempty"`
	ImageGenerationMs int64   `json:"image_generation_time_ms,omitempty"`
	SummaryMs         int64   `json:"summary_time_ms,omitempty"`
	PersistenceMs     int64   `json:"persistence_time_ms,omitempty"`
}

// PipelineRequest is the input for a full pipeline run. SelectedRank overrides
// the model's nomination when the caller has already picked a segment.
type PipelineRequest struct {
	VideoURL         string `json:"video_url"`
	ManualTranscript string `json:"manual_transcript"`
	SelectedRank     *int   `json:"selected_rank"`
	GenerateImages   *bool  `json:"generate_images"`
	Persist          *bool  `json:"persist"`
}

// WantImages reports whether image rendering was requested (default true).
func (r *PipelineRequest) WantImages() bool {
	return r.GenerateImages == nil || *r.GenerateImages
}

// WantPersist reports whether the run should be written to storage (default true).
func (r *PipelineRequest) WantPersist() bool {
	return r.Persist == nil || *r.Persist
}

// PipelineResult is the aggregate output of a run. Optional artifacts (review,
// summary, images) are simply absent when their step failed or was skipped, so
// callers can render partial results.
type PipelineResult struct {
	VideoURL        string           `json:"video_url,omitempty"`
	TranscriptWords int              `json:"transcript_words"`
	ViralAnalysis   *ViralAnalysis   `json:"viral_analysis"`
	SelectedSegment *ViralSegment    `json:"selected_segment"`
	Storyboard      *Storyboard      `json:"storyboard"`
	CoherenceReview *CoherenceReview `json:"coherence_review,omitempty"`
	ComicImages     *RenderResult    `json:"comic_images,omitempty"`
	ComicSummary    *ComicSummary    `json:"comic_summary,omitempty"`
	VideoID         string           `json:"video_id,omitempty"`
	StoryboardID    string           `json:"storyboard_id,omitempty"`
	PersistError    string           `json:"persist_error,omitempty"`
	Metrics         PipelineMetrics  `json:"metrics"`
}

// ExportResult reports the outcome of a drive export. Per-panel upload failures
// reduce UploadedPanels without failing the export.
type ExportResult struct {
	FolderKey      string   `json:"folder_key"`
	FolderURL      string   `json:"folder_url"`
	DocKey         string   `json:"doc_key"`
	DocURL         string   `json:"doc_url"`
	UploadedPanels int      `json:"uploaded_panels"`
	PanelURLs      []string `json:"panel_urls"`
}
