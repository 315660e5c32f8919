package domain

// ComicPanel is one panel of a storyboard. Panel numbers are unique and dense
// starting at 1.
type ComicPanel struct {
	PanelNumber       int    `json:"panel_number"`
	Caption           string `json:"caption"`
	VisualDescription string `json:"visual_description"`
	CharacterDetails  string `json:"character_details"`
	Composition       string `json:"composition"`
	Mood              string `json:"mood"`
}

// Storyboard is a fixed-panel-count visual script for one viral moment.
type Storyboard struct {
	Title        string       `json:"title"`
	Style        string       `json:"style"`
	Tone         string       `json:"tone"`
	Panels       []ComicPanel `json:"panels"`
	NarrativeArc string       `json:"narrative_arc,omitempty"`
	Hashtags     []string     `json:"hashtags,omitempty"`
	PostingTip   string       `json:"posting_tip,omitempty"`
}

// CoherenceReview is the advisory self-critique of a storyboard. It is attached
// to results but never blocks or mutates downstream steps.
type CoherenceReview struct {
	IsCoherent     bool          `json:"isCoherent"`
	OverallScore   int           `json:"overallScore"`
	Recommendation string        `json:"recommendation"`
	PanelReviews   []PanelReview `json:"panelReviews"`
	Strengths      []string      `json:"strengths,omitempty"`
	Suggestions    []string      `json:"suggestions,omitempty"`
}

// PanelReview holds the per-panel pass/fail sub-checks of a coherence review.
type PanelReview struct {
	PanelNumber          int    `json:"panelNumber"`
	ContextClarity       string `json:"contextClarity"`
	CharacterConsistency string `json:"characterConsistency"`
	VisualFlow           string `json:"visualFlow"`
	NarrativeCoherence   string `json:"narrativeCoherence"`
	Notes                string `json:"notes,omitempty"`
}

// ComicSummary is the optional narrative breakdown of a finished comic.
type ComicSummary struct {
	Context        string           `json:"context"`
	ViralPotential string           `json:"viralPotential"`
	PanelBreakdown []PanelBreakdown `json:"panelBreakdown"`
	KeyThemes      []string         `json:"keyThemes"`
	TargetAudience string           `json:"targetAudience"`
}

// PanelBreakdown explains one panel's contribution to the story.
type PanelBreakdown struct {
	PanelNumber       int    `json:"panelNumber"`
	Title             string `json:"title"`
	VisualDescription string `json:"visualDescription"`
	DialogueCaption   string `json:"dialogueCaption"`
	NarrativePurpose  string `json:"narrativePurpose"`
}
