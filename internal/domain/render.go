package domain

// RenderedPanel is the outcome of one panel's image render attempt. Exactly one
// of ImageBase64 or Error is populated.
type RenderedPanel struct {
	PanelNumber int    `json:"panel_number"`
	Caption     string `json:"caption,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	Error       string `json:"error,omitempty"`
}

// OK reports whether the panel rendered successfully.
func (p *RenderedPanel) OK() bool {
	return p.Error == "" && p.ImageBase64 != ""
}

// RenderResult aggregates the per-panel outcomes of one rendering fan-out.
// SuccessCount lets callers present partial results.
type RenderResult struct {
	Panels       []RenderedPanel `json:"panels"`
	TotalPanels  int             `json:"total_panels"`
	SuccessCount int             `json:"success_count"`
}
