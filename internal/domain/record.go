package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ProcessingStatus represents the lifecycle of a persisted video record.
type ProcessingStatus string

const (
	ProcessingStatusComplete ProcessingStatus = "complete"
	ProcessingStatusPartial  ProcessingStatus = "partial"
)

// StringArray is a custom type for storing string arrays as JSON in the database.
type StringArray []string

// Value implements the driver.Valuer interface for database serialization.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return errors.New("failed to scan StringArray")
		}
		bytes = []byte(str)
	}
	return json.Unmarshal(bytes, a)
}

// VideoRecord is the durable copy of one processed video. Records are created
// once at the end of a successful run and read many times thereafter; they are
// never updated in place.
type VideoRecord struct {
	ID                   string           `gorm:"type:text;primaryKey" json:"id"`
	VideoURL             string           `gorm:"type:text;index:idx_videos_url" json:"video_url"`
	TranscriptWords      int              `json:"transcript_words"`
	SelectedSegmentRank  int              `json:"selected_segment_rank"`
	SelectedSegmentScore int              `json:"selected_segment_score"`
	ViralType            string           `gorm:"type:text" json:"viral_type"`
	ProcessingStatus     ProcessingStatus `gorm:"type:text;default:complete" json:"processing_status"`
	CreatedAt            time.Time        `json:"created_at"`
}

// TableName returns the database table name for VideoRecord.
func (VideoRecord) TableName() string {
	return "videos"
}

// StoryboardRecord is the durable copy of a generated storyboard, keyed to its
// parent video.
type StoryboardRecord struct {
	ID           string      `gorm:"type:text;primaryKey" json:"id"`
	VideoID      string      `gorm:"type:text;not null;index:idx_storyboards_video" json:"video_id"`
	Title        string      `gorm:"type:text" json:"title"`
	Style        string      `gorm:"type:text" json:"style"`
	Tone         string      `gorm:"type:text" json:"tone"`
	NarrativeArc string      `gorm:"type:text" json:"narrative_arc"`
	Hashtags     StringArray `gorm:"type:text" json:"hashtags"`
	PostingTip   string      `gorm:"type:text" json:"posting_tip"`
	CreatedAt    time.Time   `json:"created_at"`
}

// TableName returns the database table name for StoryboardRecord.
func (StoryboardRecord) TableName() string {
	return "storyboards"
}

// PanelRecord is the durable copy of one storyboard panel plus its render
// outcome. ImageBase64 and RenderError mirror the RenderedPanel invariant:
// at most one of the two is populated.
type PanelRecord struct {
	ID                string    `gorm:"type:text;primaryKey" json:"id"`
	StoryboardID      string    `gorm:"type:text;not null;index:idx_panels_storyboard" json:"storyboard_id"`
	PanelNumber       int       `gorm:"not null" json:"panel_number"`
	Caption           string    `gorm:"type:text" json:"caption"`
	VisualDescription string    `gorm:"type:text" json:"visual_description"`
	CharacterDetails  string    `gorm:"type:text" json:"character_details"`
	Composition       string    `gorm:"type:text" json:"composition"`
	Mood              string    `gorm:"type:text" json:"mood"`
	ImageBase64       string    `gorm:"type:text" json:"image_base64,omitempty"`
	MimeType          string    `gorm:"type:text" json:"mime_type,omitempty"`
	ImageWidth        int       `json:"image_width,omitempty"`
	ImageHeight       int       `json:"image_height,omitempty"`
	RenderError       string    `gorm:"type:text" json:"render_error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName returns the database table name for PanelRecord.
func (PanelRecord) TableName() string {
	return "comic_panels"
}

// StoryboardWithPanels joins a storyboard record with its panels and parent
// video for read endpoints.
type StoryboardWithPanels struct {
	StoryboardRecord
	Panels []PanelRecord `json:"panels"`
	Video  *VideoRecord  `json:"video,omitempty"`
}
