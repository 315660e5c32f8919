package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/logger"
	"github.com/go-resty/resty/v2"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtube\.com/watch\?.*&v=)([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
}

// TranscriptService fetches caption tracks for a video URL and flattens them
// into a single transcript string.
type TranscriptService struct {
	client *resty.Client
}

// NewTranscriptService creates a new TranscriptService.
func NewTranscriptService() *TranscriptService {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	return &TranscriptService{client: client}
}

// Transcript is a fetched transcript with basic stats for the response payload.
type Transcript struct {
	VideoID   string `json:"video_id"`
	Text      string `json:"transcript"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
}

// ExtractVideoID pulls the 11-character video ID out of a watch, share, embed,
// or shorts URL.
// Parameters:
//   - videoURL: any supported YouTube URL form.
// Returns:
//   - string: the video ID.
//   - error: wraps domain.ErrInvalidInput if no ID can be extracted.
func ExtractVideoID(videoURL string) (string, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return "", fmt.Errorf("%w: empty video URL", domain.ErrInvalidInput)
	}
	for _, p := range videoIDPatterns {
		if m := p.FindStringSubmatch(videoURL); m != nil {
			return m[1], nil
		}
	}
	return "", fmt.Errorf("%w: unrecognized video URL %q", domain.ErrInvalidInput, videoURL)
}

// timedtext caption track XML
type captionTrack struct {
	XMLName xml.Name      `xml:"transcript"`
	Texts   []captionText `xml:"text"`
}

type captionText struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",chardata"`
}

// Fetch retrieves the caption track for a video URL and returns the flattened
// transcript.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - videoURL: the video URL to fetch captions for.
// Returns:
//   - *Transcript: transcript text with word and character counts.
//   - error: domain.ErrInvalidInput for a bad URL, domain.ErrNoTranscript when
//     no caption track is available.
func (s *TranscriptService) Fetch(ctx context.Context, videoURL string) (*Transcript, error) {
	videoID, err := ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).
		WithField(logger.FieldComponent, "transcript").
		WithField("video_id", videoID).
		Info("Fetching caption track")

	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"v":    videoID,
			"lang": "en",
		}).
		Get("https://www.youtube.com/api/timedtext")
	if err != nil {
		return nil, fmt.Errorf("%w: caption fetch failed: %v", domain.ErrNoTranscript, err)
	}
	if resp.StatusCode() != 200 || len(resp.Body()) == 0 {
		return nil, fmt.Errorf("%w: no caption track for video %s", domain.ErrNoTranscript, videoID)
	}

	text, err := flattenCaptions(resp.Body())
	if err != nil || text == "" {
		return nil, fmt.Errorf("%w: empty caption track for video %s", domain.ErrNoTranscript, videoID)
	}

	return &Transcript{
		VideoID:   videoID,
		Text:      text,
		WordCount: CountWords(text),
		CharCount: len(text),
	}, nil
}

func flattenCaptions(body []byte) (string, error) {
	var track captionTrack
	if err := xml.Unmarshal(body, &track); err != nil {
		return "", err
	}
	parts := make([]string, 0, len(track.Texts))
	for _, t := range track.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Body))
		if line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " "), nil
}

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// TruncateTranscript caps a transcript at budget characters, cutting at the
// last word boundary before the limit.
func TruncateTranscript(text string, budget int) string {
	if budget <= 0 || len(text) <= budget {
		return text
	}
	cut := text[:budget]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut
}
