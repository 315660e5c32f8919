package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/frenzy2004/JetSki/internal/domain"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "watch URL",
			url:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "watch URL with extra params",
			url:  "https://www.youtube.com/watch?t=42&v=dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short URL",
			url:  "https://youtu.be/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "short URL with query",
			url:  "https://youtu.be/dQw4w9WgXcQ?si=abc",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "embed URL",
			url:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name: "shorts URL",
			url:  "https://www.youtube.com/shorts/dQw4w9WgXcQ",
			want: "dQw4w9WgXcQ",
		},
		{
			name:    "empty URL",
			url:     "",
			wantErr: true,
		},
		{
			name:    "unrelated URL",
			url:     "https://example.com/video/123",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got id %q", got)
				}
				if !errors.Is(err, domain.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTruncateTranscript(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		budget int
		want   string
	}{
		{
			name:   "under budget unchanged",
			text:   "short transcript",
			budget: 100,
			want:   "short transcript",
		},
		{
			name:   "cuts at word boundary",
			text:   "one two three four",
			budget: 12,
			want:   "one two",
		},
		{
			name:   "zero budget unchanged",
			text:   "anything",
			budget: 0,
			want:   "anything",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateTranscript(tt.text, tt.budget)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if tt.budget > 0 && len(got) > tt.budget {
				t.Errorf("result exceeds budget: %d > %d", len(got), tt.budget)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	if got := CountWords("  one two\nthree  "); got != 3 {
		t.Errorf("expected 3 words, got %d", got)
	}
	if got := CountWords(""); got != 0 {
		t.Errorf("expected 0 words, got %d", got)
	}
}

func TestFlattenCaptions(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.1">Hello &amp; welcome</text>
  <text start="2.1" dur="1.5">  to the show  </text>
  <text start="3.6" dur="0.5"></text>
</transcript>`)

	got, err := flattenCaptions(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Hello & welcome to the show"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if strings.Contains(got, "  ") {
		t.Error("expected single-spaced output")
	}
}
