package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/frenzy2004/JetSki/internal/domain"
)

func validStoryboardJSON() string {
	panels := make([]string, 6)
	for i := 0; i < 6; i++ {
		panels[i] = fmt.Sprintf(`{
			"panel_number": %d,
			"caption": "caption %d",
			"visual_description": "scene %d",
			"character_details": "hero, determined",
			"composition": "wide shot",
			"mood": "tense"
		}`, i+1, i+1, i+1)
	}
	return fmt.Sprintf(`{
		"title": "The Big Reveal",
		"style": "vintage",
		"tone": "dramatic",
		"narrative_arc": "setup to payoff",
		"hashtags": ["#comic", "#viral"],
		"posting_tip": "post in the morning",
		"panels": [%s]
	}`, strings.Join(panels, ","))
}

func TestParseStoryboard(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid storyboard",
			raw:  validStoryboardJSON(),
		},
		{
			name:    "too few panels",
			raw:     `{"title": "x", "panels": [{"panel_number": 1, "visual_description": "a"}]}`,
			wantErr: true,
		},
		{
			name: "duplicate panel numbers",
			raw: `{"panels": [
				{"panel_number": 1, "visual_description": "a"},
				{"panel_number": 1, "visual_description": "b"},
				{"panel_number": 3, "visual_description": "c"},
				{"panel_number": 4, "visual_description": "d"},
				{"panel_number": 5, "visual_description": "e"},
				{"panel_number": 6, "visual_description": "f"}
			]}`,
			wantErr: true,
		},
		{
			name: "panel number out of range",
			raw: `{"panels": [
				{"panel_number": 0, "visual_description": "a"},
				{"panel_number": 2, "visual_description": "b"},
				{"panel_number": 3, "visual_description": "c"},
				{"panel_number": 4, "visual_description": "d"},
				{"panel_number": 5, "visual_description": "e"},
				{"panel_number": 6, "visual_description": "f"}
			]}`,
			wantErr: true,
		},
		{
			name: "empty visual description",
			raw: `{"panels": [
				{"panel_number": 1, "visual_description": ""},
				{"panel_number": 2, "visual_description": "b"},
				{"panel_number": 3, "visual_description": "c"},
				{"panel_number": 4, "visual_description": "d"},
				{"panel_number": 5, "visual_description": "e"},
				{"panel_number": 6, "visual_description": "f"}
			]}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sb, err := ParseStoryboard(json.RawMessage(tt.raw), 6)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, domain.ErrGeneration) {
					t.Errorf("expected ErrGeneration, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(sb.Panels) != 6 {
				t.Errorf("expected 6 panels, got %d", len(sb.Panels))
			}
			if sb.Title != "The Big Reveal" {
				t.Errorf("unexpected title %q", sb.Title)
			}
		})
	}
}

func TestStoryboardService_Generate(t *testing.T) {
	gen := &fakeGenerator{raw: validStoryboardJSON()}
	svc := NewStoryboardService(gen, pipelineTestConfig())

	moment := &domain.ViralSegment{
		Rank:    1,
		Title:   "A",
		Excerpt: "quote one",
	}
	sb, err := svc.Generate(context.Background(), moment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sb.Panels) != 6 {
		t.Errorf("expected 6 panels, got %d", len(sb.Panels))
	}
	if gen.lastTemp != 0.8 {
		t.Errorf("expected storyboard temperature 0.8, got %v", gen.lastTemp)
	}
}

func TestStoryboardService_Generate_MissingMoment(t *testing.T) {
	gen := &fakeGenerator{raw: validStoryboardJSON()}
	svc := NewStoryboardService(gen, pipelineTestConfig())

	if _, err := svc.Generate(context.Background(), nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("expected no generation calls, got %d", gen.calls)
	}
}

func TestStoryboardService_Review(t *testing.T) {
	gen := &fakeGenerator{raw: `{
		"isCoherent": true,
		"overallScore": 92,
		"recommendation": "proceed",
		"panelReviews": [{"panelNumber": 1, "contextClarity": "pass", "characterConsistency": "pass", "visualFlow": "pass", "narrativeCoherence": "pass"}],
		"strengths": ["clear arc"]
	}`}
	svc := NewStoryboardService(gen, pipelineTestConfig())

	sb, err := ParseStoryboard(json.RawMessage(validStoryboardJSON()), 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	review, err := svc.Review(context.Background(), sb)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !review.IsCoherent || review.OverallScore != 92 {
		t.Errorf("unexpected review: %+v", review)
	}
	if gen.lastTemp != 0.3 {
		t.Errorf("expected review temperature 0.3, got %v", gen.lastTemp)
	}
}
