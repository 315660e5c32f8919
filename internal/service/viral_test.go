package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/frenzy2004/JetSki/internal/config"
	"github.com/frenzy2004/JetSki/internal/domain"
)

func validAnalysisJSON() string {
	return `{
		"segments": [
			{"rank": 1, "score": 95, "title": "A", "excerpt": "quote one", "timestamps": "0:00 - 0:30", "viral_type": "quotable", "reason": "punchy"},
			{"rank": 2, "score": 80, "title": "B", "excerpt": "quote two", "timestamps": "1:00 - 1:30", "viral_type": "emotional", "reason": "moving"},
			{"rank": 3, "score": 70, "title": "C", "excerpt": "quote three", "timestamps": "2:00 - 2:30", "viral_type": "surprising", "reason": "twist"}
		],
		"selected": {"rank": 1, "reason": "strongest hook"}
	}`
}

func TestParseViralAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{
			name: "valid analysis",
			raw:  validAnalysisJSON(),
		},
		{
			name: "too few segments",
			raw: `{"segments": [
				{"rank": 1, "score": 95, "title": "A", "excerpt": "x", "timestamps": "", "viral_type": "", "reason": ""}
			], "selected": {"rank": 1, "reason": ""}}`,
			wantErr: true,
		},
		{
			name: "duplicate ranks",
			raw: `{"segments": [
				{"rank": 1, "excerpt": "a"}, {"rank": 1, "excerpt": "b"}, {"rank": 3, "excerpt": "c"}
			], "selected": {"rank": 1, "reason": ""}}`,
			wantErr: true,
		},
		{
			name: "rank out of range",
			raw: `{"segments": [
				{"rank": 1, "excerpt": "a"}, {"rank": 2, "excerpt": "b"}, {"rank": 5, "excerpt": "c"}
			], "selected": {"rank": 1, "reason": ""}}`,
			wantErr: true,
		},
		{
			name: "selected rank missing from segments",
			raw: `{"segments": [
				{"rank": 1, "excerpt": "a"}, {"rank": 2, "excerpt": "b"}, {"rank": 3, "excerpt": "c"}
			], "selected": {"rank": 7, "reason": ""}}`,
			wantErr: true,
		},
		{
			name: "empty excerpt",
			raw: `{"segments": [
				{"rank": 1, "excerpt": ""}, {"rank": 2, "excerpt": "b"}, {"rank": 3, "excerpt": "c"}
			], "selected": {"rank": 2, "reason": ""}}`,
			wantErr: true,
		},
		{
			name:    "not an analysis object",
			raw:     `{"segments": "nope"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := ParseViralAnalysis(json.RawMessage(tt.raw), 3)
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
			if len(analysis.Segments) != 3 {
				t.Errorf("expected 3 segments, got %d", len(analysis.Segments))
			}
			if analysis.SegmentByRank(analysis.Selected.Rank) == nil {
				t.Error("selected rank should resolve to a segment")
			}
		})
	}
}

type fakeGenerator struct {
	raw   string
	err   error
	calls int

	lastSystem string
	lastUser   string
	lastTemp   float64
}

func (f *fakeGenerator) Generate(_ context.Context, systemPrompt, userPrompt string, temperature float64) (json.RawMessage, error) {
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userPrompt
	f.lastTemp = temperature
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(f.raw), nil
}

func pipelineTestConfig() *config.PipelineConfig {
	return &config.PipelineConfig{
		TranscriptBudget:      12000,
		SegmentCount:          3,
		PanelCount:            6,
		GridPanel:             3,
		ArtStyle:              "classic comic",
		AnalysisTemperature:   0.7,
		StoryboardTemperature: 0.8,
		ReviewTemperature:     0.3,
		SummaryTemperature:    0.7,
	}
}

func TestViralService_FindMoments(t *testing.T) {
	gen := &fakeGenerator{raw: validAnalysisJSON()}
	svc := NewViralService(gen, pipelineTestConfig())

	analysis, err := svc.FindMoments(context.Background(), "a perfectly ordinary transcript")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Selected.Rank != 1 {
		t.Errorf("expected selected rank 1, got %d", analysis.Selected.Rank)
	}
	if gen.lastTemp != 0.7 {
		t.Errorf("expected analysis temperature 0.7, got %v", gen.lastTemp)
	}
}

func TestViralService_EmptyTranscript(t *testing.T) {
	gen := &fakeGenerator{raw: validAnalysisJSON()}
	svc := NewViralService(gen, pipelineTestConfig())

	_, err := svc.FindMoments(context.Background(), "")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("expected no generation calls, got %d", gen.calls)
	}
}

func TestViralService_TruncatesToBudget(t *testing.T) {
	cfg := pipelineTestConfig()
	cfg.TranscriptBudget = 50
	gen := &fakeGenerator{raw: validAnalysisJSON()}
	svc := NewViralService(gen, cfg)

	long := ""
	for i := 0; i < 400; i++ {
		long += "word "
	}
	if _, err := svc.FindMoments(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gen.lastUser) >= len(long) {
		t.Error("expected prompt to carry a truncated transcript")
	}
}
