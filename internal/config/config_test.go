package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("expected sqlite driver, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ConnMaxLifetime != time.Hour {
		t.Errorf("expected 1h conn lifetime, got %v", cfg.Database.ConnMaxLifetime)
	}

	// Pipeline knobs drive generation behavior; the defaults are contractual.
	p := cfg.Pipeline
	if p.TranscriptBudget != 12000 {
		t.Errorf("expected 12000 char budget, got %d", p.TranscriptBudget)
	}
	if p.SegmentCount != 3 {
		t.Errorf("expected 3 segments, got %d", p.SegmentCount)
	}
	if p.PanelCount != 6 {
		t.Errorf("expected 6 panels, got %d", p.PanelCount)
	}
	if p.GridPanel != 3 {
		t.Errorf("expected grid panel 3, got %d", p.GridPanel)
	}
	if p.AnalysisTemperature != 0.7 {
		t.Errorf("expected analysis temperature 0.7, got %v", p.AnalysisTemperature)
	}
	if p.StoryboardTemperature != 0.8 {
		t.Errorf("expected storyboard temperature 0.8, got %v", p.StoryboardTemperature)
	}
	if p.ReviewTemperature != 0.3 {
		t.Errorf("expected review temperature 0.3, got %v", p.ReviewTemperature)
	}
}

func TestDatabaseDSN(t *testing.T) {
	sqlite := DatabaseConfig{Driver: "sqlite", Path: "./data/app.db"}
	if got := sqlite.DSN(); got != "./data/app.db" {
		t.Errorf("expected sqlite path, got %q", got)
	}

	pg := DatabaseConfig{Driver: "postgres", DSNString: "host=localhost user=app"}
	if got := pg.DSN(); got != "host=localhost user=app" {
		t.Errorf("expected postgres dsn, got %q", got)
	}
}

func TestExportDisabledByDefault(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Export.Enabled {
		t.Error("expected export to be disabled by default")
	}
}
