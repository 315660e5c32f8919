package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/frenzy2004/JetSki/internal/domain"
)

type fakeObjectStorage struct {
	uploads    map[string]string
	failKeys   map[string]bool
	bucketErr  error
	publicBase string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{
		uploads:    map[string]string{},
		failKeys:   map[string]bool{},
		publicBase: "https://cdn.example.com",
	}
}

func (f *fakeObjectStorage) Upload(_ context.Context, key string, reader io.Reader, _ int64, _ string) error {
	if f.failKeys[key] {
		return errors.New("upload refused")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.uploads[key] = string(data)
	return nil
}

func (f *fakeObjectStorage) GetURL(key string) string {
	return f.publicBase + "/" + key
}

func (f *fakeObjectStorage) EnsureBucket(_ context.Context) error {
	return f.bucketErr
}

func exportFixture() (*domain.Storyboard, *domain.RenderResult) {
	sb := testStoryboard()
	sb.Hashtags = []string{"#comic", "#viral"}
	sb.PostingTip = "post in the morning"

	images := &domain.RenderResult{TotalPanels: 6}
	for i := 1; i <= 6; i++ {
		rendered := domain.RenderedPanel{PanelNumber: i, Caption: sb.Panels[i-1].Caption}
		if i == 5 {
			rendered.Error = "render failed"
		} else {
			rendered.ImageBase64 = tinyPNG
			rendered.MimeType = "image/png"
			images.SuccessCount++
		}
		images.Panels = append(images.Panels, rendered)
	}
	return sb, images
}

func TestExportService_Export(t *testing.T) {
	store := newFakeObjectStorage()
	svc := NewExportService(store)
	sb, images := exportFixture()

	result, err := svc.Export(context.Background(), sb, images, &domain.ComicSummary{
		Context:        "a story about timing",
		ViralPotential: "very quotable",
		KeyThemes:      []string{"timing", "hubris"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Panel 5 failed to render and is not uploaded.
	if result.UploadedPanels != 5 {
		t.Errorf("expected 5 uploaded panels, got %d", result.UploadedPanels)
	}
	if len(result.PanelURLs) != 5 {
		t.Errorf("expected 5 panel URLs, got %d", len(result.PanelURLs))
	}
	if result.DocKey == "" || !strings.HasSuffix(result.DocKey, "summary.md") {
		t.Errorf("expected summary doc key, got %q", result.DocKey)
	}

	doc, ok := store.uploads[result.DocKey]
	if !ok {
		t.Fatal("summary document was not uploaded")
	}
	if !strings.Contains(doc, "The Big Reveal") {
		t.Error("summary document should carry the comic title")
	}
	if !strings.Contains(doc, "a story about timing") {
		t.Error("summary document should carry the breakdown context")
	}
}

func TestExportService_PanelUploadFailureDoesNotAbort(t *testing.T) {
	store := newFakeObjectStorage()
	svc := NewExportService(store)
	sb, images := exportFixture()

	// Keys embed a timestamp, so fail panel 2 by key pattern.
	failing := &failPanel2Storage{fakeObjectStorage: store}
	svc = NewExportService(failing)

	result, err := svc.Export(context.Background(), sb, images, nil)
	if err != nil {
		t.Fatalf("expected export to continue past a panel failure, got %v", err)
	}
	if result.UploadedPanels != 4 {
		t.Errorf("expected 4 uploaded panels (one render failure, one upload failure), got %d", result.UploadedPanels)
	}
	if result.DocKey == "" {
		t.Error("expected summary document despite panel failure")
	}
}

type failPanel2Storage struct {
	*fakeObjectStorage
}

func (f *failPanel2Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if strings.Contains(key, "/panel-2") {
		return errors.New("upload refused")
	}
	return f.fakeObjectStorage.Upload(ctx, key, reader, size, contentType)
}

func TestExportService_BucketFailureAborts(t *testing.T) {
	store := newFakeObjectStorage()
	store.bucketErr = errors.New("bucket missing")
	svc := NewExportService(store)
	sb, images := exportFixture()

	if _, err := svc.Export(context.Background(), sb, images, nil); err == nil {
		t.Fatal("expected error when bucket is unavailable")
	}
}

func TestFolderKeyFor(t *testing.T) {
	tests := []struct {
		name  string
		title string
		wantP string
	}{
		{
			name:  "normal title",
			title: "The Big Reveal!",
			wantP: "comics/the-big-reveal-",
		},
		{
			name:  "empty title falls back",
			title: "   ",
			wantP: "comics/comic-",
		},
		{
			name:  "special characters stripped",
			title: "What?! // A $tory",
			wantP: "comics/what-a-tory-",
		},
	}

	at := time.Date(2025, 6, 1, 15, 4, 5, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := folderKeyFor(tt.title, at)
			if !strings.HasPrefix(got, tt.wantP) {
				t.Errorf("expected prefix %q, got %q", tt.wantP, got)
			}
			if !strings.HasSuffix(got, "2025-06-01-150405") {
				t.Errorf("expected timestamp suffix, got %q", got)
			}
		})
	}
}
