package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/frenzy2004/JetSki/internal/domain"
	"github.com/frenzy2004/JetSki/internal/logger"
	"github.com/frenzy2004/JetSki/internal/storage"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-z0-9-]+`)

// ExportService publishes a finished comic to the export bucket: one folder
// per comic, panel images inside it, and a markdown summary document.
type ExportService struct {
	store storage.ObjectStorage
}

// NewExportService creates a new ExportService.
func NewExportService(store storage.ObjectStorage) *ExportService {
	return &ExportService{store: store}
}

// Export uploads the comic's rendered panels and summary document under a
// fresh folder key. A failed panel upload is logged and skipped; the export
// only fails when the folder cannot be prepared or the summary document cannot
// be written.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sb: the storyboard (title, hashtags, posting tip).
//   - images: rendered panels; failed renders are skipped.
//   - summary: optional breakdown, included in the document when present.
// Returns:
//   - *domain.ExportResult: folder/doc keys and URLs plus per-panel outcomes.
//   - error: non-nil when the export could not be completed at all.
func (s *ExportService) Export(ctx context.Context, sb *domain.Storyboard, images *domain.RenderResult, summary *domain.ComicSummary) (*domain.ExportResult, error) {
	if sb == nil {
		return nil, fmt.Errorf("%w: missing storyboard", domain.ErrInvalidInput)
	}

	log := logger.FromContext(ctx).WithField(logger.FieldComponent, "export")

	if err := s.store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("export bucket unavailable: %w", err)
	}

	folderKey := folderKeyFor(sb.Title, time.Now())
	log.WithField("folder", folderKey).Info("Exporting comic")

	result := &domain.ExportResult{
		FolderKey: folderKey,
		FolderURL: s.store.GetURL(folderKey),
	}

	if images != nil {
		for _, panel := range images.Panels {
			if !panel.OK() {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(panel.ImageBase64)
			if err != nil {
				log.WithField(logger.FieldPanel, panel.PanelNumber).
					WithError(err).
					Warn("Panel image is not valid base64, skipping upload")
				continue
			}
			key := fmt.Sprintf("%s/panel-%d%s", folderKey, panel.PanelNumber, extensionFor(panel.MimeType))
			if err := s.store.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), panel.MimeType); err != nil {
				log.WithField(logger.FieldPanel, panel.PanelNumber).
					WithError(err).
					Warn("Panel upload failed, continuing")
				continue
			}
			result.UploadedPanels++
			result.PanelURLs = append(result.PanelURLs, s.store.GetURL(key))
		}
	}

	doc := summaryDocument(sb, summary, result)
	docKey := folderKey + "/summary.md"
	if err := s.store.Upload(ctx, docKey, strings.NewReader(doc), int64(len(doc)), "text/markdown"); err != nil {
		return nil, fmt.Errorf("summary document upload failed: %w", err)
	}
	result.DocKey = docKey
	result.DocURL = s.store.GetURL(docKey)

	log.WithFields(logger.Fields{
		"uploaded_panels": result.UploadedPanels,
		"doc_key":         docKey,
	}).Info("Export complete")

	return result, nil
}

// folderKeyFor builds a stable, URL-safe folder key from the comic title and
// the export timestamp.
func folderKeyFor(title string, at time.Time) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = unsafeKeyChars.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "comic"
	}
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}
	return fmt.Sprintf("comics/%s-%s", slug, at.Format("2006-01-02-150405"))
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".png"
	}
}

// summaryDocument renders the markdown document placed alongside the panels.
func summaryDocument(sb *domain.Storyboard, summary *domain.ComicSummary, export *domain.ExportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sb.Title)
	fmt.Fprintf(&b, "- **Style:** %s\n- **Tone:** %s\n", sb.Style, sb.Tone)
	if sb.NarrativeArc != "" {
		fmt.Fprintf(&b, "- **Narrative arc:** %s\n", sb.NarrativeArc)
	}
	if len(sb.Hashtags) > 0 {
		fmt.Fprintf(&b, "- **Hashtags:** %s\n", strings.Join(sb.Hashtags, " "))
	}
	if sb.PostingTip != "" {
		fmt.Fprintf(&b, "- **Posting tip:** %s\n", sb.PostingTip)
	}

	if summary != nil {
		fmt.Fprintf(&b, "\n## Context\n\n%s\n", summary.Context)
		fmt.Fprintf(&b, "\n## Viral potential\n\n%s\n", summary.ViralPotential)
		if len(summary.PanelBreakdown) > 0 {
			b.WriteString("\n## Panels\n")
			for _, p := range summary.PanelBreakdown {
				fmt.Fprintf(&b, "\n### Panel %d: %s\n\n%s\n\n> %s\n\n%s\n",
					p.PanelNumber, p.Title, p.VisualDescription, p.DialogueCaption, p.NarrativePurpose)
			}
		}
		if len(summary.KeyThemes) > 0 {
			fmt.Fprintf(&b, "\n**Themes:** %s\n", strings.Join(summary.KeyThemes, ", "))
		}
		if summary.TargetAudience != "" {
			fmt.Fprintf(&b, "\n**Audience:** %s\n", summary.TargetAudience)
		}
	} else {
		b.WriteString("\n## Panels\n")
		for _, p := range sb.Panels {
			fmt.Fprintf(&b, "\n### Panel %d\n\n> %s\n\n%s\n", p.PanelNumber, p.Caption, p.VisualDescription)
		}
	}

	if len(export.PanelURLs) > 0 {
		b.WriteString("\n## Images\n\n")
		for _, u := range export.PanelURLs {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}

	return b.String()
}
