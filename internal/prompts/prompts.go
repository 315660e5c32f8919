package prompts

import (
	"fmt"
	"strings"

	"github.com/frenzy2004/JetSki/internal/domain"
)

// ============================================================================
// Viral analysis prompts
// ============================================================================

// ViralSystemPrompt defines the analyst role and the exact JSON shape expected
// from the ranking step.
const ViralSystemPrompt = `You are a viral content analyst. Analyze the transcript and find exactly 3 viral moments.

Return JSON in this exact format:
{
  "segments": [
    {
      "rank": 1,
      "score": 95,
      "title": "Short catchy title",
      "excerpt": "The actual quote or key excerpt from transcript",
      "timestamps": "0:00 - 2:30",
      "viral_type": "emotional/quotable/surprising/controversial",
      "reason": "Why this moment will go viral - be specific"
    }
  ],
  "selected": {
    "rank": 1,
    "reason": "Why this segment is the strongest pick"
  }
}

IMPORTANT: Return exactly 3 segments, ranked by viral potential (score 0-100).`

// ViralUserPrompt builds the user prompt for the ranking step. The transcript
// is expected to already be truncated to the configured budget.
func ViralUserPrompt(transcript string) string {
	return fmt.Sprintf(`Find the 3 most viral moments in this transcript:

%s

Prioritize:
- Quotable one-liners
- Emotional peaks
- Surprising revelations
- Controversial statements
- Universal truths`, transcript)
}

// ============================================================================
// Storyboard prompts
// ============================================================================

// StoryboardSystemPrompt builds the storyboard artist prompt with the fixed
// panel budget encoded in the prompt itself.
func StoryboardSystemPrompt(panelCount int) string {
	return fmt.Sprintf(`You are a comic book storyboard artist. Convert viral moments into %d-panel comic storyboards.

Return JSON with this structure:
{
  "title": "catchy comic title",
  "style": "comic style (e.g., vintage, modern, manga)",
  "tone": "tone of the story",
  "narrative_arc": "one-sentence description of the arc",
  "hashtags": ["#tag1", "#tag2"],
  "posting_tip": "one actionable posting tip",
  "panels": [
    {
      "panel_number": 1,
      "caption": "text that appears in the comic",
      "visual_description": "detailed scene description for image generation",
      "character_details": "who appears and their expression/emotion",
      "composition": "camera angle and framing (wide shot, close-up, etc.)",
      "mood": "emotional tone of this specific panel"
    }
  ]
}

Create exactly %d panels that tell a complete story with:
- Strong visual narrative arc
- Clear beginning, middle, climax, and end
- Emotional progression
- Speech bubbles with punchy dialogue`, panelCount, panelCount)
}

// StoryboardUserPrompt builds the user prompt from the selected moment and the
// configured target aesthetic.
func StoryboardUserPrompt(moment *domain.ViralSegment, panelCount int, artStyle string) string {
	return fmt.Sprintf(`Create a %d-panel comic storyboard for this viral moment:

TITLE: "%s"
EXCERPT: "%s"
WHY IT'S VIRAL: %s
TYPE: %s

Target aesthetic: %s

Make it:
- Visually compelling and dramatic
- Easy to understand without audio
- Shareable on social media (Instagram carousel format)
- True to the original message
- Emotionally resonant`, panelCount, moment.Title, moment.Excerpt, moment.Reason, moment.ViralType, artStyle)
}

// ============================================================================
// Coherence review prompts
// ============================================================================

const ReviewSystemPrompt = `You are a comic storyboard quality reviewer. Review the storyboard for narrative coherence, visual flow, and character consistency.

Return JSON with this structure:
{
  "isCoherent": true,
  "overallScore": 95,
  "recommendation": "proceed",
  "panelReviews": [
    {
      "panelNumber": 1,
      "contextClarity": "pass",
      "characterConsistency": "pass",
      "visualFlow": "pass",
      "narrativeCoherence": "pass",
      "notes": "Optional brief note if needed"
    }
  ],
  "strengths": ["strength 1", "strength 2"],
  "suggestions": ["optional suggestion if needed"]
}

Check each panel for:
- Context clarity: Can viewers understand what's happening?
- Character consistency: Are characters consistent across panels?
- Visual flow: Does the visual narrative flow smoothly?
- Narrative coherence: Does the story make sense panel-to-panel?

Return "pass" for each check if it's good. Only include suggestions if there are minor improvements.`

// ReviewUserPrompt builds the review prompt from a finished storyboard.
func ReviewUserPrompt(sb *domain.Storyboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Review this %d-panel comic storyboard:

TITLE: "%s"
STYLE: %s
TONE: %s

PANELS:
`, len(sb.Panels), sb.Title, sb.Style, sb.Tone)
	writePanelSummaries(&b, sb.Panels)
	b.WriteString("\nProvide a comprehensive coherence review.")
	return b.String()
}

// ============================================================================
// Summary prompts
// ============================================================================

const SummarySystemPrompt = `You are a content strategist writing a comprehensive breakdown of a comic strip. Create a detailed summary that includes context, viral potential, and panel-by-panel analysis.

Return JSON with this structure:
{
  "context": "Brief context about the topic/story (2-3 sentences)",
  "viralPotential": "Why this comic has viral potential (2-3 sentences)",
  "panelBreakdown": [
    {
      "panelNumber": 1,
      "title": "Short title for this panel",
      "visualDescription": "Detailed description of what's shown (2-3 sentences)",
      "dialogueCaption": "The exact caption/dialogue",
      "narrativePurpose": "Why this panel matters to the story"
    }
  ],
  "keyThemes": ["theme 1", "theme 2", "theme 3"],
  "targetAudience": "Who this comic appeals to"
}`

// SummaryUserPrompt builds the breakdown prompt from the selected moment and
// the finished storyboard.
func SummaryUserPrompt(moment *domain.ViralSegment, sb *domain.Storyboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Create a comprehensive breakdown for this comic:

VIRAL MOMENT:
Title: "%s"
Excerpt: "%s"
Why it's viral: %s

STORYBOARD:
Title: "%s"
Style: %s
Tone: %s

PANELS:
`, moment.Title, moment.Excerpt, moment.Reason, sb.Title, sb.Style, sb.Tone)
	writePanelSummaries(&b, sb.Panels)
	b.WriteString("\nProvide a detailed breakdown that explains the story, viral potential, and each panel's contribution.")
	return b.String()
}

func writePanelSummaries(b *strings.Builder, panels []domain.ComicPanel) {
	for _, p := range panels {
		fmt.Fprintf(b, `
Panel %d:
- Caption: "%s"
- Visual: %s
- Characters: %s
- Mood: %s
`, p.PanelNumber, p.Caption, p.VisualDescription, p.CharacterDetails, p.Mood)
	}
}

// ============================================================================
// Image generation prompts
// ============================================================================

// PanelImagePrompt builds the single-scene rendering prompt for one panel.
func PanelImagePrompt(panel *domain.ComicPanel, artStyle string) string {
	return fmt.Sprintf(`Generate a single comic book panel in classic comic art style:

PANEL %d:
SCENE: %s
CHARACTERS: %s
MOOD: %s
COMPOSITION: %s

SPEECH BUBBLE TEXT: "%s"

VISUAL STYLE:
- %s
- CINEMATIC COMPOSITION: %s - treat this like a movie frame
- DRAMATIC LIGHTING: High contrast, deep shadows, vibrant highlights
- Bold black ink outlines and clear, confident line work
- Professional comic panel layout with thick black border frame

COLOR PALETTE:
- Rich, saturated colors: vibrant golds, oranges, reds, blues
- Mood-appropriate colors for %s atmosphere
- Vintage comic book color printing aesthetic with halftone texture
- High contrast between foreground and background elements

DIALOGUE INTEGRATION:
- Speech bubble with caption text clearly visible and readable
- Clear, bold comic book lettering style
- Speech bubble positioned naturally within composition
- Text integrates seamlessly with the artwork`,
		panel.PanelNumber, panel.VisualDescription, panel.CharacterDetails,
		panel.Mood, panel.Composition, panel.Caption, artStyle,
		panel.Composition, panel.Mood)
}

// GridPanelImagePrompt builds the 2x2 multi-scene composite prompt used for
// the configured grid panel. Same inputs as PanelImagePrompt, structurally
// different template.
func GridPanelImagePrompt(panel *domain.ComicPanel, artStyle string) string {
	return fmt.Sprintf(`Generate a comic panel with a 4-PANEL GRID LAYOUT (2x2 grid showing 4 different mini-scenes):

PANEL %d - MULTI-SCENE GRID:
OVERALL THEME: %s
CHARACTERS: %s
MOOD: %s
CAPTION/DIALOGUE: "%s"

VISUAL STYLE:
- %s
- Mix of dramatic wide shots and intense close-ups
- High contrast with deep shadows and vibrant highlights
- Bold black borders separating each mini-panel in the 2x2 grid
- Each mini-panel should flow together to tell the story sequentially

DIALOGUE:
- Each of the 4 mini-panels has its own speech bubble or dialogue text
- Break up the main caption/dialogue across all 4 mini-panels naturally
- Clear, bold lettering in speech bubbles within each mini-panel

LAYOUT:
- Top-left, top-right, bottom-left, bottom-right reading flow
- Each mini-panel shows different moments/angles of the narrative
- Thick black panel borders for classic comic aesthetic

Example flow: Top-left (wide establishing shot with dialogue), top-right (character close-up reaction), bottom-left (dramatic action moment), bottom-right (emotional conclusion)`,
		panel.PanelNumber, panel.VisualDescription, panel.CharacterDetails,
		panel.Mood, panel.Caption, artStyle)
}
