// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mkuiper/voiceloop/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, header string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(header + "\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		item := items[i]
		if len(item) > 50 {
			item = item[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintProfile outputs a human-readable summary of a synthesized profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Version:   v%d\n", profile.Version))
	sb.WriteString(fmt.Sprintf("Tone:      %s\n", profile.Voice.Tone))
	sb.WriteString(fmt.Sprintf("Language:  %s\n", profile.Voice.Language))
	sb.WriteString(fmt.Sprintf("Offer:     %s\n", profile.Offer.CoreOffer))
	sb.WriteString("\n")

	writeList(&sb, "Style Rules:", profile.Voice.StyleRules, 3)
	writeList(&sb, "Audience Segments:", profile.Audience.Segments, 3)
	writeList(&sb, "Banned Phrases:", profile.Constraints.BannedPhrases, maxItemsToShow)

	p.printBox("PERSONA PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDraft outputs a short summary of a generated draft.
func (p *Printer) PrintDraft(draft *types.GeneratedDraft) {
	if draft == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:      %s / %s\n", draft.ContentType, draft.LengthMode))
	sb.WriteString(fmt.Sprintf("Profile:   v%d\n", draft.ProfileVersionUsed))
	sb.WriteString(fmt.Sprintf("Words:     %d\n", len(strings.Fields(draft.Text))))

	preview := draft.Text
	if len(preview) > 150 {
		preview = preview[:147] + "..."
	}
	sb.WriteString("\n")
	sb.WriteString(preview)

	p.printBox("GENERATED DRAFT", sb.String())
}

// PrintQualityResult outputs the quality score with any violations,
// issues, and suggestions found.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintQualityResult(result *types.QualityResult) {
	if result == nil {
		return
	}

	if !result.HasViolations() && len(result.Issues) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, fmt.Sprintf("✅ CLEAN DRAFT (score %.2f)", result.Score))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score: %.2f\n\n", result.Score))

	if len(result.ViolatedConstraints) > 0 {
		sb.WriteString(fmt.Sprintf("Found %d violations:\n", len(result.ViolatedConstraints)))
		for _, v := range result.ViolatedConstraints {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", v))
		}
		sb.WriteString("\n")
	}

	writeList(&sb, "Issues:", result.Issues, maxItemsToShow)
	writeList(&sb, "Suggestions:", result.Suggestions, maxItemsToShow)

	p.printBox("QUALITY CHECK", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFeedbackSummary outputs recorded feedback for a draft.
func (p *Printer) PrintFeedbackSummary(history []types.Feedback) {
	if len(history) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Records: %d\n\n", len(history)))

	count := min(len(history), maxItemsToShow)
	for i := 0; i < count; i++ {
		fb := history[i]
		sb.WriteString(fmt.Sprintf("#%d  rating %d/5\n", i+1, fb.Rating))
		if fb.Notes != "" {
			notes := fb.Notes
			if len(notes) > 45 {
				notes = notes[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("    %s\n", notes))
		}
		if fb.PostedMetrics != nil {
			sb.WriteString(fmt.Sprintf("    impressions %d, reactions %d\n",
				fb.PostedMetrics.Impressions, fb.PostedMetrics.Reactions))
		}
	}

	if len(history) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more records", len(history)-maxItemsToShow))
	}

	p.printBox("FEEDBACK", strings.TrimSuffix(sb.String(), "\n"))
}
