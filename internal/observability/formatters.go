// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/asimons81/guide-generator/internal/drafting"
	"github.com/asimons81/guide-generator/internal/publish"
	"github.com/asimons81/guide-generator/internal/types"
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

// PrintStrategy outputs a human-readable summary of the generated SEO strategy.
func (p *Printer) PrintStrategy(a *types.Article) {
	if a == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:     %s\n", a.Title))
	sb.WriteString(fmt.Sprintf("Slug:      %s\n", a.Slug))
	sb.WriteString(fmt.Sprintf("Keyphrase: %s\n", a.FocusKeyphrase))
	sb.WriteString(fmt.Sprintf("Meta:      %s\n", a.MetaDescription))
	sb.WriteString("\n")

	if len(a.Outline) > 0 {
		sb.WriteString("Outline:\n")
		for _, section := range a.Outline {
			sb.WriteString(fmt.Sprintf("  • %s\n", section.Heading))
			for _, sub := range section.Subheadings {
				sb.WriteString(fmt.Sprintf("    - %s\n", sub))
			}
		}
		sb.WriteString("\n")
	}

	if len(a.Categories) > 0 {
		sb.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(a.Categories, ", ")))
	}
	if len(a.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("Tags:       %s\n", strings.Join(a.Tags, ", ")))
	}
	if len(a.InternalLinks) > 0 {
		sb.WriteString("Internal link ideas:\n")
		count := min(len(a.InternalLinks), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", a.InternalLinks[i]))
		}
		if len(a.InternalLinks) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(a.InternalLinks)-maxItemsToShow))
		}
	}

	p.printBox("SEO STRATEGY", strings.TrimRight(sb.String(), "\n"))
}

// PrintChecklist outputs the advisory SEO checklist with pass/fail marks.
func (p *Printer) PrintChecklist(checks []drafting.Check) {
	if len(checks) == 0 {
		return
	}

	var sb strings.Builder
	passed := 0
	for _, check := range checks {
		mark := "✗"
		if check.Passed {
			mark = "✓"
			passed++
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, check.Name))
	}
	sb.WriteString(fmt.Sprintf("\n%d/%d checks passed", passed, len(checks)))

	p.printBox("SEO CHECKLIST", sb.String())
}

// PrintImagePlan outputs the image descriptors and their generation prompts.
func (p *Printer) PrintImagePlan(plan *types.ImagePlan) {
	if plan == nil || len(plan.Images) == 0 {
		return
	}

	var sb strings.Builder
	for i, img := range plan.Images {
		sb.WriteString(fmt.Sprintf("Image %d (%s)\n", i+1, img.Position))
		if img.SectionHeading != "" {
			sb.WriteString(fmt.Sprintf("  After:  %s\n", img.SectionHeading))
		}
		sb.WriteString(fmt.Sprintf("  Prompt: %s\n", img.Prompt))
		sb.WriteString(fmt.Sprintf("  Alt:    %s\n", img.AltText))
		if img.Caption != "" {
			sb.WriteString(fmt.Sprintf("  Caption: %s\n", img.Caption))
		}
		if i < len(plan.Images)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("IMAGE PLAN", strings.TrimRight(sb.String(), "\n"))
}

// PrintPublishReport outputs the outcome of a publish run, warnings included.
func (p *Printer) PrintPublishReport(report *publish.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Post:   #%d %s\n", report.PostID, report.PostTitle))
	sb.WriteString(fmt.Sprintf("Status: %s\n", report.PostStatus))
	sb.WriteString(fmt.Sprintf("Link:   %s\n", report.PostLink))
	sb.WriteString("\n")

	sb.WriteString("Media:\n")
	for _, m := range report.Media {
		if m.Succeeded() {
			sb.WriteString(fmt.Sprintf("  ✓ %s (id %d)\n", m.Filename, m.MediaID))
		} else {
			sb.WriteString(fmt.Sprintf("  ✗ image %d: %s\n", m.Index+1, m.Error))
		}
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			sb.WriteString(fmt.Sprintf("  ! %s\n", w))
		}
	}

	p.printBox("PUBLISH REPORT", strings.TrimRight(sb.String(), "\n"))
}
