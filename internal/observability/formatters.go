// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-parser/internal/types"
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
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintStage prints a one-line progress marker.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintStage(stage, message string) {
	fmt.Fprintf(p.out, "[%s] %s\n", strings.ToUpper(stage), message)
}

// PrintResumeRecord outputs a human-readable summary of a resolved record.
func (p *Printer) PrintResumeRecord(rec *types.ResumeRecord) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", rec.Name)
	fmt.Fprintf(&sb, "Job role:    %s\n", rec.JobRole)
	fmt.Fprintf(&sb, "Level:       %s\n", rec.ExperienceLevel)
	fmt.Fprintf(&sb, "Experience:  %s years\n", rec.TotalExperienceYears)
	if rec.Email != "" {
		fmt.Fprintf(&sb, "Email:       %s\n", rec.Email)
	}
	if rec.Phone != "" {
		fmt.Fprintf(&sb, "Phone:       %s\n", rec.Phone)
	}

	writeList(&sb, "Social", rec.SocialMedia)
	writeList(&sb, "Skills", rec.Skills)
	writeList(&sb, "Certifications", rec.Certifications)

	if len(rec.Education) > 0 {
		sb.WriteString("\nEducation:\n")
		for _, e := range limit(rec.Education) {
			fmt.Fprintf(&sb, "  • %s %s, %s (%s)\n", e.Level, e.FieldOfStudy, e.Institution, e.DateCompleted)
		}
		more(&sb, len(rec.Education))
	}
	if len(rec.Experience) > 0 {
		sb.WriteString("\nExperience:\n")
		for _, e := range limit(rec.Experience) {
			fmt.Fprintf(&sb, "  • %s: %s\n", e.Organization, strings.Join(e.Roles, ", "))
		}
		more(&sb, len(rec.Experience))
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkillCategories outputs skills grouped by category, categories sorted by name.
func (p *Printer) PrintSkillCategories(groups map[string][]string) {
	if len(groups) == 0 {
		return
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %s\n", name, strings.Join(groups[name], ", "))
	}
	p.printBox("SKILLS BY CATEGORY", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s (%d):\n", title, len(items))
	for _, item := range limit(items) {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	more(sb, len(items))
}

func limit[T any](xs []T) []T {
	return xs[:min(len(xs), maxItemsToShow)]
}

func more(sb *strings.Builder, n int) {
	if n > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", n-maxItemsToShow)
	}
}
