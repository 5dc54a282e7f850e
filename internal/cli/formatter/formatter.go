package formatter

import (
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/scheduling"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	manualStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	autoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	concernStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// ColorEnabled reports whether styled output should be used.
func ColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

func style(s lipgloss.Style, text string) string {
	if !ColorEnabled() {
		return text
	}
	return s.Render(text)
}

func dateOrDash(t *string) string {
	if t == nil {
		return "-"
	}
	return *t
}

// WorkItemTable renders items as an aligned table.
func WorkItemTable(items []*domain.WorkItem) string {
	var b strings.Builder
	b.WriteString(style(headerStyle, fmt.Sprintf("%-38s %-22s %-11s %-11s %-9s %s",
		"ID", "TITLE", "START", "FINISH", "MODE", "FLAGS")))
	b.WriteString("\n")
	for _, w := range items {
		var start, finish *string
		if w.StartDate != nil {
			s := w.StartDate.Format(domain.DateFormat)
			start = &s
		}
		if w.FinishDate != nil {
			f := w.FinishDate.Format(domain.DateFormat)
			finish = &f
		}
		mode := style(autoStyle, string(w.SchedulingMode))
		if w.Manual() {
			mode = style(manualStyle, string(w.SchedulingMode))
		}
		var flags []string
		if w.IgnoreNonWorkingDays {
			flags = append(flags, "ignore-nwd")
		}
		if w.ParentID != nil {
			flags = append(flags, "child-of:"+*w.ParentID)
		}
		b.WriteString(fmt.Sprintf("%-38s %-22s %-11s %-11s %-9s %s\n",
			w.ID, truncate(w.Title, 22), dateOrDash(start), dateOrDash(finish), mode,
			style(dimStyle, strings.Join(flags, ","))))
	}
	return b.String()
}

// ReschedulingSummary renders the outcome of a scheduling operation.
func ReschedulingSummary(result *scheduling.Result) string {
	var b strings.Builder
	if len(result.Mutated) == 0 {
		b.WriteString(style(dimStyle, "no items rescheduled"))
		b.WriteString("\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%s\n", style(headerStyle, fmt.Sprintf("%d item(s) rescheduled", len(result.Mutated))))
	for _, w := range result.Mutated {
		span := "-"
		if w.HasDates() {
			span = fmt.Sprintf("%s .. %s", w.StartDate.Format(domain.DateFormat), w.FinishDate.Format(domain.DateFormat))
		}
		fmt.Fprintf(&b, "  %s  %s  (%s)\n", w.ID, span, w.SchedulingMode)
	}
	for _, c := range result.Concerns {
		fmt.Fprintf(&b, "%s\n", style(concernStyle, "concern: "+c.Message))
	}
	for id, errs := range result.Invalid {
		for _, err := range errs {
			fmt.Fprintf(&b, "%s\n", style(concernStyle, fmt.Sprintf("invalid %s: %v", id, err)))
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
