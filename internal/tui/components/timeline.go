package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/roadmap/internal/domain"
	"github.com/rgehrsitz/roadmap/internal/output"
	"github.com/rgehrsitz/roadmap/internal/tui/tuistyles"
)

// TimelineCells is one cell per roadmap month
const TimelineCells = 36

// TimelineLane renders one intervention's bars across the roadmap months
func TimelineLane(row domain.TimelineRow, cells int) string {
	strip := output.TimelineStrip(row, cells)

	impl := lipgloss.NewStyle().Foreground(tuistyles.ColorImplementation)
	ongoing := lipgloss.NewStyle().Foreground(tuistyles.ColorOngoing)
	empty := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	var b strings.Builder
	for _, c := range strip {
		switch c {
		case '=':
			b.WriteString(impl.Render("▓"))
		case '#':
			b.WriteString(ongoing.Render("█"))
		default:
			b.WriteString(empty.Render("·"))
		}
	}
	return b.String()
}

// YearRuler labels the three year columns above a lane
func YearRuler(cells int) string {
	per := cells / 3
	var b strings.Builder
	for k := 1; k <= 3; k++ {
		label := "Y" + string(rune('0'+k))
		b.WriteString(label)
		if pad := per - len(label); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return tuistyles.SubtitleStyle.Render(b.String())
}
