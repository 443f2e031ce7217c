package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-routines/internal/core/domain"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	missedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	offDayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Italic(true)
)

func checkbox(done bool) string {
	if done {
		return doneStyle.Render("[x]")
	}
	return "[ ]"
}

// renderStrip draws the recent-days strip, oldest first: a filled dot for a completion,
// a hollow dot for a missed target day and a middle dot for a day off.
func renderStrip(days []domain.DayMark) string {
	cells := make([]string, 0, len(days))
	for _, d := range days {
		label := d.Weekday[:1]
		switch {
		case d.Completed:
			cells = append(cells, doneStyle.Render(label+"●"))
		case d.IsTarget:
			cells = append(cells, missedStyle.Render(label+"○"))
		default:
			cells = append(cells, offDayStyle.Render(label+"·"))
		}
	}
	return strings.Join(cells, " ")
}

func progressBar(done, total, width int) string {
	if total == 0 {
		return strings.Repeat("░", width)
	}
	filled := done * width / total
	return doneStyle.Render(strings.Repeat("█", filled)) + strings.Repeat("░", width-filled)
}

func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}
