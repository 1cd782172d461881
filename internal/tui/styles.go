package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(24)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

// swatch renders text in the habit's color.
func swatch(color, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(text)
}

// cellStyle colors a calendar cell: filled when completed, outlined when
// the day was a missed target.
func cellStyle(color string, completed, missed, today bool) lipgloss.Style {
	s := lipgloss.NewStyle().Width(4).Align(lipgloss.Center)
	switch {
	case completed:
		s = s.Background(lipgloss.Color(color)).Foreground(lipgloss.Color("0"))
	case missed:
		s = s.Foreground(lipgloss.Color(color))
	default:
		s = s.Foreground(lipgloss.Color("240"))
	}
	if today {
		s = s.Underline(true).Bold(true)
	}
	return s
}
