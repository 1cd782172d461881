package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/utils"
)

var tabTitles = []string{"Habits", "Dashboard", "Calendar", "Settings"}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = docStyle.Render(m.viewHabits())
	case constants.StateDashboard:
		content = docStyle.Render(m.viewDashboard())
	case constants.StateCalendar:
		content = docStyle.Render(m.viewCalendar())
	case constants.StateSettings:
		content = docStyle.Render(m.viewSettings())
	case constants.StateAddHabit, constants.StateEditHabit:
		content = m.form.View()
	case constants.StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.status != "" {
		status = warningStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == mainViews[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHabits() string {
	if len(m.habitList.Items()) == 0 {
		return "No habits yet.\nPress 'a' to add one."
	}
	return m.habitList.View()
}

func (m Model) viewDashboard() string {
	d := m.dashboard
	var b strings.Builder
	b.WriteString(titleStyle.Render("Today, " + m.svc.Calendar().TodayKey()))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(statLabelStyle.Render(label) + value + "\n")
	}
	row("Active habits", fmt.Sprintf("%d of %d", d.ActiveHabits, d.TotalHabits))
	row("Completed today", fmt.Sprintf("%d / %d", d.TodayCompleted, d.TodayTotal))
	row("Weekly completion", fmt.Sprintf("%.0f%%", d.WeeklyCompletionRate))
	row("Best current streak", fmt.Sprintf("%d", d.BestStreak))

	if len(m.summaries) > 0 {
		b.WriteString("\n")
		for _, s := range m.summaries {
			if !s.Habit.IsActive {
				continue
			}
			line := fmt.Sprintf("%-20s streak %-3d best %-3d %3.0f%%", s.Habit.Name, s.Stats.CurrentStreak, s.Stats.LongestStreak, s.Stats.WeeklyAverage)
			b.WriteString(swatch(s.Habit.Color, "●") + " " + line + "\n")
		}
	}
	return b.String()
}

func (m Model) viewCalendar() string {
	if len(m.summaries) == 0 || len(m.month.Days) == 0 {
		return "No habits yet."
	}
	h := m.summaries[m.calIndex].Habit

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  %s %d", swatch(h.Color, h.Name), m.month.Month, m.month.Year)))
	b.WriteString("\n")

	for _, label := range utils.ShortWeekdays {
		b.WriteString(mutedStyle.Width(4).Align(lipgloss.Center).Render(label[:2]))
	}
	b.WriteString("\n")

	b.WriteString(strings.Repeat("    ", m.month.LeadingBlank))
	col := m.month.LeadingBlank
	for _, d := range m.month.Days {
		missed := d.IsTarget && !d.IsCompleted && !d.IsFuture && !d.IsToday
		b.WriteString(cellStyle(h.Color, d.IsCompleted, missed, d.IsToday).Render(fmt.Sprintf("%2d", d.Day)))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("↑/↓ habit · ←/→ month"))
	return b.String()
}

func (m Model) viewSettings() string {
	s := m.settings
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")
	row := func(label, value string) {
		b.WriteString(statLabelStyle.Render(label) + value + "\n")
	}
	row("Timezone", s.Timezone)
	row("Owner", s.OwnerID)
	row("Default color", swatch(s.DefaultColor, s.DefaultColor))
	row("Default icon", s.DefaultIcon)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Change these with 'habitflow settings'."))
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	msg := "Are you sure?"
	if m.confirm != nil {
		msg = m.confirm.Message
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(msg),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
