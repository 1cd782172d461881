// Package tui is the interactive terminal interface for tracking habits.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/stats"
	"github.com/julianstephens/habitflow/internal/utils"
)

// HabitFormModel backs the add and edit forms.
type HabitFormModel struct {
	Name        string
	Description string
	Days        string
	Color       string
	Icon        string
}

// actionDoneMsg reports the outcome of a confirmed action.
type actionDoneMsg struct {
	status string
	err    error
}

type habitItem struct {
	summary stats.HabitSummary
}

func (i habitItem) Title() string {
	h := i.summary.Habit
	mark := "  "
	switch {
	case i.summary.DoneToday:
		mark = "✓ "
	case i.summary.DueToday:
		mark = "○ "
	}
	title := mark + h.Name
	if !h.IsActive {
		title = "[PAUSED] " + title
	}
	return title
}

func (i habitItem) Description() string {
	s := i.summary.Stats
	return fmt.Sprintf("%s · streak %d · %.0f%% overall", utils.FormatWeekdays(i.summary.Habit.TargetDays), s.CurrentStreak, s.CompletionRate)
}

func (i habitItem) FilterValue() string { return i.summary.Habit.Name }

type Model struct {
	svc           *habits.Service
	settings      models.Settings
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	habitList     list.Model
	summaries     []stats.HabitSummary
	dashboard     models.DashboardStats
	month         models.MonthView
	calIndex      int
	calYear       int
	calMonth      time.Month
	form          *huh.Form
	habitForm     *HabitFormModel
	editingID     string
	confirm       *constants.ConfirmationMsg
	status        string
	quitting      bool
	width         int
	height        int
}

func NewModel(svc *habits.Service, settings models.Settings) Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	today := svc.Calendar().Today()
	m := Model{
		svc:       svc,
		settings:  settings,
		state:     constants.StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		habitList: l,
		calYear:   today.Year(),
		calMonth:  today.Month(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.Add, m.keys.Toggle, m.keys.Delete)
	case constants.StateCalendar:
		keys = append(keys, m.keys.Left, m.keys.Right)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case constants.StateHabits:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Toggle, m.keys.Activate, m.keys.Delete, m.keys.Calendar}
	case constants.StateConfirmDelete:
		actions = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return [][]key.Binding{global, navigation, actions}
}

// refresh reloads summaries, the dashboard and the calendar month from the service.
func (m *Model) refresh() {
	summaries, err := m.svc.Summaries(true)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.summaries = summaries

	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = habitItem{summary: s}
	}
	m.habitList.SetItems(items)

	dash, err := m.svc.Dashboard()
	if err != nil {
		m.status = err.Error()
		return
	}
	m.dashboard = dash
	m.loadMonth()
}

func (m *Model) loadMonth() {
	if len(m.summaries) == 0 {
		m.month = models.MonthView{}
		return
	}
	if m.calIndex >= len(m.summaries) || m.calIndex < 0 {
		m.calIndex = 0
	}
	mv, err := m.svc.Month(m.summaries[m.calIndex].Habit.ID, m.calYear, m.calMonth)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.month = mv
}

func (m Model) selectedHabit() (models.Habit, bool) {
	item, ok := m.habitList.SelectedItem().(habitItem)
	if !ok {
		return models.Habit{}, false
	}
	return item.summary.Habit, true
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	colors := make([]huh.Option[string], 0, len(models.Colors))
	for _, c := range models.Colors {
		colors = append(colors, huh.NewOption(c.Name, c.Value))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Target Days").
				Description("daily, weekdays, weekends or e.g. mon,wed,fri").
				Value(&fm.Days).
				Validate(func(s string) error {
					_, err := utils.ParseWeekdays(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Color").
				Options(colors...).
				Value(&fm.Color),
			huh.NewSelect[string]().
				Title("Icon").
				Options(huh.NewOptions(models.Icons...)...).
				Value(&fm.Icon),
		),
	).WithTheme(huh.ThemeDracula())
}
