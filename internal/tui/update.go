package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitflow/internal/constants"
	"github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/utils"
)

var mainViews = []constants.SessionState{
	constants.StateHabits,
	constants.StateDashboard,
	constants.StateCalendar,
	constants.StateSettings,
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.habitList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case constants.ConfirmationMsg:
		m.confirm = &msg
		m.previousState = m.state
		m.state = constants.StateConfirmDelete
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		} else {
			m.status = msg.status
		}
		m.refresh()
		return m, nil
	}

	switch m.state {
	case constants.StateAddHabit, constants.StateEditHabit:
		return m.updateForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateList(msg)
	}
	if keyMsg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}
	if m.state == constants.StateHabits && m.habitList.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = cycle(m.state, 1)
		return m, nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = cycle(m.state, -1)
		return m, nil
	}

	switch m.state {
	case constants.StateHabits:
		return m.updateHabits(keyMsg)
	case constants.StateCalendar:
		return m.updateCalendar(keyMsg)
	}
	return m, nil
}

func cycle(state constants.SessionState, step int) constants.SessionState {
	for i, s := range mainViews {
		if s == state {
			return mainViews[(i+step+len(mainViews))%len(mainViews)]
		}
	}
	return state
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state != constants.StateHabits {
		return m, nil
	}
	var cmd tea.Cmd
	m.habitList, cmd = m.habitList.Update(msg)
	return m, cmd
}

func (m Model) updateHabits(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		return m.openForm("", &HabitFormModel{
			Days:  "daily",
			Color: m.settings.DefaultColor,
			Icon:  m.settings.DefaultIcon,
		})

	case key.Matches(msg, m.keys.Edit):
		h, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		return m.openForm(h.ID, &HabitFormModel{
			Name:        h.Name,
			Description: h.Description,
			Days:        utils.FormatWeekdays(h.TargetDays),
			Color:       h.Color,
			Icon:        h.Icon,
		})

	case key.Matches(msg, m.keys.Toggle):
		h, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		entry, err := m.svc.Toggle(h.ID, "", "")
		if err != nil {
			m.status = err.Error()
		} else if entry.Completed {
			m.status = fmt.Sprintf("✓ %s done for %s", h.Name, entry.Date)
		} else {
			m.status = fmt.Sprintf("○ %s undone for %s", h.Name, entry.Date)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Activate):
		h, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		if _, err := m.svc.SetActive(h.ID, !h.IsActive); err != nil {
			m.status = err.Error()
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		h, ok := m.selectedHabit()
		if !ok {
			return m, nil
		}
		svc := m.svc
		return m, func() tea.Msg {
			return constants.ConfirmationMsg{
				Message: fmt.Sprintf("Delete %q and all of its progress?", h.Name),
				Action: func() tea.Cmd {
					return func() tea.Msg {
						return actionDoneMsg{status: "Deleted " + h.Name, err: svc.Delete(h.ID)}
					}
				},
			}
		}

	case key.Matches(msg, m.keys.Calendar):
		if h, ok := m.selectedHabit(); ok {
			for i, s := range m.summaries {
				if s.Habit.ID == h.ID {
					m.calIndex = i
				}
			}
			m.loadMonth()
			m.state = constants.StateCalendar
		}
		return m, nil
	}
	return m.updateList(msg)
}

func (m Model) updateCalendar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.shiftMonth(-1)
	case key.Matches(msg, m.keys.Right):
		m.shiftMonth(1)
	case key.Matches(msg, m.keys.Up):
		if len(m.summaries) > 0 {
			m.calIndex = (m.calIndex - 1 + len(m.summaries)) % len(m.summaries)
		}
	case key.Matches(msg, m.keys.Down):
		if len(m.summaries) > 0 {
			m.calIndex = (m.calIndex + 1) % len(m.summaries)
		}
	default:
		return m, nil
	}
	m.loadMonth()
	return m, nil
}

func (m *Model) shiftMonth(delta int) {
	month := int(m.calMonth) + delta
	switch {
	case month < 1:
		m.calYear--
		month = 12
	case month > 12:
		m.calYear++
		month = 1
	}
	m.calMonth = time.Month(month)
}

func (m Model) openForm(habitID string, fm *HabitFormModel) (tea.Model, tea.Cmd) {
	m.habitForm = fm
	m.editingID = habitID
	m.form = newHabitForm(fm)
	m.state = constants.StateAddHabit
	if habitID != "" {
		m.state = constants.StateEditHabit
	}
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = constants.StateHabits
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveForm(); err != nil {
			// Stay in the form so the user can correct the input
			m.status = err.Error()
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.refresh()
		m.state = constants.StateHabits
	case huh.StateAborted:
		m.state = constants.StateHabits
	}
	return m, cmd
}

func (m *Model) saveForm() error {
	fm := m.habitForm
	days, err := utils.ParseWeekdays(fm.Days)
	if err != nil {
		return err
	}

	if m.editingID == "" {
		h, err := m.svc.Create(habits.HabitInput{
			Name:        fm.Name,
			Description: fm.Description,
			Color:       fm.Color,
			Icon:        fm.Icon,
			TargetDays:  days,
		})
		if err != nil {
			return err
		}
		m.status = "Added " + h.Name
		return nil
	}

	h, err := m.svc.Update(m.editingID, habits.HabitPatch{
		Name:        &fm.Name,
		Description: &fm.Description,
		Color:       &fm.Color,
		Icon:        &fm.Icon,
		TargetDays:  &days,
	})
	if err != nil {
		return err
	}
	m.status = "Updated " + h.Name
	return nil
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		action := m.confirm.Action
		m.confirm = nil
		m.state = m.previousState
		return m, action()
	case key.Matches(keyMsg, m.keys.Cancel):
		m.confirm = nil
		m.state = m.previousState
	}
	return m, nil
}
