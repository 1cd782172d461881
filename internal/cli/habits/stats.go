package habits

import (
	"strings"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/utils"
)

type StatsCmd struct {
	Habit string `arg:"" optional:"" help:"Habit name or ID. Shows the dashboard when omitted."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	if c.Habit == "" {
		dash, err := svc.Dashboard()
		if err != nil {
			return err
		}
		ctx.Println("Dashboard")
		ctx.Printf("  Habits:          %d (%d active)\n", dash.TotalHabits, dash.ActiveHabits)
		ctx.Printf("  Today:           %d/%d completed\n", dash.TodayCompleted, dash.TodayTotal)
		ctx.Printf("  Weekly rate:     %.1f%%\n", dash.WeeklyCompletionRate)
		ctx.Printf("  Best streak:     %d\n", dash.BestStreak)
		return nil
	}

	habit, err := svc.Resolve(c.Habit)
	if err != nil {
		return err
	}
	st, err := svc.Stats(habit.ID)
	if err != nil {
		return err
	}
	week, err := svc.Week(habit.ID)
	if err != nil {
		return err
	}
	daysActive, err := svc.Engine().DaysActive(habit)
	if err != nil {
		return err
	}

	ctx.Printf("%s (%s)\n", habit.Name, utils.FormatWeekdays(habit.TargetDays))
	ctx.Printf("  Current streak:  %d\n", st.CurrentStreak)
	ctx.Printf("  Longest streak:  %d\n", st.LongestStreak)
	ctx.Printf("  Completions:     %d\n", st.TotalCompletions)
	ctx.Printf("  Completion rate: %.1f%%\n", st.CompletionRate)
	ctx.Printf("  Weekly average:  %.1f%%\n", st.WeeklyAverage)
	ctx.Printf("  Days active:     %d\n", daysActive)

	labels := make([]string, len(week))
	marks := make([]string, len(week))
	for i, d := range week {
		labels[i] = d.Label
		switch {
		case d.Completed:
			marks[i] = " ✓ "
		case d.IsTarget:
			marks[i] = " · "
		default:
			marks[i] = "   "
		}
	}
	ctx.Printf("\n  %s\n  %s\n", strings.Join(labels, " "), strings.Join(marks, " "))
	return nil
}
