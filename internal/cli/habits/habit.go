package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitflow/internal/cli"
	habitsvc "github.com/julianstephens/habitflow/internal/habits"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	List       HabitListCmd       `cmd:"" help:"List habits."`
	Edit       HabitEditCmd       `cmd:"" help:"Edit a habit."`
	Activate   HabitActivateCmd   `cmd:"" help:"Mark a habit as active."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Mark a habit as inactive."`
	Delete     HabitDeleteCmd     `cmd:"" help:"Delete a habit and all of its progress."`
	Toggle     HabitToggleCmd     `cmd:"" help:"Toggle completion for a day."`
	Set        HabitSetCmd        `cmd:"" help:"Set completion for a day."`
	Today      HabitTodayCmd      `cmd:"" help:"Show today's habit status."`
	Log        HabitLogCmd        `cmd:"" help:"Show recent progress entries."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Days        string `help:"Target weekdays, e.g. mon,wed,fri, weekdays or daily." required:""`
	Description string `help:"Optional description."`
	Color       string `help:"Palette color name or #RRGGBB."`
	Icon        string `help:"Icon name."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	days, err := utils.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}

	habit, err := svc.Create(habitsvc.HabitInput{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
		TargetDays:  days,
	})
	if err != nil {
		return err
	}

	ctx.Printf("Added habit: %s (%s)\n", habit.Name, utils.FormatWeekdays(habit.TargetDays))
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include inactive habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	summaries, err := svc.Summaries(c.All)
	if err != nil {
		return err
	}

	if len(summaries) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	for _, s := range summaries {
		status := ""
		if !s.Habit.IsActive {
			status = " [INACTIVE]"
		}
		ctx.Printf("%-24s %-16s streak %-3d rate %5.1f%%%s\n",
			s.Habit.Name,
			utils.FormatWeekdays(s.Habit.TargetDays),
			s.Stats.CurrentStreak,
			s.Stats.CompletionRate,
			status,
		)
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string  `arg:"" help:"Habit name or ID."`
	Name        *string `help:"New name."`
	Description *string `help:"New description."`
	Color       *string `help:"Palette color name or #RRGGBB."`
	Icon        *string `help:"Icon name."`
	Days        *string `help:"Target weekdays, e.g. mon,wed,fri."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := svc.Resolve(c.Habit)
	if err != nil {
		return err
	}

	patch := habitsvc.HabitPatch{
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Icon:        c.Icon,
	}
	if c.Days != nil {
		days, err := utils.ParseWeekdays(*c.Days)
		if err != nil {
			return err
		}
		patch.TargetDays = &days
	}
	if patch == (habitsvc.HabitPatch{}) {
		ctx.Println("No changes specified.")
		return nil
	}

	updated, err := svc.Update(habit.ID, patch)
	if err != nil {
		return err
	}
	ctx.Printf("Updated habit: %s\n", updated.Name)
	return nil
}

type HabitActivateCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitActivateCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Habit, true)
}

type HabitDeactivateCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeactivateCmd) Run(ctx *cli.Context) error {
	return setActive(ctx, c.Habit, false)
}

func setActive(ctx *cli.Context, ref string, active bool) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := svc.Resolve(ref)
	if err != nil {
		return err
	}
	if _, err := svc.SetActive(habit.ID, active); err != nil {
		return err
	}
	state := "inactive"
	if active {
		state = "active"
	}
	ctx.Printf("Habit %s is now %s\n", habit.Name, state)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := svc.Resolve(c.Habit)
	if err != nil {
		return err
	}
	if err := svc.Delete(habit.ID); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
	Note  string `help:"Optional note for this entry."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := svc.Resolve(c.Habit)
	if err != nil {
		return err
	}
	entry, err := svc.Toggle(habit.ID, c.Date, c.Note)
	if err != nil {
		return err
	}
	printEntry(ctx, habit, entry)
	return nil
}

type HabitSetCmd struct {
	Habit  string `arg:"" help:"Habit name or ID."`
	Done   bool   `help:"Mark as completed." xor:"state"`
	Undone bool   `help:"Mark as not completed." xor:"state"`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)."`
	Note   string `help:"Optional note for this entry."`
}

func (c *HabitSetCmd) Run(ctx *cli.Context) error {
	if !c.Done && !c.Undone {
		return fmt.Errorf("one of --done or --undone is required")
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := svc.Resolve(c.Habit)
	if err != nil {
		return err
	}
	entry, err := svc.SetProgress(habit.ID, c.Date, c.Done, c.Note)
	if err != nil {
		return err
	}
	printEntry(ctx, habit, entry)
	return nil
}

func printEntry(ctx *cli.Context, habit models.Habit, entry models.Progress) {
	mark := "✗"
	if entry.Completed {
		mark = "✓"
	}
	line := fmt.Sprintf("%s %s on %s", mark, habit.Name, entry.Date)
	if entry.Note != "" {
		line += fmt.Sprintf(" (%s)", entry.Note)
	}
	ctx.Println(line)
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	summaries, err := svc.Summaries(false)
	if err != nil {
		return err
	}

	today := svc.Calendar().Today()
	ctx.Printf("Habits for %s (%s)\n\n", utils.DateKey(today), today.Weekday())

	due := 0
	for _, s := range summaries {
		if !s.DueToday {
			continue
		}
		due++
		mark := "[ ]"
		if s.DoneToday {
			mark = "[✓]"
		}
		ctx.Printf("  %s %s  (streak %d)\n", mark, s.Habit.Name, s.Stats.CurrentStreak)
	}
	if due == 0 {
		ctx.Println("  Nothing scheduled today.")
	}
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Only show this habit (name or ID)."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	list, err := svc.List(true)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(list))
	for _, h := range list {
		names[h.ID] = h.Name
	}

	habitID := ""
	if c.Habit != "" {
		habit, err := svc.Resolve(c.Habit)
		if err != nil {
			return err
		}
		habitID = habit.ID
	}

	entries, err := svc.RecentProgress(c.Days, habitID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.Printf("No progress in the last %d days.\n", c.Days)
		return nil
	}

	for _, e := range entries {
		mark := "✗"
		if e.Completed {
			mark = "✓"
		}
		line := fmt.Sprintf("%s  %s  %s", e.Date, mark, names[e.HabitID])
		if e.Note != "" {
			line += "  " + strings.TrimSpace(e.Note)
		}
		ctx.Println(line)
	}
	return nil
}
