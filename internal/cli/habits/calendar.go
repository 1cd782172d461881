package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/utils"
)

type CalendarCmd struct {
	Habit string `arg:"" help:"Habit name or ID."`
	Month string `help:"Month in YYYY-MM format (default: current month)."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	habit, err := svc.Resolve(c.Habit)
	if err != nil {
		return err
	}

	today := svc.Calendar().Today()
	year, month := today.Year(), today.Month()
	if c.Month != "" {
		if year, month, err = utils.ParseMonth(c.Month); err != nil {
			return err
		}
	}

	view, err := svc.Month(habit.ID, year, month)
	if err != nil {
		return err
	}

	ctx.Printf("%s, %s %d\n", habit.Name, month, year)
	header := make([]string, len(utils.ShortWeekdays))
	for i, d := range utils.ShortWeekdays {
		header[i] = d[:2] + " "
	}
	ctx.Println(strings.Join(header, " "))

	var row []string
	for i := 0; i < view.LeadingBlank; i++ {
		row = append(row, "   ")
	}
	for _, day := range view.Days {
		cell := "%2d "
		switch {
		case day.IsCompleted:
			cell = "%2d✓"
		case day.IsToday:
			cell = "%2d*"
		case day.IsTarget && !day.IsFuture:
			cell = "%2d·"
		}
		row = append(row, fmt.Sprintf(cell, day.Day))
		if len(row) == 7 {
			ctx.Println(strings.Join(row, " "))
			row = row[:0]
		}
	}
	if len(row) > 0 {
		ctx.Println(strings.Join(row, " "))
	}
	ctx.Println("\n✓ done  · missed target  * today")
	return nil
}
