package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	svc, err := ctx.Service()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(svc, settings), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
