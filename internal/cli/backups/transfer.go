package backups

import (
	"fmt"

	"github.com/julianstephens/habitflow/internal/backup"
	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/config"
)

// ExportCmd writes every habit and progress entry of the local owner as JSON.
type ExportCmd struct {
	Out string `short:"o" help:"Output file. Defaults to habitflow-export-<date>.json in the working directory; '-' writes to stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	data, err := svc.Export()
	if err != nil {
		return err
	}

	if c.Out == "-" {
		raw, err := backup.EncodeExport(data)
		if err != nil {
			return err
		}
		ctx.Println(string(raw))
		return nil
	}

	path := c.Out
	if path == "" {
		path = backup.ExportFileName(svc.Calendar().Now())
	}
	path = config.ExpandPath(path)
	if err := backup.WriteExport(path, data); err != nil {
		return err
	}
	ctx.Printf("✓ Exported %d habits and %d progress entries to %s\n", len(data.Habits), len(data.Progress), path)
	return nil
}

// ImportCmd upserts habits and progress from an export file.
type ImportCmd struct {
	File string `arg:"" help:"Export file to import."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	data, err := backup.ReadExport(config.ExpandPath(c.File))
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	svc, err := ctx.Service()
	if err != nil {
		return err
	}
	result, err := svc.Import(data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("✓ Imported %d habits and %d progress entries\n", result.Habits, result.Progress)
	return nil
}
