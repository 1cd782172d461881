package settings

import (
	"fmt"

	"github.com/julianstephens/habitflow/internal/cli"
	"github.com/julianstephens/habitflow/internal/models"
	"github.com/julianstephens/habitflow/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone     *string `help:"IANA timezone that defines today, e.g. Asia/Kolkata or Local."`
	DefaultColor *string `help:"Color for new habits: a palette name or #RRGGBB."`
	DefaultIcon  *string `help:"Icon for new habits."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Timezone:       %s\n", settings.Timezone)
		ctx.Printf("  Owner ID:       %s\n", settings.OwnerID)
		ctx.Printf("  Default Color:  %s\n", settings.DefaultColor)
		ctx.Printf("  Default Icon:   %s\n", settings.DefaultIcon)
		if ctx.Config != nil && ctx.Config.Storage.Timezone != "" && ctx.Config.Storage.Timezone != settings.Timezone {
			ctx.Printf("\n  Timezone is overridden to %s by config or environment.\n", ctx.Config.Storage.Timezone)
		}
		return nil
	}

	updated, err := c.apply(&settings)
	if err != nil {
		return err
	}
	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func (c *SettingsCmd) apply(settings *models.Settings) (bool, error) {
	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return false, fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DefaultColor != nil {
		color, ok := models.ResolveColor(*c.DefaultColor)
		if !ok {
			return false, fmt.Errorf("invalid color: %s", *c.DefaultColor)
		}
		settings.DefaultColor = color
		updated = true
	}
	if c.DefaultIcon != nil {
		icon, ok := models.ResolveIcon(*c.DefaultIcon)
		if !ok {
			return false, fmt.Errorf("unknown icon: %s", *c.DefaultIcon)
		}
		settings.DefaultIcon = icon
		updated = true
	}
	return updated, nil
}
