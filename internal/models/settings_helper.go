package models

import (
	"github.com/julianstephens/habitflow/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Unknown keys are ignored.
func MapToSettings(data map[string]string) Settings {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingOwnerID:
			settings.OwnerID = value
		case constants.SettingDefaultColor:
			settings.DefaultColor = value
		case constants.SettingDefaultIcon:
			settings.DefaultIcon = value
		}
	}
	return settings
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:     settings.Timezone,
		constants.SettingOwnerID:      settings.OwnerID,
		constants.SettingDefaultColor: settings.DefaultColor,
		constants.SettingDefaultIcon:  settings.DefaultIcon,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
// OwnerID has no default; it is generated when the store is initialized.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DefaultColor == "" {
		settings.DefaultColor = constants.DefaultColor
	}
	if settings.DefaultIcon == "" {
		settings.DefaultIcon = constants.DefaultIcon
	}
}
