package constants

const (
	// Setting keys
	SettingTimezone     = "timezone"
	SettingOwnerID      = "owner_id"
	SettingDefaultColor = "default_color"
	SettingDefaultIcon  = "default_icon"

	// Default Settings Values
	DefaultTimezone = "Asia/Kolkata"
	DefaultColor    = "#3B82F6"
	DefaultIcon     = "Target"
)
