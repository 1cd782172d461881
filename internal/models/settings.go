package models

// Settings represents per-database settings
type Settings struct {
	Timezone     string `json:"timezone"`      // IANA timezone that defines "today" (e.g. "Asia/Kolkata", or "Local" for system timezone)
	OwnerID      string `json:"owner_id"`      // owner used for local CLI and TUI sessions
	DefaultColor string `json:"default_color"` // color assigned to new habits when none is given
	DefaultIcon  string `json:"default_icon"`  // icon assigned to new habits when none is given
}
