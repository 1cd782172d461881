package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConflictType represents the type of validation conflict
type ConflictType string

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "habitflow"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/habitflow"
	DefaultDBPath      = "~/.config/habitflow/habitflow.db"
	ConfigFileName     = "config.toml"
	ServeLockfileName  = "serve.lock"
	Version            = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitflow-"
	BackupFileSuffix = ".db"

	// Export constants
	ExportFilePrefix = "habitflow-export-"
	ExportFileSuffix = ".json"

	// Server constants
	DefaultServerAddr     = ":8080"
	DefaultBackupSchedule = "0 3 * * *"
	DefaultTokenTTLHours  = 24 * 30
	JWTSecretEnv          = "HABITFLOW_JWT_SECRET"
	DBEnv                 = "HABITFLOW_DB"
	TimezoneEnv           = "HABITFLOW_TIMEZONE"

	// Conflict Types
	ConflictDuplicateHabitName ConflictType = "duplicate_habit_name"
	ConflictEmptyTargetDays    ConflictType = "empty_target_days"
	ConflictInvalidWeekday     ConflictType = "invalid_weekday"
	ConflictInvalidDateKey     ConflictType = "invalid_date_key"
	ConflictInvalidCreatedAt   ConflictType = "invalid_created_at"
	ConflictDuplicateProgress  ConflictType = "duplicate_progress"
	ConflictOrphanProgress     ConflictType = "orphan_progress"
	ConflictUnknownColor       ConflictType = "unknown_color"
	ConflictUnknownIcon        ConflictType = "unknown_icon"
)

// Session States
const (
	StateHabits SessionState = iota
	StateDashboard
	StateCalendar
	StateSettings
	StateAddHabit
	StateEditHabit
	StateConfirmDelete
)
