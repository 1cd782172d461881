package constants

const (
	// DateFormat is the date-key format used for every persisted or exchanged day (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the format accepted by month-scoped views (YYYY-MM)
	MonthFormat = "2006-01"

	// DaysInWeek is the number of weekdays a habit can target
	DaysInWeek = 7

	// WeeklyWindowDays is how far back the weekly average window reaches from today
	WeeklyWindowDays = 7
)
