package utils

import (
	"testing"
	"time"

	"github.com/julianstephens/habitflow/internal/models"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Asia/Kolkata", timezone: "Asia/Kolkata", wantErr: false},
		{name: "valid timezone America/New_York", timezone: "America/New_York", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestNowInTimezoneInvalid(t *testing.T) {
	if _, err := NowInTimezone("Not/AZone"); err == nil {
		t.Error("NowInTimezone() expected error for invalid timezone")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("") || !ValidateTimezone("Local") || !ValidateTimezone("Asia/Kolkata") {
		t.Error("ValidateTimezone() rejected a valid timezone")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone() accepted an invalid timezone")
	}
}

func TestParseDateKey(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")

	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "valid", key: "2024-01-15", wantErr: false},
		{name: "leap day", key: "2024-02-29", wantErr: false},
		{name: "non leap day", key: "2023-02-29", wantErr: true},
		{name: "unpadded month", key: "2024-1-15", wantErr: true},
		{name: "slashes", key: "2024/01/15", wantErr: true},
		{name: "trailing time", key: "2024-01-15T00:00:00Z", wantErr: true},
		{name: "empty", key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateKey(tt.key, loc)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Location() != loc {
				t.Errorf("ParseDateKey(%q) location = %v, want %v", tt.key, got.Location(), loc)
			}
			if got.Hour() != 0 || got.Minute() != 0 {
				t.Errorf("ParseDateKey(%q) = %v, want midnight", tt.key, got)
			}
			if DateKey(got) != tt.key {
				t.Errorf("DateKey(ParseDateKey(%q)) = %q", tt.key, DateKey(got))
			}
		})
	}
}

func TestDateKeyRoundTrip(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	start := time.Date(2023, 12, 25, 0, 0, 0, 0, loc)
	for i := 0; i < 800; i++ {
		d := AddDays(start, i)
		back, err := ParseDateKey(DateKey(d), loc)
		if err != nil {
			t.Fatalf("ParseDateKey(%q) failed: %v", DateKey(d), err)
		}
		if !back.Equal(d) {
			t.Fatalf("round trip of %v gave %v", d, back)
		}
	}
}

func TestDateKeyDoesNotConvertZone(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	// 23:30 UTC on Jan 1 is already Jan 2 in IST, but DateKey must use the value's own fields
	utc := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	if got := DateKey(utc); got != "2024-01-01" {
		t.Errorf("DateKey() = %q, want 2024-01-01", got)
	}
	if got := DateKey(utc.In(loc)); got != "2024-01-02" {
		t.Errorf("DateKey() = %q, want 2024-01-02", got)
	}
}

func TestAddDays(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	// Crosses the March DST change
	d := time.Date(2024, 3, 9, 0, 0, 0, 0, loc)
	got := AddDays(d, 2)
	if DateKey(got) != "2024-03-11" || got.Hour() != 0 {
		t.Errorf("AddDays() = %v, want 2024-03-11 00:00", got)
	}
	if DateKey(d) != "2024-03-09" {
		t.Errorf("AddDays() mutated its input: %v", d)
	}
	if DateKey(AddDays(d, -9)) != "2024-02-29" {
		t.Errorf("AddDays(-9) = %v, want 2024-02-29", AddDays(d, -9))
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-07 is a Sunday
	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		if got := WeekdayOf(AddDays(sunday, i)); got != i {
			t.Errorf("WeekdayOf(%s) = %d, want %d", DateKey(AddDays(sunday, i)), got, i)
		}
	}
}

func TestIsTargetDay(t *testing.T) {
	habit := models.Habit{TargetDays: []int{1, 3, 5}}
	monday := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	want := []bool{true, false, true, false, true, false, false}
	for i, w := range want {
		d := AddDays(monday, i)
		if got := IsTargetDay(habit, d); got != w {
			t.Errorf("IsTargetDay(%s) = %v, want %v", DateKey(d), got, w)
		}
	}

	empty := models.Habit{}
	if IsTargetDay(empty, monday) {
		t.Error("IsTargetDay() with no target days should be false")
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.January, 31},
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	if got := FirstWeekdayOfMonth(2024, time.January); got != 1 {
		t.Errorf("FirstWeekdayOfMonth(2024, Jan) = %d, want 1", got)
	}
	if got := FirstWeekdayOfMonth(2024, time.September); got != 0 {
		t.Errorf("FirstWeekdayOfMonth(2024, Sep) = %d, want 0", got)
	}
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-02")
	if err != nil || y != 2024 || m != time.February {
		t.Errorf("ParseMonth() = %d, %v, %v", y, m, err)
	}
	if _, _, err := ParseMonth("2024-13"); err == nil {
		t.Error("ParseMonth() expected error for month 13")
	}
}
