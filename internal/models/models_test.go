// internal/models/models_test.go
package models

import (
	"testing"
	"time"
)

func TestDayOfWeekOf(t *testing.T) {
	// 2024-03-04 is a Monday.
	for i := 0; i < 7; i++ {
		date := time.Date(2024, time.March, 4+i, 12, 0, 0, 0, time.UTC)
		got := DayOfWeekOf(date)
		if got != DayOfWeek(i) {
			t.Errorf("DayOfWeekOf(%s) = %s, want %s", date.Format("2006-01-02"), got, DayOfWeek(i))
		}
	}
}

func TestParseDayOfWeek(t *testing.T) {
	tests := []struct {
		input   string
		want    DayOfWeek
		wantErr bool
	}{
		{"monday", Monday, false},
		{"SUNDAY", Sunday, false},
		{" wednesday ", Wednesday, false},
		{"funday", 0, true},
		{"", 0, true},
		{"0", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDayOfWeek(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDayOfWeek(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDayOfWeek(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDayOfWeek(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", TimeOfDay{9, 0}, false},
		{"23:59", TimeOfDay{23, 59}, false},
		{"00:00", TimeOfDay{0, 0}, false},
		{"24:00", TimeOfDay{}, true},
		{"12:60", TimeOfDay{}, true},
		{"12:00:30", TimeOfDay{}, true}, // seconds are rejected, not truncated
		{"noon", TimeOfDay{}, true},
		{"-1:00", TimeOfDay{}, true},
	}
	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimeOfDay(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimeOfDay(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	parsed, err := ParseTimeOfDay("07:05")
	if err != nil {
		t.Fatalf("ParseTimeOfDay: %v", err)
	}
	if parsed.String() != "07:05" {
		t.Errorf("String() = %q, want %q", parsed.String(), "07:05")
	}
}

func TestWindowValidate(t *testing.T) {
	valid := AvailabilityWindow{Day: Monday, Start: TimeOfDay{9, 0}, End: TimeOfDay{17, 0}}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid window rejected: %v", err)
	}

	inverted := AvailabilityWindow{Day: Monday, Start: TimeOfDay{17, 0}, End: TimeOfDay{9, 0}}
	if err := inverted.Validate(); err == nil {
		t.Error("inverted window accepted")
	}

	zeroLength := AvailabilityWindow{Day: Monday, Start: TimeOfDay{9, 0}, End: TimeOfDay{9, 0}}
	if err := zeroLength.Validate(); err == nil {
		t.Error("zero-length window accepted")
	}

	badDay := AvailabilityWindow{Day: 7, Start: TimeOfDay{9, 0}, End: TimeOfDay{17, 0}}
	if err := badDay.Validate(); err == nil {
		t.Error("out-of-range day accepted")
	}
}

func TestScheduleSortedWindows(t *testing.T) {
	s := Schedule{
		OwnerID:  "owner-1",
		Timezone: "UTC",
		Windows: []AvailabilityWindow{
			{Day: Friday, Start: TimeOfDay{9, 0}, End: TimeOfDay{12, 0}},
			{Day: Monday, Start: TimeOfDay{13, 0}, End: TimeOfDay{17, 0}},
			{Day: Monday, Start: TimeOfDay{9, 0}, End: TimeOfDay{12, 0}},
		},
	}
	sorted := s.SortedWindows()
	if sorted[0].Day != Monday || sorted[0].Start != (TimeOfDay{9, 0}) {
		t.Errorf("sorted[0] = %+v, want Monday 09:00", sorted[0])
	}
	if sorted[1].Day != Monday || sorted[1].Start != (TimeOfDay{13, 0}) {
		t.Errorf("sorted[1] = %+v, want Monday 13:00", sorted[1])
	}
	if sorted[2].Day != Friday {
		t.Errorf("sorted[2] = %+v, want Friday", sorted[2])
	}
	// Storage order untouched.
	if s.Windows[0].Day != Friday {
		t.Error("SortedWindows mutated the schedule")
	}
}

func TestScheduleValidate(t *testing.T) {
	base := Schedule{OwnerID: "owner-1", Timezone: "America/New_York"}
	if err := base.Validate(); err != nil {
		t.Errorf("windowless schedule rejected: %v", err)
	}

	badZone := Schedule{OwnerID: "owner-1", Timezone: "Mars/Olympus_Mons"}
	if err := badZone.Validate(); err == nil {
		t.Error("unknown timezone accepted")
	}

	noOwner := Schedule{Timezone: "UTC"}
	if err := noOwner.Validate(); err == nil {
		t.Error("schedule without owner accepted")
	}
}

func TestEventTypeValidate(t *testing.T) {
	valid := EventType{OwnerID: "owner-1", Name: "Intro call", DurationMinutes: 30}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid event rejected: %v", err)
	}

	tests := []struct {
		name  string
		event EventType
	}{
		{"empty name", EventType{DurationMinutes: 30}},
		{"blank name", EventType{Name: "   ", DurationMinutes: 30}},
		{"zero duration", EventType{Name: "Call"}},
		{"negative duration", EventType{Name: "Call", DurationMinutes: -15}},
		{"excessive duration", EventType{Name: "Call", DurationMinutes: 721}},
	}
	for _, tt := range tests {
		if err := tt.event.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestEventTypeDurationLabel(t *testing.T) {
	tests := []struct {
		minutes int64
		want    string
	}{
		{15, "15 minutes"},
		{1, "1 minute"},
		{60, "1 hour"},
		{90, "1 hour 30 minutes"},
		{120, "2 hours"},
		{61, "1 hour 1 minute"},
	}
	for _, tt := range tests {
		e := EventType{DurationMinutes: tt.minutes}
		if got := e.DurationLabel(); got != tt.want {
			t.Errorf("DurationLabel(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}
