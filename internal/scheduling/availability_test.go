package scheduling

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

// 2025-03-10 is a Monday.
func mustDate(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

var farAway = time.Date(2000, 1, 1, 12, 0, 0, 0, time.Local)

func TestAvailableSlots_OneHourWindow(t *testing.T) {
	w := Window{FromWeekDay: 1, ToWeekDay: 5, FromTime: "09:00:00", ToTime: "10:00:00"}

	got := AvailableSlots(w, mustDate(t, "2025-03-10"), farAway)
	want := []string{"09:00:00", "09:30:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAvailableSlots_SlotCountMatchesRange(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"08:00:00", "18:00:00", 20},
		{"09:00:00", "09:30:00", 1},
		{"09:00:00", "09:29:00", 1},
		{"09:00:00", "10:45:00", 4},
	}
	for _, tc := range cases {
		w := Window{FromWeekDay: 0, ToWeekDay: 6, FromTime: tc.from, ToTime: tc.to}
		got := AvailableSlots(w, mustDate(t, "2025-03-10"), farAway)
		if len(got) != tc.want {
			t.Errorf("%s-%s: expected %d slots, got %d (%v)", tc.from, tc.to, tc.want, len(got), got)
		}
	}
}

func TestAvailableSlots_WeekWraparound(t *testing.T) {
	// Friday through Monday
	w := Window{FromWeekDay: 5, ToWeekDay: 1, FromTime: "09:00:00", ToTime: "12:00:00"}

	cases := []struct {
		date      string
		available bool
	}{
		{"2025-03-14", true},  // Friday
		{"2025-03-15", true},  // Saturday
		{"2025-03-09", true},  // Sunday
		{"2025-03-10", true},  // Monday
		{"2025-03-11", false}, // Tuesday
		{"2025-03-12", false}, // Wednesday
		{"2025-03-13", false}, // Thursday
	}
	for _, tc := range cases {
		got := AvailableSlots(w, mustDate(t, tc.date), farAway)
		if (len(got) > 0) != tc.available {
			t.Errorf("%s: expected available=%v, got %v", tc.date, tc.available, got)
		}
	}
}

func TestAvailableSlots_PlainRangeBoundaries(t *testing.T) {
	// Monday through Wednesday
	w := Window{FromWeekDay: 1, ToWeekDay: 3, FromTime: "09:00:00", ToTime: "10:00:00"}

	if got := AvailableSlots(w, mustDate(t, "2025-03-10"), farAway); len(got) == 0 {
		t.Error("Monday is the first day of the range and must be available")
	}
	if got := AvailableSlots(w, mustDate(t, "2025-03-12"), farAway); len(got) == 0 {
		t.Error("Wednesday is the last day of the range and must be available")
	}
	if got := AvailableSlots(w, mustDate(t, "2025-03-09"), farAway); len(got) != 0 {
		t.Errorf("Sunday is outside the range, got %v", got)
	}
}

func TestAvailableSlots_SameDayCutoff(t *testing.T) {
	w := Window{FromWeekDay: 0, ToWeekDay: 6, FromTime: "09:00:00", ToTime: "18:00:00"}
	now := time.Date(2025, 3, 10, 14, 35, 0, 0, time.Local)

	got := AvailableSlots(w, mustDate(t, "2025-03-10"), now)
	want := []string{"15:00:00", "15:30:00", "16:00:00", "16:30:00", "17:00:00", "17:30:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestAvailableSlots_SameDayCutoffExcludesCurrentSlot(t *testing.T) {
	w := Window{FromWeekDay: 0, ToWeekDay: 6, FromTime: "09:00:00", ToTime: "18:00:00"}
	now := time.Date(2025, 3, 10, 15, 0, 59, 0, time.Local)

	got := AvailableSlots(w, mustDate(t, "2025-03-10"), now)
	if len(got) == 0 || got[0] != "15:30:00" {
		t.Errorf("a slot equal to now must be excluded, got %v", got)
	}
}

func TestAvailableSlots_OtherDayIgnoresClock(t *testing.T) {
	w := Window{FromWeekDay: 0, ToWeekDay: 6, FromTime: "09:00:00", ToTime: "10:00:00"}
	now := time.Date(2025, 3, 9, 23, 59, 0, 0, time.Local)

	got := AvailableSlots(w, mustDate(t, "2025-03-10"), now)
	if len(got) != 2 {
		t.Errorf("tomorrow must not be filtered, got %v", got)
	}
}

func TestAvailableSlots_TodayAfterClosing(t *testing.T) {
	w := Window{FromWeekDay: 0, ToWeekDay: 6, FromTime: "09:00:00", ToTime: "18:00:00"}
	now := time.Date(2025, 3, 10, 19, 0, 0, 0, time.Local)

	got := AvailableSlots(w, mustDate(t, "2025-03-10"), now)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestAvailableSlots_InvertedRangeIsEmpty(t *testing.T) {
	cases := []Window{
		{FromWeekDay: 0, ToWeekDay: 6, FromTime: "10:00:00", ToTime: "09:00:00"},
		{FromWeekDay: 0, ToWeekDay: 6, FromTime: "10:00:00", ToTime: "10:00:00"},
		{FromWeekDay: 0, ToWeekDay: 6, FromTime: "garbage", ToTime: "10:00:00"},
	}
	for _, w := range cases {
		got := AvailableSlots(w, mustDate(t, "2025-03-10"), farAway)
		if got == nil || len(got) != 0 {
			t.Errorf("%+v: expected empty non-nil slice, got %#v", w, got)
		}
	}
}

func TestGrid_OffsetStartCarriesMinutes(t *testing.T) {
	w := Window{FromTime: "09:15:00", ToTime: "10:30:00"}

	got := Grid(w)
	want := []string{"09:15:00", "09:45:00", "10:15:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGrid_SecondsIgnored(t *testing.T) {
	w := Window{FromTime: "09:00:45", ToTime: "10:00:30"}

	got := Grid(w)
	want := []string{"09:00:00", "09:30:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestGrid_LateEvening(t *testing.T) {
	w := Window{FromTime: "23:00", ToTime: "23:59"}

	got := Grid(w)
	want := []string{"23:00:00", "23:30:00"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWindow_Validate(t *testing.T) {
	cases := []struct {
		name string
		w    Window
		want error
	}{
		{"ok", Window{1, 5, "08:00:00", "18:00:00"}, nil},
		{"wrap ok", Window{5, 1, "08:00", "12:00"}, nil},
		{"bad from day", Window{-1, 5, "08:00", "12:00"}, ErrInvalidWeekDay},
		{"bad to day", Window{1, 7, "08:00", "12:00"}, ErrInvalidWeekDay},
		{"equal times", Window{1, 5, "08:00", "08:00"}, ErrEmptyTimeRange},
		{"inverted", Window{1, 5, "18:00", "08:00"}, ErrEmptyTimeRange},
		{"bad time", Window{1, 5, "8am", "18:00"}, ErrInvalidTime},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.w.Validate()
			if tc.want == nil {
				if err != nil {
					t.Errorf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestContains(t *testing.T) {
	slots := []string{"09:00:00", "09:30:00"}
	if !Contains(slots, "09:30:00") {
		t.Error("expected 09:30:00 to be found")
	}
	if Contains(slots, "10:00:00") {
		t.Error("10:00:00 must not be found")
	}
}
