package scheduling

import (
	"errors"
	"fmt"
	"time"
)

// SlotMinutes is the fixed width of a bookable slot.
const SlotMinutes = 30

var (
	ErrInvalidWeekDay = errors.New("week day must be between 0 (Sunday) and 6 (Saturday)")
	ErrEmptyTimeRange = errors.New("start time must be earlier than end time")
)

// Window is a doctor's weekly availability. Week days use 0 = Sunday; when
// FromWeekDay > ToWeekDay the range wraps past Saturday.
type Window struct {
	FromWeekDay int
	ToWeekDay   int
	FromTime    string
	ToTime      string
}

// Validate enforces the rules applied when a doctor is saved.
func (w Window) Validate() error {
	if w.FromWeekDay < 0 || w.FromWeekDay > 6 || w.ToWeekDay < 0 || w.ToWeekDay > 6 {
		return ErrInvalidWeekDay
	}
	from, err := ParseTimeOfDay(w.FromTime)
	if err != nil {
		return err
	}
	to, err := ParseTimeOfDay(w.ToTime)
	if err != nil {
		return err
	}
	if from.Minutes() >= to.Minutes() {
		return ErrEmptyTimeRange
	}
	return nil
}

// CoversDay reports whether d falls inside the week-day range, both ends inclusive.
func (w Window) CoversDay(d Date) bool {
	dow := int(d.Weekday())
	if w.FromWeekDay <= w.ToWeekDay {
		return dow >= w.FromWeekDay && dow <= w.ToWeekDay
	}
	return dow >= w.FromWeekDay || dow <= w.ToWeekDay
}

// Grid returns every slot start inside the daily time range, ignoring week days
// and the current time. An empty or unparsable range yields no slots.
func Grid(w Window) []string {
	from, err := ParseTimeOfDay(w.FromTime)
	if err != nil {
		return []string{}
	}
	to, err := ParseTimeOfDay(w.ToTime)
	if err != nil {
		return []string{}
	}
	if from.Minutes() >= to.Minutes() {
		return []string{}
	}

	slots := make([]string, 0, (to.Minutes()-from.Minutes()+SlotMinutes-1)/SlotMinutes)
	hour, minute := from.Hour, from.Minute
	for hour < to.Hour || (hour == to.Hour && minute < to.Minute) {
		slots = append(slots, fmt.Sprintf("%02d:%02d:00", hour, minute))

		minute += SlotMinutes
		if minute >= 60 {
			minute -= 60
			hour++
		}
	}
	return slots
}

// AvailableSlots returns the ordered slots a doctor offers on date. When date is
// today in now's location, slots at or before now's minute are dropped.
func AvailableSlots(w Window, date Date, now time.Time) []string {
	if !w.CoversDay(date) {
		return []string{}
	}
	return filterPast(Grid(w), date, now)
}

// filterPast never modifies grid.
func filterPast(grid []string, date Date, now time.Time) []string {
	if DateOf(now) != date {
		out := make([]string, len(grid))
		copy(out, grid)
		return out
	}

	cutoff := now.Hour()*60 + now.Minute()
	out := make([]string, 0, len(grid))
	for _, slot := range grid {
		t, err := ParseTimeOfDay(slot)
		if err != nil {
			continue
		}
		if t.Minutes() > cutoff {
			out = append(out, slot)
		}
	}
	return out
}

// Contains reports whether slot is one of slots.
func Contains(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
