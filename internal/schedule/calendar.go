// Package schedule holds the booking grid and the slot locks that guard it.
package schedule

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// Calendar is the fixed business-hours grid. It is built once and never mutated,
// so a single value can be shared by every request.
type Calendar struct {
	slots []string
	index map[string]struct{}
}

// NewCalendar builds slots from open (inclusive) to close (exclusive) every step.
func NewCalendar(open, close string, step time.Duration) (*Calendar, error) {
	start, err := time.Parse(clockLayout, open)
	if err != nil {
		return nil, fmt.Errorf("invalid opening time %q: %w", open, err)
	}
	end, err := time.Parse(clockLayout, close)
	if err != nil {
		return nil, fmt.Errorf("invalid closing time %q: %w", close, err)
	}
	if step <= 0 || step%time.Minute != 0 {
		return nil, fmt.Errorf("slot step must be a positive number of minutes, got %s", step)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("closing time %s must be after opening time %s", close, open)
	}

	c := &Calendar{index: make(map[string]struct{})}
	for t := start; t.Before(end); t = t.Add(step) {
		slot := t.Format(clockLayout)
		c.slots = append(c.slots, slot)
		c.index[slot] = struct{}{}
	}

	return c, nil
}

// DefaultCalendar is 09:00-18:00 in 30 minute steps: 18 slots, 09:00 through 17:30.
func DefaultCalendar() *Calendar {
	c, err := NewCalendar("09:00", "18:00", 30*time.Minute)
	if err != nil {
		panic(err)
	}
	return c
}

// Slots returns every slot in ascending order.
func (c *Calendar) Slots() []string {
	out := make([]string, len(c.slots))
	copy(out, c.slots)
	return out
}

func (c *Calendar) Len() int {
	return len(c.slots)
}

// Contains reports whether slot is on the grid.
func (c *Calendar) Contains(slot string) bool {
	_, ok := c.index[slot]
	return ok
}

// Free returns the slots not present in booked, keeping calendar order.
// Booked values outside the grid are ignored.
func (c *Calendar) Free(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	free := make([]string, 0, len(c.slots))
	for _, slot := range c.slots {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}
