package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCalendar(t *testing.T) {
	c := DefaultCalendar()

	slots := c.Slots()
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "17:30", slots[17])
	assert.NotContains(t, slots, "18:00")
}

func TestCalendarContains(t *testing.T) {
	c := DefaultCalendar()

	assert.True(t, c.Contains("09:00"))
	assert.True(t, c.Contains("13:30"))
	assert.False(t, c.Contains("08:30"))
	assert.False(t, c.Contains("18:00"))
	assert.False(t, c.Contains("10:15"))
	assert.False(t, c.Contains("9:00"))
}

func TestCalendarFree(t *testing.T) {
	c := DefaultCalendar()

	t.Run("no bookings", func(t *testing.T) {
		assert.Equal(t, c.Slots(), c.Free(nil))
	})

	t.Run("some bookings keep order", func(t *testing.T) {
		free := c.Free([]string{"17:30", "09:00", "12:00"})
		require.Len(t, free, 15)
		assert.Equal(t, "09:30", free[0])
		assert.Equal(t, "17:00", free[len(free)-1])
		assert.NotContains(t, free, "12:00")
	})

	t.Run("fully booked", func(t *testing.T) {
		free := c.Free(c.Slots())
		assert.NotNil(t, free)
		assert.Empty(t, free)
	})

	t.Run("off-grid bookings ignored", func(t *testing.T) {
		assert.Len(t, c.Free([]string{"07:00", "19:45"}), 18)
	})
}

func TestSlotsReturnsCopy(t *testing.T) {
	c := DefaultCalendar()

	slots := c.Slots()
	slots[0] = "mutated"

	assert.Equal(t, "09:00", c.Slots()[0])
}

func TestNewCalendarRejectsBadInput(t *testing.T) {
	cases := []struct {
		name        string
		open, close string
		step        time.Duration
	}{
		{"bad open", "9am", "18:00", 30 * time.Minute},
		{"bad close", "09:00", "six", 30 * time.Minute},
		{"close before open", "18:00", "09:00", 30 * time.Minute},
		{"zero step", "09:00", "18:00", 0},
		{"sub-minute step", "09:00", "18:00", 90 * time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCalendar(tc.open, tc.close, tc.step)
			assert.Error(t, err)
		})
	}
}

func TestNewCalendarHourlySteps(t *testing.T) {
	c, err := NewCalendar("10:00", "14:00", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00"}, c.Slots())
}

func TestSlotLockerSerializesSameKey(t *testing.T) {
	locker := NewSlotLocker(8)
	key := SlotKey(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "10:00")
	assert.Equal(t, "2026-03-02|10:00", key)

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock(key)
			defer unlock()

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}
