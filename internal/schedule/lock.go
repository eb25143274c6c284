package schedule

import (
	"hash/fnv"
	"sync"
	"time"
)

const defaultShards = 64

// SlotLocker serializes check-then-write sequences on the same (date, time) slot.
// Keys are striped over a fixed set of mutexes; two different slots may share a
// stripe, the same slot always maps to the same one.
type SlotLocker struct {
	shards []sync.Mutex
}

func NewSlotLocker(shards int) *SlotLocker {
	if shards <= 0 {
		shards = defaultShards
	}
	return &SlotLocker{shards: make([]sync.Mutex, shards)}
}

// SlotKey identifies a booking cell.
func SlotKey(date time.Time, slot string) string {
	return date.Format("2006-01-02") + "|" + slot
}

// Lock acquires the stripe for key and returns its release func.
func (l *SlotLocker) Lock(key string) func() {
	mu := &l.shards[l.shardFor(key)]
	mu.Lock()
	return mu.Unlock
}

func (l *SlotLocker) shardFor(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(l.shards)))
}
