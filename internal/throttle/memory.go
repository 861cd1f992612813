package throttle

import (
	"context"
	"sync"
	"time"
)

type record struct {
	mu           sync.Mutex
	failures     int
	firstFailure time.Time
	// evicted is set under mu right before the record leaves the map, so a
	// writer that loaded it concurrently knows to retry with a fresh one.
	evicted bool
}

func (r *record) expired(now time.Time, window time.Duration) bool {
	return r.failures == 0 || !now.Before(r.firstFailure.Add(window))
}

// MemoryThrottle is a single-process [LoginThrottle].
//
// Each key owns a record with its own mutex, so only requests for the same
// key serialize.
type MemoryThrottle struct {
	policy  Policy
	records sync.Map // string -> *record
	now     func() time.Time
}

func NewMemoryThrottle(policy Policy) *MemoryThrottle {
	return &MemoryThrottle{
		policy: policy,
		now:    time.Now,
	}
}

func (t *MemoryThrottle) IsBlocked(_ context.Context, key string) (bool, error) {
	v, ok := t.records.Load(KeyOrUnknown(key))
	if !ok {
		return false, nil
	}

	r := v.(*record)
	r.mu.Lock()
	defer r.mu.Unlock()

	// a record evicted by Reset after our Load is a clean slate
	if r.evicted || r.expired(t.now(), t.policy.Window) {
		return false, nil
	}
	return r.failures >= t.policy.MaxFailures, nil
}

func (t *MemoryThrottle) RecordFailure(_ context.Context, key string) error {
	key = KeyOrUnknown(key)
	for {
		v, _ := t.records.LoadOrStore(key, &record{})
		r := v.(*record)

		r.mu.Lock()
		if r.evicted {
			r.mu.Unlock()
			continue
		}

		now := t.now()
		if r.expired(now, t.policy.Window) {
			r.failures = 0
			r.firstFailure = now
		}
		r.failures++
		r.mu.Unlock()
		return nil
	}
}

func (t *MemoryThrottle) Reset(_ context.Context, key string) error {
	key = KeyOrUnknown(key)
	v, ok := t.records.Load(key)
	if !ok {
		return nil
	}

	r := v.(*record)
	r.mu.Lock()
	r.evicted = true
	t.records.CompareAndDelete(key, r)
	r.mu.Unlock()
	return nil
}

// Sweep evicts records whose window has ended and returns how many were
// removed. It only reclaims memory: reads already ignore expired records.
func (t *MemoryThrottle) Sweep(now time.Time) int {
	removed := 0
	t.records.Range(func(k, v any) bool {
		r := v.(*record)
		r.mu.Lock()
		if !r.evicted && r.expired(now, t.policy.Window) {
			r.evicted = true
			if t.records.CompareAndDelete(k, r) {
				removed++
			}
		}
		r.mu.Unlock()
		return true
	})
	return removed
}

func (t *MemoryThrottle) failures(key string) int {
	v, ok := t.records.Load(key)
	if !ok {
		return 0
	}
	r := v.(*record)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.expired(t.now(), t.policy.Window) {
		return 0
	}
	return r.failures
}
