// internal/slotlock/lock.go

// Package slotlock serializes concurrent booking attempts for the same owner
// and start instant within this process. It narrows the availability-check /
// calendar-create race; the external calendar remains the system of record.
package slotlock

import (
	"context"
	"sync"
	"time"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

const (
	defaultHoldTTL  = 30 * time.Second
	cleanupInterval = 5 * time.Minute
)

type hold struct {
	acquiredAt time.Time
}

// Locker hands out short-lived exclusive holds keyed by (owner, slot start).
// Holds expire after a TTL so a crashed request can never wedge a slot.
type Locker struct {
	clock Clock
	ttl   time.Duration

	mu    sync.Mutex
	holds map[string]*hold

	cleanupCtx    context.Context
	cleanupCancel context.CancelFunc
	cleanupOnce   sync.Once
	cleanupWg     sync.WaitGroup
}

// New creates a locker. A nil clock uses real time; a zero ttl uses the
// default 30 seconds.
func New(clock Clock, ttl time.Duration) *Locker {
	if clock == nil {
		clock = realClock{}
	}
	if ttl <= 0 {
		ttl = defaultHoldTTL
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Locker{
		clock:         clock,
		ttl:           ttl,
		holds:         make(map[string]*hold),
		cleanupCtx:    ctx,
		cleanupCancel: cancel,
	}
}

// Close stops the cleanup goroutine and releases resources.
func (l *Locker) Close() {
	l.cleanupCancel()
	l.cleanupWg.Wait()
}

// Acquire attempts to take the hold for an owner's slot. It returns false when
// another request currently holds an unexpired lock on the same slot.
func (l *Locker) Acquire(ownerID string, slot time.Time) bool {
	l.startCleanup()
	key := holdKey(ownerID, slot)
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if h := l.holds[key]; h != nil && now.Sub(h.acquiredAt) < l.ttl {
		return false
	}
	l.holds[key] = &hold{acquiredAt: now}
	return true
}

// Release frees the hold so the slot can be attempted again immediately.
func (l *Locker) Release(ownerID string, slot time.Time) {
	key := holdKey(ownerID, slot)
	l.mu.Lock()
	delete(l.holds, key)
	l.mu.Unlock()
}

func holdKey(ownerID string, slot time.Time) string {
	return ownerID + "|" + slot.UTC().Format(time.RFC3339)
}

func (l *Locker) startCleanup() {
	l.cleanupOnce.Do(func() {
		l.cleanupWg.Add(1)
		go func() {
			defer l.cleanupWg.Done()
			ticker := time.NewTicker(cleanupInterval)
			defer ticker.Stop()
			for {
				select {
				case <-l.cleanupCtx.Done():
					return
				case <-ticker.C:
					l.cleanup()
				}
			}
		}()
	})
}

func (l *Locker) cleanup() {
	now := l.clock.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, h := range l.holds {
		if now.Sub(h.acquiredAt) >= l.ttl {
			delete(l.holds, key)
		}
	}
}
