package overlay

import (
	"sync"
	"time"
)

// DefaultMinDelta bounds forwarded time updates to roughly display refresh
// rate.
const DefaultMinDelta = 50 * time.Millisecond

// TimeLoop observes playback-clock updates and forwards them to a consumer
// (typically the editor's active-cue highlight). Bursts are coalesced to
// the newest value so at most one notification is pending at a time, and
// changes smaller than the minimum delta are dropped.
type TimeLoop struct {
	updates  <-chan time.Duration
	notify   func(time.Duration)
	minDelta time.Duration

	stopOnce sync.Once
	done     chan struct{}
}

func NewTimeLoop(updates <-chan time.Duration, minDelta time.Duration, notify func(time.Duration)) *TimeLoop {
	if minDelta <= 0 {
		minDelta = DefaultMinDelta
	}
	l := &TimeLoop{
		updates:  updates,
		notify:   notify,
		minDelta: minDelta,
		done:     make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *TimeLoop) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

func (l *TimeLoop) run() {
	var last time.Duration
	seen := false

	for {
		select {
		case <-l.done:
			return
		case t, ok := <-l.updates:
			if !ok {
				return
			}

			// Coalesce queued updates down to the newest one
			draining := true
			for draining {
				select {
				case newer, stillOpen := <-l.updates:
					if !stillOpen {
						draining = false
						break
					}
					t = newer
				default:
					draining = false
				}
			}

			if seen && absDelta(t, last) <= l.minDelta {
				continue
			}
			last = t
			seen = true
			l.notify(t)
		}
	}
}

func absDelta(a, b time.Duration) time.Duration {
	if a > b {
		return a - b
	}
	return b - a
}
