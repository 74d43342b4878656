package dom

import (
	"sort"
	"time"
)

// Scheduler is the single-threaded task source the controllers defer work to.
type Scheduler interface {
	// RequestAnimationFrame queues fn for the next frame.
	RequestAnimationFrame(fn func())
	// SetTimeout runs fn once after d.
	SetTimeout(fn func(), d time.Duration)
	// SetInterval runs fn every d.
	SetInterval(fn func(), d time.Duration)
}

type timer struct {
	due      time.Duration
	every    time.Duration
	seq      int
	fn       func()
	canceled bool
}

// Loop is a headless event loop with a virtual clock. Nothing runs until the
// owner calls Frame or Advance, so callers control interleaving exactly.
type Loop struct {
	now    time.Duration
	seq    int
	frames []func()
	timers []*timer
}

// NewLoop returns a loop whose virtual clock starts at zero.
func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) RequestAnimationFrame(fn func()) {
	l.frames = append(l.frames, fn)
}

func (l *Loop) SetTimeout(fn func(), d time.Duration) {
	l.addTimer(fn, d, 0)
}

func (l *Loop) SetInterval(fn func(), d time.Duration) {
	if d <= 0 {
		d = time.Millisecond
	}
	l.addTimer(fn, d, d)
}

func (l *Loop) addTimer(fn func(), d, every time.Duration) {
	l.seq++
	l.timers = append(l.timers, &timer{due: l.now + d, every: every, seq: l.seq, fn: fn})
}

// Elapsed returns the virtual time since the loop started.
func (l *Loop) Elapsed() time.Duration { return l.now }

// PendingFrames reports how many frame callbacks are queued.
func (l *Loop) PendingFrames() int { return len(l.frames) }

// Frame runs the callbacks queued before the call. Callbacks queued while
// running are deferred to the next frame.
func (l *Loop) Frame() {
	batch := l.frames
	l.frames = nil
	for _, fn := range batch {
		fn()
	}
}

// Advance moves the virtual clock forward by d, firing due timers in order
// and running one frame after each timer.
func (l *Loop) Advance(d time.Duration) {
	target := l.now + d
	for {
		next := l.nextDue(target)
		if next == nil {
			break
		}
		l.now = next.due
		if next.every > 0 {
			next.due += next.every
		} else {
			next.canceled = true
		}
		next.fn()
		l.Frame()
		l.compact()
	}
	l.now = target
}

func (l *Loop) nextDue(limit time.Duration) *timer {
	var live []*timer
	for _, t := range l.timers {
		if !t.canceled && t.due <= limit {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due != live[j].due {
			return live[i].due < live[j].due
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (l *Loop) compact() {
	kept := l.timers[:0]
	for _, t := range l.timers {
		if !t.canceled {
			kept = append(kept, t)
		}
	}
	l.timers = kept
}
