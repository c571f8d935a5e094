package cart

import (
	"sync"
	"time"
)

// FeedbackDuration is how long an add button shows its "added" label.
const FeedbackDuration = 1800 * time.Millisecond

// AddedLabel replaces the button label while feedback is showing.
const AddedLabel = "Agregado ✓"

// Timer is the part of *time.Timer the feedback needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d; time.AfterFunc fits once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Feedback is the per-button "added" flag. Triggering again restarts the
// countdown; Close cancels it so no callback fires after teardown.
type Feedback struct {
	after    AfterFunc
	duration time.Duration
	onChange func(active bool)

	mu     sync.Mutex
	timer  Timer
	seq    uint64
	active bool
	closed bool
}

func NewFeedback(onChange func(active bool)) *Feedback {
	return NewFeedbackWith(realAfterFunc, FeedbackDuration, onChange)
}

func NewFeedbackWith(after AfterFunc, d time.Duration, onChange func(active bool)) *Feedback {
	if onChange == nil {
		onChange = func(bool) {}
	}
	return &Feedback{after: after, duration: d, onChange: onChange}
}

// Trigger shows the flag and (re)arms the reset.
func (f *Feedback) Trigger() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if f.timer != nil {
		f.timer.Stop()
	}
	f.seq++
	seq := f.seq
	f.active = true
	f.timer = f.after(f.duration, func() { f.expire(seq) })
	f.mu.Unlock()

	f.onChange(true)
}

func (f *Feedback) expire(seq uint64) {
	f.mu.Lock()
	if f.closed || seq != f.seq {
		f.mu.Unlock()
		return
	}
	f.active = false
	f.timer = nil
	f.mu.Unlock()

	f.onChange(false)
}

func (f *Feedback) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// Label picks the button text for the current state.
func (f *Feedback) Label(idle string) string {
	if f.Active() {
		return AddedLabel
	}
	return idle
}

func (f *Feedback) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.active = false
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
