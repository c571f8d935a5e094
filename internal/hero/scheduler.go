package hero

import (
	"sync"
	"time"
)

// FrameID identifies a requested frame. Zero is never issued.
type FrameID uint64

// Scheduler runs callbacks on the next animation frame.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type frame struct {
	id FrameID
	fn func(now time.Time)
}

// frameQueue holds pending callbacks. Callbacks requested while a batch runs
// land in the next batch.
type frameQueue struct {
	mu      sync.Mutex
	next    FrameID
	pending []frame
}

func (q *frameQueue) request(fn func(now time.Time)) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, frame{id: q.next, fn: fn})
	return q.next
}

func (q *frameQueue) cancel(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, f := range q.pending {
		if f.id == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *frameQueue) take() []frame {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending
	q.pending = nil
	return batch
}

func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// ManualScheduler only advances when stepped. It doubles as the clock so a
// whole animation can be replayed deterministically.
type ManualScheduler struct {
	queue frameQueue

	mu  sync.Mutex
	now time.Time
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (m *ManualScheduler) RequestFrame(fn func(now time.Time)) FrameID {
	return m.queue.request(fn)
}

func (m *ManualScheduler) CancelFrame(id FrameID) {
	m.queue.cancel(id)
}

func (m *ManualScheduler) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *ManualScheduler) Pending() int {
	return m.queue.len()
}

// Step moves the clock forward by d and runs the frames that were pending
// before the call. It returns how many ran.
func (m *ManualScheduler) Step(d time.Duration) int {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	m.mu.Unlock()

	batch := m.queue.take()
	for _, f := range batch {
		f.fn(now)
	}
	return len(batch)
}

// Run steps every interval until nothing is pending or total has elapsed.
func (m *ManualScheduler) Run(interval, total time.Duration) {
	for elapsed := time.Duration(0); elapsed < total && m.Pending() > 0; elapsed += interval {
		m.Step(interval)
	}
}

// TickerScheduler flushes pending frames on a wall-clock ticker.
type TickerScheduler struct {
	queue frameQueue

	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

// DefaultFrameInterval is roughly 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	s := &TickerScheduler{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *TickerScheduler) loop() {
	for {
		select {
		case <-s.done:
			return
		case now := <-s.ticker.C:
			for _, f := range s.queue.take() {
				f.fn(now)
			}
		}
	}
}

func (s *TickerScheduler) RequestFrame(fn func(now time.Time)) FrameID {
	return s.queue.request(fn)
}

func (s *TickerScheduler) CancelFrame(id FrameID) {
	s.queue.cancel(id)
}

func (s *TickerScheduler) Now() time.Time { return time.Now() }

func (s *TickerScheduler) Stop() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}
