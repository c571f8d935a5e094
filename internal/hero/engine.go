package hero

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Renderer interface {
	Render(Visual)
}

type RendererFunc func(Visual)

func (f RendererFunc) Render(v Visual) { f(v) }

// Cue is the sound played when the roar starts.
type Cue interface {
	Play() error
}

type CueFunc func() error

func (f CueFunc) Play() error { return f() }

type Phase int

const (
	Idle Phase = iota
	Tilting
	Spinning
	Roaring
)

func (p Phase) String() string {
	switch p {
	case Tilting:
		return "tilting"
	case Spinning:
		return "spinning"
	case Roaring:
		return "roaring"
	default:
		return "idle"
	}
}

type PointerType string

const (
	Mouse PointerType = "mouse"
	Pen   PointerType = "pen"
	Touch PointerType = "touch"
)

type PointerEvent struct {
	X, Y float64
	Type PointerType
}

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithCue(c Cue) Option {
	return func(e *Engine) { e.cue = c }
}

func WithReducedMotion(on bool) Option {
	return func(e *Engine) { e.reduced = on }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine owns the hero animation state. Input handlers may be called from
// any goroutine; the renderer and cue are always invoked without the lock held.
type Engine struct {
	sched   Scheduler
	render  Renderer
	clock   Clock
	cue     Cue
	reduced bool
	log     *zap.Logger

	mu    sync.Mutex
	state State

	renderID FrameID
	spinID   FrameID
	roarID   FrameID

	// bumped whenever a timeline is cancelled so queued callbacks bail out
	renderSeq uint64
	spinSeq   uint64
	roarSeq   uint64

	spinStart time.Time
	roarStart time.Time
	closed    bool
}

// NewEngine renders the neutral pose right away. When sched also implements
// Clock it is used as the time source unless WithClock says otherwise.
func NewEngine(sched Scheduler, r Renderer, opts ...Option) *Engine {
	e := &Engine{
		sched:  sched,
		render: r,
		clock:  systemClock{},
		log:    zap.NewNop(),
		state:  State{Roar: neutralRoar()},
	}
	if c, ok := sched.(Clock); ok {
		e.clock = c
	}
	for _, opt := range opts {
		opt(e)
	}
	e.emit(ComputeFrame(e.state))
	return e
}

func (e *Engine) emit(v Visual) {
	if e.render != nil {
		e.render.Render(v)
	}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.state.Spin.Active:
		return Spinning
	case e.state.Roar.Active:
		return Roaring
	case (e.state.Tilt != Tilt{}):
		return Tilting
	default:
		return Idle
	}
}

func (e *Engine) busyLocked() bool {
	return e.state.Spin.Active || e.state.Roar.Active
}

// PointerMove tilts the card toward the pointer. Touch pointers, an empty
// rect, reduced motion and a running flip or roar all drop the event.
func (e *Engine) PointerMove(ev PointerEvent, rect Rect) {
	if e.reduced || ev.Type == Touch {
		return
	}
	tilt, ok := TiltFromPointer(ev.X, ev.Y, rect)
	if !ok {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.busyLocked() {
		return
	}
	e.state.Tilt = tilt
	e.scheduleRenderLocked()
}

// PointerLeave returns the card to rest unless an animation is running.
func (e *Engine) PointerLeave() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.busyLocked() {
		return
	}
	e.state.Tilt = Tilt{}
	e.state.Spin = Spin{}
	e.scheduleRenderLocked()
}

// HandleKey activates on Enter or Space and reports whether the key was
// consumed.
func (e *Engine) HandleKey(key string) bool {
	switch key {
	case "Enter", " ", "Space":
		e.Activate()
		return true
	}
	return false
}

// Activate starts the flip. It is a no-op under reduced motion or while a
// flip or roar is still running.
func (e *Engine) Activate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.reduced || e.busyLocked() {
		return
	}

	e.cancelSpinLocked()
	e.state.Spin = Spin{Active: true}
	e.state.Roar = neutralRoar()
	e.state.Tilt = Tilt{}
	e.scheduleRenderLocked()

	e.spinStart = e.clock.Now()
	seq := e.spinSeq
	e.spinID = e.sched.RequestFrame(func(now time.Time) { e.spinFrame(seq, now) })
}

func (e *Engine) spinFrame(seq uint64, now time.Time) {
	e.mu.Lock()
	if e.closed || seq != e.spinSeq {
		e.mu.Unlock()
		return
	}

	p := progress(now.Sub(e.spinStart), SpinDuration)
	e.state.Spin.RotationY = SpinRotation(p)
	e.scheduleRenderLocked()
	if p < 1 {
		e.spinID = e.sched.RequestFrame(func(now time.Time) { e.spinFrame(seq, now) })
		e.mu.Unlock()
		return
	}

	e.spinID = 0
	e.state.Spin = Spin{}
	cue := e.startRoarLocked(now)
	e.mu.Unlock()

	if cue != nil {
		if err := cue.Play(); err != nil {
			e.log.Debug("roar cue failed", zap.Error(err))
		}
	}
}

// startRoarLocked arms the roar timeline and hands back the cue to play once
// the lock is released.
func (e *Engine) startRoarLocked(now time.Time) Cue {
	e.cancelRoarLocked()
	e.state.Roar = Roar{Scale: 1, Active: true}
	e.roarStart = now
	seq := e.roarSeq
	e.roarID = e.sched.RequestFrame(func(now time.Time) { e.roarFrame(seq, now) })
	return e.cue
}

func (e *Engine) roarFrame(seq uint64, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || seq != e.roarSeq {
		return
	}

	p := progress(now.Sub(e.roarStart), RoarDuration)
	e.state.Roar = RoarAt(p)
	e.scheduleRenderLocked()
	if p < 1 {
		e.roarID = e.sched.RequestFrame(func(now time.Time) { e.roarFrame(seq, now) })
		return
	}
	e.roarID = 0
	e.state.Roar = neutralRoar()
}

// scheduleRenderLocked coalesces renders: at most one frame is pending and
// it draws whatever the state is when it fires.
func (e *Engine) scheduleRenderLocked() {
	if e.renderID != 0 {
		return
	}
	seq := e.renderSeq
	e.renderID = e.sched.RequestFrame(func(time.Time) { e.renderFrame(seq) })
}

func (e *Engine) renderFrame(seq uint64) {
	e.mu.Lock()
	if e.closed || seq != e.renderSeq {
		e.mu.Unlock()
		return
	}
	e.renderID = 0
	v := ComputeFrame(e.state)
	e.mu.Unlock()

	e.emit(v)
}

func (e *Engine) cancelSpinLocked() {
	if e.spinID != 0 {
		e.sched.CancelFrame(e.spinID)
		e.spinID = 0
	}
	e.spinSeq++
}

func (e *Engine) cancelRoarLocked() {
	if e.roarID != 0 {
		e.sched.CancelFrame(e.roarID)
		e.roarID = 0
	}
	e.roarSeq++
}

func (e *Engine) cancelRenderLocked() {
	if e.renderID != 0 {
		e.sched.CancelFrame(e.renderID)
		e.renderID = 0
	}
	e.renderSeq++
}

// Close cancels every pending frame. Callbacks already in flight are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.cancelSpinLocked()
	e.cancelRoarLocked()
	e.cancelRenderLocked()
}
