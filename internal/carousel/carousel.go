package carousel

import "sync"

// Carousel tracks the focus over a fixed number of cards.
type Carousel struct {
	mu            sync.Mutex
	total         int
	focus         int
	maxVisible    int
	pointerWindow int
	compact       bool
}

type Option func(*Carousel)

// WithMaxVisible sets how many cards fit in the window.
func WithMaxVisible(n int) Option {
	return func(c *Carousel) {
		if n > 0 {
			c.maxVisible = n
		}
	}
}

// WithCenterOnlyPointer limits clicks to the focused card.
func WithCenterOnlyPointer() Option {
	return func(c *Carousel) { c.pointerWindow = 0 }
}

func New(total int, opts ...Option) *Carousel {
	c := &Carousel{total: max(total, 0), maxVisible: DefaultMaxVisible, pointerWindow: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Reset swaps in a new card count and refocuses the first card.
func (c *Carousel) Reset(total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.total = max(total, 0)
	c.focus = 0
}

// SetCompact switches the narrow-screen mode, where cards are laid out flat
// and the carousel does not move.
func (c *Carousel) SetCompact(compact bool) {
	c.mu.Lock()
	c.compact = compact
	c.mu.Unlock()
}

func (c *Carousel) Compact() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.compact
}

func (c *Carousel) Focus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focus
}

func (c *Carousel) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Advance moves the focus by dir (+1 next, -1 previous), wrapping around.
// It does nothing in compact mode or with fewer than two cards.
func (c *Carousel) Advance(dir int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.compact || c.total <= 1 {
		return c.focus
	}
	c.focus = ((c.focus+dir)%c.total + c.total) % c.total
	return c.focus
}

// Frames lays out every card for the current focus.
func (c *Carousel) Frames() []FrameState {
	c.mu.Lock()
	total, focus, maxVisible, window, compact := c.total, c.focus, c.maxVisible, c.pointerWindow, c.compact
	c.mu.Unlock()

	if compact {
		return flat(total)
	}
	return layout(total, focus, maxVisible, window)
}

// HitTest reports whether the card at index accepts pointer input.
func (c *Carousel) HitTest(index int) bool {
	frames := c.Frames()
	if index < 0 || index >= len(frames) {
		return false
	}
	return frames[index].PointerEnabled
}

// flat frames: no transform, fully opaque, all clickable.
func flat(total int) []FrameState {
	frames := make([]FrameState, max(total, 0))
	for i := range frames {
		frames[i] = FrameState{
			Index:          i,
			Transform:      Transform{Scale: 1},
			Opacity:        1,
			PointerEnabled: true,
		}
	}
	return frames
}
