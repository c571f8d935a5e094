package main

import (
	"math"
	"sort"

	"github.com/cxsxrrrr/PokeMart/internal/carousel"
	"github.com/cxsxrrrr/PokeMart/internal/hero"
)

const (
	heroWidth  = 18
	heroHeight = 10

	slotWidth   = 16
	slotHeight  = 5
	colsPerRem  = 5
	pxPerColumn = 2.0
)

// box is a cell rectangle on screen.
type box struct {
	X, Y, W, H int
}

func (b box) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

func (b box) rect() hero.Rect {
	return hero.Rect{Left: float64(b.X), Top: float64(b.Y), Width: float64(b.W), Height: float64(b.H)}
}

// heroFace projects the hero transform onto the terminal grid. The flip is
// shown by squeezing the card horizontally; past a quarter turn the back faces
// the viewer.
func heroFace(v hero.Visual, cx, cy int) (b box, back bool) {
	rad := v.RotateY * math.Pi / 180
	squeeze := math.Abs(math.Cos(rad))
	back = math.Cos(rad) < 0

	w := int(math.Round(heroWidth * v.Scale * math.Max(squeeze, 0.12)))
	h := int(math.Round(heroHeight * v.Scale))
	w = max(w, 2)
	h = max(h, 2)

	x := cx + int(math.Round(v.TranslateX/pxPerColumn)) - w/2
	y := cy + int(math.Round(v.TranslateY/pxPerColumn)) - h/2
	return box{X: x, Y: y, W: w, H: h}, back
}

// slot is where one carousel frame lands.
type slot struct {
	Frame carousel.FrameState
	Box   box
}

// carouselSlots lays out the visible frames back to front so later slots
// paint over earlier ones.
func carouselSlots(frames []carousel.FrameState, cx, y int, compact bool) []slot {
	out := make([]slot, 0, len(frames))
	if compact {
		for i, f := range frames {
			out = append(out, slot{Frame: f, Box: box{X: i * (slotWidth + 1), Y: y, W: slotWidth, H: slotHeight}})
		}
		return out
	}

	for _, f := range frames {
		if f.Hidden {
			continue
		}
		w := max(int(math.Round(slotWidth*f.Transform.Scale)), 4)
		x := cx + int(math.Round(f.Transform.TranslateXRem*colsPerRem)) - w/2
		out = append(out, slot{Frame: f, Box: box{X: x, Y: y, W: w, H: slotHeight}})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frame.ZIndex < out[j].Frame.ZIndex })
	return out
}

// slotAt returns the topmost slot under the point.
func slotAt(slots []slot, x, y int) (slot, bool) {
	for i := len(slots) - 1; i >= 0; i-- {
		if slots[i].Box.contains(x, y) {
			return slots[i], true
		}
	}
	return slot{}, false
}

// dealRow lays n tiles left to right from x and drops the ones that would
// spill past width.
func dealRow(n, x, y, width int) []box {
	out := make([]box, 0, n)
	for i := 0; i < n; i++ {
		b := box{X: x + i*(slotWidth+1), Y: y, W: slotWidth, H: slotHeight}
		if b.X+b.W > x+width {
			break
		}
		out = append(out, b)
	}
	return out
}

func boxAt(boxes []box, x, y int) (int, bool) {
	for i, b := range boxes {
		if b.contains(x, y) {
			return i, true
		}
	}
	return 0, false
}

// truncate cuts s to n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
