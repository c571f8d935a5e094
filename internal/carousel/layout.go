// Package carousel lays out the 3D "popular" carousel: every card gets a
// transform, opacity, stacking order and pointer flag from its circular
// distance to the focused card.
package carousel

import (
	"fmt"
	"math"
	"strconv"
)

const (
	DefaultMaxVisible = 5

	stepRem       = 12.0
	depthStepPx   = 160.0
	maxDepthPx    = 720.0
	rotateStepDeg = -12.0
	scaleStep     = 0.15
	minScale      = 0.6
	opacityStep   = 0.25
	minOpacity    = 0.25
	baseZIndex    = 100
	zIndexStep    = 10
	hiddenDepthPx = -800.0
)

// Transform is the per-card 3D placement.
type Transform struct {
	TranslateXRem float64
	TranslateZPx  float64
	RotateYDeg    float64
	Scale         float64
}

// CSS renders the transform the way the card element expects it, centered
// on its own width first.
func (t Transform) CSS() string {
	return fmt.Sprintf("translateX(-50%%) translateX(%srem) translateZ(%spx) rotateY(%sdeg) scale(%s)",
		num(t.TranslateXRem), num(t.TranslateZPx), num(t.RotateYDeg), num(t.Scale))
}

// FrameState is the layout of one card for one focus position.
type FrameState struct {
	Index          int
	Offset         int
	Hidden         bool
	Center         bool
	Transform      Transform
	Opacity        float64
	ZIndex         int
	PointerEnabled bool
}

// Visibility maps Hidden onto the CSS property.
func (f FrameState) Visibility() string {
	if f.Hidden {
		return "hidden"
	}
	return "visible"
}

// WrapOffset is the shortest signed circular distance from focus to i.
func WrapOffset(i, focus, total int) int {
	offset := i - focus
	if float64(offset) > float64(total)/2 {
		offset -= total
	}
	if float64(offset) < -float64(total)/2 {
		offset += total
	}
	return offset
}

// Threshold is the largest |offset| that stays visible.
func Threshold(total, maxVisible int) int {
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	return min(maxVisible, total) / 2
}

// Layout computes every card's frame. Pointer interaction is enabled within
// one step of the focus.
func Layout(total, focus, maxVisible int) []FrameState {
	return layout(total, focus, maxVisible, 1)
}

func layout(total, focus, maxVisible, pointerWindow int) []FrameState {
	if total <= 0 {
		return []FrameState{}
	}
	if maxVisible <= 0 {
		maxVisible = DefaultMaxVisible
	}
	focus = ((focus % total) + total) % total
	threshold := Threshold(total, maxVisible)

	frames := make([]FrameState, total)
	for i := range frames {
		offset := WrapOffset(i, focus, total)
		abs := offset
		if abs < 0 {
			abs = -abs
		}
		hidden := abs > threshold && total > maxVisible
		absF := float64(abs)

		f := FrameState{
			Index:  i,
			Offset: offset,
			Hidden: hidden,
			Center: offset == 0,
			ZIndex: baseZIndex - abs*zIndexStep,
		}
		if hidden {
			f.Transform = Transform{
				TranslateXRem: float64(offset) * stepRem,
				TranslateZPx:  hiddenDepthPx,
				RotateYDeg:    float64(offset) * rotateStepDeg,
				Scale:         0,
			}
			f.Opacity = 0
			f.PointerEnabled = false
		} else {
			f.Transform = Transform{
				TranslateXRem: float64(offset) * stepRem,
				TranslateZPx:  -math.Min(absF*depthStepPx, maxDepthPx),
				RotateYDeg:    float64(offset) * rotateStepDeg,
				Scale:         math.Max(minScale, 1-absF*scaleStep),
			}
			f.Opacity = math.Max(minOpacity, 1-absF*opacityStep)
			f.PointerEnabled = abs <= pointerWindow
		}
		frames[i] = f
	}
	return frames
}

// num prints a float without trailing zeros, "-0" folded to "0".
func num(v float64) string {
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
