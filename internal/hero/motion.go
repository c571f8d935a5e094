// Package hero drives the featured card: pointer tilt, the flip on
// activation and the roar wobble that follows it.
package hero

import (
	"fmt"
	"math"
	"time"

	"github.com/cxsxrrrr/PokeMart/pkg/utils"
)

const (
	MaxTilt       = 6.0
	MaxTranslate  = 10.0
	BaseZRotation = -8.0

	SpinDuration     = 550 * time.Millisecond
	SpinHoldStart    = 0.55
	SpinHoldFraction = 0.2

	RoarDuration     = 650 * time.Millisecond
	RoarMaxTranslate = 10.0
	RoarMaxScale     = 0.08
	RoarWobbles      = 4.5
)

// Rect is the on-screen box of the tilt surface.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

type Tilt struct {
	X, Y float64
}

type Spin struct {
	RotationY float64
	Active    bool
}

type Roar struct {
	TranslateX float64
	TranslateY float64
	Scale      float64
	Active     bool
}

// State is the full animation state of the hero card.
type State struct {
	Tilt Tilt
	Spin Spin
	Roar Roar
}

func neutralRoar() Roar {
	return Roar{Scale: 1}
}

// TiltFromPointer maps a pointer position inside r to tilt angles.
// The second result is false for an empty rect.
func TiltFromPointer(px, py float64, r Rect) (Tilt, bool) {
	if r.Empty() {
		return Tilt{}, false
	}
	relX := utils.Clamp((px-r.Left)/r.Width-0.5, -0.5, 0.5)
	relY := utils.Clamp((py-r.Top)/r.Height-0.5, -0.5, 0.5)
	return clampTilt(Tilt{
		X: relX * MaxTilt * 2,
		Y: -relY * MaxTilt * 2,
	}), true
}

func clampTilt(t Tilt) Tilt {
	return Tilt{
		X: utils.Clamp(t.X, -MaxTilt, MaxTilt),
		Y: utils.Clamp(t.Y, -MaxTilt, MaxTilt),
	}
}

// SpinRotation is the Y rotation at progress p of the flip: ease out to
// 180, hold, then ease in to a full turn.
func SpinRotation(p float64) float64 {
	p = utils.Clamp(p, 0, 1)
	holdStart := utils.Clamp(SpinHoldStart, 0, 1)
	holdEnd := utils.Clamp(holdStart+SpinHoldFraction, holdStart, 1)
	rest := math.Max(1-holdEnd, 0.0001)

	switch {
	case p < holdStart:
		local := p / holdStart
		return easeOut(local) * 180
	case p < holdEnd:
		return 180
	default:
		local := (p - holdEnd) / rest
		return 180 + easeIn(local)*180
	}
}

func easeOut(v float64) float64 { return 1 - (1-v)*(1-v) }
func easeIn(v float64) float64  { return v * v }

// RoarAt is the wobble at progress p. The result is active until p reaches 1.
func RoarAt(p float64) Roar {
	p = utils.Clamp(p, 0, 1)
	intensity := 1 - p
	wobble := math.Sin(p * math.Pi * RoarWobbles)
	return Roar{
		TranslateX: wobble * RoarMaxTranslate * intensity,
		Scale:      1 + RoarMaxScale*math.Sin(p*math.Pi),
		Active:     p < 1,
	}
}

// Visual is the composed transform applied to the card.
type Visual struct {
	TranslateX float64
	TranslateY float64
	RotateX    float64
	RotateY    float64
	RotateZ    float64
	Scale      float64
}

func ComputeFrame(s State) Visual {
	tiltTX := -(s.Tilt.X / MaxTilt) * MaxTranslate
	tiltTY := (s.Tilt.Y / MaxTilt) * MaxTranslate

	scale := s.Roar.Scale
	if scale == 0 {
		scale = 1
	}
	return Visual{
		TranslateX: tiltTX + s.Roar.TranslateX,
		TranslateY: tiltTY + s.Roar.TranslateY,
		RotateX:    s.Tilt.Y,
		RotateY:    s.Spin.RotationY + s.Tilt.X,
		RotateZ:    BaseZRotation,
		Scale:      scale,
	}
}

func (v Visual) CSS() string {
	return fmt.Sprintf(
		"translateX(%.2fpx) translateY(%.2fpx) rotateX(%.2fdeg) rotateY(%.2fdeg) rotate(%gdeg) scale(%.3f)",
		noNegZero(v.TranslateX), noNegZero(v.TranslateY),
		noNegZero(v.RotateX), noNegZero(v.RotateY),
		v.RotateZ, v.Scale,
	)
}

// -0 prints as "-0.00"
func noNegZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return utils.Clamp(float64(elapsed)/float64(total), 0, 1)
}
