package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// RoarGenerator is a low growl: a falling saw-ish tone with noise on top and
// a fast attack, slow release envelope.
type RoarGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed uint32
}

func NewRoarGenerator(sr beep.SampleRate) *RoarGenerator {
	return &RoarGenerator{sr: sr, seed: 0x9e3779b9}
}

func (g *RoarGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		attack := math.Min(t/0.04, 1)
		envelope := attack * math.Exp(-t*3.5)

		// pitch slides from 140Hz down to about 70Hz
		freq := 70 + 70*math.Exp(-t*4)
		phase := 2 * math.Pi * freq * t
		tone := 0.5*math.Sin(phase) + 0.25*math.Sin(2*phase) + 0.12*math.Sin(3*phase)

		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		sample := 0.35 * envelope * (tone + 0.3*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *RoarGenerator) Err() error {
	return nil
}
