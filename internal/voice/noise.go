package voice

import (
	"github.com/cbegin/seedloop/internal/dsp"
	"github.com/cbegin/seedloop/internal/rng"
)

// NoiseParams shape an envelope-gated white noise burst.
type NoiseParams struct {
	Decay   float64 // envelope rate per second
	DurSec  float64
	Amp     float64
	Epsilon float64 // envelope level treated as silence
}

var (
	SnareParams = NoiseParams{Decay: 35, DurSec: 0.1, Amp: 0.35, Epsilon: 1e-5}
	HatParams   = NoiseParams{Decay: 120, DurSec: 0.05, Amp: 0.15, Epsilon: 1e-5}
)

// Seed offsets that decorrelate the drum noise streams from the main stream.
const (
	SnareSeedXor = 0xABCDEF
	HatSeedXor   = 0x123456
)

// Noise is the snare and hat voice: white noise from a private RNG under a
// recursive exponential envelope.
type Noise struct {
	span
	params     NoiseParams
	sampleRate float64
	env        float64
	envCoef    float64
	rng        rng.RNG
}

func NewNoise(sampleRate int, seed uint64, params NoiseParams) *Noise {
	return &Noise{
		params:     params,
		sampleRate: float64(sampleRate),
		envCoef:    dsp.DecayCoef(params.Decay, float64(sampleRate)),
		rng:        rng.New(seed),
	}
}

func NewSnare(sampleRate int, seed uint64) *Noise {
	return NewNoise(sampleRate, seed^SnareSeedXor, SnareParams)
}

func NewHat(sampleRate int, seed uint64) *Noise {
	return NewNoise(sampleRate, seed^HatSeedXor, HatParams)
}

func (v *Noise) Trigger() {
	v.start(lengthFor(v.params.DurSec, 0, v.sampleRate))
	v.env = 1
}

func (v *Noise) Process(l, r []float32) {
	if !v.Active() {
		return
	}
	n := frames(l, r)
	for i := 0; i < n; i++ {
		if v.pos >= v.len {
			break
		}
		v.env *= v.envCoef
		s := float32(float64(v.rng.Bipolar()) * v.env * v.params.Amp)
		l[i] += s
		r[i] += s
		if v.env < v.params.Epsilon {
			v.stop()
			break
		}
		v.pos++
	}
}
