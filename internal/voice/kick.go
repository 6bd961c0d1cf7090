package voice

import (
	"math"

	"github.com/cbegin/seedloop/internal/dsp"
)

const (
	KickFreq      = 50.0
	KickDecay     = 20.0
	KickMaxSec    = 1.0
	KickAmp       = 0.8
	kickSilenceEp = 1e-4
)

// Kick is a pure sine generated by the two-tap recurrence
// y[n] = k1*y[n-1] - y[n-2], shaped by a recursive exponential envelope.
type Kick struct {
	span
	sampleRate float64
	env        float64
	envCoef    float64
	k1         float64
	y1, y2     float64
	seed2      float64
}

func NewKick(sampleRate int) *Kick {
	k := &Kick{sampleRate: float64(sampleRate)}
	delta := dsp.PhaseInc(KickFreq, k.sampleRate)
	k.k1 = 2 * math.Cos(delta)
	k.seed2 = -math.Sin(delta)
	k.envCoef = dsp.DecayCoef(KickDecay, k.sampleRate)
	return k
}

// Trigger restarts the kick from phase zero at full level.
func (k *Kick) Trigger() {
	k.start(lengthFor(KickMaxSec, KickMaxSec, k.sampleRate))
	k.env = 1
	k.y1 = 0
	k.y2 = k.seed2
}

func (k *Kick) Process(l, r []float32) {
	if !k.Active() {
		return
	}
	n := frames(l, r)
	for i := 0; i < n; i++ {
		if k.pos >= k.len {
			break
		}
		k.env *= k.envCoef
		y := k.k1*k.y1 - k.y2
		k.y2 = k.y1
		k.y1 = y
		s := float32(k.env * y * KickAmp)
		l[i] += s
		r[i] += s
		if k.env < kickSilenceEp {
			k.stop()
			break
		}
		k.pos++
	}
}
