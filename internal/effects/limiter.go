package effects

import "math"

// Limiter is a hard peak limiter driven by a one-pole attack/release
// follower on the stereo peak. When the follower exceeds the threshold both
// channels are scaled down to the threshold and the follower is pinned there.
// The gain is taken against the larger of the follower and the instantaneous
// peak, so once the follower has crossed no sample leaves above threshold.
type Limiter struct {
	threshold float32
	attack    float32 // coefficient
	release   float32 // coefficient
	env       float32
}

// NewLimiter creates a limiter.
// attackMs, releaseMs: follower time constants in ms
// thresholdDB: ceiling in dB (e.g., -0.1)
func NewLimiter(sampleRate int, attackMs, releaseMs, thresholdDB float32) *Limiter {
	sr := float64(sampleRate)
	return &Limiter{
		threshold: float32(math.Pow(10, float64(thresholdDB)/20)),
		attack:    float32(math.Exp(-1.0 / (float64(attackMs) * sr / 1000.0))),
		release:   float32(math.Exp(-1.0 / (float64(releaseMs) * sr / 1000.0))),
	}
}

func (lm *Limiter) Threshold() float32 { return lm.threshold }

// Envelope returns the follower state carried into the next sample.
func (lm *Limiter) Envelope() float32 { return lm.env }

func (lm *Limiter) Process(l, r float32) (float32, float32) {
	peak := abs32(l)
	if a := abs32(r); a > peak {
		peak = a
	}
	if peak > lm.env {
		lm.env = peak + lm.attack*(lm.env-peak)
	} else {
		lm.env = peak + lm.release*(lm.env-peak)
	}
	if lm.env > lm.threshold {
		level := lm.env
		if peak > level {
			level = peak
		}
		gain := lm.threshold / level
		l *= gain
		r *= gain
		lm.env = lm.threshold
	}
	return l, r
}

// ProcessBlock limits l and r in place.
func (lm *Limiter) ProcessBlock(l, r []float32) {
	n := frames(l, r)
	for i := 0; i < n; i++ {
		l[i], r[i] = lm.Process(l[i], r[i])
	}
}

func (lm *Limiter) Reset() {
	lm.env = 0
}

func abs32(v float32) float32 {
	return math.Float32frombits(math.Float32bits(v) &^ (1 << 31))
}
