package dsp

import "math"

// ExpDecay evaluates exp(-rate*t) for t seconds since the trigger.
func ExpDecay(t, rate float64) float64 {
	return math.Exp(-rate * t)
}

// DecayCoef is the per-sample multiplier that reproduces ExpDecay when the
// envelope is advanced recursively: env[n+1] = env[n] * coef.
func DecayCoef(rate, sampleRate float64) float64 {
	return math.Exp(-rate / sampleRate)
}

// MsCoef converts a one-pole time constant in milliseconds to a smoothing
// coefficient, exp(-1/(ms*sr/1000)).
func MsCoef(ms, sampleRate float64) float64 {
	return math.Exp(-1 / (ms * sampleRate / 1000))
}

// DBToGain converts decibels to a linear amplitude.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}
