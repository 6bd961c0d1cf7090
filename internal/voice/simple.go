package voice

import "github.com/cbegin/seedloop/internal/dsp"

// Simple is a single oscillator with a selectable waveform and an
// exponential decay.
type Simple struct {
	span
	sampleRate float64
	osc        dsp.Osc
	wave       dsp.Waveform
	amp        float64
	decay      float64
}

func NewSimple(sampleRate int) *Simple {
	return &Simple{sampleRate: float64(sampleRate), wave: dsp.Sine, amp: 0.2, decay: 6}
}

func (v *Simple) Trigger(freq, durSec float64, wave dsp.Waveform, amp, decay float64) {
	v.osc.SetFreq(clampFreq(freq, v.sampleRate), v.sampleRate)
	v.wave = wave
	v.amp = clampAmp(amp)
	v.decay = clampDecay(decay)
	v.start(lengthFor(durSec, 0, v.sampleRate))
}

func (v *Simple) Waveform() dsp.Waveform { return v.wave }

func (v *Simple) Process(l, r []float32) {
	if !v.Active() {
		return
	}
	n := frames(l, r)
	for i := 0; i < n; i++ {
		if v.pos >= v.len {
			break
		}
		env := dsp.ExpDecay(float64(v.pos)/v.sampleRate, v.decay)
		s := float32(v.osc.Next(v.wave) * env * v.amp)
		l[i] += s
		r[i] += s
		v.pos++
		if env < silenceEp {
			v.stop()
			break
		}
	}
}
