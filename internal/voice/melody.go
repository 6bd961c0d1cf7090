package voice

import "github.com/cbegin/seedloop/internal/dsp"

const (
	MelodyDecay  = 5.0
	MelodyMaxSec = 2.0
	MelodyAmp    = 0.25
	MelodyDrive  = 1.2
)

// Melody is a driven sawtooth through the cubic soft clip 1.5x - 0.5x^3.
// Its phase runs on across notes.
type Melody struct {
	span
	sampleRate float64
	osc        dsp.Osc
	freq       float64
}

func NewMelody(sampleRate int) *Melody {
	return &Melody{sampleRate: float64(sampleRate), freq: 440}
}

func (m *Melody) Trigger(freq, durSec float64) {
	m.freq = clampFreq(freq, m.sampleRate)
	m.osc.SetFreq(m.freq, m.sampleRate)
	m.start(lengthFor(durSec, MelodyMaxSec, m.sampleRate))
}

func (m *Melody) Freq() float64 { return m.freq }

func (m *Melody) Process(l, r []float32) {
	if !m.Active() {
		return
	}
	n := frames(l, r)
	for i := 0; i < n; i++ {
		if m.pos >= m.len {
			break
		}
		env := dsp.ExpDecay(float64(m.pos)/m.sampleRate, MelodyDecay)
		s := float32(softClip(MelodyDrive*m.osc.Next(dsp.Saw)) * env * MelodyAmp)
		l[i] += s
		r[i] += s
		m.pos++
		if env < silenceEp {
			m.stop()
			break
		}
	}
}

func softClip(x float64) float64 {
	return 1.5*x - 0.5*x*x*x
}
