package voice

import (
	"math"

	"github.com/cbegin/seedloop/internal/dsp"
)

// FMParams is one two-operator timbre: modulator ratio, initial index,
// envelope decay rate and output amplitude.
type FMParams struct {
	Name  string
	Ratio float64
	Index float64
	Decay float64
	Amp   float64
}

// Mid-register timbres, in the order event aux values select them.
var MidPresets = [4]FMParams{
	{Name: "bells", Ratio: 3.5, Index: 4.0, Decay: 0, Amp: 0.15},
	{Name: "calm", Ratio: 2.0, Index: 2.5, Decay: 6, Amp: 0.25},
	{Name: "quantum", Ratio: 1.5, Index: 3.0, Decay: 6, Amp: 0.25},
	{Name: "pluck", Ratio: 1.0, Index: 6.0, Decay: 8, Amp: 0.25},
}

// Bass timbres, picked by a draw on every bass trigger.
var BassPresets = [3]FMParams{
	{Name: "default", Ratio: 2.0, Index: 5.0, Decay: 0, Amp: 0.25},
	{Name: "quantum", Ratio: 1.5, Index: 8.0, Decay: 8, Amp: 0.45},
	{Name: "plucky", Ratio: 3.0, Index: 2.5, Decay: 14, Amp: 0.35},
}

// FM is a two-operator phase-modulation voice. The modulation index decays
// with the same envelope as the amplitude. Carrier and modulator phases
// wrap independently and run on across notes.
type FM struct {
	span
	sampleRate float64
	params     FMParams
	carrier    dsp.Osc
	mod        dsp.Osc
	freq       float64
}

func NewFM(sampleRate int) *FM {
	return &FM{sampleRate: float64(sampleRate)}
}

func (v *FM) Trigger(freq, durSec float64, p FMParams) {
	freq = clampFreq(freq, v.sampleRate)
	p.Decay = clampDecay(p.Decay)
	p.Amp = clampAmp(p.Amp)
	v.freq = freq
	v.params = p
	v.carrier.SetFreq(freq, v.sampleRate)
	v.mod.SetFreq(clampFreq(freq*p.Ratio, v.sampleRate), v.sampleRate)
	v.start(lengthFor(durSec, 0, v.sampleRate))
}

func (v *FM) Params() FMParams { return v.params }
func (v *FM) Freq() float64 { return v.freq }

func (v *FM) Process(l, r []float32) {
	if !v.Active() {
		return
	}
	n := frames(l, r)
	p := v.params
	for i := 0; i < n; i++ {
		if v.pos >= v.len {
			break
		}
		env := dsp.ExpDecay(float64(v.pos)/v.sampleRate, p.Decay)
		index := p.Index * env
		s := float32(math.Sin(v.carrier.Phase()+index*math.Sin(v.mod.Phase())) * env * p.Amp)
		l[i] += s
		r[i] += s
		v.carrier.Advance()
		v.mod.Advance()
		v.pos++
		if env < silenceEp {
			v.stop()
			break
		}
	}
}
