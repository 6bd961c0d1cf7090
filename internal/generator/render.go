package generator

import (
	"math"

	"github.com/viterin/vek/vek32"

	"github.com/cbegin/seedloop/internal/dsp"
	"github.com/cbegin/seedloop/internal/sequencer"
	"github.com/cbegin/seedloop/internal/voice"
)

// Mid notes on the simple voice.
const (
	midSimpleAmp   = 0.2
	midSimpleDecay = 6
)

var midWaves = [3]dsp.Waveform{dsp.Triangle, dsp.Sine, dsp.Square}

// Process renders min(len(l), len(r)) frames, overwriting l and r. Blocks
// larger than the scratch capacity are rendered in slices within the call.
// Output does not depend on how a stream is split into calls.
func (g *Generator) Process(l, r []float32) {
	g.melodyHit = false
	g.bassHit = false
	n := len(l)
	if len(r) < n {
		n = len(r)
	}
	var energy float32
	for off := 0; off < n; {
		c := n - off
		if c > len(g.drumL) {
			c = len(g.drumL)
		}
		energy += g.render(l[off:off+c], r[off:off+c])
		off += c
	}
	var rms float32
	if n > 0 {
		rms = float32(math.Sqrt(float64(energy) / float64(2*n)))
	}
	g.rms.Store(math.Float32bits(rms))
	g.blocks++
}

// render fills l and r, whose length fits the scratch buffers, and returns
// the summed squared output.
func (g *Generator) render(l, r []float32) float32 {
	n := len(l)
	dl := vek32.Zeros_Into(g.drumL, n)
	dr := vek32.Zeros_Into(g.drumR, n)
	tl := vek32.Zeros_Into(g.toneL, n)
	tr := vek32.Zeros_Into(g.toneR, n)

	for pos := 0; pos < n; {
		for {
			e, ok := g.cursor.Next(g.queue)
			if !ok {
				break
			}
			g.trigger(e)
		}
		span := g.cursor.Span(n - pos)
		end := pos + span
		mix(g.drums, dl[pos:end], dr[pos:end])
		mix(g.tonal, tl[pos:end], tr[pos:end])
		g.cursor.Advance(span)
		pos = end
	}

	g.delay.ProcessBlock(tl, tr)
	vek32.Add_Into(l, dl, tl)
	vek32.Add_Into(r, dr, tr)
	g.limiter.ProcessBlock(l, r)
	return vek32.Dot(l, l) + vek32.Dot(r, r)
}

func mix(voices []voice.Voice, l, r []float32) {
	for _, v := range voices {
		v.Process(l, r)
	}
}

// trigger dispatches one event. Tonal events draw their pitch (and the bass
// its timbre) from the generator stream at fire time.
func (g *Generator) trigger(e sequencer.Event) {
	if int(e.Type) < len(g.fired) {
		g.fired[e.Type]++
	}
	s := g.scale
	t := g.timing
	switch e.Type {
	case sequencer.EventKick:
		g.kick.Trigger()
	case sequencer.EventSnare:
		g.snare.Trigger()
	case sequencer.EventHat:
		g.hat.Trigger()
	case sequencer.EventMelody:
		var freq float64
		switch e.Aux {
		case 1:
			freq = s.Freq(s.Degrees[g.rng.Intn(s.Len()-1)+1], 1)
		case 3:
			freq = s.Freq(s.Degrees[g.rng.Intn(s.Len()-1)+1], 0)
		default:
			freq = s.Freq(0, 2)
		}
		g.melody.Trigger(freq, t.BeatSec)
		g.melodyHit = true
	case sequencer.EventMid:
		freq := s.Freq(s.Degrees[g.rng.Intn(s.Len())], 1)
		idx := int(e.Aux)
		if idx < len(midWaves) {
			g.simple.Trigger(freq, t.StepSec, midWaves[idx], midSimpleAmp, midSimpleDecay)
			return
		}
		p := voice.MidPresets[(idx-len(midWaves))%len(voice.MidPresets)]
		// One extra frame so the note covers the whole step after truncation.
		g.midFM.Trigger(freq, t.StepSec+1/float64(t.SampleRate), p)
	case sequencer.EventFMBass:
		freq := s.Freq(s.Degrees[g.rng.Intn(s.Len())], -2)
		p := voice.BassPresets[g.rng.Intn(len(voice.BassPresets))]
		g.bassFM.Trigger(freq, 2*t.BeatSec, p)
		g.bassHit = true
	}
}
