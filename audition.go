package seedloop

import (
	"fmt"
	"sort"

	"github.com/cbegin/seedloop/internal/dsp"
	"github.com/cbegin/seedloop/internal/voice"
)

// auditionBlock is the block size used to render single-voice previews.
const auditionBlock = 256

type instrument struct {
	v       voice.Voice
	trigger func()
}

const auditionFreq = 220.0

func newInstrument(name string, sampleRate int, seed uint64) (instrument, bool) {
	switch name {
	case "kick":
		k := voice.NewKick(sampleRate)
		return instrument{k, k.Trigger}, true
	case "snare":
		s := voice.NewSnare(sampleRate, seed)
		return instrument{s, s.Trigger}, true
	case "hat":
		h := voice.NewHat(sampleRate, seed)
		return instrument{h, h.Trigger}, true
	case "melody":
		m := voice.NewMelody(sampleRate)
		return instrument{m, func() { m.Trigger(auditionFreq*2, 0.5) }}, true
	case "sine", "triangle", "square":
		w := map[string]dsp.Waveform{"sine": dsp.Sine, "triangle": dsp.Triangle, "square": dsp.Square}[name]
		s := voice.NewSimple(sampleRate)
		return instrument{s, func() { s.Trigger(auditionFreq*2, 0.25, w, 0.2, 6) }}, true
	}
	for _, p := range voice.MidPresets {
		if name == p.Name {
			fm := voice.NewFM(sampleRate)
			return instrument{fm, func() { fm.Trigger(auditionFreq*2, 0.25, p) }}, true
		}
	}
	for _, p := range voice.BassPresets {
		if name == "bass-"+p.Name {
			fm := voice.NewFM(sampleRate)
			return instrument{fm, func() { fm.Trigger(auditionFreq/4, 1, p) }}, true
		}
	}
	return instrument{}, false
}

// Instruments lists the names Audition accepts.
func Instruments() []string {
	names := []string{"kick", "snare", "hat", "melody", "sine", "triangle", "square"}
	for _, p := range voice.MidPresets {
		names = append(names, p.Name)
	}
	for _, p := range voice.BassPresets {
		names = append(names, "bass-"+p.Name)
	}
	sort.Strings(names)
	return names
}

// Audition renders one voice on its own, retriggered every interval
// seconds, for seconds in total.
func Audition(name string, sampleRate int, seconds, interval float64) (l, r []float32, err error) {
	if sampleRate <= 0 || seconds <= 0 || interval <= 0 {
		return nil, nil, fmt.Errorf("audition: invalid timing (rate %d, %.3fs every %.3fs)", sampleRate, seconds, interval)
	}
	inst, ok := newInstrument(name, sampleRate, 0)
	if !ok {
		return nil, nil, fmt.Errorf("audition: unknown instrument %q", name)
	}
	frames := int(seconds * float64(sampleRate))
	every := int(interval * float64(sampleRate))
	if every < 1 {
		every = 1
	}
	l = make([]float32, frames)
	r = make([]float32, frames)
	for off := 0; off < frames; {
		n := auditionBlock
		if next := every - off%every; next < n {
			n = next
		}
		if off+n > frames {
			n = frames - off
		}
		if off%every == 0 {
			inst.trigger()
		}
		inst.v.Process(l[off:off+n], r[off:off+n])
		off += n
	}
	return l, r, nil
}
