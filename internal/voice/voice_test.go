package voice

import (
	"math"
	"testing"

	"github.com/cbegin/seedloop/internal/dsp"
)

const sr = 44100

type tracked interface {
	Voice
	Pos() int
	Len() int
}

// runOut renders v in blocks until it goes inactive, checking every sample
// is finite. It returns the number of frames rendered and the peak level.
func runOut(t *testing.T, v tracked, block int, limit int) (int, float64) {
	t.Helper()
	l := make([]float32, block)
	r := make([]float32, block)
	total := 0
	var peak float64
	for v.Active() {
		if total > limit {
			t.Fatalf("voice still active after %d frames (pos=%d len=%d)", total, v.Pos(), v.Len())
		}
		for i := range l {
			l[i], r[i] = 0, 0
		}
		v.Process(l, r)
		for i := range l {
			x := float64(l[i])
			if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(float64(r[i])) || math.IsInf(float64(r[i]), 0) {
				t.Fatalf("non-finite sample at frame %d", total+i)
			}
			if a := math.Abs(x); a > peak {
				peak = a
			}
		}
		total += block
	}
	return total, peak
}

func TestVoicesTerminateWithinBound(t *testing.T) {
	cases := []struct {
		name   string
		make   func() tracked
		maxSec float64
	}{
		{"kick", func() tracked { k := NewKick(sr); k.Trigger(); return k }, KickMaxSec},
		{"snare", func() tracked { s := NewSnare(sr, 1); s.Trigger(); return s }, SnareParams.DurSec},
		{"hat", func() tracked { h := NewHat(sr, 1); h.Trigger(); return h }, HatParams.DurSec},
		{"melody", func() tracked { m := NewMelody(sr); m.Trigger(880, 10); return m }, MelodyMaxSec},
		{"simple square", func() tracked { s := NewSimple(sr); s.Trigger(440, 0.2, dsp.Square, 0.2, 6); return s }, 0.2},
		{"fm bells", func() tracked { f := NewFM(sr); f.Trigger(330, 0.5, MidPresets[0]); return f }, 0.5},
		{"fm bass plucky", func() tracked { f := NewFM(sr); f.Trigger(55, 1.2, BassPresets[2]); return f }, 1.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.make()
			if !v.Active() {
				t.Fatal("voice should be active after trigger")
			}
			limit := int(tc.maxSec*sr) + 256
			_, peak := runOut(t, v, 256, limit)
			if peak == 0 {
				t.Fatal("voice produced silence")
			}
			if v.Pos() < v.Len() {
				t.Fatalf("inactive voice with pos %d < len %d", v.Pos(), v.Len())
			}
		})
	}
}

func TestProcessAddsIntoBuffers(t *testing.T) {
	k := NewKick(sr)
	k.Trigger()
	l := make([]float32, 64)
	r := make([]float32, 64)
	for i := range l {
		l[i], r[i] = 1, -1
	}
	ref := NewKick(sr)
	ref.Trigger()
	lr := make([]float32, 64)
	rr := make([]float32, 64)
	ref.Process(lr, rr)
	k.Process(l, r)
	for i := range l {
		if l[i] != 1+lr[i] || r[i] != -1+rr[i] {
			t.Fatalf("frame %d overwritten: %v %v", i, l[i], r[i])
		}
	}
}

func TestInactiveVoiceIsNoOp(t *testing.T) {
	voices := []Voice{NewKick(sr), NewSnare(sr, 3), NewHat(sr, 3), NewMelody(sr), NewSimple(sr), NewFM(sr)}
	l := make([]float32, 32)
	r := make([]float32, 32)
	for _, v := range voices {
		if v.Active() {
			t.Fatalf("%T active before trigger", v)
		}
		v.Process(l, r)
	}
	for i := range l {
		if l[i] != 0 || r[i] != 0 {
			t.Fatal("inactive voices wrote samples")
		}
	}
}

func TestZeroDurationIsInactive(t *testing.T) {
	m := NewMelody(sr)
	m.Trigger(440, 0)
	if m.Active() {
		t.Fatal("zero-length melody should be inactive")
	}
	f := NewFM(sr)
	f.Trigger(440, -1, MidPresets[1])
	if f.Active() {
		t.Fatal("negative duration should be inactive")
	}
}

func TestMelodyDurationCap(t *testing.T) {
	m := NewMelody(sr)
	m.Trigger(440, 5)
	if m.Len() != int(MelodyMaxSec*sr) {
		t.Fatalf("len = %d, want cap %d", m.Len(), int(MelodyMaxSec*sr))
	}
}

func TestRetriggerRestarts(t *testing.T) {
	s := NewSimple(sr)
	s.Trigger(220, 0.1, dsp.Triangle, 0.2, 6)
	l := make([]float32, 1000)
	r := make([]float32, 1000)
	s.Process(l, r)
	if s.Pos() != 1000 {
		t.Fatalf("pos = %d", s.Pos())
	}
	s.Trigger(220, 0.1, dsp.Triangle, 0.2, 6)
	if s.Pos() != 0 || !s.Active() {
		t.Fatal("retrigger should reset the note cursor")
	}
}

func TestKickEndsEarlyOnSilence(t *testing.T) {
	k := NewKick(sr)
	k.Trigger()
	frames, _ := runOut(t, k, 512, sr)
	// exp(-20t) < 1e-4 after ~0.46s, well inside the one second cap.
	if frames >= sr {
		t.Fatalf("kick ran %d frames, expected early stop", frames)
	}
}

func TestKickRecurrenceIsSine(t *testing.T) {
	k := NewKick(sr)
	k.Trigger()
	l := make([]float32, 100)
	r := make([]float32, 100)
	k.Process(l, r)
	delta := dsp.PhaseInc(KickFreq, sr)
	coef := dsp.DecayCoef(KickDecay, sr)
	env := 1.0
	for i := range l {
		env *= coef
		want := env * math.Sin(float64(i+1)*delta) * KickAmp
		if math.Abs(float64(l[i])-want) > 1e-5 {
			t.Fatalf("frame %d: got %v, want %v", i, l[i], want)
		}
	}
}

func TestNoiseVoicesAreDecorrelated(t *testing.T) {
	s := NewSnare(sr, 42)
	h := NewHat(sr, 42)
	s.Trigger()
	h.Trigger()
	ls := make([]float32, 64)
	rs := make([]float32, 64)
	lh := make([]float32, 64)
	rh := make([]float32, 64)
	s.Process(ls, rs)
	h.Process(lh, rh)
	same := 0
	for i := range ls {
		if math.Signbit(float64(ls[i])) == math.Signbit(float64(lh[i])) {
			same++
		}
	}
	if same == 64 {
		t.Fatal("snare and hat noise look identical")
	}
}

func TestBlockSizeDoesNotChangeOutput(t *testing.T) {
	render := func(block int) []float32 {
		f := NewFM(sr)
		f.Trigger(110, 0.3, BassPresets[1])
		out := make([]float32, 0, sr)
		l := make([]float32, block)
		r := make([]float32, block)
		for f.Active() {
			for i := range l {
				l[i], r[i] = 0, 0
			}
			f.Process(l, r)
			out = append(out, l...)
		}
		return out
	}
	a := render(64)
	b := render(1000)
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			t.Fatalf("frame %d differs between block sizes: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestVoicesFiniteForExtremeParams(t *testing.T) {
	huge := FMParams{Name: "huge", Ratio: 1e6, Index: 1e12, Decay: 3, Amp: 50}
	tests := []struct {
		name string
		mk   func() tracked
	}{
		{"simple negative decay", func() tracked { s := NewSimple(sr); s.Trigger(440, 2, dsp.Sine, 0.2, -500); return s }},
		{"simple zero freq", func() tracked { s := NewSimple(sr); s.Trigger(0, 0.5, dsp.Square, 0.2, 6); return s }},
		{"simple huge freq and amp", func() tracked { s := NewSimple(sr); s.Trigger(1e9, 0.5, dsp.Saw, 1e30, 6); return s }},
		{"simple negative freq", func() tracked { s := NewSimple(sr); s.Trigger(-440, 0.5, dsp.Triangle, 0.2, 6); return s }},
		{"melody huge freq", func() tracked { m := NewMelody(sr); m.Trigger(1e12, 1); return m }},
		{"fm negative decay", func() tracked {
			f := NewFM(sr)
			p := MidPresets[1]
			p.Decay = -200
			f.Trigger(440, 2, p)
			return f
		}},
		{"fm huge index and ratio", func() tracked { f := NewFM(sr); f.Trigger(20000, 1, huge); return f }},
		{"fm zero freq", func() tracked { f := NewFM(sr); f.Trigger(0, 0.5, BassPresets[0]); return f }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.mk()
			_, peak := runOut(t, v, 512, 3*sr)
			if peak > 1 {
				t.Fatalf("peak %v exceeds unit range", peak)
			}
			if f, ok := v.(*FM); ok {
				if ph := f.mod.Phase(); ph < 0 || ph >= dsp.TwoPi {
					t.Fatalf("modulator phase %v outside [0, 2π)", ph)
				}
			}
		})
	}
}
