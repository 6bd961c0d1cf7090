package sequencer

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/cbegin/seedloop/internal/music"
)

const (
	TicksPerQuarter = 960
	ticksPerStep    = TicksPerQuarter / music.StepsPerBeat

	drumChannel = 9 // GM percussion, channel 10 on the wire
	velocity    = 100
)

// General MIDI drum keys.
const (
	KeyKick  uint8 = 36
	KeySnare uint8 = 38
	KeyHat   uint8 = 42
)

// MIDINote converts a frequency to the nearest MIDI key, clamped to 0..127.
func MIDINote(freq float64) uint8 {
	if freq <= 0 {
		return 0
	}
	n := math.Round(69 + 12*math.Log2(freq/440))
	if n < 0 {
		return 0
	}
	if n > 127 {
		return 127
	}
	return uint8(n)
}

type exportTrack struct {
	name    string
	channel uint8
}

// Tracks written after the tempo track, one per voice family.
var exportTracks = [...]exportTrack{
	{"drums", drumChannel},
	{"melody", 0},
	{"mid", 1},
	{"bass", 2},
}

type timedMsg struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// noteFor maps an event onto a track, key and length in steps. Tonal
// pitches are chosen at render time, so the export places them on the
// root in the octave each voice plays in.
func noteFor(e Event, root uint8) (track int, key uint8, steps uint32) {
	clampKey := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 127 {
			return 127
		}
		return uint8(v)
	}
	switch e.Type {
	case EventKick:
		return 0, KeyKick, 1
	case EventSnare:
		return 0, KeySnare, 1
	case EventHat:
		return 0, KeyHat, 1
	case EventMelody:
		oct := 0
		if e.Aux%2 == 1 {
			oct = 12
		}
		return 1, clampKey(int(root) + oct), music.StepsPerBeat
	case EventMid:
		return 2, clampKey(int(root) + 12), 1
	default:
		return 3, clampKey(int(root) - 24), 2 * music.StepsPerBeat
	}
}

// WriteSMF writes the segment held in q as a type 1 Standard MIDI File:
// a tempo track followed by drum, melody, mid and bass tracks. rootFreq
// anchors the tonal tracks.
func WriteSMF(w io.Writer, q *Queue, bpm float64, stepSamples int, rootFreq float64) error {
	if stepSamples < 1 {
		return fmt.Errorf("sequencer: invalid step length %d", stepSamples)
	}
	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var tempo smf.Track
	tempo.Add(0, smf.MetaMeter(music.BeatsPerBar, 4))
	tempo.Add(0, smf.MetaTempo(bpm))
	tempo.Close(0)
	if err := sm.Add(tempo); err != nil {
		return fmt.Errorf("sequencer: add tempo track: %w", err)
	}

	root := MIDINote(rootFreq)
	msgs := make([][]timedMsg, len(exportTracks))
	for _, e := range q.Events() {
		ti, key, steps := noteFor(e, root)
		ch := exportTracks[ti].channel
		start := uint32(e.Time/stepSamples) * ticksPerStep
		msgs[ti] = append(msgs[ti],
			timedMsg{tick: start, msg: midi.NoteOn(ch, key, velocity)},
			timedMsg{tick: start + steps*ticksPerStep - 1, off: true, msg: midi.NoteOff(ch, key)},
		)
	}

	end := uint32(music.TotalSteps * ticksPerStep)
	for i, et := range exportTracks {
		list := msgs[i]
		sort.SliceStable(list, func(a, b int) bool {
			if list[a].tick != list[b].tick {
				return list[a].tick < list[b].tick
			}
			return list[a].off && !list[b].off
		})
		var tr smf.Track
		tr.Add(0, smf.MetaTrackSequenceName(et.name))
		var last uint32
		for _, m := range list {
			tr.Add(m.tick-last, m.msg)
			last = m.tick
		}
		var tail uint32
		if end > last {
			tail = end - last
		}
		tr.Close(tail)
		if err := sm.Add(tr); err != nil {
			return fmt.Errorf("sequencer: add %s track: %w", et.name, err)
		}
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("sequencer: write smf: %w", err)
	}
	return nil
}
