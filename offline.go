package seedloop

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cbegin/seedloop/internal/generator"
	"github.com/cbegin/seedloop/internal/sequencer"
)

// Render is a finished offline render of one seed.
type Render struct {
	Seed        uint64
	SampleRate  int
	BPM         float64
	RootFreq    float64
	L, R        []float32
	RMS         float32 // over the whole render
	Description string
	Stats       generator.Stats

	gen *generator.Generator
}

func (r *Render) Frames() int { return len(r.L) }

// NewGenerator builds the engine for cfg.
func NewGenerator(cfg Config, logger *slog.Logger) (*generator.Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return generator.New(cfg.Seed, generator.WithParams(cfg.Engine), generator.WithLogger(logger))
}

// RenderSegments renders cfg.Segments whole segments, each the tempo's
// rounded segment length, in a single pull.
func RenderSegments(cfg Config, logger *slog.Logger) (*Render, error) {
	g, err := NewGenerator(cfg, logger)
	if err != nil {
		return nil, err
	}
	frames := cfg.Segments * g.Timing().SegFrames
	l := make([]float32, frames)
	r := make([]float32, frames)
	g.Process(l, r)
	if cfg.Volume != 1 {
		v := float32(cfg.Volume)
		for i := range l {
			l[i] *= v
			r[i] *= v
		}
	}
	return &Render{
		Seed:        cfg.Seed,
		SampleRate:  g.SampleRate(),
		BPM:         g.Timing().BPM,
		RootFreq:    g.Scale().Root,
		L:           l,
		R:           r,
		RMS:         blockRMS(l, r),
		Description: g.Describe(),
		Stats:       g.Stats(),
		gen:         g,
	}, nil
}

func blockRMS(l, r []float32) float32 {
	if len(l) == 0 {
		return 0
	}
	var sum float64
	for i := range l {
		sum += float64(l[i])*float64(l[i]) + float64(r[i])*float64(r[i])
	}
	return float32(math.Sqrt(sum / float64(2*len(l))))
}

// PCM16 interleaves l and r as 16-bit integer samples, clipping to full
// scale.
func PCM16(l, r []float32) []int {
	out := make([]int, 2*len(l))
	for i := range l {
		out[2*i] = toInt16(l[i])
		out[2*i+1] = toInt16(r[i])
	}
	return out
}

func toInt16(v float32) int {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int(v * 32767)
}

// WriteWAV encodes stereo 16-bit PCM.
func WriteWAV(w io.WriteSeeker, l, r []float32, sampleRate int) error {
	if len(l) != len(r) {
		return fmt.Errorf("channel length mismatch: %d vs %d", len(l), len(r))
	}
	enc := wav.NewEncoder(w, sampleRate, 16, 2, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  sampleRate,
		},
		Data:           PCM16(l, r),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// WriteWAVFile writes the render to path.
func (r *Render) WriteWAVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, r.L, r.R, r.SampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteMIDI exports the segment timeline as a Standard MIDI File.
func (r *Render) WriteMIDI(w io.Writer) error {
	tm := r.gen.Timing()
	return sequencer.WriteSMF(w, r.gen.Queue(), tm.BPM, tm.StepSamples, r.RootFreq)
}

func (r *Render) WriteMIDIFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.WriteMIDI(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
