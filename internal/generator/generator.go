// Package generator owns every piece of engine state for one seed and
// renders it block by block. A Generator is driven by a single goroutine;
// only RMS may be read concurrently.
package generator

import (
	"fmt"
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/cbegin/seedloop/internal/effects"
	"github.com/cbegin/seedloop/internal/music"
	"github.com/cbegin/seedloop/internal/rng"
	"github.com/cbegin/seedloop/internal/sequencer"
	"github.com/cbegin/seedloop/internal/voice"
)

// DelayFactors are the delay lengths, in beats, a seed may pick from.
var DelayFactors = [4]float64{2, 1, 0.5, 0.25}

type Generator struct {
	params Params
	log    *slog.Logger

	seed     uint64
	rng      rng.RNG
	timing   music.Timing
	scale    music.Scale
	rhythm   sequencer.Rhythm
	rotation int
	patterns sequencer.Patterns
	queue    *sequencer.Queue
	cursor   sequencer.Cursor

	kick   *voice.Kick
	snare  *voice.Noise
	hat    *voice.Noise
	melody *voice.Melody
	simple *voice.Simple
	midFM  *voice.FM
	bassFM *voice.FM
	drums  []voice.Voice
	tonal  []voice.Voice

	delayFactor float64
	delay       *effects.Delay
	limiter     *effects.Limiter

	drumL, drumR []float32
	toneL, toneR []float32

	melodyHit bool
	bassHit   bool
	rms       atomic.Uint32 // float32 bits
	blocks    uint64
	fired     [sequencer.NumEventTypes]uint64
}

// New builds a generator for seed. Every musical choice is drawn here, in
// a fixed order, from one RNG stream; the same seed always yields the same
// audio.
func New(seed uint64, opts ...Option) (*Generator, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := cfg.params
	if err := p.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		params: p,
		log:    cfg.logger,
		seed:   seed,
		rng:    rng.New(seed),
	}

	g.rhythm = sequencer.DrawRhythm(&g.rng)
	// Drawn but unused; it keeps later draws aligned for existing seeds.
	g.rng.Uint32()
	g.timing = music.NewTiming(music.BPMFromUnit(g.rng.Float32()), p.SampleRate)
	g.scale = music.NewScale(&g.rng)

	sr := p.SampleRate
	g.kick = voice.NewKick(sr)
	g.snare = voice.NewSnare(sr, seed)
	g.hat = voice.NewHat(sr, seed)
	g.melody = voice.NewMelody(sr)
	g.midFM = voice.NewFM(sr)
	g.bassFM = voice.NewFM(sr)
	g.simple = voice.NewSimple(sr)
	g.drums = []voice.Voice{g.kick, g.snare, g.hat}
	g.tonal = []voice.Voice{g.melody, g.midFM, g.bassFM, g.simple}

	g.rotation = sequencer.DrawRotation(&g.rng)
	pats, err := g.rhythm.Patterns(g.rotation)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	g.patterns = pats
	g.queue = sequencer.NewQueue(p.MaxEvents)
	sequencer.Build(g.queue, &g.rng, g.patterns, g.timing.StepSamples)
	g.cursor = sequencer.NewCursor(g.timing.StepSamples)

	g.delayFactor = DelayFactors[g.rng.Intn(len(DelayFactors))]
	delayFrames := int(g.timing.BeatSec * g.delayFactor * float64(sr))
	g.delay = effects.NewDelay(p.MaxDelayFrames, delayFrames, float32(p.DelayFeedback))
	g.limiter = effects.NewLimiter(sr, float32(p.LimiterAttackMs), float32(p.LimiterReleaseMs), float32(p.LimiterThresholdDB))

	g.drumL = make([]float32, p.MaxBlockFrames)
	g.drumR = make([]float32, p.MaxBlockFrames)
	g.toneL = make([]float32, p.MaxBlockFrames)
	g.toneR = make([]float32, p.MaxBlockFrames)

	g.logSummary()
	return g, nil
}

func (g *Generator) logSummary() {
	g.log.Info("generator ready",
		"seed", fmt.Sprintf("%#x", g.seed),
		"bpm", g.timing.BPM,
		"step_samples", g.timing.StepSamples,
		"root_hz", g.scale.Root,
		"scale", g.scale.Kind.String(),
		"kick", g.patterns.Kick.String(),
		"snare", g.patterns.Snare.String(),
		"hat", g.patterns.Hat.String(),
		"rotation", g.rotation,
		"events", g.queue.Len(),
		"delay_frames", g.delay.Size(),
	)
	if g.delay.Clamped() {
		g.log.Warn("delay length clamped",
			"requested", g.delay.Requested(),
			"capacity", g.params.MaxDelayFrames)
	}
	if d := g.queue.Dropped(); d > 0 {
		g.log.Warn("event queue full", "dropped", d, "capacity", g.queue.Cap())
	}
}

func (g *Generator) Seed() uint64 { return g.seed }
func (g *Generator) Params() Params { return g.params }
func (g *Generator) SampleRate() int { return g.params.SampleRate }
func (g *Generator) Timing() music.Timing { return g.timing }
func (g *Generator) Scale() music.Scale { return g.scale }
func (g *Generator) Patterns() sequencer.Patterns { return g.patterns }
func (g *Generator) Queue() *sequencer.Queue { return g.queue }
func (g *Generator) Cursor() sequencer.Cursor { return g.cursor }
func (g *Generator) DelayFactor() float64 { return g.delayFactor }

// MelodyHit reports whether a melody note fired during the last Process call.
func (g *Generator) MelodyHit() bool { return g.melodyHit }

// BassHit reports whether a bass note fired during the last Process call.
func (g *Generator) BassHit() bool { return g.bassHit }

// RMS returns the level of the most recent block. Safe to call from any
// goroutine.
func (g *Generator) RMS() float32 {
	return math.Float32frombits(g.rms.Load())
}
