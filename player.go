// Package seedloop turns a 64-bit seed into a looping piece of music. The
// same seed always produces the same audio, whether played live through
// the system output or rendered offline to WAV.
package seedloop

import (
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	intaudio "github.com/cbegin/seedloop/internal/audio"
	"github.com/cbegin/seedloop/internal/generator"
)

// PlaybackEvent carries hit and lifecycle events from Watch().
type PlaybackEvent struct {
	Kind  int     // EventMelodyHit, EventBassHit, or EventPlaybackEnded
	Frame int64   // frames rendered before the block that produced the event
	RMS   float32 // block level at the time of the event
}

const (
	EventMelodyHit int = iota
	EventBassHit
	EventPlaybackEnded
)

type PlayerOption func(*playerConfig)

type playerConfig struct {
	logger    *slog.Logger
	segments  int
	sampleTap func(l, r []float32)
}

func defaultPlayerConfig() playerConfig {
	return playerConfig{logger: slog.New(slog.DiscardHandler)}
}

func WithLogger(l *slog.Logger) PlayerOption {
	return func(cfg *playerConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithSegments stops playback after n segments. Zero loops forever.
func WithSegments(n int) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.segments = n
	}
}

// WithSampleTap installs a callback invoked with each generated stereo block.
// The callback runs on the audio thread; keep work brief and non-blocking.
func WithSampleTap(tap func(l, r []float32)) PlayerOption {
	return func(cfg *playerConfig) {
		cfg.sampleTap = tap
	}
}

type Player struct {
	mu        sync.Mutex
	cfg       Config
	opts      playerConfig
	gen       *generator.Generator
	source    *genSource
	audio     *intaudio.Player
	volume    atomic.Uint64 // float64 bits
	done      chan struct{}
	eventCh   chan PlaybackEvent
	eventChMu sync.Mutex
}

// genSource drives the generator from the audio thread and reports hits.
type genSource struct {
	gen       *generator.Generator
	volume    *atomic.Uint64
	limit     int64 // frames; 0 = unbounded
	rendered  atomic.Int64
	finished  atomic.Bool
	onEvent   func(PlaybackEvent)
	sampleTap func(l, r []float32)
}

func (s *genSource) Process(l, r []float32) {
	n := len(l)
	start := s.rendered.Load()
	if s.limit > 0 {
		if left := s.limit - start; int64(n) > left {
			n = int(left)
			clear(l[n:])
			clear(r[n:])
		}
	}
	s.gen.Process(l[:n], r[:n])
	if v := math.Float64frombits(s.volume.Load()); v != 1 {
		g := float32(v)
		for i := 0; i < n; i++ {
			l[i] *= g
			r[i] *= g
		}
	}
	if s.onEvent != nil {
		rms := s.gen.RMS()
		if s.gen.MelodyHit() {
			s.onEvent(PlaybackEvent{Kind: EventMelodyHit, Frame: start, RMS: rms})
		}
		if s.gen.BassHit() {
			s.onEvent(PlaybackEvent{Kind: EventBassHit, Frame: start, RMS: rms})
		}
	}
	end := s.rendered.Add(int64(n))
	if s.sampleTap != nil {
		s.sampleTap(l, r)
	}
	if s.limit > 0 && end >= s.limit && !s.finished.Swap(true) && s.onEvent != nil {
		s.onEvent(PlaybackEvent{Kind: EventPlaybackEnded, Frame: end})
	}
}

func (s *genSource) Finished() bool {
	return s.finished.Load()
}

// NewPlayer builds the generator for cfg. No audio device is touched until
// Play.
func NewPlayer(cfg Config, opts ...PlayerOption) (*Player, error) {
	pc := defaultPlayerConfig()
	for _, opt := range opts {
		opt(&pc)
	}
	if pc.segments < 0 {
		return nil, errors.New("segments must not be negative")
	}
	gen, err := NewGenerator(cfg, pc.logger)
	if err != nil {
		return nil, err
	}
	p := &Player{cfg: cfg, opts: pc, gen: gen}
	p.volume.Store(math.Float64bits(cfg.Volume))
	p.source = &genSource{
		gen:       gen,
		volume:    &p.volume,
		limit:     int64(pc.segments) * int64(gen.Timing().SegFrames),
		onEvent:   p.handleEvent,
		sampleTap: pc.sampleTap,
	}
	return p, nil
}

func (p *Player) handleEvent(ev PlaybackEvent) {
	p.sendEvent(ev)
	if ev.Kind == EventPlaybackEnded {
		p.signalDone()
	}
}

// Play starts (or restarts after Stop) output through the system device.
// The generator keeps its position across Pause and Stop.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Play()
		return nil
	}
	if p.done == nil {
		p.done = make(chan struct{})
	}
	backend, err := intaudio.NewPlayer(p.gen.SampleRate(), p.source)
	if err != nil {
		return err
	}
	p.audio = backend
	p.audio.Play()
	p.opts.logger.Info("playing", "seed", p.cfg.Seed, "bpm", p.gen.Timing().BPM)
	return nil
}

func (p *Player) sendEvent(ev PlaybackEvent) {
	p.eventChMu.Lock()
	ch := p.eventCh
	p.eventChMu.Unlock()
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
		return
	default:
	}
	if ev.Kind != EventPlaybackEnded {
		return // full; hits are droppable
	}
	// Evict queued events until the end marker fits. Producers are the audio
	// thread and Stop, so the loop never runs long.
	for {
		select {
		case ch <- ev:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func (p *Player) signalDone() {
	p.mu.Lock()
	done := p.done
	p.done = nil
	p.mu.Unlock()
	if done != nil {
		close(done)
	}
}

func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.audio != nil {
		p.audio.Pause()
	}
}

func (p *Player) Stop() error {
	p.mu.Lock()
	if p.audio == nil {
		p.mu.Unlock()
		return nil
	}
	err := p.audio.Stop()
	p.audio = nil
	done := p.done
	p.done = nil
	p.mu.Unlock()
	p.sendEvent(PlaybackEvent{Kind: EventPlaybackEnded, Frame: p.source.rendered.Load()})
	if done != nil {
		close(done)
	}
	return err
}

// Wait blocks until playback ends. With no segment limit it blocks until
// Stop is called. Wait returns immediately if nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Watch returns a channel that receives playback events:
//   - EventMelodyHit: a melody note fired in the last block
//   - EventBassHit: a bass note fired in the last block
//   - EventPlaybackEnded: the segment limit was reached or Stop was called
//
// The channel is buffered (cap 8); receive in a goroutine to avoid dropping
// hit events. EventPlaybackEnded is always delivered, displacing the oldest
// queued events if the buffer is full. Only the most recent Watch() channel
// receives events.
func (p *Player) Watch() <-chan PlaybackEvent {
	ch := make(chan PlaybackEvent, 8)
	p.eventChMu.Lock()
	p.eventCh = ch
	p.eventChMu.Unlock()
	return ch
}

// RMS returns the level of the most recently rendered block. Safe to call
// from any goroutine.
func (p *Player) RMS() float32 {
	return p.gen.RMS()
}

// SetMasterVolume sets runtime volume scalar. 1.0 is default.
func (p *Player) SetMasterVolume(volume float64) {
	if volume < 0 {
		volume = 0
	}
	p.volume.Store(math.Float64bits(volume))
}

func (p *Player) MasterVolume() float64 {
	return math.Float64frombits(p.volume.Load())
}

// Describe returns the seed summary of the underlying generator.
func (p *Player) Describe() string {
	return p.gen.Describe()
}
