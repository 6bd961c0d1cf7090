// Package audio feeds a pull-based stereo source to the system output
// through ebiten's audio context.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// Source renders the next len(l) frames into l and r.
type Source interface {
	Process(l, r []float32)
}

// FinishingSource is a Source that can signal when playback has ended.
// When Finished returns true, the stream will return io.EOF on the next Read.
type FinishingSource interface {
	Source
	Finished() bool
}

// StreamReader adapts a Source to the interleaved little-endian float32
// byte stream ebiten's F32 players read.
type StreamReader struct {
	mu     sync.Mutex
	source Source
	l, r   []float32
}

func NewStreamReader(source Source) *StreamReader {
	return &StreamReader{source: source}
}

func (s *StreamReader) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fs, ok := s.source.(FinishingSource); ok && fs.Finished() {
		return 0, io.EOF
	}
	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	if cap(s.l) < frames {
		s.l = make([]float32, frames)
		s.r = make([]float32, frames)
	}
	l, r := s.l[:frames], s.r[:frames]
	s.source.Process(l, r)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint32(p[i*8:], math.Float32bits(l[i]))
		binary.LittleEndian.PutUint32(p[i*8+4:], math.Float32bits(r[i]))
	}
	return frames * 8, nil
}

func (s *StreamReader) Close() error { return nil }

type Player struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	audioContextOnce sync.Once
	audioContext     *ebitaudio.Context
	audioSampleRate  int
)

// ebiten allows one context per process, so every player shares it and
// must agree on the sample rate.
func sharedAudioContext(sampleRate int) (*ebitaudio.Context, error) {
	audioContextOnce.Do(func() {
		audioSampleRate = sampleRate
		audioContext = ebitaudio.NewContext(sampleRate)
	})
	if audioSampleRate != sampleRate {
		return nil, fmt.Errorf("audio context already initialized at %d Hz (requested %d Hz)", audioSampleRate, sampleRate)
	}
	return audioContext, nil
}

func NewPlayer(sampleRate int, source Source) (*Player, error) {
	ctx, err := sharedAudioContext(sampleRate)
	if err != nil {
		return nil, err
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, err
	}
	return &Player{
		player: pl,
		reader: reader,
	}, nil
}

func (p *Player) Play()  { p.player.Play() }
func (p *Player) Pause() { p.player.Pause() }
func (p *Player) IsPlaying() bool {
	return p.player.IsPlaying()
}

// Position returns the current playback position (what the listener actually hears).
func (p *Player) Position() time.Duration {
	return p.player.Position()
}

func (p *Player) Stop() error {
	p.player.Pause()
	p.player.Close()
	return p.reader.Close()
}
