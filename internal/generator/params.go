package generator

import (
	"errors"
	"fmt"
	"log/slog"
)

// Params holds the engine constants that are not drawn from the seed.
type Params struct {
	SampleRate         int     `yaml:"sample_rate"`
	MaxBlockFrames     int     `yaml:"max_block_frames"` // scratch capacity; larger requests are split
	MaxDelayFrames     int     `yaml:"max_delay_frames"`
	DelayFeedback      float64 `yaml:"delay_feedback"`
	LimiterAttackMs    float64 `yaml:"limiter_attack_ms"`
	LimiterReleaseMs   float64 `yaml:"limiter_release_ms"`
	LimiterThresholdDB float64 `yaml:"limiter_threshold_db"`
	MaxEvents          int     `yaml:"max_events"`
}

func DefaultParams() Params {
	return Params{
		SampleRate:         44100,
		MaxBlockFrames:     4096,
		MaxDelayFrames:     106000,
		DelayFeedback:      0.45,
		LimiterAttackMs:    0.5,
		LimiterReleaseMs:   50,
		LimiterThresholdDB: -0.1,
		MaxEvents:          512,
	}
}

var ErrInvalidParams = errors.New("generator: invalid params")

// Validate reports the first out-of-range field.
func (p Params) Validate() error {
	switch {
	case p.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidParams, p.SampleRate)
	case p.MaxBlockFrames <= 0:
		return fmt.Errorf("%w: max block frames %d", ErrInvalidParams, p.MaxBlockFrames)
	case p.MaxDelayFrames <= 0:
		return fmt.Errorf("%w: max delay frames %d", ErrInvalidParams, p.MaxDelayFrames)
	case p.DelayFeedback < 0 || p.DelayFeedback >= 1:
		return fmt.Errorf("%w: delay feedback %v not in [0,1)", ErrInvalidParams, p.DelayFeedback)
	case p.LimiterAttackMs <= 0 || p.LimiterReleaseMs <= 0:
		return fmt.Errorf("%w: limiter times must be positive", ErrInvalidParams)
	case p.LimiterThresholdDB >= 0:
		return fmt.Errorf("%w: limiter threshold %v dB must be below 0", ErrInvalidParams, p.LimiterThresholdDB)
	case p.MaxEvents <= 0:
		return fmt.Errorf("%w: max events %d", ErrInvalidParams, p.MaxEvents)
	}
	return nil
}

type Option func(*config)

type config struct {
	params Params
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		params: DefaultParams(),
		logger: slog.New(slog.DiscardHandler),
	}
}

func WithParams(p Params) Option {
	return func(cfg *config) {
		cfg.params = p
	}
}

// WithLogger sets the logger used for the construction summary. Nothing is
// logged while rendering.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}
