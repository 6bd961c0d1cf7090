package seedloop

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cbegin/seedloop/internal/generator"
)

// Config is everything a run needs besides the command line. Engine holds
// the constants not drawn from the seed.
type Config struct {
	Seed     uint64           `yaml:"seed"`
	Segments int              `yaml:"segments"`
	Output   string           `yaml:"output"` // WAV path; empty picks seed_0x<hex>.wav
	MIDI     string           `yaml:"midi"`   // optional SMF path
	Volume   float64          `yaml:"volume"`
	Engine   generator.Params `yaml:"engine"`
}

func DefaultConfig() Config {
	return Config{
		Seed:     0xCAFEBABE,
		Segments: 1,
		Volume:   1,
		Engine:   generator.DefaultParams(),
	}
}

// ParseConfig decodes YAML over the defaults, so absent keys keep their
// default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (c Config) Validate() error {
	if c.Segments <= 0 {
		return errors.New("segments must be positive")
	}
	if c.Volume < 0 {
		return errors.New("volume must not be negative")
	}
	return c.Engine.Validate()
}

// OutputPath returns the configured WAV path or the seed-derived default.
func (c Config) OutputPath() string {
	if c.Output != "" {
		return c.Output
	}
	return DefaultFileName(c.Seed)
}

// DefaultFileName names a render after its seed.
func DefaultFileName(seed uint64) string {
	return fmt.Sprintf("seed_0x%x.wav", seed)
}
