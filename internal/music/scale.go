package music

import (
	"math"

	"github.com/cbegin/seedloop/internal/rng"
)

// ScaleKind selects one of the two pentatonic degree tables.
type ScaleKind int

const (
	MajorPentatonic ScaleKind = iota
	MinorPentatonic
)

func (k ScaleKind) String() string {
	if k == MinorPentatonic {
		return "minor pentatonic"
	}
	return "major pentatonic"
}

// RootChoices are the root frequencies a seed may pick from (A3 to D4).
var RootChoices = [5]float64{220.0, 233.08, 246.94, 261.63, 293.66}

var (
	majorPentatonic = [5]int{0, 2, 4, 7, 9}
	minorPentatonic = [5]int{0, 3, 5, 7, 10}
)

// Scale is the key a generator plays in. It is immutable after NewScale.
type Scale struct {
	Root    float64
	Kind    ScaleKind
	Degrees [5]int
}

// NewScale draws a root and a scale kind from r, in that order.
func NewScale(r *rng.RNG) Scale {
	s := Scale{Root: RootChoices[r.Intn(len(RootChoices))]}
	if r.Uint32()%2 == 1 {
		s.Kind = MajorPentatonic
		s.Degrees = majorPentatonic
	} else {
		s.Kind = MinorPentatonic
		s.Degrees = minorPentatonic
	}
	return s
}

// Len returns the number of degrees in the scale.
func (s Scale) Len() int { return len(s.Degrees) }

// Freq returns root * 2^(semitones/12 + octave).
func (s Scale) Freq(semitones int, octave float64) float64 {
	return s.Root * math.Pow(2, float64(semitones)/12+octave)
}
