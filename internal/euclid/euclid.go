// Package euclid builds Euclidean rhythm patterns with the bucket
// accumulation method.
package euclid

import (
	"errors"
	"fmt"
)

var (
	ErrNoSteps          = errors.New("euclid: steps must be positive")
	ErrPulsesOutOfRange = errors.New("euclid: pulses out of range")
)

// Pattern is a binary step sequence; true marks a hit.
type Pattern []bool

// Generate distributes pulses over steps as evenly as the bucket method
// allows. The result always holds exactly pulses hits.
func Generate(pulses, steps int) (Pattern, error) {
	if steps <= 0 {
		return nil, ErrNoSteps
	}
	if pulses < 0 || pulses > steps {
		return nil, fmt.Errorf("%w: %d not in [0,%d]", ErrPulsesOutOfRange, pulses, steps)
	}
	p := make(Pattern, steps)
	fill(p, pulses)
	return p, nil
}

// Clamp limits pulses to [0, steps].
func Clamp(pulses, steps int) int {
	if pulses < 0 {
		return 0
	}
	if pulses > steps {
		return steps
	}
	return pulses
}

func fill(p Pattern, pulses int) {
	steps := len(p)
	bucket := 0
	for i := range p {
		bucket += pulses
		if bucket >= steps {
			bucket -= steps
			p[i] = true
		} else {
			p[i] = false
		}
	}
}

// Rotate shifts the pattern left by n steps in place, so that
// p'[i] = p[(i+n) mod len(p)].
func (p Pattern) Rotate(n int) {
	size := len(p)
	if size == 0 {
		return
	}
	n %= size
	if n < 0 {
		n += size
	}
	if n == 0 {
		return
	}
	reverse(p[:n])
	reverse(p[n:])
	reverse(p)
}

func reverse(p Pattern) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// Hits returns the number of true steps.
func (p Pattern) Hits() int {
	n := 0
	for _, b := range p {
		if b {
			n++
		}
	}
	return n
}

func (p Pattern) String() string {
	b := make([]byte, len(p))
	for i, hit := range p {
		if hit {
			b[i] = 'x'
		} else {
			b[i] = '.'
		}
	}
	return string(b)
}
