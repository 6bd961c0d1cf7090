// Package effects holds the stateful post-processing stages: the cross-feed
// delay applied to the tonal bus and the peak limiter on the master bus.
package effects

// Effector processes stereo audio one frame at a time or a block in place.
// State carries across calls, so blocks must be fed in order.
type Effector interface {
	Process(l, r float32) (float32, float32)
	ProcessBlock(l, r []float32)
	Reset()
}

var (
	_ Effector = (*Delay)(nil)
	_ Effector = (*Limiter)(nil)
)
