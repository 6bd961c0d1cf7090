package effects

// Delay is a stereo delay line whose feedback crosses channels: the left
// write takes the right tap and vice versa. Dry signal passes through and
// the delayed tap is added on top.
type Delay struct {
	bufL, bufR []float32
	size       int
	pos        int
	feedback   float32
	requested  int
}

// NewDelay allocates capacity frames up front. The active length is
// clamped to [1, capacity]; Clamped reports whether the request exceeded
// capacity.
func NewDelay(capacity, frames int, feedback float32) *Delay {
	if capacity < 1 {
		capacity = 1
	}
	d := &Delay{
		bufL:      make([]float32, capacity),
		bufR:      make([]float32, capacity),
		feedback:  clamp(feedback, 0, 0.99),
		requested: frames,
	}
	d.size = clampInt(frames, 1, capacity)
	return d
}

// Size is the active delay length in frames.
func (d *Delay) Size() int { return d.size }

// Requested is the length asked for at construction, before clamping.
func (d *Delay) Requested() int { return d.requested }

func (d *Delay) Clamped() bool { return d.requested > len(d.bufL) }

func (d *Delay) Feedback() float32 { return d.feedback }

func (d *Delay) Process(l, r float32) (float32, float32) {
	yl := d.bufL[d.pos]
	yr := d.bufR[d.pos]
	d.bufL[d.pos] = l + yr*d.feedback
	d.bufR[d.pos] = r + yl*d.feedback
	d.pos++
	if d.pos >= d.size {
		d.pos = 0
	}
	return l + yl, r + yr
}

// ProcessBlock runs the delay over l and r in place.
func (d *Delay) ProcessBlock(l, r []float32) {
	bufL, bufR := d.bufL[:d.size], d.bufR[:d.size]
	pos := d.pos
	fb := d.feedback
	n := frames(l, r)
	for i := 0; i < n; i++ {
		yl, yr := bufL[pos], bufR[pos]
		dl, dr := l[i], r[i]
		bufL[pos] = dl + yr*fb
		bufR[pos] = dr + yl*fb
		l[i] = dl + yl
		r[i] = dr + yr
		pos++
		if pos >= len(bufL) {
			pos = 0
		}
	}
	d.pos = pos
}

func (d *Delay) Reset() {
	for i := range d.bufL {
		d.bufL[i] = 0
		d.bufR[i] = 0
	}
	d.pos = 0
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func frames(l, r []float32) int {
	if len(r) < len(l) {
		return len(r)
	}
	return len(l)
}
