package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
)

type rampSource struct {
	next  float32
	calls int
	limit int
}

func (s *rampSource) Process(l, r []float32) {
	s.calls++
	for i := range l {
		l[i] = s.next
		r[i] = -s.next
		s.next++
	}
}

func (s *rampSource) Finished() bool { return s.limit > 0 && s.calls >= s.limit }

func TestStreamReaderInterleaves(t *testing.T) {
	src := &rampSource{}
	rd := NewStreamReader(src)
	buf := make([]byte, 8*4+3)
	n, err := rd.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 32 {
		t.Fatalf("n = %d, want 32", n)
	}
	for i := 0; i < 4; i++ {
		l := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
		if l != float32(i) || r != -float32(i) {
			t.Fatalf("frame %d = %v/%v", i, l, r)
		}
	}
}

func TestStreamReaderShortBuffer(t *testing.T) {
	src := &rampSource{}
	n, err := NewStreamReader(src).Read(make([]byte, 7))
	if n != 0 || err != nil || src.calls != 0 {
		t.Fatalf("n=%d err=%v calls=%d", n, err, src.calls)
	}
}

func TestStreamReaderEOFAfterFinish(t *testing.T) {
	src := &rampSource{limit: 2}
	rd := NewStreamReader(src)
	buf := make([]byte, 64)
	for i := 0; i < 2; i++ {
		if _, err := rd.Read(buf); err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
	}
	if _, err := rd.Read(buf); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
}
