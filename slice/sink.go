package slice

import "sync/atomic"

// Sink collects the triangles of one slicing pass. Concurrent workers
// reserve disjoint output slots through a single atomic cursor, so no
// lock is held over the buffer and writes to reserved slots never
// alias. Capacity is fixed for the lifetime of the sink; reservations
// beyond it are counted and reported, never written.
type Sink struct {
	// n is the reservation cursor. It may exceed len(buf), in which
	// case the excess is the number of dropped triangles.
	n   int64
	buf []Triangle
}

// NewSink returns a sink able to hold capacity triangles per pass.
func NewSink(capacity int) *Sink {
	if capacity <= 0 {
		panic("sink capacity must be positive")
	}
	return &Sink{buf: make([]Triangle, capacity)}
}

// Reset discards the previous pass' triangles. It must not be called
// concurrently with append.
func (s *Sink) Reset() { atomic.StoreInt64(&s.n, 0) }

// Cap returns the sink capacity.
func (s *Sink) Cap() int { return len(s.buf) }

// Len returns the number of valid triangles stored. It is only
// meaningful once all concurrent appends of the pass completed.
func (s *Sink) Len() int {
	n := atomic.LoadInt64(&s.n)
	if n > int64(len(s.buf)) {
		return len(s.buf)
	}
	return int(n)
}

// Dropped returns how many triangles did not fit during the pass.
func (s *Sink) Dropped() int {
	n := atomic.LoadInt64(&s.n)
	if n <= int64(len(s.buf)) {
		return 0
	}
	return int(n - int64(len(s.buf)))
}

// Triangles returns the valid triangles of the pass. The slice aliases
// the sink buffer and is invalidated by the next Reset.
func (s *Sink) Triangles() []Triangle { return s.buf[:s.Len()] }

// append reserves len(t) slots and copies t into them. It is safe for
// concurrent use. The return is false when any triangle was dropped
// due to capacity.
func (s *Sink) append(t []Triangle) bool {
	end := atomic.AddInt64(&s.n, int64(len(t)))
	start := end - int64(len(t))
	if start >= int64(len(s.buf)) {
		return false
	}
	if end > int64(len(s.buf)) {
		copy(s.buf[start:], t[:int64(len(s.buf))-start])
		return false
	}
	copy(s.buf[start:], t)
	return true
}
