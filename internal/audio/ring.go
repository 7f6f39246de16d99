package audio

// ringBuffer keeps the most recent samples heard before speech onset so
// the first syllable of an utterance is not clipped.
type ringBuffer struct {
	buf   []int16
	head  int
	count int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{buf: make([]int16, size)}
}

// Add appends samples, overwriting the oldest when full.
func (r *ringBuffer) Add(samples []int16) {
	for _, s := range samples {
		r.buf[r.head] = s
		r.head = (r.head + 1) % len(r.buf)
		if r.count < len(r.buf) {
			r.count++
		}
	}
}

// Read returns the buffered samples oldest-first. Only samples actually
// written are returned.
func (r *ringBuffer) Read() []int16 {
	out := make([]int16, r.count)
	start := (r.head - r.count + len(r.buf)) % len(r.buf)
	for i := 0; i < r.count; i++ {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}

// Clear discards all buffered samples.
func (r *ringBuffer) Clear() {
	r.head = 0
	r.count = 0
}
