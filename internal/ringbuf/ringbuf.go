// Package ringbuf provides the fixed-capacity byte queue the stream parser
// stages sysex data in. Single producer, single consumer, no locking: the
// parser writes from the byte-feeding context and chunk views read from the
// consuming callback.
package ringbuf

// RingBuffer is a bounded circular byte queue. It implements
// contracts.ByteQueue.
type RingBuffer struct {
	data  []byte
	read  int
	write int
	count int
}

// New returns an empty ring buffer with the given capacity.
func New(capacity int) *RingBuffer {
	return &RingBuffer{data: make([]byte, capacity)}
}

// Capacity reports the fixed capacity of the buffer.
func (r *RingBuffer) Capacity() int { return len(r.data) }

// Write appends one byte. It reports false and drops the byte if the buffer
// is full.
func (r *RingBuffer) Write(b byte) bool {
	if r.count == len(r.data) {
		return false
	}
	r.data[r.write] = b
	r.write++
	if r.write == len(r.data) {
		r.write = 0
	}
	r.count++
	return true
}

// ImmediateRead removes and returns the oldest byte. Callers must check
// Readable() > 0 first; reading an empty buffer returns 0.
func (r *RingBuffer) ImmediateRead() byte {
	if r.count == 0 {
		return 0
	}
	b := r.data[r.read]
	r.read++
	if r.read == len(r.data) {
		r.read = 0
	}
	r.count--
	return b
}

// Readable reports the number of buffered bytes.
func (r *RingBuffer) Readable() int { return r.count }

// Writable reports the remaining free space in bytes.
func (r *RingBuffer) Writable() int { return len(r.data) - r.count }

// Flush discards all buffered bytes.
func (r *RingBuffer) Flush() {
	r.read = 0
	r.write = 0
	r.count = 0
}
