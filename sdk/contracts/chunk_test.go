package contracts

import "testing"

// fifoQueue is a minimal ByteQueue for exercising chunk views.
type fifoQueue struct {
	data []byte
	cap  int
}

func (q *fifoQueue) Write(b byte) bool {
	if len(q.data) == q.cap {
		return false
	}
	q.data = append(q.data, b)
	return true
}

func (q *fifoQueue) ImmediateRead() byte {
	b := q.data[0]
	q.data = q.data[1:]
	return b
}

func (q *fifoQueue) Readable() int { return len(q.data) }
func (q *fifoQueue) Writable() int { return q.cap - len(q.data) }
func (q *fifoQueue) Flush()        { q.data = nil }

func newFifo(data ...byte) *fifoQueue {
	return &fifoQueue{data: data, cap: 64}
}

func TestChunkReadByte(t *testing.T) {
	q := newFifo(0x01, 0x02, 0x03)
	chunk := NewSysexChunk(ChunkIndividual, q, 3)

	for i, want := range []byte{0x01, 0x02, 0x03} {
		if got := chunk.ReadByte(); got != want {
			t.Errorf("byte %d = 0x%X, want 0x%X", i, got, want)
		}
	}
	if got := chunk.ReadByte(); got != NoMoreData {
		t.Errorf("exhausted ReadByte() = 0x%X, want sentinel", got)
	}
}

func TestChunkStopsAtSizeBoundary(t *testing.T) {
	// The queue holds more than this chunk's share; later bytes belong to the
	// next chunk and must not be consumed.
	q := newFifo(0x01, 0x02, 0x03, 0x04)
	chunk := NewSysexChunk(ChunkSeqFirst, q, 2)

	dst := make([]byte, 8)
	if n := chunk.ReadBytes(dst); n != 2 {
		t.Fatalf("ReadBytes = %d, want 2", n)
	}
	if chunk.BytesRemaining() != 0 {
		t.Errorf("BytesRemaining = %d, want 0", chunk.BytesRemaining())
	}
	if q.Readable() != 2 {
		t.Errorf("queue has %d bytes left, want 2", q.Readable())
	}
}

func TestChunkStopsOnEmptyQueue(t *testing.T) {
	// A chunk sized beyond what the queue currently holds reads what exists
	// and then reports the sentinel.
	q := newFifo(0x0A)
	chunk := NewSysexChunk(ChunkSeqLast, q, 4)

	dst := make([]byte, 4)
	if n := chunk.ReadBytes(dst); n != 1 || dst[0] != 0x0A {
		t.Fatalf("ReadBytes = %d (% X), want 1 (0A)", n, dst[:n])
	}
	if got := chunk.ReadByte(); got != NoMoreData {
		t.Errorf("ReadByte() = 0x%X, want sentinel", got)
	}
}

func TestChunkPartialReads(t *testing.T) {
	q := newFifo(0x01, 0x02, 0x03, 0x04, 0x05)
	chunk := NewSysexChunk(ChunkIndividual, q, 5)

	dst := make([]byte, 2)
	if n := chunk.ReadBytes(dst); n != 2 {
		t.Fatalf("first ReadBytes = %d, want 2", n)
	}
	if chunk.BytesRemaining() != 3 {
		t.Errorf("BytesRemaining = %d, want 3", chunk.BytesRemaining())
	}
	if b := chunk.ReadByte(); b != 0x03 {
		t.Errorf("ReadByte() = 0x%X, want 0x03", b)
	}
	if n := chunk.ReadBytes(dst); n != 2 || dst[0] != 0x04 || dst[1] != 0x05 {
		t.Errorf("final ReadBytes = %d (% X), want 2 (04 05)", n, dst[:n])
	}
}

func TestZeroChunkIsInvalidAndEmpty(t *testing.T) {
	var chunk SysexChunk
	if chunk.Type() != ChunkInvalid {
		t.Errorf("Type() = %s, want Invalid", chunk.Type())
	}
	if got := chunk.ReadByte(); got != NoMoreData {
		t.Errorf("ReadByte() = 0x%X, want sentinel", got)
	}
	if n := chunk.ReadBytes(make([]byte, 4)); n != 0 {
		t.Errorf("ReadBytes = %d, want 0", n)
	}
}
