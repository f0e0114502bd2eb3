package contracts

// ByteQueue is the bounded single-producer/single-consumer byte buffer the
// parser stages sysex data in. Write reports false (and drops the byte) when
// the queue is full. ImmediateRead must only be called after checking
// Readable() > 0.
type ByteQueue interface {
	Write(b byte) bool
	ImmediateRead() byte
	Readable() int
	Writable() int
	Flush()
}

// SysexChunkType tags a chunk's position within a sysex transfer.
type SysexChunkType uint8

const (
	ChunkInvalid SysexChunkType = iota
	ChunkIndividual
	ChunkSeqFirst
	ChunkSeqIntermediate
	ChunkSeqLast
)

// NoMoreData is returned by SysexChunk.ReadByte when the chunk is exhausted
// or the underlying queue has no data.
const NoMoreData byte = 0xFF

// SysexChunk is a read-once view over a run of bytes held in a shared
// ByteQueue, without exposing write access to the queue. Reading consumes
// bytes from the queue, so a chunk cannot be restarted. The data is only
// valid until the next byte is fed to the parser that produced the chunk.
type SysexChunk struct {
	chunkType SysexChunkType
	queue     ByteQueue
	size      int
	bytesRead int
}

// NewSysexChunk builds a view over the next size bytes of q. The zero
// SysexChunk has type ChunkInvalid and reads nothing.
func NewSysexChunk(t SysexChunkType, q ByteQueue, size int) SysexChunk {
	return SysexChunk{chunkType: t, queue: q, size: size}
}

// Type reports the chunk's position within its transfer.
func (c *SysexChunk) Type() SysexChunkType { return c.chunkType }

// Size reports the total byte count of this chunk.
func (c *SysexChunk) Size() int { return c.size }

// BytesRemaining reports how many bytes of this chunk are still unread.
func (c *SysexChunk) BytesRemaining() int { return c.size - c.bytesRead }

func (c *SysexChunk) canRead() bool {
	return c.bytesRead < c.size && c.queue != nil && c.queue.Readable() > 0
}

// ReadByte consumes and returns one byte from the queue, or NoMoreData when
// the chunk is exhausted or the queue is empty.
func (c *SysexChunk) ReadByte() byte {
	if !c.canRead() {
		return NoMoreData
	}
	c.bytesRead++
	return c.queue.ImmediateRead()
}

// ReadBytes copies up to len(dst) bytes into dst, stopping at the chunk
// boundary or queue exhaustion, and returns the count copied.
func (c *SysexChunk) ReadBytes(dst []byte) int {
	count := 0
	for c.canRead() && count < len(dst) {
		dst[count] = c.queue.ImmediateRead()
		c.bytesRead++
		count++
	}
	return count
}
