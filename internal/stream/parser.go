// Package stream implements the incremental MIDI 1.0 wire-protocol parser.
// Bytes are fed one at a time; each call does bounded work, allocates
// nothing, and emits at most one decoded event. Running status is tracked
// across messages and System Exclusive payloads are streamed through a fixed
// ring buffer as bounded chunks.
package stream

import (
	"errors"

	"github.com/leandrodaf/midiwire/internal/ringbuf"
	"github.com/leandrodaf/midiwire/sdk/contracts"
)

// Status and data byte masks from the MIDI 1.0 specification.
const (
	statusByteMask = 0x80
	messageMask    = 0x70
	channelMask    = 0x0F
	dataByteMask   = 0x7F

	// Status bytes >= 0xF8 are System Real-Time regardless of channel nibble.
	realTimeStatusMask = 0xF8
	systemSubTypeMask  = 0x07

	sysexTerminator = 0xF7
)

// ErrSysexGeometry is returned when the sysex buffer capacity is not a
// positive multiple of the chunk size. A non-dividing chunk size would make
// the length bookkeeping of a maximal transfer's last chunk ambiguous, so it
// is rejected at construction rather than checked per byte.
var ErrSysexGeometry = errors.New("sysex buffer size must be a positive multiple of chunk size")

type phase uint8

const (
	phaseEmpty phase = iota
	phaseHasStatus
	phaseHasData0
	phaseSysex
)

// Parser is the per-stream state machine. One instance per input stream;
// instances are independent and a single instance must be fed from a single
// context. It implements contracts.StreamParser.
type Parser struct {
	logger    contracts.Logger
	queue     *ringbuf.RingBuffer
	chunkSize int

	state         phase
	runningStatus contracts.MessageType
	incoming      contracts.Event

	sysexChunkLen   int
	sysexChunkCount int
	sysexOverflow   bool
}

// New returns a parser owning a fresh sysex queue of the given capacity,
// emitting sysex chunks of at most chunkSize bytes. The capacity must be a
// positive multiple of chunkSize.
func New(capacity, chunkSize int, log contracts.Logger) (*Parser, error) {
	if chunkSize <= 0 || capacity <= 0 || capacity%chunkSize != 0 {
		return nil, ErrSysexGeometry
	}
	p := &Parser{
		logger:    log,
		queue:     ringbuf.New(capacity),
		chunkSize: chunkSize,
	}
	p.Reset()
	return p, nil
}

// Parse consumes one byte and returns the completed event, if any. Every
// byte is consumed exactly once; malformed input silently resets the state
// machine instead of returning an error.
func (p *Parser) Parse(b byte) (contracts.Event, bool) {
	// A status byte resynchronizes the stream, abandoning any partial
	// message. Mid-sysex it is legal data for termination handling below.
	if b&statusByteMask != 0 && p.state != phaseSysex {
		p.state = phaseEmpty
	}

	switch p.state {
	case phaseEmpty:
		if b&statusByteMask != 0 {
			return p.parseStatusByte(b)
		}
		return p.parseRunningStatusData(b)
	case phaseHasStatus:
		// Status bytes were rerouted above, so b is a data byte.
		return p.parseFirstDataByte(b)
	case phaseHasData0:
		return p.parseSecondDataByte(b)
	case phaseSysex:
		return p.parseSysexByte(b)
	}
	return contracts.Event{}, false
}

func (p *Parser) parseStatusByte(b byte) (contracts.Event, bool) {
	// Real-time messages (status >= 0xF8, regardless of channel nibble) are
	// single-byte and standalone: they may legally interleave with another
	// message's bytes, so they must not disturb the partial message or the
	// running status.
	if b&realTimeStatusMask == realTimeStatusMask {
		return contracts.Event{
			Type:    contracts.SystemRealTime,
			SrtType: contracts.SystemRealTimeType(b & systemSubTypeMask),
		}, true
	}

	p.incoming.Channel = b & channelMask
	p.incoming.Type = contracts.MessageType((b & messageMask) >> 4)
	if p.incoming.Type >= contracts.MessageLast {
		// Keep waiting for a valid status byte.
		return contracts.Event{}, false
	}

	p.state = phaseHasStatus
	switch p.incoming.Type {
	case contracts.SystemCommon:
		p.incoming.Channel = 0
		p.incoming.ScType = contracts.SystemCommonType(b & systemSubTypeMask)
		if p.incoming.ScType == contracts.SystemExclusive {
			p.state = phaseSysex
		} else if p.incoming.ScType > contracts.SongSelect {
			// No data bytes follow; the message is already complete.
			p.state = phaseEmpty
			return p.incoming, true
		}
	default: // Channel Voice or Channel Mode candidate.
		p.runningStatus = p.incoming.Type
	}
	return contracts.Event{}, false
}

// parseRunningStatusData handles a data byte arriving with no message in
// progress: it continues the last seen channel-voice status.
func (p *Parser) parseRunningStatusData(b byte) (contracts.Event, bool) {
	if p.runningStatus >= contracts.MessageLast {
		// Nothing to continue; drop the byte until a status byte arrives.
		return contracts.Event{}, false
	}
	p.incoming.Type = p.runningStatus
	p.incoming.Data[0] = b & dataByteMask
	if p.isSingleDataByte() {
		p.state = phaseEmpty
		return p.incoming, true
	}
	p.state = phaseHasData0
	return contracts.Event{}, false
}

func (p *Parser) parseFirstDataByte(b byte) (contracts.Event, bool) {
	p.incoming.Data[0] = b & dataByteMask

	// Controller numbers 120-127 are reserved as Channel Mode messages;
	// reclassify before deciding the message length.
	if p.runningStatus == contracts.ControlChange && p.incoming.Data[0] > 119 {
		p.incoming.Type = contracts.ChannelMode
		p.runningStatus = contracts.ChannelMode
		p.incoming.CmType = contracts.ChannelModeType(p.incoming.Data[0] - 120)
	}

	if p.isSingleDataByte() {
		p.state = phaseEmpty
		return p.incoming, true
	}
	p.state = phaseHasData0
	return contracts.Event{}, false
}

func (p *Parser) parseSecondDataByte(b byte) (contracts.Event, bool) {
	p.incoming.Data[1] = b & dataByteMask

	// Velocity-0 NoteOns are NoteOffs.
	if p.runningStatus == contracts.NoteOn && p.incoming.Data[1] == 0 {
		p.incoming.Type = contracts.NoteOff
	}

	p.state = phaseEmpty
	return p.incoming, true
}

// isSingleDataByte reports whether the in-progress message completes after
// one data byte. The system-common sub-type is consulted as last decoded,
// matching the wire behavior of running status for those messages.
func (p *Parser) isSingleDataByte() bool {
	return p.runningStatus == contracts.ChannelPressure ||
		p.runningStatus == contracts.ProgramChange ||
		p.incoming.ScType == contracts.MTCQuarterFrame ||
		p.incoming.ScType == contracts.SongSelect
}

func (p *Parser) parseSysexByte(b byte) (contracts.Event, bool) {
	if b == sysexTerminator {
		p.state = phaseEmpty
		if p.sysexOverflow {
			// The transfer was corrupted by backpressure: flush and stay
			// silent rather than delivering a truncated chunk.
			p.queue.Flush()
			p.sysexChunkLen = 0
			p.sysexChunkCount = 0
			p.sysexOverflow = false
			return contracts.Event{}, false
		}
		return p.produceSysexChunk(true), true
	}

	if !p.sysexOverflow && p.queue.Writable() > 0 {
		p.queue.Write(b)
		p.sysexChunkLen++
		if p.sysexChunkLen >= p.chunkSize {
			return p.produceSysexChunk(false), true
		}
		return contracts.Event{}, false
	}

	// Consumer is not draining chunks fast enough; discard the remainder of
	// this transfer.
	if !p.sysexOverflow {
		p.sysexOverflow = true
		if p.logger != nil {
			p.logger.Warn("sysex queue overflow; discarding transfer",
				p.logger.Field().Int("buffered", p.queue.Readable()))
		}
	}
	return contracts.Event{}, false
}

// produceSysexChunk emits the accumulated bytes as one chunk, tagged with its
// position in the transfer, and restarts the local byte count.
func (p *Parser) produceSysexChunk(transferEnded bool) contracts.Event {
	kind := contracts.ChunkSeqIntermediate
	switch {
	case p.sysexChunkCount == 0 && transferEnded:
		kind = contracts.ChunkIndividual
	case p.sysexChunkCount == 0:
		kind = contracts.ChunkSeqFirst
		p.sysexChunkCount++
	case transferEnded:
		kind = contracts.ChunkSeqLast
		p.sysexChunkCount = 0
	default:
		p.sysexChunkCount++
	}

	event := p.incoming
	event.SysexChunk = contracts.NewSysexChunk(kind, p.queue, p.sysexChunkLen)
	p.sysexChunkLen = 0
	return event
}

// Reset returns the parser to the state of a freshly constructed instance:
// empty phase, sentinel in-progress type, cleared running status and sysex
// bookkeeping, and a flushed queue.
func (p *Parser) Reset() {
	p.state = phaseEmpty
	p.runningStatus = contracts.MessageLast
	p.incoming = contracts.Event{Type: contracts.MessageLast}
	p.sysexChunkLen = 0
	p.sysexChunkCount = 0
	p.sysexOverflow = false
	p.queue.Flush()
}
