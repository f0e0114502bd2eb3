package contracts

// MessageType identifies the category of a decoded MIDI message, parsed from
// the status byte. Values 0-6 and 9 mirror the high nibble of a channel voice
// status byte (0x8-0xE) with the 0x8 offset removed; the remaining values are
// derived from the 0xF status range. These values are wire-defined and must
// not be reordered.
type MessageType uint8

const (
	NoteOff MessageType = iota
	NoteOn
	PolyphonicKeyPressure
	ControlChange
	ProgramChange
	ChannelPressure
	PitchBend
	SystemCommon
	SystemRealTime
	ChannelMode
	// MessageLast is the sentinel meaning "no valid type decoded yet".
	MessageLast
)

// SystemCommonType refines a SystemCommon message, decoded from the low three
// bits of a 0xF0-0xF7 status byte.
type SystemCommonType uint8

const (
	SystemExclusive SystemCommonType = iota
	MTCQuarterFrame
	SongPositionPointer
	SongSelect
	SCUndefined0
	SCUndefined1
	TuneRequest
	SysExEnd
	SystemCommonLast
)

// SystemRealTimeType refines a SystemRealTime message, decoded from the low
// three bits of a 0xF8-0xFF status byte.
type SystemRealTimeType uint8

const (
	TimingClock SystemRealTimeType = iota
	SRTUndefined0
	Start
	Continue
	Stop
	SRTUndefined1
	ActiveSensing
	Reset
	SystemRealTimeLast
)

// ChannelModeType identifies a channel mode message, the reserved Control
// Change controller range 120-127 shifted down by 120.
type ChannelModeType uint8

const (
	AllSoundOff ChannelModeType = iota
	ResetAllControllers
	LocalControl
	AllNotesOff
	OmniModeOff
	OmniModeOn
	MonoModeOn
	PolyModeOn
	ChannelModeLast
)

// Event is a single decoded MIDI message. Type selects which of the sub-type
// fields (ScType, SrtType, CmType) and which accessor is meaningful; the
// others carry stale values from earlier messages and must not be read.
// SysexChunk is attached only when Type is SystemCommon and ScType is
// SystemExclusive.
type Event struct {
	Type       MessageType
	Channel    uint8
	Data       [2]uint8
	SysexChunk SysexChunk
	ScType     SystemCommonType
	SrtType    SystemRealTimeType
	CmType     ChannelModeType
}

// NoteOffEvent holds note and release velocity for a channel.
type NoteOffEvent struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// NoteOnEvent holds note and velocity for a channel.
type NoteOnEvent struct {
	Channel  uint8
	Note     uint8
	Velocity uint8
}

// PolyphonicKeyPressureEvent holds per-note pressure for a channel.
type PolyphonicKeyPressureEvent struct {
	Channel  uint8
	Note     uint8
	Pressure uint8
}

// ControlChangeEvent holds a controller number and value for a channel.
type ControlChangeEvent struct {
	Channel       uint8
	ControlNumber uint8
	Value         uint8
}

// ProgramChangeEvent holds the new program number for a channel.
type ProgramChangeEvent struct {
	Channel uint8
	Program uint8
}

// ChannelPressureEvent holds channel-wide aftertouch pressure.
type ChannelPressureEvent struct {
	Channel  uint8
	Pressure uint8
}

// PitchBendEvent holds the signed bend value for a channel.
type PitchBendEvent struct {
	Channel uint8
	Value   int16
}

// ChannelModeEvent holds a channel mode command and its value byte.
type ChannelModeEvent struct {
	Channel   uint8
	EventType ChannelModeType
	Value     int16
}

// SystemExclusiveEvent carries one chunk of a sysex transfer. The chunk
// borrows the parser's queue: it is only valid until the next byte is fed to
// the parser that produced it.
type SystemExclusiveEvent struct {
	Chunk SysexChunk
}

// MTCQuarterFrameEvent holds the 3-bit message type and 4-bit value of an MTC
// quarter frame.
type MTCQuarterFrameEvent struct {
	MessageType uint8
	Value       uint8
}

// SongPositionPointerEvent holds a 14-bit song position.
type SongPositionPointerEvent struct {
	Position uint16
}

// SongSelectEvent holds a song number.
type SongSelectEvent struct {
	Song uint8
}

// AllSoundOffEvent mutes all sounding notes on a channel.
type AllSoundOffEvent struct {
	Channel uint8
}

// ResetAllControllersEvent resets controllers on a channel.
type ResetAllControllersEvent struct {
	Channel uint8
	Value   uint8
}

// LocalControlEvent switches local control on or off for a channel.
type LocalControlEvent struct {
	Channel         uint8
	LocalControlOff bool
	LocalControlOn  bool
}

// AllNotesOffEvent releases all notes on a channel.
type AllNotesOffEvent struct {
	Channel uint8
}

// OmniModeOffEvent disables omni mode on a channel.
type OmniModeOffEvent struct {
	Channel uint8
}

// OmniModeOnEvent enables omni mode on a channel.
type OmniModeOnEvent struct {
	Channel uint8
}

// MonoModeOnEvent enables mono mode with the given voice count.
type MonoModeOnEvent struct {
	Channel     uint8
	NumChannels uint8
}

// PolyModeOnEvent enables poly mode on a channel.
type PolyModeOnEvent struct {
	Channel uint8
}

// The As* conversions below are pure projections of the Event's raw bytes
// into the payload record for one message category. Each is total: calling an
// accessor that does not match Type yields a value computed from unrelated
// bytes, not an error. Callers select the accessor from Type.

// AsNoteOff returns the event data as a NoteOffEvent.
func (e Event) AsNoteOff() NoteOffEvent {
	return NoteOffEvent{
		Channel:  e.Channel,
		Note:     e.Data[0],
		Velocity: e.Data[1],
	}
}

// AsNoteOn returns the event data as a NoteOnEvent.
func (e Event) AsNoteOn() NoteOnEvent {
	return NoteOnEvent{
		Channel:  e.Channel,
		Note:     e.Data[0],
		Velocity: e.Data[1],
	}
}

// AsPolyphonicKeyPressure returns the event data as a PolyphonicKeyPressureEvent.
func (e Event) AsPolyphonicKeyPressure() PolyphonicKeyPressureEvent {
	return PolyphonicKeyPressureEvent{
		Channel:  e.Channel,
		Note:     e.Data[0],
		Pressure: e.Data[1],
	}
}

// AsControlChange returns the event data as a ControlChangeEvent.
func (e Event) AsControlChange() ControlChangeEvent {
	return ControlChangeEvent{
		Channel:       e.Channel,
		ControlNumber: e.Data[0],
		Value:         e.Data[1],
	}
}

// AsProgramChange returns the event data as a ProgramChangeEvent.
func (e Event) AsProgramChange() ProgramChangeEvent {
	return ProgramChangeEvent{
		Channel: e.Channel,
		Program: e.Data[0],
	}
}

// AsChannelPressure returns the event data as a ChannelPressureEvent.
func (e Event) AsChannelPressure() ChannelPressureEvent {
	return ChannelPressureEvent{
		Channel:  e.Channel,
		Pressure: e.Data[0],
	}
}

// AsPitchBend returns the event data as a PitchBendEvent. The value keeps the
// wire-compatible arithmetic (data[1] << 7) + (data[0] - 8192); it is not the
// conventional 14-bit combine.
func (e Event) AsPitchBend() PitchBendEvent {
	return PitchBendEvent{
		Channel: e.Channel,
		Value:   int16(int(e.Data[1])<<7 + int(e.Data[0]) - 8192),
	}
}

// AsChannelMode returns the event data as a ChannelModeEvent.
func (e Event) AsChannelMode() ChannelModeEvent {
	return ChannelModeEvent{
		Channel:   e.Channel,
		EventType: ChannelModeType(e.Data[0] - 120),
		Value:     int16(e.Data[1]),
	}
}

// AsSystemExclusive returns the event's sysex chunk. The chunk shares the
// parser's queue; the copy here is a view copy, not a data copy.
func (e Event) AsSystemExclusive() SystemExclusiveEvent {
	return SystemExclusiveEvent{Chunk: e.SysexChunk}
}

// AsMTCQuarterFrame returns the event data as an MTCQuarterFrameEvent.
func (e Event) AsMTCQuarterFrame() MTCQuarterFrameEvent {
	return MTCQuarterFrameEvent{
		MessageType: (e.Data[0] & 0x70) >> 4,
		Value:       e.Data[0] & 0x0F,
	}
}

// AsSongPositionPointer returns the event data as a SongPositionPointerEvent.
func (e Event) AsSongPositionPointer() SongPositionPointerEvent {
	return SongPositionPointerEvent{
		Position: uint16(e.Data[1])<<7 | uint16(e.Data[0]),
	}
}

// AsSongSelect returns the event data as a SongSelectEvent.
func (e Event) AsSongSelect() SongSelectEvent {
	return SongSelectEvent{Song: e.Data[0]}
}

// AsAllSoundOff returns the event data as an AllSoundOffEvent.
func (e Event) AsAllSoundOff() AllSoundOffEvent {
	return AllSoundOffEvent{Channel: e.Channel}
}

// AsResetAllControllers returns the event data as a ResetAllControllersEvent.
func (e Event) AsResetAllControllers() ResetAllControllersEvent {
	return ResetAllControllersEvent{
		Channel: e.Channel,
		Value:   e.Data[1],
	}
}

// AsLocalControl returns the event data as a LocalControlEvent.
func (e Event) AsLocalControl() LocalControlEvent {
	return LocalControlEvent{
		Channel:         e.Channel,
		LocalControlOff: e.Data[1] == 0,
		LocalControlOn:  e.Data[1] == 127,
	}
}

// AsAllNotesOff returns the event data as an AllNotesOffEvent.
func (e Event) AsAllNotesOff() AllNotesOffEvent {
	return AllNotesOffEvent{Channel: e.Channel}
}

// AsOmniModeOff returns the event data as an OmniModeOffEvent.
func (e Event) AsOmniModeOff() OmniModeOffEvent {
	return OmniModeOffEvent{Channel: e.Channel}
}

// AsOmniModeOn returns the event data as an OmniModeOnEvent.
func (e Event) AsOmniModeOn() OmniModeOnEvent {
	return OmniModeOnEvent{Channel: e.Channel}
}

// AsMonoModeOn returns the event data as a MonoModeOnEvent.
func (e Event) AsMonoModeOn() MonoModeOnEvent {
	return MonoModeOnEvent{
		Channel:     e.Channel,
		NumChannels: e.Data[1],
	}
}

// AsPolyModeOn returns the event data as a PolyModeOnEvent.
func (e Event) AsPolyModeOn() PolyModeOnEvent {
	return PolyModeOnEvent{Channel: e.Channel}
}
