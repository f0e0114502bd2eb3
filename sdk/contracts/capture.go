package contracts

// CapturedEvent is a decoded MIDI event delivered by a capture client, with
// the time the raw bytes arrived. SysexData holds a copy of the event's sysex
// chunk payload when the event is a SystemExclusive chunk; the copy is made
// before the event crosses the channel boundary because chunk views do not
// outlive the parser callback that produced them.
type CapturedEvent struct {
	Timestamp uint64 // Arrival time in nanoseconds since the Unix epoch.
	Event     Event  // The decoded message.
	SysexData []byte // Sysex chunk payload, nil for non-sysex events.
}

// ClientMIDI defines an interface for MIDI capture client operations.
type ClientMIDI interface {
	Stop() error                                  // Stops the MIDI client and releases resources.
	ListDevices() ([]DeviceInfo, error)           // Lists all available MIDI devices.
	SelectDevice(deviceID int) error              // Selects a MIDI device by its ID for communication.
	StartCapture(eventChannel chan CapturedEvent) // Starts capturing decoded events into the channel.
}

// StreamParser consumes a raw MIDI byte stream one byte at a time and emits
// decoded events. Parse returns the completed event and true when the byte
// finishes a message or sysex chunk; at most one event is emitted per byte.
// Malformed input never returns an error: the parser silently resynchronizes
// on the next status byte.
//
// A parser is owned by a single byte-feeding context; Parse performs bounded
// work with no allocation or suspension, so it is safe to call from an
// interrupt-style callback.
type StreamParser interface {
	Parse(b byte) (Event, bool)
	Reset()
}
