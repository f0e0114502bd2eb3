package contracts

// Default sysex buffer geometry. The buffer size bounds the cumulative sysex
// bytes a parser can hold in flight; the chunk size is the maximum payload
// delivered per event. The buffer size must be a multiple of the chunk size.
const (
	DefaultSysexBufferSize = 1024
	DefaultSysexChunkSize  = 128
)

// MIDIEventFilter restricts which decoded message types a capture client
// forwards. An empty or nil filter forwards everything.
type MIDIEventFilter struct {
	Types []MessageType // List of message types to forward.
}

// CoreMIDIConfig holds configuration for CoreMIDI.
type CoreMIDIConfig struct {
	ClientName string // Name of the MIDI client.
}

// ClientOptions defines the configuration options for parsers and capture
// clients.
type ClientOptions struct {
	Logger          Logger           // Logger for logging events and errors.
	LogLevel        LogLevel         // Level of logging to use.
	LogFilePath     string           // File path for logging if file logging is enabled.
	MIDIEventFilter *MIDIEventFilter // Optional filter for decoded events to capture.
	CoreMIDIConfig  *CoreMIDIConfig  // Configuration specific to CoreMIDI.
	SysexBufferSize int              // Capacity of the shared sysex byte queue.
	SysexChunkSize  int              // Maximum sysex payload bytes per emitted event.
}

// Option is a function that modifies ClientOptions.
type Option func(*ClientOptions)

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(opts *ClientOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level.
func WithLogLevel(level LogLevel) Option {
	return func(opts *ClientOptions) {
		opts.LogLevel = level
	}
}

// WithMIDIEventFilter sets the decoded-event filter for capture clients.
func WithMIDIEventFilter(filter MIDIEventFilter) Option {
	return func(opts *ClientOptions) {
		opts.MIDIEventFilter = &filter
	}
}

// WithCoreMIDIConfig sets the CoreMIDI configuration.
func WithCoreMIDIConfig(config CoreMIDIConfig) Option {
	return func(opts *ClientOptions) {
		opts.CoreMIDIConfig = &config
	}
}

// WithSysexBufferSize sets the sysex queue capacity. The capacity must be a
// positive multiple of the chunk size; factories reject other values.
func WithSysexBufferSize(size int) Option {
	return func(opts *ClientOptions) {
		opts.SysexBufferSize = size
	}
}

// WithSysexChunkSize sets the per-event sysex chunk size.
func WithSysexChunkSize(size int) Option {
	return func(opts *ClientOptions) {
		opts.SysexChunkSize = size
	}
}
