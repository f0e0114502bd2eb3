package midi

import (
	"github.com/leandrodaf/midiwire/internal/stream"
	"github.com/leandrodaf/midiwire/sdk/contracts"
)

// NewMIDIClient creates a new MIDI capture client with the specified options.
// It applies default options and initializes the platform client; inbound
// bytes are decoded by a stream parser before delivery.
//
// opts ...contracts.Option: A variadic list of option functions to customize the client configuration.
//
// Returns:
//   - contracts.ClientMIDI: An instance of the MIDI client.
//   - error: An error, if any occurred during the creation of the client.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(&options)
	if err != nil {
		return nil, err
	}

	return client, nil
}

// NewStreamParser creates a byte-at-a-time MIDI wire protocol parser with the
// specified options. The sysex buffer size must be a positive multiple of the
// chunk size; other geometries return stream.ErrSysexGeometry.
//
// Returns:
//   - contracts.StreamParser: The configured parser.
//   - error: An error if the options are invalid.
func NewStreamParser(opts ...contracts.Option) (contracts.StreamParser, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	return stream.New(options.SysexBufferSize, options.SysexChunkSize, options.Logger)
}
