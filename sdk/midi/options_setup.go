package midi

import (
	"github.com/leandrodaf/midiwire/internal/logger"
	"github.com/leandrodaf/midiwire/sdk/contracts"
)

// applyDefaultOptions sets default values for ClientOptions if not explicitly
// provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify ClientOptions.
//
// Returns:
//   - contracts.ClientOptions: A structure containing the finalized client options with defaults applied.
//   - error: An error if there was an issue applying the options.
func applyDefaultOptions(opts ...contracts.Option) (contracts.ClientOptions, error) {
	options := &contracts.ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.LogLevel == 0 {
		options.LogLevel = contracts.InfoLevel
	}
	if options.CoreMIDIConfig == nil {
		options.CoreMIDIConfig = &contracts.CoreMIDIConfig{ClientName: "GO MIDI Client"}
	}
	if options.SysexBufferSize == 0 {
		options.SysexBufferSize = contracts.DefaultSysexBufferSize
	}
	if options.SysexChunkSize == 0 {
		options.SysexChunkSize = contracts.DefaultSysexChunkSize
	}

	options.Logger.SetLevel(options.LogLevel)
	return *options, nil
}
