//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midiwire/internal/stream"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/youpy/go-coremidi"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI device")
	ErrMIDIConnectionError = errors.New("error connecting to MIDI device")
	ErrCreateInputPort     = errors.New("error creating input port")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid manages MIDI capture on Darwin (macOS) systems. Raw packet bytes
// from CoreMIDI are run through a wire-protocol stream parser; fully decoded
// events are delivered on the capture channel.
type ClientMid struct {
	logger          contracts.Logger
	eventChannel    atomic.Value               // Atomic storage for the event channel to ensure thread safety.
	client          coremidi.Client            // CoreMIDI client instance for MIDI operations.
	inputPort       coremidi.InputPort         // Input port for receiving MIDI events.
	portConn        internalPortConnection     // Connection to the MIDI port.
	parser          *stream.Parser             // Byte-at-a-time decoder fed from the packet callback.
	midiEventFilter *contracts.MIDIEventFilter // Filter for decoded events.
	coreMIDIConfig  *contracts.CoreMIDIConfig  // Configuration for MIDI client.
	mu              sync.Mutex                 // Mutex for thread safety on shared resources.
	capturing       bool                       // Indicates if event capturing is currently active.
	wg              sync.WaitGroup             // WaitGroup for managing concurrent MIDI event processing.
	stopOnce        sync.Once                  // Ensures Stop() is executed only once.
}

// NewMIDIClient initializes a new ClientMid for capturing decoded MIDI events
// on macOS. Applies logging and parser configuration from the options.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}

	parser, err := stream.New(options.SysexBufferSize, options.SysexChunkSize, options.Logger)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created")

	return &ClientMid{
		logger:          options.Logger,
		client:          client,
		parser:          parser,
		midiEventFilter: options.MIDIEventFilter,
		coreMIDIConfig:  options.CoreMIDIConfig,
	}, nil
}

// ListDevices retrieves and returns available MIDI devices.
// If no devices are found, an error is logged and returned.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// SelectDevice selects a MIDI device by ID and connects to it.
// If a device is already connected, it disconnects first.
func (m *ClientMid) SelectDevice(deviceID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	if deviceID < 0 || deviceID >= len(sources) {
		m.logger.Error(ErrInvalidMIDIDevice.Error())
		return ErrInvalidMIDIDevice
	}

	if m.portConn != nil {
		m.portConn.Disconnect()
		m.portConn = nil
	}

	// Partial state from a previous device must not leak into the new stream.
	m.parser.Reset()

	source := sources[deviceID]
	m.logger.Info("MIDI device selected",
		m.logger.Field().Int("deviceID", deviceID),
		m.logger.Field().String("deviceName", source.Name()))

	m.inputPort, err = coremidi.NewInputPort(m.client, "Input Port", m.handleMIDIMessage)
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	m.portConn, err = m.inputPort.Connect(source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.logger.Info("MIDI device successfully connected")
	return nil
}

// handleMIDIMessage feeds every packet byte through the stream parser and
// forwards completed events. Sysex chunk payloads are copied out before the
// event crosses the channel: the chunk view only borrows the parser's queue
// and is invalid once the next byte is parsed.
func (m *ClientMid) handleMIDIMessage(source coremidi.Source, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	eventChannel, _ := m.eventChannel.Load().(chan contracts.CapturedEvent)
	if eventChannel == nil {
		m.logger.Warn("eventChannel not initialized or of invalid type")
		return
	}

	for _, b := range packet.Data {
		event, ok := m.parser.Parse(b)
		if !ok {
			continue
		}
		if m.midiEventFilter != nil && !isTypeAllowed(event.Type, m.midiEventFilter.Types) {
			continue
		}

		captured := contracts.CapturedEvent{
			Timestamp: uint64(time.Now().UTC().UnixNano()),
			Event:     event,
		}
		if event.Type == contracts.SystemCommon && event.ScType == contracts.SystemExclusive {
			chunk := event.AsSystemExclusive().Chunk
			data := make([]byte, chunk.Size())
			captured.SysexData = data[:chunk.ReadBytes(data)]
		}

		select {
		case eventChannel <- captured:
		default:
			m.logger.Warn("Event buffer full; dropping MIDI event")
		}
	}
}

// isTypeAllowed verifies if a decoded message type passes the event filter.
func isTypeAllowed(t contracts.MessageType, allowed []contracts.MessageType) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, allowedType := range allowed {
		if t == allowedType {
			return true
		}
	}
	return false
}

// StartCapture begins capturing MIDI events by storing the event channel and marking capturing as active.
// Ensures any ongoing capture is stopped before starting a new one.
func (m *ClientMid) StartCapture(eventChannel chan contracts.CapturedEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if eventChannel == nil {
		m.logger.Error("StartCapture called with nil eventChannel")
		return
	}

	if m.capturing {
		m.logger.Warn("Capture already started; attempting to stop existing capture")
		if err := m.Stop(); err != nil {
			m.logger.Error("Failed to stop existing capture", m.logger.Field().Error("error", err))
		}
	}

	m.logger.Info("Starting MIDI event capture")
	m.eventChannel.Store(eventChannel)
	m.capturing = true
}

// Stop halts MIDI event capturing, disconnects from the device, and waits for ongoing processing to complete.
// This function ensures it only executes once, even if called multiple times.
func (m *ClientMid) Stop() error {
	m.stopOnce.Do(func() {
		m.logger.Info("Stopping MIDI capture")
		m.mu.Lock()
		defer m.mu.Unlock()

		if m.capturing {
			m.capturing = false

			if m.portConn != nil {
				m.portConn.Disconnect()
				m.portConn = nil
			}

			// Store a closed dummy channel to prevent further writes and avoid any panic.
			dummyChannel := make(chan contracts.CapturedEvent)
			m.eventChannel.Store(dummyChannel)

			m.logger.Info("MIDI capture stopped")
			m.wg.Wait() // Wait for all ongoing MIDI event processing to complete
		}
	})
	return nil
}
