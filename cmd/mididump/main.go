// Command mididump decodes a raw MIDI 1.0 byte stream and prints one line per
// decoded message. Input is a file argument or stdin, either raw bytes or
// whitespace-separated hex with --hex.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leandrodaf/midiwire/internal/logger"
	"github.com/leandrodaf/midiwire/sdk/contracts"
	"github.com/leandrodaf/midiwire/sdk/midi"
)

var (
	flagHex        bool
	flagBufferSize int
	flagChunkSize  int
	flagQuiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "mididump [file]",
	Short: "Decode a raw MIDI byte stream and print each message",
	Args:  cobra.MaximumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.Flags().BoolVar(&flagHex, "hex", false, "treat input as whitespace-separated hex bytes")
	rootCmd.Flags().IntVar(&flagBufferSize, "sysex-buffer", contracts.DefaultSysexBufferSize, "sysex queue capacity in bytes")
	rootCmd.Flags().IntVar(&flagChunkSize, "sysex-chunk", contracts.DefaultSysexChunkSize, "max sysex bytes per chunk")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress parser log output")
}

func run(cmd *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if flagHex {
		raw, err = decodeHex(raw)
		if err != nil {
			return err
		}
	}

	log := logger.NewZapLogger()
	if flagQuiet {
		log = logger.NewNopLogger()
	}
	parser, err := midi.NewStreamParser(
		contracts.WithLogger(log),
		contracts.WithSysexBufferSize(flagBufferSize),
		contracts.WithSysexChunkSize(flagChunkSize),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	count := 0
	for _, b := range raw {
		event, ok := parser.Parse(b)
		if !ok {
			continue
		}
		count++
		fmt.Fprintln(out, formatEvent(event))
	}
	fmt.Fprintf(out, "%d bytes, %d messages\n", len(raw), count)
	return nil
}

// decodeHex parses whitespace-separated hex byte text, tolerating 0x prefixes.
func decodeHex(text []byte) ([]byte, error) {
	fields := strings.Fields(string(text))
	out := make([]byte, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
		if len(f)%2 == 1 {
			f = "0" + f
		}
		b, err := hex.DecodeString(f)
		if err != nil {
			return nil, fmt.Errorf("bad hex byte %q: %w", f, err)
		}
		out = append(out, b...)
	}
	return out, nil
}

func formatEvent(e contracts.Event) string {
	switch e.Type {
	case contracts.NoteOff:
		m := e.AsNoteOff()
		return fmt.Sprintf("noteOff ch.%d note=%d vel=%d", m.Channel, m.Note, m.Velocity)
	case contracts.NoteOn:
		m := e.AsNoteOn()
		return fmt.Sprintf("noteOn ch.%d note=%d vel=%d", m.Channel, m.Note, m.Velocity)
	case contracts.PolyphonicKeyPressure:
		m := e.AsPolyphonicKeyPressure()
		return fmt.Sprintf("polyPressure ch.%d note=%d pressure=%d", m.Channel, m.Note, m.Pressure)
	case contracts.ControlChange:
		m := e.AsControlChange()
		return fmt.Sprintf("controlChange ch.%d cc=%d val=%d", m.Channel, m.ControlNumber, m.Value)
	case contracts.ProgramChange:
		m := e.AsProgramChange()
		return fmt.Sprintf("programChange ch.%d program=%d", m.Channel, m.Program)
	case contracts.ChannelPressure:
		m := e.AsChannelPressure()
		return fmt.Sprintf("channelPressure ch.%d pressure=%d", m.Channel, m.Pressure)
	case contracts.PitchBend:
		m := e.AsPitchBend()
		return fmt.Sprintf("pitchBend ch.%d value=%d", m.Channel, m.Value)
	case contracts.ChannelMode:
		m := e.AsChannelMode()
		return fmt.Sprintf("channelMode ch.%d %s val=%d", m.Channel, m.EventType, m.Value)
	case contracts.SystemRealTime:
		return fmt.Sprintf("realTime %s", e.SrtType)
	case contracts.SystemCommon:
		return formatSystemCommon(e)
	default:
		return "<invalid>"
	}
}

func formatSystemCommon(e contracts.Event) string {
	switch e.ScType {
	case contracts.SystemExclusive:
		chunk := e.AsSystemExclusive().Chunk
		data := make([]byte, chunk.Size())
		n := chunk.ReadBytes(data)
		return fmt.Sprintf("sysex %s % X", chunk.Type(), data[:n])
	case contracts.MTCQuarterFrame:
		m := e.AsMTCQuarterFrame()
		return fmt.Sprintf("mtcQuarterFrame type=%d value=%d", m.MessageType, m.Value)
	case contracts.SongPositionPointer:
		m := e.AsSongPositionPointer()
		return fmt.Sprintf("songPosition %d", m.Position)
	case contracts.SongSelect:
		m := e.AsSongSelect()
		return fmt.Sprintf("songSelect %d", m.Song)
	default:
		return fmt.Sprintf("systemCommon %s", e.ScType)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
