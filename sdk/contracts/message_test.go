package contracts

import "testing"

func TestChannelVoiceAccessors(t *testing.T) {
	e := Event{Type: NoteOn, Channel: 3, Data: [2]uint8{0x40, 0x64}}

	if m := e.AsNoteOn(); m.Channel != 3 || m.Note != 0x40 || m.Velocity != 0x64 {
		t.Errorf("AsNoteOn() = %+v", m)
	}
	if m := e.AsNoteOff(); m.Channel != 3 || m.Note != 0x40 || m.Velocity != 0x64 {
		t.Errorf("AsNoteOff() = %+v", m)
	}
	if m := e.AsPolyphonicKeyPressure(); m.Note != 0x40 || m.Pressure != 0x64 {
		t.Errorf("AsPolyphonicKeyPressure() = %+v", m)
	}
	if m := e.AsControlChange(); m.ControlNumber != 0x40 || m.Value != 0x64 {
		t.Errorf("AsControlChange() = %+v", m)
	}
	if m := e.AsProgramChange(); m.Channel != 3 || m.Program != 0x40 {
		t.Errorf("AsProgramChange() = %+v", m)
	}
	if m := e.AsChannelPressure(); m.Pressure != 0x40 {
		t.Errorf("AsChannelPressure() = %+v", m)
	}
}

func TestPitchBendArithmetic(t *testing.T) {
	// The value keeps the source's literal formula
	// (data[1] << 7) + (data[0] - 8192), not the usual 14-bit combine.
	cases := []struct {
		data [2]uint8
		want int16
	}{
		{[2]uint8{0x00, 0x40}, 0},
		{[2]uint8{0x00, 0x00}, -8192},
		{[2]uint8{0x7F, 0x7F}, 8191},
		{[2]uint8{0x01, 0x40}, 1},
		{[2]uint8{0x7F, 0x00}, -8065},
	}
	for _, c := range cases {
		e := Event{Type: PitchBend, Channel: 1, Data: c.data}
		if got := e.AsPitchBend().Value; got != c.want {
			t.Errorf("data % X: value = %d, want %d", c.data, got, c.want)
		}
	}
}

func TestMTCQuarterFrameAccessor(t *testing.T) {
	cases := []struct {
		data     uint8
		wantType uint8
		wantVal  uint8
	}{
		{0x00, 0, 0},
		{0x35, 3, 5},
		{0x7F, 7, 15},
	}
	for _, c := range cases {
		e := Event{Type: SystemCommon, ScType: MTCQuarterFrame, Data: [2]uint8{c.data, 0}}
		m := e.AsMTCQuarterFrame()
		if m.MessageType != c.wantType || m.Value != c.wantVal {
			t.Errorf("data 0x%X: frame = %+v, want type %d value %d", c.data, m, c.wantType, c.wantVal)
		}
	}
}

func TestSongPositionPointerAccessor(t *testing.T) {
	e := Event{Type: SystemCommon, ScType: SongPositionPointer, Data: [2]uint8{0x7F, 0x7F}}
	if m := e.AsSongPositionPointer(); m.Position != 0x3FFF {
		t.Errorf("position = %d, want %d", m.Position, 0x3FFF)
	}
	e.Data = [2]uint8{0x02, 0x01}
	if m := e.AsSongPositionPointer(); m.Position != 0x82 {
		t.Errorf("position = %d, want %d", m.Position, 0x82)
	}
}

func TestChannelModeAccessors(t *testing.T) {
	e := Event{Type: ChannelMode, Channel: 5, Data: [2]uint8{122, 0}}
	if m := e.AsChannelMode(); m.EventType != LocalControl || m.Channel != 5 {
		t.Errorf("AsChannelMode() = %+v, want LocalControl ch.5", m)
	}

	if m := e.AsLocalControl(); !m.LocalControlOff || m.LocalControlOn {
		t.Errorf("AsLocalControl() = %+v, want off", m)
	}
	e.Data[1] = 127
	if m := e.AsLocalControl(); m.LocalControlOff || !m.LocalControlOn {
		t.Errorf("AsLocalControl() = %+v, want on", m)
	}

	e.Data = [2]uint8{126, 4}
	if m := e.AsChannelMode(); m.EventType != MonoModeOn || m.Value != 4 {
		t.Errorf("AsChannelMode() = %+v, want MonoModeOn value 4", m)
	}
	if m := e.AsMonoModeOn(); m.NumChannels != 4 {
		t.Errorf("AsMonoModeOn() = %+v, want 4 channels", m)
	}

	if m := e.AsAllSoundOff(); m.Channel != 5 {
		t.Errorf("AsAllSoundOff() = %+v", m)
	}
	if m := e.AsAllNotesOff(); m.Channel != 5 {
		t.Errorf("AsAllNotesOff() = %+v", m)
	}
	if m := e.AsOmniModeOff(); m.Channel != 5 {
		t.Errorf("AsOmniModeOff() = %+v", m)
	}
	if m := e.AsOmniModeOn(); m.Channel != 5 {
		t.Errorf("AsOmniModeOn() = %+v", m)
	}
	if m := e.AsPolyModeOn(); m.Channel != 5 {
		t.Errorf("AsPolyModeOn() = %+v", m)
	}
	e.Data[1] = 9
	if m := e.AsResetAllControllers(); m.Value != 9 {
		t.Errorf("AsResetAllControllers() = %+v, want value 9", m)
	}
}

func TestTypeStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{NoteOn.String(), "NoteOn"},
		{MessageLast.String(), "MessageLast"},
		{MessageType(200).String(), "Unknown"},
		{SystemExclusive.String(), "SystemExclusive"},
		{TimingClock.String(), "TimingClock"},
		{AllSoundOff.String(), "AllSoundOff"},
		{ChunkSeqFirst.String(), "SeqFirst"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}
