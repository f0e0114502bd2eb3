package contracts

var messageTypeNames = [...]string{
	"NoteOff",
	"NoteOn",
	"PolyphonicKeyPressure",
	"ControlChange",
	"ProgramChange",
	"ChannelPressure",
	"PitchBend",
	"SystemCommon",
	"SystemRealTime",
	"ChannelMode",
	"MessageLast",
}

func (t MessageType) String() string {
	if int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return "Unknown"
}

var systemCommonNames = [...]string{
	"SystemExclusive",
	"MTCQuarterFrame",
	"SongPositionPointer",
	"SongSelect",
	"SCUndefined0",
	"SCUndefined1",
	"TuneRequest",
	"SysExEnd",
	"SystemCommonLast",
}

func (t SystemCommonType) String() string {
	if int(t) < len(systemCommonNames) {
		return systemCommonNames[t]
	}
	return "Unknown"
}

var systemRealTimeNames = [...]string{
	"TimingClock",
	"SRTUndefined0",
	"Start",
	"Continue",
	"Stop",
	"SRTUndefined1",
	"ActiveSensing",
	"Reset",
	"SystemRealTimeLast",
}

func (t SystemRealTimeType) String() string {
	if int(t) < len(systemRealTimeNames) {
		return systemRealTimeNames[t]
	}
	return "Unknown"
}

var channelModeNames = [...]string{
	"AllSoundOff",
	"ResetAllControllers",
	"LocalControl",
	"AllNotesOff",
	"OmniModeOff",
	"OmniModeOn",
	"MonoModeOn",
	"PolyModeOn",
	"ChannelModeLast",
}

func (t ChannelModeType) String() string {
	if int(t) < len(channelModeNames) {
		return channelModeNames[t]
	}
	return "Unknown"
}

var chunkTypeNames = [...]string{
	"Invalid",
	"Individual",
	"SeqFirst",
	"SeqIntermediate",
	"SeqLast",
}

func (t SysexChunkType) String() string {
	if int(t) < len(chunkTypeNames) {
		return chunkTypeNames[t]
	}
	return "Unknown"
}
