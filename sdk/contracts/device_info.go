package contracts

// DeviceInfo describes a MIDI input device as reported by the platform.
type DeviceInfo struct {
	Name         string // Device name.
	Manufacturer string // Device manufacturer.
	EntityName   string // Name of the entity the device belongs to.
}
