// ABOUTME: Core enums and value types for audio endpoints
// ABOUTME: Mirrors EDataFlow, ERole, device state and hardware support flags
package coreaudio

import "strings"

// DataFlow selects the direction of an audio endpoint (EDataFlow).
type DataFlow int

const (
	Render DataFlow = iota
	Capture
	All
)

func (f DataFlow) String() string {
	switch f {
	case Render:
		return "render"
	case Capture:
		return "capture"
	case All:
		return "all"
	}
	return "unknown"
}

// Role selects which default endpoint is requested (ERole).
type Role int

const (
	Console Role = iota
	Multimedia
	Communications
)

func (r Role) String() string {
	switch r {
	case Console:
		return "console"
	case Multimedia:
		return "multimedia"
	case Communications:
		return "communications"
	}
	return "unknown"
}

// DeviceState is a bitmask of endpoint states (DEVICE_STATE_* flags).
type DeviceState uint32

const (
	DeviceActive DeviceState = 1 << iota
	DeviceDisabled
	DeviceNotPresent
	DeviceUnplugged
)

// DeviceStateAll matches endpoints in any state.
const DeviceStateAll = DeviceActive | DeviceDisabled | DeviceNotPresent | DeviceUnplugged

func (s DeviceState) String() string {
	if s == 0 {
		return "none"
	}
	var parts []string
	if s&DeviceActive != 0 {
		parts = append(parts, "active")
	}
	if s&DeviceDisabled != 0 {
		parts = append(parts, "disabled")
	}
	if s&DeviceNotPresent != 0 {
		parts = append(parts, "notpresent")
	}
	if s&DeviceUnplugged != 0 {
		parts = append(parts, "unplugged")
	}
	return strings.Join(parts, "|")
}

// StoreAccess selects how a device property store is opened.
type StoreAccess int

const (
	ReadOnly StoreAccess = iota
	ReadWrite
)

// VolumeRange describes an endpoint's decibel volume range.
type VolumeRange struct {
	MinDB       float32
	MaxDB       float32
	IncrementDB float32
}

// VolumeStepInfo describes the endpoint's position on its volume step ladder.
type VolumeStepInfo struct {
	Step      int
	StepCount int
}

// HardwareSupport is a bitmask of ENDPOINT_HARDWARE_SUPPORT_* flags.
type HardwareSupport uint32

const (
	HardwareSupportVolume HardwareSupport = 1 << iota
	HardwareSupportMute
	HardwareSupportMeter
)

func (h HardwareSupport) String() string {
	if h == 0 {
		return "none"
	}
	var parts []string
	if h&HardwareSupportVolume != 0 {
		parts = append(parts, "volume")
	}
	if h&HardwareSupportMute != 0 {
		parts = append(parts, "mute")
	}
	if h&HardwareSupportMeter != 0 {
		parts = append(parts, "meter")
	}
	return strings.Join(parts, "|")
}
