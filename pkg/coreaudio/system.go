// ABOUTME: Backend seam between the public API and the COM bindings
// ABOUTME: Implemented by go-wca on Windows and by fakes in tests
package coreaudio

import "github.com/go-ole/go-ole"

// sysEnumerator is the raw device-enumeration service. The Windows
// implementation holds an IMMDeviceEnumerator; tests substitute a fake.
type sysEnumerator interface {
	DefaultEndpoint(flow DataFlow, role Role) (sysDevice, error)
	EnumEndpoints(flow DataFlow, state DeviceState) (sysCollection, error)
	Endpoint(id string) (sysDevice, error)
	RegisterEvents(ev *DeviceEvents) error
	UnregisterEvents() error
	Release() error
}

// sysDevice is a raw endpoint device handle (IMMDevice).
type sysDevice interface {
	ID() (string, error)
	State() (DeviceState, error)
	EndpointVolume(eventCtx *ole.GUID) (sysVolume, error)
	Meter() (sysMeter, error)
	PropertyStore(access StoreAccess) (sysPropertyStore, error)
	Release() error
}

// sysCollection is a raw device collection handle (IMMDeviceCollection).
// Item re-queries the OS handle each call, so iteration is restartable.
type sysCollection interface {
	Count() (int, error)
	Item(i int) (sysDevice, error)
	Release() error
}

// sysVolume is a raw endpoint volume handle (IAudioEndpointVolume). Every
// call is a live round-trip; the backend holds no volume or mute state.
type sysVolume interface {
	MasterVolumeScalar() (float32, error)
	SetMasterVolumeScalar(v float32) error
	MasterVolumeDB() (float32, error)
	SetMasterVolumeDB(v float32) error
	Mute() (bool, error)
	SetMute(mute bool) error
	ChannelCount() (int, error)
	ChannelVolumeScalar(ch int) (float32, error)
	SetChannelVolumeScalar(ch int, v float32) error
	VolumeStepInfo() (VolumeStepInfo, error)
	VolumeStepUp() error
	VolumeStepDown() error
	VolumeRange() (VolumeRange, error)
	HardwareSupport() (HardwareSupport, error)
	Release() error
}

// sysMeter is a raw peak meter handle (IAudioMeterInformation).
type sysMeter interface {
	PeakValue() (float32, error)
	ChannelCount() (int, error)
	ChannelPeakValues() ([]float32, error)
	HardwareSupport() (HardwareSupport, error)
	Release() error
}

// sysPropertyStore is a raw property store handle (IPropertyStore).
type sysPropertyStore interface {
	Count() (int, error)
	StringValue(key PropertyKey) (string, error)
	Release() error
}
