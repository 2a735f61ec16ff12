// ABOUTME: Audio endpoint device wrapper over IMMDevice
// ABOUTME: Activates volume, meter and property store capabilities
package coreaudio

import (
	"github.com/go-ole/go-ole"
	"github.com/rs/zerolog"
)

// Device represents one audio endpoint device. It wraps an IMMDevice handle
// and activates capability interfaces bound to that device.
type Device struct {
	sys      sysDevice
	log      zerolog.Logger
	eventCtx *ole.GUID
}

// ID returns the OS endpoint ID string for this device.
func (d *Device) ID() (string, error) {
	if d.sys == nil {
		return "", ErrClosed
	}
	id, err := d.sys.ID()
	if err != nil {
		return "", interopErr("IMMDevice::GetId", err)
	}
	return id, nil
}

// State returns the current device state flags.
func (d *Device) State() (DeviceState, error) {
	if d.sys == nil {
		return 0, ErrClosed
	}
	state, err := d.sys.State()
	if err != nil {
		return 0, interopErr("IMMDevice::GetState", err)
	}
	return state, nil
}

// EndpointVolume activates the volume-control capability for this device.
// It fails if the device does not support volume control or has been
// removed since enumeration. Release the returned Volume with Close.
func (d *Device) EndpointVolume() (*Volume, error) {
	if d.sys == nil {
		return nil, ErrClosed
	}
	sv, err := d.sys.EndpointVolume(d.eventCtx)
	if err != nil {
		return nil, interopErr("IMMDevice::Activate(IAudioEndpointVolume)", err)
	}
	d.log.Debug().Msg("endpoint volume activated")
	return &Volume{sys: sv, log: d.log}, nil
}

// Meter activates the peak-meter capability for this device.
func (d *Device) Meter() (*Meter, error) {
	if d.sys == nil {
		return nil, ErrClosed
	}
	sm, err := d.sys.Meter()
	if err != nil {
		return nil, interopErr("IMMDevice::Activate(IAudioMeterInformation)", err)
	}
	d.log.Debug().Msg("audio meter activated")
	return &Meter{sys: sm, log: d.log}, nil
}

// PropertyStore opens the device's property store with the given access
// mode. Most callers want Properties instead.
func (d *Device) PropertyStore(access StoreAccess) (*PropertyStore, error) {
	if d.sys == nil {
		return nil, ErrClosed
	}
	sp, err := d.sys.PropertyStore(access)
	if err != nil {
		return nil, interopErr("IMMDevice::OpenPropertyStore", err)
	}
	return &PropertyStore{sys: sp, log: d.log}, nil
}

// Properties opens the read-only property store and wraps it in a typed
// reader for the well-known descriptive properties.
func (d *Device) Properties() (*DeviceProperties, error) {
	store, err := d.PropertyStore(ReadOnly)
	if err != nil {
		return nil, err
	}
	return &DeviceProperties{store: store}, nil
}

// Close releases the device handle. Capability objects activated from the
// device hold their own references and stay valid.
func (d *Device) Close() error {
	if d.sys == nil {
		return nil
	}
	err := d.sys.Release()
	d.sys = nil
	if err != nil {
		return interopErr("IMMDevice::Release", err)
	}
	return nil
}
