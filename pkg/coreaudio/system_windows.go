//go:build windows

// ABOUTME: Windows backend over go-wca and go-ole COM bindings
// ABOUTME: One COM apartment reference per enumerator, released on Close
package coreaudio

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

const (
	// S_FALSE from CoInitializeEx means the apartment was already
	// initialized on this thread; the reference still needs an
	// CoUninitialize, so it is not a failure.
	hrAlreadyInitialized = 0x00000001

	// HRESULT_FROM_WIN32(ERROR_NOT_FOUND): no default endpoint for the
	// requested role, or no element with the requested key.
	hrNotFound = 0x80070490
)

func isOleCode(err error, code uintptr) bool {
	oleErr, ok := err.(*ole.OleError)
	return ok && oleErr.Code() == code
}

func newSystemEnumerator() (sysEnumerator, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		if !isOleCode(err, hrAlreadyInitialized) {
			return nil, &InteropError{Op: "CoInitializeEx", Err: err}
		}
	}

	var mmde *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde); err != nil {
		ole.CoUninitialize()
		return nil, &InteropError{Op: "CoCreateInstance(MMDeviceEnumerator)", Err: err}
	}

	return &wcaEnumerator{mmde: mmde}, nil
}

type wcaEnumerator struct {
	mmde   *wca.IMMDeviceEnumerator
	client *wca.IMMNotificationClient
}

func (e *wcaEnumerator) DefaultEndpoint(flow DataFlow, role Role) (sysDevice, error) {
	var mmd *wca.IMMDevice
	if err := e.mmde.GetDefaultAudioEndpoint(wcaDataFlow(flow), wcaRole(role), &mmd); err != nil {
		if isOleCode(err, hrNotFound) {
			return nil, fmt.Errorf("no default %v endpoint for role %v: %w", flow, role, ErrDeviceNotAvailable)
		}
		return nil, err
	}
	return &wcaDevice{mmd: mmd}, nil
}

func (e *wcaEnumerator) EnumEndpoints(flow DataFlow, state DeviceState) (sysCollection, error) {
	var mmdc *wca.IMMDeviceCollection
	// DeviceState flag values match the DEVICE_STATE_* mask bits.
	if err := e.mmde.EnumAudioEndpoints(wcaDataFlow(flow), uint32(state), &mmdc); err != nil {
		return nil, err
	}
	return &wcaCollection{mmdc: mmdc}, nil
}

func (e *wcaEnumerator) Endpoint(id string) (sysDevice, error) {
	wide, err := syscall.UTF16PtrFromString(id)
	if err != nil {
		return nil, err
	}

	// go-wca's IMMDeviceEnumerator::GetDevice binding is an E_NOTIMPL
	// stub, so the vtable slot is called directly.
	var mmd *wca.IMMDevice
	hr, _, _ := syscall.Syscall(
		e.mmde.VTable().GetDevice,
		3,
		uintptr(unsafe.Pointer(e.mmde)),
		uintptr(unsafe.Pointer(wide)),
		uintptr(unsafe.Pointer(&mmd)))
	if hr != 0 {
		if hr == hrNotFound {
			return nil, fmt.Errorf("no endpoint with id %q: %w", id, ErrDeviceNotAvailable)
		}
		return nil, ole.NewError(hr)
	}
	return &wcaDevice{mmd: mmd}, nil
}

func (e *wcaEnumerator) RegisterEvents(ev *DeviceEvents) error {
	callback := wca.IMMNotificationClientCallback{
		OnDeviceAdded: func(deviceID string) error {
			if ev.DeviceAdded != nil {
				ev.DeviceAdded(deviceID)
			}
			return nil
		},
		OnDeviceRemoved: func(deviceID string) error {
			if ev.DeviceRemoved != nil {
				ev.DeviceRemoved(deviceID)
			}
			return nil
		},
		OnDeviceStateChanged: func(deviceID string, state uint64) error {
			if ev.DeviceStateChanged != nil {
				ev.DeviceStateChanged(deviceID, DeviceState(state))
			}
			return nil
		},
		OnDefaultDeviceChanged: func(flow wca.EDataFlow, role wca.ERole, deviceID string) error {
			if ev.DefaultDeviceChanged != nil {
				ev.DefaultDeviceChanged(DataFlow(flow), Role(role), deviceID)
			}
			return nil
		},
		OnPropertyValueChanged: func(deviceID string, key uint64) error {
			if ev.PropertyValueChanged != nil {
				ev.PropertyValueChanged(deviceID)
			}
			return nil
		},
	}

	client := wca.NewIMMNotificationClient(callback)
	if err := e.mmde.RegisterEndpointNotificationCallback(client); err != nil {
		return err
	}
	e.client = client
	return nil
}

func (e *wcaEnumerator) UnregisterEvents() error {
	if e.client == nil {
		return nil
	}
	err := e.mmde.UnregisterEndpointNotificationCallback(e.client)
	e.client = nil
	return err
}

func (e *wcaEnumerator) Release() error {
	e.mmde.Release()
	ole.CoUninitialize()
	return nil
}

type wcaDevice struct {
	mmd *wca.IMMDevice
}

func (d *wcaDevice) ID() (string, error) {
	var id string
	if err := d.mmd.GetId(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (d *wcaDevice) State() (DeviceState, error) {
	var state uint32
	if err := d.mmd.GetState(&state); err != nil {
		return 0, err
	}
	return DeviceState(state), nil
}

func (d *wcaDevice) EndpointVolume(eventCtx *ole.GUID) (sysVolume, error) {
	var aev *wca.IAudioEndpointVolume
	if err := d.mmd.Activate(wca.IID_IAudioEndpointVolume, wca.CLSCTX_ALL, nil, &aev); err != nil {
		return nil, err
	}
	return &wcaVolume{aev: aev, eventCtx: eventCtx}, nil
}

func (d *wcaDevice) Meter() (sysMeter, error) {
	return activateMeter(d.mmd)
}

func (d *wcaDevice) PropertyStore(access StoreAccess) (sysPropertyStore, error) {
	var ps *wca.IPropertyStore
	if err := d.mmd.OpenPropertyStore(wcaStgm(access), &ps); err != nil {
		return nil, err
	}
	return &wcaPropertyStore{ps: ps}, nil
}

func (d *wcaDevice) Release() error {
	d.mmd.Release()
	return nil
}

type wcaCollection struct {
	mmdc *wca.IMMDeviceCollection
}

func (c *wcaCollection) Count() (int, error) {
	var n uint32
	if err := c.mmdc.GetCount(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (c *wcaCollection) Item(i int) (sysDevice, error) {
	var mmd *wca.IMMDevice
	if err := c.mmdc.Item(uint32(i), &mmd); err != nil {
		return nil, err
	}
	return &wcaDevice{mmd: mmd}, nil
}

func (c *wcaCollection) Release() error {
	c.mmdc.Release()
	return nil
}

type wcaVolume struct {
	aev      *wca.IAudioEndpointVolume
	eventCtx *ole.GUID
}

func (v *wcaVolume) MasterVolumeScalar() (float32, error) {
	var level float32
	if err := v.aev.GetMasterVolumeLevelScalar(&level); err != nil {
		return 0, err
	}
	return level, nil
}

func (v *wcaVolume) SetMasterVolumeScalar(level float32) error {
	return v.aev.SetMasterVolumeLevelScalar(level, v.eventCtx)
}

func (v *wcaVolume) MasterVolumeDB() (float32, error) {
	var level float32
	if err := v.aev.GetMasterVolumeLevel(&level); err != nil {
		return 0, err
	}
	return level, nil
}

func (v *wcaVolume) SetMasterVolumeDB(level float32) error {
	return v.aev.SetMasterVolumeLevel(level, v.eventCtx)
}

func (v *wcaVolume) Mute() (bool, error) {
	var muted bool
	if err := v.aev.GetMute(&muted); err != nil {
		return false, err
	}
	return muted, nil
}

func (v *wcaVolume) SetMute(mute bool) error {
	return v.aev.SetMute(mute, v.eventCtx)
}

func (v *wcaVolume) ChannelCount() (int, error) {
	var n uint32
	if err := v.aev.GetChannelCount(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (v *wcaVolume) ChannelVolumeScalar(ch int) (float32, error) {
	var level float32
	if err := v.aev.GetChannelVolumeLevelScalar(uint32(ch), &level); err != nil {
		return 0, err
	}
	return level, nil
}

func (v *wcaVolume) SetChannelVolumeScalar(ch int, level float32) error {
	return v.aev.SetChannelVolumeLevelScalar(uint32(ch), level, v.eventCtx)
}

func (v *wcaVolume) VolumeStepInfo() (VolumeStepInfo, error) {
	var step, count uint32
	if err := v.aev.GetVolumeStepInfo(&step, &count); err != nil {
		return VolumeStepInfo{}, err
	}
	return VolumeStepInfo{Step: int(step), StepCount: int(count)}, nil
}

func (v *wcaVolume) VolumeStepUp() error {
	return v.aev.VolumeStepUp(v.eventCtx)
}

func (v *wcaVolume) VolumeStepDown() error {
	return v.aev.VolumeStepDown(v.eventCtx)
}

func (v *wcaVolume) VolumeRange() (VolumeRange, error) {
	var min, max, inc float32
	if err := v.aev.GetVolumeRange(&min, &max, &inc); err != nil {
		return VolumeRange{}, err
	}
	return VolumeRange{MinDB: min, MaxDB: max, IncrementDB: inc}, nil
}

func (v *wcaVolume) HardwareSupport() (HardwareSupport, error) {
	var mask uint32
	if err := v.aev.QueryHardwareSupport(&mask); err != nil {
		return 0, err
	}
	return HardwareSupport(mask), nil
}

func (v *wcaVolume) Release() error {
	v.aev.Release()
	return nil
}

type wcaPropertyStore struct {
	ps *wca.IPropertyStore
}

func (s *wcaPropertyStore) Count() (int, error) {
	var n uint32
	if err := s.ps.GetCount(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *wcaPropertyStore) StringValue(key PropertyKey) (string, error) {
	pkey, err := wcaPropertyKey(key)
	if err != nil {
		return "", err
	}

	var pv wca.PROPVARIANT
	if err := s.ps.GetValue(pkey, &pv); err != nil {
		if isOleCode(err, hrNotFound) {
			return "", ErrPropertyNotFound
		}
		return "", err
	}
	return propvariantString(&pv)
}

// propvariantString decodes a PROPVARIANT returned by GetValue. The call
// reports success with VT_EMPTY for keys absent from the store; surface
// that as a missing property, not an empty string.
func propvariantString(pv *wca.PROPVARIANT) (string, error) {
	if pv.VT == ole.VT_EMPTY {
		return "", ErrPropertyNotFound
	}
	return pv.String(), nil
}

func (s *wcaPropertyStore) Release() error {
	s.ps.Release()
	return nil
}

func wcaDataFlow(f DataFlow) uint32 {
	switch f {
	case Render:
		return uint32(wca.ERender)
	case Capture:
		return uint32(wca.ECapture)
	default:
		return uint32(wca.EAll)
	}
}

func wcaRole(r Role) uint32 {
	switch r {
	case Console:
		return uint32(wca.EConsole)
	case Communications:
		return uint32(wca.ECommunications)
	default:
		return uint32(wca.EMultimedia)
	}
}

func wcaStgm(access StoreAccess) uint32 {
	if access == ReadWrite {
		return uint32(wca.STGM_READ_WRITE)
	}
	return uint32(wca.STGM_READ)
}

func wcaPropertyKey(key PropertyKey) (*wca.PROPERTYKEY, error) {
	switch key {
	case PropFriendlyName:
		return &wca.PKEY_Device_FriendlyName, nil
	case PropDeviceDescription:
		return &wca.PKEY_Device_DeviceDesc, nil
	case PropInterfaceFriendlyName:
		return &wca.PKEY_DeviceInterface_FriendlyName, nil
	default:
		return nil, fmt.Errorf("unknown property key %d: %w", int(key), ErrPropertyNotFound)
	}
}
