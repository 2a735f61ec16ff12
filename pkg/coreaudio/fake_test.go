// ABOUTME: Fake backend standing in for the OS audio subsystem in tests
// ABOUTME: Mirrors CoreAudio behavior including E_INVALIDARG and stale handles
package coreaudio

import (
	"errors"
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/rs/zerolog"
)

var (
	errInvalidArg        = errors.New("E_INVALIDARG")
	errDeviceInvalidated = errors.New("AUDCLNT_E_DEVICE_INVALIDATED")
)

// fakeEndpoint is the state the fake OS keeps per endpoint device.
type fakeEndpoint struct {
	id    string
	flow  DataFlow
	state DeviceState

	volume   float32
	volumeDB float32
	muted    bool
	channels []float32
	step     int
	steps    int

	props map[PropertyKey]string
	peaks []float32

	// disconnected simulates the device vanishing after a handle was
	// handed out; every later call on such a handle fails.
	disconnected bool
	noVolume     bool
}

func speakerEndpoint(id string) *fakeEndpoint {
	return &fakeEndpoint{
		id:       id,
		flow:     Render,
		state:    DeviceActive,
		volume:   0.5,
		channels: []float32{0.5, 0.5},
		step:     5,
		steps:    11,
		props: map[PropertyKey]string{
			PropFriendlyName:      "Speakers (Fake Audio Adapter)",
			PropDeviceDescription: "Speakers",
		},
		peaks: []float32{0.1, 0.2},
	}
}

func micEndpoint(id string) *fakeEndpoint {
	ep := speakerEndpoint(id)
	ep.flow = Capture
	ep.props[PropFriendlyName] = "Microphone (Fake Audio Adapter)"
	ep.props[PropDeviceDescription] = "Microphone"
	return ep
}

// fakeEnumerator implements sysEnumerator over a mutable endpoint list.
type fakeEnumerator struct {
	endpoints []*fakeEndpoint
	events    *DeviceEvents
	released  bool
}

func (f *fakeEnumerator) DefaultEndpoint(flow DataFlow, role Role) (sysDevice, error) {
	for _, ep := range f.endpoints {
		if ep.state == DeviceActive && (flow == All || ep.flow == flow) {
			return &fakeDevice{ep: ep}, nil
		}
	}
	return nil, fmt.Errorf("no default %v endpoint: %w", flow, ErrDeviceNotAvailable)
}

func (f *fakeEnumerator) EnumEndpoints(flow DataFlow, state DeviceState) (sysCollection, error) {
	return &fakeCollection{enum: f, flow: flow, state: state}, nil
}

func (f *fakeEnumerator) Endpoint(id string) (sysDevice, error) {
	for _, ep := range f.endpoints {
		if ep.id == id {
			return &fakeDevice{ep: ep}, nil
		}
	}
	return nil, fmt.Errorf("no endpoint with id %q: %w", id, ErrDeviceNotAvailable)
}

func (f *fakeEnumerator) RegisterEvents(ev *DeviceEvents) error {
	f.events = ev
	return nil
}

func (f *fakeEnumerator) UnregisterEvents() error {
	f.events = nil
	return nil
}

func (f *fakeEnumerator) Release() error {
	f.released = true
	return nil
}

// addEndpoint simulates device arrival, firing callbacks like the OS does.
func (f *fakeEnumerator) addEndpoint(ep *fakeEndpoint) {
	f.endpoints = append(f.endpoints, ep)
	if f.events != nil && f.events.DeviceAdded != nil {
		f.events.DeviceAdded(ep.id)
	}
}

// fakeCollection re-evaluates the enumerator's endpoint list on every call,
// like a live IMMDeviceCollection handle.
type fakeCollection struct {
	enum  *fakeEnumerator
	flow  DataFlow
	state DeviceState
}

func (c *fakeCollection) matching() []*fakeEndpoint {
	var out []*fakeEndpoint
	for _, ep := range c.enum.endpoints {
		if c.flow != All && ep.flow != c.flow {
			continue
		}
		if ep.state&c.state == 0 {
			continue
		}
		out = append(out, ep)
	}
	return out
}

func (c *fakeCollection) Count() (int, error) {
	return len(c.matching()), nil
}

func (c *fakeCollection) Item(i int) (sysDevice, error) {
	eps := c.matching()
	if i < 0 || i >= len(eps) {
		return nil, errInvalidArg
	}
	return &fakeDevice{ep: eps[i]}, nil
}

func (c *fakeCollection) Release() error {
	return nil
}

type fakeDevice struct {
	ep *fakeEndpoint
}

func (d *fakeDevice) ID() (string, error) {
	if d.ep.disconnected {
		return "", errDeviceInvalidated
	}
	return d.ep.id, nil
}

func (d *fakeDevice) State() (DeviceState, error) {
	if d.ep.disconnected {
		return DeviceNotPresent, nil
	}
	return d.ep.state, nil
}

func (d *fakeDevice) EndpointVolume(eventCtx *ole.GUID) (sysVolume, error) {
	if d.ep.disconnected {
		return nil, errDeviceInvalidated
	}
	if d.ep.noVolume {
		return nil, errors.New("E_NOINTERFACE")
	}
	return &fakeVolume{ep: d.ep}, nil
}

func (d *fakeDevice) Meter() (sysMeter, error) {
	if d.ep.disconnected {
		return nil, errDeviceInvalidated
	}
	return &fakeMeter{ep: d.ep}, nil
}

func (d *fakeDevice) PropertyStore(access StoreAccess) (sysPropertyStore, error) {
	if d.ep.disconnected {
		return nil, errDeviceInvalidated
	}
	return &fakePropertyStore{ep: d.ep}, nil
}

func (d *fakeDevice) Release() error {
	return nil
}

// fakeVolume holds no volume state of its own; like the real interface it
// reads and writes the device (the fake OS) on every call.
type fakeVolume struct {
	ep *fakeEndpoint
}

func (v *fakeVolume) check() error {
	if v.ep.disconnected {
		return errDeviceInvalidated
	}
	return nil
}

func (v *fakeVolume) MasterVolumeScalar() (float32, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	return v.ep.volume, nil
}

func (v *fakeVolume) SetMasterVolumeScalar(level float32) error {
	if err := v.check(); err != nil {
		return err
	}
	if level < 0 || level > 1 {
		return errInvalidArg
	}
	v.ep.volume = level
	return nil
}

func (v *fakeVolume) MasterVolumeDB() (float32, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	return v.ep.volumeDB, nil
}

func (v *fakeVolume) SetMasterVolumeDB(level float32) error {
	if err := v.check(); err != nil {
		return err
	}
	v.ep.volumeDB = level
	return nil
}

func (v *fakeVolume) Mute() (bool, error) {
	if err := v.check(); err != nil {
		return false, err
	}
	return v.ep.muted, nil
}

func (v *fakeVolume) SetMute(mute bool) error {
	if err := v.check(); err != nil {
		return err
	}
	v.ep.muted = mute
	return nil
}

func (v *fakeVolume) ChannelCount() (int, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	return len(v.ep.channels), nil
}

func (v *fakeVolume) ChannelVolumeScalar(ch int) (float32, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	if ch < 0 || ch >= len(v.ep.channels) {
		return 0, errInvalidArg
	}
	return v.ep.channels[ch], nil
}

func (v *fakeVolume) SetChannelVolumeScalar(ch int, level float32) error {
	if err := v.check(); err != nil {
		return err
	}
	if ch < 0 || ch >= len(v.ep.channels) || level < 0 || level > 1 {
		return errInvalidArg
	}
	v.ep.channels[ch] = level
	return nil
}

func (v *fakeVolume) VolumeStepInfo() (VolumeStepInfo, error) {
	if err := v.check(); err != nil {
		return VolumeStepInfo{}, err
	}
	return VolumeStepInfo{Step: v.ep.step, StepCount: v.ep.steps}, nil
}

func (v *fakeVolume) VolumeStepUp() error {
	if err := v.check(); err != nil {
		return err
	}
	if v.ep.step < v.ep.steps-1 {
		v.ep.step++
	}
	return nil
}

func (v *fakeVolume) VolumeStepDown() error {
	if err := v.check(); err != nil {
		return err
	}
	if v.ep.step > 0 {
		v.ep.step--
	}
	return nil
}

func (v *fakeVolume) VolumeRange() (VolumeRange, error) {
	if err := v.check(); err != nil {
		return VolumeRange{}, err
	}
	return VolumeRange{MinDB: -63.5, MaxDB: 0, IncrementDB: 0.5}, nil
}

func (v *fakeVolume) HardwareSupport() (HardwareSupport, error) {
	if err := v.check(); err != nil {
		return 0, err
	}
	return HardwareSupportVolume | HardwareSupportMute, nil
}

func (v *fakeVolume) Release() error {
	return nil
}

type fakeMeter struct {
	ep *fakeEndpoint
}

func (m *fakeMeter) PeakValue() (float32, error) {
	if m.ep.disconnected {
		return 0, errDeviceInvalidated
	}
	var peak float32
	for _, p := range m.ep.peaks {
		if p > peak {
			peak = p
		}
	}
	return peak, nil
}

func (m *fakeMeter) ChannelCount() (int, error) {
	if m.ep.disconnected {
		return 0, errDeviceInvalidated
	}
	return len(m.ep.peaks), nil
}

func (m *fakeMeter) ChannelPeakValues() ([]float32, error) {
	if m.ep.disconnected {
		return nil, errDeviceInvalidated
	}
	out := make([]float32, len(m.ep.peaks))
	copy(out, m.ep.peaks)
	return out, nil
}

func (m *fakeMeter) HardwareSupport() (HardwareSupport, error) {
	return HardwareSupportMeter, nil
}

func (m *fakeMeter) Release() error {
	return nil
}

type fakePropertyStore struct {
	ep *fakeEndpoint
}

func (s *fakePropertyStore) Count() (int, error) {
	if s.ep.disconnected {
		return 0, errDeviceInvalidated
	}
	return len(s.ep.props), nil
}

func (s *fakePropertyStore) StringValue(key PropertyKey) (string, error) {
	if s.ep.disconnected {
		return "", errDeviceInvalidated
	}
	value, ok := s.ep.props[key]
	if !ok {
		return "", ErrPropertyNotFound
	}
	return value, nil
}

func (s *fakePropertyStore) Release() error {
	return nil
}

// newTestEnumerator wires an Enumerator to a fake backend.
func newTestEnumerator(endpoints ...*fakeEndpoint) (*Enumerator, *fakeEnumerator) {
	fake := &fakeEnumerator{endpoints: endpoints}
	return &Enumerator{sys: fake, log: zerolog.Nop()}, fake
}
