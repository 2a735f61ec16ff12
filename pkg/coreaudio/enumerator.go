// ABOUTME: Device enumerator over the MMDeviceEnumerator COM service
// ABOUTME: Default endpoint lookup and restartable device collections
package coreaudio

import (
	"github.com/go-ole/go-ole"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Enumerator lists and filters the audio endpoint devices exposed by the OS
// audio subsystem. It wraps the MMDeviceEnumerator COM service.
type Enumerator struct {
	sys      sysEnumerator
	log      zerolog.Logger
	eventCtx *ole.GUID
	events   bool
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithLogger attaches a logger. The default logger discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Enumerator) {
		e.log = log
	}
}

// WithEventContext tags every volume change made through this enumerator's
// devices with the given GUID, so change notifications can be told apart
// from other applications' changes.
func WithEventContext(id uuid.UUID) Option {
	return func(e *Enumerator) {
		e.eventCtx = ole.NewGUID(id.String())
	}
}

// New acquires a handle to the OS device-enumeration service. The returned
// Enumerator must be released with Close.
func New(opts ...Option) (*Enumerator, error) {
	e := &Enumerator{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	sys, err := newSystemEnumerator()
	if err != nil {
		return nil, err
	}
	e.sys = sys

	e.log.Debug().Msg("device enumerator created")
	return e, nil
}

// DefaultDevice returns the default endpoint for a data flow and role.
// It returns ErrDeviceNotAvailable when no device is bound to the role.
func (e *Enumerator) DefaultDevice(flow DataFlow, role Role) (*Device, error) {
	if e.sys == nil {
		return nil, ErrClosed
	}
	sd, err := e.sys.DefaultEndpoint(flow, role)
	if err != nil {
		return nil, interopErr("IMMDeviceEnumerator::GetDefaultAudioEndpoint", err)
	}
	e.log.Debug().Stringer("flow", flow).Stringer("role", role).Msg("default endpoint acquired")
	return e.newDevice(sd), nil
}

// Speaker returns the default playback device.
func (e *Enumerator) Speaker() (*Device, error) {
	return e.DefaultDevice(Render, Multimedia)
}

// Microphone returns the default capture device.
func (e *Enumerator) Microphone() (*Device, error) {
	return e.DefaultDevice(Capture, Multimedia)
}

// Devices returns the collection of endpoints matching a data flow and state
// mask. The collection re-queries the OS on every access, so iterating it is
// restartable. Release it with Close.
func (e *Enumerator) Devices(flow DataFlow, state DeviceState) (*DeviceCollection, error) {
	if e.sys == nil {
		return nil, ErrClosed
	}
	sc, err := e.sys.EnumEndpoints(flow, state)
	if err != nil {
		return nil, interopErr("IMMDeviceEnumerator::EnumAudioEndpoints", err)
	}
	e.log.Debug().Stringer("flow", flow).Stringer("state", state).Msg("endpoints enumerated")
	return &DeviceCollection{sys: sc, enum: e}, nil
}

// Speakers returns all active playback devices.
func (e *Enumerator) Speakers() (*DeviceCollection, error) {
	return e.Devices(Render, DeviceActive)
}

// Microphones returns all active capture devices.
func (e *Enumerator) Microphones() (*DeviceCollection, error) {
	return e.Devices(Capture, DeviceActive)
}

// DeviceByID returns the endpoint with the given endpoint ID string.
func (e *Enumerator) DeviceByID(id string) (*Device, error) {
	if e.sys == nil {
		return nil, ErrClosed
	}
	sd, err := e.sys.Endpoint(id)
	if err != nil {
		return nil, interopErr("IMMDeviceEnumerator::GetDevice", err)
	}
	return e.newDevice(sd), nil
}

// RegisterDeviceEvents registers callbacks for endpoint arrival, removal,
// state and default-device changes. Only one registration may be active per
// Enumerator. Callbacks are invoked from an OS thread; the caller is
// responsible for any serialization.
func (e *Enumerator) RegisterDeviceEvents(ev *DeviceEvents) error {
	if e.sys == nil {
		return ErrClosed
	}
	if e.events {
		return ErrEventsRegistered
	}
	if err := e.sys.RegisterEvents(ev); err != nil {
		return interopErr("IMMDeviceEnumerator::RegisterEndpointNotificationCallback", err)
	}
	e.events = true
	e.log.Debug().Msg("device event callbacks registered")
	return nil
}

// UnregisterDeviceEvents removes a previous RegisterDeviceEvents
// registration.
func (e *Enumerator) UnregisterDeviceEvents() error {
	if e.sys == nil {
		return ErrClosed
	}
	if !e.events {
		return nil
	}
	if err := e.sys.UnregisterEvents(); err != nil {
		return interopErr("IMMDeviceEnumerator::UnregisterEndpointNotificationCallback", err)
	}
	e.events = false
	return nil
}

// Close releases the enumeration service handle. It is safe to call more
// than once.
func (e *Enumerator) Close() error {
	if e.sys == nil {
		return nil
	}
	if e.events {
		if err := e.UnregisterDeviceEvents(); err != nil {
			e.log.Debug().Err(err).Msg("failed to unregister device events on close")
		}
	}
	err := e.sys.Release()
	e.sys = nil
	if err != nil {
		return interopErr("IMMDeviceEnumerator::Release", err)
	}
	e.log.Debug().Msg("device enumerator released")
	return nil
}

func (e *Enumerator) newDevice(sd sysDevice) *Device {
	return &Device{sys: sd, log: e.log, eventCtx: e.eventCtx}
}

// DeviceCollection is a finite, restartable sequence of endpoint devices.
// Count and Item are live calls against the underlying OS collection handle.
type DeviceCollection struct {
	sys  sysCollection
	enum *Enumerator
}

// Count returns the number of devices in the collection.
func (c *DeviceCollection) Count() (int, error) {
	if c.sys == nil {
		return 0, ErrClosed
	}
	n, err := c.sys.Count()
	if err != nil {
		return 0, interopErr("IMMDeviceCollection::GetCount", err)
	}
	return n, nil
}

// Item returns the device at the given index. Each returned Device holds its
// own handle and must be released with Close.
func (c *DeviceCollection) Item(i int) (*Device, error) {
	if c.sys == nil {
		return nil, ErrClosed
	}
	sd, err := c.sys.Item(i)
	if err != nil {
		return nil, interopErr("IMMDeviceCollection::Item", err)
	}
	return c.enum.newDevice(sd), nil
}

// Devices materializes the collection into a slice. The caller owns the
// returned devices and must Close each one.
func (c *DeviceCollection) Devices() ([]*Device, error) {
	n, err := c.Count()
	if err != nil {
		return nil, err
	}
	devices := make([]*Device, 0, n)
	for i := 0; i < n; i++ {
		d, err := c.Item(i)
		if err != nil {
			for _, open := range devices {
				open.Close()
			}
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// Close releases the collection handle. Devices obtained from the collection
// stay valid; they hold their own references.
func (c *DeviceCollection) Close() error {
	if c.sys == nil {
		return nil
	}
	err := c.sys.Release()
	c.sys = nil
	if err != nil {
		return interopErr("IMMDeviceCollection::Release", err)
	}
	return nil
}
