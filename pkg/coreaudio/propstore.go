// ABOUTME: Device property store wrapper over IPropertyStore
// ABOUTME: Typed reader for well-known descriptive device properties
package coreaudio

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// PropertyKey identifies a well-known device property.
type PropertyKey int

const (
	// PropFriendlyName is the endpoint's display name, for example
	// "Speakers (Realtek High Definition Audio)".
	PropFriendlyName PropertyKey = iota

	// PropDeviceDescription is the endpoint's short description, for
	// example "Speakers".
	PropDeviceDescription

	// PropInterfaceFriendlyName names the audio adapter the endpoint is
	// attached to.
	PropInterfaceFriendlyName
)

func (k PropertyKey) String() string {
	switch k {
	case PropFriendlyName:
		return "PKEY_Device_FriendlyName"
	case PropDeviceDescription:
		return "PKEY_Device_DeviceDesc"
	case PropInterfaceFriendlyName:
		return "PKEY_DeviceInterface_FriendlyName"
	}
	return "unknown"
}

// PropertyStore is a key to value mapping of device metadata, queried on
// demand from the OS. It wraps an IPropertyStore handle.
type PropertyStore struct {
	sys sysPropertyStore
	log zerolog.Logger
}

// Count returns the number of properties in the store.
func (s *PropertyStore) Count() (int, error) {
	if s.sys == nil {
		return 0, ErrClosed
	}
	n, err := s.sys.Count()
	if err != nil {
		return 0, interopErr("IPropertyStore::GetCount", err)
	}
	return n, nil
}

// StringValue looks up a well-known property key and decodes it to a
// string. A key absent from the store fails with ErrPropertyNotFound; it is
// never decoded to an empty value.
func (s *PropertyStore) StringValue(key PropertyKey) (string, error) {
	if s.sys == nil {
		return "", ErrClosed
	}
	value, err := s.sys.StringValue(key)
	if err != nil {
		if errors.Is(err, ErrPropertyNotFound) {
			return "", fmt.Errorf("%v: %w", key, ErrPropertyNotFound)
		}
		return "", interopErr("IPropertyStore::GetValue", err)
	}
	return value, nil
}

// Close releases the property store handle.
func (s *PropertyStore) Close() error {
	if s.sys == nil {
		return nil
	}
	err := s.sys.Release()
	s.sys = nil
	if err != nil {
		return interopErr("IPropertyStore::Release", err)
	}
	return nil
}

// DeviceProperties reads the well-known read-only descriptive properties of
// a device from its property store.
type DeviceProperties struct {
	store *PropertyStore
}

// NewDeviceProperties wraps an already-open property store. The reader takes
// ownership: closing it closes the store.
func NewDeviceProperties(store *PropertyStore) *DeviceProperties {
	return &DeviceProperties{store: store}
}

// FriendlyName returns the endpoint's display name.
func (p *DeviceProperties) FriendlyName() (string, error) {
	return p.store.StringValue(PropFriendlyName)
}

// Description returns the endpoint's short description.
func (p *DeviceProperties) Description() (string, error) {
	return p.store.StringValue(PropDeviceDescription)
}

// InterfaceFriendlyName returns the name of the adapter the endpoint is
// attached to.
func (p *DeviceProperties) InterfaceFriendlyName() (string, error) {
	return p.store.StringValue(PropInterfaceFriendlyName)
}

// Close releases the underlying property store.
func (p *DeviceProperties) Close() error {
	return p.store.Close()
}
