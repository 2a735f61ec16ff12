// ABOUTME: Endpoint notification callbacks (IMMNotificationClient)
// ABOUTME: Device arrival, removal, state and default-device changes
package coreaudio

// DeviceEvents receives endpoint notifications registered through
// Enumerator.RegisterDeviceEvents. Nil fields are skipped.
//
// The OS invokes these callbacks from its own thread while holding internal
// locks, so they should return quickly and must not call back into the
// enumerator that registered them.
type DeviceEvents struct {
	// DeviceAdded is called when an endpoint device is added.
	DeviceAdded func(deviceID string)

	// DeviceRemoved is called when an endpoint device is removed.
	DeviceRemoved func(deviceID string)

	// DeviceStateChanged is called when an endpoint changes state, for
	// example when it is unplugged.
	DeviceStateChanged func(deviceID string, state DeviceState)

	// DefaultDeviceChanged is called when the default endpoint for a data
	// flow and role changes. deviceID is empty when the role no longer has
	// a default device.
	DefaultDeviceChanged func(flow DataFlow, role Role, deviceID string)

	// PropertyValueChanged is called when a value in an endpoint's
	// property store changes.
	PropertyValueChanged func(deviceID string)
}
