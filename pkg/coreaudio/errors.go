// ABOUTME: Error taxonomy for the CoreAudio wrapper
// ABOUTME: Interop failures, missing properties, missing devices
package coreaudio

import "errors"

var (
	// ErrDeviceNotAvailable is returned when a requested role (for example
	// the default speaker) has no bound endpoint device.
	ErrDeviceNotAvailable = errors.New("no device available for the requested role")

	// ErrPropertyNotFound is returned when a property key is absent from a
	// device property store. Absent keys never decode to an empty value.
	ErrPropertyNotFound = errors.New("property not found in store")

	// ErrClosed is returned when a handle is used after Close.
	ErrClosed = errors.New("handle is closed")

	// ErrEventsRegistered is returned by RegisterDeviceEvents when the
	// Enumerator already has an active registration.
	ErrEventsRegistered = errors.New("device events already registered")

	// ErrUnsupportedPlatform is returned by constructors on non-Windows
	// builds, wrapped in an InteropError.
	ErrUnsupportedPlatform = errors.New("coreaudio is only available on windows")
)

// InteropError reports a failed call into the OS audio subsystem. Op names
// the COM method that failed; Err carries the underlying OS error.
type InteropError struct {
	Op  string
	Err error
}

func (e *InteropError) Error() string {
	return "coreaudio: " + e.Op + ": " + e.Err.Error()
}

func (e *InteropError) Unwrap() error {
	return e.Err
}

// interopErr wraps an OS-level failure, leaving taxonomy sentinels intact so
// callers can still match them with errors.Is.
func interopErr(op string, err error) error {
	if errors.Is(err, ErrDeviceNotAvailable) || errors.Is(err, ErrPropertyNotFound) {
		return err
	}
	return &InteropError{Op: op, Err: err}
}
