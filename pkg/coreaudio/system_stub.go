//go:build !windows

// ABOUTME: Non-Windows stub backend
// ABOUTME: Compiles everywhere, constructors fail with ErrUnsupportedPlatform
package coreaudio

func newSystemEnumerator() (sysEnumerator, error) {
	return nil, &InteropError{Op: "CoCreateInstance(MMDeviceEnumerator)", Err: ErrUnsupportedPlatform}
}
