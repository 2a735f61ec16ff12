// ABOUTME: Ergonomic wrapper around the Windows CoreAudio COM interfaces
// ABOUTME: Provides device enumeration, endpoint volume and property access
// Package coreaudio provides an ergonomic Go API over the Windows CoreAudio
// COM interfaces: multimedia device enumeration, endpoint volume and mute
// control, peak metering, and device property stores.
//
// The package is a thin facade: every accessor is a live, blocking round-trip
// to the audio subsystem, nothing is cached, and all OS failures surface to
// the caller unmasked. Each wrapper type owns exactly one COM reference and
// releases it in Close, including on error paths.
//
// Handles are not safe for concurrent mutation from multiple goroutines;
// callers are responsible for serializing access to a given handle.
//
// Example:
//
//	enum, err := coreaudio.New()
//	defer enum.Close()
//
//	speaker, err := enum.Speaker()
//	defer speaker.Close()
//
//	volume, err := speaker.EndpointVolume()
//	defer volume.Close()
//	err = volume.SetMasterVolumeScalar(0.1)
//
// On non-Windows platforms the package compiles, but every constructor fails
// with an error wrapping ErrUnsupportedPlatform.
package coreaudio
