// ABOUTME: Endpoint volume control over IAudioEndpointVolume
// ABOUTME: Explicit getter/setter pairs, every call a live OS round-trip
package coreaudio

import "github.com/rs/zerolog"

// Volume controls the master and per-channel volume of one endpoint device.
// It wraps an IAudioEndpointVolume handle.
//
// Volume keeps no local state: every getter re-queries the OS and every
// setter dispatches immediately. If the device is disconnected after
// activation, calls fail with an InteropError rather than returning stale
// values.
type Volume struct {
	sys sysVolume
	log zerolog.Logger
}

// MasterVolumeScalar returns the master volume on the 0.0 to 1.0 scale.
func (v *Volume) MasterVolumeScalar() (float32, error) {
	if v.sys == nil {
		return 0, ErrClosed
	}
	level, err := v.sys.MasterVolumeScalar()
	if err != nil {
		return 0, interopErr("IAudioEndpointVolume::GetMasterVolumeLevelScalar", err)
	}
	return level, nil
}

// SetMasterVolumeScalar sets the master volume on the 0.0 to 1.0 scale.
// Values outside the range are rejected by the OS.
func (v *Volume) SetMasterVolumeScalar(level float32) error {
	if v.sys == nil {
		return ErrClosed
	}
	if err := v.sys.SetMasterVolumeScalar(level); err != nil {
		return interopErr("IAudioEndpointVolume::SetMasterVolumeLevelScalar", err)
	}
	v.log.Debug().Float32("level", level).Msg("master volume set")
	return nil
}

// MasterVolumeDB returns the master volume in decibels.
func (v *Volume) MasterVolumeDB() (float32, error) {
	if v.sys == nil {
		return 0, ErrClosed
	}
	level, err := v.sys.MasterVolumeDB()
	if err != nil {
		return 0, interopErr("IAudioEndpointVolume::GetMasterVolumeLevel", err)
	}
	return level, nil
}

// SetMasterVolumeDB sets the master volume in decibels. The valid range is
// reported by VolumeRange.
func (v *Volume) SetMasterVolumeDB(level float32) error {
	if v.sys == nil {
		return ErrClosed
	}
	if err := v.sys.SetMasterVolumeDB(level); err != nil {
		return interopErr("IAudioEndpointVolume::SetMasterVolumeLevel", err)
	}
	v.log.Debug().Float32("db", level).Msg("master volume set")
	return nil
}

// Mute returns the current mute state.
func (v *Volume) Mute() (bool, error) {
	if v.sys == nil {
		return false, ErrClosed
	}
	muted, err := v.sys.Mute()
	if err != nil {
		return false, interopErr("IAudioEndpointVolume::GetMute", err)
	}
	return muted, nil
}

// SetMute sets the mute state. Setting the same state again is a no-op on
// the OS side.
func (v *Volume) SetMute(mute bool) error {
	if v.sys == nil {
		return ErrClosed
	}
	if err := v.sys.SetMute(mute); err != nil {
		return interopErr("IAudioEndpointVolume::SetMute", err)
	}
	v.log.Debug().Bool("mute", mute).Msg("mute set")
	return nil
}

// ChannelCount returns the number of channels in the endpoint's stream.
func (v *Volume) ChannelCount() (int, error) {
	if v.sys == nil {
		return 0, ErrClosed
	}
	n, err := v.sys.ChannelCount()
	if err != nil {
		return 0, interopErr("IAudioEndpointVolume::GetChannelCount", err)
	}
	return n, nil
}

// ChannelVolumeScalar returns one channel's volume on the 0.0 to 1.0 scale.
func (v *Volume) ChannelVolumeScalar(channel int) (float32, error) {
	if v.sys == nil {
		return 0, ErrClosed
	}
	level, err := v.sys.ChannelVolumeScalar(channel)
	if err != nil {
		return 0, interopErr("IAudioEndpointVolume::GetChannelVolumeLevelScalar", err)
	}
	return level, nil
}

// SetChannelVolumeScalar sets one channel's volume on the 0.0 to 1.0 scale.
func (v *Volume) SetChannelVolumeScalar(channel int, level float32) error {
	if v.sys == nil {
		return ErrClosed
	}
	if err := v.sys.SetChannelVolumeScalar(channel, level); err != nil {
		return interopErr("IAudioEndpointVolume::SetChannelVolumeLevelScalar", err)
	}
	v.log.Debug().Int("channel", channel).Float32("level", level).Msg("channel volume set")
	return nil
}

// VolumeStepInfo returns the endpoint's position on its volume step ladder.
func (v *Volume) VolumeStepInfo() (VolumeStepInfo, error) {
	if v.sys == nil {
		return VolumeStepInfo{}, ErrClosed
	}
	info, err := v.sys.VolumeStepInfo()
	if err != nil {
		return VolumeStepInfo{}, interopErr("IAudioEndpointVolume::GetVolumeStepInfo", err)
	}
	return info, nil
}

// VolumeStepUp raises the volume by one step.
func (v *Volume) VolumeStepUp() error {
	if v.sys == nil {
		return ErrClosed
	}
	if err := v.sys.VolumeStepUp(); err != nil {
		return interopErr("IAudioEndpointVolume::VolumeStepUp", err)
	}
	return nil
}

// VolumeStepDown lowers the volume by one step.
func (v *Volume) VolumeStepDown() error {
	if v.sys == nil {
		return ErrClosed
	}
	if err := v.sys.VolumeStepDown(); err != nil {
		return interopErr("IAudioEndpointVolume::VolumeStepDown", err)
	}
	return nil
}

// VolumeRange returns the endpoint's decibel volume range.
func (v *Volume) VolumeRange() (VolumeRange, error) {
	if v.sys == nil {
		return VolumeRange{}, ErrClosed
	}
	r, err := v.sys.VolumeRange()
	if err != nil {
		return VolumeRange{}, interopErr("IAudioEndpointVolume::GetVolumeRange", err)
	}
	return r, nil
}

// HardwareSupport reports which controls the endpoint hardware implements.
func (v *Volume) HardwareSupport() (HardwareSupport, error) {
	if v.sys == nil {
		return 0, ErrClosed
	}
	hs, err := v.sys.HardwareSupport()
	if err != nil {
		return 0, interopErr("IAudioEndpointVolume::QueryHardwareSupport", err)
	}
	return hs, nil
}

// Close releases the volume handle. It is safe to call more than once.
func (v *Volume) Close() error {
	if v.sys == nil {
		return nil
	}
	err := v.sys.Release()
	v.sys = nil
	if err != nil {
		return interopErr("IAudioEndpointVolume::Release", err)
	}
	return nil
}
