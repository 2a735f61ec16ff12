// ABOUTME: Peak meter wrapper over IAudioMeterInformation
// ABOUTME: Live peak sample values for an endpoint's stream
package coreaudio

import "github.com/rs/zerolog"

// Meter reads peak sample values for one endpoint device. It wraps an
// IAudioMeterInformation handle; every read is a live OS round-trip.
type Meter struct {
	sys sysMeter
	log zerolog.Logger
}

// PeakValue returns the peak sample value across all channels, normalized
// to the 0.0 to 1.0 range.
func (m *Meter) PeakValue() (float32, error) {
	if m.sys == nil {
		return 0, ErrClosed
	}
	peak, err := m.sys.PeakValue()
	if err != nil {
		return 0, interopErr("IAudioMeterInformation::GetPeakValue", err)
	}
	return peak, nil
}

// ChannelCount returns the number of metered channels.
func (m *Meter) ChannelCount() (int, error) {
	if m.sys == nil {
		return 0, ErrClosed
	}
	n, err := m.sys.ChannelCount()
	if err != nil {
		return 0, interopErr("IAudioMeterInformation::GetMeteringChannelCount", err)
	}
	return n, nil
}

// ChannelPeakValues returns the peak sample value of each channel.
func (m *Meter) ChannelPeakValues() ([]float32, error) {
	if m.sys == nil {
		return nil, ErrClosed
	}
	peaks, err := m.sys.ChannelPeakValues()
	if err != nil {
		return nil, interopErr("IAudioMeterInformation::GetChannelsPeakValues", err)
	}
	return peaks, nil
}

// HardwareSupport reports whether metering happens in hardware.
func (m *Meter) HardwareSupport() (HardwareSupport, error) {
	if m.sys == nil {
		return 0, ErrClosed
	}
	hs, err := m.sys.HardwareSupport()
	if err != nil {
		return 0, interopErr("IAudioMeterInformation::QueryHardwareSupport", err)
	}
	return hs, nil
}

// Close releases the meter handle.
func (m *Meter) Close() error {
	if m.sys == nil {
		return nil
	}
	err := m.sys.Release()
	m.sys = nil
	if err != nil {
		return interopErr("IAudioMeterInformation::Release", err)
	}
	return nil
}
