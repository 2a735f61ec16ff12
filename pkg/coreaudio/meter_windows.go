//go:build windows

// ABOUTME: Hand-declared IAudioMeterInformation COM interface over go-ole
// ABOUTME: Vtable calls for peak values, channel counts and hardware support
package coreaudio

import (
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
)

// iidAudioMeterInformation identifies the endpoint peak meter interface.
// https://learn.microsoft.com/en-us/windows/win32/api/endpointvolume/nn-endpointvolume-iaudiometerinformation
var iidAudioMeterInformation = ole.NewGUID("{C02216F6-8C67-4B5B-9D00-D008E73E0064}")

type audioMeterInformation struct {
	ole.IUnknown
}

type audioMeterInformationVtbl struct {
	ole.IUnknownVtbl
	GetPeakValue            uintptr
	GetMeteringChannelCount uintptr
	GetChannelsPeakValues   uintptr
	QueryHardwareSupport    uintptr
}

func (v *audioMeterInformation) VTable() *audioMeterInformationVtbl {
	return (*audioMeterInformationVtbl)(unsafe.Pointer(v.RawVTable))
}

func activateMeter(mmd *wca.IMMDevice) (sysMeter, error) {
	var ami *audioMeterInformation
	if err := mmd.Activate(iidAudioMeterInformation, wca.CLSCTX_ALL, nil, &ami); err != nil {
		return nil, err
	}
	return ami, nil
}

func (v *audioMeterInformation) PeakValue() (float32, error) {
	var peak float32
	hr, _, _ := syscall.Syscall(
		v.VTable().GetPeakValue,
		2,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(&peak)),
		0)
	if hr != 0 {
		return 0, ole.NewError(hr)
	}
	return peak, nil
}

func (v *audioMeterInformation) ChannelCount() (int, error) {
	var count uint32
	hr, _, _ := syscall.Syscall(
		v.VTable().GetMeteringChannelCount,
		2,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(&count)),
		0)
	if hr != 0 {
		return 0, ole.NewError(hr)
	}
	return int(count), nil
}

func (v *audioMeterInformation) ChannelPeakValues() ([]float32, error) {
	count, err := v.ChannelCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	peaks := make([]float32, count)
	hr, _, _ := syscall.Syscall(
		v.VTable().GetChannelsPeakValues,
		3,
		uintptr(unsafe.Pointer(v)),
		uintptr(count),
		uintptr(unsafe.Pointer(&peaks[0])))
	if hr != 0 {
		return nil, ole.NewError(hr)
	}
	return peaks, nil
}

func (v *audioMeterInformation) HardwareSupport() (HardwareSupport, error) {
	var mask uint32
	hr, _, _ := syscall.Syscall(
		v.VTable().QueryHardwareSupport,
		2,
		uintptr(unsafe.Pointer(v)),
		uintptr(unsafe.Pointer(&mask)),
		0)
	if hr != 0 {
		return 0, ole.NewError(hr)
	}
	return HardwareSupport(mask), nil
}

func (v *audioMeterInformation) Release() error {
	v.IUnknown.Release()
	return nil
}
