// Package audio provides an optional live-monitor output: playing the
// AGC-normalized baseband envelope through the system sound device so
// an operator can listen for signal presence while a run is in
// progress. It never captures audio as a sample source -- doing so
// would reintroduce the "live SDR hardware capture" Non-goal.
package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DeviceInfo holds audio output device information for -list-devices.
type DeviceInfo struct {
	Name              string
	MaxOutputChannels int
	DefaultSampleRate float64
	IsDefault         bool
}

// Init initializes PortAudio. Call once at process start if the
// monitor is going to be used.
func Init() error { return portaudio.Initialize() }

// Terminate cleans up PortAudio.
func Terminate() error { return portaudio.Terminate() }

// ListDevices returns all available audio output devices.
func ListDevices() ([]DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	defaultOut, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return nil, fmt.Errorf("default output device: %w", err)
	}

	var result []DeviceInfo
	for _, d := range devices {
		if d.MaxOutputChannels == 0 {
			continue
		}
		result = append(result, DeviceInfo{
			Name:              d.Name,
			MaxOutputChannels: d.MaxOutputChannels,
			DefaultSampleRate: d.DefaultSampleRate,
			IsDefault:         d.Name == defaultOut.Name,
		})
	}
	return result, nil
}

// PrintDevices prints all available audio output devices.
func PrintDevices() error {
	devices, err := ListDevices()
	if err != nil {
		return err
	}
	fmt.Println("Audio output devices:")
	for i, d := range devices {
		defaultStr := ""
		if d.IsDefault {
			defaultStr = " [DEFAULT]"
		}
		fmt.Printf("  %d: %s (out:%d rate:%.0f)%s\n",
			i, d.Name, d.MaxOutputChannels, d.DefaultSampleRate, defaultStr)
	}
	return nil
}
