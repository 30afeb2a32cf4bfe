// Package beeper implements the buzzer which sounds while the sound timer runs.
package beeper

import (
	"log"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices"
)

// Audio output properties.
const (
	SampleRate       = 44100
	DefaultFrequency = 440.0
	DefaultVolume    = 0.25
)

// Device defines all internal doodads for the buzzer.
type Device struct {
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player
}

var _ devices.Device = &Device{}

// New creates a new device with the given tone frequency and volume.
func New(frequency, volume float64) *Device {
	return &Device{
		tone: NewTone(SampleRate, frequency, volume),
	}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(devices.Builtin, 0x0004)
}

// Startup opens the audio output. Hosts without audio keep running silently.
func (d *Device) Startup() error {
	if d.ctx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
			BufferSize:   20 * time.Millisecond,
		})
		if err != nil {
			log.Println(d.ID(), errors.Wrapf(err, "audio unavailable"))
			return nil
		}
		<-ready
		d.ctx = ctx
	}

	d.player = d.ctx.NewPlayer(d.tone)
	d.player.Play()
	return nil
}

// Shutdown stops audio output. The oto context lives for the rest of the
// process and is reused by a later Startup.
func (d *Device) Shutdown() error {
	d.tone.SetEnabled(false)

	if d.player == nil {
		return nil
	}

	err := d.player.Close()
	d.player = nil
	return errors.Wrapf(err, "close player")
}

// Sync gates the tone on the machine's sound timer.
func (d *Device) Sync(m devices.Machine) {
	d.tone.SetEnabled(m.IsPlayingSound())
}
