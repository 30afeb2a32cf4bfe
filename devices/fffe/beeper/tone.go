package beeper

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

// Tone generates a mono square wave as little-endian float32 samples.
// It is read from the audio thread; only the gate is shared.
type Tone struct {
	step    float64     // Phase increment per sample.
	volume  float32     // Peak amplitude in [0,1].
	phase   float64     // Position within the current period, [0,1).
	enabled atomic.Bool // Gate; silence while false.
}

// NewTone creates a tone of the given frequency for the given sample rate.
func NewTone(sampleRate int, frequency, volume float64) *Tone {
	return &Tone{
		step:   frequency / float64(sampleRate),
		volume: float32(math.Max(0, math.Min(1, volume))),
	}
}

// SetEnabled opens or closes the gate.
func (t *Tone) SetEnabled(v bool) {
	t.enabled.Store(v)
}

// Enabled returns the state of the gate.
func (t *Tone) Enabled() bool {
	return t.enabled.Load()
}

// Read fills p with whole samples. It never fails.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) / 4
	on := t.enabled.Load()

	for i := 0; i < n; i++ {
		var s float32
		if on {
			s = t.volume
			if t.phase >= 0.5 {
				s = -t.volume
			}
		}

		t.phase += t.step
		if t.phase >= 1 {
			t.phase -= 1
		}

		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}

	return n * 4, nil
}
