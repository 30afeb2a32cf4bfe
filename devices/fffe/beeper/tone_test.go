package beeper

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/hexaflex/chip8/vm"
)

func TestToneSilentWhenGated(t *testing.T) {
	tone := NewTone(8, 1, 1)
	p := make([]byte, 8*4)

	n, err := tone.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read: %d, %v", n, err)
	}

	for i := 0; i < 8; i++ {
		if s := sample(p, i); s != 0 {
			t.Fatalf("sample %d: want silence; have %v", i, s)
		}
	}
}

func TestToneSquareWave(t *testing.T) {
	// One period spans 8 samples: 4 high, 4 low.
	tone := NewTone(8, 1, 0.5)
	tone.SetEnabled(true)

	p := make([]byte, 16*4)
	tone.Read(p)

	for i := 0; i < 16; i++ {
		want := float32(0.5)
		if i%8 >= 4 {
			want = -0.5
		}

		if s := sample(p, i); s != want {
			t.Fatalf("sample %d:\nwant: %v\nhave: %v", i, want, s)
		}
	}
}

func TestTonePartialSample(t *testing.T) {
	tone := NewTone(SampleRate, DefaultFrequency, DefaultVolume)
	n, _ := tone.Read(make([]byte, 7))

	if n != 4 {
		t.Fatalf("want 4 bytes; have %d", n)
	}
}

func TestToneVolumeClamped(t *testing.T) {
	if tone := NewTone(SampleRate, DefaultFrequency, 3); tone.volume != 1 {
		t.Fatalf("want volume 1; have %v", tone.volume)
	}
}

func TestSync(t *testing.T) {
	// LD V0, 2; LD ST, V0
	m, err := vm.New([]byte{0x60, 0x02, 0xf0, 0x18}, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	d := New(DefaultFrequency, DefaultVolume)
	d.Sync(m)
	if d.tone.Enabled() {
		t.Fatalf("tone enabled before the sound timer was set")
	}

	m.Step()
	m.Step()
	d.Sync(m)
	if !d.tone.Enabled() {
		t.Fatalf("tone not enabled while the sound timer runs")
	}

	m.Tick()
	m.Tick()
	d.Sync(m)
	if d.tone.Enabled() {
		t.Fatalf("tone still enabled after the sound timer expired")
	}
}

func sample(p []byte, i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(p[i*4:]))
}
