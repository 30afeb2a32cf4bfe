package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func TestAdvance(t *testing.T) {
	c := New(TimerFrequency, DefaultFrequency)
	c.Start(epoch)

	b := c.Advance(epoch.Add(200 * time.Millisecond))
	want := Budget{Ticks: 12, Steps: 100}
	if b != want {
		t.Fatalf("want %+v; have %+v", want, b)
	}
}

func TestAdvanceAccumulatesFractions(t *testing.T) {
	c := New(TimerFrequency, DefaultFrequency)
	c.Start(epoch)

	var total Budget
	now := epoch
	for i := 0; i < 100; i++ {
		now = now.Add(10 * time.Millisecond)
		b := c.Advance(now)
		total.Ticks += b.Ticks
		total.Steps += b.Steps
	}

	want := Budget{Ticks: 60, Steps: 500}
	if total != want {
		t.Fatalf("want %+v; have %+v", want, total)
	}
}

func TestAdvanceUnstarted(t *testing.T) {
	c := New(TimerFrequency, DefaultFrequency)

	if b := c.Advance(epoch); b != (Budget{}) {
		t.Fatalf("want empty budget; have %+v", b)
	}

	if !c.Running() {
		t.Fatalf("clock not started by Advance")
	}

	b := c.Advance(epoch.Add(100 * time.Millisecond))
	if b.Steps != 50 {
		t.Fatalf("want 50 steps; have %d", b.Steps)
	}
}

func TestAdvanceBackwards(t *testing.T) {
	c := New(TimerFrequency, DefaultFrequency)
	c.Start(epoch)
	c.Advance(epoch.Add(time.Second))

	if b := c.Advance(epoch); b != (Budget{}) {
		t.Fatalf("want empty budget; have %+v", b)
	}
}

func TestAdvanceCatchUpCap(t *testing.T) {
	c := New(TimerFrequency, 1000)
	c.Start(epoch)

	b := c.Advance(epoch.Add(10 * time.Second))
	want := Budget{Ticks: 15, Steps: 250}
	if b != want {
		t.Fatalf("want %+v; have %+v", want, b)
	}

	b = c.Advance(epoch.Add(10*time.Second + 100*time.Millisecond))
	want = Budget{Ticks: 6, Steps: 100}
	if b != want {
		t.Fatalf("after stall:\nwant %+v\nhave %+v", want, b)
	}
}

func TestSetFrequency(t *testing.T) {
	c := New(TimerFrequency, DefaultFrequency)
	c.Start(epoch)
	c.Advance(epoch.Add(5 * time.Millisecond))

	c.SetFrequency(1000)
	if c.Frequency() != 1000 {
		t.Fatalf("want 1000 Hz; have %d", c.Frequency())
	}

	b := c.Advance(epoch.Add(105 * time.Millisecond))
	if b.Steps != 100 {
		t.Fatalf("want 100 steps; have %d", b.Steps)
	}
}

func TestStop(t *testing.T) {
	c := New(TimerFrequency, DefaultFrequency)
	c.Start(epoch)
	c.Stop()

	if b := c.Advance(epoch.Add(time.Second)); b != (Budget{}) {
		t.Fatalf("want empty budget after Stop; have %+v", b)
	}
}

func TestRebase(t *testing.T) {
	c := New(TimerFrequency, DefaultFrequency)
	c.Start(epoch)

	var steps int
	now := epoch
	for i := 0; i < 4*3600*5; i++ {
		now = now.Add(200 * time.Millisecond)
		steps += c.Advance(now).Steps
	}

	if want := 4 * 3600 * DefaultFrequency; steps != want {
		t.Fatalf("want %d steps; have %d", want, steps)
	}
}
