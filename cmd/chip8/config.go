package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hexaflex/chip8/devices/fffe/beeper"
	"github.com/hexaflex/chip8/devices/fffe/clock"
	"github.com/hexaflex/chip8/devices/fffe/screen"
)

// Config defines program configuration.
type Config struct {
	Program     string  // Path to the ROM file to load.
	ScaleFactor int     // Amount by which each pixel is scaled.
	Fullscreen  bool    // Run in fullscreen?
	PrintTrace  bool    // Print instruction trace data?
	Paused      bool    // Start with execution paused.
	HaltOnError bool    // Pause on a failed instruction instead of skipping it.
	Frequency   int     // Instructions per second.
	Volume      float64 // Buzzer volume in [0,1].
	Tone        float64 // Buzzer frequency in Hz.
	Seed        int64   // Seed for RND; 0 picks one from the clock.
	Foreground  int     // Color of lit pixels, as 0xRRGGBB.
	Background  int     // Color of unlit pixels, as 0xRRGGBB.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	c.ScaleFactor = 10
	c.Frequency = clock.DefaultFrequency
	c.Volume = beeper.DefaultVolume
	c.Tone = beeper.DefaultFrequency
	c.Foreground = screen.DefaultForeground
	c.Background = screen.DefaultBackground

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.IntVar(&c.ScaleFactor, "scale-factor", c.ScaleFactor, "Pixel scale factor for the display.")
	flag.BoolVar(&c.Fullscreen, "fullscreen", c.Fullscreen, "Run the display in fullscreen or windowed mode.")
	flag.BoolVar(&c.PrintTrace, "trace", c.PrintTrace, "Print instruction trace data.")
	flag.BoolVar(&c.Paused, "paused", c.Paused, "Start with execution paused.")
	flag.BoolVar(&c.HaltOnError, "halt-on-error", c.HaltOnError, "Pause when an instruction fails, instead of skipping it.")
	flag.IntVar(&c.Frequency, "frequency", c.Frequency, "Instructions executed per second.")
	flag.Float64Var(&c.Volume, "volume", c.Volume, "Buzzer volume, between 0 and 1.")
	flag.Float64Var(&c.Tone, "tone", c.Tone, "Buzzer tone in Hz.")
	flag.Int64Var(&c.Seed, "seed", c.Seed, "Seed for the random number generator. 0 uses the current time.")
	flag.IntVar(&c.Foreground, "fg", c.Foreground, "Foreground color as 0xRRGGBB.")
	flag.IntVar(&c.Background, "bg", c.Background, "Background color as 0xRRGGBB.")

	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	if c.ScaleFactor < 1 {
		c.ScaleFactor = 1
	}

	c.Program = flag.Arg(0)
	return &c
}
