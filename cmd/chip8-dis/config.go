package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/hexaflex/chip8/vm"
)

// Config defines program configuration.
type Config struct {
	Input  string // Input ROM file.
	Output string // Output file. Leave empty for stdout.
	Origin uint16 // Address at which the ROM is loaded.
	Raw    bool   // Print bare mnemonics, without addresses, opcodes or layout.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config

	flag.Usage = func() {
		fmt.Printf("%s [options] <rom file>\n", os.Args[0])
		flag.PrintDefaults()
	}

	origin := flag.String("origin", fmt.Sprintf("0x%03x", vm.ProgramStart), "Load address of the ROM.")
	flag.StringVar(&c.Output, "out", c.Output, "File path to write output to. Leave empty to use stdout.")
	flag.BoolVar(&c.Raw, "raw", c.Raw, "Print only mnemonics, one per line.")
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

	v, err := strconv.ParseUint(*origin, 0, 12)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid origin %q: %v\n", *origin, err)
		os.Exit(1)
	}

	c.Origin = uint16(v)
	c.Input = flag.Arg(0)
	return &c
}
