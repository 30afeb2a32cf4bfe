package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
)

func main() {
	config := parseArgs()

	program, err := os.ReadFile(config.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "read %s", config.Input))
		os.Exit(1)
	}

	w, close := makeWriter(config)
	defer close()

	disassemble(w, program, config.Origin, config.Raw)
}

// disassemble writes a listing of program, loaded at origin, to w.
//
// Words which do not decode are listed as data. An instruction following a
// conditional skip is indented and a blank line follows every unconditional
// transfer of control, so basic blocks stand out.
func disassemble(w io.Writer, program []byte, origin uint16, raw bool) {
	indent := false

	for i := 0; i+1 < len(program); i += 2 {
		opcode := uint16(program[i])<<8 | uint16(program[i+1])
		instr, _ := arch.Decode(opcode)

		if raw {
			fmt.Fprintln(w, instr)
			continue
		}

		conditional := indent
		prefix := ""
		if conditional {
			prefix = "  "
		}

		fmt.Fprintf(w, "%04x  %04x  %s%s\n", int(origin)+i, opcode, prefix, instr)

		indent = arch.IsSkip(instr.Op)
		if arch.IsBranch(instr.Op) && instr.Op != arch.Call && !conditional {
			fmt.Fprintln(w)
		}
	}

	if len(program)%2 == 0 {
		return
	}

	last := len(program) - 1
	if raw {
		fmt.Fprintf(w, "DB 0x%02X\n", program[last])
	} else {
		fmt.Fprintf(w, "%04x  %02x    DB 0x%02X\n", int(origin)+last, program[last], program[last])
	}
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		if err := os.MkdirAll(dir, 0744); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
