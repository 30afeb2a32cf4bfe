package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/go-gl/gl/v4.2-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/arch"
	"github.com/hexaflex/chip8/devices"
	"github.com/hexaflex/chip8/devices/fffe/beeper"
	"github.com/hexaflex/chip8/devices/fffe/keypad"
	"github.com/hexaflex/chip8/devices/fffe/screen"
	"github.com/hexaflex/chip8/vm"
)

// App defines application context.
type App struct {
	config       *Config        // Application configuration.
	window       *glfw.Window   // OpenGL/GLFW context.
	cpu          *Controller    // Machine with program to be run.
	devices      devices.Map    // Connected peripherals.
	display      *screen.Device // Virtual display peripheral.
	keypad       *keypad.Device // Virtual keypad peripheral.
	titleUpdated time.Time      // Value used to periodically update window title.
}

// NewApp creates a new application instance using the given configuration.
func NewApp(config *Config) *App {
	var a App
	a.config = config
	a.cpu = NewController(config.Frequency, config.HaltOnError)
	a.display = screen.New(config.Foreground, config.Background)
	return &a
}

// Run runs the application and does not return until it is finished
// or an error occured during initialization.
func (a *App) Run() error {
	if err := a.initGL(); err != nil {
		return err
	}

	defer a.dispose()

	a.keypad = keypad.New(a.window)
	a.devices.Connect(a.keypad)
	a.devices.Connect(a.display)
	a.devices.Connect(beeper.New(a.config.Tone, a.config.Volume))

	if err := a.devices.Startup(); err != nil {
		return err
	}

	log.Println(Version())
	printHelp()

	if err := a.loadProgram(); err != nil {
		return err
	}

	if !a.config.Paused {
		a.cpu.Start()
	}

	for !a.window.ShouldClose() {
		a.mainLoop()
	}

	return nil
}

// mainLoop performs all main loop operations.
func (a *App) mainLoop() {
	glfw.PollEvents()

	m := a.cpu.Machine()
	a.keypad.Sync(m)

	if err := a.cpu.Update(time.Now()); err != nil {
		log.Println(err)
	}

	a.devices.Sync(m)

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	a.display.Draw()
	a.window.SwapBuffers()

	// Periodically update the window title to show the current instruction rate.
	if time.Since(a.titleUpdated) >= time.Second*2 {
		a.titleUpdated = time.Now()
		freq := prettyFrequency(a.cpu.Frequency())
		a.window.SetTitle(fmt.Sprintf("%s %s - %s", AppName, AppVersion, freq))
	}
}

// dispose ensures openGL/GLFW and other resources are cleaned up.
func (a *App) dispose() {
	a.cpu.Stop()

	if a.devices != nil {
		if err := a.devices.Shutdown(); err != nil {
			log.Println(err)
		}
		a.devices = nil
	}

	if a.window != nil {
		a.window.Destroy()
		a.window = nil
	}

	glfw.Terminate()
}

func (a *App) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}

	var err error

	switch key {
	case glfw.KeyEscape:
		a.window.SetShouldClose(true)
	case glfw.KeyF1:
		printHelp()
	case glfw.KeyF5:
		err = a.loadProgram()
	case glfw.KeyF6:
		a.cpu.ToggleRun()
	case glfw.KeyF7:
		a.cpu.Stop()
		err = a.cpu.Step()
	case glfw.KeyF8:
		a.config.PrintTrace = !a.config.PrintTrace
	}

	if err != nil {
		log.Println(err)
	}
}

// initGL initializes GLFW and openGL.
func (a *App) initGL() error {
	err := glfw.Init()
	if err != nil {
		return errors.Wrapf(err, "glfw.Init failed")
	}

	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.Visible, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	var monitor *glfw.Monitor

	width := vm.DisplayWidth * a.config.ScaleFactor
	height := vm.DisplayHeight * a.config.ScaleFactor

	if a.config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()

		width = mode.Width
		height = mode.Height

		glfw.WindowHint(glfw.Decorated, glfw.False)
		glfw.WindowHint(glfw.Maximized, glfw.True)
	} else {
		glfw.WindowHint(glfw.Decorated, glfw.True)
		glfw.WindowHint(glfw.Maximized, glfw.False)
	}

	a.window, err = glfw.CreateWindow(width, height, AppName, monitor, nil)
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "glfw.CreateWindow failed")
	}

	a.window.MakeContextCurrent()
	a.window.SetKeyCallback(a.keyCallback)

	glfw.SwapInterval(1)

	err = gl.Init()
	if err != nil {
		a.dispose()
		return errors.Wrapf(err, "gl.Init failed")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0, 0, 0, 1.0)
	return nil
}

// loadProgram loads the current program from disk and resets the machine.
func (a *App) loadProgram() error {
	log.Println("loading", a.config.Program)

	program, err := os.ReadFile(a.config.Program)
	if err != nil {
		return errors.Wrapf(err, "read %s", a.config.Program)
	}

	var rng vm.RandomSource
	if a.config.Seed != 0 {
		rng = rand.New(rand.NewSource(a.config.Seed))
	}

	err = a.cpu.Load(program, rng, a.printTrace)
	return errors.Wrapf(err, "load %s", a.config.Program)
}

// printTrace prints instruction trace data. This can be toggled
// on off through a.config.PrintTrace.
func (a *App) printTrace(pc uint16, instr arch.Instruction) {
	if !a.config.PrintTrace {
		return
	}

	fmt.Println(formatTrace(a.cpu.Machine(), pc, instr))
}

// formatTrace renders a trace line: address, opcode, mnemonic and the
// register state the instruction reads.
func formatTrace(m *vm.Machine, pc uint16, instr arch.Instruction) string {
	var sb strings.Builder
	sb.Grow(80)

	fmt.Fprintf(&sb, "%04x %04x  %s", pc, instr.Opcode, instr)
	pad(&sb, 34)

	fmt.Fprintf(&sb, "%s=%02x %s=%02x I=%04x",
		arch.RegisterName(instr.X), m.V(instr.X),
		arch.RegisterName(instr.Y), m.V(instr.Y),
		m.Index())

	return sb.String()
}

// printHelp writes a short overview of supported shortcut keys to stdout.
func printHelp() {
	var sb strings.Builder
	sb.WriteString("shortcut keys:\n")
	sb.WriteString(" ESC      Exit the emulator.\n")
	sb.WriteString(" F1       Display this help.\n")
	sb.WriteString(" F5       (re)load the program from disk and reset the machine.\n")
	sb.WriteString(" F6       Start/Stop program execution.\n")
	sb.WriteString(" F7       Pause and perform a single execution step.\n")
	sb.WriteString(" F8       Enable/Disable instruction trace output.\n")
	sb.WriteString("keypad:\n")
	sb.WriteString(" 1 2 3 4  ->  1 2 3 C\n")
	sb.WriteString(" Q W E R  ->  4 5 6 D\n")
	sb.WriteString(" A S D F  ->  7 8 9 E\n")
	sb.WriteString(" Z X C V  ->  A 0 B F")
	log.Println(sb.String())
}

// pad padds sb with spaces until it reaches the given size.
var pad = func() func(*strings.Builder, int) {
	set := strings.Repeat(" ", 80)
	return func(sb *strings.Builder, size int) {
		if sb.Len() >= size {
			return
		}
		if size > len(set) {
			size = len(set)
		}
		sb.WriteString(set[:size-sb.Len()])
	}
}()

// prettyFrequency returns a human-readable version of the given clock frequency in herz.
func prettyFrequency(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f GHz", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f MHz", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f KHz", v/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", v)
	}
}
