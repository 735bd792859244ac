package vm

// machine.go assembles the machine from its parts.

import (
	"fmt"
	"io"
	"os"

	"github.com/rachitdhar/tasm/internal/log"
)

// Machine is the TASM computer: the tape, the instruction pointer and the
// display output stream, bundled as a single owned value. The assembler
// writes into Tape before Run starts; afterwards the machine owns it
// exclusively.
type Machine struct {
	Tape *Tape   // All the memory there is.
	PTR  Pointer // Instruction pointer and inter-primitive scratch.

	out io.Writer
	log *log.Logger
}

// New creates and initializes a machine. The tape starts inert: every cell
// holds OpNone, the display cursor sits at the bottom of the display region
// and the stack cursor at the top of the stack region.
func New(opts ...OptionFn) *Machine {
	m := Machine{
		Tape: new(Tape),
		out:  os.Stdout,
		log:  log.DefaultLogger(),
	}

	m.Tape[RegDisp].Data = DisplayLow
	m.Tape[RegStk].Data = StackHigh
	m.PTR.Pos = CodeLow

	for _, fn := range opts {
		fn(&m)
	}

	return &m
}

// An OptionFn modifies the machine during initialization.
type OptionFn func(*Machine)

// WithLogger configures the machine's logger.
func WithLogger(logger *log.Logger) OptionFn {
	return func(m *Machine) { m.log = logger }
}

// WithOutput directs display flushes to a writer instead of standard output.
func WithOutput(out io.Writer) OptionFn {
	return func(m *Machine) { m.out = out }
}

// Jump moves the instruction pointer, typically to a program's entry point.
func (m *Machine) Jump(entry Word) {
	m.PTR.Pos = entry
}

func (m *Machine) String() string {
	return fmt.Sprintf("POS: %s DATA: %s ZF: %d CF: %d DISP: %s STK: %s",
		m.PTR.Pos, m.PTR.Data,
		uint32(m.Tape[RegZF].Data), uint32(m.Tape[RegCF].Data),
		m.Tape[RegDisp].Data, m.Tape[RegStk].Data)
}
