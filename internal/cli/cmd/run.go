package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/rachitdhar/tasm/internal/asm"
	"github.com/rachitdhar/tasm/internal/cli"
	"github.com/rachitdhar/tasm/internal/encoding"
	"github.com/rachitdhar/tasm/internal/log"
	"github.com/rachitdhar/tasm/internal/vm"
)

// Runner is the command that assembles and executes a TASM program.
//
//	tasm run [-memdump] program.tasm
//
// The bare form `tasm program.tasm [-memdump]` routes here as well.
func Runner() cli.Command {
	return new(runner)
}

type runner struct {
	memdump  bool
	logLevel slog.Level
}

func (runner) Description() string {
	return "assemble and run a program"
}

func (runner) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `run [-memdump] program.tasm

Assemble a TASM source file and run it on the machine.`)

	return err
}

func (r *runner) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	fs.BoolVar(&r.memdump, "memdump", false, "write memory dump files on exit")
	fs.Func("loglevel", "set log `level`", func(s string) error {
		return r.logLevel.UnmarshalText([]byte(s))
	})

	return fs
}

// Run assembles the source and executes it until halt or fault.
func (r *runner) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	log.LogLevel.Set(r.logLevel)

	var file string

	// The original invocation puts -memdump after the file name, where flag
	// parsing does not reach; accept it positionally too.
	for _, arg := range args {
		switch {
		case arg == "-memdump":
			r.memdump = true
		case file == "":
			file = arg
		}
	}

	if !strings.HasSuffix(file, ".tasm") {
		logger.Error("A .tasm source file is required")
		return 1
	}

	src, err := os.Open(file)
	if err != nil {
		logger.Error("Error opening source", "err", err)
		return 1
	}
	defer src.Close()

	out, flush := displayWriter(stdout)
	defer flush()

	machine := vm.New(
		vm.WithLogger(logger),
		vm.WithOutput(out),
	)

	assembler := asm.NewAssembler(machine.Tape, logger)

	entry, err := assembler.Assemble(src)
	if err != nil {
		logger.Error("Assembly error", "file", file, "err", err)
		r.dump(machine, logger)

		return 1
	}

	machine.Jump(entry)

	err = machine.Run(ctx)
	r.dump(machine, logger)

	if err != nil {
		logger.Error("Runtime fault", "err", err)
		return 1
	}

	return 0
}

func (r *runner) dump(machine *vm.Machine, logger *log.Logger) {
	if !r.memdump {
		return
	}

	if err := encoding.DumpFiles(machine.Tape); err != nil {
		logger.Error("Error writing memory dump", "err", err)
	}
}

// displayWriter picks the writer for display output. Interactive terminals
// get unbuffered writes; everything else is buffered and flushed at exit.
func displayWriter(stdout io.Writer) (io.Writer, func()) {
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return stdout, func() {}
	}

	buf := bufio.NewWriter(stdout)

	return buf, func() { _ = buf.Flush() }
}
