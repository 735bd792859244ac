package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rachitdhar/tasm/internal/asm"
	"github.com/rachitdhar/tasm/internal/cli"
	"github.com/rachitdhar/tasm/internal/encoding"
	"github.com/rachitdhar/tasm/internal/log"
	"github.com/rachitdhar/tasm/internal/vm"
)

// Assembler is the command that assembles a source file and writes the
// code-region listing without running it. Useful for inspecting lowerings
// and trampolines.
//
//	tasm asm -o listing.txt program.tasm
func Assembler() cli.Command {
	return new(assembler)
}

type assembler struct {
	debug  bool
	output string
}

func (assembler) Description() string {
	return "assemble source and write the code listing"
}

func (assembler) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `asm [-o listing.txt] program.tasm

Assemble source and write the emitted code region as a listing.`)

	return err
}

func (a *assembler) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("asm", flag.ExitOnError)
	fs.BoolVar(&a.debug, "debug", false, "enable debug logging")
	fs.StringVar(&a.output, "o", "", "output `filename`, standard output if empty")

	return fs
}

// Run assembles the source and writes the listing.
func (a *assembler) Run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) int {
	if a.debug {
		log.LogLevel.Set(log.Debug)
	}

	if len(args) < 1 || !strings.HasSuffix(args[0], ".tasm") {
		logger.Error("A .tasm source file is required")
		return 1
	}

	src, err := os.Open(args[0])
	if err != nil {
		logger.Error("Error opening source", "err", err)
		return 1
	}
	defer src.Close()

	tape := new(vm.Tape)
	assembler := asm.NewAssembler(tape, logger)

	entry, err := assembler.Assemble(src)
	if err != nil {
		logger.Error("Assembly error", "file", args[0], "err", err)
		return 1
	}

	out := stdout
	if a.output != "" {
		file, err := os.Create(a.output)
		if err != nil {
			logger.Error("Error creating listing", "out", a.output, "err", err)
			return 1
		}
		defer file.Close()

		out = file
	}

	buf := bufio.NewWriter(out)

	// Only the emitted slice of the code region is listed, safety HALT
	// included.
	listing := encoding.RegionDump{
		Label: "_MAIN",
		Low:   vm.CodeLow,
		High:  assembler.Loc() - 1,
		Tape:  tape,
	}

	wrote, err := listing.WriteTo(buf)
	if err != nil {
		logger.Error("I/O error", "out", a.output, "err", err)
		return 1
	}

	if err := buf.Flush(); err != nil {
		logger.Error("I/O error", "out", a.output, "err", err)
		return 1
	}

	logger.Debug("Wrote listing",
		"out", a.output,
		"size", wrote,
		"symbols", len(assembler.Symbols()),
		"entry", entry,
	)

	return 0
}
