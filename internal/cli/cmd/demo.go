package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rachitdhar/tasm/internal/asm"
	"github.com/rachitdhar/tasm/internal/cli"
	"github.com/rachitdhar/tasm/internal/log"
	"github.com/rachitdhar/tasm/internal/vm"
)

// Demo is a demonstration command: it runs a built-in program so the
// toolchain can be exercised without a source file.
func Demo() cli.Command {
	return new(demo)
}

// demoProgram computes 6 times 7 by repeated addition in a subroutine and
// prints the answer.
const demoProgram = `
add6:
add 0x6 0x5
ret

main:
put 0x5 6          // addend
put 0x6 0          // accumulator
call add6
call add6
call add6
call add6
call add6
call add6
call add6
put 0x18a88 "6 x 7 = "
mov 0x18a90 0x6
put 0x18a91 "\n"
out
hlt
`

type demo struct {
	debug bool
	quiet bool
}

func (demo) Description() string {
	return "run the demo program"
}

func (d demo) Usage(out io.Writer) error {
	var err error
	_, err = fmt.Fprintln(out, `demo [ -debug | -quiet ]

Run the built-in demonstration program.`)

	return err
}

func (d *demo) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)

	fs.BoolVar(&d.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&d.quiet, "quiet", false, "log errors only")

	return fs
}

func (d demo) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if d.quiet {
		log.LogLevel.Set(log.Error)
	}

	if d.debug {
		log.LogLevel.Set(log.Debug)
	}

	machine := vm.New(
		vm.WithLogger(logger),
		vm.WithOutput(out),
	)

	assembler := asm.NewAssembler(machine.Tape, logger)

	entry, err := assembler.Assemble(strings.NewReader(demoProgram))
	if err != nil {
		logger.Error("Assembly error", "err", err)
		return 1
	}

	machine.Jump(entry)

	if err := machine.Run(ctx); err != nil {
		logger.Error("Runtime fault", "err", err)
		return 1
	}

	return 0
}
