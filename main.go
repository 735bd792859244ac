// tasm is a virtual machine and single-pass assembler for the TASM toy
// assembly language.
package main

import (
	"context"
	"os"

	"github.com/rachitdhar/tasm/internal/cli"
	"github.com/rachitdhar/tasm/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Runner(),
	cmd.Assembler(),
	cmd.Demo(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
