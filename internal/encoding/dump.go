// Package encoding renders tape regions as plain-text memory dumps.
//
// Each line carries the absolute address, the region-relative offset and the
// cell's opcode, data and type tag:
//
//	0x00031148 [_MAIN + 0000000032] 	0x0000000b  0x00018a88  1
//
// The format is diagnostic only and never read back by the machine.
package encoding

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rachitdhar/tasm/internal/vm"
)

// RegionDump renders one tape region.
type RegionDump struct {
	Label     string // Region marker in the offset column, e.g. "_MEM".
	Low, High vm.Word
	Tape      *vm.Tape
}

// StoreDump covers the data region, privileged registers included.
func StoreDump(tape *vm.Tape) RegionDump {
	return RegionDump{Label: "_MEM", Low: vm.DataLow, High: vm.DataHigh, Tape: tape}
}

// DisplayDump covers the display region.
func DisplayDump(tape *vm.Tape) RegionDump {
	return RegionDump{Label: "_OUT", Low: vm.DisplayLow, High: vm.DisplayHigh, Tape: tape}
}

// CodeDump covers the code region.
func CodeDump(tape *vm.Tape) RegionDump {
	return RegionDump{Label: "_MAIN", Low: vm.CodeLow, High: vm.CodeHigh, Tape: tape}
}

// WriteTo renders the region one cell per line, both bounds inclusive.
func (d RegionDump) WriteTo(w io.Writer) (int64, error) {
	var count int64

	for addr := d.Low; addr <= d.High; addr++ {
		cell := d.Tape[addr]

		n, err := fmt.Fprintf(w, "0x%08x [%s + %010d] \t0x%08x  0x%08x  %d\n",
			uint32(addr), d.Label, uint32(addr-d.Low),
			uint32(cell.Op), uint32(cell.Data), cell.DType)
		count += int64(n)

		if err != nil {
			return count, err
		}
	}

	return count, nil
}

// Dump file names, one per dumped region.
const (
	StoreDumpFile       = "__STORE_DUMP.tasm.txt"
	DisplayDumpFile     = "__DISPLAY_DUMP.tasm.txt"
	InstructionDumpFile = "__INSTRUCTION_DUMP.tasm.txt"
)

// DumpFiles writes the three region dump files to the working directory. It
// is called on termination, clean or not, when memory dumps are requested.
func DumpFiles(tape *vm.Tape) error {
	dumps := []struct {
		name   string
		region RegionDump
	}{
		{StoreDumpFile, StoreDump(tape)},
		{DisplayDumpFile, DisplayDump(tape)},
		{InstructionDumpFile, CodeDump(tape)},
	}

	for _, d := range dumps {
		if err := writeDump(d.name, d.region); err != nil {
			return err
		}
	}

	return nil
}

func writeDump(name string, region RegionDump) error {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	buf := bufio.NewWriter(file)

	if _, err := region.WriteTo(buf); err != nil {
		_ = file.Close()
		return fmt.Errorf("dump: %s: %w", name, err)
	}

	if err := buf.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("dump: %s: %w", name, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("dump: %s: %w", name, err)
	}

	return nil
}
