package vm

// display.go renders the display region to the machine's output stream.

import (
	"io"
	"strconv"
	"strings"
)

// flush writes the used portion of the display region to the output writer.
// Integer cells render as decimal, character cells as their low byte, and a
// backslash character cell escapes the next cell: `n` and `r` emit a newline
// and carriage return, anything else emits nothing.
//
// The region is not cleared: a later flush re-emits everything written so
// far.
func (m *Machine) flush() error {
	var (
		b       strings.Builder
		escaped bool
	)

	for pos := DisplayLow; pos < DisplayHigh && pos < m.Tape[RegDisp].Data; pos++ {
		cell := m.Tape[pos]

		if escaped {
			switch cell.Data {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			}

			escaped = false

			continue
		}

		if cell.DType == TypeChar {
			if cell.Data == '\\' {
				escaped = true
				continue
			}

			b.WriteByte(byte(cell.Data))
		} else {
			b.WriteString(strconv.FormatUint(uint64(cell.Data), 10))
		}
	}

	_, err := io.WriteString(m.out, b.String())

	return err
}
