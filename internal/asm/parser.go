package asm

// parser.go reads source lines and classifies operands.

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/rachitdhar/tasm/internal/log"
	"github.com/rachitdhar/tasm/internal/vm"
)

// Assembler translates TASM source into primitive cells in the code region
// of a tape. A single forward pass resolves labels and emits code; there is
// no separate generation stage.
type Assembler struct {
	tape    *vm.Tape
	pc      vm.Word // Location counter: next cell to emit.
	symbols SymbolTable
	err     error // Sticky emit error.

	log *log.Logger
}

// NewAssembler creates an assembler that emits into the given tape.
func NewAssembler(tape *vm.Tape, logger *log.Logger) *Assembler {
	return &Assembler{
		tape:    tape,
		pc:      vm.CodeLow,
		symbols: make(SymbolTable),
		log:     logger,
	}
}

// Symbols returns the label table constructed so far.
func (a *Assembler) Symbols() SymbolTable {
	return a.symbols
}

// Loc returns the location counter: the address one past the last emitted
// cell.
func (a *Assembler) Loc() vm.Word {
	return a.pc
}

// Assemble consumes the source stream and returns the entry point, the
// resolved address of the "main" label. On success the code region holds the
// expanded program followed by a safety HALT, and the display and stack
// cursor registers are initialized.
func (a *Assembler) Assemble(in io.Reader) (vm.Word, error) {
	lines := bufio.NewScanner(in)

	pos := 0 // Line number.

	for lines.Scan() {
		pos++

		if err := a.assembleLine(lines.Text(), pos); err != nil {
			return 0, err
		}
	}

	if err := lines.Err(); err != nil {
		return 0, err
	}

	// Safety net: programs without an explicit hlt still stop.
	a.emit(vm.OpHalt, 0)

	if a.err != nil {
		return 0, a.err
	}

	entry, ok := a.symbols["main"]
	if !ok {
		return 0, ErrNoMain
	}

	a.tape[vm.RegDisp].Data = vm.DisplayLow
	a.tape[vm.RegStk].Data = vm.StackHigh

	a.log.Debug("assembled",
		"cells", int(a.pc-vm.CodeLow),
		"symbols", len(a.symbols),
		"entry", entry,
	)

	return entry, nil
}

// assembleLine handles one source line: strip the comment, record a label if
// present and lower the instruction, if any.
func (a *Assembler) assembleLine(line string, pos int) error {
	text := line
	if i := strings.Index(text, "//"); i >= 0 {
		text = text[:i]
	}

	tok, rest := token(text)
	if tok == "" {
		return nil
	}

	if name, ok := strings.CutSuffix(tok, ":"); ok {
		if name == "" {
			return &SyntaxError{Pos: pos, Line: line}
		}

		if _, dup := a.symbols[name]; dup {
			return &SyntaxError{Pos: pos, Line: line, Err: ErrDuplicateLabel}
		}

		a.symbols[name] = a.pc

		tok, rest = token(rest)
		if tok == "" {
			return nil
		}
	}

	first, rest := token(rest)
	second := strings.TrimSpace(rest)

	return a.expand(tok, first, second, pos, line)
}

// token splits the next whitespace-separated token off a line. The remainder
// keeps its leading whitespace so a later TrimSpace still sees the full
// second operand, quoted spaces included.
func token(s string) (tok, rest string) {
	s = strings.TrimLeft(s, " \t")

	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i:]
	}

	return s, ""
}

// parseTarget classifies the first operand: an immediate hex address, a
// bracketed hex address to dereference, or a label reference. Labels resolve
// against the table built so far.
func (a *Assembler) parseTarget(s string) (addr vm.Word, deref bool, err error) {
	switch {
	case strings.HasPrefix(s, "0x"):
		v, perr := strconv.ParseUint(s[2:], 16, 32)
		if perr != nil {
			return 0, false, ErrOperand
		}

		return vm.Word(v), false, nil

	case strings.HasPrefix(s, "[0x") && strings.HasSuffix(s, "]"):
		v, perr := strconv.ParseUint(s[3:len(s)-1], 16, 32)
		if perr != nil {
			return 0, false, ErrOperand
		}

		return vm.Word(v), true, nil

	default:
		loc, ok := a.symbols[s]
		if !ok {
			return 0, false, ErrUndefinedLabel
		}

		return loc, false, nil
	}
}

// parseSource classifies a non-string second operand: a bracketed address to
// dereference, or a numeric literal in hex (0x...), octal (leading 0) or
// decimal.
func parseSource(s string) (val vm.Word, deref bool, err error) {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		v, perr := strconv.ParseUint(s[1:len(s)-1], 0, 32)
		if perr != nil {
			return 0, false, ErrOperand
		}

		return vm.Word(v), true, nil
	}

	v, perr := strconv.ParseUint(s, 0, 32)
	if perr != nil {
		return 0, false, ErrOperand
	}

	return vm.Word(v), false, nil
}
