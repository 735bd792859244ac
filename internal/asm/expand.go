package asm

// expand.go lowers mnemonics to primitive cells, including the trampolines
// that emulate indirect addressing.

import (
	"strings"

	"github.com/rachitdhar/tasm/internal/vm"
)

// A family decides which operands a mnemonic takes and the shape of its
// lowering.
type family uint8

const (
	zeroOperand family = iota // single cell, no operands
	oneOperand                // single cell carrying a target address
	twoOperand                // READ of the source, then the primitive
	putOperand                // inert literal cell, READ of it, WRITE
)

type mnemonic struct {
	op     vm.Opcode
	family family
}

// mnemonics pairs each source-level mnemonic with the primitive it lowers
// to. For twoOperand entries the opcode is the second cell of the
// READ-prefixed pair; put's entry carries no opcode of its own.
var mnemonics = map[string]mnemonic{
	"hlt": {vm.OpHalt, zeroOperand},
	"out": {vm.OpOut, zeroOperand},
	"ret": {vm.OpRet, zeroOperand},

	"jmp":  {vm.OpJump, oneOperand},
	"je":   {vm.OpJe, oneOperand},
	"jne":  {vm.OpJne, oneOperand},
	"jg":   {vm.OpJg, oneOperand},
	"jge":  {vm.OpJge, oneOperand},
	"jl":   {vm.OpJl, oneOperand},
	"jle":  {vm.OpJle, oneOperand},
	"call": {vm.OpCall, oneOperand},
	"not":  {vm.OpNot, oneOperand},

	"mov": {vm.OpWrite, twoOperand},
	"cmp": {vm.OpCmp, twoOperand},
	"and": {vm.OpAnd, twoOperand},
	"or":  {vm.OpOr, twoOperand},
	"xor": {vm.OpXor, twoOperand},
	"lsh": {vm.OpLshift, twoOperand},
	"rsh": {vm.OpRshift, twoOperand},
	"add": {vm.OpAdd, twoOperand},
	"sub": {vm.OpSub, twoOperand},
	"mul": {vm.OpMul, twoOperand},
	"div": {vm.OpDiv, twoOperand},

	"put": {vm.OpNone, putOperand},
}

// expand lowers one source instruction into the code region.
func (a *Assembler) expand(name, first, second string, pos int, line string) error {
	fail := func(err error) error {
		return &SyntaxError{Pos: pos, Line: line, Err: err}
	}

	mn, ok := mnemonics[name]
	if !ok {
		return fail(ErrMnemonic)
	}

	switch mn.family {
	case zeroOperand:
		if first != "" {
			return fail(ErrOperand)
		}

		a.emit(mn.op, 0)

	case oneOperand:
		if first == "" || second != "" {
			return fail(ErrOperand)
		}

		a1, deref1, err := a.parseTarget(first)
		if err != nil {
			return fail(err)
		}

		if deref1 {
			a.emitDeref(a1, 1)
		}

		a.emit(mn.op, a1)

	case twoOperand, putOperand:
		if first == "" || second == "" {
			return fail(ErrOperand)
		}

		a1, deref1, err := a.parseTarget(first)
		if err != nil {
			return fail(err)
		}

		if strings.HasPrefix(second, `"`) {
			// A quoted string is only meaningful as put's literal: one
			// three-cell expansion per character, destinations advancing
			// by one.
			if mn.family != putOperand {
				return fail(ErrOperand)
			}

			if len(second) < 2 || !strings.HasSuffix(second, `"`) {
				return fail(ErrOperand)
			}

			for _, c := range second[1 : len(second)-1] {
				a.expandPut(a1, deref1, vm.Word(c), vm.TypeChar, false)
				a1++
			}

			break
		}

		a2, deref2, err := parseSource(second)
		if err != nil {
			return fail(err)
		}

		if mn.family == putOperand {
			a.expandPut(a1, deref1, a2, vm.TypeInt, deref2)
		} else {
			a.expandPair(mn.op, a1, deref1, a2, deref2)
		}
	}

	if a.err != nil {
		return fail(a.err)
	}

	return nil
}

// expandPair lowers the two-operand mnemonics: a READ staging the source
// value in the pointer scratch, then the primitive applied to the target.
func (a *Assembler) expandPair(op vm.Opcode, a1 vm.Word, deref1 bool, a2 vm.Word, deref2 bool) {
	// The second operand's trampoline is emitted first; its patch distance
	// accounts for the first operand's trampoline when both are indirect.
	// This ordering is load-bearing.
	if deref2 {
		if deref1 {
			a.emitDeref(a2, 3)
		} else {
			a.emitDeref(a2, 1)
		}
	}

	if deref1 {
		a.emitDeref(a1, 2)
	}

	a.emit(vm.OpRead, a2)
	a.emit(op, a1)
}

// expandPut lowers put: an inert cell carrying the literal, a READ staging
// it, and a WRITE into the destination.
func (a *Assembler) expandPut(addr vm.Word, deref1 bool, val vm.Word, dtype vm.DataType, deref2 bool) {
	if deref2 {
		if deref1 {
			a.emitDeref(val, 3)
		} else {
			a.emitDeref(val, 1)
		}
	}

	if deref1 {
		a.emitDeref(addr, 3)
	}

	a.emitCell(vm.Cell{Op: vm.OpNone, Data: val, DType: dtype})
	a.emit(vm.OpRead, a.pc-1)
	a.emit(vm.OpWrite, addr)
}

// emit appends a primitive cell at the location counter.
func (a *Assembler) emit(op vm.Opcode, data vm.Word) {
	a.emitCell(vm.Cell{Op: op, Data: data})
}

func (a *Assembler) emitCell(cell vm.Cell) {
	if a.err != nil {
		return
	}

	if a.pc > vm.CodeHigh {
		a.err = ErrOverflow
		return
	}

	a.tape[a.pc] = cell
	a.pc++
}

// emitDeref synthesizes the READ/WRITE trampoline for an indirect operand.
// At run time the READ stages the value stored at addr and the WRITE patches
// the data field of the cell overwriteAt steps past the WRITE itself, just
// before that cell executes.
func (a *Assembler) emitDeref(addr, overwriteAt vm.Word) {
	a.emit(vm.OpRead, addr)
	a.emit(vm.OpWrite, a.pc+overwriteAt)
}
