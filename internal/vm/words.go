package vm

// words.go defines the basic data types of the tape.

import "fmt"

// Word is the machine's data word. Cell data, addresses and literals are all
// unsigned 32-bit values.
type Word uint32

func (w Word) String() string {
	return fmt.Sprintf("0x%08x", uint32(w))
}

// DataType tags a stored value so the display knows whether to render it as a
// decimal number or as a single character.
type DataType uint8

// Data types.
const (
	TypeInt  DataType = 0
	TypeChar DataType = 1
)

// Opcode identifies a primitive operation dispatched by the execution loop.
type Opcode uint8

//go:generate go run golang.org/x/tools/cmd/stringer -type=Opcode

// Primitive opcodes. OpNone is the inert default for every cell.
const (
	OpNone Opcode = iota
	OpHalt

	// Control transfer and data movement.
	OpJump
	OpCmp
	OpJe
	OpJne
	OpJg
	OpJge
	OpJl
	OpJle
	OpRead
	OpWrite
	OpCall
	OpRet

	// Logical.
	OpAnd
	OpOr
	OpXor
	OpNot
	OpLshift
	OpRshift

	// Arithmetic.
	OpAdd
	OpSub
	OpMul
	OpDiv

	// I/O.
	OpOut
)

// Cell is one tape position: a primitive opcode, a data word and a type tag.
// The data word is an address, a numeric value or a character code depending
// on the opcode that consumes it.
type Cell struct {
	Op    Opcode
	Data  Word
	DType DataType
}

// Pointer is the instruction pointer. Data and DType hold the value staged by
// the last READ primitive, acting as a bus between consecutive primitives.
type Pointer struct {
	Pos   Word
	Data  Word
	DType DataType
}
