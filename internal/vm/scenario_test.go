package vm_test

// scenario_test.go runs complete programs through the assembler and the
// machine, checking what lands on standard output.

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/rachitdhar/tasm/internal/asm"
	"github.com/rachitdhar/tasm/internal/log"
	"github.com/rachitdhar/tasm/internal/vm"
)

type scenarioHarness struct {
	*testing.T
}

// run assembles and executes a source program, returning its display output.
func (t *scenarioHarness) run(source string) string {
	t.Helper()

	var out bytes.Buffer

	logger := log.NewFormattedLogger(io.Discard)

	machine := vm.New(
		vm.WithLogger(logger),
		vm.WithOutput(&out),
	)

	assembler := asm.NewAssembler(machine.Tape, logger)

	entry, err := assembler.Assemble(strings.NewReader(source))
	if err != nil {
		t.Fatalf("assemble: %s", err)
	}

	machine.Jump(entry)

	if err := machine.Run(context.Background()); err != nil {
		t.Fatalf("run: %s", err)
	}

	return out.String()
}

func TestScenario_ConstantPrint(tt *testing.T) {
	t := scenarioHarness{tt}

	got := t.run(`
main:
put 0x18a88 "Hi\n"
out
hlt
`)

	if got != "Hi\n" {
		t.Errorf("got %q, want %q", got, "Hi\n")
	}
}

func TestScenario_Arithmetic(tt *testing.T) {
	t := scenarioHarness{tt}

	// 0x6 holds a pointer to 0x7; [0x6] dereferences to the 5 stored there.
	got := t.run(`
main:
put 0x5 7
put 0x6 0x7
put 0x7 5
sub 0x5 [0x6]
put 0x18a88 [0x5]
out
hlt
`)

	if got != "2" {
		t.Errorf("got %q, want %q", got, "2")
	}
}

func TestScenario_CallRetLoop(tt *testing.T) {
	t := scenarioHarness{tt}

	got := t.run(`
increment:
add 0x5 0x6
ret

main:
put 0x5 0
put 0x6 1
call increment
call increment
call increment
call increment
call increment
mov 0x18a88 0x5
out
hlt
`)

	if got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
}

func TestScenario_ConditionalJump(tt *testing.T) {
	t := scenarioHarness{tt}

	// Forward targets are spelled as raw code addresses since labels only
	// resolve backward: 0x31135 is the "=" branch, 0x31138 the join.
	got := t.run(`
main:
put 0x5 9
put 0x6 9
cmp 0x5 0x6
je 0x31135
put 0x18a88 "!"
jmp 0x31138
put 0x18a88 "="
out
hlt
`)

	if got != "=" {
		t.Errorf("got %q, want %q", got, "=")
	}
}

func TestScenario_NotEqualFallsThrough(tt *testing.T) {
	t := scenarioHarness{tt}

	got := t.run(`
main:
put 0x5 9
put 0x6 8
cmp 0x5 0x6
je 0x31135
put 0x18a88 "!"
jmp 0x31138
put 0x18a88 "="
out
hlt
`)

	if got != "!" {
		t.Errorf("got %q, want %q", got, "!")
	}
}

func TestScenario_IndirectAddressing(tt *testing.T) {
	t := scenarioHarness{tt}

	got := t.run(`
main:
put 0x10 42
put 0x11 0x10
mov 0x18a88 [0x11]
out
hlt
`)

	if got != "42" {
		t.Errorf("got %q, want %q", got, "42")
	}
}

func TestScenario_IndirectBothOperands(tt *testing.T) {
	t := scenarioHarness{tt}

	// [0x12] names the destination pointer and [0x11] the source pointer;
	// both trampolines must patch across each other correctly.
	got := t.run(`
main:
put 0x10 42
put 0x11 0x10
put 0x12 0x18a88
mov [0x12] [0x11]
out
hlt
`)

	if got != "42" {
		t.Errorf("got %q, want %q", got, "42")
	}
}

func TestScenario_SafetyHalt(tt *testing.T) {
	t := scenarioHarness{tt}

	// No explicit hlt: the appended safety halt stops the machine.
	got := t.run(`
main:
put 0x18a88 "ok"
out
`)

	if got != "ok" {
		t.Errorf("got %q, want %q", got, "ok")
	}
}

func TestScenario_MovIdempotent(tt *testing.T) {
	t := scenarioHarness{tt}

	got := t.run(`
main:
put 0x10 3
mov 0x11 0x10
mov 0x11 0x10
put 0x18a88 [0x11]
wait:
out
hlt
`)

	if got != "3" {
		t.Errorf("got %q, want %q", got, "3")
	}
}
