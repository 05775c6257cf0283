package thumb2_test

import (
	"testing"

	"github.com/instrumentkit/thumb2/thumb2"
	"github.com/instrumentkit/thumb2/internal/armreg"
)

func TestMarshalArgsSkipsNoOpMoves(t *testing.T) {
	buf := make([]byte, 64)
	w := thumb2.NewWriter(buf, 0x1000)

	args := []thumb2.Argument{
		thumb2.RegArg(armreg.R0), // already in place, no move expected
		thumb2.RegArg(armreg.R5), // needs a move into R1
	}
	if err := w.PutCallRegWithArgumentsArray(armreg.R9, args); err != nil {
		t.Fatalf("PutCallRegWithArgumentsArray: %v", err)
	}

	// R9 is not an argument register, so no target-preservation move is
	// emitted; the only MOV is R5->R1, and an R0->R0 move must not appear.
	// Expected output: MOV R1, R5 (2 bytes) then BLX R9 (2 bytes).
	if got := w.Offset(); got != 4 {
		t.Fatalf("Offset() = %d, want 4 (one MOV plus BLX, no R0->R0 move)", got)
	}
}

func TestCallRegWithArgumentsPreservesClobberedTarget(t *testing.T) {
	buf := make([]byte, 64)
	w := thumb2.NewWriter(buf, 0x1000)

	args := []thumb2.Argument{thumb2.RegArg(armreg.R5)}
	// Target R0 collides with the first argument register; the call
	// marshaller must move R0 into R12 before clobbering R0.
	if err := w.PutCallRegWithArgumentsArray(armreg.R0, args); err != nil {
		t.Fatalf("PutCallRegWithArgumentsArray: %v", err)
	}

	// First instruction should be MOV R12, R0 (hi-register form, D=1 since
	// R12 is high).
	first := uint16(buf[0]) | uint16(buf[1])<<8
	if first&0xFF00 != 0x4600 {
		t.Fatalf("first insn %#04x is not a hi-register MOV", first)
	}
}

func TestCallAddressWithArgumentsStackOverflow(t *testing.T) {
	buf := make([]byte, 256)
	w := thumb2.NewWriter(buf, 0x1000)

	args := []thumb2.Argument{
		thumb2.RegArg(armreg.R0),
		thumb2.RegArg(armreg.R1),
		thumb2.RegArg(armreg.R2),
		thumb2.RegArg(armreg.R3),
		thumb2.AddrArg(0x5000), // stack argument, loaded via scratch reg
		thumb2.RegArg(armreg.R6),
	}
	if err := w.PutCallAddressWithArgumentsArray(0x9000, args); err != nil {
		t.Fatalf("PutCallAddressWithArgumentsArray: %v", err)
	}
	if w.Offset() == 0 {
		t.Fatal("expected emitted instructions for a multi-argument call")
	}
}
