package thumb2

import "github.com/instrumentkit/thumb2/internal/armreg"

// PutNop encodes NOP (MOV R8, R8 in the canonical Thumb idiom, 0x46C0).
func (w *Writer) PutNop() {
	w.PutInstruction(0x46C0)
}

// PutBkptImm encodes BKPT #imm8.
func (w *Writer) PutBkptImm(imm uint8) {
	w.PutInstruction(0xBE00 | uint16(imm))
}

// PutBreakpoint emits the target OS's preferred breakpoint trap: the
// undefined-instruction trap Linux/Android raise SIGTRAP on (0xDE01) for
// those two targets, or BKPT #0 followed by BX LR elsewhere.
func (w *Writer) PutBreakpoint() {
	switch w.targetOS {
	case OSLinux, OSAndroid:
		w.PutInstruction(0xDE01)
	default:
		w.PutBkptImm(0)
		_ = w.PutBxReg(armreg.LR)
	}
}
