package thumb2

import (
	"github.com/instrumentkit/thumb2/internal/armreg"
)

// PutLdrRegReg encodes LDR Rd, [Rn, Rm] (pure register+register addressing).
// This narrow form exists only for three low registers.
func (w *Writer) PutLdrRegReg(rd, rn, rm armreg.ID) error {
	if !armreg.IsLow(rd) || !armreg.IsLow(rn) || !armreg.IsLow(rm) {
		return newEncodeError(w, "PutLdrRegReg", "register+register form requires low registers", ErrOperandRange)
	}
	w.PutInstruction(0x5800 | uint16(rm)<<6 | uint16(rn)<<3 | uint16(rd))
	return nil
}

// PutStrRegReg encodes STR Rd, [Rn, Rm].
func (w *Writer) PutStrRegReg(rd, rn, rm armreg.ID) error {
	if !armreg.IsLow(rd) || !armreg.IsLow(rn) || !armreg.IsLow(rm) {
		return newEncodeError(w, "PutStrRegReg", "register+register form requires low registers", ErrOperandRange)
	}
	w.PutInstruction(0x5000 | uint16(rm)<<6 | uint16(rn)<<3 | uint16(rd))
	return nil
}

// putMemRegRegOffset is shared by PutLdrRegRegOffset/PutStrRegRegOffset: it
// selects the narrow SP-relative form, the narrow low-register-base form,
// or the wide 12-bit-offset form, in that order of preference.
func (w *Writer) putMemRegRegOffset(op string, rd, rn armreg.ID, offset int32, isLoad bool) error {
	if rn == armreg.SP && armreg.IsLow(rd) && offset >= 0 && offset%4 == 0 && offset/4 <= 0xFF {
		base := uint16(0x9000)
		if isLoad {
			base = 0x9800
		}
		w.PutInstruction(base | uint16(rd)<<8 | uint16(offset/4))
		return nil
	}

	if rn != armreg.SP && armreg.IsLow(rd) && armreg.IsLow(rn) && offset >= 0 && offset%4 == 0 && offset/4 <= 0x1F {
		base := uint16(0x6000)
		if isLoad {
			base = 0x6800
		}
		w.PutInstruction(base | uint16(offset/4)<<6 | uint16(rn)<<3 | uint16(rd))
		return nil
	}

	if offset < 0 || offset > 4095 {
		return newEncodeError(w, op, "offset out of range", ErrOperandRange)
	}
	base := uint16(0xF8C0)
	if isLoad {
		base |= 0x0010
	}
	w.PutInstruction(base | uint16(rn))
	w.PutInstruction(uint16(rd)<<12 | uint16(offset)&0x0FFF)
	return nil
}

// PutLdrRegRegOffset encodes LDR Rd, [Rn, #offset], preferring a narrow
// form (scaled immediate against a low-register or SP base) and falling
// back to the wide 12-bit-offset form.
func (w *Writer) PutLdrRegRegOffset(rd, rn armreg.ID, offset int32) error {
	return w.putMemRegRegOffset("PutLdrRegRegOffset", rd, rn, offset, true)
}

// PutStrRegRegOffset encodes STR Rd, [Rn, #offset].
func (w *Writer) PutStrRegRegOffset(rd, rn armreg.ID, offset int32) error {
	return w.putMemRegRegOffset("PutStrRegRegOffset", rd, rn, offset, false)
}
