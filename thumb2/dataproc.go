package thumb2

import (
	"github.com/instrumentkit/thumb2/internal/armreg"
	"github.com/instrumentkit/thumb2/internal/bitfield"
)

// PutMovRegReg encodes MOV Rd, Rs. If both registers are low, it emits the
// narrow ADD Rd, Rs, #0 form (0x1C00); otherwise it emits the high-register
// MOV form (0x4600), biasing the destination field by 8 when it is itself a
// high register.
func (w *Writer) PutMovRegReg(rd, rs armreg.ID) error {
	if armreg.IsLow(rd) && armreg.IsLow(rs) {
		w.PutInstruction(0x1C00 | uint16(rs)<<3 | uint16(rd))
		return nil
	}
	var d uint16
	if rd >= armreg.R8 {
		d = 1
	}
	w.PutInstruction(0x4600 | d<<7 | uint16(rs)<<3 | (uint16(rd) & 0x7))
	return nil
}

// PutMovRegU8 encodes MOV Rd, #imm8. Only low registers are addressable by
// this narrow form.
func (w *Writer) PutMovRegU8(rd armreg.ID, imm uint8) error {
	if !armreg.IsLow(rd) {
		return newEncodeError(w, "PutMovRegU8", "destination must be a low register", ErrOperandRange)
	}
	w.PutInstruction(0x2000 | uint16(rd)<<8 | uint16(imm))
	return nil
}

// PutCmpRegImm encodes CMP Rn, #imm8.
func (w *Writer) PutCmpRegImm(rn armreg.ID, imm uint8) error {
	if !armreg.IsLow(rn) {
		return newEncodeError(w, "PutCmpRegImm", "register must be a low register", ErrOperandRange)
	}
	w.PutInstruction(0x2800 | uint16(rn)<<8 | uint16(imm))
	return nil
}

// PutAddRegImm encodes ADD Rd, #imm (two-operand, in place). If rd is SP,
// imm must be a multiple of 4 and is packed into the SP-adjust form
// (0xB000); otherwise the magnitude must fit 8 bits and is packed into
// 0x3000 with a sign bit for negative immediates. PutSubRegImm is defined
// in terms of this selector with a negated immediate.
func (w *Writer) PutAddRegImm(rd armreg.ID, imm int32) error {
	if rd == armreg.SP {
		if imm%4 != 0 {
			return newEncodeError(w, "PutAddRegImm", "SP adjustment must be a multiple of 4", ErrMisaligned)
		}
		mag := imm
		var sign uint16
		if mag < 0 {
			sign = 1
			mag = -mag
		}
		imm7 := mag / 4
		if !bitfield.FitsUint7(uint32(imm7)) {
			return newEncodeError(w, "PutAddRegImm", "SP adjustment out of range", ErrOperandRange)
		}
		w.PutInstruction(0xB000 | sign<<7 | uint16(imm7))
		return nil
	}

	if !bitfield.FitsInt8Imm(imm) {
		return newEncodeError(w, "PutAddRegImm", "immediate magnitude exceeds 8 bits", ErrOperandRange)
	}
	mag := imm
	var sign uint16
	if mag < 0 {
		sign = 1
		mag = -mag
	}
	w.PutInstruction(0x3000 | sign<<11 | uint16(rd)<<8 | uint16(mag))
	return nil
}

// PutSubRegImm encodes SUB Rd, #imm as PutAddRegImm(rd, -imm).
func (w *Writer) PutSubRegImm(rd armreg.ID, imm int32) error {
	return w.PutAddRegImm(rd, -imm)
}

// PutAddRegReg encodes ADD Rd, Rd, Rm (two-operand add, destination equals
// the left operand): the short in-place high-register-capable form.
func (w *Writer) PutAddRegReg(rd, rm armreg.ID) error {
	var d uint16
	if rd >= armreg.R8 {
		d = 1
	}
	w.PutInstruction(0x4400 | d<<7 | uint16(rm)<<3 | (uint16(rd) & 0x7))
	return nil
}

// PutSubRegReg encodes SUB Rd, Rd, Rm via the three-register form with Rn
// set to Rd (there is no in-place high-register SUB form, unlike ADD).
func (w *Writer) PutSubRegReg(rd, rm armreg.ID) error {
	return w.PutSubRegRegReg(rd, rd, rm)
}

// PutAddRegRegReg encodes ADD Rd, Rn, Rm. When rd == rn it emits the short
// in-place form (PutAddRegReg); otherwise the three-register form, which
// requires all three operands to be low registers.
func (w *Writer) PutAddRegRegReg(rd, rn, rm armreg.ID) error {
	if rd == rn {
		return w.PutAddRegReg(rd, rm)
	}
	if !armreg.IsLow(rd) || !armreg.IsLow(rn) || !armreg.IsLow(rm) {
		return newEncodeError(w, "PutAddRegRegReg", "three-register form requires low registers", ErrOperandRange)
	}
	w.PutInstruction(0x1800 | uint16(rm)<<6 | uint16(rn)<<3 | uint16(rd))
	return nil
}

// PutSubRegRegReg encodes SUB Rd, Rn, Rm via the three-register form;
// requires all three operands to be low registers.
func (w *Writer) PutSubRegRegReg(rd, rn, rm armreg.ID) error {
	if !armreg.IsLow(rd) || !armreg.IsLow(rn) || !armreg.IsLow(rm) {
		return newEncodeError(w, "PutSubRegRegReg", "three-register form requires low registers", ErrOperandRange)
	}
	w.PutInstruction(0x1A00 | uint16(rm)<<6 | uint16(rn)<<3 | uint16(rd))
	return nil
}

// PutAddRegRegImm encodes ADD Rd, Rn, #imm. For an SP or PC base it uses the
// scaled (imm*4) 0xA000/0xA800 form and requires a non-negative multiple of
// 4; otherwise it packs a signed 3-bit immediate into 0x1C00 and requires
// |imm| <= 7.
func (w *Writer) PutAddRegRegImm(rd, rn armreg.ID, imm int32) error {
	if rn == armreg.SP || rn == armreg.PC {
		if imm < 0 || imm%4 != 0 {
			return newEncodeError(w, "PutAddRegRegImm", "SP/PC-relative immediate must be a non-negative multiple of 4", ErrMisaligned)
		}
		imm8 := imm / 4
		if !bitfield.FitsUint8(uint32(imm8)) {
			return newEncodeError(w, "PutAddRegRegImm", "SP/PC-relative immediate out of range", ErrOperandRange)
		}
		base := uint16(0xA000)
		if rn == armreg.SP {
			base = 0xA800
		}
		w.PutInstruction(base | uint16(rd)<<8 | uint16(imm8))
		return nil
	}

	if !armreg.IsLow(rd) || !armreg.IsLow(rn) {
		return newEncodeError(w, "PutAddRegRegImm", "general-base form requires low registers", ErrOperandRange)
	}
	mag := imm
	var sign uint16
	if mag < 0 {
		sign = 1
		mag = -mag
	}
	if mag > 7 {
		return newEncodeError(w, "PutAddRegRegImm", "immediate magnitude exceeds 3 bits", ErrOperandRange)
	}
	w.PutInstruction(0x1C00 | sign<<9 | uint16(mag)<<6 | uint16(rn)<<3 | uint16(rd))
	return nil
}

// PutSubRegRegImm encodes SUB Rd, Rn, #imm as PutAddRegRegImm(rd, rn, -imm).
func (w *Writer) PutSubRegRegImm(rd, rn armreg.ID, imm int32) error {
	return w.PutAddRegRegImm(rd, rn, -imm)
}
