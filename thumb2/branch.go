package thumb2

import (
	"github.com/instrumentkit/thumb2/internal/armreg"
	"github.com/instrumentkit/thumb2/internal/bitfield"
)

// PutBImm encodes an unconditional branch to an immediate target address.
// Only the narrow (16-bit) B encoding is supported in this subset — a
// signed 11-bit halfword displacement, i.e. a target within roughly ±2KB of
// the branch. Farther immediate branches should go through PutBlImm/
// PutBlxImm or a literal load into a register followed by PutBxReg.
func (w *Writer) PutBImm(target uint32) error {
	halfwords, err := w.branchDisplacement(target)
	if err != nil {
		return newEncodeError(w, "PutBImm", "branch target not halfword-aligned", err)
	}
	if !bitfield.FitsInt11(halfwords) {
		return newEncodeError(w, "PutBImm", "branch displacement out of range", ErrOperandRange)
	}
	w.PutInstruction(0xE000 | uint16(halfwords)&0x07FF)
	return nil
}

// branchDisplacement computes (target & ~1) - (pc + 4), halved: the Thumb
// pipeline always reads the PC as two instructions ahead of the one
// executing, so that offset is added before taking the difference. It
// fails if the raw byte distance is odd (Thumb branches are
// halfword-granular).
func (w *Writer) branchDisplacement(target uint32) (int32, error) {
	pc := w.pc + 4
	distance := bitfield.AsInt32(target&^1) - bitfield.AsInt32(pc)
	if distance%2 != 0 {
		return 0, ErrMisaligned
	}
	return distance / 2, nil
}

// PutBxReg encodes BX Rn (branch and exchange via register).
func (w *Writer) PutBxReg(rn armreg.ID) error {
	w.PutInstruction(0x4700 | uint16(rn)<<3)
	return nil
}

// PutBlxReg encodes BLX Rn (branch with link and exchange via register).
func (w *Writer) PutBlxReg(rn armreg.ID) error {
	w.PutInstruction(0x4780 | uint16(rn)<<3)
	return nil
}

// blSplit decomposes a signed, already-halfword-aligned 25-bit byte offset
// into the S/J1/J2/imm10/imm11 fields of the wide BL/BLX(immediate)
// encoding, per the ARMv7-M Architecture Reference Manual's T1/T2 forms.
func blSplit(offset int32) (s, j1, j2 uint16, imm10, imm11 uint16) {
	u := uint32(offset)
	s = uint16((u >> 24) & 1)
	i1 := uint16((u >> 23) & 1)
	i2 := uint16((u >> 22) & 1)
	imm10 = uint16((u >> 12) & 0x3FF)
	imm11 = uint16((u >> 1) & 0x7FF)
	j1 = 1 ^ i1 ^ s
	j2 = 1 ^ i2 ^ s
	return
}

// putBlOrBlx shares the wide 32-bit encoding between PutBlImm and
// PutBlxImm; they differ only in bit 12 of the second halfword (1 for BL,
// 0 for BLX) and in whether the target must be word-aligned (BLX switches
// to ARM mode, so its target must be a word address).
func (w *Writer) putBlOrBlx(op string, target uint32, isBlx bool) error {
	pc := w.pc + 4
	var rawTarget uint32 = target
	if isBlx {
		rawTarget &^= 3 // BLX(imm) target is forced word-aligned
	} else {
		rawTarget &^= 1
	}
	offset := bitfield.AsInt32(rawTarget) - bitfield.AsInt32(pc)
	if offset%2 != 0 {
		return newEncodeError(w, op, "branch target not halfword-aligned", ErrMisaligned)
	}
	if offset < -16777216 || offset > 16777214 {
		return newEncodeError(w, op, "branch displacement exceeds 25-bit signed range", ErrOperandRange)
	}

	s, j1, j2, imm10, imm11 := blSplit(offset)

	first := 0xF000 | (s << 10) | imm10
	var second uint16
	if isBlx {
		second = 0xC000 | (j1 << 13) | (j2 << 11) | (imm11 &^ 1)
	} else {
		second = 0xD000 | (j1 << 13) | (j2 << 11) | imm11
	}

	w.PutInstruction(first)
	w.PutInstruction(second)
	return nil
}

// PutBlImm encodes BL (branch with link) to an immediate Thumb target.
func (w *Writer) PutBlImm(target uint32) error {
	return w.putBlOrBlx("PutBlImm", target, false)
}

// PutBlxImm encodes BLX (branch with link and exchange) to an immediate,
// word-aligned ARM target, switching the processor out of Thumb state.
func (w *Writer) PutBlxImm(target uint32) error {
	return w.putBlOrBlx("PutBlxImm", target, true)
}

// PutBLabel encodes an unconditional branch to a label not yet resolved: it
// emits the bare 0xE000 opcode with zero displacement and records a
// label_ref for Flush to patch.
func (w *Writer) PutBLabel(id LabelID) error {
	w.PutInstruction(0xE000)
	return w.addLabelRef("PutBLabel", id)
}

// PutBCondLabel encodes a conditional branch to a label not yet resolved.
func (w *Writer) PutBCondLabel(cond Condition, id LabelID) error {
	if cond == CondAL {
		return w.PutBLabel(id)
	}
	w.PutInstruction(0xD000 | uint16(cond)<<8)
	return w.addLabelRef("PutBCondLabel", id)
}

// PutBeqLabel is PutBCondLabel(CondEQ, id).
func (w *Writer) PutBeqLabel(id LabelID) error {
	return w.PutBCondLabel(CondEQ, id)
}

// PutBneLabel is PutBCondLabel(CondNE, id).
func (w *Writer) PutBneLabel(id LabelID) error {
	return w.PutBCondLabel(CondNE, id)
}

// PutCbzRegLabel encodes CBZ Rn, label (compare-and-branch-if-zero; low
// registers only, forward-only, per the narrow CBZ/CBNZ encoding).
func (w *Writer) PutCbzRegLabel(rn armreg.ID, id LabelID) error {
	if !armreg.IsLow(rn) {
		return newEncodeError(w, "PutCbzRegLabel", "CBZ requires a low register", ErrOperandRange)
	}
	w.PutInstruction(0xB100 | uint16(rn))
	return w.addLabelRef("PutCbzRegLabel", id)
}

// PutCbnzRegLabel encodes CBNZ Rn, label (compare-and-branch-if-nonzero).
func (w *Writer) PutCbnzRegLabel(rn armreg.ID, id LabelID) error {
	if !armreg.IsLow(rn) {
		return newEncodeError(w, "PutCbnzRegLabel", "CBNZ requires a low register", ErrOperandRange)
	}
	w.PutInstruction(0xB900 | uint16(rn))
	return w.addLabelRef("PutCbnzRegLabel", id)
}
