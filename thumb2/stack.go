package thumb2

import "github.com/instrumentkit/thumb2/internal/armreg"

// putRegList is shared by the push/pop selectors: narrow when every
// register in the list is either low or the family's special register (LR
// for push, PC for pop), wide otherwise.
func (w *Writer) putRegList(op string, regs []armreg.ID, special armreg.ID, narrowOp, wideOp uint16) error {
	if len(regs) == 0 {
		return newEncodeError(w, op, "register list must not be empty", ErrOperandRange)
	}

	narrow := true
	for _, r := range regs {
		if r != special && !armreg.IsLow(r) {
			narrow = false
			break
		}
	}

	if narrow {
		var mask uint16
		for _, r := range regs {
			if r == special {
				mask |= 1 << 8
			} else {
				mask |= 1 << uint16(r)
			}
		}
		w.PutInstruction(narrowOp | mask)
		return nil
	}

	var mask uint16
	for _, r := range regs {
		mask |= 1 << uint16(r)
	}
	w.PutInstruction(wideOp)
	w.PutInstruction(mask)
	return nil
}

// PutPushRegsArray encodes PUSH {regs...}, choosing the narrow 9-bit-mask
// form (0xB400, bit 8 for LR) when every register is low or LR, otherwise
// the wide 16-bit-mask form (0xE92D).
func (w *Writer) PutPushRegsArray(regs []armreg.ID) error {
	return w.putRegList("PutPushRegsArray", regs, armreg.LR, 0xB400, 0xE92D)
}

// PutPushRegs is the variadic convenience form of PutPushRegsArray.
func (w *Writer) PutPushRegs(regs ...armreg.ID) error {
	return w.PutPushRegsArray(regs)
}

// PutPopRegsArray encodes POP {regs...}, choosing the narrow 9-bit-mask
// form (0xBC00, bit 8 for PC) when every register is low or PC, otherwise
// the wide 16-bit-mask form (0xE8BD).
func (w *Writer) PutPopRegsArray(regs []armreg.ID) error {
	return w.putRegList("PutPopRegsArray", regs, armreg.PC, 0xBC00, 0xE8BD)
}

// PutPopRegs is the variadic convenience form of PutPopRegsArray.
func (w *Writer) PutPopRegs(regs ...armreg.ID) error {
	return w.PutPopRegsArray(regs)
}
