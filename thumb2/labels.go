package thumb2

import "github.com/instrumentkit/thumb2/internal/bitfield"

// PutLabel records the current PC as the resolved address for id. It fails
// if id is already resolved (each label is single-assignment: duplicate
// labels are a hard error, never silently reused) or if the label table is
// full.
//
// Label identity is by == equality on id, not by any string content the
// caller happens to use; the caller supplies a stable token.
func (w *Writer) PutLabel(id LabelID) error {
	for _, l := range w.labels {
		if l.id == id {
			return newEncodeError(w, "PutLabel", "label already defined", ErrDuplicateLabel)
		}
	}
	if len(w.labels) >= w.labelCap {
		return newEncodeError(w, "PutLabel", "label table full", ErrTableFull)
	}
	w.labels = append(w.labels, labelEntry{id: id, address: w.pc})
	return nil
}

// addLabelRef records an unresolved forward reference to id: insnPtr is the
// buffer offset of the placeholder halfword, already emitted with a zero
// displacement field. refPC is the PC value the processor will use when
// computing the eventual displacement (current PC + 4, the Thumb pipeline
// offset).
func (w *Writer) addLabelRef(op string, id LabelID) error {
	if len(w.labelRefs) >= w.labelRefCap {
		return newEncodeError(w, op, "label-ref table full", ErrTableFull)
	}
	w.labelRefs = append(w.labelRefs, labelRefEntry{
		id:      id,
		insnPtr: w.code - w.base - 2, // the halfword just emitted by the caller
		refPC:   w.pc - 2 + 4,        // PC of that halfword, plus the pipeline offset
	})
	return nil
}

// resolveLabel looks up id's resolved address.
func (w *Writer) resolveLabel(id LabelID) (uint32, bool) {
	for _, l := range w.labels {
		if l.id == id {
			return l.address, true
		}
	}
	return 0, false
}

// patchLabelRefs is Flush's first step: resolve and patch every pending
// label reference before the literal pool is laid down.
func (w *Writer) patchLabelRefs() error {
	for _, ref := range w.labelRefs {
		addr, ok := w.resolveLabel(ref.id)
		if !ok {
			return newEncodeError(w, "Flush", "label referenced but never defined", ErrUnresolvedLabel)
		}

		distance := bitfield.AsInt32(addr) - bitfield.AsInt32(ref.refPC)
		halfwords := distance / 2

		insn := uint16(w.buf[ref.insnPtr]) | uint16(w.buf[ref.insnPtr+1])<<8

		switch {
		case insn&0xF000 == 0xD000: // conditional branch (Bcc)
			if !bitfield.FitsInt8(halfwords) {
				return newEncodeError(w, "Flush", "conditional branch displacement out of range", ErrRangeOverflow)
			}
			insn = (insn &^ 0x00FF) | uint16(halfwords)&0x00FF
		case insn&0xF800 == 0xE000: // unconditional branch (B)
			if !bitfield.FitsInt11(halfwords) {
				return newEncodeError(w, "Flush", "unconditional branch displacement out of range", ErrRangeOverflow)
			}
			insn = (insn &^ 0x07FF) | uint16(halfwords)&0x07FF
		default: // compare-and-branch (CBZ/CBNZ)
			if halfwords < 0 || !bitfield.FitsUint7(uint32(halfwords)) {
				return newEncodeError(w, "Flush", "compare-and-branch displacement out of range", ErrRangeOverflow)
			}
			u := uint16(halfwords)
			iBit := (u >> 5) & 0x1
			imm5 := u & 0x1F
			insn = insn | (iBit << 9) | (imm5 << 3)
		}

		w.buf[ref.insnPtr] = byte(insn)
		w.buf[ref.insnPtr+1] = byte(insn >> 8)
	}
	return nil
}
