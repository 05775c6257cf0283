package thumb2

import (
	"github.com/instrumentkit/thumb2/internal/armreg"
	"github.com/instrumentkit/thumb2/internal/bitfield"
)

// PutLdrRegU32 is the central literal-loading mechanism: it appends a
// placeholder PC-relative load and records a pending literal reference
// that Flush later resolves against a deduplicated literal pool laid down
// right after the last emitted instruction.
func (w *Writer) PutLdrRegU32(rd armreg.ID, value uint32) error {
	if len(w.literalRefs) >= w.literalRefCap {
		return newEncodeError(w, "PutLdrRegU32", "literal-ref table full", ErrTableFull)
	}

	wide := !armreg.IsLow(rd)
	insnPtr := w.code - w.base

	if wide {
		// T2: F8 5F Rd <<12 (offset left zero, patched at flush)
		w.PutInstruction(0xF85F)
		w.PutInstruction(uint16(rd) << 12)
	} else {
		// T1: 0x4800 | Rd<<8 (offset left zero, patched at flush)
		w.PutInstruction(0x4800 | uint16(rd)<<8)
	}

	// w.pc already advanced past the placeholder by PutInstruction above, so
	// the instruction's own PC is w.pc minus however many halfwords we just
	// emitted; add the pipeline offset on top, per the data model.
	insnBytes := uint32(2)
	if wide {
		insnBytes = 4
	}
	w.literalRefs = append(w.literalRefs, literalRefEntry{
		value:   value,
		insnPtr: insnPtr,
		refPC:   w.pc - insnBytes + 4,
		wide:    wide,
	})
	return nil
}

// PutLdrRegAddress is an alias for PutLdrRegU32 used by the call-argument
// marshaller, where the 32-bit literal being loaded is an address rather
// than an arbitrary constant. The encoding is identical either way.
func (w *Writer) PutLdrRegAddress(rd armreg.ID, addr uint64) error {
	return w.PutLdrRegU32(rd, uint32(addr))
}

// flushLiteralPool is Flush's second step: lay down the deduplicated
// literal pool immediately after the last emitted instruction, aligning to
// 4 bytes first if any pending reference is a narrow (T1) load, then patch
// every reference's displacement field.
func (w *Writer) flushLiteralPool() error {
	if len(w.literalRefs) == 0 {
		return nil
	}

	needsAlign := false
	for _, ref := range w.literalRefs {
		if !ref.wide {
			needsAlign = true
			break
		}
	}
	if needsAlign && w.pc%4 != 0 {
		w.PutInstruction(0x46C0) // NOP
	}

	// Deduplicate: one slot per distinct value, in first-occurrence order.
	type slot struct {
		value uint32
		pc    uint32
	}
	var slots []slot
	slotFor := func(value uint32) (uint32, error) {
		for _, s := range slots {
			if s.value == value {
				return s.pc, nil
			}
		}
		slotIndex, err := bitfield.SafeIntToUint32(len(slots))
		if err != nil {
			return 0, err
		}
		slotPC := w.pc + slotIndex*4
		slots = append(slots, slot{value: value, pc: slotPC})
		return slotPC, nil
	}

	type patch struct {
		insnPtr uint32
		wide    bool
		dist    uint32
	}
	patches := make([]patch, 0, len(w.literalRefs))
	for _, ref := range w.literalRefs {
		slotPC, err := slotFor(ref.value)
		if err != nil {
			return newEncodeError(w, "Flush", "literal pool slot count overflow", err)
		}
		// The PC-relative base is the placeholder instruction's own address
		// rounded down to a word boundary -- ref.refPC already carries the
		// +4 pipeline offset (per the data model), so that offset is backed
		// out before masking.
		alignedRefPC := (ref.refPC - 4) &^ 3
		dist := bitfield.AsInt32(slotPC) - bitfield.AsInt32(alignedRefPC)
		udist, err := bitfield.SafeInt32ToUint32(dist)
		if err != nil {
			return newEncodeError(w, "Flush", "literal pool placed before its reference", ErrRangeOverflow)
		}

		if ref.wide {
			if !bitfield.FitsUint12(udist) {
				return newEncodeError(w, "Flush", "wide literal-load displacement out of range", ErrRangeOverflow)
			}
		} else {
			if udist%4 != 0 || !bitfield.FitsUint8(udist/4) {
				return newEncodeError(w, "Flush", "narrow literal-load displacement out of range", ErrRangeOverflow)
			}
		}
		patches = append(patches, patch{insnPtr: ref.insnPtr, wide: ref.wide, dist: udist})
	}

	for _, p := range patches {
		if p.wide {
			off := p.insnPtr + 2
			second := uint16(w.buf[off]) | uint16(w.buf[off+1])<<8
			second = (second &^ 0x0FFF) | uint16(p.dist)&0x0FFF
			w.buf[off] = byte(second)
			w.buf[off+1] = byte(second >> 8)
		} else {
			first := uint16(w.buf[p.insnPtr]) | uint16(w.buf[p.insnPtr+1])<<8
			first = (first &^ 0x00FF) | uint16(p.dist/4)&0x00FF
			w.buf[p.insnPtr] = byte(first)
			w.buf[p.insnPtr+1] = byte(first >> 8)
		}
	}

	for _, s := range slots {
		off := w.code - w.base
		w.buf[off] = byte(s.value)
		w.buf[off+1] = byte(s.value >> 8)
		w.buf[off+2] = byte(s.value >> 16)
		w.buf[off+3] = byte(s.value >> 24)
		w.code += 4
		w.pc += 4
	}

	return nil
}
