package thumb2

// Flush is the terminal, idempotent-after-success finalization step: it
// resolves and patches every pending label reference, lays down the
// literal pool and patches every pending literal reference, then clears
// both pending tables.
//
// On any failure both tables are emptied anyway, so a subsequent Flush call
// on the same Writer is a no-op that succeeds — the caller is expected to
// treat a failed Flush as a programming error and discard the buffer, not
// retry it.
func (w *Writer) Flush() error {
	err := w.patchLabelRefs()
	if err == nil {
		err = w.flushLiteralPool()
	}

	w.labelRefs = w.labelRefs[:0]
	w.literalRefs = w.literalRefs[:0]

	return err
}
