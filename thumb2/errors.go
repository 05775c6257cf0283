package thumb2

import (
	"errors"
	"fmt"
)

// Sentinel errors for the encoder's distinct failure kinds. Callers match
// them with errors.Is rather than string comparison.
var (
	// ErrOperandRange is returned when an immediate or offset exceeds every
	// supported encoding's range for that operation.
	ErrOperandRange = errors.New("operand out of range")
	// ErrTableFull is returned when the label, label-ref, or literal-ref
	// table has reached capacity.
	ErrTableFull = errors.New("fixup table full")
	// ErrMisaligned is returned for an odd put_bytes length, a misaligned
	// SP/PC-relative offset, or a branch displacement that is not a whole
	// number of halfwords.
	ErrMisaligned = errors.New("misaligned operand")
	// ErrDuplicateLabel is returned when PutLabel is called twice for the
	// same label id.
	ErrDuplicateLabel = errors.New("label already defined")
	// ErrUnresolvedLabel is returned from Flush when a referenced label was
	// never defined.
	ErrUnresolvedLabel = errors.New("unresolved label")
	// ErrRangeOverflow is returned from Flush when a resolved branch
	// displacement does not fit the placeholder's field width.
	ErrRangeOverflow = errors.New("branch range overflow")
)

// EncodeError gives emit-call failures enough context to act on without a
// debugger attached: which operation failed, at what buffer offset, and why.
type EncodeError struct {
	Op      string // the emit call that failed, e.g. "PutAddRegImm"
	Offset  uint32 // buffer offset (bytes from base) at the time of the call
	Message string
	Wrapped error // one of the sentinels above, or a wrapped lower-level error
}

// Error implements the error interface.
func (e *EncodeError) Error() string {
	loc := fmt.Sprintf("%s @ +0x%x", e.Op, e.Offset)
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", loc, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// Unwrap returns the wrapped sentinel so errors.Is/errors.As work.
func (e *EncodeError) Unwrap() error {
	return e.Wrapped
}

// newEncodeError builds an EncodeError anchored to the writer's current
// offset.
func newEncodeError(w *Writer, op, message string, wrapped error) *EncodeError {
	return &EncodeError{
		Op:      op,
		Offset:  w.Offset(),
		Message: message,
		Wrapped: wrapped,
	}
}
