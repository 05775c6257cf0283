package thumb2

// Condition is the 4-bit ARM/Thumb condition code, used by conditional
// branch selectors. Callers select a Condition value directly; there is no
// textual assembly syntax to parse it from.
type Condition uint32

const (
	CondEQ Condition = iota // Equal (Z set)
	CondNE                  // Not equal (Z clear)
	CondCS                  // Carry set / unsigned higher or same
	CondCC                  // Carry clear / unsigned lower
	CondMI                  // Minus / negative
	CondPL                  // Plus / positive or zero
	CondVS                  // Overflow
	CondVC                  // No overflow
	CondHI                  // Unsigned higher
	CondLS                  // Unsigned lower or same
	CondGE                  // Signed greater than or equal
	CondLT                  // Signed less than
	CondGT                  // Signed greater than
	CondLE                  // Signed less than or equal
	CondAL                  // Always (unconditional; not used by PutBCondLabel, which emits PutBLabel instead)
)
