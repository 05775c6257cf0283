package thumb2_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/instrumentkit/thumb2/thumb2"
	"github.com/instrumentkit/thumb2/internal/armreg"
)

// TestFlushClearsBothTablesOnSuccess checks that after a successful flush
// both pending tables are empty: a second Flush after a successful one
// must behave like a Writer that had nothing pending, succeeding without
// patching or laying down the literal pool again.
func TestFlushClearsBothTablesOnSuccess(t *testing.T) {
	buf := make([]byte, 64)
	w := thumb2.NewWriter(buf, 0x1000)

	require.NoError(t, w.PutBLabel("L"))
	w.PutNop()
	require.NoError(t, w.PutLabel("L"))
	require.NoError(t, w.PutLdrRegU32(armreg.R0, 0x1111))
	require.NoError(t, w.Flush())
	offset := w.Offset()

	// A second Flush with nothing newly pending must succeed trivially.
	require.NoError(t, w.Flush())
	require.Equal(t, offset, w.Offset(), "second Flush must not emit a second literal pool")
}

func TestFlushOrdersLabelsBeforeLiteralPool(t *testing.T) {
	buf := make([]byte, 64)
	w := thumb2.NewWriter(buf, 0x1000)

	require.NoError(t, w.PutBLabel("L"))
	require.NoError(t, w.PutLdrRegU32(armreg.R0, 0xCAFEBABE))
	require.NoError(t, w.PutLabel("L"))
	require.NoError(t, w.Flush())

	offset := w.Offset()
	require.Greater(t, offset, uint32(0))
	// B at 0x1000, LDR at 0x1002, label at 0x1004: the branch is patched in
	// place (zero displacement, still B) and the pool slot follows the last
	// instruction, already word-aligned at offset 4.
	require.Equal(t, uint32(8), offset)
	require.Equal(t, []byte{0x00, 0xE0}, buf[0:2])
	require.Equal(t, []byte{0xBE, 0xBA, 0xFE, 0xCA}, buf[4:8])
}
