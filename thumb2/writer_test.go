package thumb2_test

import (
	"testing"

	"github.com/instrumentkit/thumb2/thumb2"
)

func TestNewWriterStartsAtBase(t *testing.T) {
	buf := make([]byte, 16)
	w := thumb2.NewWriter(buf, 0x1000)

	if got := w.Current(); got != 0x1000 {
		t.Fatalf("Current() = %#x, want %#x", got, 0x1000)
	}
	if got := w.Offset(); got != 0 {
		t.Fatalf("Offset() = %d, want 0", got)
	}
}

func TestPutInstructionAdvancesCursor(t *testing.T) {
	buf := make([]byte, 16)
	w := thumb2.NewWriter(buf, 0x1000)

	w.PutInstruction(0x46C0)

	if got := w.Offset(); got != 2 {
		t.Fatalf("Offset() = %d, want 2", got)
	}
	if buf[0] != 0xC0 || buf[1] != 0x46 {
		t.Fatalf("buf[0:2] = %02X %02X, want C0 46", buf[0], buf[1])
	}
}

func TestPutBytesRejectsOddLength(t *testing.T) {
	buf := make([]byte, 16)
	w := thumb2.NewWriter(buf, 0x1000)

	if err := w.PutBytes([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected error for odd-length PutBytes, got nil")
	}
}

func TestPutBytesCopiesAndAdvances(t *testing.T) {
	buf := make([]byte, 16)
	w := thumb2.NewWriter(buf, 0x1000)

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := w.PutBytes(payload); err != nil {
		t.Fatalf("PutBytes: %v", err)
	}
	if got := w.Offset(); got != 4 {
		t.Fatalf("Offset() = %d, want 4", got)
	}
	for i, b := range payload {
		if buf[i] != b {
			t.Fatalf("buf[%d] = %02X, want %02X", i, buf[i], b)
		}
	}
}

func TestSkipAdvancesWithoutWriting(t *testing.T) {
	buf := make([]byte, 16)
	buf[4] = 0xAA
	w := thumb2.NewWriter(buf, 0x1000)

	w.Skip(4)

	if got := w.Current(); got != 0x1004 {
		t.Fatalf("Current() = %#x, want %#x", got, 0x1004)
	}
	if buf[4] != 0xAA {
		t.Fatal("Skip must not write to the buffer")
	}
}

func TestResetAtDecouplesCodeAndPC(t *testing.T) {
	buf := make([]byte, 16)
	w := thumb2.NewWriter(buf, 0)
	w.ResetAt(buf, 0x2000, 0x9000)

	w.PutInstruction(0x46C0)

	if got := w.Current(); got != 0x2002 {
		t.Fatalf("Current() = %#x, want %#x", got, 0x2002)
	}
	if got := w.Offset(); got != 2 {
		t.Fatalf("Offset() = %d, want 2", got)
	}
}

func TestRefUnref(t *testing.T) {
	buf := make([]byte, 16)
	w := thumb2.NewWriter(buf, 0x1000)

	w.Ref()
	if w.Unref() {
		t.Fatal("Unref() after a single Ref() should not report zero yet")
	}
	if !w.Unref() {
		t.Fatal("Unref() at the base refcount should report zero")
	}
}

func TestIdenticalCallSequencesProduceIdenticalBytes(t *testing.T) {
	build := func() []byte {
		buf := make([]byte, 64)
		w := thumb2.NewWriter(buf, 0x1000)
		_ = w.PutBLabel("L")
		w.PutNop()
		_ = w.PutLabel("L")
		if err := w.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		return buf[:w.Offset()]
	}

	a := build()
	b := build()
	if len(a) != len(b) {
		t.Fatalf("length mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("byte %d differs: %02X vs %02X", i, a[i], b[i])
		}
	}
}
