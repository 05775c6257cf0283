package thumb2_test

import (
	"testing"

	"github.com/instrumentkit/thumb2/thumb2"
)

// TestScenarioNop reproduces the documented concrete scenario: put_nop()
// then flush() must produce bytes C0 46 with offset 2.
func TestScenarioNop(t *testing.T) {
	buf := make([]byte, 8)
	w := thumb2.NewWriter(buf, 0x1000)
	w.PutNop()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := w.Offset(); got != 2 {
		t.Fatalf("Offset() = %d, want 2", got)
	}
	if buf[0] != 0xC0 || buf[1] != 0x46 {
		t.Fatalf("bytes = %02X %02X, want C0 46", buf[0], buf[1])
	}
}

// TestScenarioBreakpointOnLinux reproduces the documented concrete
// scenario: set_target_os(linux); put_breakpoint(); flush() must produce
// bytes 01 DE.
func TestScenarioBreakpointOnLinux(t *testing.T) {
	buf := make([]byte, 8)
	w := thumb2.NewWriter(buf, 0x1000)
	w.SetTargetOS(thumb2.OSLinux)
	w.PutBreakpoint()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if buf[0] != 0x01 || buf[1] != 0xDE {
		t.Fatalf("bytes = %02X %02X, want 01 DE", buf[0], buf[1])
	}
}

func TestPutBreakpointOnOtherOS(t *testing.T) {
	buf := make([]byte, 8)
	w := thumb2.NewWriter(buf, 0x1000)
	w.SetTargetOS(thumb2.OSOther)
	w.PutBreakpoint()
	if got := w.Offset(); got != 4 {
		t.Fatalf("Offset() = %d, want 4 (BKPT #0 + BX LR)", got)
	}
	if buf[0] != 0x00 || buf[1] != 0xBE {
		t.Fatalf("bytes = %02X %02X, want 00 BE (BKPT #0)", buf[0], buf[1])
	}
}

func TestPutBkptImmEncoding(t *testing.T) {
	buf := make([]byte, 8)
	w := thumb2.NewWriter(buf, 0x1000)
	w.PutBkptImm(0x7F)
	if buf[0] != 0x7F || buf[1] != 0xBE {
		t.Fatalf("bytes = %02X %02X, want 7F BE", buf[0], buf[1])
	}
}
