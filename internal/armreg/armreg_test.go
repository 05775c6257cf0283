package armreg_test

import (
	"testing"

	"github.com/instrumentkit/thumb2/internal/armreg"
)

func TestIsLow(t *testing.T) {
	for id := armreg.R0; id <= armreg.R7; id++ {
		if !armreg.IsLow(id) {
			t.Fatalf("IsLow(%s) = false, want true", id)
		}
	}
	for _, id := range []armreg.ID{armreg.R8, armreg.R12, armreg.SP, armreg.LR, armreg.PC} {
		if armreg.IsLow(id) {
			t.Fatalf("IsLow(%s) = true, want false", id)
		}
	}
}

func TestStringNamesConventionalRegisters(t *testing.T) {
	tests := map[armreg.ID]string{
		armreg.R0: "R0",
		armreg.R9: "R9",
		armreg.SP: "SP",
		armreg.LR: "LR",
		armreg.PC: "PC",
	}
	for id, want := range tests {
		if got := id.String(); got != want {
			t.Fatalf("%v.String() = %q, want %q", id, got, want)
		}
	}
}
