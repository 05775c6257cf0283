// Command thumb2asm is a smoke-test harness for the thumb2 encoder: it
// builds one of a handful of canned instruction sequences directly against
// the Writer API and dumps the resulting bytes as a hex listing. It is not
// a textual assembler — there is no .s-file parser here; callers of this
// library drive it through Go method calls, not assembly text.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/instrumentkit/thumb2/thumb2"
	"github.com/instrumentkit/thumb2/internal/armreg"
	"github.com/instrumentkit/thumb2/thumb2cfg"
)

// Version information, overridable at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		sequence    = flag.String("sequence", "trampoline", "Sequence to build: trampoline, literals, prologue, call")
		baseAddr    = flag.Uint64("base", 0x1000, "Base address for emission and PC")
		outFile     = flag.String("out", "", "Write raw bytes to this file instead of stdout hex")
		configPath  = flag.String("config", "", "Path to a thumb2cfg TOML file (default: platform config dir)")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("thumb2asm %s (%s)\n", Version, Commit)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	buf := make([]byte, 4096)
	w := thumb2.NewWriter(buf, uint32(*baseAddr))
	labels, labelRefs, literalRefs := cfg.Capacities()
	w.SetCapacities(labels, labelRefs, literalRefs)
	w.SetTargetOS(targetOSFromString(cfg.TargetOS()))

	if err := buildSequence(w, *sequence); err != nil {
		log.Fatalf("building sequence %q: %v", *sequence, err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("flush: %v", err)
	}

	out := buf[:w.Offset()]
	if *outFile != "" {
		if err := os.WriteFile(*outFile, out, 0600); err != nil {
			log.Fatalf("writing %s: %v", *outFile, err)
		}
		return
	}
	fmt.Println(hex.Dump(out))
}

func loadConfig(path string) (*thumb2cfg.Config, error) {
	if path == "" {
		return thumb2cfg.Load()
	}
	return thumb2cfg.LoadFrom(path)
}

func targetOSFromString(s string) thumb2.TargetOS {
	switch s {
	case "android":
		return thumb2.OSAndroid
	case "linux":
		return thumb2.OSLinux
	default:
		return thumb2.OSOther
	}
}

// buildSequence dispatches to one of the canned demo sequences.
func buildSequence(w *thumb2.Writer, name string) error {
	switch name {
	case "trampoline":
		return buildTrampoline(w)
	case "literals":
		return buildLiteralTable(w)
	case "prologue":
		return buildPrologueEpilogue(w)
	case "call":
		return buildAAPCSCall(w)
	default:
		return fmt.Errorf("unknown sequence %q", name)
	}
}

// buildTrampoline emits a forward branch over a NOP, landing on the label —
// the minimal demonstration of the label/fixup machinery.
func buildTrampoline(w *thumb2.Writer) error {
	const target = "land"
	if err := w.PutBLabel(target); err != nil {
		return err
	}
	w.PutNop()
	return w.PutLabel(target)
}

// buildLiteralTable loads several 32-bit constants, including a repeated
// value, to exercise literal-pool deduplication.
func buildLiteralTable(w *thumb2.Writer) error {
	values := []uint32{0xDEADBEEF, 0xCAFEBABE, 0xDEADBEEF, 0x00000000}
	for i, v := range values {
		rd := armreg.ID(i % 4) // R0..R3
		if err := w.PutLdrRegU32(rd, v); err != nil {
			return err
		}
	}
	return nil
}

// buildPrologueEpilogue emits a minimal register-saving function prologue
// and matching epilogue around a no-op body.
func buildPrologueEpilogue(w *thumb2.Writer) error {
	if err := w.PutPushRegs(armreg.R4, armreg.R5, armreg.LR); err != nil {
		return err
	}
	w.PutNop()
	if err := w.PutPopRegs(armreg.R4, armreg.R5, armreg.PC); err != nil {
		return err
	}
	return nil
}

// buildAAPCSCall marshals five arguments (four in registers, one on the
// stack) and calls a fixed address, demonstrating the call marshaller.
func buildAAPCSCall(w *thumb2.Writer) error {
	args := []thumb2.Argument{
		thumb2.RegArg(armreg.R7),
		thumb2.AddrArg(0x2000),
		thumb2.RegArg(armreg.R1),
		thumb2.RegArg(armreg.R2),
		thumb2.AddrArg(0x3000),
	}
	return w.PutCallAddressWithArgumentsArray(0x4000, args)
}
