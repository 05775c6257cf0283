package thumb2

import "github.com/instrumentkit/thumb2/internal/armreg"

// ArgKind distinguishes the two payload shapes a call Argument can carry.
type ArgKind int

const (
	ArgRegister ArgKind = iota
	ArgAddress
)

// Argument is one entry of a call's argument list: either a value already
// sitting in a register, or a 32-bit address to be loaded from a literal
// pool at the call site.
type Argument struct {
	Kind ArgKind
	Reg  armreg.ID
	Addr uint64
}

// RegArg constructs a register-valued call Argument.
func RegArg(r armreg.ID) Argument {
	return Argument{Kind: ArgRegister, Reg: r}
}

// AddrArg constructs an address-valued call Argument.
func AddrArg(addr uint64) Argument {
	return Argument{Kind: ArgAddress, Addr: addr}
}

var argRegs = [4]armreg.ID{armreg.R0, armreg.R1, armreg.R2, armreg.R3}

// marshalArgs lowers args to AAPCS: the first four occupy R0-R3 (a no-op
// move is skipped when a register argument is already in its target
// register), and any further arguments are pushed onto the stack in
// reverse order so the first stack argument ends up at the lowest address.
// Address arguments, in either region, go through a literal-pool load —
// R12 is used as the scratch register for stack-bound address arguments,
// matching its role as AAPCS's intra-procedure-call scratch register.
func (w *Writer) marshalArgs(args []Argument) error {
	regArgs := args
	var stackArgs []Argument
	if len(args) > 4 {
		regArgs = args[:4]
		stackArgs = args[4:]
	}

	for i, arg := range regArgs {
		rd := argRegs[i]
		switch arg.Kind {
		case ArgRegister:
			if arg.Reg != rd {
				if err := w.PutMovRegReg(rd, arg.Reg); err != nil {
					return err
				}
			}
		case ArgAddress:
			if err := w.PutLdrRegAddress(rd, arg.Addr); err != nil {
				return err
			}
		}
	}

	for i := len(stackArgs) - 1; i >= 0; i-- {
		arg := stackArgs[i]
		switch arg.Kind {
		case ArgRegister:
			if err := w.PutPushRegs(arg.Reg); err != nil {
				return err
			}
		case ArgAddress:
			if err := w.PutLdrRegAddress(armreg.R12, arg.Addr); err != nil {
				return err
			}
			if err := w.PutPushRegs(armreg.R12); err != nil {
				return err
			}
		}
	}
	return nil
}

// PutCallAddressWithArgumentsArray marshals args, loads target into the
// scratch register R12, and calls it via BLX.
func (w *Writer) PutCallAddressWithArgumentsArray(target uint64, args []Argument) error {
	if err := w.marshalArgs(args); err != nil {
		return err
	}
	if err := w.PutLdrRegAddress(armreg.R12, target); err != nil {
		return err
	}
	return w.PutBlxReg(armreg.R12)
}

// PutCallAddressWithArguments is the variadic convenience form of
// PutCallAddressWithArgumentsArray.
func (w *Writer) PutCallAddressWithArguments(target uint64, args ...Argument) error {
	return w.PutCallAddressWithArgumentsArray(target, args)
}

// PutCallRegWithArgumentsArray marshals args and calls target via BLX. If
// target is one of the argument registers R0-R3, it is preserved in R12
// before marshalling clobbers it.
func (w *Writer) PutCallRegWithArgumentsArray(target armreg.ID, args []Argument) error {
	callTarget := target
	if target <= armreg.R3 {
		if err := w.PutMovRegReg(armreg.R12, target); err != nil {
			return err
		}
		callTarget = armreg.R12
	}
	if err := w.marshalArgs(args); err != nil {
		return err
	}
	return w.PutBlxReg(callTarget)
}

// PutCallRegWithArguments is the variadic convenience form of
// PutCallRegWithArgumentsArray.
func (w *Writer) PutCallRegWithArguments(target armreg.ID, args ...Argument) error {
	return w.PutCallRegWithArgumentsArray(target, args)
}
