// Package guest models the abstract LA64 guest-CPU state the decode
// core emits IR against, plus the capability set, ABI record, and
// external-helper interface the core depends on as collaborators.
// None of this package is evaluated by the decode core itself — State
// exists so tests (and cmd/ladecode) have a concrete guest to run
// emitted IR against.
package guest

// State is the abstract guest-CPU state: a flat
// GPR/FPR/FCC/FCSR/LLSC/client-request register file.
type State struct {
	// X holds the 32 64-bit general-purpose registers. X[0] is
	// architecturally zero; PutGPR silently discards writes to it.
	X [32]uint64

	// PC is the 64-bit program counter.
	PC uint64

	// F holds the 32 floating-point registers, each a full 64-bit
	// slot; single precision values live in the low 32 bits.
	F [32]uint64

	// FCC holds the 8 single-byte FP condition-code flags.
	FCC [8]uint8

	// FCSR0 is the 32-bit floating-point control-and-status word. The
	// three sub-views (enables, cause+flags, rounding mode) are
	// computed from it on demand by decode/regs.go, never stored
	// separately, so writes to a sub-view can never drift from FCSR0.
	FCSR0 uint32

	// LLSCAddr, LLSCSize, LLSCData are the LL/SC shadow fields used by
	// the fallback-mode LL/SC implementation. LLSCSize of 0 means "no
	// outstanding reservation".
	LLSCAddr uint64
	LLSCSize uint8
	LLSCData uint64

	// NextRedirect, ClientRequestPC, ClientRequestLen back the
	// client-request protocol the "special" preamble drives.
	NextRedirect    uint64
	ClientRequestPC uint64
	ClientRequestLen uint64
}

// FCSR sub-view bit masks.
const (
	FCSRReservedMask = 0x1F1F03DF
	FCSREnablesMask  = 0x0000009F
	FCSRCauseMask    = 0x1F1F0000
	FCSRRoundMask    = 0x00000300
)

// Rounding-mode bit offset within FCSR0.
const FCSRRoundShift = 8

// FCSR cause-bit positions referenced by the FP-to-integer conversion
// overflow/invalid check.
const (
	FCSRInvalidBit  = 18
	FCSROverflowBit = 20
)

// GPR returns register reg (0 reads as zero, matching the wire
// encoding's architectural register 0).
func (s *State) GPR(reg uint8) uint64 {
	if reg == 0 {
		return 0
	}
	return s.X[reg]
}

// PutGPR writes value to register reg. Writes to register 0 are
// silently discarded.
func (s *State) PutGPR(reg uint8, value uint64) {
	if reg == 0 {
		return
	}
	s.X[reg] = value
}

// FPR returns the full 64-bit contents of FP register reg.
func (s *State) FPR(reg uint8) uint64 {
	return s.F[reg]
}

// PutFPR writes the full 64-bit contents of FP register reg.
func (s *State) PutFPR(reg uint8, value uint64) {
	s.F[reg] = value
}

// FPR32 reinterprets the low 32 bits of FP register reg as the
// single-precision view, avoiding the "uninitialized upper half"
// diagnostic memory-checker tools would otherwise raise.
func (s *State) FPR32(reg uint8) uint32 {
	return uint32(s.F[reg])
}

// PutFPR32 writes the low 32 bits of FP register reg; the upper 32
// bits are left unspecified, matching the documented hardware
// behavior.
func (s *State) PutFPR32(reg uint8, value uint32) {
	s.F[reg] = (s.F[reg] &^ 0xFFFFFFFF) | uint64(value)
}
