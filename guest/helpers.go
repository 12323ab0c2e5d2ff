package guest

// Helpers is the set of external collaborators the decode core calls
// but never implements: byte-reversal, bit-reversal, CRC, CPU-info,
// fclass, and FCSR-update recomputation, modeled as a small interface
// supplied by the caller.
//
// The core never calls Helpers directly: emitters record a
// symbolic ir.Call referencing the helper by name, and it is the
// eventual IR evaluator — not this package — that resolves the name to
// one of these methods. Helpers exists so tests can supply a concrete,
// in-process implementation without needing a real evaluator.
type Helpers interface {
	// FCSRUpdate computes the new cause+sticky-flags sub-word for an
	// FP operation identified by opName, given up to three operand bit
	// patterns and the FCSR word in effect before the operation.
	FCSRUpdate(opName string, operands [3]uint64, operandCount int, fcsr uint32) uint32

	// FClass classifies a floating-point bit pattern (NaN, infinity,
	// normal, subnormal, zero, each signed) per the LA64 fclass
	// encoding.
	FClass(bits uint64, doublePrecision bool) uint64

	// ByteReverse reverses the byte order of a value of the given
	// bit width (8/16/32/64).
	ByteReverse(v uint64, bits uint8) uint64

	// BitReverse reverses the bit order of a value of the given bit
	// width.
	BitReverse(v uint64, bits uint8) uint64

	// CRC computes one step of the LA64 crc/crcc checksum family.
	CRC(seed uint64, data uint64, bits uint8, signedCRC bool) uint64

	// CPUCfg reads one CPUCFG register index.
	CPUCfg(index uint32) uint64
}

// Tracer receives a format string and its arguments, a caller-supplied
// callback standing in for a `#define DIP(...)` debug-print macro. The
// decode core calls it only for the no-decode diagnostic requested by
// Context.SigillDiag; successfully decoded instructions are not traced.
// A nil Tracer is valid and means "don't trace".
type Tracer func(format string, args ...any)

// Trace calls t if non-nil.
func (t Tracer) Trace(format string, args ...any) {
	if t != nil {
		t(format, args...)
	}
}
