package decode

import "github.com/sarchlab/la64ir/ir"

// Recognition of the embedded 16-byte "special" preamble: four fixed
// no-op shifts followed by one of four marker no-op `or` instructions,
// signaling the hosting framework to perform an instrumentation
// action. Grounded on insts/special.go's fixed-prefix
// scan, generalized from a five-word ARM64 sequence to LA64's
// srli.d-based shift family.

// preambleShiftWords are the four `srli.d $zero, $zero, n` encodings
// that must appear, in order, as the first 16 bytes of a candidate
// preamble.
var preambleShiftWords = [4]uint32{
	srliDZeroZero(3),
	srliDZeroZero(13),
	srliDZeroZero(29),
	srliDZeroZero(19),
}

// srliDZeroZero builds the encoding of `srli.d $zero, $zero, n`: rd=0,
// rj=0, a 6-bit shift immediate at bits [15:10], and the srli.d major
// opcode.
func srliDZeroZero(n uint8) uint32 {
	const srliDOpcode = 0x00450000 // srli.d's fixed high bits with ui6 field zeroed
	return srliDOpcode | (uint32(n) << 10)
}

// preambleMarker identifies one of the four marker `or $rN,$rN,$rN`
// instructions following the shift prefix.
type preambleMarker struct {
	word   uint32
	action ir.ExitKind
	reason StopReason
}

// preambleMarkers enumerates the recognized fifth word and the action
// it signals. Registers follow the hosting platform's
// temporary-register convention: t1=$r13, t2=$r14, t3=$r15, t4=$r16.
var preambleMarkers = map[uint32]preambleMarker{
	orRRR(13, 13, 13): {0, ir.ExitClientReq, ReasonClientReq},
	orRRR(14, 14, 14): {0, ir.ExitBoring, ReasonBoring}, // $a7 <- NRADDR; continue
	orRRR(15, 15, 15): {0, ir.ExitNoRedir, ReasonNoRedir},
	orRRR(16, 16, 16): {0, ir.ExitInvalICache, ReasonInvalICache},
}

// orRRR builds the encoding of `or rd, rj, rk` with all three register
// fields equal, the shape every preamble marker takes.
func orRRR(rdv, rjv, rkv uint8) uint32 {
	const orOpcode = 0x00150000 // or's fixed high bits with rd/rj/rk zeroed
	return orOpcode | (uint32(rkv) << 10) | (uint32(rjv) << 5) | uint32(rdv)
}

// matchesPreamble reports whether the four words at GuestBytes[0:16]
// are the fixed shift prefix.
func matchesPreamble(c *Context) bool {
	if len(c.GuestBytes) < 20 {
		return false
	}
	for i, want := range preambleShiftWords {
		if c.WordAt(i*4) != want {
			return false
		}
	}
	return true
}

// emitPreamble recognizes the full 20-byte sequence and emits the
// signaled action, or fatally asserts when the fifth word isn't one of
// the four recognized markers — the preamble is chosen to never occur
// naturally, so an unrecognized follow-up means the caller handed us a
// corrupt or adversarial instruction stream.
func emitPreamble(c *Context) {
	marker, ok := preambleMarkers[c.WordAt(16)]
	if !ok {
		panic("la64ir/decode: special preamble not followed by a recognized marker")
	}
	switch marker.action {
	case ir.ExitClientReq:
		c.Builder.SideEffect(ir.Call("client_request", ir.TyI64,
			ir.GetReg(xReg(4), ir.TyI64), // a0/return-value slot
			ir.GetReg(xReg(12), ir.TyI64)))
		putGPR(c, 11, ir.Call("client_request_handler", ir.TyI64))
		c.Builder.Exit(nil, ir.ExitClientReq, constPC(c.GuestIP, 20))
		c.setStop(20, ReasonClientReq)
	case ir.ExitNoRedir:
		c.Builder.Exit(nil, ir.ExitNoRedir, ir.GetReg(xReg(20), ir.TyI64)) // $t8
		c.setStop(20, ReasonNoRedir)
	case ir.ExitInvalICache:
		c.Builder.SideEffect(ir.Call("invalidate_icache", ir.TyI64, constPC(c.GuestIP, 0), ir.ConstU(20, ir.TyI64)))
		c.Builder.Exit(nil, ir.ExitInvalICache, constPC(c.GuestIP, 20))
		c.setStop(20, ReasonInvalICache)
	default: // the NRADDR read continues the block
		putGPR(c, 11, ir.GetReg(nextRedirReg(), ir.TyI64))
		c.setContinue(20)
	}
}
