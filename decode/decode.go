package decode

import (
	"fmt"

	"github.com/sarchlab/la64ir/guest"
)

// Decode translates exactly one guest instruction starting at
// ctx.GuestBytes[0], appending IR to ctx.Builder and returning the
// accumulated translation result. The architecture
// tag must be guest.ArchLA64 and the guest PC must be 4-byte aligned;
// either violation is a programmer error in the caller, not a decode
// failure, so both are fatal assertions rather than a no-decode
// result.
//
// Grounded on insts/decoder.go's Decoder.Decode: a small up-front
// validation step followed by a cascade of boolean-returning decode
// attempts, generalized here to decode directly into IR instead of
// into an Instruction struct, and to recognize the "special"
// preamble family ahead of the ordinary opcode cascade.
func Decode(ctx *Context) Result {
	if ctx.GuestArch != guest.ArchLA64 {
		panic("la64ir/decode: Decode called with a non-LoongArch64 architecture tag")
	}
	if ctx.GuestIP&3 != 0 {
		panic("la64ir/decode: guest PC is not 4-byte aligned")
	}

	if matchesPreamble(ctx) {
		emitPreamble(ctx)
		return ctx.Result()
	}

	w := ctx.Word()
	if decodeOrdinary(ctx, w) {
		return ctx.Result()
	}

	return decodeFailure(ctx, w)
}

// decodeOrdinary is the top-level opcode cascade: bits [31:30]
// route to the branch family (01) or the arithmetic/
// logical/load-store/atomic/FP family (00, and incidentally 10/11,
// which LA64 does not currently populate and which this core
// therefore reports as no-decode).
func decodeOrdinary(c *Context, w uint32) bool {
	switch w >> 30 {
	case 0b00:
		if !dispatchArith(c, w) {
			return false
		}
	case 0b01:
		if !dispatchBranch(c, w) {
			return false
		}
	default:
		return false
	}
	return true
}

// decodeFailure builds the no-decode result: a paranoia
// PC write to the current instruction address, length=0, stop-here,
// stop-reason=no-decode, and an optional formatted diagnostic. The
// pre-attempt assertion that ctx.res is unmutated holds because every
// dispatch* function returns false only when it has emitted nothing.
func decodeFailure(c *Context, w uint32) Result {
	if c.res != (Result{}) {
		panic("la64ir/decode: a failed decode attempt left a partial result behind")
	}
	c.Builder.Put(pcReg(), constPC(c.GuestIP, 0))
	c.setStop(0, ReasonNoDecode)
	if c.SigillDiag {
		c.Trace.Trace("la64ir/decode: no match for %s at pc=0x%x", binaryNibbled(w), c.GuestIP)
	}
	return c.Result()
}

// binaryNibbled renders w as 32 binary digits grouped in fours, the
// diagnostic format used when reporting a no-decode instruction.
func binaryNibbled(w uint32) string {
	bits := fmt.Sprintf("%032b", w)
	out := make([]byte, 0, 32+7)
	for i, b := range []byte(bits) {
		if i > 0 && i%4 == 0 {
			out = append(out, ' ')
		}
		out = append(out, b)
	}
	return string(out)
}
