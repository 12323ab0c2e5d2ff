package decode

import (
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

// Guest-register helpers: typed load/store for integer, FP, FCC, and
// FCSR state, plus the rounding-mode translation.
// Grounded on emu/regfile.go's ReadReg/WriteReg/ReadReg32/WriteReg32
// (typed-width accessors, register-0-discards-writes), generalized from
// "mutate a Go struct field" to "append an IR Get/Put".

func xReg(i uint8) ir.GuestReg    { return ir.GuestReg{Name: "X", Index: int(i)} }
func fReg(i uint8) ir.GuestReg    { return ir.GuestReg{Name: "F", Index: int(i)} }
func pcReg() ir.GuestReg          { return ir.GuestReg{Name: "PC", Index: -1} }
func fcsrReg() ir.GuestReg        { return ir.GuestReg{Name: "FCSR0", Index: -1} }
func llscAddrReg() ir.GuestReg    { return ir.GuestReg{Name: "LLSCAddr", Index: -1} }
func llscSizeReg() ir.GuestReg    { return ir.GuestReg{Name: "LLSCSize", Index: -1} }
func llscDataReg() ir.GuestReg    { return ir.GuestReg{Name: "LLSCData", Index: -1} }
func nextRedirReg() ir.GuestReg   { return ir.GuestReg{Name: "NextRedirect", Index: -1} }
func clReqPCReg() ir.GuestReg     { return ir.GuestReg{Name: "ClientRequestPC", Index: -1} }
func clReqLenReg() ir.GuestReg    { return ir.GuestReg{Name: "ClientRequestLen", Index: -1} }

// tyForWidth maps a requested bit width (1, 8, 16, 32, 64) to the IR
// type it reads/writes as.
func tyForWidth(width uint8) ir.Type {
	switch width {
	case 1:
		return ir.TyI1
	case 8:
		return ir.TyI8
	case 16:
		return ir.TyI16
	case 32:
		return ir.TyI32
	default:
		return ir.TyI64
	}
}

// getGPR reads register reg at the requested width, narrowing the full
// 64-bit slot: a sub-width read always reads the little-endian low
// bytes of the register's guest-state slot. Register 0 is still routed
// through Get so that fresh `false` results
// on unrecognized encodings never touch the Builder at all; the
// constant-zero optimization belongs to a backend, not this core.
func getGPR(reg uint8, width uint8) *ir.Expr {
	full := ir.GetReg(xReg(reg), ir.TyI64)
	if width == 64 {
		return full
	}
	return ir.Narrow(tyForWidth(width), full)
}

// getGPRSigned reads register reg at the requested width and sign-
// extends the result back to 32 or 64 bits. No emitter currently calls
// it.
func getGPRSigned(reg uint8, width uint8, to ir.Type) *ir.Expr {
	return ir.SignExtend(tyForWidth(width), to, getGPR(reg, width))
}

// putGPR writes a full 64-bit value to register reg. Writes to
// register 0 are discarded by never emitting the Put at all.
func putGPR(c *Context, reg uint8, value *ir.Expr) {
	if reg == 0 {
		return
	}
	c.Builder.Put(xReg(reg), value)
}

// putGPR32Sext writes a 32-bit result sign-extended to 64 bits, the
// common case for word-width fixed-point results.
func putGPR32Sext(c *Context, reg uint8, value32 *ir.Expr) {
	putGPR(c, reg, ir.SignExtend(ir.TyI32, ir.TyI64, value32))
}

// putPC writes the program counter.
func putPC(c *Context, value *ir.Expr) {
	c.Builder.Put(pcReg(), value)
}

// getPC reads the program counter.
func getPC() *ir.Expr {
	return ir.GetReg(pcReg(), ir.TyI64)
}

// constPC builds a constant PC value relative to the decoded
// instruction's entry address, the common "entryPC + delta" shape used
// by branch and fall-through emitters.
func constPC(entryPC uint64, delta int64) *ir.Expr {
	return ir.ConstU(uint64(int64(entryPC)+delta), ir.TyI64)
}

// getFPR64 reads the full 64-bit contents of FP register reg.
func getFPR64(reg uint8) *ir.Expr {
	return ir.GetReg(fReg(reg), ir.TyF64)
}

// getFPR32 reads the single-precision view (low 32 bits) of FP
// register reg.
func getFPR32(reg uint8) *ir.Expr {
	return ir.GetReg(fReg(reg), ir.TyF32)
}

// getFPRAsInt64/32 reads FP register reg reinterpreted as an integer,
// used by the FCSR-update helper call and by bit-manipulation emitters
// like fcopysign/fclass.
func getFPRAsInt64(reg uint8) *ir.Expr {
	return ir.Reinterpret(ir.TyI64, getFPR64(reg))
}
func getFPRAsInt32(reg uint8) *ir.Expr {
	return ir.Reinterpret(ir.TyI32, getFPR32(reg))
}

// putFPR64 writes the full 64-bit contents of FP register reg.
func putFPR64(c *Context, reg uint8, value *ir.Expr) {
	c.Builder.Put(fReg(reg), value)
}

// putFPR32 writes the single-precision view of FP register reg; the
// upper 32 bits are left unspecified by the architecture, matching
// emu's FPR32 write semantics generalized from ARM64 to LA64.
func putFPR32(c *Context, reg uint8, value *ir.Expr) {
	c.Builder.Put(fReg(reg), value)
}

// putFCC writes FP condition-code flag idx.
func putFCC(c *Context, idx uint8, value *ir.Expr) {
	c.Builder.Put(ir.GuestReg{Name: "FCC", Index: int(idx)}, value)
}

// getFCC reads FP condition-code flag idx.
func getFCC(idx uint8) *ir.Expr {
	return ir.GetFCC(idx)
}

// FCSR sub-view indices.
const (
	fcsrViewWhole    = 0
	fcsrViewEnables  = 1
	fcsrViewCause    = 2
	fcsrViewRounding = 3
)

func fcsrViewMask(view uint8) uint32 {
	switch view {
	case fcsrViewEnables:
		return guest.FCSREnablesMask
	case fcsrViewCause:
		return guest.FCSRCauseMask
	case fcsrViewRounding:
		return guest.FCSRRoundMask
	default:
		return 0xFFFFFFFF
	}
}

// getFCSRView reads FCSR sub-view `view`.
func getFCSRView(view uint8) *ir.Expr {
	whole := ir.GetReg(fcsrReg(), ir.TyI32)
	if view == fcsrViewWhole {
		return whole
	}
	return ir.Binop(ir.OpAnd, ir.TyI32, whole, ir.ConstU(uint64(fcsrViewMask(view)), ir.TyI32))
}

// putFCSRView read-modify-writes FCSR0 so that bits outside the
// sub-view's mask are preserved. View 0 additionally
// honors the reserved-bit mask on the written value itself.
func putFCSRView(c *Context, view uint8, value *ir.Expr) {
	if view == fcsrViewWhole {
		masked := ir.Binop(ir.OpAnd, ir.TyI32, value, ir.ConstU(guest.FCSRReservedMask, ir.TyI32))
		c.Builder.Put(fcsrReg(), masked)
		return
	}
	mask := fcsrViewMask(view)
	preserved := ir.Binop(ir.OpAnd, ir.TyI32, getFCSRView(fcsrViewWhole), ir.ConstU(uint64(^mask), ir.TyI32))
	newBits := ir.Binop(ir.OpAnd, ir.TyI32, value, ir.ConstU(uint64(mask), ir.TyI32))
	combined := ir.Binop(ir.OpOr, ir.TyI32, preserved, newBits)
	c.Builder.Put(fcsrReg(), combined)
}

// roundingModeExpr extracts FCSR's rounding-mode bits [9:8] and
// translates the LA64 wire encoding {nearest=0, zero=1, +inf=2,
// -inf=3} into the IR encoding {nearest=0, -inf=1, +inf=2, zero=3} via
// xor(rm, (rm<<1) & 2). This is an
// involution: applying it twice returns the original value.
func roundingModeExpr() *ir.Expr {
	rm := ir.Binop(ir.OpShrL, ir.TyI32,
		getFCSRView(fcsrViewWhole),
		ir.ConstU(guest.FCSRRoundShift, ir.TyI8))
	rm = ir.Binop(ir.OpAnd, ir.TyI32, rm, ir.ConstU(0x3, ir.TyI32))
	shifted := ir.Binop(ir.OpShl, ir.TyI32, rm, ir.ConstU(1, ir.TyI8))
	shifted = ir.Binop(ir.OpAnd, ir.TyI32, shifted, ir.ConstU(2, ir.TyI32))
	return ir.Binop(ir.OpXor, ir.TyI32, rm, shifted)
}

// translateRoundingMode applies the same xor(rm, (rm<<1)&2)
// involution to a concrete 2-bit value, without building IR.
func translateRoundingMode(rm uint8) uint8 {
	return rm ^ ((rm << 1) & 2)
}
