package decode

import "github.com/sarchlab/la64ir/ir"

// Fixed-point arithmetic and logical emitters. Grounded on
// emu/alu.go's ADD64/ADD32/SUB64/SUB32/AND64/AND32 shape: one
// method per opcode, reading operands at the declared width, forming
// the result with a single IR operator, then writing the destination.
// 32-bit results are sign-extended to 64 bits.

// emitRegOp3 is the common shape for register-register-register
// arithmetic/logical instructions: rd = op(rj, rk).
func emitRegOp3(c *Context, w uint32, op ir.Op, width uint8, signExtendW bool) {
	d, j, k := rd(w), rj(w), rk(w)
	a := getGPR(j, width)
	b := getGPR(k, width)
	ty := tyForWidth(width)
	res := ir.Binop(op, ty, a, b)
	if width == 32 && signExtendW {
		putGPR32Sext(c, d, res)
	} else {
		putGPR(c, d, res)
	}
}

// emitAddW emits add.w: rd = sext32(rj32 + rk32).
func emitAddW(c *Context, w uint32) { emitRegOp3(c, w, ir.OpAdd, 32, true) }

// emitAddD emits add.d: rd = rj + rk.
func emitAddD(c *Context, w uint32) { emitRegOp3(c, w, ir.OpAdd, 64, true) }

// emitSubW emits sub.w: rd = sext32(rj32 - rk32).
func emitSubW(c *Context, w uint32) { emitRegOp3(c, w, ir.OpSub, 32, true) }

// emitSubD emits sub.d: rd = rj - rk.
func emitSubD(c *Context, w uint32) { emitRegOp3(c, w, ir.OpSub, 64, true) }

// emitAnd/Or/Xor/Nor emit the 64-bit-wide bitwise register ops; LA64
// has no 32-bit sub-variant of these.
func emitAnd(c *Context, w uint32) { emitRegOp3(c, w, ir.OpAnd, 64, false) }
func emitOr(c *Context, w uint32)  { emitRegOp3(c, w, ir.OpOr, 64, false) }
func emitXor(c *Context, w uint32) { emitRegOp3(c, w, ir.OpXor, 64, false) }
func emitNor(c *Context, w uint32) { emitRegOp3(c, w, ir.OpNor, 64, false) }

// emitAndn emits andn: rd = rj & ^rk.
func emitAndn(c *Context, w uint32) {
	d, j, k := rd(w), rj(w), rk(w)
	notK := ir.Unop(ir.OpNot, ir.TyI64, getGPR(k, 64))
	putGPR(c, d, ir.Binop(ir.OpAnd, ir.TyI64, getGPR(j, 64), notK))
}

// emitOrn emits orn: rd = rj | ^rk.
func emitOrn(c *Context, w uint32) {
	d, j, k := rd(w), rj(w), rk(w)
	notK := ir.Unop(ir.OpNot, ir.TyI64, getGPR(k, 64))
	putGPR(c, d, ir.Binop(ir.OpOr, ir.TyI64, getGPR(j, 64), notK))
}

// emitSlt/Sltu emit slt/sltu: rd = (rj < rk) ? 1 : 0, signed/unsigned.
func emitSlt(c *Context, w uint32)  { emitSetCompare(c, w, ir.OpCmpLTS, getGPR(rk(w), 64)) }
func emitSltu(c *Context, w uint32) { emitSetCompare(c, w, ir.OpCmpLTU, getGPR(rk(w), 64)) }

func emitSetCompare(c *Context, w uint32, op ir.Op, rhs *ir.Expr) {
	d, j := rd(w), rj(w)
	cmp := ir.Compare(op, ir.TyI1, getGPR(j, 64), rhs)
	putGPR(c, d, ir.ZeroExtend(ir.TyI1, ir.TyI64, cmp))
}

// emitMulW/D emit mul.w/mul.d: rd = low half of rj*rk.
func emitMulW(c *Context, w uint32) { emitRegOp3(c, w, ir.OpMul, 32, true) }
func emitMulD(c *Context, w uint32) { emitRegOp3(c, w, ir.OpMul, 64, true) }

// emitMulhW/WU/D/DU emit the high-half widening multiplies: a
// double-width multiplication whose high half is extracted. The word
// forms sign-extend the 32-bit high half to 64 bits; the doubleword
// forms write the 64-bit high half as is.
func emitMulhW(c *Context, w uint32)  { emitMulh(c, w, ir.OpMulHS, 32) }
func emitMulhWU(c *Context, w uint32) { emitMulh(c, w, ir.OpMulHU, 32) }
func emitMulhD(c *Context, w uint32)  { emitMulh(c, w, ir.OpMulHS, 64) }
func emitMulhDU(c *Context, w uint32) { emitMulh(c, w, ir.OpMulHU, 64) }

func emitMulh(c *Context, w uint32, op ir.Op, width uint8) {
	d, j, k := rd(w), rj(w), rk(w)
	a, b := getGPR(j, width), getGPR(k, width)
	ty := tyForWidth(width)
	res := ir.Binop(op, ty, a, b)
	if width == 32 {
		putGPR32Sext(c, d, res)
	} else {
		putGPR(c, d, res)
	}
}

// emitDiv/Mod W/WU/D/DU emit signed/unsigned division and remainder.
// The architecture defines division-by-zero as delivering an
// implementation-specific value; no explicit check is emitted here —
// a trap arrives via the `break` instruction the compiler emits
// separately.
func emitDivW(c *Context, w uint32)  { emitRegOp3(c, w, ir.OpDivS, 32, true) }
func emitDivWU(c *Context, w uint32) { emitRegOp3(c, w, ir.OpDivU, 32, true) }
func emitDivD(c *Context, w uint32)  { emitRegOp3(c, w, ir.OpDivS, 64, true) }
func emitDivDU(c *Context, w uint32) { emitRegOp3(c, w, ir.OpDivU, 64, true) }
func emitModW(c *Context, w uint32)  { emitRegOp3(c, w, ir.OpRemS, 32, true) }
func emitModWU(c *Context, w uint32) { emitRegOp3(c, w, ir.OpRemU, 32, true) }
func emitModD(c *Context, w uint32)  { emitRegOp3(c, w, ir.OpRemS, 64, true) }
func emitModDU(c *Context, w uint32) { emitRegOp3(c, w, ir.OpRemU, 64, true) }

// emitAlsl implements the `(rj << (sa+1)) + rk` shift-add primitive.
// alsl.w/alsl.d sign-extend (d doesn't need it, full width); alsl.wu
// zero-extends the 32-bit result instead.
func emitAlsl(c *Context, w uint32, is64 bool, zeroExtendW bool) {
	d, j, k := rd(w), rj(w), rk(w)
	shiftAmt := uint64(sa2(w)) + 1
	if is64 {
		a := getGPR(j, 64)
		shifted := ir.Binop(ir.OpShl, ir.TyI64, a, ir.ConstU(shiftAmt, ir.TyI8))
		putGPR(c, d, ir.Binop(ir.OpAdd, ir.TyI64, shifted, getGPR(k, 64)))
		return
	}
	a := getGPR(j, 32)
	shifted := ir.Binop(ir.OpShl, ir.TyI32, a, ir.ConstU(shiftAmt, ir.TyI8))
	sum := ir.Binop(ir.OpAdd, ir.TyI32, shifted, getGPR(k, 32))
	if zeroExtendW {
		putGPR(c, d, ir.ZeroExtend(ir.TyI32, ir.TyI64, sum))
	} else {
		putGPR32Sext(c, d, sum)
	}
}

// --- immediate forms ---

// emitAddiW/D emit addi.w/addi.d: rd = rj + sext(imm12).
func emitAddiW(c *Context, w uint32) {
	imm := signExtend32(imm12(w), 12)
	res := ir.Binop(ir.OpAdd, ir.TyI32, getGPR(rj(w), 32), ir.ConstU(uint64(uint32(imm)), ir.TyI32))
	putGPR32Sext(c, rd(w), res)
}
func emitAddiD(c *Context, w uint32) {
	imm := signExtend64(uint64(imm12(w)), 12)
	res := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(rj(w), 64), ir.ConstU(uint64(imm), ir.TyI64))
	putGPR(c, rd(w), res)
}

// emitAndi/Ori/Xori emit the zero-extended-immediate logical forms.
func emitAndi(c *Context, w uint32) { emitLogicImm(c, w, ir.OpAnd) }
func emitOri(c *Context, w uint32)  { emitLogicImm(c, w, ir.OpOr) }
func emitXori(c *Context, w uint32) { emitLogicImm(c, w, ir.OpXor) }

func emitLogicImm(c *Context, w uint32, op ir.Op) {
	imm := uint64(imm12(w)) // andi/ori/xori's immediate is zero-extended
	res := ir.Binop(op, ir.TyI64, getGPR(rj(w), 64), ir.ConstU(imm, ir.TyI64))
	putGPR(c, rd(w), res)
}

// emitSlti/Sltiu emit the sign-extended-immediate set-less-than forms.
func emitSlti(c *Context, w uint32) {
	imm := signExtend64(uint64(imm12(w)), 12)
	emitSetCompare(c, w, ir.OpCmpLTS, ir.ConstU(uint64(imm), ir.TyI64))
}
func emitSltiu(c *Context, w uint32) {
	imm := signExtend64(uint64(imm12(w)), 12)
	emitSetCompare(c, w, ir.OpCmpLTU, ir.ConstU(uint64(imm), ir.TyI64))
}

// emitLu12iW emits lu12i.w: rd = sext32(imm20 << 12).
func emitLu12iW(c *Context, w uint32) {
	val := uint64(imm20(w)) << 12
	se := signExtend64(val, 32)
	putGPR(c, rd(w), ir.ConstU(uint64(se), ir.TyI64))
}

// emitLu32iD emits lu32i.d: rd[51:32] = imm20 (sign-extended into
// [63:52]), rd[31:0] unchanged.
func emitLu32iD(c *Context, w uint32) {
	d := rd(w)
	se20 := signExtend64(uint64(imm20(w)), 20)
	highPart := uint64(se20) << 32
	cur := getGPR(d, 64)
	lowKept := ir.Binop(ir.OpAnd, ir.TyI64, cur, ir.ConstU(0xFFFFFFFF, ir.TyI64))
	combined := ir.Binop(ir.OpOr, ir.TyI64, lowKept, ir.ConstU(highPart, ir.TyI64))
	putGPR(c, d, combined)
}

// emitPcaddu12i emits pcaddu12i: rd = PC + sext32(imm20 << 12).
func emitPcaddu12i(c *Context, w uint32) {
	val := uint64(imm20(w)) << 12
	se := signExtend64(val, 32)
	putGPR(c, rd(w), ir.Binop(ir.OpAdd, ir.TyI64, getPC(), ir.ConstU(uint64(se), ir.TyI64)))
}
