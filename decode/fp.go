package decode

import (
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

// Floating-point emitters: arithmetic with the
// FCSR-update-before-arithmetic protocol, compares mapping onto the
// eight FCC registers, conversions with rounding-mode binding and the
// invalid/overflow substitution, moves between the integer and FP
// register files, fsel, and the FP load/store families. Grounded on
// emu/fpu.go's per-opcode method shape, generalized from "compute a
// float64 and store it" to "emit the FCSR side-effect call, then the
// arithmetic IR node".

// emitFCSRUpdate builds the side-effect call every FP operation emits
// before its arithmetic node: the opcode identity, up
// to three operands reinterpreted as integers, and the FCSR currently
// recorded, writing the "cause+flags" sub-word the helper returns to
// FCSR view 2.
func emitFCSRUpdate(c *Context, opName string, operands ...*ir.Expr) {
	args := make([]*ir.Expr, 0, 5)
	args = append(args, ir.ConstU(0, ir.TyI64)) // opaque identity slot; backend resolves opName via the call's own Name field
	for len(operands) < 3 {
		operands = append(operands, ir.ConstU(0, ir.TyI64))
	}
	args = append(args, operands[:3]...)
	args = append(args, getFCSRView(fcsrViewWhole))
	call := ir.Call(opName, ir.TyI32, args...)
	putFCSRView(c, fcsrViewCause, call)
}

// fpArity1/2/3 build the one-, two-, and three-source-register
// arithmetic emitters sharing the FCSR-update-then-operate shape.
func fpArity1(c *Context, w uint32, op ir.Op, double bool, reg func(uint32) uint8) {
	d, j := rd(w), reg(w)
	ty := ir.TyF32
	if double {
		ty = ir.TyF64
	}
	a := fpOperand(j, double)
	emitFCSRUpdate(c, opName(op), reinterpretAsInt(a, double))
	putFPResult(c, d, double, ir.Unop(op, ty, a))
}

func fpArity2(c *Context, w uint32, op ir.Op, double bool) {
	d, j, k := rd(w), rj(w), rk(w)
	ty := ir.TyF32
	if double {
		ty = ir.TyF64
	}
	a, b := fpOperand(j, double), fpOperand(k, double)
	emitFCSRUpdate(c, opName(op), reinterpretAsInt(a, double), reinterpretAsInt(b, double))
	putFPResult(c, d, double, ir.Binop(op, ty, a, b))
}

func fpArity3(c *Context, w uint32, op ir.Op, double bool) {
	d, j, k, a3 := rd(w), rj(w), rk(w), fa(w)
	ty := ir.TyF32
	if double {
		ty = ir.TyF64
	}
	a, b, cc := fpOperand(j, double), fpOperand(k, double), fpOperand(a3, double)
	emitFCSRUpdate(c, opName(op), reinterpretAsInt(a, double), reinterpretAsInt(b, double), reinterpretAsInt(cc, double))
	putFPResult(c, d, double, ir.Terop(op, ty, a, b, cc))
}

func fpOperand(reg uint8, double bool) *ir.Expr {
	if double {
		return getFPR64(reg)
	}
	return getFPR32(reg)
}

func reinterpretAsInt(e *ir.Expr, double bool) *ir.Expr {
	if double {
		return ir.Reinterpret(ir.TyI64, e)
	}
	return ir.Reinterpret(ir.TyI32, e)
}

func putFPResult(c *Context, reg uint8, double bool, value *ir.Expr) {
	if double {
		putFPR64(c, reg, value)
	} else {
		putFPR32(c, reg, value)
	}
}

func opName(op ir.Op) string {
	names := map[ir.Op]string{
		ir.OpFAdd: "fadd", ir.OpFSub: "fsub", ir.OpFMul: "fmul", ir.OpFDiv: "fdiv",
		ir.OpFMAdd: "fmadd", ir.OpFMSub: "fmsub", ir.OpFNMAdd: "fnmadd", ir.OpFNMSub: "fnmsub",
		ir.OpFSqrt: "fsqrt", ir.OpFRecip: "frecip", ir.OpFRSqrt: "frsqrt",
		ir.OpFScaleB: "fscaleb", ir.OpFLogB: "flogb", ir.OpFAbs: "fabs", ir.OpFNeg: "fneg",
		ir.OpFMax: "fmax", ir.OpFMin: "fmin", ir.OpFMaxA: "fmaxa", ir.OpFMinA: "fmina",
		ir.OpFCopySign: "fcopysign", ir.OpFClass: "fclass",
	}
	if n, ok := names[op]; ok {
		return n
	}
	return "fop"
}

func emitFAddS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFAdd, false) }
func emitFAddD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFAdd, true) }
func emitFSubS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFSub, false) }
func emitFSubD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFSub, true) }
func emitFMulS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMul, false) }
func emitFMulD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMul, true) }
func emitFDivS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFDiv, false) }
func emitFDivD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFDiv, true) }
func emitFMaxS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMax, false) }
func emitFMaxD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMax, true) }
func emitFMinS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMin, false) }
func emitFMinD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMin, true) }
func emitFMaxaS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMaxA, false) }
func emitFMaxaD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMaxA, true) }
func emitFMinaS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMinA, false) }
func emitFMinaD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFMinA, true) }
func emitFScalebS(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFScaleB, false) }
func emitFScalebD(c *Context, w uint32) { checkedFPArity2(c, w, ir.OpFScaleB, true) }

func emitFSqrtS(c *Context, w uint32)  { checkedFPArity1(c, w, ir.OpFSqrt, false, rj) }
func emitFSqrtD(c *Context, w uint32)  { checkedFPArity1(c, w, ir.OpFSqrt, true, rj) }
func emitFRecipS(c *Context, w uint32) { checkedFPArity1(c, w, ir.OpFRecip, false, rj) }
func emitFRecipD(c *Context, w uint32) { checkedFPArity1(c, w, ir.OpFRecip, true, rj) }
func emitFRSqrtS(c *Context, w uint32) { checkedFPArity1(c, w, ir.OpFRSqrt, false, rj) }
func emitFRSqrtD(c *Context, w uint32) { checkedFPArity1(c, w, ir.OpFRSqrt, true, rj) }
func emitFLogbS(c *Context, w uint32)  { checkedFPArity1(c, w, ir.OpFLogB, false, rj) }
func emitFLogbD(c *Context, w uint32)  { checkedFPArity1(c, w, ir.OpFLogB, true, rj) }
func emitFAbsS(c *Context, w uint32)   { checkedFPArity1(c, w, ir.OpFAbs, false, rj) }
func emitFAbsD(c *Context, w uint32)   { checkedFPArity1(c, w, ir.OpFAbs, true, rj) }
func emitFNegS(c *Context, w uint32)   { checkedFPArity1(c, w, ir.OpFNeg, false, rj) }
func emitFNegD(c *Context, w uint32)   { checkedFPArity1(c, w, ir.OpFNeg, true, rj) }

func emitFMaddS(c *Context, w uint32)  { checkedFPArity3(c, w, ir.OpFMAdd, false) }
func emitFMaddD(c *Context, w uint32)  { checkedFPArity3(c, w, ir.OpFMAdd, true) }
func emitFMsubS(c *Context, w uint32)  { checkedFPArity3(c, w, ir.OpFMSub, false) }
func emitFMsubD(c *Context, w uint32)  { checkedFPArity3(c, w, ir.OpFMSub, true) }
func emitFNmaddS(c *Context, w uint32) { checkedFPArity3(c, w, ir.OpFNMAdd, false) }
func emitFNmaddD(c *Context, w uint32) { checkedFPArity3(c, w, ir.OpFNMAdd, true) }
func emitFNmsubS(c *Context, w uint32) { checkedFPArity3(c, w, ir.OpFNMSub, false) }
func emitFNmsubD(c *Context, w uint32) { checkedFPArity3(c, w, ir.OpFNMSub, true) }

func checkedFPArity1(c *Context, w uint32, op ir.Op, double bool, reg func(uint32) uint8) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	fpArity1(c, w, op, double, reg)
}
func checkedFPArity2(c *Context, w uint32, op ir.Op, double bool) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	fpArity2(c, w, op, double)
}
func checkedFPArity3(c *Context, w uint32, op ir.Op, double bool) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	fpArity3(c, w, op, double)
}

// fa extracts the fa field (bits [19:15]), the third FP source
// register of the four-register FMA family.
func fa(w uint32) uint8 { return uint8((w >> 15) & 0x1F) }

// emitFClassS/D emits fclass: reinterprets the operand as an integer
// and delegates classification entirely to the external helper
// entirely, matching the core's minimal-judgment design.
func emitFClassS(c *Context, w uint32) { emitFClass(c, w, false) }
func emitFClassD(c *Context, w uint32) { emitFClass(c, w, true) }

func emitFClass(c *Context, w uint32, double bool) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j := rd(w), rj(w)
	operand := fpOperand(j, double)
	emitFCSRUpdate(c, "fclass", reinterpretAsInt(operand, double))
	call := ir.Call("fclass", ir.TyI64, reinterpretAsInt(operand, double), ir.ConstU(boolToU64(double), ir.TyI1))
	putGPR(c, d, call)
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// emitFCopysignS/D synthesizes copysign in the integer domain: clear
// the sign bit of fj, isolate the sign bit of fk, OR them together.
func emitFCopysignS(c *Context, w uint32) { emitFCopysign(c, w, false) }
func emitFCopysignD(c *Context, w uint32) { emitFCopysign(c, w, true) }

func emitFCopysign(c *Context, w uint32, double bool) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j, k := rd(w), rj(w), rk(w)
	ty := ir.TyI32
	signBit := uint64(1) << 31
	if double {
		ty = ir.TyI64
		signBit = uint64(1) << 63
	}
	a := reinterpretAsInt(fpOperand(j, double), double)
	b := reinterpretAsInt(fpOperand(k, double), double)
	emitFCSRUpdate(c, "fcopysign", a, b)
	magnitude := ir.Binop(ir.OpAnd, ty, a, ir.ConstU(^signBit, ty))
	sign := ir.Binop(ir.OpAnd, ty, b, ir.ConstU(signBit, ty))
	combined := ir.Binop(ir.OpOr, ty, magnitude, sign)
	if double {
		putFPR64(c, d, ir.Reinterpret(ir.TyF64, combined))
	} else {
		putFPR32(c, d, ir.Reinterpret(ir.TyF32, combined))
	}
}

// fcmpCondition packs one of LA64's 22 canonical fcmp condition codes:
// the 5-bit field selects which predicates (UN/LT/GT/EQ) to OR
// together, and whether the comparison signals on NaN is recorded
// only for the FCSR-update helper's benefit.
type fcmpCondition struct {
	name      string
	wantUN    bool
	wantLT    bool
	wantGT    bool
	wantEQ    bool
	signaling bool
}

// fcmpConditions enumerates the canonical LA64 cond5 encodings the
// emitter recognizes, each with its signaling ("S") sibling.
var fcmpConditions = map[uint8]fcmpCondition{
	0x0: {"caf", false, false, false, false, false},
	0x1: {"cun", true, false, false, false, false},
	0x2: {"ceq", false, false, false, true, false},
	0x3: {"cueq", true, false, false, true, false},
	0x4: {"clt", false, true, false, false, false},
	0x5: {"cult", true, true, false, false, false},
	0x6: {"cle", false, true, false, true, false},
	0x7: {"cule", true, true, false, true, false},
	0x8: {"cne", false, true, true, false, false},
	0x9: {"cor", false, true, true, true, false},
	0xA: {"cune", true, true, true, false, false},
	0xB: {"caf", false, false, false, false, false},
	0x10: {"saf", false, false, false, false, true},
	0x11: {"sun", true, false, false, false, true},
	0x12: {"seq", false, false, false, true, true},
	0x13: {"sueq", true, false, false, true, true},
	0x14: {"slt", false, true, false, false, true},
	0x15: {"sult", true, true, false, false, true},
	0x16: {"sle", false, true, false, true, true},
	0x17: {"sule", true, true, false, true, true},
	0x18: {"sne", false, true, true, false, true},
	0x19: {"sor", false, true, true, true, true},
	0x1A: {"sune", true, true, true, false, true},
}

const (
	fcmpResultUN uint32 = 0x45
	fcmpResultLT uint32 = 0x01
	fcmpResultGT uint32 = 0x00
	fcmpResultEQ uint32 = 0x40
)

// emitFcmp emits fcmp.cond.{s,d}: a single IR compare yielding the
// 2-bit UN/LT/GT/EQ encoding, then the canonical condition's OR of
// selected predicates stored as a Boolean into FCC[cc].
func emitFcmp(c *Context, w uint32, double bool) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	j, k := rj(w), rk(w)
	cc := fcc3At(w, 0)
	cond5 := cond5(w)
	condDef, ok := fcmpConditions[cond5]
	if !ok {
		condDef = fcmpCondition{"cun", true, false, false, false, false}
	}
	a, b := fpOperand(j, double), fpOperand(k, double)
	emitFCSRUpdate(c, opName2(condDef), reinterpretAsInt(a, double), reinterpretAsInt(b, double))

	result := ir.Compare(ir.OpFCmp, ir.TyI32, a, b)

	terms := make([]*ir.Expr, 0, 4)
	if condDef.wantUN {
		terms = append(terms, ir.Compare(ir.OpCmpEQ, ir.TyI1, result, ir.ConstU(uint64(fcmpResultUN), ir.TyI32)))
	}
	if condDef.wantLT {
		terms = append(terms, ir.Compare(ir.OpCmpEQ, ir.TyI1, result, ir.ConstU(uint64(fcmpResultLT), ir.TyI32)))
	}
	if condDef.wantGT {
		terms = append(terms, ir.Compare(ir.OpCmpEQ, ir.TyI1, result, ir.ConstU(uint64(fcmpResultGT), ir.TyI32)))
	}
	if condDef.wantEQ {
		terms = append(terms, ir.Compare(ir.OpCmpEQ, ir.TyI1, result, ir.ConstU(uint64(fcmpResultEQ), ir.TyI32)))
	}
	var boolExpr *ir.Expr
	if len(terms) == 0 {
		boolExpr = ir.ConstU(0, ir.TyI1)
	} else {
		boolExpr = terms[0]
		for _, t := range terms[1:] {
			boolExpr = ir.Binop(ir.OpOr, ir.TyI1, boolExpr, t)
		}
	}
	putFCC(c, cc, boolExpr)
}

func opName2(cond fcmpCondition) string {
	if cond.signaling {
		return "s" + cond.name[1:]
	}
	return cond.name
}

func emitFcmpS(c *Context, w uint32) { emitFcmp(c, w, false) }
func emitFcmpD(c *Context, w uint32) { emitFcmp(c, w, true) }

// Conversion rounding-mode constants: each conversion binds the
// rounding mode from one of four explicit constants, or from
// dynamic FCSR based on the opcode.
const (
	cvtRoundDynamic = iota
	cvtRoundNearest
	cvtRoundZero
	cvtRoundUp
	cvtRoundDown
)

// emitFCvt performs one integer<->FP or F32<->F64 conversion, binding
// either a fixed RoundingMode or the dynamic FCSR-derived one, and
// substituting the architectural max-signed-value on an FP-to-integer
// conversion when the FCSR update signaled invalid or overflow
// (FCSR bits 18 and 20).
func emitFCvt(c *Context, d, j uint8, from, to ir.Type, roundKind int, toInteger bool) {
	src := ir.GetReg(fReg(j), from)
	emitFCSRUpdate(c, "fcvt", ir.Reinterpret(intTypeFor(from), src))

	node := ir.Unop(ir.OpFCvt, to, src)
	switch roundKind {
	case cvtRoundNearest:
		node = ir.WithRound(node, ir.RoundNearest)
	case cvtRoundZero:
		node = ir.WithRound(node, ir.RoundZero)
	case cvtRoundUp:
		node = ir.WithRound(node, ir.RoundPosInf)
	case cvtRoundDown:
		node = ir.WithRound(node, ir.RoundNegInf)
	default:
		node = ir.WithDynRound(node, roundingModeExpr())
	}

	if toInteger {
		// ftint*.{w,l}.{s,d} leave the converted integer bit pattern in
		// the destination FP register; moving it into a GPR is the
		// separate movfr2gr instruction.
		cause := getFCSRView(fcsrViewCause)
		invalid := ir.Binop(ir.OpCmpNE, ir.TyI1,
			ir.Binop(ir.OpAnd, ir.TyI32, cause, ir.ConstU(1<<guest.FCSRInvalidBit, ir.TyI32)),
			ir.ConstU(0, ir.TyI32))
		overflow := ir.Binop(ir.OpCmpNE, ir.TyI1,
			ir.Binop(ir.OpAnd, ir.TyI32, cause, ir.ConstU(1<<guest.FCSROverflowBit, ir.TyI32)),
			ir.ConstU(0, ir.TyI32))
		bad := ir.Binop(ir.OpOr, ir.TyI1, invalid, overflow)
		maxSigned := maxSignedFor(to)
		selected := ir.ITE(bad, maxSigned, node)
		if to == ir.TyI64 {
			putFPR64(c, d, ir.Reinterpret(ir.TyF64, selected))
		} else {
			putFPR32(c, d, ir.Reinterpret(ir.TyF32, selected))
		}
		return
	}
	if to == ir.TyF64 {
		putFPR64(c, d, node)
	} else {
		putFPR32(c, d, node)
	}
}

func intTypeFor(ty ir.Type) ir.Type {
	if ty == ir.TyF64 {
		return ir.TyI64
	}
	return ir.TyI32
}

func maxSignedFor(ty ir.Type) *ir.Expr {
	if ty == ir.TyI64 {
		return ir.ConstU(0x7FFFFFFFFFFFFFFF, ir.TyI64)
	}
	return ir.ConstU(0x7FFFFFFF, ir.TyI32)
}

// --- moves ---

// emitMovgr2frW writes the full 64-bit source to the FP register, not
// only the low 32 bits, mirroring the hardware's documented behavior
// rather than a stricter zero-extending reading of the ISA.
func emitMovgr2frW(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	putFPR64(c, rd(w), getGPR(rj(w), 64))
}

func emitMovgr2frD(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	putFPR64(c, rd(w), getGPR(rj(w), 64))
}

// emitMovgr2frhW writes the high 32 bits of the FP register, leaving
// the low 32 bits untouched.
func emitMovgr2frhW(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d := rd(w)
	low := ir.Binop(ir.OpAnd, ir.TyI64, getFPR64(d), ir.ConstU(0xFFFFFFFF, ir.TyI64))
	high := ir.Binop(ir.OpShl, ir.TyI64, getGPR(rj(w), 32), ir.ConstU(32, ir.TyI8))
	putFPR64(c, d, ir.Binop(ir.OpOr, ir.TyI64, low, high))
}

func emitMovfr2grS(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	putGPR32Sext(c, rd(w), getFPRAsInt32(rj(w)))
}

func emitMovfr2grD(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	putGPR(c, rd(w), getFPRAsInt64(rj(w)))
}

func emitMovfrh2grS(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	high := ir.Binop(ir.OpShrL, ir.TyI64, getFPRAsInt64(rj(w)), ir.ConstU(32, ir.TyI8))
	putGPR32Sext(c, rd(w), ir.Narrow(ir.TyI32, high))
}

func emitMovgr2fcsr(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	putFCSRView(c, fcsrViewWhole, ir.Narrow(ir.TyI32, getGPR(rj(w), 64)))
}

func emitMovfcsr2gr(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	putGPR(c, rd(w), ir.ZeroExtend(ir.TyI32, ir.TyI64, getFCSRView(fcsrViewWhole)))
}

func emitMovfr2cf(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	idx := fcc3At(w, 0)
	bit0 := ir.Binop(ir.OpAnd, ir.TyI1, ir.Narrow(ir.TyI1, getFPRAsInt64(rj(w))), ir.ConstU(1, ir.TyI1))
	putFCC(c, idx, bit0)
}

func emitMovcf2fr(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	idx := fcc3At(w, 5)
	putFPR64(c, rd(w), ir.ZeroExtend(ir.TyI1, ir.TyI64, getFCC(idx)))
}

func emitMovgr2cf(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	idx := fcc3At(w, 0)
	bit0 := ir.Binop(ir.OpAnd, ir.TyI1, ir.Narrow(ir.TyI1, getGPR(rj(w), 64)), ir.ConstU(1, ir.TyI1))
	putFCC(c, idx, bit0)
}

func emitMovcf2gr(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	idx := fcc3At(w, 5)
	putGPR(c, rd(w), ir.ZeroExtend(ir.TyI1, ir.TyI64, getFCC(idx)))
}

// emitFsel selects between fj and fk based on FCC[ca].
func emitFsel(c *Context, w uint32) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j, k := rd(w), rj(w), rk(w)
	ca := fcc3At(w, 15)
	cond := getFCC(ca)
	putFPR64(c, d, ir.ITE(cond, getFPR64(j), getFPR64(k)))
}

// --- FP loads/stores, mirroring the integer families ---

func emitFLoadImm(c *Context, w uint32, width uint8) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j := rd(w), rj(w)
	disp := signExtend64(uint64(imm12(w)), 12)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	emitAlignCheck(c, addr, widthBytesFor(width))
	value := ir.Load(addr, tyForWidth(width))
	if width == 64 {
		putFPR64(c, d, ir.Reinterpret(ir.TyF64, value))
	} else {
		putFPR32(c, d, ir.Reinterpret(ir.TyF32, value))
	}
}

func emitFStoreImm(c *Context, w uint32, width uint8) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j := rd(w), rj(w)
	disp := signExtend64(uint64(imm12(w)), 12)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	emitAlignCheck(c, addr, widthBytesFor(width))
	data := fpOperand(d, width == 64)
	c.Builder.Store(addr, ir.Narrow(tyForWidth(width), reinterpretAsInt(data, width == 64)))
}

func emitFLoadIndexed(c *Context, w uint32, width uint8) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j, k := rd(w), rj(w), rk(w)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), getGPR(k, 64))
	emitAlignCheck(c, addr, widthBytesFor(width))
	value := ir.Load(addr, tyForWidth(width))
	if width == 64 {
		putFPR64(c, d, ir.Reinterpret(ir.TyF64, value))
	} else {
		putFPR32(c, d, ir.Reinterpret(ir.TyF32, value))
	}
}

func emitFStoreIndexed(c *Context, w uint32, width uint8) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j, k := rd(w), rj(w), rk(w)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), getGPR(k, 64))
	emitAlignCheck(c, addr, widthBytesFor(width))
	data := fpOperand(d, width == 64)
	c.Builder.Store(addr, ir.Narrow(tyForWidth(width), reinterpretAsInt(data, width == 64)))
}

// emitFBoundsLoad/Store emit fldgt/fldle/fstgt/fstle, the FP
// bounds-checked family mirroring ldgt/ldle/stgt/stle.
func emitFBoundsLoad(c *Context, w uint32, width uint8, wantGreater bool) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j, k := rd(w), rj(w), rk(w)
	addr, bound := getGPR(j, 64), getGPR(k, 64)
	emitBoundsCheck(c, addr, bound, wantGreater)
	value := ir.Load(addr, tyForWidth(width))
	if width == 64 {
		putFPR64(c, d, ir.Reinterpret(ir.TyF64, value))
	} else {
		putFPR32(c, d, ir.Reinterpret(ir.TyF32, value))
	}
}

func emitFBoundsStore(c *Context, w uint32, width uint8, wantGreater bool) {
	if !emitCapCheck(c, guest.CapFP) {
		return
	}
	d, j, k := rd(w), rj(w), rk(w)
	addr, bound := getGPR(j, 64), getGPR(k, 64)
	emitBoundsCheck(c, addr, bound, wantGreater)
	data := fpOperand(d, width == 64)
	c.Builder.Store(addr, ir.Narrow(tyForWidth(width), reinterpretAsInt(data, width == 64)))
}
