package decode

import (
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

// Atomic primitives: LL/SC (direct and compare-and-swap fallback
// modes) and the AM* read-modify-write family.

// emitLL emits ll.{w,d}. In direct mode it uses the Builder's native
// LL primitive; in fallback mode it records the reservation in the
// three LLSC shadow fields and performs a plain load.
func emitLL(c *Context, w uint32, is64 bool) {
	d, j := rd(w), rj(w)
	size := uint8(4)
	ty := ir.TyI32
	if is64 {
		size = 8
		ty = ir.TyI64
	}
	disp := signExtend64(uint64(imm14(w)), 14) * 4
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	emitAlignCheck(c, addr, size)

	if !c.ABI.UseFallbackLLSC {
		loaded := c.Builder.LL(addr, size)
		putGPR(c, d, ir.SignExtend(ty, ir.TyI64, ir.GetTmp(loaded)))
		return
	}

	value := ir.Load(addr, ty)
	c.Builder.Put(llscSizeReg(), ir.ConstU(uint64(size), ir.TyI8))
	c.Builder.Put(llscAddrReg(), addr)
	c.Builder.Put(llscDataReg(), ir.ZeroExtend(ty, ir.TyI64, value))
	putGPR(c, d, ir.SignExtend(ty, ir.TyI64, value))
}

// emitSC emits sc.{w,d}. Direct mode delegates to the Builder's native
// SC primitive, which sets a condition-code temp describing success.
// Fallback mode snapshots the reservation size, the address and the
// data, clears the shadow reservation, then exits with success already written
// as 0 on each failure condition in turn, finally overwriting with 1
// once every check and the terminating CAS have passed.
func emitSC(c *Context, w uint32, is64 bool) {
	d, j := rd(w), rj(w)
	size := uint8(4)
	ty := ir.TyI32
	if is64 {
		size = 8
		ty = ir.TyI64
	}
	disp := signExtend64(uint64(imm14(w)), 14) * 4
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	emitAlignCheck(c, addr, size)

	if !c.ABI.UseFallbackLLSC {
		success := c.Builder.SC(addr, ir.Narrow(ty, getGPR(d, 64)), size)
		putGPR(c, d, ir.ZeroExtend(ir.TyI1, ir.TyI64, ir.GetTmp(success)))
		return
	}

	fallthroughPC := constPC(c.GuestIP, 4)
	// Snapshot the reservation size, the address and the data to store
	// before the Puts below overwrite LLSCSize and rd (rd may equal rj).
	sizeTmp := c.Builder.NewTemp(ir.TyI8)
	c.Builder.Assign(sizeTmp, ir.GetReg(llscSizeReg(), ir.TyI8))
	addrTmp := c.Builder.NewTemp(ir.TyI64)
	c.Builder.Assign(addrTmp, addr)
	dataTmp := c.Builder.NewTemp(ty)
	c.Builder.Assign(dataTmp, ir.Narrow(ty, getGPR(d, 64)))
	shadowSize := ir.GetTmp(sizeTmp)
	addr = ir.GetTmp(addrTmp)
	shadowAddr := ir.GetReg(llscAddrReg(), ir.TyI64)
	shadowData := ir.GetReg(llscDataReg(), ir.TyI64)

	c.Builder.Put(llscSizeReg(), ir.ConstU(0, ir.TyI8))
	putGPR(c, d, ir.ConstU(0, ir.TyI64))

	sizeMismatch := ir.Binop(ir.OpCmpNE, ir.TyI1, shadowSize, ir.ConstU(uint64(size), ir.TyI8))
	c.Builder.Exit(sizeMismatch, ir.ExitBoring, fallthroughPC)

	addrMismatch := ir.Binop(ir.OpCmpNE, ir.TyI1, shadowAddr, addr)
	c.Builder.Exit(addrMismatch, ir.ExitBoring, fallthroughPC)

	curVal := ir.ZeroExtend(ty, ir.TyI64, ir.Load(addr, ty))
	dataMismatch := ir.Binop(ir.OpCmpNE, ir.TyI1, curVal, shadowData)
	c.Builder.Exit(dataMismatch, ir.ExitBoring, fallthroughPC)

	casSuccess := c.Builder.CAS(addr, ir.Narrow(ty, shadowData), ir.GetTmp(dataTmp), ty)
	casFailed := ir.Binop(ir.OpCmpEQ, ir.TyI1, ir.GetTmp(casSuccess), ir.ConstU(0, ir.TyI1))
	c.Builder.Exit(casFailed, ir.ExitBoring, fallthroughPC)

	putGPR(c, d, ir.ConstU(1, ir.TyI64))
}

// amReducer names the read-modify-write combinator an AM* opcode
// applies to the old and new operand values.
type amReducer uint8

const (
	amSwap amReducer = iota
	amAdd
	amAnd
	amOr
	amXor
	amMaxS
	amMinS
	amMaxU
	amMinU
)

// emitAM emits one am{swap,add,and,or,xor,max,min,max_u,min_u}.{w,d}
// [_db] instruction. addr is rj, the new-value operand
// is rk, and rd receives the pre-image. Missing the LAM capability
// yields a SigILL stop instead of any effect.
func emitAM(c *Context, w uint32, reducer amReducer, is64 bool, withFence bool) {
	if !emitCapCheck(c, guest.CapLAM) {
		return
	}
	d, j, k := rd(w), rj(w), rk(w)
	size := uint8(4)
	ty := ir.TyI32
	if is64 {
		size = 8
		ty = ir.TyI64
	}
	addr := getGPR(j, 64)
	emitAlignCheck(c, addr, size)

	if withFence {
		c.Builder.Fence(ir.FenceData)
	}

	oldTmp := c.Builder.NewTemp(ty)
	c.Builder.Assign(oldTmp, ir.Load(addr, ty))
	oldVal := ir.GetTmp(oldTmp)
	operand := getGPR(k, size*8)
	newVal := applyAMReducer(reducer, ty, oldVal, operand)
	casSuccess := c.Builder.CAS(addr, oldVal, newVal, ty)
	retryGuard := ir.Binop(ir.OpCmpEQ, ir.TyI1, ir.GetTmp(casSuccess), ir.ConstU(0, ir.TyI1))
	c.Builder.Exit(retryGuard, ir.ExitKeepGoing, constPC(c.GuestIP, 0))

	if withFence {
		c.Builder.Fence(ir.FenceData)
	}

	if is64 {
		putGPR(c, d, oldVal)
	} else {
		putGPR32Sext(c, d, oldVal)
	}
}

func applyAMReducer(reducer amReducer, ty ir.Type, old, operand *ir.Expr) *ir.Expr {
	switch reducer {
	case amSwap:
		return operand
	case amAdd:
		return ir.Binop(ir.OpAdd, ty, old, operand)
	case amAnd:
		return ir.Binop(ir.OpAnd, ty, old, operand)
	case amOr:
		return ir.Binop(ir.OpOr, ty, old, operand)
	case amXor:
		return ir.Binop(ir.OpXor, ty, old, operand)
	case amMaxS:
		return ir.ITE(ir.Compare(ir.OpCmpLTS, ir.TyI1, old, operand), operand, old)
	case amMinS:
		return ir.ITE(ir.Compare(ir.OpCmpLTS, ir.TyI1, old, operand), old, operand)
	case amMaxU:
		return ir.ITE(ir.Compare(ir.OpCmpLTU, ir.TyI1, old, operand), operand, old)
	case amMinU:
		return ir.ITE(ir.Compare(ir.OpCmpLTU, ir.TyI1, old, operand), old, operand)
	default:
		return operand
	}
}
