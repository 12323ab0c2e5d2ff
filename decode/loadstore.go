package decode

import "github.com/sarchlab/la64ir/ir"

// Fixed-point load/store emitters. Two addressing
// families — immediate-displaced and register-indexed — plus the
// word-scaled ldptr/stptr pair, the bounds-checked ldgt/ldle/stgt/stle
// family, and the hint/fence instructions that touch no memory at all.
// Grounded on emu/load_store.go's addressing-mode split, generalized
// from "read memory, write a register" to "emit a Load/Store IR node".

// widthBytesFor maps a declared bit width to its byte count, the unit
// emitAlignCheck wants.
func widthBytesFor(width uint8) uint8 { return width / 8 }

// emitLoadImm emits ld.{b,h,w,d} / ld.{bu,hu,wu}: rd = access(rj +
// sext(imm12)), sign- or zero-extended to 64 bits per `signed`.
func emitLoadImm(c *Context, w uint32, width uint8, signed bool) {
	d, j := rd(w), rj(w)
	disp := signExtend64(uint64(imm12(w)), 12)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	emitLoadAt(c, d, addr, width, signed)
}

// emitStoreImm emits st.{b,h,w,d}: memory[rj + sext(imm12)] = rd at
// the declared width.
func emitStoreImm(c *Context, w uint32, width uint8) {
	d, j := rd(w), rj(w)
	disp := signExtend64(uint64(imm12(w)), 12)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	emitStoreAt(c, addr, getGPR(d, width), width)
}

// emitLoadIndexed emits ldx.{b,h,w,d} / ldx.{bu,hu,wu}: rd =
// access(rj + rk).
func emitLoadIndexed(c *Context, w uint32, width uint8, signed bool) {
	d, j, k := rd(w), rj(w), rk(w)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), getGPR(k, 64))
	emitLoadAt(c, d, addr, width, signed)
}

// emitStoreIndexed emits stx.{b,h,w,d}: memory[rj + rk] = rd.
func emitStoreIndexed(c *Context, w uint32, width uint8) {
	d, j, k := rd(w), rj(w), rk(w)
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), getGPR(k, 64))
	emitStoreAt(c, addr, getGPR(d, width), width)
}

// emitLdptr/Stptr emit the word-scaled-displacement pair: addr = rj +
// (sext(imm14) << 2).
func emitLdptr(c *Context, w uint32, is64 bool) {
	d, j := rd(w), rj(w)
	disp := signExtend64(uint64(imm14(w)), 14) * 4
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	width := uint8(32)
	if is64 {
		width = 64
	}
	emitLoadAt(c, d, addr, width, true)
}

func emitStptr(c *Context, w uint32, is64 bool) {
	d, j := rd(w), rj(w)
	disp := signExtend64(uint64(imm14(w)), 14) * 4
	addr := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(disp), ir.TyI64))
	width := uint8(32)
	if is64 {
		width = 64
	}
	emitStoreAt(c, addr, getGPR(d, width), width)
}

// emitLoadAt centralizes the alignment-check-then-load-then-extend
// sequence every load variant shares.
func emitLoadAt(c *Context, dst uint8, addr *ir.Expr, width uint8, signed bool) {
	emitAlignCheck(c, addr, widthBytesFor(width))
	value := ir.Load(addr, tyForWidth(width))
	if signed {
		putGPR(c, dst, ir.SignExtend(tyForWidth(width), ir.TyI64, value))
	} else {
		putGPR(c, dst, ir.ZeroExtend(tyForWidth(width), ir.TyI64, value))
	}
}

// emitStoreAt centralizes the alignment-check-then-store sequence.
func emitStoreAt(c *Context, addr, data *ir.Expr, width uint8) {
	emitAlignCheck(c, addr, widthBytesFor(width))
	c.Builder.Store(addr, ir.Narrow(tyForWidth(width), data))
}

// emitBoundsLoad emits the ldgt/ldle bounds-checked load family:
// rj is the base address, rk is the bound register.
func emitBoundsLoad(c *Context, w uint32, width uint8, wantGreater bool) {
	d, j, k := rd(w), rj(w), rk(w)
	addr := getGPR(j, 64)
	bound := getGPR(k, 64)
	emitBoundsCheck(c, addr, bound, wantGreater)
	value := ir.Load(addr, tyForWidth(width))
	putGPR(c, d, ir.SignExtend(tyForWidth(width), ir.TyI64, value))
}

// emitBoundsStore emits the stgt/stle bounds-checked store family.
func emitBoundsStore(c *Context, w uint32, width uint8, wantGreater bool) {
	d, j, k := rd(w), rj(w), rk(w)
	addr := getGPR(j, 64)
	bound := getGPR(k, 64)
	emitBoundsCheck(c, addr, bound, wantGreater)
	c.Builder.Store(addr, ir.Narrow(tyForWidth(width), getGPR(d, width)))
}

// emitPreld/Preldx are hints: they read no guest state that matters
// and touch no memory, so they emit nothing.
func emitPreld(c *Context, w uint32)  {}
func emitPreldx(c *Context, w uint32) {}

// emitDbar emits a full memory fence.
func emitDbar(c *Context, w uint32) { c.Builder.Fence(ir.FenceData) }

// emitIbar emits an instruction fence.
func emitIbar(c *Context, w uint32) { c.Builder.Fence(ir.FenceInstr) }
