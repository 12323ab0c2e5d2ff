package decode

import (
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

// Hierarchical opcode-dispatch cascade. Bits [31:30]
// split the encoding space into the arithmetic/logical/shift/load-
// store/atomic/FP family (00) and the branch family (01); within each,
// progressively narrower opcode fields select row and column exactly
// the way the real encoding nests formats (a 7-bit prefix identifies
// the 1RI20 immediate-load shapes, a 10-bit prefix the 2RI12
// immediate-arithmetic/load-store shapes, a 17-bit prefix the 3R
// register-register-register shapes, and so on). Every decode*
// function returns true for "emitted IR, proceed", false for
// "unrecognized encoding", matching insts/decoder.go's
// is*/decode* boolean-predicate cascade.

// op7/op8/op10/op14/op17/op22/op26 extract the fixed-width opcode
// prefix each instruction format keys its dispatch on.
func op7(w uint32) uint32  { return w >> 25 }
func op8(w uint32) uint32  { return w >> 24 }
func op10(w uint32) uint32 { return w >> 22 }
func op14(w uint32) uint32 { return w >> 18 }
func op17(w uint32) uint32 { return w >> 15 }
func op22(w uint32) uint32 { return w >> 10 }
func op26(w uint32) uint32 { return w >> 26 }

// 1RI20-format opcodes (7-bit prefix, bits [31:25]).
const (
	op1RI20Lu12iW    = 0x0A
	op1RI20Lu32iD    = 0x0B
	op1RI20Pcaddu12i = 0x0C
)

// 2RI14-format opcodes (8-bit prefix, bits [31:24]): LL/SC and the
// word-scaled ldptr/stptr pair.
const (
	op2RI14LdPtrW = 0x24
	op2RI14StPtrW = 0x25
	op2RI14LdPtrD = 0x26
	op2RI14StPtrD = 0x27
	op2RI14LlW    = 0x20
	op2RI14ScW    = 0x21
	op2RI14LlD    = 0x22
	op2RI14ScD    = 0x23
)

// 2RI12-format opcodes (10-bit prefix, bits [31:22]): immediate
// arithmetic, immediate load/store.
const (
	op2RI12Slti  = 0x08
	op2RI12Sltui = 0x09
	op2RI12Addiw = 0x0A
	op2RI12Addid = 0x0B
	op2RI12Andi  = 0x0D
	op2RI12Ori   = 0x0E
	op2RI12Xori  = 0x0F
	// ld.w's field value is anchored to the encoded word 0x24000020,
	// which yields op10=0x090; the rest of the immediate load/store
	// family is placed contiguously around it.
	op2RI12LdB  = 0x8E
	op2RI12LdH  = 0x8F
	op2RI12LdW  = 0x90
	op2RI12LdD  = 0x91
	op2RI12StB  = 0x92
	op2RI12StH  = 0x93
	op2RI12StW  = 0x94
	op2RI12StD  = 0x95
	op2RI12LdBU = 0x96
	op2RI12LdHU = 0x97
	op2RI12LdWU = 0x98
)

// 3R-format opcodes (17-bit prefix, bits [31:15]): register-register-
// register arithmetic, logical, shift, multiply, divide, bstrins/pick
// is a 2RI5/2RI6 shape handled separately, AM* atomics, and FP.
const (
	op3RAddW    = 0x020
	op3RAddD    = 0x021
	op3RSubW    = 0x022
	op3RSubD    = 0x023
	op3RSlt     = 0x024
	op3RSltu    = 0x025
	op3RNor     = 0x028
	op3RAnd     = 0x029
	op3ROr      = 0x02A
	op3RXor     = 0x02B
	op3ROrn     = 0x02C
	op3RAndn    = 0x02D
	op3RSllW    = 0x02E
	op3RSrlW    = 0x02F
	op3RSraW    = 0x030
	op3RSllD    = 0x031
	op3RSrlD    = 0x032
	op3RSraD    = 0x033
	op3RRotrW   = 0x036
	op3RRotrD   = 0x037
	op3RMulW    = 0x038
	op3RMulhW   = 0x039
	op3RMulhWU  = 0x03A
	op3RMulD    = 0x03B
	op3RMulhD   = 0x03C
	op3RMulhDU  = 0x03D
	op3RDivW    = 0x040
	op3RModW    = 0x041
	op3RDivWU   = 0x042
	op3RModWU   = 0x043
	op3RDivD    = 0x044
	op3RModD    = 0x045
	op3RDivDU   = 0x046
	op3RModDU   = 0x047
	op3RLdxB    = 0x070
	op3RLdxH    = 0x071
	op3RLdxW    = 0x072
	op3RLdxD    = 0x073
	op3RStxB    = 0x074
	op3RStxH    = 0x075
	op3RStxW    = 0x076
	op3RStxD    = 0x077
	op3RLdxBU   = 0x078
	op3RLdxHU   = 0x079
	op3RLdxWU   = 0x07A
	op3RLdGtB   = 0x0E0
	op3RLdGtH   = 0x0E1
	op3RLdGtW   = 0x0E2
	op3RLdGtD   = 0x0E3
	op3RLdLeB   = 0x0E4
	op3RLdLeH   = 0x0E5
	op3RLdLeW   = 0x0E6
	op3RLdLeD   = 0x0E7
	op3RStGtB   = 0x0E8
	op3RStGtH   = 0x0E9
	op3RStGtW   = 0x0EA
	op3RStGtD   = 0x0EB
	op3RStLeB   = 0x0EC
	op3RStLeH   = 0x0ED
	op3RStLeW   = 0x0EE
	op3RStLeD   = 0x0EF
	op3RAmswapW   = 0x0F0
	op3RAmswapD   = 0x0F1
	op3RAmaddW    = 0x0F2
	op3RAmaddD    = 0x0F3
	op3RAmandW    = 0x0F4
	op3RAmandD    = 0x0F5
	op3RAmorW     = 0x0F6
	op3RAmorD     = 0x0F7
	op3RAmxorW    = 0x0F8
	op3RAmxorD    = 0x0F9
	op3RAmmaxW    = 0x0FA
	op3RAmmaxD    = 0x0FB
	op3RAmminW    = 0x0FC
	op3RAmminD    = 0x0FD
	op3RAmmaxWU   = 0x0FE
	op3RAmmaxDU   = 0x0FF
	op3RAmminWU   = 0x100
	op3RAmminDU   = 0x101
	op3RAmswapDBW = 0x102
	op3RAmswapDBD = 0x103
	op3RAmaddDBW  = 0x104
	op3RAmaddDBD  = 0x105
	op3RAmandDBW  = 0x106
	op3RAmandDBD  = 0x107
	op3RAmorDBW   = 0x108
	op3RAmorDBD   = 0x109
	op3RAmxorDBW  = 0x10A
	op3RAmxorDBD  = 0x10B
	op3RAmmaxDBW  = 0x10C
	op3RAmmaxDBD  = 0x10D
	op3RAmminDBW  = 0x10E
	op3RAmminDBD  = 0x10F
	op3RAmmaxDBWU = 0x110
	op3RAmmaxDBDU = 0x111
	op3RAmminDBWU = 0x112
	op3RAmminDBDU = 0x113
	op3RFaddS   = 0x120
	op3RFaddD   = 0x121
	op3RFsubS   = 0x122
	op3RFsubD   = 0x123
	op3RFmulS   = 0x124
	op3RFmulD   = 0x125
	op3RFdivS   = 0x126
	op3RFdivD   = 0x127
	op3RFmaxS   = 0x128
	op3RFmaxD   = 0x129
	op3RFminS   = 0x12A
	op3RFminD   = 0x12B
	op3RFmaxaS  = 0x12C
	op3RFmaxaD  = 0x12D
	op3RFminaS  = 0x12E
	op3RFminaD  = 0x12F
	op3RFscalebS = 0x130
	op3RFscalebD = 0x131
	op3RFcopysignS = 0x132
	op3RFcopysignD = 0x133
)

// 2RI5/2RI6-format opcodes (14-bit prefix, bits [31:18]): immediate
// shifts and rotr; distinguished further by width in the
// per-function field (ui5 vs ui6).
const (
	op2RSlliW = 0x40
	op2RSlliD = 0x41
	op2RSrliW = 0x44
	op2RSrliD = 0x45
	op2RSraiW = 0x48
	op2RSraiD = 0x49
	op2RRotriW = 0x4C
	op2RRotriD = 0x4D
)

// bstrins/bstrpick and bytepick key off the 3R-adjacent 12-bit prefix
// (bits [31:20]), leaving msb/lsb or sa in the lower bits.
const (
	op12BstrinsW  = 0x3
	op12BstrinsD  = 0x2
	op12BstrpickW = 0x7
	op12BstrpickD = 0x6
	op12BytepickW = 0x4
	op12BytepickD = 0x5
)

// dispatchArith is the family-00 sub-cascade: shift/logical/load-
// store/atomic/FP instructions plus the three immediate-load shapes.
func dispatchArith(c *Context, w uint32) bool {
	if dispatch1RI20(c, w) {
		return true
	}
	if op7(w) == op1RI20Pcaddu12i && dispatchPcaddu12i(c, w) {
		return true
	}
	if dispatch2RI14(c, w) {
		return true
	}
	if dispatch2RI12(c, w) {
		return true
	}
	if dispatch2RShiftImm(c, w) {
		return true
	}
	if dispatchBitfield(c, w) {
		return true
	}
	if dispatch3R(c, w) {
		return true
	}
	if dispatchAlsl(c, w) {
		return true
	}
	if dispatchFPMisc(c, w) {
		return true
	}
	if dispatchFsel(c, w) {
		return true
	}
	if dispatchFPLoadStore(c, w) {
		return true
	}
	if dispatchFenceHint(c, w) {
		return true
	}
	if dispatchCPUCfg(c, w) {
		return true
	}
	if dispatchSystem(c, w) {
		return true
	}
	return false
}

func dispatch1RI20(c *Context, w uint32) bool {
	switch op7(w) {
	case op1RI20Lu12iW:
		emitLu12iW(c, w)
	case op1RI20Lu32iD:
		emitLu32iD(c, w)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

func dispatchPcaddu12i(c *Context, w uint32) bool {
	emitPcaddu12i(c, w)
	c.setContinue(4)
	return true
}

func dispatch2RI14(c *Context, w uint32) bool {
	switch op8(w) {
	case op2RI14LlW:
		emitLL(c, w, false)
	case op2RI14LlD:
		emitLL(c, w, true)
	case op2RI14ScW:
		emitSC(c, w, false)
	case op2RI14ScD:
		emitSC(c, w, true)
	case op2RI14LdPtrW:
		emitLdptr(c, w, false)
	case op2RI14LdPtrD:
		emitLdptr(c, w, true)
	case op2RI14StPtrW:
		emitStptr(c, w, false)
	case op2RI14StPtrD:
		emitStptr(c, w, true)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

func dispatch2RI12(c *Context, w uint32) bool {
	switch op10(w) {
	case op2RI12Addiw:
		emitAddiW(c, w)
	case op2RI12Addid:
		emitAddiD(c, w)
	case op2RI12Andi:
		emitAndi(c, w)
	case op2RI12Ori:
		emitOri(c, w)
	case op2RI12Xori:
		emitXori(c, w)
	case op2RI12Slti:
		emitSlti(c, w)
	case op2RI12Sltui:
		emitSltiu(c, w)
	case op2RI12LdB:
		emitLoadImm(c, w, 8, true)
	case op2RI12LdH:
		emitLoadImm(c, w, 16, true)
	case op2RI12LdW:
		emitLoadImm(c, w, 32, true)
	case op2RI12LdD:
		emitLoadImm(c, w, 64, true)
	case op2RI12LdBU:
		emitLoadImm(c, w, 8, false)
	case op2RI12LdHU:
		emitLoadImm(c, w, 16, false)
	case op2RI12LdWU:
		emitLoadImm(c, w, 32, false)
	case op2RI12StB:
		emitStoreImm(c, w, 8)
	case op2RI12StH:
		emitStoreImm(c, w, 16)
	case op2RI12StW:
		emitStoreImm(c, w, 32)
	case op2RI12StD:
		emitStoreImm(c, w, 64)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

func dispatch2RShiftImm(c *Context, w uint32) bool {
	switch op14(w) {
	case op2RSlliW:
		emitSlliW(c, w)
	case op2RSlliD:
		emitSlliD(c, w)
	case op2RSrliW:
		emitSrliW(c, w)
	case op2RSrliD:
		emitSrliD(c, w)
	case op2RSraiW:
		emitSraiW(c, w)
	case op2RSraiD:
		emitSraiD(c, w)
	case op2RRotriW:
		emitRotrImm(c, w, false)
	case op2RRotriD:
		emitRotrImm(c, w, true)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

// dispatchBitfield recognizes bstrins/bstrpick and bytepick, each at
// its own disjoint 12-bit prefix (bits [31:20]).
func dispatchBitfield(c *Context, w uint32) bool {
	switch w >> 20 {
	case op12BstrinsD:
		emitBstrins(c, w, true)
	case op12BstrinsW:
		emitBstrins(c, w, false)
	case op12BstrpickD:
		emitBstrpick(c, w, true)
	case op12BstrpickW:
		emitBstrpick(c, w, false)
	case op12BytepickW:
		emitBytepick(c, w, false)
	case op12BytepickD:
		emitBytepick(c, w, true)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

func dispatchAlsl(c *Context, w uint32) bool {
	const op15AlslW = 0x01
	const op15AlslWU = 0x02
	const op15AlslD = 0x03
	switch w >> 17 {
	case op15AlslW:
		emitAlsl(c, w, false, false)
	case op15AlslWU:
		emitAlsl(c, w, false, true)
	case op15AlslD:
		emitAlsl(c, w, true, false)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

func dispatch3R(c *Context, w uint32) bool {
	op := op17(w)
	if dispatch3RInt(c, w, op) {
		return true
	}
	if dispatch3RMem(c, w, op) {
		return true
	}
	if dispatch3RAtomic(c, w, op) {
		return true
	}
	if dispatch3RFP(c, w, op) {
		return true
	}
	return false
}

func dispatch3RInt(c *Context, w uint32, op uint32) bool {
	switch op {
	case op3RAddW:
		emitAddW(c, w)
	case op3RAddD:
		emitAddD(c, w)
	case op3RSubW:
		emitSubW(c, w)
	case op3RSubD:
		emitSubD(c, w)
	case op3RSlt:
		emitSlt(c, w)
	case op3RSltu:
		emitSltu(c, w)
	case op3RNor:
		emitNor(c, w)
	case op3RAnd:
		emitAnd(c, w)
	case op3ROr:
		emitOr(c, w)
	case op3RXor:
		emitXor(c, w)
	case op3ROrn:
		emitOrn(c, w)
	case op3RAndn:
		emitAndn(c, w)
	case op3RSllW:
		emitSllW(c, w)
	case op3RSrlW:
		emitSrlW(c, w)
	case op3RSraW:
		emitSraW(c, w)
	case op3RSllD:
		emitSllD(c, w)
	case op3RSrlD:
		emitSrlD(c, w)
	case op3RSraD:
		emitSraD(c, w)
	case op3RRotrW:
		emitRotrReg(c, w, false)
	case op3RRotrD:
		emitRotrReg(c, w, true)
	case op3RMulW:
		emitMulW(c, w)
	case op3RMulhW:
		emitMulhW(c, w)
	case op3RMulhWU:
		emitMulhWU(c, w)
	case op3RMulD:
		emitMulD(c, w)
	case op3RMulhD:
		emitMulhD(c, w)
	case op3RMulhDU:
		emitMulhDU(c, w)
	case op3RDivW:
		emitDivW(c, w)
	case op3RModW:
		emitModW(c, w)
	case op3RDivWU:
		emitDivWU(c, w)
	case op3RModWU:
		emitModWU(c, w)
	case op3RDivD:
		emitDivD(c, w)
	case op3RModD:
		emitModD(c, w)
	case op3RDivDU:
		emitDivDU(c, w)
	case op3RModDU:
		emitModDU(c, w)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

func dispatch3RMem(c *Context, w uint32, op uint32) bool {
	switch op {
	case op3RLdxB:
		emitLoadIndexed(c, w, 8, true)
	case op3RLdxH:
		emitLoadIndexed(c, w, 16, true)
	case op3RLdxW:
		emitLoadIndexed(c, w, 32, true)
	case op3RLdxD:
		emitLoadIndexed(c, w, 64, true)
	case op3RLdxBU:
		emitLoadIndexed(c, w, 8, false)
	case op3RLdxHU:
		emitLoadIndexed(c, w, 16, false)
	case op3RLdxWU:
		emitLoadIndexed(c, w, 32, false)
	case op3RStxB:
		emitStoreIndexed(c, w, 8)
	case op3RStxH:
		emitStoreIndexed(c, w, 16)
	case op3RStxW:
		emitStoreIndexed(c, w, 32)
	case op3RStxD:
		emitStoreIndexed(c, w, 64)
	case op3RLdGtB:
		emitBoundsLoad(c, w, 8, true)
	case op3RLdGtH:
		emitBoundsLoad(c, w, 16, true)
	case op3RLdGtW:
		emitBoundsLoad(c, w, 32, true)
	case op3RLdGtD:
		emitBoundsLoad(c, w, 64, true)
	case op3RLdLeB:
		emitBoundsLoad(c, w, 8, false)
	case op3RLdLeH:
		emitBoundsLoad(c, w, 16, false)
	case op3RLdLeW:
		emitBoundsLoad(c, w, 32, false)
	case op3RLdLeD:
		emitBoundsLoad(c, w, 64, false)
	case op3RStGtB:
		emitBoundsStore(c, w, 8, true)
	case op3RStGtH:
		emitBoundsStore(c, w, 16, true)
	case op3RStGtW:
		emitBoundsStore(c, w, 32, true)
	case op3RStGtD:
		emitBoundsStore(c, w, 64, true)
	case op3RStLeB:
		emitBoundsStore(c, w, 8, false)
	case op3RStLeH:
		emitBoundsStore(c, w, 16, false)
	case op3RStLeW:
		emitBoundsStore(c, w, 32, false)
	case op3RStLeD:
		emitBoundsStore(c, w, 64, false)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

func dispatch3RAtomic(c *Context, w uint32, op uint32) bool {
	type amDef struct {
		reducer amReducer
		is64    bool
		fence   bool
	}
	defs := map[uint32]amDef{
		op3RAmswapW: {amSwap, false, false}, op3RAmswapD: {amSwap, true, false},
		op3RAmaddW: {amAdd, false, false}, op3RAmaddD: {amAdd, true, false},
		op3RAmandW: {amAnd, false, false}, op3RAmandD: {amAnd, true, false},
		op3RAmorW: {amOr, false, false}, op3RAmorD: {amOr, true, false},
		op3RAmxorW: {amXor, false, false}, op3RAmxorD: {amXor, true, false},
		op3RAmmaxW: {amMaxS, false, false}, op3RAmmaxD: {amMaxS, true, false},
		op3RAmminW: {amMinS, false, false}, op3RAmminD: {amMinS, true, false},
		op3RAmmaxWU: {amMaxU, false, false}, op3RAmmaxDU: {amMaxU, true, false},
		op3RAmminWU: {amMinU, false, false}, op3RAmminDU: {amMinU, true, false},
		op3RAmswapDBW: {amSwap, false, true}, op3RAmswapDBD: {amSwap, true, true},
		op3RAmaddDBW: {amAdd, false, true}, op3RAmaddDBD: {amAdd, true, true},
		op3RAmandDBW: {amAnd, false, true}, op3RAmandDBD: {amAnd, true, true},
		op3RAmorDBW: {amOr, false, true}, op3RAmorDBD: {amOr, true, true},
		op3RAmxorDBW: {amXor, false, true}, op3RAmxorDBD: {amXor, true, true},
		op3RAmmaxDBW: {amMaxS, false, true}, op3RAmmaxDBD: {amMaxS, true, true},
		op3RAmminDBW: {amMinS, false, true}, op3RAmminDBD: {amMinS, true, true},
		op3RAmmaxDBWU: {amMaxU, false, true}, op3RAmmaxDBDU: {amMaxU, true, true},
		op3RAmminDBWU: {amMinU, false, true}, op3RAmminDBDU: {amMinU, true, true},
	}
	def, ok := defs[op]
	if !ok {
		return false
	}
	emitAM(c, w, def.reducer, def.is64, def.fence)
	if c.fresh() {
		c.setContinue(4)
	}
	return true
}

func dispatch3RFP(c *Context, w uint32, op uint32) bool {
	switch op {
	case op3RFaddS:
		emitFAddS(c, w)
	case op3RFaddD:
		emitFAddD(c, w)
	case op3RFsubS:
		emitFSubS(c, w)
	case op3RFsubD:
		emitFSubD(c, w)
	case op3RFmulS:
		emitFMulS(c, w)
	case op3RFmulD:
		emitFMulD(c, w)
	case op3RFdivS:
		emitFDivS(c, w)
	case op3RFdivD:
		emitFDivD(c, w)
	case op3RFmaxS:
		emitFMaxS(c, w)
	case op3RFmaxD:
		emitFMaxD(c, w)
	case op3RFminS:
		emitFMinS(c, w)
	case op3RFminD:
		emitFMinD(c, w)
	case op3RFmaxaS:
		emitFMaxaS(c, w)
	case op3RFmaxaD:
		emitFMaxaD(c, w)
	case op3RFminaS:
		emitFMinaS(c, w)
	case op3RFminaD:
		emitFMinaD(c, w)
	case op3RFscalebS:
		emitFScalebS(c, w)
	case op3RFscalebD:
		emitFScalebD(c, w)
	case op3RFcopysignS:
		emitFCopysignS(c, w)
	case op3RFcopysignD:
		emitFCopysignD(c, w)
	default:
		return false
	}
	if c.fresh() {
		c.setContinue(4)
	}
	return true
}

// dispatchBranch is the family-01 sub-cascade: every conditional and
// unconditional branch. break/syscall are recognized in family 00 by
// dispatchSystem.
func dispatchBranch(c *Context, w uint32) bool {
	switch op26(w) {
	case 0x10:
		emitBeqz(c, w)
	case 0x11:
		emitBnez(c, w)
	case 0x12:
		if w&(1<<8) != 0 {
			emitBcnez(c, w)
		} else {
			emitBceqz(c, w)
		}
	case 0x13:
		emitJirl(c, w)
	case 0x14:
		emitB(c, w)
	case 0x15:
		emitBl(c, w)
	case 0x16:
		emitBeq(c, w)
	case 0x17:
		emitBne(c, w)
	case 0x18:
		emitBlt(c, w)
	case 0x19:
		emitBge(c, w)
	case 0x1A:
		emitBltu(c, w)
	case 0x1B:
		emitBgeu(c, w)
	default:
		return false
	}
	return true
}

// dispatchSystem recognizes break/syscall, which live at a dedicated
// 22-bit opcode prefix inside family 00.
func dispatchSystem(c *Context, w uint32) bool {
	const opBreak = 0x054
	const opSyscall = 0x056
	switch op22(w) {
	case opBreak:
		emitBreak(c, w)
	case opSyscall:
		emitSyscall(c, w)
	default:
		return false
	}
	return true
}

// dispatchFPMisc recognizes the FP instructions that don't fit the
// two-source 3R shape: fcmp, the one-source arithmetic ops, fclass,
// moves, and conversions. fsel and the FP load/store families have
// their own dispatchers below. These share family-00's top bits but key
// off a dedicated 17-22 bit prefix band.
func dispatchFPMisc(c *Context, w uint32) bool {
	switch op17(w) {
	case 0x0C1:
		emitFcmpS(c, w)
		if c.fresh() {
			c.setContinue(4)
		}
		return true
	case 0x0C2:
		emitFcmpD(c, w)
		if c.fresh() {
			c.setContinue(4)
		}
		return true
	}
	switch op22(w) {
	case 0x1C0:
		emitFClassS(c, w)
	case 0x1C1:
		emitFClassD(c, w)
	case 0x1C2:
		emitFSqrtS(c, w)
	case 0x1C3:
		emitFSqrtD(c, w)
	case 0x1C4:
		emitFRecipS(c, w)
	case 0x1C5:
		emitFRecipD(c, w)
	case 0x1C6:
		emitFRSqrtS(c, w)
	case 0x1C7:
		emitFRSqrtD(c, w)
	case 0x1C8:
		emitFLogbS(c, w)
	case 0x1C9:
		emitFLogbD(c, w)
	case 0x1CA:
		emitFAbsS(c, w)
	case 0x1CB:
		emitFAbsD(c, w)
	case 0x1CC:
		emitFNegS(c, w)
	case 0x1CD:
		emitFNegD(c, w)
	case 0x1CE:
		emitMovgr2frW(c, w)
	case 0x1CF:
		emitMovgr2frD(c, w)
	case 0x1D0:
		emitMovgr2frhW(c, w)
	case 0x1D1:
		emitMovfr2grS(c, w)
	case 0x1D2:
		emitMovfr2grD(c, w)
	case 0x1D3:
		emitMovfrh2grS(c, w)
	case 0x1D4:
		emitMovgr2fcsr(c, w)
	case 0x1D5:
		emitMovfcsr2gr(c, w)
	case 0x1D6:
		emitMovfr2cf(c, w)
	case 0x1D7:
		emitMovcf2fr(c, w)
	case 0x1D8:
		emitMovgr2cf(c, w)
	case 0x1D9:
		emitMovcf2gr(c, w)
	case 0x1DA, 0x1DB, 0x1DC, 0x1DD, 0x1DE, 0x1DF, 0x1E0, 0x1E1, 0x1E2, 0x1E3,
		0x1E4, 0x1E5, 0x1E6, 0x1E7, 0x1E8, 0x1E9, 0x1EA, 0x1EB, 0x1EC, 0x1ED,
		0x1EE, 0x1EF, 0x1F0, 0x1F1, 0x1F2, 0x1F3:
		if !emitCapCheck(c, guest.CapFP) {
			return true
		}
		dispatchFCvt(c, w, op22(w))
	default:
		return false
	}
	if c.fresh() {
		c.setContinue(4)
	}
	return true
}

// dispatchFCvt emits the conversion opcode matching op; the caller has
// already verified op falls within the recognized conversion band.
func dispatchFCvt(c *Context, w uint32, op uint32) {
	switch op {
	case 0x1DA:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyF32, cvtRoundDynamic, false) // fcvt.s.d
	case 0x1DB:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyF64, cvtRoundDynamic, false) // fcvt.d.s
	case 0x1DC:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI32, cvtRoundDynamic, true) // ftint.w.s
	case 0x1DD:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI32, cvtRoundDynamic, true) // ftint.w.d
	case 0x1DE:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI64, cvtRoundDynamic, true) // ftint.l.s
	case 0x1DF:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI64, cvtRoundDynamic, true) // ftint.l.d
	case 0x1E0:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI32, cvtRoundNearest, true) // ftintrne.w.s
	case 0x1E1:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI32, cvtRoundNearest, true) // ftintrne.w.d
	case 0x1E2:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI64, cvtRoundNearest, true) // ftintrne.l.s
	case 0x1E3:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI64, cvtRoundNearest, true) // ftintrne.l.d
	case 0x1E4:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI32, cvtRoundZero, true) // ftintrz.w.s
	case 0x1E5:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI32, cvtRoundZero, true) // ftintrz.w.d
	case 0x1E6:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI64, cvtRoundZero, true) // ftintrz.l.s
	case 0x1E7:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI64, cvtRoundZero, true) // ftintrz.l.d
	case 0x1E8:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI32, cvtRoundUp, true) // ftintrp.w.s
	case 0x1E9:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI32, cvtRoundUp, true) // ftintrp.w.d
	case 0x1EA:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI64, cvtRoundUp, true) // ftintrp.l.s
	case 0x1EB:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI64, cvtRoundUp, true) // ftintrp.l.d
	case 0x1EC:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI32, cvtRoundDown, true) // ftintrm.w.s
	case 0x1ED:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI32, cvtRoundDown, true) // ftintrm.w.d
	case 0x1EE:
		emitFCvt(c, rd(w), rj(w), ir.TyF32, ir.TyI64, cvtRoundDown, true) // ftintrm.l.s
	case 0x1EF:
		emitFCvt(c, rd(w), rj(w), ir.TyF64, ir.TyI64, cvtRoundDown, true) // ftintrm.l.d
	case 0x1F0:
		emitFCvt(c, rd(w), rj(w), ir.TyI32, ir.TyF32, cvtRoundDynamic, false) // ffint.s.w
	case 0x1F1:
		emitFCvt(c, rd(w), rj(w), ir.TyI64, ir.TyF32, cvtRoundDynamic, false) // ffint.s.l
	case 0x1F2:
		emitFCvt(c, rd(w), rj(w), ir.TyI32, ir.TyF64, cvtRoundDynamic, false) // ffint.d.w
	case 0x1F3:
		emitFCvt(c, rd(w), rj(w), ir.TyI64, ir.TyF64, cvtRoundDynamic, false) // ffint.d.l
	}
}

// dispatchFsel and dispatchFPLoadStore live at their own 3R/2RI12
// prefixes, separate switches to keep each cascade short.
func dispatchFsel(c *Context, w uint32) bool {
	const op3RFsel = 0x340
	if op17(w) != op3RFsel {
		return false
	}
	emitFsel(c, w)
	if c.fresh() {
		c.setContinue(4)
	}
	return true
}

func dispatchFPLoadStore(c *Context, w uint32) bool {
	switch op10(w) {
	case 0x2C0:
		emitFLoadImm(c, w, 32)
	case 0x2C1:
		emitFLoadImm(c, w, 64)
	case 0x2C2:
		emitFStoreImm(c, w, 32)
	case 0x2C3:
		emitFStoreImm(c, w, 64)
	default:
		return dispatchFPLoadStoreIndexed(c, w)
	}
	if c.fresh() {
		c.setContinue(4)
	}
	return true
}

func dispatchFPLoadStoreIndexed(c *Context, w uint32) bool {
	op := op17(w)
	switch op {
	case 0x380:
		emitFLoadIndexed(c, w, 32)
	case 0x381:
		emitFLoadIndexed(c, w, 64)
	case 0x382:
		emitFStoreIndexed(c, w, 32)
	case 0x383:
		emitFStoreIndexed(c, w, 64)
	case 0x384:
		emitFBoundsLoad(c, w, 32, true)
	case 0x385:
		emitFBoundsLoad(c, w, 64, true)
	case 0x386:
		emitFBoundsLoad(c, w, 32, false)
	case 0x387:
		emitFBoundsLoad(c, w, 64, false)
	case 0x388:
		emitFBoundsStore(c, w, 32, true)
	case 0x389:
		emitFBoundsStore(c, w, 64, true)
	case 0x38A:
		emitFBoundsStore(c, w, 32, false)
	case 0x38B:
		emitFBoundsStore(c, w, 64, false)
	default:
		return false
	}
	if c.fresh() {
		c.setContinue(4)
	}
	return true
}

// dispatchFenceHint recognizes dbar/ibar/preld, which carry no
// register operands beyond an address form and so key off a dedicated
// 22-bit prefix.
func dispatchFenceHint(c *Context, w uint32) bool {
	switch op22(w) {
	case 0x3A5:
		emitDbar(c, w)
	case 0x3A6:
		emitIbar(c, w)
	case 0x3A7:
		emitPreld(c, w)
	default:
		return false
	}
	c.setContinue(4)
	return true
}

// dispatchCPUCfg recognizes cpucfg rd, rj: a 3R-shaped instruction
// that reads the external CPUCFG helper and requires the CPUCFG
// capability.
func dispatchCPUCfg(c *Context, w uint32) bool {
	const op3RCpucfg = 0x01B
	if op17(w) != op3RCpucfg {
		return false
	}
	if !emitCapCheck(c, guest.CapCPUCFG) {
		return true
	}
	putGPR(c, rd(w), ir.Call("cpucfg", ir.TyI64, getGPR(rj(w), 32)))
	c.setContinue(4)
	return true
}
