package decode

// Bit-field extractors: pure functions slicing named sub-fields out of
// a 32-bit LA64 instruction word. Grounded on insts/decoder.go's
// extraction style ((word >> n) & mask, one documented function per
// field), generalized from ARM64's field layout to LA64's.

// rd extracts the destination register, bits [4:0].
func rd(w uint32) uint8 { return uint8(w & 0x1F) }

// rj extracts the first source register, bits [9:5].
func rj(w uint32) uint8 { return uint8((w >> 5) & 0x1F) }

// rk extracts the second source register, bits [14:10].
func rk(w uint32) uint8 { return uint8((w >> 10) & 0x1F) }

// rd0 is an alias of rd for forms that reuse rd as a third source; no
// emitter currently calls it.
func rd0(w uint32) uint8 { return rd(w) }

// sa2 extracts a 2-bit scale/shift-amount field, bits [16:15].
func sa2(w uint32) uint8 { return uint8((w >> 15) & 0x3) }

// sa3 extracts a 3-bit scale field, bits [17:15].
func sa3(w uint32) uint8 { return uint8((w >> 15) & 0x7) }

// ui5 extracts a 5-bit shift amount / unsigned immediate, bits [14:10].
func ui5(w uint32) uint8 { return uint8((w >> 10) & 0x1F) }

// ui6 extracts a 6-bit shift amount / unsigned immediate, bits [15:10].
func ui6(w uint32) uint8 { return uint8((w >> 10) & 0x3F) }

// msbw/lsbw extract the 5-bit bit-range endpoints used by 32-bit
// bstrins.w/bstrpick.w, at bits [20:16] and [14:10] respectively.
func msbw(w uint32) uint8 { return uint8((w >> 16) & 0x1F) }
func lsbw(w uint32) uint8 { return uint8((w >> 10) & 0x1F) }

// msbd/lsbd extract the 6-bit bit-range endpoints used by 64-bit
// bstrins.d/bstrpick.d, at bits [21:16] and [15:10] respectively.
func msbd(w uint32) uint8 { return uint8((w >> 16) & 0x3F) }
func lsbd(w uint32) uint8 { return uint8((w >> 10) & 0x3F) }

// imm12 extracts the 12-bit signed immediate, bits [21:10].
func imm12(w uint32) uint32 { return (w >> 10) & 0xFFF }

// imm14 extracts the 14-bit signed, word-scaled displacement used by
// ldptr/stptr, bits [23:10].
func imm14(w uint32) uint32 { return (w >> 10) & 0x3FFF }

// imm16 extracts the 16-bit signed immediate/offset, bits [25:10].
func imm16(w uint32) uint32 { return (w >> 10) & 0xFFFF }

// imm20 extracts the 20-bit signed immediate used by lu12i.w/lu32i.d/
// pcaddu12i/pcaddu18i, bits [24:5].
func imm20(w uint32) uint32 { return (w >> 5) & 0xFFFFF }

// hint15 extracts the 15-bit hint field used by dbar/ibar, bits
// [14:0].
func hint15(w uint32) uint32 { return w & 0x7FFF }

// hint5 extracts the 5-bit hint field used by preld, bits [4:0].
func hint5(w uint32) uint8 { return rd(w) }

// fcc3At extracts a 3-bit FP condition-code selector at the given bit
// offset; FCC selectors occupy distinct positions across fcmp, fsel,
// bceqz/bcnez and the movcf forms.
func fcc3At(w uint32, shift uint8) uint8 { return uint8((w >> shift) & 0x7) }

// cond5 extracts the fcmp condition-code selector, bits [19:15].
func cond5(w uint32) uint8 { return uint8((w >> 15) & 0x1F) }

// offs16 extracts the 16-bit branch offset used by beq/bne/blt/bge/
// bltu/bgeu, bits [25:10].
func offs16(w uint32) uint32 { return imm16(w) }

// offs21 reassembles the 21-bit branch offset used by beqz/bnez/
// bceqz/bcnez from its two non-contiguous encoding pieces: a 16-bit
// low chunk at bits [25:10] and a 5-bit high chunk at bits [4:0],
// combined as (high-chunk << 16) | low-chunk.
func offs21(w uint32) uint32 {
	low := (w >> 10) & 0xFFFF
	high := w & 0x1F
	return (high << 16) | low
}

// offs26 reassembles the 26-bit branch offset used by b/bl from a
// 16-bit low chunk at bits [25:10] and a 10-bit high chunk at bits
// [9:0].
func offs26(w uint32) uint32 {
	low := (w >> 10) & 0xFFFF
	high := w & 0x3FF
	return (high << 16) | low
}

// code15 extracts the break/syscall 15-bit immediate code, bits [14:0].
func code15(w uint32) uint32 { return hint15(w) }

// signExtend32 widens a value of the declared bit width to a signed
// 32-bit value via arithmetic-shift round-trip.
func signExtend32(v uint32, width uint8) int32 {
	shift := 32 - width
	return int32(v<<shift) >> shift
}

// signExtend64 widens a value of the declared bit width to a signed
// 64-bit value via arithmetic-shift round-trip.
func signExtend64(v uint64, width uint8) int64 {
	shift := 64 - width
	return int64(v<<shift) >> shift
}

// wordScaled turns a branch offset given in instruction-words into a
// signed byte offset (LA64 branch/jump offsets are always word
// (4-byte) scaled).
func wordScaled(signedWords int64) int64 { return signedWords * 4 }
