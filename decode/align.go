package decode

import (
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

// Alignment checks and guest-exception exits. Grounded on
// emu/load_store.go's bounds-style guards, generalized
// from "trap immediately in Go" to "emit a guarded IR exit and keep
// building IR for the fall-through path".

// alignMask returns the required-alignment mask for a non-byte access
// of the given width in bytes (1 for half, 3 for word, 7 for
// doubleword), or 0 for byte accesses, which never need a guard.
func alignMask(widthBytes uint8) uint64 {
	switch widthBytes {
	case 2:
		return 1
	case 4:
		return 3
	case 8:
		return 7
	default:
		return 0
	}
}

// emitAlignCheck appends a guarded SigBUS exit to PC+4 when addr is
// misaligned for the given access width, unless UAL is advertised. It
// is a no-op for byte accesses or when UAL is set.
func emitAlignCheck(c *Context, addr *ir.Expr, widthBytes uint8) {
	mask := alignMask(widthBytes)
	if mask == 0 || c.Caps.Has(guest.CapUAL) {
		return
	}
	guard := ir.Binop(ir.OpCmpNE, ir.TyI1,
		ir.Binop(ir.OpAnd, ir.TyI64, addr, ir.ConstU(mask, ir.TyI64)),
		ir.ConstU(0, ir.TyI64))
	c.Builder.Exit(guard, ir.ExitSigBus, constPC(c.GuestIP, 4))
}

// emitBoundsCheck appends a guarded SigSYS exit for the bounds-checked
// `...gt`/`...le` load/store family: ldgt/fldgt require addr > bound,
// ldle/fldle require addr <= bound, and the matching
// stores (stgt/fstgt, stle/fstle) use the same sense.
func emitBoundsCheck(c *Context, addr, bound *ir.Expr, wantGreater bool) {
	// Build the "fails the requirement" guard directly so the exit
	// fires exactly when the access is out of bounds.
	var guard *ir.Expr
	if wantGreater {
		guard = ir.Binop(ir.OpCmpGEU, ir.TyI1, bound, addr) // bound >= addr  <=>  !(addr > bound)
	} else {
		guard = ir.Binop(ir.OpCmpLTU, ir.TyI1, bound, addr) // bound < addr   <=>  !(addr <= bound)
	}
	c.Builder.Exit(guard, ir.ExitSigSys, constPC(c.GuestIP, 4))
}

// emitCapCheck appends an unconditional SigILL exit and marks the
// block stopped when the required capability is missing, and reports
// whether decoding should continue (false means the caller must return
// immediately without emitting anything further).
func emitCapCheck(c *Context, need guest.Capabilities) bool {
	if c.Caps.Has(need) {
		return true
	}
	c.Builder.Exit(nil, ir.ExitSigIll, constPC(c.GuestIP, 4))
	c.setStop(4, ReasonSigIll)
	return false
}
