package decode

import "github.com/sarchlab/la64ir/ir"

// Control-flow emitters: conditional branches emit a
// conditional exit with a sign-extended, word-scaled offset from the
// current PC; unconditional branches write PC directly and stop the
// block; break/syscall set PC to PC+4 and request a trap/syscall stop.
// Grounded on insts/branch.go's "compute target, compare, decide
// taken" shape, generalized from "mutate PC in Go" to "emit a
// conditional IR exit, then an unconditional fall-through exit".

// emitCondBranch16 is the common shape for beq/bne/blt/bge/bltu/bgeu:
// rd and rj are compared, and a 16-bit signed word-scaled offset
// selects the taken target.
func emitCondBranch16(c *Context, w uint32, op ir.Op) {
	d, j := rd(w), rj(w)
	offset := wordScaled(signExtend64(uint64(offs16(w)), 16))
	taken := constPC(c.GuestIP, offset)
	// Assembly order is `op rj, rd, offs`: rj is the left operand.
	cond := ir.Compare(op, ir.TyI1, getGPR(j, 64), getGPR(d, 64))
	c.Builder.Exit(cond, ir.ExitBoring, taken)
	c.Builder.Exit(nil, ir.ExitBoring, constPC(c.GuestIP, 4))
	c.setStop(4, ReasonBoring)
}

func emitBeq(c *Context, w uint32)  { emitCondBranch16(c, w, ir.OpCmpEQ) }
func emitBne(c *Context, w uint32)  { emitCondBranch16(c, w, ir.OpCmpNE) }
func emitBlt(c *Context, w uint32)  { emitCondBranch16(c, w, ir.OpCmpLTS) }
func emitBge(c *Context, w uint32)  { emitCondBranch16(c, w, ir.OpCmpGES) }
func emitBltu(c *Context, w uint32) { emitCondBranch16(c, w, ir.OpCmpLTU) }
func emitBgeu(c *Context, w uint32) { emitCondBranch16(c, w, ir.OpCmpGEU) }

// emitBeqz/Bnez emit the single-register zero-test branches, using the
// reassembled 21-bit offset.
func emitBeqz(c *Context, w uint32) { emitZeroTestBranch(c, w, ir.OpCmpEQ) }
func emitBnez(c *Context, w uint32) { emitZeroTestBranch(c, w, ir.OpCmpNE) }

func emitZeroTestBranch(c *Context, w uint32, op ir.Op) {
	j := rj(w)
	offset := wordScaled(signExtend64(uint64(offs21(w)), 21))
	taken := constPC(c.GuestIP, offset)
	cond := ir.Compare(op, ir.TyI1, getGPR(j, 64), ir.ConstU(0, ir.TyI64))
	c.Builder.Exit(cond, ir.ExitBoring, taken)
	c.Builder.Exit(nil, ir.ExitBoring, constPC(c.GuestIP, 4))
	c.setStop(4, ReasonBoring)
}

// emitBceqz/Bcnez emit the FCC-predicated branches: bceqz branches
// when FCC[cj]=0, bcnez when FCC[cj]!=0.
func emitBceqz(c *Context, w uint32) { emitFCCBranch(c, w, true) }
func emitBcnez(c *Context, w uint32) { emitFCCBranch(c, w, false) }

func emitFCCBranch(c *Context, w uint32, wantZero bool) {
	cj := fcc3At(w, 5)
	offset := wordScaled(signExtend64(uint64(offs21(w)), 21))
	taken := constPC(c.GuestIP, offset)
	flag := getFCC(cj)
	var cond *ir.Expr
	if wantZero {
		cond = ir.Binop(ir.OpCmpEQ, ir.TyI1, flag, ir.ConstU(0, ir.TyI1))
	} else {
		cond = ir.Binop(ir.OpCmpNE, ir.TyI1, flag, ir.ConstU(0, ir.TyI1))
	}
	c.Builder.Exit(cond, ir.ExitBoring, taken)
	c.Builder.Exit(nil, ir.ExitBoring, constPC(c.GuestIP, 4))
	c.setStop(4, ReasonBoring)
}

// emitB emits the unconditional branch b: PC <- entryPC + offset26.
func emitB(c *Context, w uint32) {
	offset := wordScaled(signExtend64(uint64(offs26(w)), 26))
	c.Builder.Exit(nil, ir.ExitBoring, constPC(c.GuestIP, offset))
	c.setStop(4, ReasonBoring)
}

// emitBl emits bl: like b, but first saves the return address (PC+4)
// in register 1.
func emitBl(c *Context, w uint32) {
	offset := wordScaled(signExtend64(uint64(offs26(w)), 26))
	putGPR(c, 1, constPC(c.GuestIP, 4))
	c.Builder.Exit(nil, ir.ExitBoring, constPC(c.GuestIP, offset))
	c.setStop(4, ReasonBoring)
}

// emitJirl computes `rj + (offset<<2)` before writing the link
// register, so that the rd == rj case reads the pre-link value of rj.
func emitJirl(c *Context, w uint32) {
	d, j := rd(w), rj(w)
	offset := wordScaled(signExtend64(uint64(imm16(w)), 16))
	target := ir.Binop(ir.OpAdd, ir.TyI64, getGPR(j, 64), ir.ConstU(uint64(offset), ir.TyI64))
	if d != 0 {
		t := c.Builder.NewTemp(ir.TyI64)
		c.Builder.Assign(t, target)
		target = ir.GetTmp(t)
	}
	putGPR(c, d, constPC(c.GuestIP, 4))
	c.Builder.Exit(nil, ir.ExitBoring, target)
	c.setStop(4, ReasonBoring)
}

// breakCode names the subset of break immediate codes this core
// distinguishes; anything else maps to a generic trap, mirroring the
// hosting framework's own limited interpretation of the field.
const (
	breakCodeIntOvf = 6
	breakCodeIntDiv = 7
)

// emitBreak sets PC to PC+4 then selects a trap-kind stop-reason from
// the immediate code.
func emitBreak(c *Context, w uint32) {
	code := code15(w)
	switch code {
	case breakCodeIntOvf:
		c.Builder.Exit(nil, ir.ExitSigFPEIntOvf, constPC(c.GuestIP, 4))
		c.setStop(4, ReasonFPEIntOvf)
	case breakCodeIntDiv:
		c.Builder.Exit(nil, ir.ExitSigFPEIntDiv, constPC(c.GuestIP, 4))
		c.setStop(4, ReasonFPEIntDiv)
	default:
		c.Builder.Exit(nil, ir.ExitSigTrap, constPC(c.GuestIP, 4))
		c.setStop(4, ReasonTrap)
	}
}

// emitSyscall sets PC to PC+4 and requests a syscall-kind stop.
func emitSyscall(c *Context, w uint32) {
	c.Builder.Exit(nil, ir.ExitSyscall, constPC(c.GuestIP, 4))
	c.setStop(4, ReasonSyscall)
}
