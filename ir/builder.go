package ir

// Builder is the opaque IR-builder API the decode core is written
// against. Every method appends exactly one statement (or allocates
// one temp) to the Builder's owner; none of them evaluate anything.
type Builder interface {
	// NewTemp allocates a fresh SSA-like temporary of the given type.
	NewTemp(ty Type) Temp

	// Assign appends `t := e`.
	Assign(t Temp, e *Expr)

	// Put appends a write of e to the named guest register.
	Put(reg GuestReg, e *Expr)

	// Store appends a write of data to guest memory at addr.
	Store(addr, data *Expr)

	// Exit appends a (possibly conditional, when guard != nil) exit to
	// dst with the given stop-reason kind. guard == nil means
	// unconditional.
	Exit(guard *Expr, kind ExitKind, dst *Expr)

	// Fence appends a memory (dbar) or instruction (ibar) fence.
	Fence(kind FenceKind)

	// CAS appends a compare-and-swap of *addr from expect to new and
	// returns a fresh I1 temp holding 1 on success, 0 on failure.
	CAS(addr, expect, newVal *Expr, ty Type) Temp

	// LL appends a load-linked of the given size (4 or 8 bytes) and
	// returns a temp holding the loaded value.
	LL(addr *Expr, size uint8) Temp

	// SC appends a store-conditional of data at addr with the given
	// size and returns a temp holding 1 on success, 0 on failure.
	SC(addr, data *Expr, size uint8) Temp

	// SideEffect appends a helper call evaluated for its effect only
	// (e.g. an FCSR-update helper invoked before the arithmetic it
	// gates).
	SideEffect(call *Expr)
}

// Block is a concrete, order-preserving Builder that records every
// appended statement into a slice. It is the reference implementation
// tests and cmd/ladecode run against; production backends supply their
// own Builder and never need to know Block exists.
type Block struct {
	stmts   []Stmt
	nextTmp int
}

// NewBlock returns an empty Block.
func NewBlock() *Block {
	return &Block{}
}

// Stmts returns the statements recorded so far, in emission order.
func (b *Block) Stmts() []Stmt { return b.stmts }

// Len reports how many statements have been recorded.
func (b *Block) Len() int { return len(b.stmts) }

func (b *Block) NewTemp(ty Type) Temp {
	t := Temp{ID: b.nextTmp, Ty: ty}
	b.nextTmp++
	return t
}

func (b *Block) Assign(t Temp, e *Expr) {
	b.stmts = append(b.stmts, Stmt{Kind: KindAssign, AssignTo: t, Value: e})
}

func (b *Block) Put(reg GuestReg, e *Expr) {
	b.stmts = append(b.stmts, Stmt{Kind: KindPut, PutReg: reg, Value: e})
}

func (b *Block) Store(addr, data *Expr) {
	b.stmts = append(b.stmts, Stmt{Kind: KindStore, Addr: addr, Value: data})
}

func (b *Block) Exit(guard *Expr, kind ExitKind, dst *Expr) {
	b.stmts = append(b.stmts, Stmt{Kind: KindExit, Guard: guard, Kind_: kind, Dst: dst})
}

func (b *Block) Fence(kind FenceKind) {
	b.stmts = append(b.stmts, Stmt{Kind: KindFence, Fence: kind})
}

func (b *Block) CAS(addr, expect, newVal *Expr, ty Type) Temp {
	result := b.NewTemp(TyI1)
	b.stmts = append(b.stmts, Stmt{
		Kind: KindCAS, CASAddr: addr, CASExpect: expect, CASNew: newVal, CASResult: result,
	})
	return result
}

func (b *Block) LL(addr *Expr, size uint8) Temp {
	ty := TyI32
	if size == 8 {
		ty = TyI64
	}
	dest := b.NewTemp(ty)
	b.stmts = append(b.stmts, Stmt{Kind: KindLL, LLAddr: addr, LLSize: size, LLDest: dest})
	return dest
}

func (b *Block) SC(addr, data *Expr, size uint8) Temp {
	result := b.NewTemp(TyI1)
	b.stmts = append(b.stmts, Stmt{Kind: KindSC, SCAddr: addr, SCData: data, SCSize: size, SCResult: result})
	return result
}

func (b *Block) SideEffect(call *Expr) {
	b.stmts = append(b.stmts, Stmt{Kind: KindSideEffect, Side: call})
}

// Reset clears the Block, reusing its backing array, avoiding an
// allocation per decode call in the benchmark driver.
func (b *Block) Reset() {
	b.stmts = b.stmts[:0]
	b.nextTmp = 0
}
