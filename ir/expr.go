package ir

// ConstU builds a constant expression of the given type.
func ConstU(v uint64, ty Type) *Expr {
	return &Expr{Kind: KindConst, ConstU: v, Ty: ty}
}

// GetTmp reads back a previously allocated temp.
func GetTmp(t Temp) *Expr {
	return &Expr{Kind: KindTmp, Tmp: t, Ty: t.Ty}
}

// GetReg reads a guest register.
func GetReg(reg GuestReg, ty Type) *Expr {
	return &Expr{Kind: KindGet, Reg: reg, Ty: ty}
}

// GetFCC reads one FP condition-code flag.
func GetFCC(idx uint8) *Expr {
	return &Expr{Kind: KindGetFCC, Reg: GuestReg{Name: "FCC", Index: int(idx)}, Ty: TyI1}
}

// GetFCSR reads the whole FCSR0 word.
func GetFCSR() *Expr {
	return &Expr{Kind: KindGetFCSR, Reg: GuestReg{Name: "FCSR0", Index: -1}, Ty: TyI32}
}

// Binop builds a two-operand expression of result type ty.
func Binop(op Op, ty Type, a, b *Expr) *Expr {
	return &Expr{Kind: KindBinop, Op: op, Ty: ty, A: a, B: b}
}

// Unop builds a one-operand expression of result type ty.
func Unop(op Op, ty Type, a *Expr) *Expr {
	return &Expr{Kind: KindUnop, Op: op, Ty: ty, A: a}
}

// Terop builds a three-operand expression (the FMA family) of result
// type ty.
func Terop(op Op, ty Type, a, b, c *Expr) *Expr {
	return &Expr{Kind: KindUnop, Op: op, Ty: ty, A: a, B: b, C: c}
}

// WithRound attaches a fixed rounding mode to an already-built
// expression (arithmetic/conversion ops that round).
func WithRound(e *Expr, rm RoundingMode) *Expr {
	e.Round = rm
	return e
}

// WithDynRound attaches a runtime-computed rounding-mode operand,
// overriding any fixed RoundingMode on e.
func WithDynRound(e *Expr, rm *Expr) *Expr {
	e.DynRM = rm
	return e
}

// Compare builds a comparison expression. ty is the result type: TyI1
// for ordinary integer compares, TyI32 for the 2-bit LA64 fcmp result
// encoding.
func Compare(op Op, ty Type, a, b *Expr) *Expr {
	return &Expr{Kind: KindCompare, Op: op, Ty: ty, A: a, B: b}
}

// ITE builds a select(cond, whenTrue, whenFalse) expression.
func ITE(cond, whenTrue, whenFalse *Expr) *Expr {
	return &Expr{Kind: KindITE, Ty: whenTrue.Ty, A: cond, B: whenTrue, C: whenFalse}
}

// SignExtend widens a value of declared type `from` to `to` via an
// arithmetic-shift round-trip.
func SignExtend(from, to Type, e *Expr) *Expr {
	return &Expr{Kind: KindUnop, Op: OpSignExtend, Ty: to, A: e, B: ConstU(uint64(from), TyI8)}
}

// ZeroExtend widens a value of declared type `from` to `to`.
func ZeroExtend(from, to Type, e *Expr) *Expr {
	return &Expr{Kind: KindUnop, Op: OpZeroExtend, Ty: to, A: e, B: ConstU(uint64(from), TyI8)}
}

// Narrow truncates e to the given type.
func Narrow(to Type, e *Expr) *Expr {
	return &Expr{Kind: KindUnop, Op: OpNarrow, Ty: to, A: e}
}

// Reinterpret bit-casts e to ty without changing its bit pattern
// (integer<->float moves, fclass/fcopysign's integer-domain detours).
func Reinterpret(ty Type, e *Expr) *Expr {
	return &Expr{Kind: KindUnop, Op: OpReinterpret, Ty: ty, A: e}
}

// Load reads size-`ty` bytes from guest memory at addr.
func Load(addr *Expr, ty Type) *Expr {
	return &Expr{Kind: KindLoad, Ty: ty, Addr: addr}
}

// Call builds an opaque call to an external helper: byte-reverse,
// bit-reverse, CRC, cpu-info, fclass, FCSR-update. The
// decode core knows only the helper's name, its evaluated arguments,
// and its return type — never its body.
func Call(name string, retTy Type, args ...*Expr) *Expr {
	return &Expr{Kind: KindHelperCall, Ty: retTy, Call: &HelperCall{Name: name, Args: args, RetType: retTy}}
}
