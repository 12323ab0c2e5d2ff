// Package ir defines the closed set of IR node types the decode core
// builds. The core never evaluates these nodes; it only constructs them
// through a Builder (see builder.go) and hands the result to a caller
// owned backend. Block, the concrete Builder in this package, exists so
// tests and cmd/ladecode have something to run against.
package ir

// Type names the width and kind of value an Expr produces.
type Type uint8

// IR value types. Widths match the guest registers and memory accesses
// the decode core ever needs: bytes through doublewords, plus a single
// 1-bit type used for comparison/condition results.
const (
	TyI1 Type = iota
	TyI8
	TyI16
	TyI32
	TyI64
	TyF32
	TyF64
)

// Temp is a handle to an SSA-like temporary a Builder has allocated.
// Temp numbering is Builder-local; two Blocks built from the same
// inputs are expected to differ only in temp numbering, not in
// shape.
type Temp struct {
	ID int
	Ty Type
}

// GuestReg names an abstract field in guest.State this IR statement
// reads or writes. The decode core never depends on the numeric value
// of a GuestReg; it is an opaque key the Builder's backend resolves.
type GuestReg struct {
	Name  string
	Index int // register index for indexed families (GPR[i], FPR[i]); -1 otherwise
}

// ExitKind enumerates why a conditional or unconditional IR exit stops
// translation. Every kind except ExitKeepGoing has a corresponding
// decode.StopReason (decode/context.go), which in turn adds ReasonNone
// and ReasonNoDecode; the duplication exists because ir must not import
// decode (decode is the consumer of ir, not the other way around).
type ExitKind uint8

const (
	ExitBoring ExitKind = iota
	ExitSyscall
	ExitSigBus
	ExitSigSys
	ExitSigIll
	ExitSigFPEIntOvf
	ExitSigFPEIntDiv
	ExitSigTrap
	ExitClientReq
	ExitNoRedir
	ExitInvalICache
	ExitKeepGoing // retry-same-PC, used by AM* atomics on CAS mismatch
)

// FenceKind distinguishes dbar (data/memory fence) from ibar
// (instruction fence).
type FenceKind uint8

const (
	FenceData FenceKind = iota
	FenceInstr
)

// Op names the operator of a Binop/Unop expression. Only the operators
// the decode core's emitters actually need are listed; this is not a
// general-purpose ISA of IR operators.
type Op uint16

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpMulHS
	OpMulHU
	OpDivS
	OpDivU
	OpRemS
	OpRemU
	OpAnd
	OpOr
	OpXor
	OpNor
	OpShl
	OpShrL
	OpShrA
	OpNot
	OpNeg
	OpSltS
	OpSltU
	OpCmpEQ
	OpCmpNE
	OpCmpLTS
	OpCmpLTU
	OpCmpGES
	OpCmpGEU
	OpSignExtend // widen a sub-width signed value to Ty
	OpZeroExtend
	OpNarrow // truncate to a sub-width
	OpReinterpret
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFMAdd
	OpFMSub
	OpFNMAdd
	OpFNMSub
	OpFSqrt
	OpFRecip
	OpFRSqrt
	OpFScaleB
	OpFLogB
	OpFAbs
	OpFNeg
	OpFMax
	OpFMin
	OpFMaxA
	OpFMinA
	OpFCopySign
	OpFClass
	OpFCmp
	OpFCvt // generic conversion, rounding mode carried on the Expr
	OpITE  // select(cond, a, b)
)

// Expr is the closed expression node set. Exactly one of the typed
// fields is meaningful for a given Kind; the struct carries a
// superset of fields and relies on Kind/Op to say which ones apply.
type Expr struct {
	Kind ExprKind

	ConstU uint64 // KindConst
	Ty     Type

	Tmp Temp // KindTmp

	Reg GuestReg // KindGet / KindGetFCC

	Op   Op     // KindBinop / KindUnop / KindCompare
	A, B *Expr  // operands
	C    *Expr  // third operand (FMA, select)
	Round RoundingMode
	DynRM *Expr // when non-nil, overrides Round with a runtime-computed mode

	Addr *Expr // KindLoad
	Call *HelperCall
}

// ExprKind discriminates the Expr union.
type ExprKind uint8

const (
	KindConst ExprKind = iota
	KindTmp
	KindGet
	KindGetFCC
	KindGetFCSR
	KindBinop
	KindUnop
	KindCompare
	KindITE
	KindLoad
	KindHelperCall
)

// RoundingMode is the IR's own encoding (nearest=0, -inf=1, +inf=2,
// zero=3), distinct from LA64's wire encoding; decode/regs.go performs
// the translation between the two.
type RoundingMode uint8

const (
	RoundNearest RoundingMode = iota
	RoundNegInf
	RoundPosInf
	RoundZero
	RoundDynamic // consult FCSR at eval time rather than a fixed mode
)

// HelperCall records an opaque call to one of the external helpers
// the core treats as collaborators it merely invokes (byte-reverse,
// bit-reverse, CRC, cpu-info, fclass, FCSR update).
type HelperCall struct {
	Name    string
	Args    []*Expr
	RetType Type
}

// Stmt is the closed statement node set the Builder appends to a Block.
type Stmt struct {
	Kind StmtKind

	AssignTo Temp  // KindAssign
	Value    *Expr // KindAssign / KindPut value / KindStore data

	PutReg GuestReg // KindPut / KindPutFCC / KindPutFCSR

	Addr *Expr // KindStore

	Guard *Expr    // KindExit: nil means unconditional
	Kind_ ExitKind // KindExit
	Dst   *Expr    // KindExit: destination PC expression

	Fence FenceKind // KindFence

	CASAddr, CASExpect, CASNew *Expr // KindCAS
	CASResult                 Temp  // receives 1 on success, 0 on failure

	LLAddr *Expr // KindLL
	LLSize uint8
	LLDest Temp

	SCAddr, SCData *Expr // KindSC
	SCSize         uint8
	SCResult       Temp

	Side *Expr // KindSideEffect: a HelperCall evaluated for effect only
}

// StmtKind discriminates the Stmt union.
type StmtKind uint8

const (
	KindAssign StmtKind = iota
	KindPut
	KindPutFCC
	KindPutFCSR
	KindStore
	KindExit
	KindFence
	KindCAS
	KindLL
	KindSC
	KindSideEffect
)
