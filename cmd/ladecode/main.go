// Command ladecode decodes a single LoongArch64 guest instruction (or
// the 20-byte "special" instrumentation preamble) into its IR and
// prints the result.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/la64ir/decode"
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

var (
	pc         = flag.Uint64("pc", 0, "guest address of the instruction")
	capList    = flag.String("caps", "", "comma-separated capability flags: fp,ual,lam,cpucfg")
	fallback   = flag.Bool("fallback-llsc", false, "use the compare-and-swap LL/SC fallback")
	sigillDiag = flag.Bool("sigill-diag", true, "print a diagnostic when decode fails")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: ladecode [options] <hex-bytes>\n")
		fmt.Fprintf(os.Stderr, "\nhex-bytes is one or more 4-byte little-endian words,\ne.g. 20000024 for the word 0x24000020.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	raw, err := hex.DecodeString(strings.TrimPrefix(flag.Arg(0), "0x"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hex bytes: %v\n", err)
		os.Exit(1)
	}
	if len(raw) < 4 {
		fmt.Fprintf(os.Stderr, "Error: need at least 4 bytes, got %d\n", len(raw))
		os.Exit(1)
	}
	if len(raw) < 20 {
		raw = append(raw, make([]byte, 20-len(raw))...)
	}

	block := ir.NewBlock()
	ctx := &decode.Context{
		Builder:    block,
		GuestBytes: raw,
		GuestIP:    *pc,
		GuestArch:  guest.ArchLA64,
		Caps:       parseCaps(*capList),
		ABI:        guest.ABI{UseFallbackLLSC: *fallback},
		SigillDiag: *sigillDiag,
		Trace:      func(format string, args ...any) { fmt.Fprintf(os.Stderr, format+"\n", args...) },
	}

	res := decode.Decode(ctx)

	for i, stmt := range block.Stmts() {
		fmt.Printf("%3d: %s\n", i, formatStmt(stmt))
	}
	fmt.Printf("length=%d next-action=%d stop-reason=%d\n",
		res.Length, res.NextAction, res.StopReason)
}

func parseCaps(s string) guest.Capabilities {
	var caps guest.Capabilities
	if s == "" {
		return caps
	}
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "fp":
			caps |= guest.CapFP
		case "ual":
			caps |= guest.CapUAL
		case "lam":
			caps |= guest.CapLAM
		case "cpucfg":
			caps |= guest.CapCPUCFG
		}
	}
	return caps
}

// formatStmt renders one recorded Stmt as a single line. This exists
// only for this CLI's benefit; the decode core never formats its own
// output.
func formatStmt(s ir.Stmt) string {
	switch s.Kind {
	case ir.KindAssign:
		return fmt.Sprintf("t%d := %s", s.AssignTo.ID, formatExpr(s.Value))
	case ir.KindPut:
		return fmt.Sprintf("PUT(%s) = %s", formatReg(s.PutReg), formatExpr(s.Value))
	case ir.KindStore:
		return fmt.Sprintf("STORE(%s) = %s", formatExpr(s.Addr), formatExpr(s.Value))
	case ir.KindExit:
		if s.Guard == nil {
			return fmt.Sprintf("EXIT(kind=%d) -> %s", s.Kind_, formatExpr(s.Dst))
		}
		return fmt.Sprintf("EXIT(if %s, kind=%d) -> %s", formatExpr(s.Guard), s.Kind_, formatExpr(s.Dst))
	case ir.KindFence:
		return fmt.Sprintf("FENCE(%d)", s.Fence)
	case ir.KindCAS:
		return fmt.Sprintf("t%d := CAS(%s, %s, %s)", s.CASResult.ID,
			formatExpr(s.CASAddr), formatExpr(s.CASExpect), formatExpr(s.CASNew))
	case ir.KindLL:
		return fmt.Sprintf("t%d := LL(%s, size=%d)", s.LLDest.ID, formatExpr(s.LLAddr), s.LLSize)
	case ir.KindSC:
		return fmt.Sprintf("t%d := SC(%s, %s, size=%d)", s.SCResult.ID,
			formatExpr(s.SCAddr), formatExpr(s.SCData), s.SCSize)
	case ir.KindSideEffect:
		return fmt.Sprintf("SIDE_EFFECT(%s)", formatExpr(s.Side))
	default:
		return fmt.Sprintf("<unknown stmt kind %d>", s.Kind)
	}
}

func formatReg(reg ir.GuestReg) string {
	if reg.Index < 0 {
		return reg.Name
	}
	return fmt.Sprintf("%s%d", reg.Name, reg.Index)
}

func formatExpr(e *ir.Expr) string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ir.KindConst:
		return fmt.Sprintf("0x%x", e.ConstU)
	case ir.KindTmp:
		return fmt.Sprintf("t%d", e.Tmp.ID)
	case ir.KindGet:
		return fmt.Sprintf("GET(%s)", formatReg(e.Reg))
	case ir.KindGetFCC:
		return fmt.Sprintf("GET(%s)", formatReg(e.Reg))
	case ir.KindGetFCSR:
		return "GET(FCSR0)"
	case ir.KindBinop:
		return fmt.Sprintf("(%s op%d %s)", formatExpr(e.A), e.Op, formatExpr(e.B))
	case ir.KindUnop:
		if e.C != nil {
			return fmt.Sprintf("op%d(%s, %s, %s)", e.Op, formatExpr(e.A), formatExpr(e.B), formatExpr(e.C))
		}
		return fmt.Sprintf("op%d(%s)", e.Op, formatExpr(e.A))
	case ir.KindCompare:
		return fmt.Sprintf("(%s cmp%d %s)", formatExpr(e.A), e.Op, formatExpr(e.B))
	case ir.KindITE:
		return fmt.Sprintf("ite(%s, %s, %s)", formatExpr(e.A), formatExpr(e.B), formatExpr(e.C))
	case ir.KindLoad:
		return fmt.Sprintf("LOAD(%s)", formatExpr(e.Addr))
	case ir.KindHelperCall:
		args := make([]string, len(e.Call.Args))
		for i, a := range e.Call.Args {
			args[i] = formatExpr(a)
		}
		return fmt.Sprintf("%s(%s)", e.Call.Name, strings.Join(args, ", "))
	default:
		return fmt.Sprintf("<unknown expr kind %d>", e.Kind)
	}
}
