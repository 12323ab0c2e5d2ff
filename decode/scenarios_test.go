package decode_test

import (
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/la64ir/decode"
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

// words builds a little-endian guest byte stream from a sequence of
// 32-bit instruction words, with some trailing padding so a decode
// attempt never reads past the end of the slice.
func words(ws ...uint32) []byte {
	buf := make([]byte, len(ws)*4+16)
	for i, w := range ws {
		binary.LittleEndian.PutUint32(buf[i*4:], w)
	}
	return buf
}

func newCtx(bytes []byte, pc uint64, caps guest.Capabilities) (*decode.Context, *ir.Block) {
	block := ir.NewBlock()
	return &decode.Context{
		Builder:    block,
		GuestBytes: bytes,
		GuestIP:    pc,
		GuestArch:  guest.ArchLA64,
		Caps:       caps,
	}, block
}

var _ = Describe("Decode", func() {
	// add.w $zero, $zero, $zero -> 0x00100000
	It("discards a write to the zero register and advances by 4", func() {
		ctx, block := newCtx(words(0x00100000), 0x1000, 0)
		res := decode.Decode(ctx)

		Expect(block.Stmts()).To(BeEmpty())
		Expect(res.Length).To(Equal(4))
		Expect(res.NextAction).To(Equal(decode.Continue))
	})

	// lu12i.w $zero, 2 -> 0x14000040
	It("emits no Put for a lu12i.w targeting the zero register", func() {
		ctx, block := newCtx(words(0x14000040), 0x1000, 0)
		res := decode.Decode(ctx)

		Expect(block.Stmts()).To(BeEmpty())
		Expect(res.Length).To(Equal(4))
		Expect(res.NextAction).To(Equal(decode.Continue))
	})

	// andi $r1, $zero, 2 -> 0x03400801
	It("decodes andi into a single Put on r1", func() {
		ctx, block := newCtx(words(0x03400801), 0x1000, 0)
		res := decode.Decode(ctx)

		Expect(block.Stmts()).To(HaveLen(1))
		stmt := block.Stmts()[0]
		Expect(stmt.Kind).To(Equal(ir.KindPut))
		Expect(stmt.PutReg).To(Equal(ir.GuestReg{Name: "X", Index: 1}))
		Expect(res.Length).To(Equal(4))
		Expect(res.NextAction).To(Equal(decode.Continue))
	})

	// ld.w $zero, $r1, 0 -> 0x24000020
	Describe("ld.w $zero, $r1, 0", func() {
		It("emits a guarded alignment exit and discards the load when UAL is unset", func() {
			ctx, block := newCtx(words(0x24000020), 0x1000, 0)
			res := decode.Decode(ctx)

			Expect(block.Stmts()).To(HaveLen(1))
			stmt := block.Stmts()[0]
			Expect(stmt.Kind).To(Equal(ir.KindExit))
			Expect(stmt.Guard).NotTo(BeNil())
			Expect(stmt.Kind_).To(Equal(ir.ExitSigBus))
			Expect(res.Length).To(Equal(4))
			Expect(res.NextAction).To(Equal(decode.Continue))
		})

		It("emits no alignment guard when UAL is advertised", func() {
			ctx, block := newCtx(words(0x24000020), 0x1000, guest.CapUAL)
			decode.Decode(ctx)

			Expect(block.Stmts()).To(BeEmpty())
		})
	})

	// jirl $zero, $r1, 0 -> 0x4c000020
	It("reads rj before discarding the link write, and stops boring", func() {
		ctx, block := newCtx(words(0x4c000020), 0x1000, 0)
		res := decode.Decode(ctx)

		Expect(block.Stmts()).To(HaveLen(1))
		stmt := block.Stmts()[0]
		Expect(stmt.Kind).To(Equal(ir.KindExit))
		Expect(stmt.Guard).To(BeNil())
		Expect(stmt.Kind_).To(Equal(ir.ExitBoring))
		Expect(stmt.Dst.Kind).To(Equal(ir.KindBinop))
		Expect(stmt.Dst.A).To(Equal(ir.GetReg(ir.GuestReg{Name: "X", Index: 1}, ir.TyI64)))

		Expect(res.Length).To(Equal(4))
		Expect(res.NextAction).To(Equal(decode.StopHere))
		Expect(res.StopReason).To(Equal(decode.ReasonBoring))
	})

	// beq $zero, $zero, 1 -> 0x58000400
	It("emits a taken exit and a fall-through exit for an unconditional beq", func() {
		ctx, block := newCtx(words(0x58000400), 0x1000, 0)
		res := decode.Decode(ctx)

		Expect(block.Stmts()).To(HaveLen(2))
		taken := block.Stmts()[0]
		Expect(taken.Kind).To(Equal(ir.KindExit))
		Expect(taken.Guard).NotTo(BeNil())
		Expect(taken.Dst).To(Equal(ir.ConstU(0x1004, ir.TyI64)))

		fallthrough_ := block.Stmts()[1]
		Expect(fallthrough_.Kind).To(Equal(ir.KindExit))
		Expect(fallthrough_.Guard).To(BeNil())
		Expect(fallthrough_.Dst).To(Equal(ir.ConstU(0x1004, ir.TyI64)))

		Expect(res.NextAction).To(Equal(decode.StopHere))
		Expect(res.StopReason).To(Equal(decode.ReasonBoring))
	})

	// the 16-byte shift preamble followed by the client-request marker
	Describe("the special instrumentation preamble", func() {
		preambleWords := []uint32{0x00450c00, 0x00453400, 0x00457400, 0x00454c00}

		It("recognizes the client-request marker and consumes all 20 bytes", func() {
			seq := append(append([]uint32{}, preambleWords...), 0x001535ad)
			ctx, _ := newCtx(words(seq...), 0x2000, 0)
			res := decode.Decode(ctx)

			Expect(res.Length).To(Equal(20))
			Expect(res.NextAction).To(Equal(decode.StopHere))
			Expect(res.StopReason).To(Equal(decode.ReasonClientReq))
		})

		It("fatally asserts when the marker word is unrecognized", func() {
			seq := append(append([]uint32{}, preambleWords...), 0xdeadbeef)
			ctx, _ := newCtx(words(seq...), 0x2000, 0)

			Expect(func() { decode.Decode(ctx) }).To(Panic())
		})
	})

	Describe("no-decode", func() {
		It("writes a paranoia PC and reports length 0 for an unrecognized word", func() {
			ctx, block := newCtx(words(0xFFFFFFFF), 0x3000, 0)
			res := decode.Decode(ctx)

			Expect(block.Stmts()).To(HaveLen(1))
			Expect(block.Stmts()[0].Kind).To(Equal(ir.KindPut))
			Expect(block.Stmts()[0].PutReg).To(Equal(ir.GuestReg{Name: "PC", Index: -1}))
			Expect(block.Stmts()[0].Value).To(Equal(ir.ConstU(0x3000, ir.TyI64)))

			Expect(res.Length).To(Equal(0))
			Expect(res.NextAction).To(Equal(decode.StopHere))
			Expect(res.StopReason).To(Equal(decode.ReasonNoDecode))
		})
	})

	Describe("entry validation", func() {
		It("rejects a non-LA64 architecture tag", func() {
			ctx, _ := newCtx(words(0x00100000), 0x1000, 0)
			ctx.GuestArch = guest.ArchUnknown

			Expect(func() { decode.Decode(ctx) }).To(Panic())
		})

		It("rejects a misaligned guest PC", func() {
			ctx, _ := newCtx(words(0x00100000), 0x1001, 0)

			Expect(func() { decode.Decode(ctx) }).To(Panic())
		})
	})
})
