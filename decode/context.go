// Package decode implements the core of the LA64 guest-to-IR
// translator: bit-field extraction, guest-register helpers, and the
// per-opcode semantic emitters reached through a hierarchical dispatch
// cascade. Grounded throughout on an insts (decode) / emu (semantics)
// split, generalized from "decode into a struct, then execute the
// struct" to "decode and emit IR in one pass" — this package never
// executes a guest instruction itself.
package decode

import (
	"encoding/binary"

	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

// NextAction is the caller-visible half of Result: whether the basic
// block translator should keep decoding after this instruction.
type NextAction uint8

const (
	// Continue means the caller should decode the next instruction at
	// entryPC + Length.
	Continue NextAction = iota
	// StopHere means this instruction ended the block; StopReason
	// explains why.
	StopHere
)

// StopReason enumerates why a block stopped.
type StopReason uint8

const (
	ReasonNone StopReason = iota
	ReasonBoring
	ReasonSyscall
	ReasonFPEIntOvf
	ReasonFPEIntDiv
	ReasonTrap
	ReasonClientReq
	ReasonNoRedir
	ReasonInvalICache
	ReasonNoDecode
	ReasonSigBus
	ReasonSigSys
	ReasonSigIll
)

// Result is the four-field translation result a Decode call produces.
type Result struct {
	Length     int
	NextAction NextAction
	StopReason StopReason
	Hint       uint64
}

// Context bundles the per-invocation inputs and mutable outputs a
// Decode call needs. A Context is created fresh for exactly one Decode
// call and discarded when it returns; no field outlives the call except
// the IR appended to Builder, which the caller owns.
type Context struct {
	// Builder is the IR-builder emitters append statements to.
	Builder ir.Builder

	// GuestBytes is the raw byte stream starting at GuestIP. It must
	// contain at least 4 bytes (20 for a "special" preamble); the
	// caller is responsible for supplying enough lookahead.
	GuestBytes []byte

	// GuestIP is the guest address of the instruction being decoded.
	GuestIP uint64

	// GuestArch must be guest.ArchLA64; Decode treats any other value
	// as fatal.
	GuestArch guest.Arch

	// Caps is the target capability set.
	Caps guest.Capabilities

	// ABI carries ABI-level decode choices.
	ABI guest.ABI

	// HostEndness is the host's byte order. The instruction word
	// itself is always read little-endian regardless of this value;
	// HostEndness exists only so helper calls that are sensitive to
	// host layout can be recorded faithfully.
	HostEndness binary.ByteOrder

	// SigillDiag requests a formatted diagnostic (via Trace) when
	// decode fails.
	SigillDiag bool

	// Helpers is the external-helper collaborator set.
	Helpers guest.Helpers

	// Trace, when non-nil, receives the no-decode diagnostic requested
	// by SigillDiag. Instructions that decode successfully produce no
	// Trace message.
	Trace guest.Tracer

	// res accumulates the in-progress translation result across the
	// dispatch cascade; emitters mutate it through the helper methods
	// below rather than touching the struct directly, so a failed
	// decode attempt can be asserted to have left it untouched.
	res Result
}

// Word reads the 4-byte instruction word at GuestBytes[0:4],
// little-endian, regardless of HostEndness.
func (c *Context) Word() uint32 {
	return binary.LittleEndian.Uint32(c.GuestBytes[0:4])
}

// WordAt reads a little-endian 32-bit word at the given byte offset
// within GuestBytes, used by the "special" preamble scanner
// to look past the current instruction.
func (c *Context) WordAt(byteOffset int) uint32 {
	return binary.LittleEndian.Uint32(c.GuestBytes[byteOffset : byteOffset+4])
}

// setStop records a stop-here result with the given reason and
// advances no further; callers pass the length actually consumed.
func (c *Context) setStop(length int, reason StopReason) {
	c.res.Length = length
	c.res.NextAction = StopHere
	c.res.StopReason = reason
}

// setContinue records a fall-through result of the given length
// (always 4 for ordinary instructions, 20 only for the "continue"
// marker of the special preamble family).
func (c *Context) setContinue(length int) {
	c.res.Length = length
	c.res.NextAction = Continue
	c.res.StopReason = ReasonNone
}

// Result returns the accumulated translation result.
func (c *Context) Result() Result { return c.res }

// fresh reports whether the result has not yet been mutated from its
// zero value. Dispatchers use it after an emitter that may have stopped
// the block (for example on a missing capability) to decide whether to
// record the ordinary fall-through result.
func (c *Context) fresh() bool {
	return c.res == Result{}
}
