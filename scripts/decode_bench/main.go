// Measures allocation and throughput cost of decode.Decode over a
// fixed instruction mix.
package main

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/la64ir/decode"
	"github.com/sarchlab/la64ir/guest"
	"github.com/sarchlab/la64ir/ir"
)

func main() {
	words := []uint32{
		0x00100000, // add.w $zero, $zero, $zero
		0x14000040, // lu12i.w $zero, 2
		0x03400801, // andi $r1, $zero, 2
		0x24000020, // ld.w $zero, $r1, 0
	}
	streams := make([][]byte, len(words))
	for i, w := range words {
		buf := make([]byte, 20)
		binary.LittleEndian.PutUint32(buf, w)
		streams[i] = buf
	}

	block := ir.NewBlock()
	decodeOne := func(bytes []byte, pc uint64) decode.Result {
		block.Reset()
		ctx := &decode.Context{
			Builder:    block,
			GuestBytes: bytes,
			GuestIP:    pc,
			GuestArch:  guest.ArchLA64,
			Caps:       guest.CapUAL,
		}
		return decode.Decode(ctx)
	}

	// Warm up.
	for i := 0; i < 1000; i++ {
		decodeOne(streams[0], 0x1000)
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	for i := 0; i < iterations; i++ {
		decodeOne(streams[0], 0x1000)
		decodeOne(streams[1], 0x1004)
		decodeOne(streams[2], 0x1008)
		decodeOne(streams[3], 0x100C)
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)

	totalDecodes := iterations * len(streams)
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decode Benchmark Results:\n")
	fmt.Printf("=========================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))
	fmt.Printf("Bytes per decode: %.1f\n", float64(allocatedBytes)/float64(totalDecodes))
}
