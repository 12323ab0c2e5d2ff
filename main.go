// Package main provides a pointer at the real entry point.
// la64ir decodes LoongArch64 guest instructions into a side-effect-
// free IR for a hosting instrumentation framework.
//
// For the full CLI, use: go run ./cmd/ladecode
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("la64ir - LoongArch64 guest-to-IR decoder")
	fmt.Println("")
	fmt.Println("Usage: ladecode [options] <hex-bytes>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -pc             guest address of the instruction")
	fmt.Println("  -caps           comma-separated capability flags: fp,ual,lam,cpucfg")
	fmt.Println("  -fallback-llsc  use the compare-and-swap LL/SC fallback")
	fmt.Println("  -sigill-diag    print a diagnostic when decode fails")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/ladecode' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/ladecode' instead.")
	}
}
