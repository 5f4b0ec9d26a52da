// cmd/chunkbench/main.go
//
// chunkbench compares the wire-compatible Normalized FastCDC-64 strategy
// against the Rabin-based restic/chunker strategy on a given file, reporting
// chunk counts and size distribution for each. It exists to answer "would a
// different chunking strategy do better on this data" — its output never
// feeds back into the wire protocol, since only NormalizedFastCDC64's
// boundaries are peer-interoperable.
package main

import (
	"fmt"
	"os"

	"github.com/FairForge/chunkstore/internal/chunking"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: chunkbench <file>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "chunkbench: %v\n", err)
		os.Exit(1)
	}

	fastCDC := chunking.Split(data)
	report("NormalizedFastCDC64 (wire protocol)", fastCDC)

	restic, err := chunking.NewResticRabinStrategy(chunking.MinSize, chunking.MaxSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chunkbench: restic strategy: %v\n", err)
		os.Exit(1)
	}
	report("ResticRabinStrategy (bench only)", restic.Split(data))
}

func report(label string, chunks []chunking.Chunk) {
	fmt.Printf("%s\n", label)
	fmt.Printf("  chunks: %d\n", len(chunks))
	if len(chunks) == 0 {
		return
	}
	var total, min, max int
	min = chunks[0].Length
	for _, c := range chunks {
		total += c.Length
		if c.Length < min {
			min = c.Length
		}
		if c.Length > max {
			max = c.Length
		}
	}
	fmt.Printf("  avg size: %d bytes\n", total/len(chunks))
	fmt.Printf("  min size: %d bytes\n", min)
	fmt.Printf("  max size: %d bytes\n", max)
}
