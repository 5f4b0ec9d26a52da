package chunking

import (
	"bytes"
	"fmt"
	"io"

	resticchunker "github.com/restic/chunker"
)

// ResticRabinStrategy is a Rabin-fingerprint chunker built on restic/chunker,
// offered as a comparison point for NormalizedFastCDC64's Gear-hash approach.
// It is NOT wire-compatible: two peers must never assume interchangeable
// boundaries between this strategy and the default one. cmd/chunkbench is
// the only intended caller.
type ResticRabinStrategy struct {
	minSize, maxSize int
	pol              resticchunker.Pol
}

// NewResticRabinStrategy builds a strategy around a random polynomial chosen
// once at construction, so repeated Split calls on the same strategy over the
// same bytes give the same chunks; two strategies built separately generally
// do not.
func NewResticRabinStrategy(minSize, maxSize int) (*ResticRabinStrategy, error) {
	if minSize <= 0 || maxSize <= 0 || minSize > maxSize {
		return nil, fmt.Errorf("chunking: invalid restic strategy bounds [%d,%d]", minSize, maxSize)
	}
	pol, err := resticchunker.RandomPolynomial()
	if err != nil {
		return nil, fmt.Errorf("chunking: generate polynomial: %w", err)
	}
	return &ResticRabinStrategy{minSize: minSize, maxSize: maxSize, pol: pol}, nil
}

// Split implements Strategy.
func (s *ResticRabinStrategy) Split(buf []byte) []Chunk {
	chunker := resticchunker.NewWithBoundaries(bytes.NewReader(buf), s.pol, uint(s.minSize), uint(s.maxSize))
	scratch := make([]byte, s.maxSize)

	var chunks []Chunk
	offset := 0
	for {
		c, err := chunker.Next(scratch)
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}
		chunks = append(chunks, Chunk{
			Offset: offset,
			Length: int(c.Length),
			FP:     c.Cut,
		})
		offset += int(c.Length)
	}
	return chunks
}
