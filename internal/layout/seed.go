package layout

import "math/rand"

// ChunkSeed derives the seed for one chunk of a run so that any chunk can be
// regenerated on its own from the run seed and its ordinal.
func ChunkSeed(runSeed int64, chunkIndex int) int64 {
	// splitmix64 finalizer over the combined input.
	z := uint64(runSeed) + uint64(chunkIndex+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}

// NewChunkSource returns the random source for one chunk of a run.
func NewChunkSource(runSeed int64, chunkIndex int) *rand.Rand {
	return rand.New(rand.NewSource(ChunkSeed(runSeed, chunkIndex)))
}
