package random

import "testing"

func TestNewSeedProducesDistinctValues(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 32; i++ {
		seed, err := NewSeed()
		if err != nil {
			t.Fatalf("new seed: %v", err)
		}
		if seen[seed] {
			t.Fatalf("seed %d repeated", seed)
		}
		seen[seed] = true
	}
}
