package evo

import "fmt"

// SampleParents picks two distinct indices uniformly from [0, keep).
func SampleParents(rng Rand, keep int) (int, int, error) {
	if rng == nil {
		return 0, 0, fmt.Errorf("random source is required")
	}
	if keep < 2 {
		return 0, 0, fmt.Errorf("%w: need at least 2 survivors to pick parents, got %d", ErrInvalidSampleSize, keep)
	}
	first := rng.Intn(keep)
	second := rng.Intn(keep - 1)
	if second >= first {
		second++
	}
	return first, second, nil
}
