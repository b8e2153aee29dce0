package evo

import (
	"fmt"
	"strings"
)

// SeedGenome draws length symbols uniformly from the alphabet.
func SeedGenome(rng Rand, alphabet Alphabet, length int) string {
	symbols := alphabet.Symbols()
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteRune(pick(rng, symbols))
	}
	return b.String()
}

// Score counts the positions where genome agrees with target.
func Score(genome, target string) (int, error) {
	g := []rune(genome)
	t := []rune(target)
	if len(g) != len(t) {
		return 0, fmt.Errorf("%w: genome=%d target=%d", ErrLengthMismatch, len(g), len(t))
	}
	matches := 0
	for i := range g {
		if g[i] == t[i] {
			matches++
		}
	}
	return matches, nil
}

// Breed builds a child symbol by symbol. One uniform sample per position
// splits [0,1) into three zones: the top mutationProbability mutates, the
// remainder is halved between parentB (upper) and parentA (lower).
func Breed(rng Rand, parentA, parentB string, mutationProbability float64, alphabet Alphabet) (string, error) {
	if rng == nil {
		return "", fmt.Errorf("random source is required")
	}
	if mutationProbability < 0 || mutationProbability > 1 {
		return "", fmt.Errorf("mutation probability must be in [0, 1], got %v", mutationProbability)
	}
	if err := alphabet.Validate(); err != nil {
		return "", err
	}
	a := []rune(parentA)
	b := []rune(parentB)
	if len(a) != len(b) {
		return "", fmt.Errorf("%w: parents have lengths %d and %d", ErrLengthMismatch, len(a), len(b))
	}

	symbols := alphabet.Symbols()
	inherit := 1 - mutationProbability
	split := inherit / 2

	child := make([]rune, len(a))
	for i := range a {
		sample := rng.Float64()
		switch {
		case mutationProbability > 0 && sample >= inherit:
			child[i] = pick(rng, symbols)
		case sample >= split:
			child[i] = b[i]
		default:
			child[i] = a[i]
		}
	}
	return string(child), nil
}

func pick(rng Rand, symbols []rune) rune {
	return symbols[rng.Intn(len(symbols))]
}
