package evo

import (
	"fmt"
	"strings"
)

// DefaultAlphabet is lowercase latin plus space.
const DefaultAlphabet Alphabet = "abcdefghijklmnopqrstuvwxyz "

// Alphabet is the ordered symbol set genomes are drawn from.
type Alphabet string

// Rand is the entropy needed by seeding, mutation and parent sampling.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

func (a Alphabet) Symbols() []rune {
	return []rune(string(a))
}

func (a Alphabet) Size() int {
	return len(a.Symbols())
}

func (a Alphabet) Contains(symbol rune) bool {
	return strings.ContainsRune(string(a), symbol)
}

// Validate rejects empty alphabets and repeated symbols; a repeat would skew
// the uniform draw.
func (a Alphabet) Validate() error {
	symbols := a.Symbols()
	if len(symbols) == 0 {
		return fmt.Errorf("alphabet is empty")
	}
	seen := make(map[rune]struct{}, len(symbols))
	for _, symbol := range symbols {
		if _, ok := seen[symbol]; ok {
			return fmt.Errorf("alphabet repeats symbol %q", symbol)
		}
		seen[symbol] = struct{}{}
	}
	return nil
}

// Covers reports the first symbol of s that is not in the alphabet.
func (a Alphabet) Covers(s string) (rune, bool) {
	for _, symbol := range s {
		if !a.Contains(symbol) {
			return symbol, false
		}
	}
	return 0, true
}
