package main

import (
	"math/rand"
)

// roundAlphabet is the Italian alphabet minus J, K, W, X and Y, which almost
// no common word starts with.
const roundAlphabet = "ABCDEFGHILMNOPQRSTUVZ"

// LetterPool draws one letter per round, never repeating a letter until the
// whole alphabet has been handed out.
type LetterPool struct {
	used map[string]bool
}

func newLetterPool() *LetterPool {
	return &LetterPool{
		used: make(map[string]bool),
	}
}

// Draw picks uniformly at random among the letters not yet used this session
// and marks the pick as used. If every letter has been used, the pool refills
// first; with more rounds than letters this means repeats across refills, but
// never a crash.
func (p *LetterPool) Draw() string {
	available := p.remaining()

	if len(available) == 0 {
		p.used = make(map[string]bool)
		available = p.remaining()
	}

	letter := available[rand.Intn(len(available))]
	p.used[letter] = true

	return letter
}

func (p *LetterPool) remaining() []string {
	available := make([]string, 0, len(roundAlphabet))
	for _, r := range roundAlphabet {
		if !p.used[string(r)] {
			available = append(available, string(r))
		}
	}
	return available
}

// Used returns the letters drawn so far, in alphabet order.
func (p *LetterPool) Used() []string {
	drawn := make([]string, 0, len(p.used))
	for _, r := range roundAlphabet {
		if p.used[string(r)] {
			drawn = append(drawn, string(r))
		}
	}
	return drawn
}

func (p *LetterPool) reset() {
	p.used = make(map[string]bool)
}
