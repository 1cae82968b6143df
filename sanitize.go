package main

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	nameMinLen   = 2
	nameMaxLen   = 20
	answerMaxLen = 50
)

// printable normalizes to NFC and drops control and other non-printable runes.
var printable = transform.Chain(norm.NFC, runes.Remove(runes.In(unicode.C)))

// stripMarkup removes characters with markup significance, so stored values
// are safe to echo into any client.
func stripMarkup(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '&', '"', '\'', '`':
			return -1
		}
		return r
	}, s)
}

// sanitizeName validates and cleans a display name: printable runes only,
// markup stripped, trimmed, and between 2 and 20 runes long.
func sanitizeName(s string) (string, error) {
	s, _, _ = transform.String(printable, s)
	s = strings.TrimSpace(stripMarkup(s))

	if n := utf8.RuneCountInString(s); n < nameMinLen || n > nameMaxLen {
		return "", ErrInvalidInput
	}

	return s, nil
}

// sanitizeAnswer cleans a single answer: printable runes only, markup
// stripped, trimmed, capped at 50 runes. Unlike names, an empty answer is
// fine; it just scores nothing.
func sanitizeAnswer(s string) string {
	s, _, _ = transform.String(printable, s)
	s = strings.TrimSpace(stripMarkup(s))

	if r := []rune(s); len(r) > answerMaxLen {
		s = strings.TrimSpace(string(r[:answerMaxLen]))
	}

	return s
}
