package cards

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// WordList is a set of words that must not appear on a card.
type WordList struct {
	words map[string]struct{}
}

// NewWordList builds a list from the given words.
func NewWordList(words ...string) *WordList {
	wl := &WordList{words: map[string]struct{}{}}
	for _, w := range words {
		w = normalizeWord(strings.TrimSpace(w))
		if w != "" {
			wl.words[w] = struct{}{}
		}
	}
	return wl
}

// LoadWordList reads blocked words from a CSV file, one per row in the
// first column. Empty rows and rows starting with # are skipped.
func LoadWordList(path string) (*WordList, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	wl, err := readWordList(fp)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return wl, nil
}

func readWordList(r io.Reader) (*WordList, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.Comment = '#'
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var words []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		words = append(words, row[0])
	}
	return NewWordList(words...), nil
}

// Len returns the number of distinct words.
func (wl *WordList) Len() int {
	if wl == nil {
		return 0
	}
	return len(wl.words)
}

// Contains reports whether text holds a blocked word. Matching is
// case-insensitive, per word, and sees through common character
// substitutions ("h3ll0" matches "hello").
func (wl *WordList) Contains(text string) bool {
	if wl.Len() == 0 || strings.TrimSpace(text) == "" {
		return false
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || (unicode.IsPunct(r) && !isLeet(r))
	})
	for _, f := range fields {
		if _, ok := wl.words[normalizeWord(f)]; ok {
			return true
		}
	}
	return false
}

var leet = map[rune]rune{
	'$': 's', '@': 'a', '0': 'o', '1': 'i', '3': 'e', '4': 'a', '5': 's', '7': 't',
}

func isLeet(r rune) bool {
	_, ok := leet[r]
	return ok
}

func normalizeWord(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if m, ok := leet[r]; ok {
			r = m
		}
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
