package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/siherrmann/coref/helper"
)

// WordList maps normalized variants to their canonical form.
// Each line of the source holds the canonical form followed by its variants,
// separated by tabs or '|'. Empty lines and lines starting with '#' are ignored.
type WordList struct {
	canonical map[string]string
	variants  map[string][]string
}

// NewWordList creates an empty word list
func NewWordList() *WordList {
	return &WordList{
		canonical: make(map[string]string),
		variants:  make(map[string][]string),
	}
}

// LoadWordList reads a word list file
func LoadWordList(path string) (*WordList, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, helper.NewError("open word list", err)
	}
	defer file.Close()

	list, err := ParseWordList(file)
	if err != nil {
		return nil, helper.NewError(fmt.Sprintf("parse word list %s", path), err)
	}
	return list, nil
}

// ParseWordList reads a word list from r
func ParseWordList(r io.Reader) (*WordList, error) {
	list := NewWordList()

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool { return r == '\t' || r == '|' })
		if len(fields) == 0 {
			continue
		}
		canonical := Normalize(fields[0])
		if canonical == "" {
			return nil, fmt.Errorf("line %d: empty canonical form", line)
		}
		list.Add(canonical, fields[1:]...)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// Add registers variants of canonical; the canonical form maps to itself.
// A variant keeps the first canonical form it was registered with.
func (w *WordList) Add(canonical string, variants ...string) {
	canonical = Normalize(canonical)
	if _, ok := w.canonical[canonical]; !ok {
		w.canonical[canonical] = canonical
	}
	for _, variant := range variants {
		v := Normalize(variant)
		if v == "" {
			continue
		}
		if _, ok := w.canonical[v]; ok {
			continue
		}
		w.canonical[v] = canonical
		w.variants[canonical] = append(w.variants[canonical], v)
	}
}

// Canonical returns the canonical form of s
func (w *WordList) Canonical(s string) (string, bool) {
	if w == nil {
		return "", false
	}
	c, ok := w.canonical[Normalize(s)]
	return c, ok
}

// Variants returns the registered variants of a canonical form
func (w *WordList) Variants(canonical string) []string {
	if w == nil {
		return nil
	}
	return w.variants[Normalize(canonical)]
}

// Len returns the number of known forms
func (w *WordList) Len() int {
	if w == nil {
		return 0
	}
	return len(w.canonical)
}
