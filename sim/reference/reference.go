// Package reference parses page reference strings into sim.PageID sequences.
package reference

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/inference-sim/pagesim/sim"
)

// Parse splits s on whitespace and commas and parses every token as an integer page.
// An input with no tokens is an error.
func Parse(s string) ([]sim.PageID, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no page references given", sim.ErrInvalidInput)
	}
	refs := make([]sim.PageID, 0, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d (%q) is not an integer page", sim.ErrInvalidInput, i+1, tok)
		}
		refs = append(refs, sim.PageID(n))
	}
	return refs, nil
}

// Read parses references from r. Lines starting with '#' are comments.
func Read(r io.Reader) ([]sim.PageID, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		b.WriteString(line)
		b.WriteByte(' ')
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading references: %w", err)
	}
	return Parse(b.String())
}

// Load reads a reference file from path.
func Load(path string) ([]sim.PageID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening reference file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}

// Format renders refs space-separated, the inverse of Parse.
func Format(refs []sim.PageID) string {
	parts := make([]string, len(refs))
	for i, p := range refs {
		parts[i] = strconv.Itoa(int(p))
	}
	return strings.Join(parts, " ")
}
