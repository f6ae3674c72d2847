// Package wordlist loads word lists from files.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

var defaultWords = []string{
	"example", "spelling", "practice", "education", "learning",
	"knowledge", "vocabulary", "pronunciation", "dictionary", "language",
	"assessment", "feedback", "evaluation", "test", "quiz",
	"homework", "project", "report", "presentation", "discussion",
}

// Default returns the built-in practice list.
func Default() []string {
	return append([]string(nil), defaultWords...)
}

// LoadWords reads one word per line from the provided file path. Blank lines
// and lines starting with # are skipped.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

// Filter keeps the words accepted by keep, comparing in lower case.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(strings.ToLower(w)) {
			out = append(out, w)
		}
	}
	return out
}
