// image_loader.go - Program image parser
//
// Format per spec.md §6: a UTF-8 text file of whitespace-separated 32-bit
// hex words, each optionally prefixed 0x/0X and optionally containing
// underscores (ignored). Grounded on original_source/src/main.rs's
// parse_hex_file, expressed idiomatically (returned error instead of
// unwrap()).

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadImage reads a hex-word program image from path and returns the
// decoded 32-bit words in file order.
func LoadImage(path string) ([]uint32, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}

	tokens := strings.Fields(string(contents))
	words := make([]uint32, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimPrefix(tok, "0x")
		tok = strings.TrimPrefix(tok, "0X")
		tok = strings.ReplaceAll(tok, "_", "")
		value, err := strconv.ParseUint(tok, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing program image token %q: %w", tok, err)
		}
		words = append(words, uint32(value))
	}
	return words, nil
}
