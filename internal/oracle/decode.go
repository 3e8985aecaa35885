package oracle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decode interprets free-form oracle text as a value of type T. It tries, in
// order: a strict parse of the fence-stripped text, then a parse of each
// balanced-brace object candidate found in the text. Each failed attempt
// discards its partially-populated value.
func decode[T any](raw string) (*T, error) {
	text := stripFences(raw)

	var v T
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		return &v, nil
	}

	for _, candidate := range findJSONCandidates(text) {
		var c T
		if err := json.Unmarshal([]byte(candidate), &c); err == nil {
			return &c, nil
		}
	}

	return nil, fmt.Errorf("no parseable JSON object in oracle output (%d bytes)", len(raw))
}

// stripFences removes markdown code-fence markers from the oracle's text.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// findJSONCandidates scans the input for top-level {...} object candidates,
// tracking brace depth while skipping string literals and escape sequences.
// Iterating bytes is safe here: the delimiters are ASCII, and UTF-8
// guarantees ASCII bytes never occur inside a multi-byte sequence.
func findJSONCandidates(s string) []string {
	var candidates []string
	var depth int
	start := -1
	var inString, escape bool

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}

		if inString {
			if b == '\\' {
				escape = true
			} else if b == '"' {
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start != -1 {
					candidates = append(candidates, s[start:i+1])
					start = -1
				}
			}
		}
	}

	return candidates
}
