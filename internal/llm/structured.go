package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator checks a decoded value after JSON extraction.
type Validator[T any] func(T) error

// ExtractJSON decodes the first JSON object or array in raw model output into
// T. Markdown fences, prose around the payload, comments, and trailing commas
// are tolerated. A non-nil validator runs on the decoded value.
func ExtractJSON[T any](raw string, validate Validator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON found in response", ErrInvalidOutput)
	}
	block = stripTrailingCommas(stripJSONComments(block))

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validate != nil {
		if err := validate(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// stripCodeFences drops ``` fence lines, keeping everything between them.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// scanner walks s tracking whether the cursor is inside a JSON string.
type scanner struct {
	inString bool
	escaped  bool
}

// step reports whether c is structural, i.e. outside any string literal.
func (sc *scanner) step(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return false
	case sc.inString && c == '\\':
		sc.escaped = true
		return false
	case c == '"':
		sc.inString = !sc.inString
		return false
	default:
		return !sc.inString
	}
}

// extractJSONBlock returns the first balanced object or array in s.
func extractJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	var sc scanner
	depth := 0
	for i := start; i < len(s); i++ {
		c := s[i]
		if !sc.step(c) {
			continue
		}
		switch c {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// stripJSONComments removes // and /* */ comments outside string values.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var sc scanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !sc.step(c) {
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '/' {
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		}
		if c == '/' && i+1 < len(s) && s[i+1] == '*' {
			end := strings.Index(s[i+2:], "*/")
			if end == -1 {
				break
			}
			i += end + 3
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// stripTrailingCommas drops a comma that is directly followed (ignoring
// whitespace) by a closing brace or bracket.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var sc scanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if sc.step(c) && c == ',' {
			if next := nextNonSpace(s, i+1); next == '}' || next == ']' {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
		default:
			return s[i]
		}
	}
	return 0
}
