package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrBadPattern indicates a glob pattern that could not be compiled.
var ErrBadPattern = errors.New("bad exclusion pattern")

// compileGlob compiles an fnmatch-style glob into an anchored regular
// expression. Unlike filepath.Match, '*' crosses path separators, which is
// what makes suffix patterns like "*.log" hit "logs/app.log" when tested
// against a full relative path.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(translate(pattern))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrBadPattern, pattern, err)
	}
	return re, nil
}

// translate converts a glob into regexp source. Supported syntax:
// '*' matches any run of characters, '?' matches a single character,
// '[...]' is a character class ('[!...]' negates). An unterminated '[' is
// treated as a literal bracket.
func translate(pattern string) string {
	var b strings.Builder
	b.WriteString("^")

	for i := 0; i < len(pattern); {
		c := pattern[i]
		switch c {
		case '*':
			b.WriteString(".*")
			i++
		case '?':
			b.WriteString(".")
			i++
		case '[':
			j := i + 1
			if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
				j++
			}
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}
			for j < len(pattern) && pattern[j] != ']' {
				j++
			}
			if j >= len(pattern) {
				b.WriteString(`\[`)
				i++
				break
			}
			class := pattern[i+1 : j]
			class = strings.ReplaceAll(class, `\`, `\\`)
			b.WriteString("[")
			switch {
			case strings.HasPrefix(class, "!"):
				b.WriteString("^")
				b.WriteString(class[1:])
			case strings.HasPrefix(class, "^"):
				b.WriteString(`\^`)
				b.WriteString(class[1:])
			default:
				b.WriteString(class)
			}
			b.WriteString("]")
			i = j + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}

	b.WriteString("$")
	return b.String()
}
