package typeexpr

import (
	"fmt"
	"strings"
)

// optionalSuffix marks an annotation that also accepts None.
const optionalSuffix = "| None"

// UnsupportedAnnotationError reports annotation text outside the grammar.
// It signals that the parser needs extending, not that user data is wrong.
type UnsupportedAnnotationError struct {
	Annotation string
	Reason     string
}

func (e *UnsupportedAnnotationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported annotation %q", e.Annotation)
	}
	return fmt.Sprintf("unsupported annotation %q: %s", e.Annotation, e.Reason)
}

func unsupported(text, reason string) error {
	return &UnsupportedAnnotationError{Annotation: text, Reason: reason}
}

// containers maps generic spellings to their container kind.
// Optional and Literal are handled separately.
var containers = map[string]ContainerKind{
	"dict":            ContainerDict,
	"Mapping":         ContainerMapping,
	"list":            ContainerList,
	"tuple":           ContainerTuple,
	"Sequence":        ContainerSequence,
	"typing.Sequence": ContainerSequence,
	"SequenceNotStr":  ContainerSequence,
	"Collection":      ContainerCollection,
}

// Parse parses annotation text into an expression.
// The error, when non-nil, is always an *UnsupportedAnnotationError naming
// the innermost text that could not be parsed.
func Parse(annotation string) (Expr, error) {
	return parse(strings.TrimSpace(annotation))
}

// MustParse is like Parse but panics on error. Intended for declarations
// that are fixed at compile time.
func MustParse(annotation string) Expr {
	e, err := Parse(annotation)
	if err != nil {
		panic(err)
	}
	return e
}

func parse(s string) (Expr, error) {
	if s == "" {
		return nil, unsupported(s, "empty annotation")
	}

	if unquoted, ok := unquote(s); ok {
		return parse(strings.TrimSpace(unquoted))
	}

	if strings.HasSuffix(s, optionalSuffix) {
		rest := strings.TrimSpace(strings.TrimSuffix(s, optionalSuffix))
		if rest != "" && balanced(rest) {
			inner, err := parse(rest)
			if err != nil {
				return nil, err
			}
			return withNone(inner), nil
		}
	}

	if IsVerticalUnion(s) {
		parts := splitUnquoted(s, '|')
		alts := make([]Expr, 0, len(parts))
		for _, p := range parts {
			alt, err := parse(strings.TrimSpace(p))
			if err != nil {
				return nil, err
			}
			alts = append(alts, alt)
		}
		return Union{Alternatives: flatten(alts)}, nil
	}

	open := strings.IndexByte(s, '[')
	if open < 0 {
		if !isIdent(s) {
			return nil, unsupported(s, "not an identifier")
		}
		return Name{Ident: s}, nil
	}

	if !strings.HasSuffix(s, "]") || matchingClose(s, open) != len(s)-1 {
		return nil, unsupported(s, "trailing text after generic arguments")
	}
	head := strings.TrimSpace(s[:open])
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return nil, unsupported(s, "empty generic arguments")
	}

	switch head {
	case "Optional":
		arg, err := parse(inner)
		if err != nil {
			return nil, err
		}
		return withNone(arg), nil
	case "Literal":
		return parseLiteral(s, inner)
	}

	kind, ok := containers[head]
	if !ok {
		return nil, unsupported(s, fmt.Sprintf("unknown generic %q", head))
	}

	if kind.IsMapping() {
		key, value, ok := SplitFirstTopLevelComma(inner)
		if !ok {
			return nil, unsupported(s, "mapping needs key and value types")
		}
		k, err := parse(key)
		if err != nil {
			return nil, err
		}
		v, err := parse(value)
		if err != nil {
			return nil, err
		}
		return Generic{Kind: kind, Args: []Expr{k, v}}, nil
	}

	if _, _, multi := SplitFirstTopLevelComma(inner); multi {
		return nil, unsupported(s, fmt.Sprintf("%s takes a single type argument", head))
	}
	elem, err := parse(inner)
	if err != nil {
		return nil, err
	}
	return Generic{Kind: kind, Args: []Expr{elem}}, nil
}

// IsVerticalUnion reports whether s is a union whose '|'-separated segments
// each have balanced brackets. "list[int | str]" is not a vertical union,
// "list[int] | str" is.
func IsVerticalUnion(s string) bool {
	parts := splitUnquoted(s, '|')
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if !balanced(part) {
			return false
		}
	}
	return true
}

// splitUnquoted splits s at every sep outside a quoted run.
func splitUnquoted(s string, sep byte) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == sep:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// SplitFirstTopLevelComma splits s at the first comma not nested in
// brackets. The boolean is false when s holds no top-level comma.
func SplitFirstTopLevelComma(s string) (string, string, bool) {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == ',' && depth == 0:
			return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+1:]), true
		}
	}
	return s, "", false
}

func parseLiteral(full, inner string) (Expr, error) {
	var values []string
	rest := inner
	for {
		head, tail, more := SplitFirstTopLevelComma(rest)
		if head == "" {
			return nil, unsupported(full, "empty literal value")
		}
		if v, ok := unquote(head); ok {
			values = append(values, v)
		} else if isIdent(head) || isNumber(head) {
			values = append(values, head)
		} else {
			return nil, unsupported(full, fmt.Sprintf("invalid literal value %q", head))
		}
		if !more {
			break
		}
		rest = tail
	}
	return Literal{Values: values}, nil
}

func withNone(e Expr) Expr {
	return Union{Alternatives: flatten([]Expr{e, Name{Ident: "None"}})}
}

// flatten inlines nested unions so a union never directly contains another.
func flatten(alts []Expr) []Expr {
	out := make([]Expr, 0, len(alts))
	for _, a := range alts {
		if u, ok := a.(Union); ok {
			out = append(out, flatten(u.Alternatives)...)
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchingClose returns the index of the bracket closing the one at open,
// or -1 when it is never closed.
func matchingClose(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// balanced reports whether the brackets of s outside quoted runs pair up.
func balanced(s string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '[':
			depth++
		case c == ']':
			depth--
		}
	}
	return depth == 0
}

func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if strings.IndexByte(inner, q) >= 0 {
		return "", false
	}
	return inner, true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			digit := r >= '0' && r <= '9'
			if !letter && !(digit && i > 0) {
				return false
			}
		}
	}
	return true
}

func isNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
