package params

import "strings"

// Segment is one step of a parameter path: a mapping key, or the element
// marker of a list. All elements of a list share one schema, so the marker
// stands for index 0.
type Segment struct {
	Key  string
	Elem bool
}

// Key returns a mapping-key segment.
func Key(name string) Segment { return Segment{Key: name} }

// Elem is the list element segment.
var Elem = Segment{Elem: true}

func (s Segment) String() string {
	if s.Elem {
		return "0"
	}
	return s.Key
}

// Path addresses a parameter from the document root.
type Path []Segment

// PathOf builds a path of mapping keys.
func PathOf(keys ...string) Path {
	p := make(Path, len(keys))
	for i, k := range keys {
		p[i] = Key(k)
	}
	return p
}

// Child returns a copy of p extended with the key name.
func (p Path) Child(name string) Path {
	return p.append(Key(name))
}

// Element returns a copy of p extended with the list element marker.
func (p Path) Element() Path {
	return p.append(Elem)
}

func (p Path) append(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, s)
}

// Parent returns p without its last segment. The root's parent is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}

// Last returns the final segment of a non-empty path.
func (p Path) Last() Segment {
	return p[len(p)-1]
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Compare orders paths segment by segment; list elements sort before keys
// and a prefix sorts before its extensions.
func (p Path) Compare(o Path) int {
	for i := 0; i < len(p) && i < len(o); i++ {
		a, b := p[i], o[i]
		switch {
		case a == b:
			continue
		case a.Elem:
			return -1
		case b.Elem:
			return 1
		case a.Key < b.Key:
			return -1
		default:
			return 1
		}
	}
	switch {
	case len(p) < len(o):
		return -1
	case len(p) > len(o):
		return 1
	}
	return 0
}

// String renders the path with dots between keys and [0] for elements,
// e.g. "properties.type_name" or "tags[0]".
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.Elem {
			b.WriteString("[0]")
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// key is an unambiguous identity for map indexes.
func (p Path) key() string {
	var b strings.Builder
	for _, s := range p {
		if s.Elem {
			b.WriteByte(0)
		} else {
			b.WriteString(s.Key)
		}
		b.WriteByte(0x1f)
	}
	return b.String()
}
