package hints

import "github.com/roach88/deploykit/internal/schema"

// Kind classifies one resolved alternative of a hint.
type Kind int

const (
	KindUnknown Kind = iota
	KindBase         // str, int, float, bool, enums and literals
	KindDict         // mapping containers
	KindList         // sequence containers
	KindClass        // registered resource classes
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindBase:
		return "base"
	case KindDict:
		return "dict"
	case KindList:
		return "list"
	case KindClass:
		return "class"
	default:
		return "unknown"
	}
}

// Type names reported for non-primitive alternatives.
const (
	TypeNameDict    = "dict"
	TypeNameList    = "list"
	TypeNameUnknown = "unknown"
)

// Descriptor is the classification of a single, non-null alternative.
type Descriptor struct {
	Type     schema.Type
	Kind     Kind
	TypeName string // accepted type name: a base name, "dict", "list" or "unknown"

	Key   schema.Type   // KindDict: key type, nil when untyped
	Value schema.Type   // KindDict: value type, nil when untyped
	Elem  schema.Type   // KindList: element type, nil when untyped
	Class *schema.Class // KindClass: the referenced class
}

// TypeHint is a classified hint: one Descriptor per union alternative,
// with None alternatives folded into Nullable. Ambiguity between
// alternatives is preserved, never merged.
type TypeHint struct {
	Raw          schema.Type
	Alternatives []Descriptor
	Nullable     bool
}

// Classify classifies t against the classes in reg.
func Classify(reg *schema.Registry, t schema.Type) TypeHint {
	hint := TypeHint{Raw: t}
	alts := []schema.Type{t}
	if u, ok := t.(schema.Union); ok {
		alts = u.Alternatives
	}
	for _, a := range alts {
		if _, ok := a.(schema.None); ok {
			hint.Nullable = true
			continue
		}
		hint.Alternatives = append(hint.Alternatives, describe(reg, a))
	}
	return hint
}

func describe(reg *schema.Registry, t schema.Type) Descriptor {
	d := Descriptor{Type: t, Kind: KindUnknown, TypeName: TypeNameUnknown}
	switch v := t.(type) {
	case schema.Base:
		d.Kind, d.TypeName = KindBase, v.Name
	case schema.Enum, schema.Literal:
		d.Kind, d.TypeName = KindBase, "str"
	case schema.Dict:
		d.Kind, d.TypeName = KindDict, TypeNameDict
		d.Key, d.Value = v.Key, v.Value
	case schema.List:
		d.Kind, d.TypeName = KindList, TypeNameList
		d.Elem = v.Elem
	case schema.Ref:
		if c, ok := reg.Lookup(v.Name); ok {
			d.Kind, d.TypeName = KindClass, TypeNameDict
			d.Class = c
		}
	}
	return d
}

// Types returns the accepted type names of the alternatives, deduplicated
// in alternative order. A hint with no non-null alternative is "unknown".
func (h TypeHint) Types() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range h.Alternatives {
		if seen[d.TypeName] {
			continue
		}
		seen[d.TypeName] = true
		out = append(out, d.TypeName)
	}
	if len(out) == 0 {
		return []string{TypeNameUnknown}
	}
	return out
}

// IsBaseType reports whether every alternative is primitive.
func (h TypeHint) IsBaseType() bool {
	if len(h.Alternatives) == 0 {
		return false
	}
	for _, d := range h.Alternatives {
		if d.Kind != KindBase {
			return false
		}
	}
	return true
}

// IsDictType reports whether any alternative is a mapping.
func (h TypeHint) IsDictType() bool { return h.has(KindDict) }

// IsListType reports whether any alternative is a sequence.
func (h TypeHint) IsListType() bool { return h.has(KindList) }

// IsClass reports whether any alternative is a registered class.
func (h TypeHint) IsClass() bool { return h.has(KindClass) }

func (h TypeHint) has(k Kind) bool {
	for _, d := range h.Alternatives {
		if d.Kind == k {
			return true
		}
	}
	return false
}
