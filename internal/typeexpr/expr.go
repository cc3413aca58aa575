package typeexpr

import "strings"

// Expr is a sealed interface over parsed annotation expressions.
// Only Name, Generic, Union and Literal implement it.
type Expr interface {
	expr()
	String() string
}

// Name is a plain or dotted identifier such as "str" or "DataSetsAcl.Action".
type Name struct {
	Ident string
}

func (Name) expr() {}

func (n Name) String() string { return n.Ident }

// Segments splits a dotted name into its parts.
func (n Name) Segments() []string { return strings.Split(n.Ident, ".") }

// IsNone reports whether the name is the None singleton.
func (n Name) IsNone() bool { return n.Ident == "None" }

// ContainerKind identifies the generic container a Generic expression names.
type ContainerKind int

const (
	ContainerDict ContainerKind = iota
	ContainerMapping
	ContainerList
	ContainerTuple
	ContainerSequence
	ContainerCollection
)

// IsMapping reports whether the container is keyed (dict or Mapping).
func (k ContainerKind) IsMapping() bool {
	return k == ContainerDict || k == ContainerMapping
}

// String returns the canonical spelling of the container.
func (k ContainerKind) String() string {
	switch k {
	case ContainerDict:
		return "dict"
	case ContainerMapping:
		return "Mapping"
	case ContainerList:
		return "list"
	case ContainerTuple:
		return "tuple"
	case ContainerSequence:
		return "Sequence"
	case ContainerCollection:
		return "Collection"
	default:
		return "unknown"
	}
}

// Generic is a parameterized container. Mapping kinds carry exactly two
// arguments (key, value); sequence kinds carry one.
type Generic struct {
	Kind ContainerKind
	Args []Expr
}

func (Generic) expr() {}

func (g Generic) String() string {
	parts := make([]string, len(g.Args))
	for i, a := range g.Args {
		parts[i] = a.String()
	}
	return g.Kind.String() + "[" + strings.Join(parts, ", ") + "]"
}

// Union holds the alternatives of a vertical union or an Optional.
// A None alternative is represented as Name{"None"}.
type Union struct {
	Alternatives []Expr
}

func (Union) expr() {}

func (u Union) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, a := range u.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

// Literal is a Literal[...] annotation. Values keep their source spelling
// with surrounding quotes removed.
type Literal struct {
	Values []string
}

func (Literal) expr() {}

func (l Literal) String() string {
	parts := make([]string, len(l.Values))
	for i, v := range l.Values {
		parts[i] = "'" + v + "'"
	}
	return "Literal[" + strings.Join(parts, ", ") + "]"
}
