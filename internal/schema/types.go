package schema

import "strings"

// Type is a sealed interface over resolved type handles.
// Only Base, Enum, Literal, None, Any, Ref, Dict, List and Union implement it.
type Type interface {
	schemaType()
	String() string
}

// Base is a primitive scalar: str, int, float or bool.
type Base struct {
	Name string
}

func (Base) schemaType() {}

func (b Base) String() string { return b.Name }

// Enum is a named enumeration of string values.
type Enum struct {
	Name   string
	Values []string
}

func (Enum) schemaType() {}

func (e Enum) String() string { return e.Name }

// Literal accepts one of a fixed set of values.
type Literal struct {
	Values []string
}

func (Literal) schemaType() {}

func (l Literal) String() string {
	return "Literal[" + strings.Join(l.Values, ", ") + "]"
}

// None is the null alternative of an optional type.
type None struct{}

func (None) schemaType() {}

func (None) String() string { return "None" }

// Any accepts anything and carries no structure.
type Any struct{}

func (Any) schemaType() {}

func (Any) String() string { return "Any" }

// Ref references a registered class by name. Names are resolved against a
// Registry when the type is classified, which keeps self-referential class
// graphs declarable.
type Ref struct {
	Name string
}

func (Ref) schemaType() {}

func (r Ref) String() string { return r.Name }

// Dict is a mapping container. A nil Value means an untyped dict.
type Dict struct {
	Key   Type
	Value Type
}

func (Dict) schemaType() {}

func (d Dict) String() string {
	if d.Value == nil {
		return "dict"
	}
	key := "str"
	if d.Key != nil {
		key = d.Key.String()
	}
	return "dict[" + key + ", " + d.Value.String() + "]"
}

// List is a sequence container. A nil Elem means an untyped list.
type List struct {
	Elem Type
}

func (List) schemaType() {}

func (l List) String() string {
	if l.Elem == nil {
		return "list"
	}
	return "list[" + l.Elem.String() + "]"
}

// Union holds alternatives; None among them makes the type nullable.
// Alternatives are never themselves unions.
type Union struct {
	Alternatives []Type
}

func (Union) schemaType() {}

func (u Union) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, a := range u.Alternatives {
		parts[i] = a.String()
	}
	return strings.Join(parts, " | ")
}

// Common type handles.
var (
	Str         Type = Base{Name: "str"}
	Int         Type = Base{Name: "int"}
	Float       Type = Base{Name: "float"}
	Bool        Type = Base{Name: "bool"}
	NoneType    Type = None{}
	AnyType     Type = Any{}
	UntypedDict Type = Dict{}
	UntypedList Type = List{}
)

// BaseNames lists the primitive type names in canonical order.
var BaseNames = []string{"str", "int", "float", "bool"}

// IsBaseName reports whether name is a primitive type name.
func IsBaseName(name string) bool {
	for _, n := range BaseNames {
		if n == name {
			return true
		}
	}
	return false
}

// RefTo returns a reference to the named class.
func RefTo(name string) Type { return Ref{Name: name} }

// DictOf returns a mapping type from key to value.
func DictOf(key, value Type) Type { return Dict{Key: key, Value: value} }

// ListOf returns a sequence type of elem.
func ListOf(elem Type) Type { return List{Elem: elem} }

// LiteralOf returns a literal type accepting the given values.
func LiteralOf(values ...string) Type { return Literal{Values: values} }

// EnumOf returns a named enumeration.
func EnumOf(name string, values ...string) Type { return Enum{Name: name, Values: values} }

// UnionOf returns the union of the alternatives, flattening nested unions.
// A single alternative is returned as is.
func UnionOf(alternatives ...Type) Type {
	flat := make([]Type, 0, len(alternatives))
	for _, a := range alternatives {
		if u, ok := a.(Union); ok {
			flat = append(flat, u.Alternatives...)
			continue
		}
		flat = append(flat, a)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return Union{Alternatives: flat}
}

// Optional returns t | None.
func Optional(t Type) Type { return UnionOf(t, NoneType) }

// Refs returns the names of every class referenced anywhere in t.
func Refs(t Type) []string {
	var out []string
	var walk func(Type)
	walk = func(t Type) {
		switch v := t.(type) {
		case Ref:
			out = append(out, v.Name)
		case Dict:
			if v.Key != nil {
				walk(v.Key)
			}
			if v.Value != nil {
				walk(v.Value)
			}
		case List:
			if v.Elem != nil {
				walk(v.Elem)
			}
		case Union:
			for _, a := range v.Alternatives {
				walk(a)
			}
		}
	}
	if t != nil {
		walk(t)
	}
	return out
}
