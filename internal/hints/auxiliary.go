package hints

import "github.com/roach88/deploykit/internal/schema"

// DefaultAuxiliary returns the table of auxiliary names injected into every
// fallback environment. The identifiers are imported locally by filter
// classes and are therefore missing from their module namespace; the array
// aliases stand for typed numeric arrays accepted as plain YAML lists.
func DefaultAuxiliary() map[string]schema.Type {
	return map[string]schema.Type{
		"ViewId":                 schema.RefTo("ViewId"),
		"ContainerId":            schema.RefTo("ContainerId"),
		"NumpyDatetime64NSArray": schema.ListOf(schema.Int),
		"NumpyUInt32Array":       schema.ListOf(schema.Int),
		"NumpyInt64Array":        schema.ListOf(schema.Int),
		"NumpyFloat64Array":      schema.ListOf(schema.Float),
		"NumpyObjArray":          schema.UntypedList,
	}
}

// builtins are the names every annotation can use without importing them.
func builtins() map[string]schema.Type {
	return map[string]schema.Type{
		"str":        schema.Str,
		"int":        schema.Int,
		"float":      schema.Float,
		"bool":       schema.Bool,
		"None":       schema.NoneType,
		"NoneType":   schema.NoneType,
		"Any":        schema.AnyType,
		"typing.Any": schema.AnyType,
		"object":     schema.AnyType,
		"dict":       schema.UntypedDict,
		"list":       schema.UntypedList,
		"tuple":      schema.UntypedList,
	}
}
