package cuedef

import (
	"github.com/roach88/deploykit/internal/schema"
	"github.com/roach88/deploykit/internal/typeexpr"
)

// toType converts a parsed import annotation into a live type. Primitive
// names become base types, None and Any keep their meaning and every
// other name is a class reference.
func toType(e typeexpr.Expr) schema.Type {
	switch v := e.(type) {
	case typeexpr.Name:
		switch {
		case schema.IsBaseName(v.Ident):
			return schema.Base{Name: v.Ident}
		case v.Ident == "None":
			return schema.NoneType
		case v.Ident == "Any":
			return schema.AnyType
		}
		return schema.RefTo(v.Ident)
	case typeexpr.Literal:
		return schema.LiteralOf(v.Values...)
	case typeexpr.Union:
		alts := make([]schema.Type, 0, len(v.Alternatives))
		for _, a := range v.Alternatives {
			alts = append(alts, toType(a))
		}
		return schema.UnionOf(alts...)
	case typeexpr.Generic:
		if v.Kind.IsMapping() {
			return schema.DictOf(toType(v.Args[0]), toType(v.Args[1]))
		}
		return schema.ListOf(toType(v.Args[0]))
	}
	return schema.AnyType
}
