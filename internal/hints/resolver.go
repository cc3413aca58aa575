package hints

import (
	"errors"
	"fmt"

	"github.com/roach88/deploykit/internal/schema"
	"github.com/roach88/deploykit/internal/typeexpr"
)

// Hints maps constructor parameter names to their resolved types.
type Hints map[string]schema.Type

// Resolver resolves type hints of classes in a registry.
//
// A Resolver holds no mutable state; it is safe for concurrent use as long
// as the registry is not modified.
type Resolver struct {
	Registry  *schema.Registry
	Auxiliary map[string]schema.Type
}

// NewResolver creates a resolver over reg with the default auxiliary table.
func NewResolver(reg *schema.Registry) *Resolver {
	return &Resolver{Registry: reg, Auxiliary: DefaultAuxiliary()}
}

// ConcreteClasses returns the concrete variants of root.
//
// A concrete class is its own only variant. An abstract class yields every
// non-abstract descendant, walking subclasses recursively in registration
// order.
func (r *Resolver) ConcreteClasses(root *schema.Class) []*schema.Class {
	if root == nil {
		return nil
	}
	if !root.Abstract {
		return []*schema.Class{root}
	}

	var out []*schema.Class
	visited := map[string]bool{root.Name: true}
	queue := r.Registry.Subclasses(root.Name)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if visited[c.Name] {
			continue
		}
		visited[c.Name] = true
		queue = append(queue, r.Registry.Subclasses(c.Name)...)
		if !c.Abstract {
			out = append(out, c)
		}
	}
	return out
}

// Resolve returns the merged hints of classes. When two classes declare
// the same parameter, the later class wins.
func (r *Resolver) Resolve(classes ...*schema.Class) (Hints, error) {
	hints, _, err := r.ResolveDetailed(classes...)
	return hints, err
}

// ResolveDetailed is like Resolve but also reports the parameters whose
// annotation named something that could not be bound.
func (r *Resolver) ResolveDetailed(classes ...*schema.Class) (Hints, []*UnresolvedNameError, error) {
	merged := make(Hints)
	var gaps []*UnresolvedNameError
	for _, c := range classes {
		hints, classGaps, err := r.resolveClass(c)
		if err != nil {
			return nil, nil, err
		}
		for name, t := range hints {
			merged[name] = t
		}
		gaps = append(gaps, classGaps...)
	}
	return merged, gaps, nil
}

func (r *Resolver) resolveClass(c *schema.Class) (Hints, []*UnresolvedNameError, error) {
	if hints, ok := r.direct(c); ok {
		return hints, nil, nil
	}

	env := r.environment(c)
	hints := make(Hints)
	var gaps []*UnresolvedNameError
	for _, p := range c.Params {
		switch {
		case p.Type != nil:
			if missing := r.missingRef(p.Type); missing != "" {
				gaps = append(gaps, &UnresolvedNameError{Class: c.Name, Param: p.Name, Name: missing})
				continue
			}
			hints[p.Name] = p.Type
		case p.Annotation != "":
			expr, err := typeexpr.Parse(p.Annotation)
			if err != nil {
				return nil, nil, &ResolveError{Class: c.Name, Param: p.Name, Err: err}
			}
			t, err := r.bind(expr, env)
			if err != nil {
				var unresolved *UnresolvedNameError
				if errors.As(err, &unresolved) {
					unresolved.Class, unresolved.Param = c.Name, p.Name
					gaps = append(gaps, unresolved)
					continue
				}
				return nil, nil, &ResolveError{Class: c.Name, Param: p.Name, Err: err}
			}
			hints[p.Name] = t
		}
	}
	return hints, gaps, nil
}

// direct returns the live hints of c when no parameter needs textual
// resolution and every class reference is registered.
func (r *Resolver) direct(c *schema.Class) (Hints, bool) {
	hints := make(Hints, len(c.Params))
	for _, p := range c.Params {
		if p.Deferred() {
			return nil, false
		}
		if p.Type == nil {
			continue
		}
		if r.missingRef(p.Type) != "" {
			return nil, false
		}
		hints[p.Name] = p.Type
	}
	return hints, true
}

// missingRef returns the first class reference in t that is not registered.
func (r *Resolver) missingRef(t schema.Type) string {
	for _, name := range schema.Refs(t) {
		if _, ok := r.Registry.Lookup(name); !ok {
			return name
		}
	}
	return ""
}

// environment assembles the names visible to c's deferred annotations.
func (r *Resolver) environment(c *schema.Class) map[string]schema.Type {
	env := builtins()
	for name, t := range r.Registry.Globals(c.Module) {
		env[name] = t
	}
	for name, t := range r.Auxiliary {
		env[name] = t
	}
	for name, t := range c.Locals {
		env[name] = t
	}
	return env
}

func (r *Resolver) bind(e typeexpr.Expr, env map[string]schema.Type) (schema.Type, error) {
	switch v := e.(type) {
	case typeexpr.Name:
		return r.lookup(v, env)
	case typeexpr.Literal:
		return schema.LiteralOf(v.Values...), nil
	case typeexpr.Union:
		alts := make([]schema.Type, 0, len(v.Alternatives))
		for _, a := range v.Alternatives {
			t, err := r.bind(a, env)
			if err != nil {
				return nil, err
			}
			alts = append(alts, t)
		}
		return schema.UnionOf(alts...), nil
	case typeexpr.Generic:
		args := make([]schema.Type, 0, len(v.Args))
		for _, a := range v.Args {
			t, err := r.bind(a, env)
			if err != nil {
				return nil, err
			}
			args = append(args, t)
		}
		if v.Kind.IsMapping() {
			return schema.DictOf(args[0], args[1]), nil
		}
		return schema.ListOf(args[0]), nil
	default:
		return nil, fmt.Errorf("unexpected expression %T", e)
	}
}

// lookup binds a plain or dotted name. Dotted names are tried whole first,
// then resolved through the class namespaces of their leading segments.
func (r *Resolver) lookup(n typeexpr.Name, env map[string]schema.Type) (schema.Type, error) {
	t, ok := env[n.Ident]
	if !ok {
		segments := n.Segments()
		t, ok = env[segments[0]]
		for _, seg := range segments[1:] {
			if !ok {
				break
			}
			t, ok = r.member(t, seg)
		}
	}
	if !ok {
		return nil, &UnresolvedNameError{Name: n.Ident}
	}
	if missing := r.missingRef(t); missing != "" {
		return nil, &UnresolvedNameError{Name: missing}
	}
	return t, nil
}

// member returns the named entry of a referenced class's namespace.
func (r *Resolver) member(t schema.Type, name string) (schema.Type, bool) {
	ref, ok := t.(schema.Ref)
	if !ok {
		return nil, false
	}
	c, ok := r.Registry.Lookup(ref.Name)
	if !ok {
		return nil, false
	}
	m, ok := c.Locals[name]
	return m, ok
}
