package params

import (
	"context"
	"fmt"
	"maps"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/deploykit/internal/hints"
	"github.com/roach88/deploykit/internal/schema"
)

// Builder derives SpecSets from classes registered in a registry.
//
// A Builder holds no mutable state and is safe for concurrent use once the
// registry is populated.
type Builder struct {
	registry *schema.Registry
	resolver *hints.Resolver
}

// NewBuilder creates a builder over reg using the default auxiliary table.
func NewBuilder(reg *schema.Registry) *Builder {
	return NewBuilderWithResolver(hints.NewResolver(reg))
}

// NewBuilderWithResolver creates a builder around an existing resolver.
func NewBuilderWithResolver(r *hints.Resolver) *Builder {
	return &Builder{registry: r.Registry, resolver: r}
}

// Registry returns the registry the builder reads from.
func (b *Builder) Registry() *schema.Registry { return b.registry }

// seenSet holds the class names on the current recursion branch.
type seenSet map[string]struct{}

func (s seenSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// Build returns the parameter specs of cls.
//
// A parameter without a recoverable hint clears Complete and is skipped.
// An annotation outside the supported grammar aborts the build. A nil class
// or one without parameters yields an empty, complete set.
func (b *Builder) Build(cls *schema.Class) (*SpecSet, error) {
	if cls == nil {
		return NewSpecSet(), nil
	}
	set, err := b.build(cls, nil, make(seenSet))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", cls.Name, err)
	}
	return set, nil
}

// BuildNamed looks up the named class and builds it.
func (b *Builder) BuildNamed(name string) (*SpecSet, error) {
	cls, ok := b.registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("build %s: class is not registered", name)
	}
	return b.Build(cls)
}

func (b *Builder) build(cls *schema.Class, path Path, seen seenSet) (*SpecSet, error) {
	set := NewSpecSet()
	classes := b.resolver.ConcreteClasses(cls)
	seen[cls.Name] = struct{}{}
	for _, c := range classes {
		seen[c.Name] = struct{}{}
	}

	hintsByName, _, err := b.resolver.ResolveDetailed(classes...)
	if err != nil {
		return nil, err
	}

	for _, p := range mergeParams(classes) {
		if p.Kind != schema.Positional {
			continue
		}
		t, ok := hintsByName[p.Name]
		if !ok {
			set.Complete = false
			continue
		}

		hint := hints.Classify(b.registry, t)
		required := !p.HasDefault
		nullable := hint.Nullable || !required
		here := path.Child(p.Name)
		set.Add(NewSpec(here, hint.Types(), required, nullable))
		if hint.IsBaseType() {
			continue
		}
		if err := b.expand(set, here, hint.Alternatives, required, nullable, seen); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// expand walks the non-primitive alternatives of the value at path.
func (b *Builder) expand(set *SpecSet, path Path, alts []hints.Descriptor, required, nullable bool, seen seenSet) error {
	for _, d := range alts {
		switch d.Kind {
		case hints.KindDict:
			set.MarkMapping(path)
			if d.Value == nil {
				continue
			}
			// Keys are free-form; only class-valued entries have structure.
			for _, vd := range hints.Classify(b.registry, d.Value).Alternatives {
				if vd.Kind != hints.KindClass {
					continue
				}
				if err := b.descend(set, path, vd.Class, required, nullable, seen); err != nil {
					return err
				}
			}

		case hints.KindList:
			if d.Elem == nil {
				continue
			}
			elemPath := path.Element()
			elem := hints.Classify(b.registry, d.Elem)
			if elem.IsBaseType() || len(elem.Alternatives) == 0 {
				set.Add(NewSpec(elemPath, elem.Types(), required, nullable))
				continue
			}
			for _, ed := range elem.Alternatives {
				switch ed.Kind {
				case hints.KindClass:
					if err := b.descend(set, elemPath, ed.Class, required, nullable, seen); err != nil {
						return err
					}
				case hints.KindDict, hints.KindList:
					set.Add(NewSpec(elemPath, []string{ed.TypeName}, required, nullable))
					if err := b.expand(set, elemPath, []hints.Descriptor{ed}, required, nullable, seen); err != nil {
						return err
					}
				default:
					set.Add(NewSpec(elemPath, []string{ed.TypeName}, required, nullable))
				}
			}

		case hints.KindClass:
			if err := b.descend(set, path, d.Class, required, nullable, seen); err != nil {
				return err
			}
		}
	}
	return nil
}

// descend expands cls at path, or records a dict placeholder when cls is
// already on the current branch.
func (b *Builder) descend(set *SpecSet, path Path, cls *schema.Class, required, nullable bool, seen seenSet) error {
	if seen.has(cls.Name) {
		set.Add(NewSpec(path, []string{TypeDict}, required, nullable))
		return nil
	}
	child, err := b.build(cls, path, maps.Clone(seen))
	if err != nil {
		return err
	}
	set.Update(child)
	return nil
}

// mergeParams unions the constructor parameters of classes. Order follows
// first declaration; a later declaration replaces the metadata.
func mergeParams(classes []*schema.Class) []schema.Param {
	index := make(map[string]int)
	var out []schema.Param
	for _, c := range classes {
		for _, p := range c.Params {
			if i, ok := index[p.Name]; ok {
				out[i] = p
				continue
			}
			index[p.Name] = len(out)
			out = append(out, p)
		}
	}
	return out
}

// BuildResult collects the outcome of BuildAll per class name.
type BuildResult struct {
	Specs  map[string]*SpecSet
	Errors map[string]error
}

// BuildAll builds every class concurrently. A failing class is recorded in
// Errors and does not stop the others. The returned error is non-nil only
// when ctx is done before all builds finished.
func (b *Builder) BuildAll(ctx context.Context, classes []*schema.Class) (*BuildResult, error) {
	result := &BuildResult{
		Specs:  make(map[string]*SpecSet, len(classes)),
		Errors: make(map[string]error),
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, cls := range classes {
		if cls == nil {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := b.Build(cls)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors[cls.Name] = err
				return nil
			}
			result.Specs[cls.Name] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}
