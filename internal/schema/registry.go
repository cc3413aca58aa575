package schema

import (
	"fmt"
	"sort"
)

// Registry holds registered classes and modules.
//
// Registration order is preserved: Classes and Subclasses return classes in
// the order they were registered. A Registry is populated at start-up and
// read-only afterwards; it is not safe for concurrent registration.
type Registry struct {
	classes  map[string]*Class
	order    []string
	children map[string][]string
	modules  map[string]*Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		classes:  make(map[string]*Class),
		children: make(map[string][]string),
		modules:  make(map[string]*Module),
	}
}

// Register adds a class. Class names are unique across the registry.
// The base class, when named, does not need to be registered first.
func (r *Registry) Register(c *Class) error {
	if c == nil || c.Name == "" {
		return fmt.Errorf("register class: name is required")
	}
	if _, exists := r.classes[c.Name]; exists {
		return fmt.Errorf("register class: duplicate class %q", c.Name)
	}
	if c.Base == c.Name {
		return fmt.Errorf("register class %q: class cannot be its own base", c.Name)
	}
	r.classes[c.Name] = c
	r.order = append(r.order, c.Name)
	if c.Base != "" {
		r.children[c.Base] = append(r.children[c.Base], c.Name)
	}
	if c.Module != "" {
		r.ensureModule(c.Module)
	}
	return nil
}

// MustRegister registers classes and panics on error.
// Intended for declarations fixed at compile time.
func (r *Registry) MustRegister(classes ...*Class) {
	for _, c := range classes {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// AddModule registers module metadata. Imports of an existing module are
// merged, later entries winning.
func (r *Registry) AddModule(m Module) {
	existing := r.ensureModule(m.Name)
	for name, t := range m.Imports {
		existing.Imports[name] = t
	}
}

func (r *Registry) ensureModule(name string) *Module {
	m, ok := r.modules[name]
	if !ok {
		m = &Module{Name: name, Imports: make(map[string]Type)}
		r.modules[name] = m
	}
	return m
}

// Lookup returns the named class.
func (r *Registry) Lookup(name string) (*Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Subclasses returns the direct subclasses of the named class.
func (r *Registry) Subclasses(name string) []*Class {
	names := r.children[name]
	out := make([]*Class, 0, len(names))
	for _, n := range names {
		out = append(out, r.classes[n])
	}
	return out
}

// Classes returns every registered class in registration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.classes[n])
	}
	return out
}

// Module returns the named module.
func (r *Registry) Module(name string) (*Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

// Modules returns module names in sorted order.
func (r *Registry) Modules() []string {
	names := make([]string, 0, len(r.modules))
	for n := range r.modules {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Globals returns the top-level names of a module: its classes as
// references, overlaid with its imports.
func (r *Registry) Globals(module string) map[string]Type {
	globals := make(map[string]Type)
	if module == "" {
		return globals
	}
	for _, n := range r.order {
		if r.classes[n].Module == module {
			globals[n] = Ref{Name: n}
		}
	}
	if m, ok := r.modules[module]; ok {
		for name, t := range m.Imports {
			globals[name] = t
		}
	}
	return globals
}

// Merge registers every class and module of other into r. When any class
// of other is already registered in r, r is left unchanged.
func (r *Registry) Merge(other *Registry) error {
	for _, c := range other.Classes() {
		if _, exists := r.classes[c.Name]; exists {
			return fmt.Errorf("register class: duplicate class %q", c.Name)
		}
	}
	for _, name := range other.Modules() {
		m := other.modules[name]
		r.AddModule(*m)
	}
	for _, c := range other.Classes() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}
