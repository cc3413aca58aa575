// Package catalog declares the deployable resource kinds and the write-class
// descriptors their schemas are derived from.
package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/roach88/deploykit/internal/casing"
	"github.com/roach88/deploykit/internal/schema"
)

// Kind is one deployable resource kind.
type Kind struct {
	Name          string `json:"name"`
	Folder        string `json:"folder"`         // module sub-directory holding the YAML files
	Root          string `json:"root"`           // write class the schema is derived from
	IdentifierKey string `json:"identifier_key"` // document key naming a resource
	DataSetLinked bool   `json:"data_set_linked"`
}

// Catalog maps resource kinds to the classes in a registry.
type Catalog struct {
	registry *schema.Registry
	kinds    []Kind
	byFold   map[string]int
}

// New creates an empty catalog over reg.
func New(reg *schema.Registry) *Catalog {
	return &Catalog{registry: reg, byFold: make(map[string]int)}
}

// Add registers a kind. Its root class must already be registered and kind
// names are unique regardless of case.
func (c *Catalog) Add(k Kind) error {
	if k.Name == "" {
		return fmt.Errorf("add kind: name is required")
	}
	if _, ok := c.registry.Lookup(k.Root); !ok {
		return fmt.Errorf("add kind %s: root class %q is not registered", k.Name, k.Root)
	}
	key := casing.Fold(k.Name)
	if _, exists := c.byFold[key]; exists {
		return fmt.Errorf("add kind %s: duplicate kind", k.Name)
	}
	c.byFold[key] = len(c.kinds)
	c.kinds = append(c.kinds, k)
	return nil
}

// Registry returns the registry holding the kinds' classes.
func (c *Catalog) Registry() *schema.Registry { return c.registry }

// Kinds returns every kind in registration order.
func (c *Catalog) Kinds() []Kind {
	out := make([]Kind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// Kind returns the named kind; the match ignores case.
func (c *Catalog) Kind(name string) (Kind, bool) {
	i, ok := c.byFold[casing.Fold(name)]
	if !ok {
		return Kind{}, false
	}
	return c.kinds[i], true
}

// Root returns the root class of k.
func (c *Catalog) Root(k Kind) (*schema.Class, bool) {
	return c.registry.Lookup(k.Root)
}

// KindForFile maps a resource file named "<name>.<Kind>.yaml" (or .yml) to
// its kind.
func (c *Catalog) KindForFile(path string) (Kind, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != ".yaml" && ext != ".yml" {
		return Kind{}, false
	}
	stem := strings.TrimSuffix(base, ext)
	dot := strings.LastIndexByte(stem, '.')
	if dot < 0 {
		return Kind{}, false
	}
	return c.Kind(stem[dot+1:])
}
