package params

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/deploykit/internal/casing"
)

// TypeDict is the accepted type of object-valued paths, including the
// placeholder emitted where a recursive class would be expanded again.
const TypeDict = "dict"

// ParameterSpec describes one addressable configuration leaf or object node.
type ParameterSpec struct {
	Path     Path
	Types    []string // accepted type names, sorted
	Required bool
	Nullable bool
}

// NewSpec returns a spec with types sorted and deduplicated.
func NewSpec(path Path, types []string, required, nullable bool) ParameterSpec {
	sorted := slices.Clone(types)
	sort.Strings(sorted)
	return ParameterSpec{
		Path:     slices.Clone(path),
		Types:    slices.Compact(sorted),
		Required: required,
		Nullable: nullable,
	}
}

// Accepts reports whether typeName is one of the accepted types.
func (s ParameterSpec) Accepts(typeName string) bool {
	return slices.Contains(s.Types, typeName)
}

// String renders the spec as "path {types} required|optional [nullable]".
func (s ParameterSpec) String() string {
	req := "optional"
	if s.Required {
		req = "required"
	}
	out := fmt.Sprintf("%s {%s} %s", s.Path, strings.Join(s.Types, ","), req)
	if s.Nullable {
		out += " nullable"
	}
	return out
}

// Compare orders specs by path, then types, then flags.
func (s ParameterSpec) Compare(o ParameterSpec) int {
	if c := s.Path.Compare(o.Path); c != 0 {
		return c
	}
	if c := slices.Compare(s.Types, o.Types); c != 0 {
		return c
	}
	if c := compareBool(s.Required, o.Required); c != 0 {
		return c
	}
	return compareBool(s.Nullable, o.Nullable)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func (s ParameterSpec) key() string {
	return fmt.Sprintf("%s|%s|%t|%t", s.Path.key(), strings.Join(s.Types, ","), s.Required, s.Nullable)
}

// SpecSet is a deduplicated collection of ParameterSpec.
//
// Identity is the whole spec, so one path may appear several times when
// union alternatives disagree on its type. Complete is false when some
// parameter along the walk had no recoverable type hint; consumers must
// then avoid flagging unknown paths.
//
// The set also indexes mapping-valued paths (dict[str, X]). Their keys are
// user chosen and are not part of any spec path.
type SpecSet struct {
	Complete bool

	specs    map[string]ParameterSpec
	mappings map[string]Path
}

// NewSpecSet returns a complete set holding specs.
func NewSpecSet(specs ...ParameterSpec) *SpecSet {
	s := &SpecSet{
		Complete: true,
		specs:    make(map[string]ParameterSpec),
		mappings: make(map[string]Path),
	}
	for _, spec := range specs {
		s.Add(spec)
	}
	return s
}

// Add inserts spec. It reports whether the set changed.
func (s *SpecSet) Add(spec ParameterSpec) bool {
	k := spec.key()
	if _, ok := s.specs[k]; ok {
		return false
	}
	s.specs[k] = spec
	return true
}

// Discard removes spec if present.
func (s *SpecSet) Discard(spec ParameterSpec) {
	delete(s.specs, spec.key())
}

// MarkMapping records that the value at path is a free-form mapping.
func (s *SpecSet) MarkMapping(path Path) {
	s.mappings[path.key()] = slices.Clone(path)
}

// IsMapping reports whether the value at path is a free-form mapping.
func (s *SpecSet) IsMapping(path Path) bool {
	_, ok := s.mappings[path.key()]
	return ok
}

// Update adds every spec and mapping of other. The result is complete only
// if both sets are.
func (s *SpecSet) Update(other *SpecSet) {
	for k, spec := range other.specs {
		s.specs[k] = spec
	}
	for k, p := range other.mappings {
		s.mappings[k] = p
	}
	s.Complete = s.Complete && other.Complete
}

// Contains reports whether spec is in the set.
func (s *SpecSet) Contains(spec ParameterSpec) bool {
	_, ok := s.specs[spec.key()]
	return ok
}

// Equal reports whether both sets hold the same specs and completeness.
func (s *SpecSet) Equal(other *SpecSet) bool {
	if s.Complete != other.Complete || len(s.specs) != len(other.specs) {
		return false
	}
	for k := range s.specs {
		if _, ok := other.specs[k]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of specs.
func (s *SpecSet) Len() int { return len(s.specs) }

// Specs returns the specs in Compare order.
func (s *SpecSet) Specs() []ParameterSpec {
	out := make([]ParameterSpec, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}
	slices.SortFunc(out, ParameterSpec.Compare)
	return out
}

// Lookup returns every spec at path.
func (s *SpecSet) Lookup(path Path) []ParameterSpec {
	var out []ParameterSpec
	for _, spec := range s.specs {
		if spec.Path.Equal(path) {
			out = append(out, spec)
		}
	}
	slices.SortFunc(out, ParameterSpec.Compare)
	return out
}

// HasPath reports whether any spec sits at path.
func (s *SpecSet) HasPath(path Path) bool {
	for _, spec := range s.specs {
		if spec.Path.Equal(path) {
			return true
		}
	}
	return false
}

// HasChildren reports whether any spec lies strictly below path.
func (s *SpecSet) HasChildren(path Path) bool {
	for _, spec := range s.specs {
		if len(spec.Path) > len(path) && spec.Path[:len(path)].Equal(path) {
			return true
		}
	}
	return false
}

// ChildNames returns the sorted key names directly below path.
func (s *SpecSet) ChildNames(path Path) []string {
	seen := make(map[string]bool)
	var out []string
	for _, spec := range s.specs {
		if len(spec.Path) != len(path)+1 || !spec.Path[:len(path)].Equal(path) {
			continue
		}
		last := spec.Path.Last()
		if last.Elem || seen[last.Key] {
			continue
		}
		seen[last.Key] = true
		out = append(out, last.Key)
	}
	sort.Strings(out)
	return out
}

// Required returns the required specs at depth level, where 1 is the top
// level of the document. A level below 1 returns required specs at every
// depth.
func (s *SpecSet) Required(level int) []ParameterSpec {
	var out []ParameterSpec
	for _, spec := range s.Specs() {
		if !spec.Required {
			continue
		}
		if level >= 1 && len(spec.Path) != level {
			continue
		}
		out = append(out, spec)
	}
	return out
}

// Clone returns an independent copy.
func (s *SpecSet) Clone() *SpecSet {
	out := NewSpecSet()
	out.Update(s)
	return out
}

// AsCamelCase returns a copy with every key segment converted to camelCase,
// the spelling used in YAML documents.
func (s *SpecSet) AsCamelCase() *SpecSet {
	out := NewSpecSet()
	out.Complete = s.Complete
	for _, spec := range s.specs {
		out.Add(NewSpec(camelPath(spec.Path), spec.Types, spec.Required, spec.Nullable))
	}
	for _, p := range s.mappings {
		out.MarkMapping(camelPath(p))
	}
	return out
}

func camelPath(p Path) Path {
	out := make(Path, len(p))
	for i, seg := range p {
		if seg.Elem {
			out[i] = seg
			continue
		}
		out[i] = Key(casing.ToCamel(seg.Key))
	}
	return out
}
