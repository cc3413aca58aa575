package hints

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/deploykit/internal/schema"
	"github.com/roach88/deploykit/internal/testutil"
	"github.com/roach88/deploykit/internal/typeexpr"
)

func mustLookup(t *testing.T, reg *schema.Registry, name string) *schema.Class {
	t.Helper()
	c, ok := reg.Lookup(name)
	require.True(t, ok, "class %s not registered", name)
	return c
}

func TestResolveDirect(t *testing.T) {
	reg := testutil.ContainerRegistry()
	r := NewResolver(reg)

	hints, err := r.Resolve(mustLookup(t, reg, "Container"))
	require.NoError(t, err)

	assert.Equal(t, schema.Str, hints["space"])
	assert.Equal(t, schema.Optional(schema.Str), hints["description"])
	assert.Equal(t, schema.DictOf(schema.Str, schema.RefTo("Property")), hints["properties"])
	assert.Len(t, hints, 3)
}

func TestResolveFallbackEnvironment(t *testing.T) {
	reg := testutil.DeferredRegistry()
	r := NewResolver(reg)

	hints, gaps, err := r.ResolveDetailed(mustLookup(t, reg, "Report"))
	require.NoError(t, err)
	assert.Empty(t, gaps)

	// module import
	assert.Equal(t, schema.Str, hints["title"])
	assert.Equal(t, schema.Optional(schema.ListOf(schema.Str)), hints["tags"])
	// module global class
	assert.Equal(t, schema.DictOf(schema.Str, schema.RefTo("Section")), hints["sections"])
	// auxiliary table
	assert.Equal(t, schema.Optional(schema.RefTo("ViewId")), hints["view"])
	assert.Equal(t, schema.Optional(schema.ListOf(schema.Float)), hints["samples"])
	// class namespace through a dotted name
	assert.Equal(t, schema.EnumOf("Status", "DRAFT", "PUBLISHED"), hints["status"])

	_, hasExtra := hints["extra"]
	assert.False(t, hasExtra, "catch-alls carry no hint")
}

func TestResolveClassLocalsShadowAuxiliary(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(&schema.Class{
		Name:   "Shadow",
		Params: []schema.Param{schema.ReqText("id", "ViewId")},
		Locals: map[string]schema.Type{"ViewId": schema.Str},
	})
	r := NewResolver(reg)

	hints, err := r.Resolve(mustLookup(t, reg, "Shadow"))
	require.NoError(t, err)
	assert.Equal(t, schema.Str, hints["id"])
}

func TestResolveGapDropsOnlyThatParameter(t *testing.T) {
	reg := testutil.DeferredRegistry()
	r := NewResolver(reg)

	hints, gaps, err := r.ResolveDetailed(mustLookup(t, reg, "Orphan"))
	require.NoError(t, err)

	assert.Equal(t, schema.Str, hints["name"])
	_, hasOwner := hints["owner"]
	assert.False(t, hasOwner)

	require.Len(t, gaps, 1)
	assert.Equal(t, "Orphan", gaps[0].Class)
	assert.Equal(t, "owner", gaps[0].Param)
	assert.Equal(t, "UnknownOwner", gaps[0].Name)
	assert.Contains(t, gaps[0].Error(), `name "UnknownOwner" is not defined`)
}

func TestResolveLiveTypeWithUnregisteredReference(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(&schema.Class{
		Name: "Holder",
		Params: []schema.Param{
			schema.Req("name", schema.Str),
			schema.Req("item", schema.RefTo("Missing")),
		},
	})
	r := NewResolver(reg)

	hints, gaps, err := r.ResolveDetailed(mustLookup(t, reg, "Holder"))
	require.NoError(t, err)

	assert.Equal(t, Hints{"name": schema.Str}, hints)
	require.Len(t, gaps, 1)
	assert.Equal(t, "Missing", gaps[0].Name)
}

func TestResolveUnsupportedAnnotationIsFatal(t *testing.T) {
	reg := testutil.DeferredRegistry()
	r := NewResolver(reg)

	_, err := r.Resolve(mustLookup(t, reg, "Odd"))
	require.Error(t, err)

	var resolveErr *ResolveError
	require.True(t, errors.As(err, &resolveErr))
	assert.Equal(t, "Odd", resolveErr.Class)
	assert.Equal(t, "ids", resolveErr.Param)

	var unsupportedErr *typeexpr.UnsupportedAnnotationError
	require.True(t, errors.As(err, &unsupportedErr))
	assert.Equal(t, "set[str]", unsupportedErr.Annotation)
}

func TestResolveMergesLastWriterWins(t *testing.T) {
	reg := testutil.EndpointRegistry()
	r := NewResolver(reg)

	hints, err := r.Resolve(mustLookup(t, reg, "FileSource"), mustLookup(t, reg, "TableSink"))
	require.NoError(t, err)

	assert.Equal(t, schema.Str, hints["size"])
	assert.Equal(t, schema.Str, hints["path"])
	assert.Equal(t, schema.Str, hints["table"])
}

func TestConcreteClasses(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(
		&schema.Class{Name: "Root", Abstract: true},
		&schema.Class{Name: "Middle", Abstract: true, Base: "Root"},
		&schema.Class{Name: "First", Base: "Root"},
		&schema.Class{Name: "Deep", Base: "Middle"},
		&schema.Class{Name: "Second", Base: "Root"},
	)
	r := NewResolver(reg)

	var names []string
	for _, c := range r.ConcreteClasses(mustLookup(t, reg, "Root")) {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"First", "Second", "Deep"}, names)

	concrete := r.ConcreteClasses(mustLookup(t, reg, "First"))
	require.Len(t, concrete, 1)
	assert.Equal(t, "First", concrete[0].Name)

	assert.Nil(t, r.ConcreteClasses(nil))
}

func TestConcreteClassesAbstractWithoutSubclasses(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(&schema.Class{Name: "Lonely", Abstract: true})
	r := NewResolver(reg)

	assert.Empty(t, r.ConcreteClasses(mustLookup(t, reg, "Lonely")))
}

func TestConcreteClassesConcreteRootIgnoresSubclasses(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(
		&schema.Class{Name: "Schedule"},
		&schema.Class{Name: "NamedSchedule", Base: "Schedule"},
	)
	r := NewResolver(reg)

	concrete := r.ConcreteClasses(mustLookup(t, reg, "Schedule"))
	require.Len(t, concrete, 1)
	assert.Equal(t, "Schedule", concrete[0].Name)
}
