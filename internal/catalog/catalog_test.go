package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/deploykit/internal/params"
	"github.com/roach88/deploykit/internal/schema"
	"github.com/roach88/deploykit/internal/validate"
)

func TestDefaultKinds(t *testing.T) {
	c := Default()

	var names []string
	for _, k := range c.Kinds() {
		names = append(names, k.Name)
		_, ok := c.Root(k)
		assert.True(t, ok, "root of %s", k.Name)
	}
	assert.Equal(t, []string{
		"DataSet", "Space", "Container", "View", "TimeSeries",
		"Transformation", "Group", "ExtractionPipeline", "Function",
	}, names)
}

func TestDefaultSchemasBuildCompletely(t *testing.T) {
	c := Default()
	var roots []*schema.Class
	for _, k := range c.Kinds() {
		root, _ := c.Root(k)
		roots = append(roots, root)
	}

	result, err := params.NewBuilder(c.Registry()).BuildAll(context.Background(), roots)
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	for name, set := range result.Specs {
		assert.True(t, set.Complete, "%s should be complete", name)
		assert.NotZero(t, set.Len(), name)
	}
}

func buildCamel(t *testing.T, c *Catalog, kind string) *params.SpecSet {
	t.Helper()
	k, ok := c.Kind(kind)
	require.True(t, ok)
	root, _ := c.Root(k)
	set, err := params.NewBuilder(c.Registry()).Build(root)
	require.NoError(t, err)
	return set.AsCamelCase()
}

func TestContainerSchema(t *testing.T) {
	set := buildCamel(t, Default(), "Container")

	str := []string{"str"}
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("space"), str, true, false)))
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("properties", "type", "type"), str, true, false)))
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("properties", "type", "collation"), str, false, true)))
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("usedFor"), str, false, true)))
	assert.True(t, set.HasPath(params.PathOf("constraints", "require", "externalId")))
	assert.True(t, set.HasPath(params.PathOf("indexes", "properties").Element()))
	assert.True(t, set.IsMapping(params.PathOf("properties")))
}

func TestViewSchemaResolvesAuxiliaryNames(t *testing.T) {
	set := buildCamel(t, Default(), "View")

	assert.True(t, set.Complete)
	assert.True(t, set.IsMapping(params.PathOf("filter")))
	assert.True(t, set.HasPath(params.PathOf("filter", "containers").Element().Child("externalId")))
	assert.True(t, set.HasPath(params.PathOf("filter", "views").Element().Child("version")))
	// Nested filters stop at a placeholder.
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("filter", "filter"), []string{"dict"}, true, false)))
	assert.True(t, set.HasPath(params.PathOf("properties", "container", "space")))
	assert.True(t, set.HasPath(params.PathOf("properties", "through", "source", "space")))
}

func TestTransformationSchemaFromAnnotationText(t *testing.T) {
	set := buildCamel(t, Default(), "Transformation")

	assert.True(t, set.Contains(params.NewSpec(params.PathOf("externalId"), []string{"str"}, true, false)))
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("conflictMode"), []string{"str"}, false, true)))
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("dataSetId"), []string{"int"}, false, true)))
	assert.True(t, set.HasPath(params.PathOf("sourceOidcCredentials", "clientId")))
	assert.True(t, set.Contains(params.NewSpec(params.PathOf("sourceOidcCredentials", "scopes"), []string{"list", "str"}, false, true)))
	assert.True(t, set.HasPath(params.PathOf("destination", "dataModel", "destinationType")))
}

func TestGroupSchemaUsesClassLocalEnums(t *testing.T) {
	set := buildCamel(t, Default(), "Group")

	capability := params.PathOf("capabilities").Element()
	assert.True(t, set.IsMapping(capability))
	assert.True(t, set.Contains(params.NewSpec(capability.Child("actions").Element(), []string{"str"}, true, false)))
	assert.True(t, set.IsMapping(capability.Child("scope")))
	assert.True(t, set.HasPath(params.PathOf("members").Element()))
}

func TestValidateRealisticDocuments(t *testing.T) {
	c := Default()
	docs := map[string]string{
		"Container": `
space: sp_core
externalId: Asset
usedFor: node
properties:
  name:
    type:
      type: text
      list: false
    nullable: false
  parent:
    type:
      type: direct
      container:
        space: sp_core
        externalId: Asset
        type: container
constraints:
  requiresDescribable:
    constraintType: requires
    require:
      space: cdf_cdm
      externalId: CogniteDescribable
      type: container
indexes:
  byName:
    indexType: btree
    properties: [name]
    cursorable: true
`,
		"Group": `
name: gp_readers
sourceId: 7b4f
capabilities:
  - datasetsAcl:
      actions: [READ]
      scope:
        all: {}
  - timeSeriesAcl:
      actions: [READ, WRITE]
      scope:
        datasetScope:
          ids: [1, 2]
`,
		"View": `
space: sp_core
externalId: Asset
version: v1
implements:
  - space: cdf_cdm
    externalId: CogniteAsset
    version: v1
    type: view
filter:
  hasData:
    containers:
      - space: sp_core
        externalId: Asset
properties:
  name:
    container:
      space: sp_core
      externalId: Asset
    containerPropertyIdentifier: name
`,
	}

	for kind, src := range docs {
		t.Run(kind, func(t *testing.T) {
			var doc any
			require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
			warnings := validate.Resource(doc, buildCamel(t, c, kind), "x."+kind+".yaml")
			assert.Empty(t, warnings)
		})
	}
}

func TestKindForFile(t *testing.T) {
	c := Default()

	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"modules/core/data_models/asset.Container.yaml", "Container", true},
		{"my_ts.timeseries.yml", "TimeSeries", true},
		{"auth/readers.Group.yaml", "Group", true},
		{"config.dev.yaml", "", false},
		{"asset.Container.json", "", false},
		{"Container.yaml", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			k, ok := c.KindForFile(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, k.Name)
		})
	}
}

func TestAddRejectsInvalidKinds(t *testing.T) {
	reg := schema.NewRegistry()
	reg.MustRegister(&schema.Class{Name: "WidgetWrite"})
	c := New(reg)

	require.NoError(t, c.Add(Kind{Name: "Widget", Root: "WidgetWrite"}))

	err := c.Add(Kind{Name: "widget", Root: "WidgetWrite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	err = c.Add(Kind{Name: "Gadget", Root: "GadgetWrite"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not registered")

	require.Error(t, c.Add(Kind{Root: "WidgetWrite"}))
}
