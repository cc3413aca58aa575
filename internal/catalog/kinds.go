package catalog

import "github.com/roach88/deploykit/internal/schema"

// Default returns the catalog of built-in resource kinds.
func Default() *Catalog {
	reg := schema.NewRegistry()
	registerIdentifiers(reg)
	registerDataSets(reg)
	registerDataModels(reg)
	registerFilters(reg)
	registerTimeSeries(reg)
	registerTransformations(reg)
	registerGroups(reg)
	registerExtractionPipelines(reg)
	registerFunctions(reg)

	c := New(reg)
	for _, k := range []Kind{
		{Name: "DataSet", Folder: "data_sets", Root: "DataSetWrite", IdentifierKey: "externalId"},
		{Name: "Space", Folder: "data_models", Root: "SpaceApply", IdentifierKey: "space"},
		{Name: "Container", Folder: "data_models", Root: "ContainerApply", IdentifierKey: "externalId"},
		{Name: "View", Folder: "data_models", Root: "ViewApply", IdentifierKey: "externalId"},
		{Name: "TimeSeries", Folder: "timeseries", Root: "TimeSeriesWrite", IdentifierKey: "externalId", DataSetLinked: true},
		{Name: "Transformation", Folder: "transformations", Root: "TransformationWrite", IdentifierKey: "externalId", DataSetLinked: true},
		{Name: "Group", Folder: "auth", Root: "GroupWrite", IdentifierKey: "name"},
		{Name: "ExtractionPipeline", Folder: "extraction_pipelines", Root: "ExtractionPipelineWrite", IdentifierKey: "externalId", DataSetLinked: true},
		{Name: "Function", Folder: "functions", Root: "FunctionWrite", IdentifierKey: "externalId"},
	} {
		if err := c.Add(k); err != nil {
			panic(err)
		}
	}
	return c
}

func class(module, name string, params ...schema.Param) *schema.Class {
	return &schema.Class{Name: name, Module: module, Params: params}
}

func abstract(module, name string) *schema.Class {
	return &schema.Class{Name: name, Module: module, Abstract: true}
}

func subclass(module, base, name string, params ...schema.Param) *schema.Class {
	return &schema.Class{Name: name, Module: module, Base: base, Params: params}
}

var (
	optStr      = schema.Optional(schema.Str)
	optInt      = schema.Optional(schema.Int)
	optBool     = schema.Optional(schema.Bool)
	optFloat    = schema.Optional(schema.Float)
	strMap      = schema.DictOf(schema.Str, schema.Str)
	optStrMap   = schema.Optional(strMap)
	optStrList  = schema.Optional(schema.ListOf(schema.Str))
	stringsList = schema.ListOf(schema.Str)
)
