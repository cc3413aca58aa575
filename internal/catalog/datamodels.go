package catalog

import "github.com/roach88/deploykit/internal/schema"

const (
	modIDs        = "cognite.client.data_classes.data_modeling.ids"
	modSpaces     = "cognite.client.data_classes.data_modeling.spaces"
	modContainers = "cognite.client.data_classes.data_modeling.containers"
	modDataTypes  = "cognite.client.data_classes.data_modeling.data_types"
	modViews      = "cognite.client.data_classes.data_modeling.views"
)

func registerIdentifiers(reg *schema.Registry) {
	reg.MustRegister(
		class(modIDs, "ContainerId",
			schema.Req("space", schema.Str),
			schema.Req("external_id", schema.Str),
			schema.Opt("type", schema.LiteralOf("container")),
		),
		class(modIDs, "ViewId",
			schema.Req("space", schema.Str),
			schema.Req("external_id", schema.Str),
			schema.Opt("version", optStr),
			schema.Opt("type", schema.LiteralOf("view")),
		),
		class(modIDs, "PropertyId",
			schema.Req("source", schema.UnionOf(schema.RefTo("ViewId"), schema.RefTo("ContainerId"))),
			schema.Req("property", schema.Str),
		),
		class(modIDs, "DirectRelationReference",
			schema.Req("space", schema.Str),
			schema.Req("external_id", schema.Str),
		),
	)
}

func registerDataModels(reg *schema.Registry) {
	reg.MustRegister(class(modSpaces, "SpaceApply",
		schema.Req("space", schema.Str),
		schema.Opt("description", optStr),
		schema.Opt("name", optStr),
	))

	reg.MustRegister(
		class(modContainers, "ContainerApply",
			schema.Req("space", schema.Str),
			schema.Req("external_id", schema.Str),
			schema.Req("properties", schema.DictOf(schema.Str, schema.RefTo("ContainerProperty"))),
			schema.Opt("description", optStr),
			schema.Opt("name", optStr),
			schema.Opt("used_for", schema.Optional(schema.LiteralOf("node", "edge", "all"))),
			schema.Opt("constraints", schema.Optional(schema.DictOf(schema.Str, schema.RefTo("Constraint")))),
			schema.Opt("indexes", schema.Optional(schema.DictOf(schema.Str, schema.RefTo("Index")))),
		),
		class(modContainers, "ContainerProperty",
			schema.Req("type", schema.RefTo("PropertyType")),
			schema.Opt("nullable", schema.Bool),
			schema.Opt("auto_increment", schema.Bool),
			schema.Opt("immutable", schema.Bool),
			schema.Opt("name", optStr),
			schema.Opt("default_value", schema.UnionOf(schema.Str, schema.Int, schema.Float, schema.Bool, schema.UntypedDict, schema.NoneType)),
			schema.Opt("description", optStr),
		),
		abstract(modContainers, "Constraint"),
		subclass(modContainers, "Constraint", "RequiresConstraint",
			schema.Req("constraint_type", schema.LiteralOf("requires")),
			schema.Req("require", schema.RefTo("ContainerId")),
		),
		subclass(modContainers, "Constraint", "UniquenessConstraint",
			schema.Req("constraint_type", schema.LiteralOf("uniqueness")),
			schema.Req("properties", stringsList),
		),
		abstract(modContainers, "Index"),
		subclass(modContainers, "Index", "BTreeIndex",
			schema.Req("index_type", schema.LiteralOf("btree")),
			schema.Req("properties", stringsList),
			schema.Opt("cursorable", schema.Bool),
		),
		subclass(modContainers, "Index", "InvertedIndex",
			schema.Req("index_type", schema.LiteralOf("inverted")),
			schema.Req("properties", stringsList),
		),
	)

	// The discriminator and the list flag use their API spelling.
	dataType := func(base, name, tag string, extra ...schema.Param) *schema.Class {
		params := append([]schema.Param{
			schema.Req("type", schema.LiteralOf(tag)),
			schema.Opt("list", schema.Bool),
		}, extra...)
		return subclass(modDataTypes, base, name, params...)
	}
	reg.MustRegister(
		abstract(modDataTypes, "PropertyType"),
		dataType("PropertyType", "Text", "text", schema.Opt("collation", schema.Str)),
		dataType("PropertyType", "Boolean", "boolean"),
		dataType("PropertyType", "Timestamp", "timestamp"),
		dataType("PropertyType", "Date", "date"),
		dataType("PropertyType", "Json", "json"),
		&schema.Class{Name: "ListablePropertyType", Module: modDataTypes, Base: "PropertyType", Abstract: true},
		dataType("ListablePropertyType", "Int32", "int32"),
		dataType("ListablePropertyType", "Int64", "int64"),
		dataType("ListablePropertyType", "Float32", "float32"),
		dataType("ListablePropertyType", "Float64", "float64"),
		dataType("PropertyType", "DirectRelation", "direct",
			schema.Opt("container", schema.Optional(schema.RefTo("ContainerId"))),
		),
		&schema.Class{Name: "CDFExternalIdReference", Module: modDataTypes, Base: "PropertyType", Abstract: true},
		dataType("CDFExternalIdReference", "TimeSeriesReference", "timeseries"),
		dataType("CDFExternalIdReference", "FileReference", "file"),
		dataType("CDFExternalIdReference", "SequenceReference", "sequence"),
	)

	direction := schema.Opt("direction", schema.LiteralOf("outwards", "inwards"))
	reg.MustRegister(
		class(modViews, "ViewApply",
			schema.Req("space", schema.Str),
			schema.Req("external_id", schema.Str),
			schema.Req("version", schema.Str),
			schema.Opt("description", optStr),
			schema.Opt("name", optStr),
			schema.OptText("filter", "dict[str, Filter] | None"),
			schema.Opt("implements", schema.Optional(schema.ListOf(schema.RefTo("ViewId")))),
			schema.Opt("properties", schema.Optional(schema.DictOf(schema.Str, schema.RefTo("ViewPropertyApply")))),
		),
		abstract(modViews, "ViewPropertyApply"),
		subclass(modViews, "ViewPropertyApply", "MappedPropertyApply",
			schema.Req("container", schema.RefTo("ContainerId")),
			schema.Req("container_property_identifier", schema.Str),
			schema.Opt("name", optStr),
			schema.Opt("description", optStr),
			schema.Opt("source", schema.Optional(schema.RefTo("ViewId"))),
		),
		&schema.Class{Name: "EdgeConnectionApply", Module: modViews, Base: "ViewPropertyApply", Abstract: true},
		subclass(modViews, "EdgeConnectionApply", "SingleEdgeConnectionApply",
			schema.Req("type", schema.RefTo("DirectRelationReference")),
			schema.Req("source", schema.RefTo("ViewId")),
			schema.Opt("name", optStr),
			schema.Opt("description", optStr),
			schema.Opt("edge_source", schema.Optional(schema.RefTo("ViewId"))),
			direction,
		),
		subclass(modViews, "EdgeConnectionApply", "MultiEdgeConnectionApply",
			schema.Req("type", schema.RefTo("DirectRelationReference")),
			schema.Req("source", schema.RefTo("ViewId")),
			schema.Opt("name", optStr),
			schema.Opt("description", optStr),
			schema.Opt("edge_source", schema.Optional(schema.RefTo("ViewId"))),
			direction,
		),
		subclass(modViews, "ViewPropertyApply", "SingleReverseDirectRelationApply",
			schema.Req("source", schema.RefTo("ViewId")),
			schema.Req("through", schema.RefTo("PropertyId")),
			schema.Opt("name", optStr),
			schema.Opt("description", optStr),
		),
	)
	reg.AddModule(schema.Module{
		Name: modViews,
		Imports: map[string]schema.Type{
			"Filter": schema.RefTo("Filter"),
		},
	})
}
