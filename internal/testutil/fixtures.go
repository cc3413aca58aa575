package testutil

import "github.com/roach88/deploykit/internal/schema"

// ContainerRegistry declares the container/property pair used by the
// end-to-end schema scenarios:
//
//	Container(space: str, description: str | None = None, properties: dict[str, Property])
//	Property(type_name: str, nullable: bool = False)
func ContainerRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustRegister(
		&schema.Class{
			Name:   "Container",
			Module: "fixtures.containers",
			Params: []schema.Param{
				schema.Req("space", schema.Str),
				schema.Opt("description", schema.Optional(schema.Str)),
				schema.Req("properties", schema.DictOf(schema.Str, schema.RefTo("Property"))),
			},
		},
		&schema.Class{
			Name:   "Property",
			Module: "fixtures.containers",
			Params: []schema.Param{
				schema.Req("type_name", schema.Str),
				schema.Opt("nullable", schema.Bool),
			},
		},
	)
	return reg
}

// CycleRegistry declares self-referential classes: Node refers to itself
// directly and through a list, Left and Right refer to each other.
func CycleRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustRegister(
		&schema.Class{
			Name:   "Node",
			Module: "fixtures.graph",
			Params: []schema.Param{
				schema.Req("name", schema.Str),
				schema.Opt("parent", schema.Optional(schema.RefTo("Node"))),
				schema.Opt("children", schema.Optional(schema.ListOf(schema.RefTo("Node")))),
			},
		},
		&schema.Class{
			Name:   "Left",
			Module: "fixtures.graph",
			Params: []schema.Param{
				schema.Req("right", schema.RefTo("Right")),
			},
		},
		&schema.Class{
			Name:   "Right",
			Module: "fixtures.graph",
			Params: []schema.Param{
				schema.Req("label", schema.Str),
				schema.Opt("left", schema.Optional(schema.RefTo("Left"))),
			},
		},
	)
	return reg
}

// EndpointRegistry declares Pipeline(endpoint: Source | Sink) where Source
// and Sink are abstract families whose concrete members disagree on the
// type of size.
func EndpointRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.MustRegister(
		&schema.Class{
			Name:   "Pipeline",
			Module: "fixtures.pipelines",
			Params: []schema.Param{
				schema.Req("endpoint", schema.UnionOf(schema.RefTo("Source"), schema.RefTo("Sink"))),
			},
		},
		&schema.Class{Name: "Source", Module: "fixtures.pipelines", Abstract: true},
		&schema.Class{Name: "Sink", Module: "fixtures.pipelines", Abstract: true},
		&schema.Class{
			Name:   "FileSource",
			Module: "fixtures.pipelines",
			Base:   "Source",
			Params: []schema.Param{
				schema.Req("path", schema.Str),
				schema.Req("size", schema.Int),
			},
		},
		&schema.Class{
			Name:   "TableSink",
			Module: "fixtures.pipelines",
			Base:   "Sink",
			Params: []schema.Param{
				schema.Req("table", schema.Str),
				schema.Req("size", schema.Str),
			},
		},
	)
	return reg
}

// DeferredRegistry declares classes whose parameters carry annotation text
// only. Report uses module globals, the auxiliary table and its own class
// namespace; Orphan names something nothing defines; Odd uses a shape the
// annotation grammar does not cover.
func DeferredRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.AddModule(schema.Module{
		Name:    "fixtures.reports",
		Imports: map[string]schema.Type{"Label": schema.Str},
	})
	reg.MustRegister(
		&schema.Class{
			Name:   "Report",
			Module: "fixtures.reports",
			Params: []schema.Param{
				schema.ReqText("title", "Label"),
				schema.OptText("tags", "list[str] | None"),
				schema.ReqText("sections", "dict[str, Section]"),
				schema.OptText("view", "ViewId | None"),
				schema.OptText("samples", "NumpyFloat64Array | None"),
				schema.OptText("status", "Report.Status"),
				schema.Kwargs("extra"),
			},
			Locals: map[string]schema.Type{
				"Status": schema.EnumOf("Status", "DRAFT", "PUBLISHED"),
			},
		},
		&schema.Class{
			Name:   "Section",
			Module: "fixtures.reports",
			Params: []schema.Param{
				schema.ReqText("heading", "str"),
				schema.OptText("weight", "int | float"),
			},
		},
		&schema.Class{
			Name:   "ViewId",
			Module: "fixtures.ids",
			Params: []schema.Param{
				schema.Req("space", schema.Str),
				schema.Req("external_id", schema.Str),
				schema.Opt("version", schema.Optional(schema.Str)),
			},
		},
		&schema.Class{
			Name:   "Orphan",
			Module: "fixtures.reports",
			Params: []schema.Param{
				schema.Req("name", schema.Str),
				schema.ReqText("owner", "UnknownOwner"),
			},
		},
		&schema.Class{
			Name:   "Odd",
			Module: "fixtures.reports",
			Params: []schema.Param{
				schema.ReqText("ids", "set[str]"),
			},
		},
	)
	return reg
}
