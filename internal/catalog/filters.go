package catalog

import "github.com/roach88/deploykit/internal/schema"

const modFilters = "cognite.client.data_classes.filters"

// Filter classes carry annotation text only. ViewId and ContainerId are
// imported locally in their source module, so resolution relies on the
// auxiliary table for them.
func registerFilters(reg *schema.Registry) {
	scalar := schema.UnionOf(schema.Str, schema.Float, schema.Bool, schema.Int)
	reg.AddModule(schema.Module{
		Name: modFilters,
		Imports: map[string]schema.Type{
			"PropertyReference": schema.UnionOf(schema.Str, schema.ListOf(schema.Str)),
			"FilterValue":       schema.UnionOf(scalar, schema.UntypedDict),
			"FilterValueList":   schema.UnionOf(schema.ListOf(scalar), schema.UntypedDict),
			"RangeValue":        schema.UnionOf(schema.Str, schema.Int, schema.Float),
		},
	})

	property := schema.ReqText("property", "PropertyReference")
	bound := func(name string) schema.Param { return schema.OptText(name, "RangeValue | None") }
	reg.MustRegister(
		abstract(modFilters, "Filter"),
		subclass(modFilters, "Filter", "Equals", property, schema.ReqText("value", "FilterValue")),
		subclass(modFilters, "Filter", "In", property, schema.ReqText("values", "FilterValueList")),
		subclass(modFilters, "Filter", "Range", property, bound("gt"), bound("gte"), bound("lt"), bound("lte")),
		subclass(modFilters, "Filter", "Prefix", property, schema.ReqText("value", "FilterValue")),
		subclass(modFilters, "Filter", "Exists", property),
		subclass(modFilters, "Filter", "ContainsAny", property, schema.ReqText("values", "FilterValueList")),
		subclass(modFilters, "Filter", "ContainsAll", property, schema.ReqText("values", "FilterValueList")),
		subclass(modFilters, "Filter", "HasData",
			schema.OptText("containers", "Sequence[ContainerId] | None"),
			schema.OptText("views", "Sequence[ViewId] | None"),
		),
		subclass(modFilters, "Filter", "Nested",
			schema.ReqText("scope", "PropertyReference"),
			schema.ReqText("filter", "dict[str, Filter]"),
		),
		subclass(modFilters, "Filter", "Not", schema.ReqText("filter", "dict[str, Filter]")),
		subclass(modFilters, "Filter", "And", schema.Param{Name: "filters", Annotation: "Filter", Kind: schema.VarPositional}),
		subclass(modFilters, "Filter", "Or", schema.Param{Name: "filters", Annotation: "Filter", Kind: schema.VarPositional}),
		subclass(modFilters, "Filter", "MatchAll"),
	)
}
