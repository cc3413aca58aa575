package catalog

import "github.com/roach88/deploykit/internal/schema"

const modCapabilities = "cognite.client.data_classes.capabilities"

// Capability actions are enums nested in each capability class. Their
// annotations name them through the class ("DataSetsAcl.Action").
func registerGroups(reg *schema.Registry) {
	reg.MustRegister(class(modCapabilities, "GroupWrite",
		schema.Req("name", schema.Str),
		schema.Opt("source_id", optStr),
		schema.OptText("capabilities", "list[dict[str, Capability]] | None"),
		schema.Opt("metadata", optStrMap),
		schema.Opt("members", schema.UnionOf(schema.LiteralOf("allUserAccounts"), schema.ListOf(schema.Str), schema.NoneType)),
	))

	acl := func(name string, actions []string, scope string) *schema.Class {
		c := subclass(modCapabilities, "Capability", name,
			schema.ReqText("actions", "list["+name+".Action]"),
			schema.ReqText("scope", scope),
			schema.OptText("allow_unknown", "bool"),
		)
		c.Locals = map[string]schema.Type{"Action": schema.EnumOf("Action", actions...)}
		return c
	}
	reg.MustRegister(
		abstract(modCapabilities, "Capability"),
		acl("DataSetsAcl", []string{"READ", "OWNER"}, "dict[str, DataSetsScope]"),
		acl("TimeSeriesAcl", []string{"READ", "WRITE"}, "dict[str, TimeSeriesScope]"),
		acl("TransformationsAcl", []string{"READ", "WRITE"}, "dict[str, TransformationsScope]"),
		acl("GroupsAcl", []string{"CREATE", "DELETE", "READ", "LIST", "UPDATE"}, "dict[str, GroupsScope]"),

		abstract(modCapabilities, "Scope"),
		&schema.Class{Name: "DataSetsScope", Module: modCapabilities, Base: "Scope", Abstract: true},
		&schema.Class{Name: "TimeSeriesScope", Module: modCapabilities, Base: "Scope", Abstract: true},
		&schema.Class{Name: "TransformationsScope", Module: modCapabilities, Base: "Scope", Abstract: true},
		&schema.Class{Name: "GroupsScope", Module: modCapabilities, Base: "Scope", Abstract: true},
		subclass(modCapabilities, "DataSetsScope", "AllScope"),
		subclass(modCapabilities, "DataSetsScope", "IDScope", schema.Req("ids", schema.ListOf(schema.Int))),
		subclass(modCapabilities, "TimeSeriesScope", "DataSetScope", schema.Req("ids", schema.ListOf(schema.Int))),
		subclass(modCapabilities, "TimeSeriesScope", "IDScopeLowerCase", schema.Req("ids", schema.ListOf(schema.Int))),
		subclass(modCapabilities, "TransformationsScope", "TransformationsDataSetScope", schema.Req("ids", schema.ListOf(schema.Int))),
		subclass(modCapabilities, "GroupsScope", "CurrentUserScope"),
	)
}
