// Package cuedef loads text-described resource schemas from CUE files.
//
// A definition directory declares modules and classes whose constructor
// parameters are annotation texts, the same texts the hints resolver binds
// for deferred classes:
//
//	module: "acme.things": imports: {Label: "str"}
//	class: WidgetWrite: {
//		module: "acme.things"
//		params: {
//			external_id: "str"
//			label:       "Label"
//			tags: {type: "list[str] | None", default: null}
//		}
//		enums: Color: ["RED", "GREEN"]
//	}
//
// Compiled classes are registered into a schema.Registry alongside the
// built-in catalog. A kind block exposes a root class as a resource kind:
//
//	kind: Widget: {root: "WidgetWrite", data_set_linked: true}
package cuedef
