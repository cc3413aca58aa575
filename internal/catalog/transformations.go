package catalog

import "github.com/roach88/deploykit/internal/schema"

const modTransformations = "cognite.client.data_classes.transformations"

// Transformation classes are declared with annotation text, the way a
// runtime that defers annotation evaluation stores them.
func registerTransformations(reg *schema.Registry) {
	reg.MustRegister(
		class(modTransformations, "TransformationWrite",
			schema.ReqText("external_id", "str"),
			schema.ReqText("name", "str"),
			schema.ReqText("ignore_null_fields", "bool"),
			schema.OptText("query", "str | None"),
			schema.OptText("destination", "TransformationDestination | None"),
			schema.OptText("conflict_mode", `Literal["abort", "delete", "update", "upsert"] | None`),
			schema.OptText("is_public", "bool"),
			schema.OptText("source_oidc_credentials", "OidcCredentials | None"),
			schema.OptText("destination_oidc_credentials", "OidcCredentials | None"),
			schema.OptText("data_set_id", "int | None"),
			schema.OptText("tags", "list[str] | None"),
		),
		class(modTransformations, "TransformationDestination",
			schema.ReqText("type", "str"),
			schema.OptText("data_model", "DataModelInfo | None"),
			schema.OptText("view", "ViewInfo | None"),
			schema.OptText("instance_space", "str | None"),
		),
		class(modTransformations, "DataModelInfo",
			schema.ReqText("space", "str"),
			schema.ReqText("external_id", "str"),
			schema.ReqText("version", "str"),
			schema.ReqText("destination_type", "str"),
			schema.OptText("destination_relationship_from_type", "str | None"),
		),
		class(modTransformations, "ViewInfo",
			schema.ReqText("space", "str"),
			schema.ReqText("external_id", "str"),
			schema.ReqText("version", "str"),
		),
		class(modTransformations, "OidcCredentials",
			schema.ReqText("client_id", "str"),
			schema.ReqText("client_secret", "str"),
			schema.OptText("scopes", "str | list[str] | None"),
			schema.ReqText("token_uri", "str"),
			schema.ReqText("cdf_project_name", "str"),
			schema.OptText("audience", "str | None"),
		),
	)
}
