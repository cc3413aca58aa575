package catalog

import "github.com/roach88/deploykit/internal/schema"

const (
	modDataSets            = "cognite.client.data_classes.data_sets"
	modTimeSeries          = "cognite.client.data_classes.time_series"
	modExtractionPipelines = "cognite.client.data_classes.extractionpipelines"
	modFunctions           = "cognite.client.data_classes.functions"
)

func registerDataSets(reg *schema.Registry) {
	reg.MustRegister(class(modDataSets, "DataSetWrite",
		schema.Opt("external_id", optStr),
		schema.Opt("name", optStr),
		schema.Opt("description", optStr),
		schema.Opt("metadata", optStrMap),
		schema.Opt("write_protected", schema.Bool),
	))
}

func registerTimeSeries(reg *schema.Registry) {
	reg.MustRegister(class(modTimeSeries, "TimeSeriesWrite",
		schema.Opt("external_id", optStr),
		schema.Opt("instance_id", schema.Optional(schema.RefTo("NodeId"))),
		schema.Opt("name", optStr),
		schema.Opt("is_string", optBool),
		schema.Opt("metadata", optStrMap),
		schema.Opt("unit", optStr),
		schema.Opt("unit_external_id", optStr),
		schema.Opt("asset_id", optInt),
		schema.Opt("is_step", optBool),
		schema.Opt("description", optStr),
		schema.Opt("security_categories", schema.Optional(schema.ListOf(schema.Int))),
		schema.Opt("data_set_id", optInt),
		schema.Opt("legacy_name", optStr),
	))
	reg.MustRegister(class(modIDs, "NodeId",
		schema.Req("space", schema.Str),
		schema.Req("external_id", schema.Str),
	))
}

func registerExtractionPipelines(reg *schema.Registry) {
	reg.MustRegister(
		class(modExtractionPipelines, "ExtractionPipelineWrite",
			schema.Req("external_id", schema.Str),
			schema.Req("name", schema.Str),
			schema.Req("data_set_id", schema.Int),
			schema.Opt("description", optStr),
			schema.Opt("raw_tables", schema.Optional(schema.ListOf(schema.RefTo("ExtractionPipelineRawTable")))),
			schema.Opt("schedule", optStr),
			schema.Opt("contacts", schema.Optional(schema.ListOf(schema.RefTo("ExtractionPipelineContact")))),
			schema.Opt("metadata", optStrMap),
			schema.Opt("source", optStr),
			schema.Opt("documentation", optStr),
			schema.Opt("notification_config", schema.Optional(schema.RefTo("ExtractionPipelineNotificationConfiguration"))),
			schema.Opt("created_by", optStr),
		),
		class(modExtractionPipelines, "ExtractionPipelineRawTable",
			schema.Req("db_name", schema.Str),
			schema.Req("table_name", schema.Str),
		),
		class(modExtractionPipelines, "ExtractionPipelineContact",
			schema.Opt("name", optStr),
			schema.Opt("email", optStr),
			schema.Opt("role", optStr),
			schema.Opt("send_notification", optBool),
		),
		class(modExtractionPipelines, "ExtractionPipelineNotificationConfiguration",
			schema.Opt("allowed_not_seen_range_in_minutes", optInt),
		),
	)
}

func registerFunctions(reg *schema.Registry) {
	reg.MustRegister(class(modFunctions, "FunctionWrite",
		schema.Req("name", schema.Str),
		schema.Opt("external_id", optStr),
		schema.Opt("description", optStr),
		schema.Opt("owner", optStr),
		schema.Opt("file_id", optInt),
		schema.Opt("function_path", schema.Str),
		schema.Opt("secrets", optStrMap),
		schema.Opt("env_vars", optStrMap),
		schema.Opt("cpu", optFloat),
		schema.Opt("memory", optFloat),
		schema.Opt("runtime", optStr),
		schema.Opt("metadata", optStrMap),
		schema.Opt("index_url", optStr),
		schema.Opt("extra_index_urls", optStrList),
	))
}
