package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// writeFiles creates files under dir, making parent directories as needed.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// execute runs cmd with args and returns stdout, stderr and the error.
func execute(cmd *cobra.Command, args ...string) (string, string, error) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// projectFiles is a small deployment module: two clean resources, one
// config file with an unfilled variable, a time series file with three
// findings and a file of no known kind.
var projectFiles = map[string]string{
	"config.dev.yaml": `
environment:
  name: dev
  project: <my-project>
variables:
  cdf_cluster: westeurope-1
`,
	"data_models/core.Space.yaml": `
space: sp_core
name: Core
`,
	"data_models/asset.Container.yaml": `
space: sp_core
externalId: Asset
usedFor: node
properties:
  name:
    type:
      type: text
      list: false
    nullable: false
`,
	"timeseries/pump.TimeSeries.yaml": `
- externalId: pump_pressure
  name: Pump pressure
  isStep: false
  dataSetExternalId: ds_pumps
- externalID: pump_flow
  unitz: m3/h
`,
	"notes.yaml": "title: not a resource\n",
}

const widgetDefs = `package defs

module: "acme.things": imports: {Label: "str"}

class: WidgetWrite: {
	module: "acme.things"
	params: {
		external_id: "str"
		label:       "Label"
		color:       "Color"
		tags: {type: "list[str] | None", default: null}
		parts: "list[PartWrite] | None"
	}
	enums: Color: ["RED", "GREEN"]
}

class: PartWrite: {
	module: "acme.things"
	params: {
		name: "str"
		weight: {type: "float", optional: true}
	}
}

kind: Widget: {root: "WidgetWrite", folder: "widgets"}
`
