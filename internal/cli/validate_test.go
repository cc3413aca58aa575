package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/deploykit/internal/catalog"
	"github.com/roach88/deploykit/internal/store"
	"github.com/roach88/deploykit/internal/testutil"
	"github.com/roach88/deploykit/internal/validate"
)

func TestValidatorValidateDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, projectFiles)

	result, err := NewValidator(catalog.Default()).ValidateDir(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Files)
	assert.Equal(t, []string{"notes.yaml"}, result.Skipped)

	var codes []string
	for _, w := range result.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []string{
		validate.WarnTemplateVariable,
		validate.WarnDataSetMissing,
		validate.WarnCaseTypo,
		validate.WarnUnusedParameter,
	}, codes)

	tmpl := result.Warnings[0]
	assert.Equal(t, "config.dev.yaml", tmpl.File)
	assert.Equal(t, "environment", tmpl.Section)
	assert.Equal(t, "project", tmpl.Key)

	typo := result.Warnings[2]
	assert.Equal(t, "timeseries/pump.TimeSeries.yaml", typo.File)
	assert.Equal(t, 2, typo.Element)
	assert.Equal(t, "externalID", typo.Key)
	assert.Equal(t, "externalId", typo.Expected)

	unused := result.Warnings[3]
	assert.Equal(t, "unitz", unused.Key)
}

func TestValidatorDataSetExternalIDIsNotUnused(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"timeseries/ok.TimeSeries.yaml": "externalId: ts_1\ndataSetExternalId: ds_core\n",
	})

	result, err := NewValidator(catalog.Default()).ValidateDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestValidatorMultiDocumentFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"data_models/spaces.Space.yaml": "space: sp_a\n---\nspace: sp_b\ncolour: red\n---\n",
	})

	result, err := NewValidator(catalog.Default()).ValidateDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "colour", result.Warnings[0].Key)
}

func TestValidatorInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"data_models/bad.Space.yaml": "space: [unclosed\n"})

	_, err := NewValidator(catalog.Default()).ValidateDir(context.Background(), dir)
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeParseFailed, loadErr.Code)
	assert.Contains(t, loadErr.Message, "data_models/bad.Space.yaml")
}

func TestValidateCommandText(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, projectFiles)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	assert.Contains(t, out, "✗ 4 warning(s) in 2 of 4 file(s)")
	assert.Contains(t, out, "timeseries/pump.TimeSeries.yaml\n")
	assert.Contains(t, out, `[W201] CaseTypoWarning: Got "externalID". Did you mean "externalId"? in entry 2`)
	assert.Contains(t, out, `[W205] TemplateVariableWarning: Variable "project" has value "<my-project>"`)
}

func TestValidateCommandClean(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"data_models/core.Space.yaml":      projectFiles["data_models/core.Space.yaml"],
		"data_models/asset.Container.yaml": projectFiles["data_models/asset.Container.yaml"],
	})

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Equal(t, "✓ 2 file(s) valid\n", out)
}

func TestValidateCommandJSON(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, projectFiles)

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string         `json:"status"`
		Data   ValidateResult `json:"data"`
		Error  *CLIError      `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, validate.WarnTemplateVariable, resp.Error.Code)
	assert.Equal(t, "4 warning(s) found", resp.Error.Message)
	require.NotNil(t, resp.Error.Summary)
	assert.Equal(t, 4, resp.Error.Summary.Total)
	assert.Equal(t, 4, resp.Data.Files)
	assert.Len(t, resp.Data.Warnings, 4)
}

func TestValidateCommandMissingDir(t *testing.T) {
	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]")
}

func TestValidateCommandWithDefinitions(t *testing.T) {
	defs := t.TempDir()
	writeFiles(t, defs, map[string]string{"widgets.cue": widgetDefs})

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"widgets/a.Widget.yaml": `
externalId: w1
label: Main
color: RED
parts:
  - name: bolt
    wieght: 2.5
`,
	})

	out, _, err := execute(NewValidateCommand(&RootOptions{Format: "text"}), dir, "--schemas", defs)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ 1 warning(s) in 1 of 1 file(s)")
	assert.Contains(t, out, `Parameter "wieght" is not used in section "parts.0".`)
}

func TestValidateCommandRecordsRun(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, projectFiles)
	db := filepath.Join(t.TempDir(), "ledger.db")

	opts := &ValidateOptions{RootOptions: &RootOptions{Format: "text"}}
	opts.LedgerOptions = []store.Option{
		store.WithIDGenerator(testutil.NewSequentialIDs("run")),
		store.WithClock(testutil.NewDeterministicClock()),
	}
	cmd := NewValidateCommand(opts.RootOptions)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts.Record = db
		return runValidate(opts, args[0], cmd)
	}

	out, _, err := execute(cmd, dir)
	require.Error(t, err)
	assert.Contains(t, out, "Recorded run run-0001")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	run, err := st.GetRun(context.Background(), "run-0001")
	require.NoError(t, err)
	assert.Equal(t, dir, run.Dir)
	assert.Equal(t, 4, run.Files)
	assert.Equal(t, 4, run.Warnings)
	assert.Equal(t, testutil.Epoch, run.StartedAt)

	warnings, err := st.RunWarnings(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Len(t, warnings, 4)
}
