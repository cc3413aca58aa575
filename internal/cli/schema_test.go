package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/deploykit/internal/testutil"
)

func TestSchemaText(t *testing.T) {
	out, _, err := execute(NewSchemaCommand(&RootOptions{Format: "text"}), "Space")
	require.NoError(t, err)

	testutil.AssertGolden(t, "schema_space", []byte(out))
}

func TestSchemaKindIgnoresCase(t *testing.T) {
	out, _, err := execute(NewSchemaCommand(&RootOptions{Format: "text"}), "space")
	require.NoError(t, err)
	assert.Contains(t, out, "# Space (SpaceApply)")
}

func TestSchemaSnakeCase(t *testing.T) {
	out, _, err := execute(NewSchemaCommand(&RootOptions{Format: "text"}), "Container", "--snake")
	require.NoError(t, err)

	assert.Contains(t, out, "used_for")
	assert.NotContains(t, out, "usedFor")
}

func TestSchemaJSON(t *testing.T) {
	out, _, err := execute(NewSchemaCommand(&RootOptions{Format: "json"}), "Container")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   SchemaResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Container", resp.Data.Kind)
	assert.Equal(t, "ContainerApply", resp.Data.Root)
	assert.True(t, resp.Data.Complete)

	var space *SpecView
	for i := range resp.Data.Parameters {
		if resp.Data.Parameters[i].Path == "space" {
			space = &resp.Data.Parameters[i]
		}
	}
	require.NotNil(t, space)
	assert.Equal(t, []string{"str"}, space.Types)
	assert.True(t, space.Required)
	assert.False(t, space.Nullable)
}

func TestSchemaDefinedKind(t *testing.T) {
	defs := t.TempDir()
	writeFiles(t, defs, map[string]string{"widgets.cue": widgetDefs})

	out, _, err := execute(NewSchemaCommand(&RootOptions{Format: "text"}), "Widget", "--schemas", defs)
	require.NoError(t, err)

	assert.Contains(t, out, "# Widget (WidgetWrite)")
	assert.Contains(t, out, "externalId")
	assert.Contains(t, out, "parts[0].weight")
}

func TestSchemaUnknownKind(t *testing.T) {
	out, _, err := execute(NewSchemaCommand(&RootOptions{Format: "json"}), "Gadget")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeUnknownKind, resp.Error.Code)
}

func TestSchemaBadDefinitions(t *testing.T) {
	defs := t.TempDir()
	writeFiles(t, defs, map[string]string{"bad.cue": "package defs\n\nclass: Bad: {params: {ids: \"set[str]\"}}\n"})

	out, _, err := execute(NewSchemaCommand(&RootOptions{Format: "text"}), "Space", "--schemas", defs)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, ErrCodeLoadFailed)
	assert.Contains(t, out, "class.Bad.params.ids")
	assert.Contains(t, out, "bad.cue")
}
