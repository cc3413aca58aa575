package params

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/deploykit/internal/testutil"
)

func TestRenderGolden(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *testing.T) *SpecSet
	}{
		{"container", func(t *testing.T) *SpecSet {
			return mustBuild(t, testutil.ContainerRegistry(), "Container")
		}},
		{"report_camel", func(t *testing.T) *SpecSet {
			return mustBuild(t, testutil.DeferredRegistry(), "Report").AsCamelCase()
		}},
		{"orphan_incomplete", func(t *testing.T) *SpecSet {
			return mustBuild(t, testutil.DeferredRegistry(), "Orphan")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.build(t)))
			testutil.AssertGolden(t, tt.name, buf.Bytes())
		})
	}
}
