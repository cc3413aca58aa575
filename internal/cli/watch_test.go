package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntilModifiedCancelsOnWrite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data_models"), 0755))

	ctx, cancel, err := UntilModified(context.Background(), dir)
	require.NoError(t, err)
	defer cancel()

	target := filepath.Join(dir, "data_models", "core.Space.yaml")
	require.NoError(t, os.WriteFile(target, []byte("space: sp\n"), 0644))

	select {
	case <-ctx.Done():
		assert.Contains(t, context.Cause(ctx).Error(), "core.Space.yaml")
	case <-time.After(5 * time.Second):
		t.Fatal("context was not canceled after a write")
	}
}

func TestUntilModifiedStopsWithParent(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())

	ctx, cancel, err := UntilModified(parent, t.TempDir())
	require.NoError(t, err)
	defer cancel()

	stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context outlived its parent")
	}
}

func TestUntilModifiedMissingDir(t *testing.T) {
	ctx, cancel, err := UntilModified(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Nil(t, ctx)
	assert.Nil(t, cancel)
}
