package upload

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

func TestLocalImageStore_Save(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("party.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalImageStore_RejectsNonImage(t *testing.T) {
	store, err := NewLocalImageStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save("evil.sh", "application/x-sh", strings.NewReader("#!/bin/sh"))
	assert.Empty(t, path)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLocalImageStore_StripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalImageStore(dir)
	require.NoError(t, err)

	path, err := store.Save("../../escape.png", "image/png", strings.NewReader("x"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir), "stored path %q must stay inside %q", path, dir)
}
