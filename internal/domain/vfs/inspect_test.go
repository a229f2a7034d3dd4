package vfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectFile(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Create("/notes.txt", "plain old text, nothing fancy here at all"))

	info, err := fs.Inspect("/notes.txt")
	require.NoError(t, err)

	assert.Equal(t, KindFile, info.Kind)
	assert.Equal(t, 41, info.Size)
	assert.True(t, strings.HasPrefix(info.MIMEType, "text/plain"), info.MIMEType)
	assert.NotEmpty(t, info.Charset)
}

func TestInspectJSONFile(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Create("/p.json", `{"points": 3}`))

	info, err := fs.Inspect("/p.json")
	require.NoError(t, err)
	assert.Equal(t, "application/json", info.MIMEType)
}

func TestInspectEmptyFile(t *testing.T) {
	fs := New()
	require.NoError(t, fs.Create("/empty", ""))

	info, err := fs.Inspect("/empty")
	require.NoError(t, err)
	assert.Equal(t, 0, info.Size)
	assert.Empty(t, info.Charset)
}

func TestInspectDirectory(t *testing.T) {
	fs := New()
	require.NoError(t, Bootstrap(fs))

	info, err := fs.Inspect("/system")
	require.NoError(t, err)
	assert.Equal(t, KindDirectory, info.Kind)
	assert.Equal(t, 3, info.Children)
	assert.Empty(t, info.MIMEType)

	_, err = fs.Inspect("/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
