package uses

import (
	"testing"

	"github.com/azdavis/c0ls/internal/uri"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLib(t *testing.T) {
	tbl := uri.NewTable()
	id, err := tbl.Insert("file:///a.c0")
	require.NoError(t, err)
	res := Get(tbl, id, []Raw{{Path: "string", Kind: LibKind}})
	require.Empty(t, res.Errors)
	require.Len(t, res.Uses, 1)
	assert.True(t, res.Uses[0].IsLib)
}

func TestResolveUnknownLib(t *testing.T) {
	tbl := uri.NewTable()
	id, err := tbl.Insert("file:///a.c0")
	require.NoError(t, err)
	res := Get(tbl, id, []Raw{{Path: "nope", Kind: LibKind}})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, NoSuchLib, res.Errors[0].Kind)
}

func TestResolveLocalSiblingFile(t *testing.T) {
	tbl := uri.NewTable()
	id, err := tbl.Insert("file:///proj/a.c0")
	require.NoError(t, err)
	_, err = tbl.Insert("file:///proj/b.h0")
	require.NoError(t, err)
	res := Get(tbl, id, []Raw{{Path: "b.h0", Kind: Local}})
	require.Empty(t, res.Errors)
	require.Len(t, res.Uses, 1)
	assert.False(t, res.Uses[0].IsLib)
}

func TestResolveLocalParentDir(t *testing.T) {
	tbl := uri.NewTable()
	id, err := tbl.Insert("file:///proj/sub/a.c0")
	require.NoError(t, err)
	_, err = tbl.Insert("file:///proj/b.h0")
	require.NoError(t, err)
	res := Get(tbl, id, []Raw{{Path: "../b.h0", Kind: Local}})
	require.Empty(t, res.Errors)
	require.Len(t, res.Uses, 1)
}

func TestResolveLocalMissingFile(t *testing.T) {
	tbl := uri.NewTable()
	id, err := tbl.Insert("file:///proj/a.c0")
	require.NoError(t, err)
	res := Get(tbl, id, []Raw{{Path: "missing.h0", Kind: Local}})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, NoSuchPath, res.Errors[0].Kind)
}

func TestResolveLocalAbsolutePathRejected(t *testing.T) {
	tbl := uri.NewTable()
	id, err := tbl.Insert("file:///proj/a.c0")
	require.NoError(t, err)
	res := Get(tbl, id, []Raw{{Path: "/etc/passwd", Kind: Local}})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, AbsolutePath, res.Errors[0].Kind)
}
