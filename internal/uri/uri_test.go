package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertGetRoundTrip(t *testing.T) {
	tbl := NewTable()
	id, err := tbl.Insert("file:///a.c0")
	require.NoError(t, err)
	assert.Equal(t, Source, id.Kind())
	assert.Equal(t, "file:///a.c0", tbl.Get(id))

	id2, err := tbl.Insert("file:///a.c0")
	require.NoError(t, err)
	assert.Equal(t, id, id2, "inserting twice returns the same id")
}

func TestKindFromExtension(t *testing.T) {
	headerID, err := NewTable().Insert("file:///lib.h0")
	require.NoError(t, err)
	assert.Equal(t, Header, headerID.Kind())
}

func TestBadExtensionRejected(t *testing.T) {
	_, err := NewTable().Insert("file:///notes.txt")
	assert.Error(t, err)
}

func TestIDsFromDifferentKindsDoNotCollide(t *testing.T) {
	tbl := NewTable()
	srcID, err := tbl.Insert("file:///a.c0")
	require.NoError(t, err)
	hdrID, err := tbl.Insert("file:///a.h0")
	require.NoError(t, err)
	assert.NotEqual(t, srcID, hdrID)
}

func TestIterReturnsEveryInsertedID(t *testing.T) {
	tbl := NewTable()
	want := []string{"file:///a.c0", "file:///b.h0", "file:///c.c0"}
	for _, u := range want {
		_, err := tbl.Insert(u)
		require.NoError(t, err)
	}
	assert.Equal(t, len(want), tbl.Len())
	assert.Len(t, tbl.Iter(), len(want))
}
