package ty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashConsingCollapsesEqualData(t *testing.T) {
	d := NewDb()
	a := d.Ptr(Int)
	b := d.Ptr(Int)
	assert.Equal(t, a, b)
}

func TestDistinctDataGetsDistinctTy(t *testing.T) {
	d := NewDb()
	assert.NotEqual(t, d.Ptr(Int), d.Ptr(Bool))
}

func TestPrimordialHandlesArePreregistered(t *testing.T) {
	d := NewDb()
	assert.Equal(t, Data{Kind: KInt}, d.Get(Int))
	assert.Equal(t, Data{Kind: KError}, d.Get(Error))
}

func TestUnifyTopWithAnything(t *testing.T) {
	d := NewDb()
	got, ok := d.Unify(Top, Int)
	assert.True(t, ok)
	assert.Equal(t, Int, got)

	got, ok = d.Unify(Int, Top)
	assert.True(t, ok)
	assert.Equal(t, Int, got)
}

func TestUnifyErrorAbsorbs(t *testing.T) {
	d := NewDb()
	got, ok := d.Unify(Error, Int)
	assert.True(t, ok)
	assert.Equal(t, Error, got)
}

func TestUnifyStructuralPtr(t *testing.T) {
	d := NewDb()
	a := d.Ptr(Top)
	b := d.Ptr(Int)
	got, ok := d.Unify(a, b)
	assert.True(t, ok)
	assert.Equal(t, Int, d.Get(got).Inner)
}

func TestUnifyMismatchFails(t *testing.T) {
	d := NewDb()
	_, ok := d.Unify(Int, Bool)
	assert.False(t, ok)
}

func TestStructNamesAreGloballyInterned(t *testing.T) {
	d := NewDb()
	assert.Equal(t, d.Struct("point"), d.Struct("point"))
	assert.NotEqual(t, d.Struct("point"), d.Struct("line"))
}

func TestIsSmallRejectsVoid(t *testing.T) {
	d := NewDb()
	assert.False(t, d.IsSmall(Void))
	assert.True(t, d.IsSmall(Int))
}
