package pure_test

import (
	"testing"

	"github.com/on-the-ground/viewstate/pure"
	"github.com/stretchr/testify/assert"
)

func TestTableizeI4O1(t *testing.T) {
	count := 0
	fn := pure.TableizeI4O1(func(size, variant string, fullWidth, inactive bool) string {
		count++
		out := size + " " + variant
		if fullWidth {
			out += " full"
		}
		if inactive {
			out += " inactive"
		}
		return out
	}, 8)

	assert.Equal(t, "md primary full", fn("md", "primary", true, false))
	assert.Equal(t, "md primary full", fn("md", "primary", true, false))
	assert.Equal(t, "md primary inactive", fn("md", "primary", false, true))
	assert.Equal(t, 2, count)
}

func TestTable_RotatesGenerations(t *testing.T) {
	table := pure.NewTable[string, int](2)

	table.Store("a", 1)
	table.Store("b", 2)
	table.Store("c", 3) // head {a,b} becomes tail
	assert.Equal(t, 3, table.Len())

	v, ok := table.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	table.Store("d", 4) // head {c,a} becomes tail, {b} is dropped
	table.Store("e", 5)
	_, ok = table.Load("b")
	assert.False(t, ok)

	v, ok = table.Load("e")
	assert.True(t, ok)
	assert.Equal(t, 5, v)
}

func TestTable_OverwriteDoesNotRotate(t *testing.T) {
	table := pure.NewTable[string, string](1)

	table.Store("k", "v1")
	table.Store("k", "v2")
	v, ok := table.Load("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, table.Len())
}

func TestNewTable_ZeroSizePanics(t *testing.T) {
	assert.Panics(t, func() { pure.NewTable[int, int](0) })
}
