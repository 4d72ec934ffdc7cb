package roller_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fldr/bitsource"
	"github.com/katalvlaran/fldr/roller"
)

// TestFromTables_RoundTrip rebuilds rollers from their own tables and
// expects identical sampling behavior.
func TestFromTables_RoundTrip(t *testing.T) {
	for _, weights := range [][]int{{1, 2, 3}, {5}, {0, 4, 0}, goldenWeights()} {
		orig, err := roller.New(weights)
		require.NoError(t, err)

		back, err := roller.FromTables(orig.Tables())
		require.NoError(t, err, "weights %v", weights)
		assert.Equal(t, orig.Tables(), back.Tables())
		assert.Equal(t, orig.String(), back.String())

		a := make([]int, 64)
		b := make([]int, 64)
		require.NoError(t, orig.SampleN(bitsource.NewBuffer(bitsource.NewLCG(3)), a))
		require.NoError(t, back.SampleN(bitsource.NewBuffer(bitsource.NewLCG(3)), b))
		assert.Equal(t, a, b)
	}
}

// TestFromTables_Corrupt damages valid tables one invariant at a time.
func TestFromTables_Corrupt(t *testing.T) {
	base, err := roller.New([]int{1, 2, 3})
	require.NoError(t, err)
	// k=3, h=[0,3,2], rows: [u 1 0] [u 2 2] [u 3 u] [u u u]

	cases := []struct {
		name   string
		mutate func(*roller.Tables)
	}{
		{"no outcomes", func(tb *roller.Tables) { tb.N = 0 }},
		{"sole out of range", func(tb *roller.Tables) { tb.Sole = 9 }},
		{"zero total", func(tb *roller.Tables) { tb.Total = 0 }},
		{"wrong depth", func(tb *roller.Tables) { tb.Total = 9 }},
		{"short H", func(tb *roller.Tables) { tb.Slots = tb.Slots[:len(tb.Slots)-1] }},
		{"level count too large", func(tb *roller.Tables) { tb.Levels[1] = 5 }},
		{"level count negative", func(tb *roller.Tables) { tb.Levels[0] = -1 }},
		{"garbage below h", func(tb *roller.Tables) { tb.Slots[0*3+1] = 17 }},
		{"filled beyond h", func(tb *roller.Tables) { tb.Slots[3*3+2] = 1 }},
		{"duplicate in level", func(tb *roller.Tables) { tb.Slots[1*3+1] = 1 }},
		{"weights do not sum", func(tb *roller.Tables) {
			tb.Levels[2] = 1
			tb.Slots[1*3+2] = roller.Unused
		}},
		{"reject moved", func(tb *roller.Tables) { tb.Slots[2*3+1] = 0 }},
		{"sole on multi", func(tb *roller.Tables) { tb.Sole = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tb := base.Tables()
			tc.mutate(&tb)
			r, err := roller.FromTables(tb)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, roller.ErrCorruptTables)
		})
	}

	// the base itself is sound
	_, err = roller.FromTables(base.Tables())
	require.NoError(t, err)
}

// TestFromTables_SoleMismatch rejects a sole marker that disagrees with the
// weights encoded in the tables.
func TestFromTables_SoleMismatch(t *testing.T) {
	r, err := roller.New([]int{0, 3, 0})
	require.NoError(t, err)

	tb := r.Tables()
	require.Equal(t, 1, tb.Sole)
	tb.Sole = 2
	_, err = roller.FromTables(tb)
	assert.ErrorIs(t, err, roller.ErrCorruptTables)

	tb.Sole = -1
	_, err = roller.FromTables(tb)
	assert.ErrorIs(t, err, roller.ErrCorruptTables)
}

// TestFromTables_HostileSizes rejects sizes that would overflow or force
// huge allocations, without panicking.
func TestFromTables_HostileSizes(t *testing.T) {
	cases := map[string]roller.Tables{
		"max n, no levels":   {N: math.MaxInt, Total: 1, Sole: 0},
		"slot count wraps":   {N: 1<<62 - 1, Total: 9, Sole: -1, Levels: []int{1, 0, 0, 1}},
		"n beyond slots":     {N: 1 << 30, Total: 6, Sole: -1, Levels: []int{0, 3, 2}, Slots: make([]int, 12)},
		"too many levels":    {N: 3, Total: 6, Sole: -1, Levels: make([]int, 65), Slots: make([]int, 4*65)},
		"unit total no sole": {N: 4, Total: 1, Sole: -1},
		"unit total slots":   {N: 1, Total: 1, Sole: 0, Slots: []int{0}},
	}
	for name, tb := range cases {
		t.Run(name, func(t *testing.T) {
			var (
				r   *roller.Roller
				err error
			)
			require.NotPanics(t, func() { r, err = roller.FromTables(tb) })
			assert.Nil(t, r)
			assert.ErrorIs(t, err, roller.ErrCorruptTables)
		})
	}
}

// TestFromTables_UnitTotal restores a distribution whose only weight is 1
// without touching per-outcome state.
func TestFromTables_UnitTotal(t *testing.T) {
	r, err := roller.FromTables(roller.Tables{N: 1 << 30, Total: 1, Sole: 7})
	require.NoError(t, err)
	assert.Equal(t, 1<<30, r.N())
	assert.Equal(t, 0, r.Depth())

	z, err := r.Sample(nil)
	require.NoError(t, err)
	assert.Equal(t, 7, z)
}
