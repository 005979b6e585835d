package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexTable(starts, lengths []float64) Table {
	t := Table{Units: UnitsIndex}
	for i := range starts {
		t.Events = append(t.Events, Event{Start: starts[i], Length: lengths[i]})
	}
	return t
}

func TestToTimeFormula(t *testing.T) {
	in := indexTable([]float64{0, 8, 20}, []float64{8, 12, 4})
	got, err := ToTime(in, 4000, 2000)
	require.NoError(t, err)
	assert.Equal(t, UnitsTime, got.Units)
	assert.InDelta(t, 0.5, got.Events[0].Start, 1e-12)
	assert.InDelta(t, 0.502, got.Events[1].Start, 1e-12)
	assert.InDelta(t, 0.003, got.Events[1].Length, 1e-12)
	// input untouched
	assert.Equal(t, 8.0, in.Events[1].Start)
	assert.Equal(t, UnitsIndex, in.Units)
}

func TestRoundTripIndexTimeIndex(t *testing.T) {
	in := indexTable([]float64{0, 5, 12, 13, 400}, []float64{5, 7, 1, 387, 9})
	for _, freq := range []float64{3012, 4000, -4000} {
		for _, start := range []float64{1, 123456, 98765432} {
			tm, err := ToTime(in, freq, start)
			require.NoError(t, err)
			back, err := ToIndex(tm, freq, start)
			require.NoError(t, err)
			assert.Equal(t, in, back, "freq=%v start=%v", freq, start)
		}
	}
}

func TestConversionPreconditions(t *testing.T) {
	idx := indexTable([]float64{0}, []float64{1})
	tm := Table{Units: UnitsTime, Events: idx.Events}

	cases := []struct {
		name string
		fn   func() error
	}{
		{"zero freq", func() error { _, err := ToTime(idx, 0, 10); return err }},
		{"zero start", func() error { _, err := ToTime(idx, 4000, 0); return err }},
		{"time table to time", func() error { _, err := ToTime(tm, 4000, 10); return err }},
		{"index table to index", func() error { _, err := ToIndex(idx, 4000, 10); return err }},
		{"zero freq inverse", func() error { _, err := ToIndex(tm, 0, 10); return err }},
	}
	for _, c := range cases {
		err := c.fn()
		require.Error(t, err, c.name)
		assert.True(t, errors.Is(err, ErrValidation), c.name)
		var ve *ValidationError
		assert.True(t, errors.As(err, &ve), c.name)
	}
}

func TestIsContiguous(t *testing.T) {
	assert.True(t, IsContiguous(Table{}))
	assert.True(t, IsContiguous(indexTable([]float64{3}, []float64{9})))
	assert.True(t, IsContiguous(indexTable([]float64{0, 5, 9}, []float64{5, 4, 1})))

	gap := indexTable([]float64{0, 6, 9}, []float64{5, 3, 1})
	assert.False(t, IsContiguous(gap))
	err := CheckContiguous(gap)
	var ce *ContiguityError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 0, ce.Index)
	assert.Equal(t, 5.0, ce.End)
	assert.Equal(t, 6.0, ce.NextStart)

	overlap := indexTable([]float64{0, 5, 8}, []float64{5, 4, 1})
	assert.False(t, IsContiguous(overlap))
}

func TestIsContiguousTimeUnitsTolerance(t *testing.T) {
	tab := Table{Units: UnitsTime, Events: []Event{
		{Start: 0.1, Length: 0.2},
		{Start: 0.3, Length: 0.1}, // 0.1+0.2 = 0.30000000000000004
	}}
	assert.True(t, IsContiguous(tab))

	tab.Events[1].Start = 0.3001
	assert.False(t, IsContiguous(tab))
}

func TestIsContiguousIndexUnitsExact(t *testing.T) {
	tab := indexTable([]float64{0, 5.00000001}, []float64{5, 4})
	assert.False(t, IsContiguous(tab))
	tab.Events[1].Start = 5
	assert.True(t, IsContiguous(tab))
}

func TestIsHomopolymer(t *testing.T) {
	assert.True(t, IsHomopolymer("AAAAA"))
	assert.True(t, IsHomopolymer("T"))
	assert.False(t, IsHomopolymer("AAAAT"))
	assert.False(t, IsHomopolymer(""))
}

func TestParseUnits(t *testing.T) {
	u, err := ParseUnits("INDEX")
	require.NoError(t, err)
	assert.Equal(t, UnitsIndex, u)
	u, err = ParseUnits("time")
	require.NoError(t, err)
	assert.Equal(t, UnitsTime, u)
	_, err = ParseUnits("samples")
	assert.Error(t, err)
}
