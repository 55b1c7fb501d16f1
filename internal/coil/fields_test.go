package coil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupField(t *testing.T) {
	f, ok := LookupField("Total Turns")
	require.True(t, ok)
	assert.Equal(t, "total_turns", f.Name)

	f, ok = LookupField("STRAND_DIAMETER")
	require.True(t, ok)
	assert.True(t, f.Linear)

	_, ok = LookupField("colour")
	assert.False(t, ok)
}

func TestField_GetInDisplayUnit(t *testing.T) {
	in := DefaultInputs()

	f, _ := LookupField("inner_diameter")
	assert.InDelta(t, 8.375, f.Get(in, Inch), 1e-12)
	assert.InDelta(t, 212.725, f.Get(in, Millimetre), 1e-9)
	assert.Equal(t, "8.375", f.Format(in, Inch))

	f, _ = LookupField("total_turns")
	assert.Equal(t, "180", f.Format(in, Inch))

	f, _ = LookupField("horiz_pack_factor")
	assert.Equal(t, 0.86, f.Get(in, Inch))
}

func TestField_Set(t *testing.T) {
	in := DefaultInputs()

	f, _ := LookupField("bobbin_length")
	out, err := f.Set(in, " 0.6 ", Inch)
	require.NoError(t, err)
	assert.InDelta(t, 15.24, out.BobbinLength, 1e-12)
	assert.InDelta(t, 13.8684, in.BobbinLength, 1e-12, "inputs are values")

	f, _ = LookupField("turns_per_layer")
	out, err = f.Set(in, "7", Millimetre)
	require.NoError(t, err)
	assert.Equal(t, 7, out.TurnsPerLayer)

	_, err = f.Set(in, "7.5", Millimetre)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.Set(in, "seven", Millimetre)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Accepted by the form, rejected by the calculator
	out, err = f.Set(in, "0", Millimetre)
	require.NoError(t, err)
	_, err = Compute(out)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
