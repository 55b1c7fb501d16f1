package coil

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_ReferenceDesign(t *testing.T) {
	res, err := Compute(DefaultInputs())
	require.NoError(t, err)

	assert.InDelta(t, 12.3684, res.WindowWidth, 1e-9)
	assert.InDelta(t, 25.8685, res.WindowHeight, 1e-9)
	assert.InDelta(t, 0.9244584, res.EffectiveDiameter, 1e-9)
	assert.InDelta(t, 0.4622292, res.StrandRadius, 1e-9)
	assert.InDelta(t, 2.385102672, res.SpacingX, 1e-9)
	assert.InDelta(t, 0.711832968, res.SpacingY, 1e-9)

	assert.Equal(t, 36, res.Layers)
	assert.Equal(t, 36, res.LayersUsed)
	assert.Equal(t, 540, res.RequestedStrands)
	assert.Equal(t, 540, res.PlacedStrands)
	assert.Len(t, res.Strands, 540)
	assert.Equal(t, 180, res.AdjustedTurns)
	assert.False(t, res.HasShortfall())
	assert.NoError(t, res.Err())

	assert.InDelta(t, 113.2853, res.FillFactor, 1e-3)
}

func TestCompute_StrandOrder(t *testing.T) {
	res, err := Compute(DefaultInputs())
	require.NoError(t, err)

	r := res.StrandRadius
	first := res.Strands[0]
	assert.InDelta(t, 0.75+r, first.X, 1e-9)
	assert.InDelta(t, 0.75+r, first.Y, 1e-9)
	assert.Equal(t, 0, first.Layer)
	assert.Equal(t, 0, first.Turn)

	// Strands of one bundle sit side by side at the effective diameter
	assert.InDelta(t, first.X+res.EffectiveDiameter, res.Strands[1].X, 1e-9)
	assert.Equal(t, 0, res.Strands[2].Turn)

	// Next bundle starts one bundle pitch to the right
	assert.InDelta(t, first.X+res.SpacingX, res.Strands[3].X, 1e-9)
	assert.Equal(t, 1, res.Strands[3].Turn)

	// Sixth bundle opens the second layer
	second := res.Strands[15]
	assert.Equal(t, 1, second.Layer)
	assert.Equal(t, 5, second.Turn)
	assert.InDelta(t, first.X, second.X, 1e-9)
	assert.InDelta(t, first.Y+res.SpacingY, second.Y, 1e-9)
}

func TestCompute_StrandsStayInsideWindow(t *testing.T) {
	in := DefaultInputs()
	in.TotalTurns = 1000

	res, err := Compute(in)
	require.NoError(t, err)

	left, bottom := in.Margin, in.Margin
	right, top := in.Margin+res.WindowWidth, in.Margin+res.WindowHeight
	for i, s := range res.Strands {
		assert.GreaterOrEqual(t, s.X-res.StrandRadius, left-1e-9, "strand %d", i)
		assert.LessOrEqual(t, s.X+res.StrandRadius, right+1e-9, "strand %d", i)
		assert.GreaterOrEqual(t, s.Y-res.StrandRadius, bottom-1e-9, "strand %d", i)
		assert.LessOrEqual(t, s.Y+res.StrandRadius, top+1e-9, "strand %d", i)
	}
}

func TestCompute_CoverageShortfall(t *testing.T) {
	in := DefaultInputs()
	in.TotalTurns = 1000

	res, err := Compute(in)
	require.NoError(t, err, "a shortfall is not an invalid configuration")

	assert.Equal(t, 3000, res.RequestedStrands)
	assert.Less(t, res.PlacedStrands, res.RequestedStrands)
	assert.True(t, res.HasShortfall())
	assert.Equal(t, res.RequestedStrands-res.PlacedStrands, res.Unplaced())
	assert.Equal(t, res.PlacedStrands/in.StrandsPerTurn, res.AdjustedTurns)
	assert.Equal(t, 200, res.Layers)
	assert.Equal(t, 36, res.LayersUsed)
	assert.Greater(t, res.FillFactor, 0.0)

	err = res.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCoverageShortfall))

	var shortfall *ShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, 3000, shortfall.Requested)
	assert.Equal(t, res.PlacedStrands, shortfall.Placed)
}

func TestCompute_FillFactorNonDecreasingInStrandDiameter(t *testing.T) {
	in := DefaultInputs()
	in.TotalTurns = 20

	prev := -1.0
	for d := 0.30; d <= 0.90; d += 0.05 {
		in.StrandDiameter = d
		res, err := Compute(in)
		require.NoError(t, err)
		require.False(t, res.HasShortfall(), "window exhausted at d=%.2f", d)

		assert.GreaterOrEqual(t, res.FillFactor, prev, "d=%.2f", d)
		prev = res.FillFactor
	}
}

func TestCompute_NonPositiveWindowHeight(t *testing.T) {
	in := DefaultInputs()
	in.OuterDiameter = in.InnerDiameter + 2 // radial build 1 mm, margins 1.5 mm

	res, err := Compute(in)
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "outer_diameter", inputErr.Field)
}

func TestCompute_NonPositiveWindowWidth(t *testing.T) {
	in := DefaultInputs()
	in.BobbinLength = 1.5

	_, err := Compute(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompute_ZeroTurnsPerLayer(t *testing.T) {
	in := DefaultInputs()
	in.TurnsPerLayer = 0

	_, err := Compute(in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompute_HugeTurnCountIsRejected(t *testing.T) {
	in := DefaultInputs()
	in.TotalTurns = 1 << 40

	res, err := Compute(in)
	assert.Nil(t, res)
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "total_turns", inputErr.Field)
}

func TestCompute_LargestTurnCountIsAShortfall(t *testing.T) {
	in := DefaultInputs()
	in.TotalTurns = MaxStrands / in.StrandsPerTurn

	res, err := Compute(in)
	require.NoError(t, err)
	assert.Equal(t, 999999, res.RequestedStrands)
	assert.Equal(t, 540, res.PlacedStrands)
	assert.Equal(t, 999999-540, res.Unplaced())
	assert.ErrorIs(t, res.Err(), ErrCoverageShortfall)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Inputs)
		field  string
	}{
		{"zero inner diameter", func(in *Inputs) { in.InnerDiameter = 0 }, "inner_diameter"},
		{"negative strand", func(in *Inputs) { in.StrandDiameter = -1 }, "strand_diameter"},
		{"outer below inner", func(in *Inputs) { in.OuterDiameter = in.InnerDiameter - 1 }, "outer_diameter"},
		{"zero strands", func(in *Inputs) { in.StrandsPerTurn = 0 }, "strands_per_turn"},
		{"zero turns", func(in *Inputs) { in.TotalTurns = 0 }, "total_turns"},
		{"horizontal factor above one", func(in *Inputs) { in.HorizPackFactor = 1.2 }, "horiz_pack_factor"},
		{"zero vertical factor", func(in *Inputs) { in.VertPackFactor = 0 }, "vert_pack_factor"},
		{"insulation below one", func(in *Inputs) { in.InsulationFactor = 0.9 }, "insulation_factor"},
		{"negative margin", func(in *Inputs) { in.Margin = -0.1 }, "margin"},
		{"unknown wire", func(in *Inputs) { in.WireType = "Silver" }, "wire_type"},
		{"NaN horizontal factor", func(in *Inputs) { in.HorizPackFactor = math.NaN() }, "horiz_pack_factor"},
		{"NaN vertical factor", func(in *Inputs) { in.VertPackFactor = math.NaN() }, "vert_pack_factor"},
		{"infinite outer diameter", func(in *Inputs) { in.OuterDiameter = math.Inf(1) }, "outer_diameter"},
		{"NaN inner diameter", func(in *Inputs) { in.InnerDiameter = math.NaN() }, "inner_diameter"},
		{"infinite length", func(in *Inputs) { in.BobbinLength = math.Inf(1) }, "bobbin_length"},
		{"NaN strand", func(in *Inputs) { in.StrandDiameter = math.NaN() }, "strand_diameter"},
		{"infinite insulation", func(in *Inputs) { in.InsulationFactor = math.Inf(1) }, "insulation_factor"},
		{"NaN margin", func(in *Inputs) { in.Margin = math.NaN() }, "margin"},
		{"infinite lead slot", func(in *Inputs) { in.LeadSlotDepth = math.Inf(1) }, "lead_slot"},
		{"too many strands per turn", func(in *Inputs) { in.StrandsPerTurn = MaxStrandsPerTurn + 1 }, "strands_per_turn"},
		{"turn count beyond strand limit", func(in *Inputs) { in.TotalTurns = MaxStrands/in.StrandsPerTurn + 1 }, "total_turns"},
		{"turn count that overflows", func(in *Inputs) { in.TotalTurns = math.MaxInt / 2 }, "total_turns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInputs()
			tt.mutate(&in)

			err := in.Validate()
			var inputErr *InputError
			require.ErrorAs(t, err, &inputErr)
			assert.Equal(t, tt.field, inputErr.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.NoError(t, DefaultInputs().Validate())
}
