package coil

// Compute validates the inputs and derives the complete layout.
// The only error it returns wraps ErrInvalidInput; strands that do not fit
// are reported through Result.Unplaced and Result.Err.
func Compute(in Inputs) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	width, height, err := ComputeWindow(in.InnerDiameter, in.OuterDiameter, in.BobbinLength, in.Margin)
	if err != nil {
		return nil, err
	}

	dEff, radius := ComputeEffectiveStrand(in.StrandDiameter, in.InsulationFactor)
	spacingX, spacingY := ComputeSpacing(in.StrandsPerTurn, dEff, in.HorizPackFactor, in.VertPackFactor)

	layers, err := ComputeLayers(in.TotalTurns, in.TurnsPerLayer)
	if err != nil {
		return nil, err
	}

	strands := PlaceStrands(Grid{
		OriginX:        in.Margin,
		OriginY:        in.Margin,
		Width:          width,
		Height:         height,
		SpacingX:       spacingX,
		SpacingY:       spacingY,
		StrandDiameter: dEff,
		StrandsPerTurn: in.StrandsPerTurn,
		TurnsPerRow:    in.TurnsPerLayer,
		TotalStrands:   in.TotalStrands(),
	})

	fill, err := ComputeFillFactor(len(strands), radius, width, height)
	if err != nil {
		return nil, err
	}

	result := &Result{
		WindowWidth:       width,
		WindowHeight:      height,
		EffectiveDiameter: dEff,
		StrandRadius:      radius,
		SpacingX:          spacingX,
		SpacingY:          spacingY,
		Layers:            layers,
		Strands:           strands,
		RequestedStrands:  in.TotalStrands(),
		PlacedStrands:     len(strands),
		AdjustedTurns:     len(strands) / in.StrandsPerTurn,
		FillFactor:        fill,
	}
	if n := len(strands); n > 0 {
		result.LayersUsed = strands[n-1].Layer + 1
	}

	return result, nil
}
