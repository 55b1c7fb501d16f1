// Package design combines a design file with command-line overrides
package design

import (
	"fmt"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/alexiusacademia/gocoil/internal/material"
)

// Overrides holds the values the user set explicitly. A nil field keeps the
// value from the file or the reference design. Lengths are read in Units.
type Overrides struct {
	Units string

	InnerDiameter  *float64
	OuterDiameter  *float64
	BobbinLength   *float64
	Margin         *float64
	StrandDiameter *float64
	AWG            *int

	StrandsPerTurn *int
	TurnsPerLayer  *int
	TotalTurns     *int

	HorizPackFactor  *float64
	VertPackFactor   *float64
	InsulationFactor *float64

	WireType *string
}

// Resolve loads path (or the reference design when path is empty) and
// applies o. The returned inputs are in millimetres and are not validated;
// coil.Compute does that.
//
// Units decides how override lengths are read. When it is empty the file's
// own unit is used, or millimetres for the reference design. A non-empty
// Units also becomes the design's display unit.
func Resolve(path string, o Overrides) (*coil.Design, error) {
	d := &coil.Design{
		Name:   "Reference design",
		Units:  coil.Millimetre,
		Inputs: coil.DefaultInputs(),
	}
	if path != "" {
		loaded, err := coil.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading design: %w", err)
		}
		d = loaded
	}

	if o.Units != "" {
		unit, err := coil.ParseUnit(o.Units)
		if err != nil {
			return nil, err
		}
		d.Units = unit
	}

	if o.StrandDiameter != nil && o.AWG != nil {
		return nil, &coil.InputError{Field: "strand_diameter", Reason: "give either a diameter or an AWG gauge, not both"}
	}

	k := d.Units.Millimetres()
	in := &d.Inputs
	length := func(v *float64, dst *float64) {
		if v != nil {
			*dst = *v * k
		}
	}
	value := func(v *float64, dst *float64) {
		if v != nil {
			*dst = *v
		}
	}
	count := func(v *int, dst *int) {
		if v != nil {
			*dst = *v
		}
	}

	length(o.InnerDiameter, &in.InnerDiameter)
	length(o.OuterDiameter, &in.OuterDiameter)
	length(o.BobbinLength, &in.BobbinLength)
	length(o.Margin, &in.Margin)
	length(o.StrandDiameter, &in.StrandDiameter)
	count(o.StrandsPerTurn, &in.StrandsPerTurn)
	count(o.TurnsPerLayer, &in.TurnsPerLayer)
	count(o.TotalTurns, &in.TotalTurns)
	value(o.HorizPackFactor, &in.HorizPackFactor)
	value(o.VertPackFactor, &in.VertPackFactor)
	value(o.InsulationFactor, &in.InsulationFactor)

	// Gauge diameters are bare millimetres whatever the display unit
	if o.AWG != nil {
		dia, err := material.AWGDiameter(*o.AWG)
		if err != nil {
			return nil, &coil.InputError{Field: "strand_diameter", Reason: err.Error()}
		}
		in.StrandDiameter = dia
	}

	if o.WireType != nil {
		wire, err := coil.ParseWireType(*o.WireType)
		if err != nil {
			return nil, err
		}
		in.WireType = wire
	}

	return d, nil
}
