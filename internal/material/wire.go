package material

import (
	"math"

	"github.com/alexiusacademia/gocoil/internal/coil"
)

// Conductor properties at 20 °C
const (
	// Resistivity (Ω·m), IACS annealed copper and EC-grade aluminium
	CopperResistivity   = 1.724e-8
	AluminumResistivity = 2.826e-8

	// Density (kg/m³)
	CopperDensity   = 8960.0
	AluminumDensity = 2700.0
)

// Wire holds the properties of one conductor material
type Wire struct {
	Type        coil.WireType
	Resistivity float64 // Ω·m
	Density     float64 // kg/m³
	Color       string  // drawing colour, hex
}

var wires = map[coil.WireType]Wire{
	coil.Copper: {
		Type:        coil.Copper,
		Resistivity: CopperResistivity,
		Density:     CopperDensity,
		Color:       "#b87333",
	},
	coil.Aluminum: {
		Type:        coil.Aluminum,
		Resistivity: AluminumResistivity,
		Density:     AluminumDensity,
		Color:       "#a8a9ad",
	},
}

// Lookup returns the properties of a wire type, falling back to copper
func Lookup(t coil.WireType) Wire {
	if w, ok := wires[t]; ok {
		return w
	}
	return wires[coil.Copper]
}

// Estimate holds conductor quantities for a laid-out winding
type Estimate struct {
	MeanTurnLength float64 `json:"mean_turn_length_mm"` // mm
	StrandLength   float64 `json:"strand_length_m"`     // m, one strand over all placed turns
	ConductorArea  float64 `json:"conductor_area_mm2"`  // mm², all strands of one turn in parallel
	Resistance     float64 `json:"resistance_ohm"`      // Ω, DC at 20 °C
	Mass           float64 `json:"mass_kg"`             // kg
}

// Estimate computes length, DC resistance and mass of the placed winding.
// The mean turn is taken at the mean of the bore and flange diameters.
func (w Wire) Estimate(in coil.Inputs, res *coil.Result) Estimate {
	mtl := math.Pi * (in.InnerDiameter + in.OuterDiameter) / 2
	strandLength := mtl * float64(res.AdjustedTurns) / 1000

	strandArea := math.Pi * in.StrandDiameter * in.StrandDiameter / 4
	area := strandArea * float64(in.StrandsPerTurn)

	est := Estimate{
		MeanTurnLength: mtl,
		StrandLength:   strandLength,
		ConductorArea:  area,
	}
	if area > 0 {
		est.Resistance = w.Resistivity * strandLength / (area * 1e-6)
	}
	est.Mass = w.Density * area * 1e-6 * strandLength
	return est
}
