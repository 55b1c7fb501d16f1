package diagram

import (
	"image/color"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/alexiusacademia/gocoil/internal/material"
)

// Layer fill colours, alternating from the bore outwards
var (
	EvenLayerColor = color.RGBA{R: 0xf5, G: 0xb5, B: 0x4b, A: 0xff}
	OddLayerColor  = color.RGBA{R: 0xad, G: 0xd8, B: 0xe6, A: 0xff}
)

// LayerColor returns the fill colour of a strand in the given layer
func LayerColor(layer int) color.RGBA {
	if layer%2 == 0 {
		return EvenLayerColor
	}
	return OddLayerColor
}

// Strand is a strand centre in display units
type Strand struct {
	X, Y  float64
	Layer int
	Turn  int
}

// LayoutData holds everything a renderer needs, already scaled to the
// display unit. The origin is the lower-left corner of the bobbin section.
type LayoutData struct {
	Unit string // axis label, "mm" or "in"

	// Bobbin section: axial length by radial build
	BobbinWidth  float64
	BobbinHeight float64

	// Winding window, lower-left corner at (Margin, Margin)
	Margin       float64
	WindowWidth  float64
	WindowHeight float64

	// Lead exit notch on the left flange
	LeadSlotWidth float64
	LeadSlotDepth float64

	// Strands
	StrandDiameter    float64 // bare
	EffectiveDiameter float64 // insulated
	StrandRadius      float64
	StrandsPerTurn    int
	Strands           []Strand

	// Winding summary
	WireType      string
	WireColor     string
	Layers        int
	LayersUsed    int
	Requested     int
	Placed        int
	AdjustedTurns int
	FillFactor    float64
}

// NewLayoutData scales a computed layout to the display unit
func NewLayoutData(in coil.Inputs, res *coil.Result, unit coil.Unit) LayoutData {
	k := unit.PerMillimetre()

	data := LayoutData{
		Unit:              unit.Label(),
		BobbinWidth:       in.BobbinLength * k,
		BobbinHeight:      (in.OuterDiameter - in.InnerDiameter) / 2 * k,
		Margin:            in.Margin * k,
		WindowWidth:       res.WindowWidth * k,
		WindowHeight:      res.WindowHeight * k,
		LeadSlotWidth:     in.LeadSlotWidth * k,
		LeadSlotDepth:     in.LeadSlotDepth * k,
		StrandDiameter:    in.StrandDiameter * k,
		EffectiveDiameter: res.EffectiveDiameter * k,
		StrandRadius:      res.StrandRadius * k,
		StrandsPerTurn:    in.StrandsPerTurn,
		Strands:           make([]Strand, len(res.Strands)),
		WireType:          string(in.WireType),
		WireColor:         material.Lookup(in.WireType).Color,
		Layers:            res.Layers,
		LayersUsed:        res.LayersUsed,
		Requested:         res.RequestedStrands,
		Placed:            res.PlacedStrands,
		AdjustedTurns:     res.AdjustedTurns,
		FillFactor:        res.FillFactor,
	}
	for i, s := range res.Strands {
		data.Strands[i] = Strand{X: s.X * k, Y: s.Y * k, Layer: s.Layer, Turn: s.Turn}
	}
	return data
}

// Unplaced is the number of strands that did not fit
func (d LayoutData) Unplaced() int {
	return d.Requested - d.Placed
}
