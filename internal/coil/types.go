package coil

import (
	"fmt"
	"math"
	"strings"
)

// WireType selects the conductor material of the strands
type WireType string

const (
	Copper   WireType = "Copper"
	Aluminum WireType = "Aluminum"
)

// ParseWireType accepts "copper"/"cu" and "aluminum"/"aluminium"/"al" in any case
func ParseWireType(s string) (WireType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "copper", "cu", "":
		return Copper, nil
	case "aluminum", "aluminium", "al":
		return Aluminum, nil
	}
	return "", &InputError{Field: "wire_type", Reason: fmt.Sprintf("unknown wire type %q (use Copper or Aluminum)", s)}
}

// Inputs describes a winding to be packed into a bobbin window.
// All lengths are in millimetres; see InUnit and FromUnit for display units.
type Inputs struct {
	// Bobbin geometry
	InnerDiameter float64 `json:"inner_diameter"` // winding bore
	OuterDiameter float64 `json:"outer_diameter"` // flange outer diameter
	BobbinLength  float64 `json:"bobbin_length"`  // axial length between flanges

	// Conductor
	StrandDiameter   float64  `json:"strand_diameter"`   // bare strand diameter
	StrandsPerTurn   int      `json:"strands_per_turn"`  // strands wound in parallel as one bundle
	TurnsPerLayer    int      `json:"turns_per_layer"`   // bundles per layer
	TotalTurns       int      `json:"total_turns"`       // bundles in the winding
	InsulationFactor float64  `json:"insulation_factor"` // insulated/bare diameter ratio
	WireType         WireType `json:"wire_type"`

	// Empirical derating of ideal close packing
	HorizPackFactor float64 `json:"horiz_pack_factor"`
	VertPackFactor  float64 `json:"vert_pack_factor"`

	// Clearances
	Margin        float64 `json:"margin"`          // clearance on every side of the window
	LeadSlotWidth float64 `json:"lead_slot_width"` // lead exit notch, drawing only
	LeadSlotDepth float64 `json:"lead_slot_depth"`
}

// DefaultInputs returns the reference design: an 8.375 in / 10.53 in bobbin,
// 0.546 in long, wound with 180 turns of three 0.0337 in strands.
func DefaultInputs() Inputs {
	return Inputs{
		InnerDiameter:    8.375 * MillimetresPerInch,
		OuterDiameter:    10.53 * MillimetresPerInch,
		BobbinLength:     0.546 * MillimetresPerInch,
		StrandDiameter:   0.0337 * MillimetresPerInch,
		StrandsPerTurn:   3,
		TurnsPerLayer:    5,
		TotalTurns:       180,
		InsulationFactor: 1.08,
		WireType:         Copper,
		HorizPackFactor:  0.86,
		VertPackFactor:   0.77,
		Margin:           0.75,
		LeadSlotWidth:    10,
		LeadSlotDepth:    5,
	}
}

// TotalStrands is the number of strand cross-sections the winding asks for
func (in Inputs) TotalStrands() int {
	return in.TotalTurns * in.StrandsPerTurn
}

// Count limits. A strand table of MaxStrands entries is a few tens of MB.
const (
	MaxStrandsPerTurn = 1000
	MaxStrands        = 1_000_000
)

// finite reports whether v is a usable number
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks that every input is inside its physical domain
func (in Inputs) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"inner_diameter", in.InnerDiameter},
		{"outer_diameter", in.OuterDiameter},
		{"bobbin_length", in.BobbinLength},
		{"strand_diameter", in.StrandDiameter},
	}
	for _, p := range positive {
		if !(p.value > 0) || !finite(p.value) {
			return &InputError{Field: p.field, Reason: fmt.Sprintf("must be a positive number, got %g", p.value)}
		}
	}
	if in.OuterDiameter <= in.InnerDiameter {
		return &InputError{Field: "outer_diameter", Reason: fmt.Sprintf("must exceed inner diameter (%g <= %g)", in.OuterDiameter, in.InnerDiameter)}
	}

	counts := []struct {
		field string
		value int
	}{
		{"strands_per_turn", in.StrandsPerTurn},
		{"turns_per_layer", in.TurnsPerLayer},
		{"total_turns", in.TotalTurns},
	}
	for _, c := range counts {
		if c.value < 1 {
			return &InputError{Field: c.field, Reason: fmt.Sprintf("must be at least 1, got %d", c.value)}
		}
	}

	if in.StrandsPerTurn > MaxStrandsPerTurn {
		return &InputError{Field: "strands_per_turn", Reason: fmt.Sprintf("must be at most %d, got %d", MaxStrandsPerTurn, in.StrandsPerTurn)}
	}
	// Division keeps TotalTurns*StrandsPerTurn from overflowing
	if in.TotalTurns > MaxStrands/in.StrandsPerTurn {
		return &InputError{Field: "total_turns", Reason: fmt.Sprintf("%d turns of %d strands exceeds %d strands", in.TotalTurns, in.StrandsPerTurn, MaxStrands)}
	}

	if !(in.HorizPackFactor > 0 && in.HorizPackFactor <= 1) {
		return &InputError{Field: "horiz_pack_factor", Reason: fmt.Sprintf("must be in (0, 1], got %g", in.HorizPackFactor)}
	}
	if !(in.VertPackFactor > 0 && in.VertPackFactor <= 1) {
		return &InputError{Field: "vert_pack_factor", Reason: fmt.Sprintf("must be in (0, 1], got %g", in.VertPackFactor)}
	}
	if !(in.InsulationFactor >= 1) || !finite(in.InsulationFactor) {
		return &InputError{Field: "insulation_factor", Reason: fmt.Sprintf("must be a number of at least 1, got %g", in.InsulationFactor)}
	}
	if !(in.Margin >= 0) || !finite(in.Margin) {
		return &InputError{Field: "margin", Reason: fmt.Sprintf("must be a non-negative number, got %g", in.Margin)}
	}
	if !(in.LeadSlotWidth >= 0) || !(in.LeadSlotDepth >= 0) || !finite(in.LeadSlotWidth) || !finite(in.LeadSlotDepth) {
		return &InputError{Field: "lead_slot", Reason: "lead slot dimensions must not be negative"}
	}
	if _, err := ParseWireType(string(in.WireType)); err != nil {
		return err
	}
	return nil
}

// Point is a 2D coordinate in bobbin space (mm)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Strand is one placed strand cross-section
type Strand struct {
	Point
	Layer int `json:"layer"` // 0 at the bore side of the window
	Turn  int `json:"turn"`  // bundle index in winding order
}

// Result holds everything derived from one set of Inputs.
// Strand coordinates are in bobbin space: the window's lower-left corner
// sits at (Margin, Margin).
type Result struct {
	// Window
	WindowWidth  float64 `json:"window_width"`
	WindowHeight float64 `json:"window_height"`

	// Strand
	EffectiveDiameter float64 `json:"effective_diameter"`
	StrandRadius      float64 `json:"strand_radius"`
	SpacingX          float64 `json:"spacing_x"`
	SpacingY          float64 `json:"spacing_y"`

	// Winding
	Layers           int      `json:"layers"`      // ceil(total turns / turns per layer)
	LayersUsed       int      `json:"layers_used"` // rows that received at least one strand
	Strands          []Strand `json:"strands"`
	RequestedStrands int      `json:"requested_strands"`
	PlacedStrands    int      `json:"placed_strands"`
	AdjustedTurns    int      `json:"adjusted_turns"` // complete turns that fit

	// Fill factor in percent of window area
	FillFactor float64 `json:"fill_factor"`
}

// Unplaced is the number of requested strands that did not fit the window
func (r *Result) Unplaced() int {
	return r.RequestedStrands - r.PlacedStrands
}

// HasShortfall reports whether any requested strand was left out
func (r *Result) HasShortfall() bool {
	return r.Unplaced() > 0
}

// Err returns a *ShortfallError when the window could not hold every strand.
// A shortfall is a warning; callers decide whether to treat it as a failure.
func (r *Result) Err() error {
	if !r.HasShortfall() {
		return nil
	}
	return &ShortfallError{Requested: r.RequestedStrands, Placed: r.PlacedStrands}
}
