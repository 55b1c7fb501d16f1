package cmd

import (
	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/alexiusacademia/gocoil/internal/design"
	"github.com/spf13/cobra"
)

// Design inputs shared by every command that lays out a winding.
// Lengths are read in --units; only flags that were set override the file.
var (
	designFile  string
	designUnits string

	designInner      float64
	designOuter      float64
	designLength     float64
	designStrand     float64
	designAWG        int
	designStrands    int
	designPerLayer   int
	designTurns      int
	designHoriz      float64
	designVert       float64
	designInsulation float64
	designMargin     float64
	designWire       string
)

func addDesignFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVarP(&designFile, "file", "f", "", "Path to design JSON file (default: reference design)")
	f.StringVarP(&designUnits, "units", "u", "mm", "Units for dimensions: mm or in")

	// Bobbin geometry
	f.Float64Var(&designInner, "inner", 0, "Bobbin inner (bore) diameter")
	f.Float64Var(&designOuter, "outer", 0, "Bobbin outer (flange) diameter")
	f.Float64Var(&designLength, "length", 0, "Bobbin winding length between flanges")
	f.Float64Var(&designMargin, "margin", 0, "Clearance kept from every wall of the window")

	// Wire
	f.Float64Var(&designStrand, "strand", 0, "Bare strand diameter")
	f.IntVar(&designAWG, "awg", 0, "Strand size as an AWG gauge (instead of --strand)")
	f.IntVar(&designStrands, "strands", 0, "Strands per turn")
	f.StringVar(&designWire, "wire", "", "Conductor: copper or aluminum")
	f.Float64Var(&designInsulation, "insulation", 0, "Insulated over bare diameter ratio")

	// Winding
	f.IntVar(&designPerLayer, "turns-per-layer", 0, "Turns wound per layer")
	f.IntVarP(&designTurns, "turns", "n", 0, "Total turns")
	f.Float64Var(&designHoriz, "horiz", 0, "Horizontal packing factor")
	f.Float64Var(&designVert, "vert", 0, "Vertical packing factor")

	c.MarkFlagsMutuallyExclusive("strand", "awg")
}

// resolveDesign starts from the design file (or the reference design) and
// applies every flag the user set. The returned inputs are in millimetres.
func resolveDesign(c *cobra.Command) (*coil.Design, error) {
	flags := c.Flags()
	f64 := func(name string, v float64) *float64 {
		if flags.Changed(name) {
			return &v
		}
		return nil
	}
	i := func(name string, v int) *int {
		if flags.Changed(name) {
			return &v
		}
		return nil
	}

	o := design.Overrides{
		InnerDiameter:    f64("inner", designInner),
		OuterDiameter:    f64("outer", designOuter),
		BobbinLength:     f64("length", designLength),
		Margin:           f64("margin", designMargin),
		StrandDiameter:   f64("strand", designStrand),
		AWG:              i("awg", designAWG),
		StrandsPerTurn:   i("strands", designStrands),
		TurnsPerLayer:    i("turns-per-layer", designPerLayer),
		TotalTurns:       i("turns", designTurns),
		HorizPackFactor:  f64("horiz", designHoriz),
		VertPackFactor:   f64("vert", designVert),
		InsulationFactor: f64("insulation", designInsulation),
	}
	if flags.Changed("units") {
		o.Units = designUnits
	}
	if flags.Changed("wire") {
		o.WireType = &designWire
	}

	d, err := design.Resolve(designFile, o)
	if err != nil {
		return nil, err
	}
	logger.Debug("design resolved", "file", designFile, "units", d.Units)
	return d, nil
}
