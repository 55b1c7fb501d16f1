package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/alexiusacademia/gocoil/internal/diagram"
	"github.com/alexiusacademia/gocoil/internal/material"
	"github.com/alexiusacademia/gocoil/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Output options
	layoutShowDiagram bool
	layoutShowPoints  bool
	layoutExportFile  string
	layoutStrict      bool
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Lay out a multi-strand winding on a bobbin",
	Long: `Compute the winding window of a bobbin, place every strand of every
turn layer by layer, and report the fill factor.

The window is the bobbin length by the radial build, less the margin on
every side. Strands are placed bundle by bundle from the bore outwards;
strands that do not fit are reported as a coverage shortfall.

Examples:
  # Reference design (180 turns of 3 strands on a 212.7 mm bore)
  gocoil layout

  # Same bobbin in inches with a finer wire
  gocoil layout --units in --strand 0.0285 --turns 200

  # Load a design file, show the window map and export a drawing
  gocoil layout -f coil.json --diagram -o coil.png

  # Fail when the turns do not fit
  gocoil layout -f coil.json --turns 400 --strict`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	addDesignFlags(layoutCmd)

	layoutCmd.Flags().BoolVar(&layoutShowDiagram, "diagram", false, "Show ASCII map of the winding window")
	layoutCmd.Flags().BoolVar(&layoutShowPoints, "points", false, "List every strand centre")
	layoutCmd.Flags().StringVarP(&layoutExportFile, "output", "o", "", "Export to file (png, svg, pdf, html or xlsx)")
	layoutCmd.Flags().BoolVar(&layoutStrict, "strict", false, "Exit with an error when strands do not fit")
}

func runLayout(cmd *cobra.Command, args []string) error {
	design, err := resolveDesign(cmd)
	if err != nil {
		return err
	}

	res, err := coil.Compute(design.Inputs)
	if err != nil {
		return err
	}
	logger.Debug("layout computed",
		"layers", res.Layers, "placed", res.PlacedStrands, "requested", res.RequestedStrands)

	data := diagram.NewLayoutData(design.Inputs, res, design.Units)
	out := cmd.OutOrStdout()

	printLayoutReport(out, design, res, data)

	if layoutShowDiagram {
		fmt.Fprintln(out, diagram.DrawASCIIWindow(data))
		fmt.Fprintln(out, diagram.DrawBundle(data))
	}
	if layoutShowPoints {
		printStrandTable(out, data)
	}

	if layoutExportFile != "" {
		if err := exportLayout(layoutExportFile, design, res, data); err != nil {
			return fmt.Errorf("exporting %s: %w", layoutExportFile, err)
		}
		fmt.Fprintf(out, "  Layout exported to: %s\n\n", layoutExportFile)
	}

	if res.HasShortfall() {
		logger.Warn("coverage shortfall", "requested", res.RequestedStrands, "placed", res.PlacedStrands)
		if layoutStrict {
			return res.Err()
		}
	}
	return nil
}

func printLayoutReport(out io.Writer, design *coil.Design, res *coil.Result, data diagram.LayoutData) {
	in := design.Inputs
	u := data.Unit
	k := design.Units.PerMillimetre()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     BOBBIN WINDING LAYOUT")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	if design.Name != "" {
		fmt.Fprintf(out, "  Design: %s\n", design.Name)
	}
	if design.Description != "" {
		fmt.Fprintf(out, "  Description: %s\n", design.Description)
	}
	fmt.Fprintf(out, "  Units: %s\n", design.Units.Name())
	fmt.Fprintln(out)

	// Input summary
	fmt.Fprintln(out, "INPUT DATA:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Inner Diameter:\t%.4f %s\n", in.InnerDiameter*k, u)
	fmt.Fprintf(w, "  Outer Diameter:\t%.4f %s\n", in.OuterDiameter*k, u)
	fmt.Fprintf(w, "  Bobbin Length:\t%.4f %s\n", in.BobbinLength*k, u)
	fmt.Fprintf(w, "  Margin:\t%.4f %s\n", in.Margin*k, u)
	awg, awgD := material.NearestAWG(in.StrandDiameter)
	fmt.Fprintf(w, "  Wire Diameter:\t%.4f %s\t(nearest AWG %d = %.4f %s)\n", in.StrandDiameter*k, u, awg, awgD*k, u)
	fmt.Fprintf(w, "  Wire Type:\t%s\n", in.WireType)
	fmt.Fprintf(w, "  Strands per Turn:\t%d\n", in.StrandsPerTurn)
	fmt.Fprintf(w, "  Turns per Layer:\t%d\n", in.TurnsPerLayer)
	fmt.Fprintf(w, "  Total Turns:\t%d\n", in.TotalTurns)
	fmt.Fprintf(w, "  Packing Factors (H / V):\t%.3f / %.3f\n", in.HorizPackFactor, in.VertPackFactor)
	fmt.Fprintf(w, "  Insulation Factor:\t%.3f\n", in.InsulationFactor)
	w.Flush()
	fmt.Fprintln(out)

	// Window
	fmt.Fprintln(out, "WINDING WINDOW:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Window (W x H):\t%.4f x %.4f %s\n", data.WindowWidth, data.WindowHeight, u)
	fmt.Fprintf(w, "  Insulated Strand Diameter:\t%.4f %s\n", data.EffectiveDiameter, u)
	fmt.Fprintf(w, "  Strand Spacing (x / y):\t%.4f / %.4f %s\n", res.SpacingX*k, res.SpacingY*k, u)
	fmt.Fprintf(w, "  Layers Required:\t%d\n", res.Layers)
	w.Flush()
	fmt.Fprintln(out)

	// Placement
	fmt.Fprintln(out, "PLACEMENT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Strands Requested:\t%d\n", res.RequestedStrands)
	fmt.Fprintf(w, "  Strands Placed:\t%d\n", res.PlacedStrands)
	fmt.Fprintf(w, "  Layers Used:\t%d\n", res.LayersUsed)
	fmt.Fprintf(w, "  Adjusted Turns:\t%d\n", res.AdjustedTurns)
	w.Flush()
	fmt.Fprintln(out)

	// Material
	est := material.Lookup(in.WireType).Estimate(in, res)
	fmt.Fprintln(out, "CONDUCTOR ESTIMATE (20 °C):")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Mean Turn Length:\t%.4f %s\n", est.MeanTurnLength*k, u)
	fmt.Fprintf(w, "  Length per Strand:\t%.3f m\n", est.StrandLength)
	fmt.Fprintf(w, "  Conductor Area:\t%.4f mm²\n", est.ConductorArea)
	fmt.Fprintf(w, "  DC Resistance:\t%.4f Ω\n", est.Resistance)
	fmt.Fprintf(w, "  Mass:\t%.3f kg\n", est.Mass)
	w.Flush()
	fmt.Fprintln(out)

	// Result
	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	lines := []string{
		fmt.Sprintf("Fill factor    = %.2f %%", res.FillFactor),
		fmt.Sprintf("Strands placed = %d of %d", res.PlacedStrands, res.RequestedStrands),
		fmt.Sprintf("Adjusted turns = %d", res.AdjustedTurns),
	}
	if res.HasShortfall() {
		fmt.Fprint(out, diagram.DrawSummaryBox("COVERAGE SHORTFALL", lines))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  ⚠ %d strands do not fit the window.\n", res.Unplaced())
		fmt.Fprintln(out, "    Reduce turns or wire size, or enlarge the bobbin.")
	} else {
		fmt.Fprint(out, diagram.DrawSummaryBox("ALL STRANDS PLACED ✓", lines))
	}
	fmt.Fprintln(out)
}

func printStrandTable(out io.Writer, data diagram.LayoutData) {
	fmt.Fprintln(out, "STRAND CENTRES:")
	fmt.Fprintln(out, "───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "  #\tLayer\tTurn\tX (%s)\tY (%s)\t\n", data.Unit, data.Unit)
	for i, s := range data.Strands {
		fmt.Fprintf(w, "  %d\t%d\t%d\t%.4f\t%.4f\t\n", i+1, s.Layer+1, s.Turn+1, s.X, s.Y)
	}
	w.Flush()
	fmt.Fprintln(out)
}

// exportLayout picks the writer from the file extension
func exportLayout(path string, design *coil.Design, res *coil.Result, data diagram.LayoutData) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return diagram.ExportLayoutChart(data, path)
	case ".xlsx":
		return report.ExportWorkbook(path, design.Inputs, res, design.Units)
	default:
		return diagram.ExportLayoutDiagram(data, path)
	}
}
