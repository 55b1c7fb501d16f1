package diagram

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// circleSegments is the polygon resolution used for strand outlines
const circleSegments = 24

// ExportLayoutDiagram exports the bobbin cross-section to an image file.
// The format follows the extension (png, svg, pdf); anything else gets ".png" appended.
func ExportLayoutDiagram(data LayoutData, filename string) error {
	p, width, height, err := newLayoutPlot(data)
	if err != nil {
		return err
	}

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// WriteLayoutDiagram renders the cross-section in the given format
// ("png", "svg" or "pdf") to w
func WriteLayoutDiagram(data LayoutData, w io.Writer, format string) error {
	p, width, height, err := newLayoutPlot(data)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(width, height, strings.ToLower(format))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func newLayoutPlot(data LayoutData) (*plot.Plot, vg.Length, vg.Length, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Rectangular Bobbin Cross-Section (%s)", data.Unit)
	p.X.Label.Text = data.Unit
	p.Y.Label.Text = data.Unit

	// Bobbin outline
	if err := addRect(p, 0, 0, data.BobbinWidth, data.BobbinHeight, color.Black, 2, nil); err != nil {
		return nil, 0, 0, err
	}

	// Winding window
	windowColor := color.RGBA{R: 0, G: 128, B: 0, A: 255}
	if err := addRect(p, data.Margin, data.Margin, data.WindowWidth, data.WindowHeight, windowColor, 1.5,
		[]vg.Length{vg.Points(4), vg.Points(2)}); err != nil {
		return nil, 0, 0, err
	}

	// Lead slot on the left flange
	if data.LeadSlotDepth > 0 && data.LeadSlotWidth > 0 {
		slotY := (data.BobbinHeight - data.LeadSlotWidth) / 2
		if err := addRect(p, -data.LeadSlotDepth, slotY, data.LeadSlotDepth, data.LeadSlotWidth, color.Black, 2, nil); err != nil {
			return nil, 0, 0, err
		}
	}

	// Strands, coloured by layer parity
	var legendEven, legendOdd *plotter.Polygon
	for _, s := range data.Strands {
		poly, err := plotter.NewPolygon(circleXYs(s.X, s.Y, data.StrandRadius))
		if err != nil {
			return nil, 0, 0, err
		}
		poly.Color = LayerColor(s.Layer)
		poly.LineStyle.Color = color.Black
		poly.LineStyle.Width = vg.Points(0.4)
		p.Add(poly)

		if s.Layer%2 == 0 && legendEven == nil {
			legendEven = poly
		} else if s.Layer%2 == 1 && legendOdd == nil {
			legendOdd = poly
		}
	}
	if legendEven != nil {
		p.Legend.Add("layers 1, 3, 5…", legendEven)
	}
	if legendOdd != nil {
		p.Legend.Add("layers 2, 4, 6…", legendOdd)
	}
	p.Legend.Top = true

	// Wire bundle illustration to the right of the bobbin
	span := math.Max(data.BobbinWidth, data.BobbinHeight)
	pad := span * 0.15
	bundleX := data.BobbinWidth + pad*2
	bundleY := data.BobbinHeight / 2
	bundleScale := bundleScaleFor(data, span)
	bundleR := data.StrandRadius * bundleScale
	bundleEnd := bundleX + float64(data.StrandsPerTurn)*2*bundleR

	for i := 0; i < data.StrandsPerTurn; i++ {
		poly, err := plotter.NewPolygon(circleXYs(bundleX+bundleR+float64(i)*2*bundleR, bundleY, bundleR))
		if err != nil {
			return nil, 0, 0, err
		}
		poly.Color = OddLayerColor
		poly.LineStyle.Color = color.Black
		poly.LineStyle.Width = vg.Points(1.2)
		p.Add(poly)
	}

	// Annotations
	labels := []annotation{
		{data.BobbinWidth / 2, data.BobbinHeight + pad*1.2, fmt.Sprintf("Fill Factor: %.2f%%", data.FillFactor), color.RGBA{R: 200, A: 255}},
		{data.BobbinWidth / 2, data.BobbinHeight + pad*0.5, fmt.Sprintf("Adjusted Turns: %d", data.AdjustedTurns), color.RGBA{B: 200, A: 255}},
		{bundleX, bundleY + bundleR + pad*0.6, fmt.Sprintf("Wire Bundle (%d strands)", data.StrandsPerTurn), color.Black},
		{bundleX, bundleY - bundleR - pad*0.4, fmt.Sprintf("Type: %s", data.WireType), color.RGBA{B: 139, A: 255}},
		{bundleX, bundleY - bundleR - pad*0.9, fmt.Sprintf("Strand: %.4g %s", data.StrandDiameter, data.Unit), color.RGBA{B: 139, A: 255}},
		{bundleX, bundleY - bundleR - pad*1.4, fmt.Sprintf("Bundle width: %.4g %s", float64(data.StrandsPerTurn)*data.StrandDiameter, data.Unit), color.Black},
	}
	if n := data.Unplaced(); n > 0 {
		labels = append(labels, annotation{data.BobbinWidth / 2, -pad * 0.6, fmt.Sprintf("%d strands unplaced", n), color.RGBA{R: 200, A: 255}})
	}

	for _, lbl := range labels {
		l, err := plotter.NewLabels(plotter.XYLabels{
			XYs:    []plotter.XY{{X: lbl.x, Y: lbl.y}},
			Labels: []string{lbl.text},
		})
		if err != nil {
			return nil, 0, 0, err
		}
		l.TextStyle[0].Color = lbl.color
		p.Add(l)
	}

	// Axis limits with room for the notch, the bundle and the labels
	p.X.Min = -data.LeadSlotDepth - pad
	p.X.Max = math.Max(bundleEnd, bundleX+span*0.9) + pad
	p.Y.Min = -pad
	p.Y.Max = data.BobbinHeight + pad*2

	// Keep the drawing roughly isotropic
	width := 8 * vg.Inch
	aspect := (p.Y.Max - p.Y.Min) / (p.X.Max - p.X.Min)
	height := vg.Length(math.Min(math.Max(aspect, 0.5), 1.6)) * width

	return p, width, height, nil
}

type annotation struct {
	x, y  float64
	text  string
	color color.Color
}

// bundleScaleFor enlarges the bundle illustration so it reads at drawing scale
func bundleScaleFor(data LayoutData, span float64) float64 {
	if data.StrandRadius <= 0 || data.StrandsPerTurn < 1 {
		return 1
	}
	natural := float64(data.StrandsPerTurn) * 2 * data.StrandRadius
	target := span * 0.4
	if natural >= target {
		return 1
	}
	return target / natural
}

// addRect adds a closed rectangle outline
func addRect(p *plot.Plot, x, y, w, h float64, c color.Color, width float64, dashes []vg.Length) error {
	line, err := plotter.NewLine(plotter.XYs{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	})
	if err != nil {
		return err
	}
	line.LineStyle = draw.LineStyle{
		Color:  c,
		Width:  vg.Points(width),
		Dashes: dashes,
	}
	p.Add(line)
	return nil
}

// circleXYs approximates a circle by a regular polygon in data space
func circleXYs(cx, cy, r float64) plotter.XYs {
	pts := make(plotter.XYs, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = plotter.XY{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	return pts
}
