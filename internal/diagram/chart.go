package diagram

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Chart canvas size in pixels
const (
	chartWidth  = 900
	chartHeight = 700
)

// WriteLayoutChart renders an interactive HTML scatter chart of the strand
// centres, one series per layer parity, with hover tooltips per strand
func WriteLayoutChart(data LayoutData, w io.Writer) error {
	scatter := charts.NewScatter()

	xMin, xMax := 0.0, data.BobbinWidth
	yMin, yMax := 0.0, data.BobbinHeight

	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Bobbin Cross-Section",
			Width:     fmt.Sprintf("%dpx", chartWidth),
			Height:    fmt.Sprintf("%dpx", chartHeight),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Rectangular Bobbin Cross-Section (%s)", data.Unit),
			Subtitle: fmt.Sprintf("Fill factor %.2f%% · %d of %d strands · %d adjusted turns · %s",
				data.FillFactor, data.Placed, data.Requested, data.AdjustedTurns, data.WireType),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: data.Unit,
			Type: "value",
			Min:  xMin,
			Max:  xMax,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: data.Unit,
			Type: "value",
			Min:  yMin,
			Max:  yMax,
		}),
	)

	size := symbolSize(data.EffectiveDiameter, math.Max(xMax-xMin, yMax-yMin))

	evenIndex, oddIndex := scatterByLayerIndex(data.Strands, size)

	scatter.AddSeries("layers 1, 3, 5…", evenIndex,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(EvenLayerColor.R, EvenLayerColor.G, EvenLayerColor.B), BorderColor: "#000"}))
	scatter.AddSeries("layers 2, 4, 6…", oddIndex,
		charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(OddLayerColor.R, OddLayerColor.G, OddLayerColor.B), BorderColor: "#000"}))

	return scatter.Render(w)
}

// scatterByLayerIndex splits strands by layer index parity. Index 0, 2, 4...
// are the layers numbered 1, 3, 5... in the legend.
func scatterByLayerIndex(strands []Strand, size int) (evenIndex, oddIndex []opts.ScatterData) {
	for _, s := range strands {
		point := opts.ScatterData{
			Name:       fmt.Sprintf("turn %d, layer %d", s.Turn+1, s.Layer+1),
			Value:      []interface{}{s.X, s.Y},
			SymbolSize: size,
		}
		if s.Layer%2 == 0 {
			evenIndex = append(evenIndex, point)
		} else {
			oddIndex = append(oddIndex, point)
		}
	}
	return evenIndex, oddIndex
}

// ExportLayoutChart writes the HTML chart to filename, creating its directory
func ExportLayoutChart(data LayoutData, filename string) error {
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteLayoutChart(data, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// symbolSize converts a diameter in data units to a marker size in pixels
func symbolSize(diameter, span float64) int {
	if span <= 0 {
		return 4
	}
	px := int(math.Round(diameter / span * float64(min(chartWidth, chartHeight)) * 0.8))
	return max(px, 2)
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
