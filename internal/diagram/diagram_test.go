package diagram

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceLayout(t *testing.T, unit coil.Unit) LayoutData {
	t.Helper()
	in := coil.DefaultInputs()
	res, err := coil.Compute(in)
	require.NoError(t, err)
	return NewLayoutData(in, res, unit)
}

func TestNewLayoutData_ScalesToUnit(t *testing.T) {
	mm := referenceLayout(t, coil.Millimetre)
	in := referenceLayout(t, coil.Inch)

	assert.Equal(t, "mm", mm.Unit)
	assert.Equal(t, "in", in.Unit)
	assert.InDelta(t, 0.546, in.BobbinWidth, 1e-12)
	assert.InDelta(t, mm.WindowWidth/coil.MillimetresPerInch, in.WindowWidth, 1e-12)
	assert.InDelta(t, 0.0337, in.StrandDiameter, 1e-12)
	require.Len(t, in.Strands, len(mm.Strands))
	assert.InDelta(t, mm.Strands[10].X/coil.MillimetresPerInch, in.Strands[10].X, 1e-12)
	assert.Equal(t, mm.Strands[10].Layer, in.Strands[10].Layer)

	// Presentation never changes the computed metric
	assert.Equal(t, mm.FillFactor, in.FillFactor)
	assert.Equal(t, "#b87333", mm.WireColor)
}

func TestLayerColor_Alternates(t *testing.T) {
	assert.Equal(t, EvenLayerColor, LayerColor(0))
	assert.Equal(t, OddLayerColor, LayerColor(1))
	assert.Equal(t, EvenLayerColor, LayerColor(34))
}

func TestDrawASCIIWindow(t *testing.T) {
	out := DrawASCIIWindow(referenceLayout(t, coil.Millimetre))

	assert.Contains(t, out, "Strands placed: 540 of 540")
	assert.Contains(t, out, "◄─ layer 36")
	assert.Contains(t, out, "o")
	assert.NotContains(t, out, "do not fit")
}

func TestDrawASCIIWindow_Shortfall(t *testing.T) {
	in := coil.DefaultInputs()
	in.TotalTurns = 400
	res, err := coil.Compute(in)
	require.NoError(t, err)

	out := DrawASCIIWindow(NewLayoutData(in, res, coil.Inch))
	assert.Contains(t, out, "660 strands do not fit the window")
}

func TestDrawSummaryBox(t *testing.T) {
	out := DrawSummaryBox("FILL FACTOR", []string{"113.29 %", "180 turns"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "box line %q", l)
	}
}

func TestDrawBundle(t *testing.T) {
	out := DrawBundle(referenceLayout(t, coil.Inch))
	assert.Contains(t, out, "3 strands, Copper")
	assert.Contains(t, out, "( )( )( )")
}

func TestWriteLayoutDiagram(t *testing.T) {
	data := referenceLayout(t, coil.Inch)

	var png bytes.Buffer
	require.NoError(t, WriteLayoutDiagram(data, &png, "png"))
	assert.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, WriteLayoutDiagram(data, &svg, "SVG"))
	assert.Contains(t, svg.String(), "<svg")

	assert.Error(t, WriteLayoutDiagram(data, &bytes.Buffer{}, "bmp"))
}

func TestExportLayoutDiagram(t *testing.T) {
	dir := t.TempDir()
	data := referenceLayout(t, coil.Millimetre)

	svgPath := filepath.Join(dir, "nested", "coil.svg")
	require.NoError(t, ExportLayoutDiagram(data, svgPath))
	_, err := os.Stat(svgPath)
	assert.NoError(t, err)

	bare := filepath.Join(dir, "coil")
	require.NoError(t, ExportLayoutDiagram(data, bare))
	_, err = os.Stat(bare + ".png")
	assert.NoError(t, err)
}

func TestWriteLayoutChart(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLayoutChart(referenceLayout(t, coil.Millimetre), &buf))

	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "113.29")
	assert.Contains(t, html, "Bobbin Cross-Section")
}

func TestExportLayoutChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "coil.html")
	require.NoError(t, ExportLayoutChart(referenceLayout(t, coil.Inch), path))

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "(in)")
}

func TestScatterByLayerIndex(t *testing.T) {
	evenIndex, oddIndex := scatterByLayerIndex([]Strand{
		{X: 1, Y: 1, Layer: 0, Turn: 0},
		{X: 2, Y: 1, Layer: 0, Turn: 0},
		{X: 1, Y: 2, Layer: 1, Turn: 1},
		{X: 1, Y: 3, Layer: 2, Turn: 2},
	}, 6)

	require.Len(t, evenIndex, 3)
	require.Len(t, oddIndex, 1)
	assert.Equal(t, "turn 1, layer 1", evenIndex[0].Name)
	assert.Equal(t, "turn 3, layer 3", evenIndex[2].Name)
	assert.Equal(t, "turn 2, layer 2", oddIndex[0].Name)
	assert.Equal(t, 6, oddIndex[0].SymbolSize)
}

func TestSymbolSize(t *testing.T) {
	assert.Equal(t, 4, symbolSize(1, 0))
	assert.Equal(t, 2, symbolSize(0.001, 100))
	assert.Equal(t, 56, symbolSize(10, 100))
}
