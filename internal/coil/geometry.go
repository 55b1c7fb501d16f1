package coil

import (
	"fmt"
	"math"
)

// edgeTolerance absorbs rounding when a strand lands exactly on a window edge
const edgeTolerance = 1e-9

// ComputeWindow returns the usable winding window of a bobbin.
// width = length - 2*margin, height = (outerD - innerD)/2 - 2*margin
func ComputeWindow(innerD, outerD, length, margin float64) (width, height float64, err error) {
	width = length - 2*margin
	height = (outerD-innerD)/2 - 2*margin

	if width <= 0 {
		return 0, 0, &InputError{
			Field:  "bobbin_length",
			Reason: fmt.Sprintf("window width %.4f mm is not positive (length %.4f, margin %.4f)", width, length, margin),
		}
	}
	if height <= 0 {
		return 0, 0, &InputError{
			Field:  "outer_diameter",
			Reason: fmt.Sprintf("window height %.4f mm is not positive (radial build %.4f, margin %.4f)", height, (outerD-innerD)/2, margin),
		}
	}
	return width, height, nil
}

// ComputeEffectiveStrand returns the insulated strand diameter and its radius
func ComputeEffectiveStrand(strandD, insulationFactor float64) (dEff, radius float64) {
	dEff = strandD * insulationFactor
	return dEff, dEff / 2
}

// ComputeSpacing returns the bundle pitch along the bobbin axis (x) and the
// layer pitch across the window (y)
func ComputeSpacing(strandsPerTurn int, dEff, horizFactor, vertFactor float64) (spacingX, spacingY float64) {
	spacingX = float64(strandsPerTurn) * dEff * horizFactor
	spacingY = dEff * vertFactor
	return spacingX, spacingY
}

// ComputeLayers returns ceil(totalTurns / turnsPerLayer)
func ComputeLayers(totalTurns, turnsPerLayer int) (int, error) {
	if turnsPerLayer < 1 {
		return 0, &InputError{Field: "turns_per_layer", Reason: fmt.Sprintf("must be at least 1, got %d", turnsPerLayer)}
	}
	if totalTurns < 0 {
		return 0, &InputError{Field: "total_turns", Reason: fmt.Sprintf("must not be negative, got %d", totalTurns)}
	}
	return (totalTurns + turnsPerLayer - 1) / turnsPerLayer, nil
}

// Grid describes the placement lattice inside a window
type Grid struct {
	OriginX, OriginY float64 // lower-left corner of the window
	Width, Height    float64 // window size

	SpacingX, SpacingY float64 // bundle pitch, layer pitch
	StrandDiameter     float64 // effective (insulated) diameter

	StrandsPerTurn int // strands per bundle, laid side by side
	TurnsPerRow    int // bundle limit per layer
	TotalStrands   int // strands to place
}

// PlaceStrands fills the window row by row starting at the lower-left corner.
// Each turn is a bundle of StrandsPerTurn strands at StrandDiameter pitch;
// bundles advance by SpacingX and rows by SpacingY. A bundle that would cross
// the right edge wraps to the next row. Placement stops after TotalStrands
// strands or when the next row would cross the top edge; the caller reports
// whatever is left as a shortfall.
func PlaceStrands(g Grid) []Strand {
	if g.TotalStrands <= 0 || g.StrandsPerTurn < 1 || g.StrandDiameter <= 0 {
		return nil
	}

	d := g.StrandDiameter
	r := d / 2
	bundleWidth := float64(g.StrandsPerTurn) * d

	perRow := g.TurnsPerRow
	if perRow < 1 {
		perRow = math.MaxInt
	}

	strands := make([]Strand, 0, g.capacity(perRow))
	turn := 0

	for layer := 0; len(strands) < g.TotalStrands; layer++ {
		rowY := float64(layer) * g.SpacingY
		if rowY+d > g.Height+edgeTolerance {
			break
		}

		placedInRow := 0
		for col := 0; col < perRow && len(strands) < g.TotalStrands; col++ {
			colX := float64(col) * g.SpacingX
			if colX+bundleWidth > g.Width+edgeTolerance {
				break
			}
			for s := 0; s < g.StrandsPerTurn && len(strands) < g.TotalStrands; s++ {
				strands = append(strands, Strand{
					Point: Point{
						X: g.OriginX + colX + float64(s)*d + r,
						Y: g.OriginY + rowY + r,
					},
					Layer: layer,
					Turn:  turn,
				})
			}
			turn++
			placedInRow++
		}

		// Not even one bundle fits across the window
		if placedInRow == 0 {
			break
		}
		// A row must advance or the loop never reaches the top edge
		if g.SpacingY <= 0 {
			break
		}
	}

	return strands
}

// capacity is the most strands the window can hold, capped at TotalStrands
func (g Grid) capacity(perRow int) int {
	d := g.StrandDiameter
	bundleWidth := float64(g.StrandsPerTurn) * d
	if g.Height+edgeTolerance < d || g.Width+edgeTolerance < bundleWidth {
		return 0
	}

	rows := 1.0
	if g.SpacingY > 0 {
		rows = math.Floor((g.Height+edgeTolerance-d)/g.SpacingY) + 1
	}
	cols := float64(perRow)
	if g.SpacingX > 0 {
		cols = math.Min(cols, math.Floor((g.Width+edgeTolerance-bundleWidth)/g.SpacingX)+1)
	}

	n := rows * cols * float64(g.StrandsPerTurn)
	if !(n < float64(g.TotalStrands)) {
		return g.TotalStrands
	}
	return int(n)
}

// ComputeFillFactor returns the conductor share of the window area in percent:
// 100 * n * pi * r^2 / (width * height)
func ComputeFillFactor(nPlaced int, radius, width, height float64) (float64, error) {
	area := width * height
	if area <= 0 || math.IsNaN(area) {
		return 0, &InputError{Field: "window", Reason: fmt.Sprintf("window area %.4f mm² is not positive", area)}
	}
	conductor := float64(nPlaced) * math.Pi * radius * radius
	return 100 * conductor / area, nil
}
