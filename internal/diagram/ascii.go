package diagram

import (
	"fmt"
	"math"
	"strings"
)

// DrawASCIIWindow creates a character map of the winding window.
// Each cell shows the layer parity of the strands whose centre falls in it.
func DrawASCIIWindow(data LayoutData) string {
	var sb strings.Builder

	if data.WindowWidth <= 0 || data.WindowHeight <= 0 {
		return "\n  (empty window)\n"
	}

	// Character cells are roughly twice as tall as they are wide
	widthChars := 40
	heightChars := int(math.Round(float64(widthChars) * data.WindowHeight / data.WindowWidth / 2))
	heightChars = min(max(heightChars, 4), 40)

	grid := make([][]rune, heightChars)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", widthChars))
	}

	for _, s := range data.Strands {
		col := int((s.X - data.Margin) / data.WindowWidth * float64(widthChars))
		row := int((s.Y - data.Margin) / data.WindowHeight * float64(heightChars))
		col = min(max(col, 0), widthChars-1)
		row = min(max(row, 0), heightChars-1)

		// Row 0 is the top of the printout
		r := heightChars - 1 - row
		if s.Layer%2 == 0 {
			grid[r][col] = 'o'
		} else if grid[r][col] != 'o' {
			grid[r][col] = '●'
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  WINDOW %.4g x %.4g %s            OUTER DIAMETER SIDE\n", data.WindowWidth, data.WindowHeight, data.Unit))
	sb.WriteString("  ─────────────────────────\n")
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", widthChars)))
	for i, line := range grid {
		sb.WriteString(fmt.Sprintf("  │%s│", string(line)))
		if i == 0 {
			sb.WriteString(fmt.Sprintf(" ◄─ layer %d", data.LayersUsed))
		}
		if i == heightChars-1 && data.LayersUsed > 0 {
			sb.WriteString(" ◄─ layer 1")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", widthChars)))
	sb.WriteString("   BORE SIDE\n")

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  o = strand in an odd layer (1, 3, 5, ...)\n")
	sb.WriteString("  ● = strand in an even layer (2, 4, 6, ...)\n")
	sb.WriteString(fmt.Sprintf("  Strands placed: %d of %d\n", data.Placed, data.Requested))
	if n := data.Unplaced(); n > 0 {
		sb.WriteString(fmt.Sprintf("  ⚠ %d strands do not fit the window\n", n))
	}

	return sb.String()
}

// DrawBundle creates a sketch of one turn's strand bundle
func DrawBundle(data LayoutData) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  WIRE BUNDLE (%d strands, %s)\n", data.StrandsPerTurn, data.WireType))
	sb.WriteString("  ────────────────────────────\n\n")
	sb.WriteString("   " + strings.Repeat("( )", data.StrandsPerTurn) + "\n")
	sb.WriteString("   " + strings.Repeat("◄─►", data.StrandsPerTurn) + "\n")
	sb.WriteString(fmt.Sprintf("   strand %.4g %s, insulated %.4g %s\n", data.StrandDiameter, data.Unit, data.EffectiveDiameter, data.Unit))
	sb.WriteString(fmt.Sprintf("   bundle width %.4g %s\n", float64(data.StrandsPerTurn)*data.StrandDiameter, data.Unit))

	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s to n runes
func pad(s string, n int) string {
	if k := n - len([]rune(s)); k > 0 {
		return s + strings.Repeat(" ", k)
	}
	return s
}
