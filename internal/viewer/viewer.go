// Package viewer is the interactive desktop front end. It draws the bobbin
// cross-section with ebiten and uses native dialogs for file and field input.
package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/alexiusacademia/gocoil/internal/diagram"
	"github.com/alexiusacademia/gocoil/internal/material"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	panelWidth   = 330
	padding      = 30
	lineHeight   = 16
)

var (
	backgroundColor = color.RGBA{R: 18, G: 22, B: 30, A: 255}
	panelColor      = color.RGBA{R: 28, G: 33, B: 44, A: 255}
	bobbinColor     = color.RGBA{R: 60, G: 68, B: 84, A: 255}
	outlineColor    = color.RGBA{R: 170, G: 178, B: 196, A: 255}
	windowColor     = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	warningColor    = color.RGBA{R: 230, G: 90, B: 70, A: 255}
)

// Viewer is an ebiten game showing one layout at a time
type Viewer struct {
	logger *slog.Logger

	inputs coil.Inputs // millimetres
	path   string      // design file, empty when edited by hand
	unit   coil.Unit

	result *coil.Result
	data   diagram.LayoutData

	// input edge detection
	prevKey map[ebiten.Key]bool

	lastErr error
}

// New creates a viewer for the given design. path may be empty.
func New(in coil.Inputs, path string, unit coil.Unit, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{
		logger:  logger,
		inputs:  in,
		path:    path,
		unit:    unit,
		prevKey: map[ebiten.Key]bool{},
	}
}

// Run opens the window and blocks until it is closed
func (v *Viewer) Run() error {
	v.recompute()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(v.title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func (v *Viewer) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !v.prevKey[k]
		v.prevKey[k] = pressed
		return jp
	}

	switch {
	case justPressed(ebiten.KeyEscape), justPressed(ebiten.KeyQ):
		return ebiten.Termination
	case justPressed(ebiten.KeyU):
		v.unit = v.unit.Toggle()
		v.refreshData()
	case justPressed(ebiten.KeyW):
		if v.inputs.WireType == coil.Aluminum {
			v.inputs.WireType = coil.Copper
		} else {
			v.inputs.WireType = coil.Aluminum
		}
		v.recompute()
	case justPressed(ebiten.KeyR):
		v.reload()
	case justPressed(ebiten.KeyO):
		v.openFileDialog()
	case justPressed(ebiten.KeyE):
		v.editFieldDialog()
	}
	return nil
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// recompute lays out the current inputs. On invalid input the previous
// drawing is kept and the error is shown in the panel.
func (v *Viewer) recompute() {
	res, err := coil.Compute(v.inputs)
	if err != nil {
		v.lastErr = err
		v.logger.Warn("layout rejected", "error", err)
		return
	}
	v.lastErr = nil
	v.result = res
	v.refreshData()

	if res.HasShortfall() {
		v.logger.Warn("coverage shortfall", "requested", res.RequestedStrands, "placed", res.PlacedStrands)
	}
}

func (v *Viewer) refreshData() {
	if v.result == nil {
		return
	}
	v.data = diagram.NewLayoutData(v.inputs, v.result, v.unit)
}

// reload re-reads the design file if there is one, then recomputes
func (v *Viewer) reload() {
	if v.path != "" {
		d, err := coil.LoadFromFile(v.path)
		if err != nil {
			v.showError(err)
			return
		}
		v.inputs = d.Inputs
	}
	v.recompute()
}

func (v *Viewer) openFileDialog() {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Coil Design"),
		zenity.FileFilters{{
			Name:     "Coil design",
			Patterns: []string{"*.json"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			v.showError(err)
		}
		return
	}

	d, err := coil.LoadFromFile(filename)
	if err != nil {
		v.showError(err)
		return
	}
	v.path = filename
	v.inputs = d.Inputs
	v.unit = d.Units
	ebiten.SetWindowTitle(v.title())
	v.logger.Info("design loaded", "path", filename)
	v.recompute()
}

func (v *Viewer) editFieldDialog() {
	labels := make([]string, len(coil.Fields))
	for i, f := range coil.Fields {
		labels[i] = f.Label
	}

	choice, err := zenity.List("Select the input to change:", labels, zenity.Title("Edit Input"))
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			v.showError(err)
		}
		return
	}
	field, ok := coil.LookupField(choice)
	if !ok {
		return
	}

	prompt := field.Label
	if field.Linear {
		prompt = fmt.Sprintf("%s (%s)", field.Label, v.unit.Label())
	}
	text, err := zenity.Entry(prompt,
		zenity.Title("Edit Input"),
		zenity.EntryText(field.Format(v.inputs, v.unit)),
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			v.showError(err)
		}
		return
	}

	in, err := field.Set(v.inputs, text, v.unit)
	if err != nil {
		v.showError(err)
		return
	}
	if _, err := coil.Compute(in); err != nil {
		v.showError(err)
		return
	}
	v.inputs = in
	v.recompute()
}

func (v *Viewer) showError(err error) {
	v.lastErr = err
	v.logger.Warn("viewer error", "error", err)
	if dErr := zenity.Error(err.Error(), zenity.Title("Invalid Input")); dErr != nil {
		v.logger.Debug("error dialog failed", "error", dErr)
	}
}

func (v *Viewer) title() string {
	if v.path == "" {
		return "gocoil - Bobbin Layout"
	}
	return "gocoil - " + filepath.Base(v.path)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	v.drawPanel(screen, h)
	if v.result != nil {
		v.drawSection(screen, float64(panelWidth), 0, float64(w-panelWidth), float64(h))
	}
}

// drawSection maps the bobbin section into the given screen box, y up
func (v *Viewer) drawSection(screen *ebiten.Image, boxX, boxY, boxW, boxH float64) {
	d := v.data
	minX := -d.LeadSlotDepth
	spanX := d.BobbinWidth - minX
	spanY := d.BobbinHeight
	if spanX <= 0 || spanY <= 0 {
		return
	}

	scale := math.Min((boxW-2*padding)/spanX, (boxH-2*padding)/spanY)
	offX := boxX + (boxW-spanX*scale)/2
	offY := boxY + (boxH-spanY*scale)/2

	toScreen := func(x, y float64) (float32, float32) {
		return float32(offX + (x-minX)*scale), float32(offY + (spanY-y)*scale)
	}
	rect := func(x, y, rw, rh float64, fill color.Color, stroke color.Color, strokeWidth float32) {
		sx, sy := toScreen(x, y+rh)
		sw, sh := float32(rw*scale), float32(rh*scale)
		if fill != nil {
			vector.DrawFilledRect(screen, sx, sy, sw, sh, fill, false)
		}
		if stroke != nil {
			vector.StrokeRect(screen, sx, sy, sw, sh, strokeWidth, stroke, false)
		}
	}

	rect(0, 0, d.BobbinWidth, d.BobbinHeight, bobbinColor, outlineColor, 2)
	if d.LeadSlotDepth > 0 && d.LeadSlotWidth > 0 {
		slotY := (d.BobbinHeight - d.LeadSlotWidth) / 2
		rect(-d.LeadSlotDepth, slotY, d.LeadSlotDepth, d.LeadSlotWidth, panelColor, outlineColor, 1)
	}
	rect(d.Margin, d.Margin, d.WindowWidth, d.WindowHeight, backgroundColor, windowColor, 1)

	r := float32(d.StrandRadius * scale)
	for _, s := range d.Strands {
		cx, cy := toScreen(s.X, s.Y)
		vector.DrawFilledCircle(screen, cx, cy, r, diagram.LayerColor(s.Layer), true)
		if r > 3 {
			vector.StrokeCircle(screen, cx, cy, r, 1, backgroundColor, true)
		}
	}
}

func (v *Viewer) drawPanel(screen *ebiten.Image, h int) {
	vector.DrawFilledRect(screen, 0, 0, panelWidth, float32(h), panelColor, false)

	lines := v.panelLines()
	y := 14
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 14, y)
		y += lineHeight
	}

	if v.lastErr != nil || (v.result != nil && v.result.HasShortfall()) {
		vector.DrawFilledRect(screen, 0, 0, 4, float32(h), warningColor, false)
	}
}

func (v *Viewer) panelLines() []string {
	u := v.unit.Label()
	lines := []string{
		"BOBBIN LAYOUT",
		"Units: " + v.unit.Name(),
		"",
		"INPUTS",
	}
	for _, f := range coil.Fields {
		value := f.Format(v.inputs, v.unit)
		if f.Linear {
			value += " " + u
		}
		lines = append(lines, fmt.Sprintf("  %-20s %s", f.Label+":", value))
	}
	lines = append(lines, fmt.Sprintf("  %-20s %s", "Wire Type:", v.inputs.WireType))

	if v.result != nil {
		d := v.data
		est := material.Lookup(v.inputs.WireType).Estimate(v.inputs, v.result)
		lines = append(lines,
			"",
			"RESULTS",
			fmt.Sprintf("  %-20s %.4f x %.4f %s", "Window:", d.WindowWidth, d.WindowHeight, u),
			fmt.Sprintf("  %-20s %.4f %s", "Strand (insulated):", d.EffectiveDiameter, u),
			fmt.Sprintf("  %-20s %d (%d used)", "Layers:", d.Layers, d.LayersUsed),
			fmt.Sprintf("  %-20s %d of %d", "Strands placed:", d.Placed, d.Requested),
			fmt.Sprintf("  %-20s %d", "Adjusted turns:", d.AdjustedTurns),
			fmt.Sprintf("  %-20s %.2f%%", "Fill factor:", d.FillFactor),
			fmt.Sprintf("  %-20s %.4f ohm", "Resistance:", est.Resistance),
			fmt.Sprintf("  %-20s %.3f kg", "Mass:", est.Mass),
		)
		if d.Unplaced() > 0 {
			lines = append(lines, "", fmt.Sprintf("  ! %d strands do not fit", d.Unplaced()))
		}
	}
	if v.lastErr != nil {
		lines = append(lines, "", "  ! "+v.lastErr.Error())
	}

	lines = append(lines,
		"",
		"KEYS",
		"  E edit   O open   R redraw",
		"  U units  W wire   Q quit",
	)
	return lines
}
