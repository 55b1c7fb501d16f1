package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gocoil/internal/coil"
	"github.com/alexiusacademia/gocoil/internal/material"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook
const (
	InputsSheet  = "Inputs"
	ResultsSheet = "Results"
	StrandsSheet = "Strands"
)

// WriteWorkbook writes the inputs, the derived results and the strand table
// to w as an xlsx workbook. Lengths are expressed in unit.
func WriteWorkbook(w io.Writer, in coil.Inputs, res *coil.Result, unit coil.Unit) error {
	f, err := buildWorkbook(in, res, unit)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.Write(w)
}

// ExportWorkbook saves the workbook to a file
func ExportWorkbook(path string, in coil.Inputs, res *coil.Result, unit coil.Unit) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := buildWorkbook(in, res, unit)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

func buildWorkbook(in coil.Inputs, res *coil.Result, unit coil.Unit) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", InputsSheet); err != nil {
		return nil, err
	}
	for _, name := range []string{ResultsSheet, StrandsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	k := unit.PerMillimetre()
	u := unit.Label()
	disp := in.InUnit(unit)

	inputs := [][]interface{}{
		{"Parameter", "Value", "Unit"},
		{"Inner diameter", disp.InnerDiameter, u},
		{"Outer diameter", disp.OuterDiameter, u},
		{"Bobbin length", disp.BobbinLength, u},
		{"Strand diameter", disp.StrandDiameter, u},
		{"Strands per turn", in.StrandsPerTurn, ""},
		{"Turns per layer", in.TurnsPerLayer, ""},
		{"Total turns", in.TotalTurns, ""},
		{"Horizontal pack factor", in.HorizPackFactor, ""},
		{"Vertical pack factor", in.VertPackFactor, ""},
		{"Insulation factor", in.InsulationFactor, ""},
		{"Margin", disp.Margin, u},
		{"Wire type", string(in.WireType), ""},
	}
	if err := writeRows(f, InputsSheet, inputs, header); err != nil {
		return nil, err
	}

	est := material.Lookup(in.WireType).Estimate(in, res)
	results := [][]interface{}{
		{"Quantity", "Value", "Unit"},
		{"Window width", res.WindowWidth * k, u},
		{"Window height", res.WindowHeight * k, u},
		{"Effective strand diameter", res.EffectiveDiameter * k, u},
		{"Spacing X", res.SpacingX * k, u},
		{"Spacing Y", res.SpacingY * k, u},
		{"Layers", res.Layers, ""},
		{"Layers used", res.LayersUsed, ""},
		{"Strands requested", res.RequestedStrands, ""},
		{"Strands placed", res.PlacedStrands, ""},
		{"Adjusted turns", res.AdjustedTurns, ""},
		{"Fill factor", res.FillFactor, "%"},
		{"Mean turn length", est.MeanTurnLength * k, u},
		{"Strand length", est.StrandLength, "m"},
		{"DC resistance (20 °C)", est.Resistance, "Ω"},
		{"Conductor mass", est.Mass, "kg"},
	}
	if err := writeRows(f, ResultsSheet, results, header); err != nil {
		return nil, err
	}

	strands := make([][]interface{}, 0, len(res.Strands)+1)
	strands = append(strands, []interface{}{"#", "Turn", "Layer", fmt.Sprintf("X (%s)", u), fmt.Sprintf("Y (%s)", u)})
	for i, s := range res.Strands {
		strands = append(strands, []interface{}{i + 1, s.Turn + 1, s.Layer + 1, s.X * k, s.Y * k})
	}
	if err := writeRows(f, StrandsSheet, strands, header); err != nil {
		return nil, err
	}

	if err := f.SetColWidth(InputsSheet, "A", "A", 26); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(ResultsSheet, "A", "A", 28); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	return f, nil
}

// writeRows writes a table starting at A1, styling the first row as a header
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, headerStyle)
}
