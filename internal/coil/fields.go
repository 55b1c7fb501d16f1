package coil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field is one editable input, read and written in a display unit.
// Name matches the json tag; Linear fields scale with the unit.
type Field struct {
	Name    string
	Label   string
	Linear  bool
	Integer bool

	get func(*Inputs) float64
	set func(*Inputs, float64)
}

// Fields lists the numeric inputs in form order
var Fields = []Field{
	{Name: "inner_diameter", Label: "Inner Diameter", Linear: true,
		get: func(in *Inputs) float64 { return in.InnerDiameter }, set: func(in *Inputs, v float64) { in.InnerDiameter = v }},
	{Name: "outer_diameter", Label: "Outer Diameter", Linear: true,
		get: func(in *Inputs) float64 { return in.OuterDiameter }, set: func(in *Inputs, v float64) { in.OuterDiameter = v }},
	{Name: "bobbin_length", Label: "Bobbin Length", Linear: true,
		get: func(in *Inputs) float64 { return in.BobbinLength }, set: func(in *Inputs, v float64) { in.BobbinLength = v }},
	{Name: "strand_diameter", Label: "Wire Diameter", Linear: true,
		get: func(in *Inputs) float64 { return in.StrandDiameter }, set: func(in *Inputs, v float64) { in.StrandDiameter = v }},
	{Name: "strands_per_turn", Label: "Strands per Turn", Integer: true,
		get: func(in *Inputs) float64 { return float64(in.StrandsPerTurn) }, set: func(in *Inputs, v float64) { in.StrandsPerTurn = int(v) }},
	{Name: "turns_per_layer", Label: "Turns per Layer", Integer: true,
		get: func(in *Inputs) float64 { return float64(in.TurnsPerLayer) }, set: func(in *Inputs, v float64) { in.TurnsPerLayer = int(v) }},
	{Name: "total_turns", Label: "Total Turns", Integer: true,
		get: func(in *Inputs) float64 { return float64(in.TotalTurns) }, set: func(in *Inputs, v float64) { in.TotalTurns = int(v) }},
	{Name: "horiz_pack_factor", Label: "Horiz. Pack Factor",
		get: func(in *Inputs) float64 { return in.HorizPackFactor }, set: func(in *Inputs, v float64) { in.HorizPackFactor = v }},
	{Name: "vert_pack_factor", Label: "Vert. Pack Factor",
		get: func(in *Inputs) float64 { return in.VertPackFactor }, set: func(in *Inputs, v float64) { in.VertPackFactor = v }},
	{Name: "insulation_factor", Label: "Insulation Factor",
		get: func(in *Inputs) float64 { return in.InsulationFactor }, set: func(in *Inputs, v float64) { in.InsulationFactor = v }},
	{Name: "margin", Label: "Margin", Linear: true,
		get: func(in *Inputs) float64 { return in.Margin }, set: func(in *Inputs, v float64) { in.Margin = v }},
}

// LookupField finds a field by json name or label, ignoring case
func LookupField(name string) (Field, bool) {
	for _, f := range Fields {
		if strings.EqualFold(f.Name, name) || strings.EqualFold(f.Label, name) {
			return f, true
		}
	}
	return Field{}, false
}

// Get returns the field value of in expressed in u
func (f Field) Get(in Inputs, u Unit) float64 {
	v := f.get(&in)
	if f.Linear {
		v *= u.PerMillimetre()
	}
	return v
}

// Format renders the field value in u the way a form shows it
func (f Field) Format(in Inputs, u Unit) string {
	if f.Integer {
		return strconv.Itoa(int(f.get(&in)))
	}
	return strconv.FormatFloat(f.Get(in, u), 'g', 6, 64)
}

// Set parses text as a value in u and returns the updated inputs.
// The result is not validated; Compute does that.
func (f Field) Set(in Inputs, text string, u Unit) (Inputs, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return in, &InputError{Field: f.Name, Reason: fmt.Sprintf("%q is not a number", text)}
	}
	if f.Integer && v != math.Trunc(v) {
		return in, &InputError{Field: f.Name, Reason: fmt.Sprintf("%q is not a whole number", text)}
	}
	if f.Linear {
		v *= u.Millimetres()
	}
	f.set(&in, v)
	return in, nil
}
