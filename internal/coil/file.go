package coil

import (
	"encoding/json"
	"fmt"
	"os"
)

// Design is a named set of inputs as written in a design file.
// Lengths in the file are in Units; omitted fields keep DefaultInputs.
type Design struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Units       Unit   `json:"units,omitempty"`
	Inputs
}

// LoadFromFile loads a design from a JSON file. The returned Inputs are in
// millimetres whatever unit the file was written in.
func LoadFromFile(filepath string) (*Design, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	design, err := ParseDesign(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath, err)
	}
	return design, nil
}

// ParseDesign decodes a JSON design document
func ParseDesign(data []byte) (*Design, error) {
	var header struct {
		Units string `json:"units"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return nil, err
	}
	unit, err := ParseUnit(header.Units)
	if err != nil {
		return nil, err
	}

	design := Design{Units: unit, Inputs: DefaultInputs().InUnit(unit)}
	if err := json.Unmarshal(data, &design); err != nil {
		return nil, err
	}
	design.Units = unit
	design.Inputs = design.Inputs.FromUnit(unit)

	wire, err := ParseWireType(string(design.WireType))
	if err != nil {
		return nil, err
	}
	design.WireType = wire

	if err := design.Validate(); err != nil {
		return nil, err
	}
	return &design, nil
}
