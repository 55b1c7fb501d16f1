package coil

import (
	"fmt"
	"strings"
)

// MillimetresPerInch is the exact inch definition
const MillimetresPerInch = 25.4

// Unit is a presentation unit for linear dimensions
type Unit string

const (
	Millimetre Unit = "mm"
	Inch       Unit = "in"
)

// ParseUnit accepts mm/metric and in/inch/english
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mm", "metric", "millimetre", "millimeter", "":
		return Millimetre, nil
	case "in", "inch", "inches", "english", "imperial":
		return Inch, nil
	}
	return "", &InputError{Field: "units", Reason: fmt.Sprintf("unknown unit %q (use mm or in)", s)}
}

// PerMillimetre is the factor that turns millimetres into this unit
func (u Unit) PerMillimetre() float64 {
	if u == Inch {
		return 1 / MillimetresPerInch
	}
	return 1
}

// Millimetres is the size of one of this unit in millimetres
func (u Unit) Millimetres() float64 {
	if u == Inch {
		return MillimetresPerInch
	}
	return 1
}

// Label is the axis annotation for the unit
func (u Unit) Label() string {
	if u == Inch {
		return "in"
	}
	return "mm"
}

// Name is the long form shown in reports
func (u Unit) Name() string {
	if u == Inch {
		return "English (inches)"
	}
	return "Metric (mm)"
}

// Toggle returns the other unit
func (u Unit) Toggle() Unit {
	if u == Inch {
		return Millimetre
	}
	return Inch
}

// InUnit expresses every linear input in u. Counts and factors are unchanged.
func (in Inputs) InUnit(u Unit) Inputs {
	return in.scaleLinear(u.PerMillimetre())
}

// FromUnit reads every linear input as u and converts it back to millimetres
func (in Inputs) FromUnit(u Unit) Inputs {
	return in.scaleLinear(u.Millimetres())
}

// InUnit returns a copy of the result with every length expressed in u
func (r *Result) InUnit(u Unit) *Result {
	k := u.PerMillimetre()
	out := *r
	out.WindowWidth *= k
	out.WindowHeight *= k
	out.EffectiveDiameter *= k
	out.StrandRadius *= k
	out.SpacingX *= k
	out.SpacingY *= k
	out.Strands = make([]Strand, len(r.Strands))
	for i, s := range r.Strands {
		s.X *= k
		s.Y *= k
		out.Strands[i] = s
	}
	return &out
}

func (in Inputs) scaleLinear(k float64) Inputs {
	out := in
	out.InnerDiameter *= k
	out.OuterDiameter *= k
	out.BobbinLength *= k
	out.StrandDiameter *= k
	out.Margin *= k
	out.LeadSlotWidth *= k
	out.LeadSlotDepth *= k
	return out
}
