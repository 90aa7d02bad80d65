package gasplan

// Form is a snapshot of the planner card. Transitions return a new Form and
// never modify the receiver.
type Form struct {
	raw    RawParameters
	report *AirBudgetReport
}

// NewForm returns the form with its initial field values.
func NewForm() Form {
	d := DefaultParameters()
	return Form{raw: RawParameters{
		SACRate:       InputFromFloat(d.SACRate),
		TankSize:      InputFromFloat(d.TankSize),
		StartPressure: InputFromFloat(d.StartPressure),
		MaxDepth:      InputFromFloat(d.MaxDepth),
		BottomTime:    InputFromFloat(d.BottomTime),
	}}
}

// FormFrom seeds a form with raw values.
func FormFrom(raw RawParameters) Form {
	return Form{raw: raw}
}

// Raw returns the current field values.
func (f Form) Raw() RawParameters {
	return f.raw
}

// Value returns the raw value of one field.
func (f Form) Value(field Field) (Input, bool) {
	switch field {
	case FieldSACRate:
		return f.raw.SACRate, true
	case FieldTankSize:
		return f.raw.TankSize, true
	case FieldStartPressure:
		return f.raw.StartPressure, true
	case FieldMaxDepth:
		return f.raw.MaxDepth, true
	case FieldBottomTime:
		return f.raw.BottomTime, true
	default:
		return "", false
	}
}

// Set updates one field. The last report stays visible until the next Calculate.
func (f Form) Set(field Field, value Input) Form {
	next := f
	switch field {
	case FieldSACRate:
		next.raw.SACRate = value
	case FieldTankSize:
		next.raw.TankSize = value
	case FieldStartPressure:
		next.raw.StartPressure = value
	case FieldMaxDepth:
		next.raw.MaxDepth = value
	case FieldBottomTime:
		next.raw.BottomTime = value
	}
	return next
}

// Calculate computes a fresh report from the current fields.
func (f Form) Calculate() Form {
	report := Plan(f.raw)
	next := f
	next.report = &report
	return next
}

// Report returns the last computed report, if any.
func (f Form) Report() (AirBudgetReport, bool) {
	if f.report == nil {
		return AirBudgetReport{}, false
	}
	return *f.report, true
}

// Reset drops the computed report and restores the initial values.
func (f Form) Reset() Form {
	return NewForm()
}
