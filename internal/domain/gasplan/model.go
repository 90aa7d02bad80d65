package gasplan

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Planner defaults applied when a raw field is missing or unusable.
const (
	DefaultSACRate       = 20.0
	DefaultTankSize      = 12.0
	DefaultStartPressure = 200.0
	DefaultMaxDepth      = 30.0
	DefaultBottomTime    = 25.0
)

// WarningText is shown when the planned consumption eats into the reserve.
const WarningText = "ADVERTENCIA: Consumo excede 2/3."

// Field names one of the five planner inputs.
type Field string

const (
	FieldSACRate       Field = "sacRate"
	FieldTankSize      Field = "tankSize"
	FieldStartPressure Field = "startPressure"
	FieldMaxDepth      Field = "maxDepth"
	FieldBottomTime    Field = "bottomTime"
)

// Fields lists the planner inputs in form order.
var Fields = []Field{FieldSACRate, FieldTankSize, FieldStartPressure, FieldMaxDepth, FieldBottomTime}

// Input is a raw form value. It decodes from JSON strings, numbers or null.
type Input string

// UnmarshalJSON accepts "12", 12 and null. Any other JSON value (bool,
// array, object) decodes to an empty input so the field takes its default.
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*in = ""
	if len(data) == 0 {
		return nil
	}
	switch {
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Input(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*in = Input(n.String())
		}
	}
	return nil
}

// InputFromFloat renders a number the way a form field would hold it.
func InputFromFloat(v float64) Input {
	return Input(strconv.FormatFloat(v, 'f', -1, 64))
}

// RawParameters holds the planner form exactly as the user typed it.
type RawParameters struct {
	SACRate       Input `json:"sacRate"`
	TankSize      Input `json:"tankSize"`
	StartPressure Input `json:"startPressure"`
	MaxDepth      Input `json:"maxDepth"`
	BottomTime    Input `json:"bottomTime"`
}

// DiveParameters are the normalized numeric inputs.
type DiveParameters struct {
	SACRate       float64 `json:"sacRate"`
	TankSize      float64 `json:"tankSize"`
	StartPressure float64 `json:"startPressure"`
	MaxDepth      float64 `json:"maxDepth"`
	BottomTime    float64 `json:"bottomTime"`
}

// DefaultParameters returns the planner defaults.
func DefaultParameters() DiveParameters {
	return DiveParameters{
		SACRate:       DefaultSACRate,
		TankSize:      DefaultTankSize,
		StartPressure: DefaultStartPressure,
		MaxDepth:      DefaultMaxDepth,
		BottomTime:    DefaultBottomTime,
	}
}

// AirBudgetReport is the value produced by Compute.
type AirBudgetReport struct {
	Parameters         DiveParameters `json:"parameters"`
	TotalLiters        float64        `json:"totalLiters"`
	ATA                float64        `json:"ata"`
	ConsumptionAtDepth float64        `json:"consumptionAtDepth"`
	NeededLiters       float64        `json:"neededLiters"`
	ReserveLiters      float64        `json:"reserveLiters"`
	Warning            bool           `json:"warning"`
	Display            Display        `json:"display"`
}

// Display carries the values as the result panel renders them.
type Display struct {
	Needed  string `json:"needed"`
	Reserve string `json:"reserve"`
	Warning string `json:"warning,omitempty"`
}
