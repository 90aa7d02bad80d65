package gasplan

import (
	"math"
	"strconv"
	"strings"
)

// ParseWithDefault converts a raw form value, falling back when it is empty,
// not a number, not finite or negative. Zero is kept.
func ParseWithDefault(raw string, fallback float64) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return fallback
	}
	return v
}

// Normalize applies the documented default to every field.
func Normalize(raw RawParameters) DiveParameters {
	return DiveParameters{
		SACRate:       ParseWithDefault(string(raw.SACRate), DefaultSACRate),
		TankSize:      ParseWithDefault(string(raw.TankSize), DefaultTankSize),
		StartPressure: ParseWithDefault(string(raw.StartPressure), DefaultStartPressure),
		MaxDepth:      ParseWithDefault(string(raw.MaxDepth), DefaultMaxDepth),
		BottomTime:    ParseWithDefault(string(raw.BottomTime), DefaultBottomTime),
	}
}

// FormatLiters rounds half away from zero and drops the decimals.
func FormatLiters(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0 // folds -0
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}
