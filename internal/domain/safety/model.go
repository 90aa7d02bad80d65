package safety

import (
	"github.com/yanqian/diveplanner/internal/domain/gasplan"
	"github.com/yanqian/diveplanner/pkg/metrics"
)

// Config configures the safety summary prompt.
type Config struct {
	SystemPrompt string
	Temperature  float32
	MaxWords     int
}

// Profile is the planned dive profile.
type Profile string

const (
	ProfileMultilevelAscending Profile = "multilevel_ascending"
	ProfileSquare              Profile = "square"
	ProfileSawtooth            Profile = "sawtooth"
)

var profileLabels = map[Profile]string{
	ProfileMultilevelAscending: "Multinivel ascendente",
	ProfileSquare:              "Ideal",
	ProfileSawtooth:            "Diente de Sierra",
}

// SawtoothWarning is returned whenever the sawtooth profile is requested.
const SawtoothWarning = "El perfil en diente de sierra es peligroso: evita ascensos y descensos repetidos."

var riskLabels = map[string]string{
	"cold":     "Frío",
	"tired":    "Cansancio",
	"currents": "Corrientes Fuertes",
}

// riskOrder keeps prompt output stable.
var riskOrder = []string{"cold", "tired", "currents"}

// Request describes the planned dive.
type Request struct {
	Objective  string        `json:"objective"`
	MaxDepth   gasplan.Input `json:"maxDepth"`
	BottomTime gasplan.Input `json:"bottomTime"`
	Risks      []string      `json:"risks"`
	Profile    Profile       `json:"profile"`
}

// Response is the generated summary.
type Response struct {
	Summary        string              `json:"summary"`
	Objective      string              `json:"objective"`
	MaxDepth       float64             `json:"maxDepth"`
	BottomTime     float64             `json:"bottomTime"`
	Risks          []string            `json:"risks"`
	Profile        Profile             `json:"profile"`
	ProfileLabel   string              `json:"profileLabel"`
	ProfileWarning string              `json:"profileWarning,omitempty"`
	TokenUsage     *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
