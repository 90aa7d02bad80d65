package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "blank", text: "   ", want: 0},
		{name: "single short word", text: "hi", want: 1},
		{name: "sentence", text: "planifica una inmersion a treinta metros", want: (6 + 40/4) / 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Estimate(tc.text))
		})
	}
}

func TestCounterWithoutEncodingEstimates(t *testing.T) {
	var nilCounter *Counter
	require.Equal(t, Estimate("hola buzo"), nilCounter.Count("hola buzo"))
	require.Equal(t, Estimate("hola buzo"), (&Counter{}).Count("hola buzo"))
	require.Zero(t, (&Counter{}).Count(""))
}
