package gasplan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseWithDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "plain number", raw: "15", want: 15},
		{name: "decimal", raw: "17.5", want: 17.5},
		{name: "surrounding spaces", raw: "  220 ", want: 220},
		{name: "zero is kept", raw: "0", want: 0},
		{name: "empty", raw: "", want: 99},
		{name: "blank", raw: "   ", want: 99},
		{name: "text", raw: "doce", want: 99},
		{name: "negative", raw: "-3", want: 99},
		{name: "nan", raw: "NaN", want: 99},
		{name: "infinity", raw: "+Inf", want: 99},
		{name: "trailing garbage", raw: "12l", want: 99},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ParseWithDefault(tt.raw, 99))
		})
	}
}

func TestNormalizeKeepsExplicitZero(t *testing.T) {
	got := Normalize(RawParameters{TankSize: "0", MaxDepth: "0"})
	require.Equal(t, 0.0, got.TankSize)
	require.Equal(t, 0.0, got.MaxDepth)
	require.Equal(t, DefaultSACRate, got.SACRate)
	require.Equal(t, DefaultStartPressure, got.StartPressure)
	require.Equal(t, DefaultBottomTime, got.BottomTime)
}

func TestInputUnmarshalJSON(t *testing.T) {
	var raw RawParameters
	payload := `{"sacRate":18,"tankSize":"15","startPressure":null,"maxDepth":22.5}`
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	require.Equal(t, Input("18"), raw.SACRate)
	require.Equal(t, Input("15"), raw.TankSize)
	require.Equal(t, Input(""), raw.StartPressure)
	require.Equal(t, Input("22.5"), raw.MaxDepth)
	require.Equal(t, Input(""), raw.BottomTime)

}

func TestInputUnmarshalJSONNonScalarFallsBack(t *testing.T) {
	var raw RawParameters
	payload := `{"sacRate":true,"tankSize":[1,2],"startPressure":{"bar":200},"maxDepth":false,"bottomTime":-3}`
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	require.Equal(t, Input(""), raw.SACRate)
	require.Equal(t, Input(""), raw.TankSize)
	require.Equal(t, Input(""), raw.StartPressure)
	require.Equal(t, Input(""), raw.MaxDepth)
	require.Equal(t, Input("-3"), raw.BottomTime)

	require.Equal(t, DefaultParameters(), Normalize(raw))
}

func TestFormatLiters(t *testing.T) {
	require.Equal(t, "2000", FormatLiters(2000))
	require.Equal(t, "3", FormatLiters(2.5))
	require.Equal(t, "1680", FormatLiters(1680.0000000000002))
	require.Equal(t, "0", FormatLiters(0))
	require.Equal(t, "0", FormatLiters(-0.2))
}
