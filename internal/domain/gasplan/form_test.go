package gasplan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormStartsWithDefaults(t *testing.T) {
	form := NewForm()
	require.Equal(t, RawParameters{SACRate: "20", TankSize: "12", StartPressure: "200", MaxDepth: "30", BottomTime: "25"}, form.Raw())
	_, ok := form.Report()
	require.False(t, ok)
}

func TestFormTransitionsAreImmutable(t *testing.T) {
	base := NewForm()
	edited := base.Set(FieldTankSize, "15").Set(FieldStartPressure, "220").Set(FieldSACRate, "15").Set(FieldMaxDepth, "18").Set(FieldBottomTime, "40")

	v, ok := base.Value(FieldTankSize)
	require.True(t, ok)
	require.Equal(t, Input("12"), v)

	computed := edited.Calculate()
	_, ok = edited.Report()
	require.False(t, ok)

	report, ok := computed.Report()
	require.True(t, ok)
	require.False(t, report.Warning)
	require.InDelta(t, 1680, report.NeededLiters, tolerance)

	// A stale report survives edits until the next calculation.
	stale := computed.Set(FieldBottomTime, "90")
	staleReport, ok := stale.Report()
	require.True(t, ok)
	require.Equal(t, report, staleReport)

	fresh, _ := stale.Calculate().Report()
	require.True(t, fresh.Warning)

	_, ok = stale.Reset().Report()
	require.False(t, ok)
}

func TestFormUnknownField(t *testing.T) {
	form := NewForm()
	_, ok := form.Value(Field("o2"))
	require.False(t, ok)
	require.Equal(t, form, form.Set(Field("o2"), "32"))
}
