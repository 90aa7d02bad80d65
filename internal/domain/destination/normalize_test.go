package destination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDestination(t *testing.T) {
	cases := map[string]string{
		"  Cozumel ":            "cozumel",
		"Islas   Galápagos!":    "islas galapagos",
		"Cabo de Palos, Murcia": "cabo de palos murcia",
		"RAJA-AMPAT":            "raja ampat",
		"¿?":                    "",
	}
	for in, want := range cases {
		require.Equal(t, want, normalizeDestination(in), in)
	}
}

func TestIsNearby(t *testing.T) {
	require.True(t, isNearby("sitios cerca de mí"))
	require.True(t, isNearby("Arrecifes CERCANOS"))
	require.True(t, isNearby("algo cercano"))
	require.False(t, isNearby("Cozumel"))
}
