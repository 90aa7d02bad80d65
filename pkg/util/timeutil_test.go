package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileStamp(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*60*60)
	require.Equal(t, "20260704-0830", FileStamp(time.Date(2026, 7, 4, 10, 30, 59, 0, madrid)))
}

func TestNowUTC(t *testing.T) {
	require.Equal(t, time.UTC, NowUTC().Location())
}
