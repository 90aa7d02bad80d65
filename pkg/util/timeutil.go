package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FileStamp formats t for use in download file names.
func FileStamp(t time.Time) string {
	return t.UTC().Format("20060102-1504")
}
