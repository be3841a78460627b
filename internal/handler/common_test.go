package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	got, err := parseTimestamp("2025-01-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), got)

	// Zone-less values are read as UTC.
	got, err = parseTimestamp("2025-01-01T10:00:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), got)

	// Offsets are normalized to UTC.
	got, err = parseTimestamp("2025-01-01T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC), got)

	for _, s := range []string{"", "not a time", "2025-13-01T10:00:00Z", "2025/01/01 10:00"} {
		_, err := parseTimestamp(s)
		assert.Error(t, err, s)
	}
}
