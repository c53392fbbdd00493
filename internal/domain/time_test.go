package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeMarshalJSON(t *testing.T) {
	moment := time.Date(2025, 3, 14, 9, 26, 53, 123456789, time.UTC)

	data, err := json.Marshal(NewTime(moment))
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-14T09:26:53"`, string(data))
}

func TestTimeRoundTrip(t *testing.T) {
	original := NewTime(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC))

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Time
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, original.Equal(decoded.Time))
	assert.Equal(t, time.UTC, decoded.Location())
}

func TestTimeUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not a string", data: `42`},
		{name: "wrong layout", data: `"2024-12-31 23:59:59"`},
		{name: "zone suffix", data: `"2024-12-31T23:59:59Z"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var decoded Time
			assert.Error(t, json.Unmarshal([]byte(tt.data), &decoded))
		})
	}
}

func TestUserKey(t *testing.T) {
	assert.Equal(t, "123456", UserKey(123456))
}
