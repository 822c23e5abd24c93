package offload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/offload/offload"
)

func TestParseMarker(t *testing.T) {
	tests := []struct {
		value    string
		expected offload.Marker
	}{
		{value: "clock", expected: offload.Marker{Engine: "clock"}},
		{value: " clock ", expected: offload.Marker{Engine: "clock"}},
		{value: "clock:5s", expected: offload.Marker{Engine: "clock", Args: "5s"}},
		{value: "sse-redis:news", expected: offload.Marker{Engine: "sse-redis", Args: "news"}},
		{
			value:    "sse-redis:server=redis:6379,subscribe=news",
			expected: offload.Marker{Engine: "sse-redis", Args: "server=redis:6379,subscribe=news"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			marker, err := offload.ParseMarker(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, marker)
		})
	}
}

func TestParseMarker_Invalid(t *testing.T) {
	for _, value := range []string{"", " ", ":args"} {
		t.Run(value, func(t *testing.T) {
			_, err := offload.ParseMarker(value)
			assert.ErrorIs(t, err, offload.ErrInvalidMarker)
		})
	}
}

func TestMarker_String(t *testing.T) {
	assert.Equal(t, "clock", offload.Marker{Engine: "clock"}.String())
	assert.Equal(t, "sse-redis:news", offload.Marker{Engine: "sse-redis", Args: "news"}.String())
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected offload.Args
	}{
		{name: "empty", raw: "", expected: offload.Args{}},
		{name: "bare", raw: "news", expected: offload.Args{"subscribe": "news"}},
		{
			name:     "list",
			raw:      "server=10.0.0.1:6379,subscribe=news,buffer_size=8",
			expected: offload.Args{"server": "10.0.0.1:6379", "subscribe": "news", "buffer_size": "8"},
		},
		{name: "empty value", raw: "subscribe=", expected: offload.Args{"subscribe": ""}},
		{name: "spaced key", raw: " subscribe =news", expected: offload.Args{"subscribe": "news"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args, err := offload.ParseArgs(tt.raw, "subscribe")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, args)
		})
	}
}

func TestParseArgs_Invalid(t *testing.T) {
	for _, raw := range []string{"subscribe=news,broken", "=news", "a=1,,b=2"} {
		t.Run(raw, func(t *testing.T) {
			_, err := offload.ParseArgs(raw, "subscribe")
			assert.ErrorIs(t, err, offload.ErrInvalidArgs)
		})
	}
}
