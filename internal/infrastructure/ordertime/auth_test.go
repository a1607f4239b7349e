package ordertime

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultClassifier(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Verdict
	}{
		{"incorrect api key", `{"Message":"Incorrect API Key"}`, VerdictNextStrategy},
		{"unauthorized", "Unauthorized", VerdictNextStrategy},
		{"forbidden", "FORBIDDEN", VerdictNextStrategy},
		{"invalid token", "invalid token supplied", VerdictNextStrategy},
		{"server error", "Internal Server Error", VerdictFatal},
		{"empty body", "", VerdictFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultClassifier(http.StatusUnauthorized, []byte(tt.body)))
		})
	}
}

func TestStrategies_Order(t *testing.T) {
	strategies := Strategies("key", "", "")

	names := make([]string, 0, len(strategies))
	for _, s := range strategies {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"bearer", "ApiKey", "X-API-KEY", "x-api-key"}, names)
}

func TestStrategies_BasicWhenConfigured(t *testing.T) {
	strategies := Strategies("key", "user", "pass")
	require.Len(t, strategies, 5)

	req, _ := http.NewRequest(http.MethodPost, "http://example.com", nil)
	strategies[4].Apply(req)

	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "pass", pass)
}

func TestStrategies_RawHeaderCasing(t *testing.T) {
	strategies := Strategies("key", "", "")

	req, _ := http.NewRequest(http.MethodPost, "http://example.com", nil)
	strategies[3].Apply(req)

	assert.Equal(t, []string{"key"}, req.Header["x-api-key"])
	_, canonical := req.Header["X-Api-Key"]
	assert.False(t, canonical)
}
