package ordertime

import (
	"net/http"
	"regexp"
)

// AuthStrategy sets one candidate set of credentials on a request
type AuthStrategy struct {
	Name  string
	Apply func(req *http.Request)
}

// Verdict tells the client what to do with a failed response
type Verdict int

const (
	// VerdictFatal aborts the call with the upstream status and body
	VerdictFatal Verdict = iota
	// VerdictNextStrategy retries the same request with the next auth strategy
	VerdictNextStrategy
)

// Classifier decides whether a non-2xx response was an auth rejection
type Classifier func(status int, body []byte) Verdict

// authFailurePattern matches the rejection messages the list API is known to return.
// The vendor does not document its auth contract, so this is a heuristic.
var authFailurePattern = regexp.MustCompile(`(?i)incorrect api key|unauthorized|forbidden|invalid token`)

// DefaultClassifier moves on to the next strategy only for recognizable auth failures
func DefaultClassifier(status int, body []byte) Verdict {
	if authFailurePattern.Match(body) {
		return VerdictNextStrategy
	}
	return VerdictFatal
}

// Strategies returns the header schemes in the order they are attempted.
// Basic auth is appended only when a username is configured.
func Strategies(apiKey, username, password string) []AuthStrategy {
	strategies := []AuthStrategy{
		{Name: "bearer", Apply: func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+apiKey)
		}},
		{Name: "ApiKey", Apply: rawHeader("ApiKey", apiKey)},
		{Name: "X-API-KEY", Apply: rawHeader("X-API-KEY", apiKey)},
		{Name: "x-api-key", Apply: rawHeader("x-api-key", apiKey)},
	}

	if username != "" {
		strategies = append(strategies, AuthStrategy{Name: "basic", Apply: func(req *http.Request) {
			req.SetBasicAuth(username, password)
		}})
	}

	return strategies
}

// rawHeader bypasses canonicalization so the header goes out with the exact casing given
func rawHeader(name, value string) func(req *http.Request) {
	return func(req *http.Request) {
		req.Header[name] = []string{value}
	}
}
