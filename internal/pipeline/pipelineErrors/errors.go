package pipelineErrors

import (
	"errors"
	"strings"
)

// Input-level errors always propagate to the caller. Generation-quality
// failures at the chunk/generate stages never appear here - they are
// absorbed by the degradation policy.
var (
	// ErrInvalidInput - the request carried neither text nor a file.
	ErrInvalidInput = errors.New("either text content or a file is required")

	// ErrEmptyExtraction - extraction produced no usable text.
	ErrEmptyExtraction = errors.New("no text could be extracted, please provide clearer input")

	// ErrExtraction - the vision/extraction step itself failed.
	ErrExtraction = errors.New("document extraction failed")

	// ErrConfiguration - backend credentials are absent; no external call was attempted.
	ErrConfiguration = errors.New("generation backend is not configured, set the provider API key")

	// ErrRateLimited - the upstream backend rejected the call for quota reasons.
	ErrRateLimited = errors.New("generation backend rate limit exceeded, retry later")
)

var rateLimitKeywords = []string{"quota", "rate limit", "rate_limit", "429", "resource exhausted", "resource_exhausted"}

// IsRateLimited detects upstream throttling heuristically from the error
// text, since backends wrap it in provider-specific types.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, kw := range rateLimitKeywords {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
