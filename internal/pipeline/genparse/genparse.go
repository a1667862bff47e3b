package genparse

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/akolanti/LabAPI/internal/pipeline/llm"
)

// ErrNoJSON means the backend answered but its text held no parseable
// JSON object matching the expected shape.
var ErrNoJSON = errors.New("no valid JSON object in generation response")

// DegradationPolicy is the cross-cutting rule applied at every generation
// boundary: it decides whether a transport or parse failure is absorbed
// into the caller's fallback value or propagated as an error.
type DegradationPolicy interface {
	Absorb(err error) bool
}

type absorbAll struct{}

func (absorbAll) Absorb(error) bool { return true }

// AbsorbAll degrades every failure into the fallback value. The chunker and
// all artifact generators run under this policy - the caller always gets a
// structurally valid result, with quality degrading instead of availability.
var AbsorbAll DegradationPolicy = absorbAll{}

// FirstJSONObject scans free-form text for the first balanced JSON object
// and returns it. Braces inside quoted strings and escape sequences are
// skipped, so nested or decorative braces in content don't break extraction.
// Candidates that balance but fail json.Valid are passed over in favor of
// later ones.
func FirstJSONObject(raw string) (string, bool) {
	offset := 0
	for {
		rel := strings.IndexByte(raw[offset:], '{')
		if rel < 0 {
			return "", false
		}
		start := offset + rel

		if end, ok := scanBalanced(raw, start); ok {
			candidate := raw[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}
		offset = start + 1
	}
}

// scanBalanced walks from the opening brace at start and returns the index
// of its matching close brace.
func scanBalanced(raw string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return i, true
				}
			}
		}
	}
	return 0, false
}

// Parse extracts the first balanced JSON object from raw and unmarshals it
// into T. The second return reports whether the parse succeeded; on failure
// the fallback value is returned instead.
func Parse[T any](raw string, fallback func() T) (T, bool) {
	if obj, ok := FirstJSONObject(raw); ok {
		var v T
		if err := json.Unmarshal([]byte(obj), &v); err == nil {
			return v, true
		}
	}
	return fallback(), false
}

// CallAndParse is the one generation-call routine shared by the chunker and
// all artifact generators: issue the call, locate the JSON object in the
// response, parse it, and consult the policy when either step fails.
func CallAndParse[T any](ctx context.Context, provider llm.Provider, policy DegradationPolicy, systemInstruction string, prompt string, fallback func() T) (T, error) {
	raw, err := provider.Generate(ctx, systemInstruction, prompt)
	if err != nil {
		if policy.Absorb(err) {
			return fallback(), nil
		}
		var zero T
		return zero, err
	}

	v, ok := Parse(raw, fallback)
	if !ok && !policy.Absorb(ErrNoJSON) {
		var zero T
		return zero, ErrNoJSON
	}
	return v, nil
}
