package genparse

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/LabAPI/internal/pipeline/llm"
)

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		found    bool
	}{
		{
			name:     "Plain_Object",
			raw:      `{"a":1}`,
			expected: `{"a":1}`,
			found:    true,
		},
		{
			name:     "Object_Inside_Prose",
			raw:      "Sure! Here is the JSON you asked for:\n{\"a\": 1}\nLet me know if you need more.",
			expected: `{"a": 1}`,
			found:    true,
		},
		{
			name:     "Markdown_Fence",
			raw:      "```json\n{\"sections\": []}\n```",
			expected: `{"sections": []}`,
			found:    true,
		},
		{
			name:     "Braces_Inside_Quoted_String",
			raw:      `result: {"content": "use {braces} and \"quotes\" freely", "order": 1} trailing`,
			expected: `{"content": "use {braces} and \"quotes\" freely", "order": 1}`,
			found:    true,
		},
		{
			name:     "Nested_Objects",
			raw:      `{"outer": {"inner": {"deep": true}}}`,
			expected: `{"outer": {"inner": {"deep": true}}}`,
			found:    true,
		},
		{
			name:     "Invalid_Candidate_Then_Valid",
			raw:      `{not json} but then {"ok": true}`,
			expected: `{"ok": true}`,
			found:    true,
		},
		{
			name:  "No_JSON_At_All",
			raw:   "the model refused and wrote an apology instead",
			found: false,
		},
		{
			name:  "Unbalanced",
			raw:   `{"a": 1`,
			found: false,
		},
		{
			name:  "Empty",
			raw:   "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FirstJSONObject(tt.raw)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if tt.found && got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

type testPayload struct {
	Title string `json:"title"`
	Count int    `json:"count"`
}

func fallbackPayload() testPayload {
	return testPayload{Title: "fallback", Count: 1}
}

func TestParse_FallbackOnGarbage(t *testing.T) {
	v, ok := Parse("no json here", fallbackPayload)
	if ok {
		t.Fatal("expected parse failure")
	}
	if v.Title != "fallback" || v.Count != 1 {
		t.Errorf("fallback not applied: %+v", v)
	}
}

func TestParse_UsesEmbeddedJSON(t *testing.T) {
	v, ok := Parse(`prose {"title": "real", "count": 3} more prose`, fallbackPayload)
	if !ok {
		t.Fatal("expected parse success")
	}
	if v.Title != "real" || v.Count != 3 {
		t.Errorf("parsed wrong value: %+v", v)
	}
}

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) Generate(ctx context.Context, sys string, prompt string) (string, error) {
	return s.response, s.err
}

func (s *stubProvider) GenerateVision(ctx context.Context, prompt string, mime string, data []byte) (string, error) {
	return s.response, s.err
}

var _ llm.Provider = (*stubProvider)(nil)

func TestCallAndParse_TransportFailureAbsorbed(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}

	v, err := CallAndParse(context.Background(), p, AbsorbAll, "sys", "prompt", fallbackPayload)
	if err != nil {
		t.Fatalf("AbsorbAll must not propagate transport failures: %v", err)
	}
	if v.Title != "fallback" {
		t.Errorf("expected fallback value, got %+v", v)
	}
}

func TestCallAndParse_ParseFailureAbsorbed(t *testing.T) {
	p := &stubProvider{response: "I could not produce JSON, sorry"}

	v, err := CallAndParse(context.Background(), p, AbsorbAll, "sys", "prompt", fallbackPayload)
	if err != nil {
		t.Fatalf("AbsorbAll must not propagate parse failures: %v", err)
	}
	if v.Title != "fallback" {
		t.Errorf("expected fallback value, got %+v", v)
	}
}

func TestCallAndParse_Success(t *testing.T) {
	p := &stubProvider{response: "```json\n{\"title\": \"generated\", \"count\": 2}\n```"}

	v, err := CallAndParse(context.Background(), p, AbsorbAll, "sys", "prompt", fallbackPayload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Title != "generated" || v.Count != 2 {
		t.Errorf("got %+v", v)
	}
}

type absorbNone struct{}

func (absorbNone) Absorb(error) bool { return false }

func TestCallAndParse_StrictPolicyPropagates(t *testing.T) {
	p := &stubProvider{err: errors.New("boom")}

	_, err := CallAndParse(context.Background(), p, absorbNone{}, "sys", "prompt", fallbackPayload)
	if err == nil {
		t.Fatal("strict policy should propagate transport failures")
	}
}
