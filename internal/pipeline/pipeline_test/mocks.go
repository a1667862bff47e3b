package pipeline_test

import (
	"context"
)

// MockLLM implements llm.Provider
type MockLLM struct {
	// Control fields to simulate different behaviors
	OnGenerate       func(ctx context.Context, systemInstruction string, prompt string) (string, error)
	OnGenerateVision func(ctx context.Context, prompt string, mimeType string, imageData []byte) (string, error)

	GenerateCalls       int
	GenerateVisionCalls int
}

func (m *MockLLM) Generate(ctx context.Context, systemInstruction string, prompt string) (string, error) {
	m.GenerateCalls++
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, systemInstruction, prompt)
	}
	return `{"rawText":"","cleanedText":"","sections":[]}`, nil
}

func (m *MockLLM) GenerateVision(ctx context.Context, prompt string, mimeType string, imageData []byte) (string, error) {
	m.GenerateVisionCalls++
	if m.OnGenerateVision != nil {
		return m.OnGenerateVision(ctx, prompt, mimeType, imageData)
	}
	return "mocked vision transcription", nil
}
