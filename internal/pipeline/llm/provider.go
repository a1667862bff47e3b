package llm

import "context"

// Provider is the black-box generation capability the pipeline calls.
// Generate issues a plain text call, GenerateVision carries an inline image.
type Provider interface {
	Generate(ctx context.Context, systemInstruction string, prompt string) (string, error)
	GenerateVision(ctx context.Context, prompt string, mimeType string, imageData []byte) (string, error)
}
