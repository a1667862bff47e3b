package pipeline

import (
	"context"
	"time"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/internal/pipeline/chunk"
	"github.com/akolanti/LabAPI/internal/pipeline/extract"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

func (s *service) executeExtractStep(ctx context.Context, log *logger_i.Logger, input noteModel.RawInput) (noteModel.ExtractedText, error) {
	log.Debug("ProcessDocument", "step", "extract", "kind", input.Kind)

	stepCtx, cancel := stepContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	return extract.Extract(stepCtx, s.llmProvider, input)
}

func (s *service) executeChunkStep(ctx context.Context, log *logger_i.Logger, extracted noteModel.ExtractedText, meta noteModel.FileMetadata) (noteModel.ProcessingResult, error) {
	log.Debug("ProcessDocument", "step", "chunk", "length", extracted.Length)

	stepCtx, cancel := stepContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("chunking", time.Since(start)) }()

	return chunk.ChunkText(stepCtx, s.llmProvider, extracted, meta)
}

func executeGenerateStep[T any](ctx context.Context, label string, fn func(context.Context) (T, error)) (T, error) {
	stepCtx, cancel := stepContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics(label, time.Since(start)) }()

	return fn(stepCtx)
}
