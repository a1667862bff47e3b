package pipeline

import (
	"context"
	"strings"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/pipeline/generate"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
	"github.com/akolanti/LabAPI/internal/pipeline/pipelineErrors"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

// Service is the public contract of the document pipeline. Handlers and the
// worker pool only ever see this interface, never the provider underneath.
type Service interface {
	ProcessDocument(ctx context.Context, req DocumentRequest) (noteModel.ProcessingResult, error)
	GenerateQuiz(ctx context.Context, in generate.Input) (artifactModel.GeneratedQuiz, error)
	GenerateFlashcards(ctx context.Context, in generate.Input) (artifactModel.FlashcardSet, error)
	GenerateScenario(ctx context.Context, in generate.Input) (artifactModel.SimulationScenario, error)
}

// DocumentRequest carries one inbound processing request. Text wins over
// the file when both are present.
type DocumentRequest struct {
	Text     string
	FileName string
	MimeType string
	Bytes    []byte
}

type service struct {
	llmProvider llm.Provider
	logger      *logger_i.Logger
}

func NewService(provider llm.Provider) Service {
	return &service{
		llmProvider: provider,
		logger:      logger_i.NewLogger("Pipeline Service"),
	}
}

// normalizeInput constraint-checks the request and produces exactly one
// RawInput. No side effects.
func normalizeInput(req DocumentRequest) (noteModel.RawInput, error) {
	if text := strings.TrimSpace(req.Text); text != "" {
		return noteModel.RawInput{
			Kind: noteModel.InputKindText,
			Text: text,
		}, nil
	}
	if len(req.Bytes) > 0 {
		return noteModel.RawInput{
			Kind:      noteModel.InputKindFile,
			FileName:  req.FileName,
			MimeType:  req.MimeType,
			SizeBytes: int64(len(req.Bytes)),
			Bytes:     req.Bytes,
		}, nil
	}
	return noteModel.RawInput{}, pipelineErrors.ErrInvalidInput
}

func (s *service) ProcessDocument(ctx context.Context, req DocumentRequest) (noteModel.ProcessingResult, error) {
	inMethodLogger := s.logger.With("traceId", traceId(ctx))

	// Fail fast before any external call when credentials are absent.
	if s.llmProvider == nil {
		return noteModel.ProcessingResult{}, pipelineErrors.ErrConfiguration
	}

	input, err := normalizeInput(req)
	if err != nil {
		inMethodLogger.Warn("rejecting request with no usable input")
		return noteModel.ProcessingResult{}, err
	}

	extracted, err := s.executeExtractStep(ctx, inMethodLogger, input)
	if err != nil {
		return noteModel.ProcessingResult{}, err
	}

	meta := noteModel.FileMetadata{
		FileName:  input.FileName,
		MimeType:  input.MimeType,
		SizeBytes: input.SizeBytes,
		Status:    noteModel.NoteStatusProcessing,
	}

	result, err := s.executeChunkStep(ctx, inMethodLogger, extracted, meta)
	if err != nil {
		return noteModel.ProcessingResult{}, err
	}

	inMethodLogger.Info("document processed", "source", extracted.Source, "sections", len(result.Sections))
	return result, nil
}

func (s *service) GenerateQuiz(ctx context.Context, in generate.Input) (artifactModel.GeneratedQuiz, error) {
	if s.llmProvider == nil {
		return artifactModel.GeneratedQuiz{}, pipelineErrors.ErrConfiguration
	}
	return executeGenerateStep(ctx, "quiz_generation", func(stepCtx context.Context) (artifactModel.GeneratedQuiz, error) {
		return generate.Quiz(stepCtx, s.llmProvider, in)
	})
}

func (s *service) GenerateFlashcards(ctx context.Context, in generate.Input) (artifactModel.FlashcardSet, error) {
	if s.llmProvider == nil {
		return artifactModel.FlashcardSet{}, pipelineErrors.ErrConfiguration
	}
	return executeGenerateStep(ctx, "flashcard_generation", func(stepCtx context.Context) (artifactModel.FlashcardSet, error) {
		return generate.Flashcards(stepCtx, s.llmProvider, in)
	})
}

func (s *service) GenerateScenario(ctx context.Context, in generate.Input) (artifactModel.SimulationScenario, error) {
	if s.llmProvider == nil {
		return artifactModel.SimulationScenario{}, pipelineErrors.ErrConfiguration
	}
	return executeGenerateStep(ctx, "scenario_generation", func(stepCtx context.Context) (artifactModel.SimulationScenario, error) {
		return generate.Scenario(stepCtx, s.llmProvider, in)
	})
}

func traceId(ctx context.Context) string {
	if v, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return v
	}
	return ""
}

func stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.GenerationCallTimeout)
}
