package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
	"github.com/akolanti/LabAPI/internal/pipeline/pipelineErrors"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

const visionInstruction = "Extract all text from this image exactly as it appears. " +
	"Return only the raw text with no commentary, no markdown and no formatting."

var logger = logger_i.NewLogger("Extractor")

type docKind int

const (
	kindImage docKind = iota
	kindPDF
	kindOfficeText
	kindUnsupported
)

// Extract turns a normalized RawInput into text. Pasted text passes through
// verbatim, images go through one vision generation call, pdf and office
// formats are extracted natively, and everything else degrades to a
// deterministic placeholder rather than failing.
func Extract(ctx context.Context, provider llm.Provider, in noteModel.RawInput) (noteModel.ExtractedText, error) {
	if in.Kind == noteModel.InputKindText {
		return finishExtraction(in.Text, noteModel.SourceDirect)
	}

	switch classify(in.MimeType, in.FileName) {
	case kindImage:
		return extractViaVision(ctx, provider, in)
	case kindPDF:
		text, err := extractPDF(in.Bytes)
		if err != nil {
			logger.Error("pdf extraction failed", "file", in.FileName, "error", err)
			return noteModel.ExtractedText{}, fmt.Errorf("%w: %s", pipelineErrors.ErrExtraction, err.Error())
		}
		return finishExtraction(text, noteModel.SourceDirect)
	case kindOfficeText:
		text, err := extractOfficeText(in.Bytes, in.FileName)
		if err != nil {
			logger.Error("document extraction failed", "file", in.FileName, "error", err)
			return noteModel.ExtractedText{}, fmt.Errorf("%w: %s", pipelineErrors.ErrExtraction, err.Error())
		}
		return finishExtraction(text, noteModel.SourceDirect)
	default:
		// Deliberate degradation: downstream stages still run, just with
		// low-information content.
		logger.Warn("unsupported upload format", "file", in.FileName, "mime", in.MimeType)
		placeholder := fmt.Sprintf(
			"Document: %s. Structured text extraction is not available for this file format (%s). "+
				"Paste the document text directly for full processing.",
			in.FileName, in.MimeType)
		return noteModel.ExtractedText{
			Text:   placeholder,
			Source: noteModel.SourceUnsupported,
			Length: len(placeholder),
		}, nil
	}
}

func extractViaVision(ctx context.Context, provider llm.Provider, in noteModel.RawInput) (noteModel.ExtractedText, error) {
	if provider == nil {
		return noteModel.ExtractedText{}, pipelineErrors.ErrConfiguration
	}

	text, err := provider.GenerateVision(ctx, visionInstruction, in.MimeType, in.Bytes)
	if err != nil {
		// Extraction has no meaningful fallback - a failed vision call is
		// surfaced, unlike chunking and generation failures.
		logger.Error("vision extraction failed", "file", in.FileName, "error", err)
		if pipelineErrors.IsRateLimited(err) {
			return noteModel.ExtractedText{}, fmt.Errorf("%w: %s", pipelineErrors.ErrRateLimited, err.Error())
		}
		return noteModel.ExtractedText{}, fmt.Errorf("%w: %s", pipelineErrors.ErrExtraction, err.Error())
	}
	return finishExtraction(text, noteModel.SourceVision)
}

// finishExtraction applies the shared post-condition: a successful
// extraction never yields empty text.
func finishExtraction(text string, source noteModel.TextSource) (noteModel.ExtractedText, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return noteModel.ExtractedText{}, pipelineErrors.ErrEmptyExtraction
	}
	return noteModel.ExtractedText{
		Text:   trimmed,
		Source: source,
		Length: len(trimmed),
	}, nil
}

func classify(mimeType string, fileName string) docKind {
	if strings.HasPrefix(mimeType, "image/") {
		return kindImage
	}
	if mimeType == "application/pdf" {
		return kindPDF
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return kindPDF
	case ".docx", ".odt", ".rtf", ".txt", ".md":
		return kindOfficeText
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return kindImage
	}

	switch mimeType {
	case "text/plain", "text/markdown",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.oasis.opendocument.text",
		"application/rtf":
		return kindOfficeText
	}
	return kindUnsupported
}
