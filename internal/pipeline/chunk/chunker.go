package chunk

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/internal/pipeline/genparse"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

const systemInstruction = `You are a laboratory document analyst. You receive the raw text of a lab procedure document and split it into typed sections.

Return a single JSON object with exactly this shape:
{
  "rawText": "the input text unchanged",
  "cleanedText": "the input text with OCR noise and broken line wraps repaired",
  "sections": [
    {"type": "materials", "title": "Section title", "content": "Section content", "order": 1}
  ]
}

Valid section types, use no others:
materials, equipment, procedure_steps, safety_notes, calculations, conceptual_theory, troubleshooting, other

Rules:
- Only extract what is actually in the document. Never invent, summarize or pad content.
- Every piece of the document must land in exactly one section.
- order starts at 1 and follows the document's own sequence.
- Respond with the JSON object only, no surrounding prose.`

var logger = logger_i.NewLogger("Chunker")

// chunkResponse is the wire shape expected back from the generation call.
type chunkResponse struct {
	RawText     string        `json:"rawText"`
	CleanedText string        `json:"cleanedText"`
	Sections    []wireSection `json:"sections"`
}

type wireSection struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// Truncate cuts text at the chunker input limit and appends a readable
// marker. The limit counts characters, not bytes, so the cut never lands
// inside a multibyte sequence. Input at exactly the limit passes untouched.
func Truncate(text string) string {
	if utf8.RuneCountInString(text) <= config.MaxChunkInputChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:config.MaxChunkInputChars]) + config.TruncationMarker
}

// ChunkText sends extracted text through one generation call and builds the
// ProcessingResult. Transport and parse failures both collapse into a single
// catch-all section holding the untouched input - callers never see a
// partially processed result.
func ChunkText(ctx context.Context, provider llm.Provider, extracted noteModel.ExtractedText, meta noteModel.FileMetadata) (noteModel.ProcessingResult, error) {
	prompt := fmt.Sprintf("Document text:\n\n%s", Truncate(extracted.Text))

	fallback := func() chunkResponse {
		logger.Warn("chunking degraded to catch-all section", "source", extracted.Source)
		metrics.CaptureFallback("chunker")
		return chunkResponse{
			RawText:     extracted.Text,
			CleanedText: extracted.Text,
			Sections: []wireSection{
				{Type: string(noteModel.SectionOther), Title: "Content", Content: extracted.Text, Order: 1},
			},
		}
	}

	resp, err := genparse.CallAndParse(ctx, provider, genparse.AbsorbAll, systemInstruction, prompt, fallback)
	if err != nil {
		// Unreachable under AbsorbAll, kept for policy swaps.
		return noteModel.ProcessingResult{}, err
	}

	return buildResult(resp, extracted, meta), nil
}

func buildResult(resp chunkResponse, extracted noteModel.ExtractedText, meta noteModel.FileMetadata) noteModel.ProcessingResult {
	sections := make([]noteModel.Section, 0, len(resp.Sections))
	for i, s := range resp.Sections {
		order := s.Order
		if order < 1 {
			order = i + 1
		}
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = "Untitled"
		}
		sections = append(sections, noteModel.Section{
			Type:    noteModel.NormalizeSectionType(s.Type),
			Title:   title,
			Content: s.Content,
			Order:   order,
		})
	}
	// Ties keep original array position.
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })

	if len(sections) == 0 {
		sections = append(sections, noteModel.Section{
			Type:    noteModel.SectionOther,
			Title:   "Content",
			Content: extracted.Text,
			Order:   1,
		})
	}

	// Backfill whatever the model omitted.
	rawText := resp.RawText
	if rawText == "" {
		rawText = extracted.Text
	}
	cleanedText := resp.CleanedText
	if cleanedText == "" {
		cleanedText = extracted.Text
	}
	meta.Status = noteModel.NoteStatusCompleted

	return noteModel.ProcessingResult{
		RawText:     rawText,
		CleanedText: cleanedText,
		Sections:    sections,
		Metadata:    meta,
	}
}
