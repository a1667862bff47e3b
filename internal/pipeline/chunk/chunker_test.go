package chunk

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
)

type stubProvider struct {
	generateFunc func(ctx context.Context, sys string, prompt string) (string, error)
}

func (s *stubProvider) Generate(ctx context.Context, sys string, prompt string) (string, error) {
	return s.generateFunc(ctx, sys, prompt)
}

func (s *stubProvider) GenerateVision(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
	return "", errors.New("not used by chunker")
}

func TestTruncate_Boundary(t *testing.T) {
	atLimit := strings.Repeat("a", config.MaxChunkInputChars)
	if got := Truncate(atLimit); got != atLimit {
		t.Error("input at exactly the limit must pass untouched")
	}

	overLimit := atLimit + "b"
	got := Truncate(overLimit)
	if !strings.HasSuffix(got, config.TruncationMarker) {
		t.Errorf("truncated text missing marker, tail: %q", got[len(got)-50:])
	}
	if got[:config.MaxChunkInputChars] != atLimit {
		t.Error("truncation must keep the first MaxChunkInputChars characters")
	}
	if strings.Contains(got[:len(got)-len(config.TruncationMarker)], "b") {
		t.Error("characters past the limit must be dropped")
	}
}

func TestTruncate_MultibyteBoundary(t *testing.T) {
	// 2 bytes per character, so byte length is double the character limit.
	micro := strings.Repeat("µ", config.MaxChunkInputChars)
	if got := Truncate(micro); got != micro {
		t.Error("multibyte input at exactly the character limit must pass untouched")
	}

	got := Truncate(micro + "µ")
	if !strings.HasSuffix(got, config.TruncationMarker) {
		t.Error("multibyte input past the limit must carry the marker")
	}
	body := strings.TrimSuffix(got, config.TruncationMarker)
	if kept := utf8.RuneCountInString(body); kept != config.MaxChunkInputChars {
		t.Errorf("kept %d characters, want %d", kept, config.MaxChunkInputChars)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation must not split a multibyte sequence")
	}
}

func TestChunkText_TruncatesPromptNotFallback(t *testing.T) {
	longText := strings.Repeat("x", config.MaxChunkInputChars+500)
	extracted := noteModel.ExtractedText{Text: longText, Source: noteModel.SourceDirect, Length: len(longText)}

	var seenPrompt string
	p := &stubProvider{generateFunc: func(ctx context.Context, sys string, prompt string) (string, error) {
		seenPrompt = prompt
		return "", errors.New("provider down")
	}}

	result, err := ChunkText(context.Background(), p, extracted, noteModel.FileMetadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(seenPrompt, config.TruncationMarker) {
		t.Error("prompt should carry the truncation marker for oversized input")
	}
	// The degraded section preserves the full original text.
	if result.Sections[0].Content != longText {
		t.Errorf("fallback section length got %d, want %d", len(result.Sections[0].Content), len(longText))
	}
	if result.RawText != longText {
		t.Error("RawText must stay untruncated")
	}
}

func TestChunkText_EmptySectionsGetsCatchAll(t *testing.T) {
	extracted := noteModel.ExtractedText{Text: "Some procedure.", Source: noteModel.SourceDirect, Length: 15}
	p := &stubProvider{generateFunc: func(ctx context.Context, sys string, prompt string) (string, error) {
		return `{"rawText":"Some procedure.","cleanedText":"Some procedure.","sections":[]}`, nil
	}}

	result, err := ChunkText(context.Background(), p, extracted, noteModel.FileMetadata{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Sections) != 1 {
		t.Fatalf("Sections got %d, want 1", len(result.Sections))
	}
	if result.Sections[0].Type != noteModel.SectionOther || result.Sections[0].Content != "Some procedure." {
		t.Errorf("catch-all section got %+v", result.Sections[0])
	}
}

func TestBuildResult_Defaults(t *testing.T) {
	extracted := noteModel.ExtractedText{Text: "original", Source: noteModel.SourceDirect, Length: 8}
	resp := chunkResponse{
		Sections: []wireSection{
			{Type: "safety_notes", Title: "", Content: "Wear goggles.", Order: 0},
			{Type: "materials", Title: "Materials", Content: "Goggles.", Order: 1},
		},
	}

	result := buildResult(resp, extracted, noteModel.FileMetadata{FileName: "a.txt"})

	if result.RawText != "original" || result.CleanedText != "original" {
		t.Error("omitted rawText/cleanedText must backfill from the extraction")
	}
	// Order 0 defaults to position+1, so both sections claim order 1 and the
	// stable sort keeps array position.
	if result.Sections[0].Title != "Untitled" {
		t.Errorf("blank title got %q, want Untitled", result.Sections[0].Title)
	}
	if result.Sections[0].Order != 1 || result.Sections[1].Order != 1 {
		t.Errorf("orders got %d, %d", result.Sections[0].Order, result.Sections[1].Order)
	}
	if result.Sections[0].Type != noteModel.SectionSafetyNotes {
		t.Errorf("type got %s", result.Sections[0].Type)
	}
	if result.Metadata.Status != noteModel.NoteStatusCompleted {
		t.Errorf("Status got %s, want %s", result.Metadata.Status, noteModel.NoteStatusCompleted)
	}
	if result.Metadata.FileName != "a.txt" {
		t.Error("metadata fields must carry through")
	}
}
