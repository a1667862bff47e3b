package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/pipeline/pipelineErrors"
)

type mockProvider struct {
	visionFunc func(ctx context.Context, prompt string, mimeType string, data []byte) (string, error)
}

func (m *mockProvider) Generate(ctx context.Context, sys string, prompt string) (string, error) {
	return "", errors.New("not used in extraction")
}

func (m *mockProvider) GenerateVision(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
	return m.visionFunc(ctx, prompt, mimeType, data)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		mime     string
		file     string
		expected docKind
	}{
		{"image/png", "board.png", kindImage},
		{"application/pdf", "protocol.pdf", kindPDF},
		{"", "Protocol.PDF", kindPDF},
		{"", "notes.docx", kindOfficeText},
		{"", "notes.txt", kindOfficeText},
		{"text/markdown", "notes", kindOfficeText},
		{"application/octet-stream", "slides.pptx", kindUnsupported},
		{"", "photo.JPG", kindImage},
	}

	for _, tt := range tests {
		if got := classify(tt.mime, tt.file); got != tt.expected {
			t.Errorf("classify(%q, %q) = %v; want %v", tt.mime, tt.file, got, tt.expected)
		}
	}
}

func TestExtract_DirectTextPassesThrough(t *testing.T) {
	in := noteModel.RawInput{Kind: noteModel.InputKindText, Text: "  Weigh 5 g of NaCl.  "}

	got, err := Extract(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Text != "Weigh 5 g of NaCl." {
		t.Errorf("Text got %q", got.Text)
	}
	if got.Source != noteModel.SourceDirect {
		t.Errorf("Source got %s, want %s", got.Source, noteModel.SourceDirect)
	}
	if got.Length != len(got.Text) {
		t.Errorf("Length got %d, want %d", got.Length, len(got.Text))
	}
}

func TestExtract_UnsupportedFormatDegrades(t *testing.T) {
	in := noteModel.RawInput{
		Kind:     noteModel.InputKindFile,
		FileName: "slides.pptx",
		MimeType: "application/vnd.ms-powerpoint",
		Bytes:    []byte{0x01},
	}

	got, err := Extract(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("unsupported format must not fail, got %v", err)
	}
	if got.Source != noteModel.SourceUnsupported {
		t.Errorf("Source got %s, want %s", got.Source, noteModel.SourceUnsupported)
	}
	if !strings.Contains(got.Text, "slides.pptx") {
		t.Errorf("placeholder should name the file, got %q", got.Text)
	}
}

func TestExtract_VisionPath(t *testing.T) {
	imageInput := noteModel.RawInput{
		Kind:     noteModel.InputKindFile,
		FileName: "board.png",
		MimeType: "image/png",
		Bytes:    []byte{0x89, 0x50},
	}

	t.Run("Success", func(t *testing.T) {
		p := &mockProvider{visionFunc: func(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
			if mimeType != "image/png" {
				t.Errorf("mimeType got %q", mimeType)
			}
			return "Transcribed board notes.", nil
		}}

		got, err := Extract(context.Background(), p, imageInput)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Source != noteModel.SourceVision || got.Text != "Transcribed board notes." {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("Nil_Provider", func(t *testing.T) {
		_, err := Extract(context.Background(), nil, imageInput)
		if !errors.Is(err, pipelineErrors.ErrConfiguration) {
			t.Fatalf("error got %v, want %v", err, pipelineErrors.ErrConfiguration)
		}
	})

	t.Run("Rate_Limit_Keyword", func(t *testing.T) {
		p := &mockProvider{visionFunc: func(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
			return "", errors.New("quota exceeded for model")
		}}

		_, err := Extract(context.Background(), p, imageInput)
		if !errors.Is(err, pipelineErrors.ErrRateLimited) {
			t.Fatalf("error got %v, want %v", err, pipelineErrors.ErrRateLimited)
		}
	})
}

func TestFinishExtraction_EmptyRejected(t *testing.T) {
	_, err := finishExtraction(" \n\t ", noteModel.SourceDirect)
	if !errors.Is(err, pipelineErrors.ErrEmptyExtraction) {
		t.Fatalf("error got %v, want %v", err, pipelineErrors.ErrEmptyExtraction)
	}
}
