package noteModel

import "context"

type InputKind string

const (
	InputKindText InputKind = "text"
	InputKindFile InputKind = "file"
)

// RawInput is the single normalized input of one pipeline invocation.
// Exactly one variant is populated: Text for pasted content, the file
// fields for an upload.
type RawInput struct {
	Kind      InputKind
	Text      string
	FileName  string
	MimeType  string
	SizeBytes int64
	Bytes     []byte
}

type TextSource string

const (
	SourceDirect      TextSource = "direct"
	SourceVision      TextSource = "vision"
	SourceUnsupported TextSource = "unsupported"
)

type ExtractedText struct {
	Text   string     `json:"text"`
	Source TextSource `json:"source"`
	Length int        `json:"length"`
}

type SectionType string

const (
	SectionMaterials       SectionType = "materials"
	SectionEquipment       SectionType = "equipment"
	SectionProcedureSteps  SectionType = "procedure_steps"
	SectionSafetyNotes     SectionType = "safety_notes"
	SectionCalculations    SectionType = "calculations"
	SectionTheory          SectionType = "conceptual_theory"
	SectionTroubleshooting SectionType = "troubleshooting"
	SectionOther           SectionType = "other"
)

// SectionTypes lists every valid tag, in the order the chunker advertises them.
var SectionTypes = []SectionType{
	SectionMaterials,
	SectionEquipment,
	SectionProcedureSteps,
	SectionSafetyNotes,
	SectionCalculations,
	SectionTheory,
	SectionTroubleshooting,
	SectionOther,
}

// NormalizeSectionType coerces anything the generator invents to "other".
func NormalizeSectionType(raw string) SectionType {
	for _, t := range SectionTypes {
		if string(t) == raw {
			return t
		}
	}
	return SectionOther
}

type Section struct {
	Type    SectionType `json:"type"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Order   int         `json:"order"`
}

type NoteStatus string

const (
	NoteStatusUploading  NoteStatus = "uploading"
	NoteStatusProcessing NoteStatus = "processing"
	NoteStatusCompleted  NoteStatus = "completed"
	NoteStatusError      NoteStatus = "error"
)

type FileMetadata struct {
	FileName  string     `json:"fileName,omitempty"`
	MimeType  string     `json:"mimeType,omitempty"`
	SizeBytes int64      `json:"sizeBytes,omitempty"`
	Status    NoteStatus `json:"status"`
}

// ProcessingResult is handed to callers as an immutable value. Status is
// always "completed" by the time the pipeline returns it.
type ProcessingResult struct {
	RawText     string       `json:"rawText"`
	CleanedText string       `json:"cleanedText"`
	Sections    []Section    `json:"sections"`
	Metadata    FileMetadata `json:"metadata"`
}

// Note is the persisted form of a ProcessingResult.
type Note struct {
	Id          string       `json:"id"`
	UserId      string       `json:"userId,omitempty"`
	Title       string       `json:"title"`
	RawText     string       `json:"rawText"`
	CleanedText string       `json:"cleanedText"`
	Sections    []Section    `json:"sections"`
	Metadata    FileMetadata `json:"metadata"`
	CreatedAt   string       `json:"createdAt,omitempty"`
	UpdatedAt   string       `json:"updatedAt,omitempty"`
}

type NoteStore interface {
	SaveNote(ctx context.Context, note Note) (Note, error)
	GetNote(ctx context.Context, id string) (Note, bool)
	DeleteNote(ctx context.Context, id string)
}
