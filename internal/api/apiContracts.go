package api

import (
	"time"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
)

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Result struct {
	Status           string                      `json:"status"`
	ProcessingResult *noteModel.ProcessingResult `json:"processing_result,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

// ProcessRequest is the JSON body of the synchronous processing endpoint.
// File uploads arrive as multipart/form-data instead.
type ProcessRequest struct {
	Text string `json:"text"`
}

// GenerateRequest feeds the artifact generators. Either noteId resolves a
// stored note, or noteContent plus optional sections is used directly.
type GenerateRequest struct {
	NoteId      string              `json:"noteId,omitempty"`
	NoteContent string              `json:"noteContent,omitempty"`
	Sections    []noteModel.Section `json:"sections,omitempty"`
}

type SaveNoteRequest struct {
	Id          string                 `json:"id,omitempty"`
	UserId      string                 `json:"userId,omitempty"`
	Title       string                 `json:"title" validate:"required"`
	RawText     string                 `json:"rawText"`
	CleanedText string                 `json:"cleanedText"`
	Sections    []noteModel.Section    `json:"sections"`
	Metadata    noteModel.FileMetadata `json:"metadata"`
}

type ErrorResponse struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Bad Request"`
	Id      string `json:"id,omitempty"`
}
