package jobModel

import (
	"context"
	"time"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
)

type JobStatus string
type InternalStatus string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	ProcessInit InternalStatus = "Init"
	Extracting  InternalStatus = "Extracting"
	Chunking    InternalStatus = "Chunking"
	StoreCall   InternalStatus = "Store"
	Error       InternalStatus = "Error"

	Complete InternalStatus = "Complete"
)

// Job tracks one asynchronous document-processing request. The synchronous
// endpoints run the same pipeline inline and never create a Job.
type Job struct {
	Id          string         `json:"id"`
	TraceId     string         `json:"trace_id"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	DocumentName string `json:"document_name,omitempty"`
	DocumentPath string `json:"document_path,omitempty"`
	MimeType     string `json:"mime_type,omitempty"`

	Result *noteModel.ProcessingResult `json:"result,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}
