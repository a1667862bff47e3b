package worker

import (
	"context"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/akolanti/LabAPI/internal/config"
	jobmodel "github.com/akolanti/LabAPI/internal/domain/jobModel"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/internal/pipeline"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, 90*time.Second)
	defer cancel()
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	job.CurrentStep = jobmodel.Extracting
	job = processDocument(ctx, job)

	job.EndTime = time.Now()
	if job.Status == jobmodel.JobStatusError {
		saveJobState(ctx, job, jobmodel.JobStatusError)
		return
	}
	saveJobState(ctx, job, jobmodel.JobStatusComplete)
}

// removeWorker handles the bookkeeping of an exit; the caller has already
// decremented the worker count.
func removeWorker(reason string) {

	workerWaitGroup.Done()
	logger.Info("Removed worker ", "reason", reason, "workerCount", atomic.LoadInt64(&currentWorkerCount))
	metrics.DecrementActiveWorkerCount()

}

// processDocument runs the full pipeline on the staged upload. The temp file
// is removed on every path once it has been read.
func processDocument(ctx context.Context, job jobmodel.Job) jobmodel.Job {
	data, err := os.ReadFile(job.JobPayload.DocumentPath)
	if err != nil {
		return jobError(job, "could not read staged document", err)
	}
	defer func() {
		if err := os.Remove(job.JobPayload.DocumentPath); err != nil {
			logger.Error("Failed to remove staged document", "path", job.JobPayload.DocumentPath, "err", err)
		}
	}()

	req := pipeline.DocumentRequest{
		FileName: job.JobPayload.DocumentName,
		MimeType: job.JobPayload.MimeType,
		Bytes:    data,
	}

	job.CurrentStep = jobmodel.Chunking
	result, err := _pipelineService.ProcessDocument(ctx, req)
	if err != nil {
		return jobError(job, "document processing failed", err)
	}

	job.JobPayload.Result = &result
	job.CurrentStep = jobmodel.Complete
	return job
}

func jobError(job jobmodel.Job, message string, err error) jobmodel.Job {
	logger.Error(message, "job Id", job.Id, "err", err)
	job.Error = jobmodel.JobError{
		Code:    http.StatusInternalServerError,
		Message: "Internal Server Error",
		Retry:   true,
	}
	job.Status = jobmodel.JobStatusError
	job.CurrentStep = jobmodel.Error
	return job
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
