package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/akolanti/LabAPI/internal/adapter"
	"github.com/akolanti/LabAPI/internal/adapter/utils"
	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/akolanti/LabAPI/internal/domain/jobModel"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/job"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/internal/pipeline"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

var (
	handlerInstance *JobHandler //private singleton
	once            sync.Once
	logJH           *logger_i.Logger
)

type JobHandler struct {
	service       *job.Service
	pipeline      pipeline.Service
	noteStore     noteModel.NoteStore
	artifactStore artifactModel.ArtifactStore
}

type newJobData struct {
	id           string
	traceId      string
	documentName string
	documentPath string
	mimeType     string
}

func InitHandlers(jobService *job.Service, pipelineService pipeline.Service, noteStore noteModel.NoteStore, artifactStore artifactModel.ArtifactStore) {
	once.Do(func() {
		handlerInstance = &JobHandler{
			service:       jobService,
			pipeline:      pipelineService,
			noteStore:     noteStore,
			artifactStore: artifactStore,
		}

		logJH = logger_i.NewLogger("JobHandler")
		logRH = logger_i.NewLogger("RequestHandler")
		logJH.Info("Starting job handler")
	})

}

func CreateNewJob(newJob newJobData) {
	logJH.With("traceId", newJob.traceId, "job id", newJob.id)
	logJH.Info("To create new job")
	handlerInstance.pushToJobChannel(newJob)
}

func GetJobStatus(id string, traceId string) (result jobModel.Job, isFound bool) {
	ctxC := context.WithValue(context.Background(), config.TRACE_ID_KEY, traceId)
	if handlerInstance != nil {
		return handlerInstance.service.JobStore.GetJob(ctxC, id)
	}
	return result, false
}

// ProcessJobHandler godoc
// @Summary      Queue a document for background processing
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues a processing job.
// @Tags         Jobs
// @Accept       multipart/form-data
// @Produce      json
// @Param        document  formData  file  true  "The document to process"
// @Success      202  {object}  api.InitJobResponse
// @Failure      400  {object}  api.ErrorResponse "Missing file or file too large"
// @Failure      500  {object}  api.ErrorResponse "Storage or write error"
// @Router       /jobs/process [post]
func ProcessJobHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, fileMetadata.Filename, "Write error")
		return
	}

	newJob := newJobData{
		id:           utils.GetNewUUID(),
		traceId:      r.Context().Value(config.TRACE_ID_KEY).(string),
		documentName: fileMetadata.Filename,
		documentPath: tempFilePath,
		mimeType:     fileMetadata.Header.Get("Content-Type"),
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a specific job using its ID.
// @Tags         Jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse
// @Failure      404  {object}  api.ErrorResponse "Job not found"
// @Router       /jobs/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// private methods
func (h *JobHandler) pushToJobChannel(newJob newJobData) {

	_job := jobModel.Job{}
	_job.Id = newJob.id
	_job.CreatedTime = time.Now()
	_job.TraceId = newJob.traceId
	_job.Status = jobModel.JobStatusQueued
	_job.CurrentStep = jobModel.ProcessInit
	_job.JobPayload.DocumentName = newJob.documentName
	_job.JobPayload.DocumentPath = newJob.documentPath
	_job.JobPayload.MimeType = newJob.mimeType

	//metrics
	metrics.IncrementJobsInQueue()

	h.service.JobChannel <- _job //this is a blocking send to prevent the system from being overwhelmed
	logJH.Info("Created new job")

	//a new worker is started every N queued requests, the pool trims itself
	//back down when workers go idle
	accurateCount := atomic.AddInt64(&h.service.RequestCount, 1)
	if accurateCount%config.RequestsPerNewWorkerCount == 0 {
		metrics.StartDispatcherSignalCount() //metrics
		logJH.Debug("Worker count ", "count", accurateCount)
		h.service.DispatcherChannel <- true
	}
}
