package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/akolanti/LabAPI/internal/adapter"
	"github.com/akolanti/LabAPI/internal/api"
	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/domain/jobModel"
	"github.com/akolanti/LabAPI/internal/pipeline"
	"github.com/akolanti/LabAPI/internal/pipeline/pipelineErrors"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, id string, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(id, message, httpCode))
}

// statusFromPipelineError maps the pipeline sentinels onto HTTP codes.
// Everything unknown is a 500.
func statusFromPipelineError(err error) int {
	switch {
	case errors.Is(err, pipelineErrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, pipelineErrors.ErrEmptyExtraction):
		return http.StatusUnprocessableEntity
	case errors.Is(err, pipelineErrors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writePipelineError(w http.ResponseWriter, err error) {
	code := statusFromPipelineError(err)
	message := http.StatusText(code)
	if code != http.StatusInternalServerError {
		message = err.Error()
	}
	WriteErrorResponse(w, code, "", message)
}

func validateId(id string, traceId string) (result jobModel.Job, isFound bool) {
	if id == "" {
		logRH.Warn("Empty Job ID")
		return jobModel.Job{}, false
	}
	return GetJobStatus(id, traceId)
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		logRH.Warn("context error", "error", ctx.Err())
		return false
	}

	select {
	case <-ctx.Done():
		logRH.Warn("context cancelled")
		return false
	default:
		return true

	}
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}

// readDocumentRequest accepts either a JSON body with pasted text or a
// multipart form with a "document" file plus optional "text" field.
func readDocumentRequest(r *http.Request) (pipeline.DocumentRequest, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
			return pipeline.DocumentRequest{}, err
		}

		req := pipeline.DocumentRequest{Text: r.FormValue("text")}

		fileReader, fileHeader, err := r.FormFile("document")
		if err == nil {
			defer fileReader.Close()
			data, readErr := io.ReadAll(fileReader)
			if readErr != nil {
				return pipeline.DocumentRequest{}, readErr
			}
			req.FileName = fileHeader.Filename
			req.MimeType = fileHeader.Header.Get("Content-Type")
			req.Bytes = data
		}
		return req, nil
	}

	var body api.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return pipeline.DocumentRequest{}, err
	}
	return pipeline.DocumentRequest{Text: body.Text}, nil
}
