package middleware

import (
	"net/http"
	"strconv"

	"github.com/akolanti/LabAPI/internal/handlers"
	"github.com/akolanti/LabAPI/internal/metrics"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
	id           string
}

var GetHandler = Wrap(handlers.GetHandler)

var ProcessHandler = Wrap(handlers.ProcessHandler)
var GenerateFlashcardsHandler = Wrap(handlers.GenerateFlashcardsHandler)
var GenerateQuizHandler = Wrap(handlers.GenerateQuizHandler)
var GenerateScenarioHandler = Wrap(handlers.GenerateScenarioHandler)
var SaveNoteHandler = Wrap(handlers.SaveNoteHandler)
var GetNoteHandler = Wrap(handlers.GetNoteHandler)
var UpsertArtifactHandler = Wrap(handlers.UpsertArtifactHandler)
var ProcessJobHandler = Wrap(handlers.ProcessJobHandler)
var GetStatusHandler = Wrap(handlers.GetStatusHandler)

func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := processRequest(requestResponseStruct{req: r, writer: rec})

		if re.badRequest.isBadRequest {
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re.logger.Debug("New request received")

	re = injectTrace(re)
	re = authenticate(re)
	if re.badRequest.isBadRequest {
		return re //stop if auth fails
	}
	re = rateLimiter(re)
	if re.badRequest.isBadRequest {
		handleBadRequest(re)
		return re //stop here if rate limit fails
	}

	return re
}
