package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/akolanti/LabAPI/internal/adapter/utils"
	"github.com/akolanti/LabAPI/internal/api"
	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/pipeline/generate"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ProcessHandler godoc
// @Summary      Process a lab document
// @Description  Accepts pasted text (JSON) or an uploaded file (multipart) and returns the typed sections synchronously.
// @Tags         Processing
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        request  body      api.ProcessRequest  false  "Pasted document text"
// @Success      200      {object}  noteModel.ProcessingResult
// @Failure      400      {object}  api.ErrorResponse "No usable input"
// @Failure      422      {object}  api.ErrorResponse "Extraction produced no text"
// @Failure      429      {object}  api.ErrorResponse "Provider rate limit"
// @Router       /process [post]
func ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", "remote", r.RemoteAddr)
		return
	}
	defer closeBody(r.Body)

	req, err := readDocumentRequest(r)
	if err != nil {
		logRH.Warn("Bad process request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return
	}

	result, err := handlerInstance.pipeline.ProcessDocument(r.Context(), req)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, result)
}

// GenerateFlashcardsHandler godoc
// @Summary      Generate flashcards
// @Description  Builds a flashcard set from a stored note or inline content. Generation failures degrade to a minimal set, never an error.
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        request  body      api.GenerateRequest  true  "Note reference or inline content"
// @Success      200      {object}  artifactModel.FlashcardSet
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse "Referenced note not found"
// @Router       /generate/flashcards [post]
func GenerateFlashcardsHandler(w http.ResponseWriter, r *http.Request) {
	in, noteId, ok := resolveGenerateInput(w, r)
	if !ok {
		return
	}

	set, err := handlerInstance.pipeline.GenerateFlashcards(r.Context(), in)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	set.NoteId = noteId

	saved, err := handlerInstance.artifactStore.SaveFlashcardSet(r.Context(), set)
	if err != nil {
		logRH.Error("failed to persist flashcard set", "error", err)
		writeJsonResponse(w, http.StatusOK, set)
		return
	}
	writeJsonResponse(w, http.StatusOK, saved)
}

// GenerateQuizHandler godoc
// @Summary      Generate a quiz
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        request  body      api.GenerateRequest  true  "Note reference or inline content"
// @Success      200      {object}  artifactModel.GeneratedQuiz
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse "Referenced note not found"
// @Router       /generate/quiz [post]
func GenerateQuizHandler(w http.ResponseWriter, r *http.Request) {
	in, noteId, ok := resolveGenerateInput(w, r)
	if !ok {
		return
	}

	quiz, err := handlerInstance.pipeline.GenerateQuiz(r.Context(), in)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	quiz.NoteId = noteId

	saved, err := handlerInstance.artifactStore.SaveQuiz(r.Context(), quiz)
	if err != nil {
		logRH.Error("failed to persist quiz", "error", err)
		writeJsonResponse(w, http.StatusOK, quiz)
		return
	}
	writeJsonResponse(w, http.StatusOK, saved)
}

// GenerateScenarioHandler godoc
// @Summary      Generate a simulation scenario
// @Tags         Generation
// @Accept       json
// @Produce      json
// @Param        request  body      api.GenerateRequest  true  "Note reference or inline content"
// @Success      200      {object}  artifactModel.SimulationScenario
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse "Referenced note not found"
// @Router       /generate/scenario [post]
func GenerateScenarioHandler(w http.ResponseWriter, r *http.Request) {
	in, noteId, ok := resolveGenerateInput(w, r)
	if !ok {
		return
	}

	scenario, err := handlerInstance.pipeline.GenerateScenario(r.Context(), in)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	scenario.NoteId = noteId

	saved, err := handlerInstance.artifactStore.SaveScenario(r.Context(), scenario)
	if err != nil {
		logRH.Error("failed to persist scenario", "error", err)
		writeJsonResponse(w, http.StatusOK, scenario)
		return
	}
	writeJsonResponse(w, http.StatusOK, saved)
}

// SaveNoteHandler godoc
// @Summary      Save a processed note
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Param        request  body      api.SaveNoteRequest  true  "Note content"
// @Success      201      {object}  noteModel.Note
// @Failure      400      {object}  api.ErrorResponse
// @Router       /notes [post]
func SaveNoteHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	defer closeBody(r.Body)

	var body api.SaveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		logRH.Warn("Bad save-note request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, body.Id, "title is required")
		return
	}

	note := noteModel.Note{
		Id:          body.Id,
		UserId:      body.UserId,
		Title:       body.Title,
		RawText:     body.RawText,
		CleanedText: body.CleanedText,
		Sections:    body.Sections,
		Metadata:    body.Metadata,
	}
	if note.Id == "" {
		note.Id = utils.GetNewUUID()
	}

	saved, err := handlerInstance.noteStore.SaveNote(r.Context(), note)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, note.Id, "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusCreated, saved)
}

// GetNoteHandler godoc
// @Summary      Fetch a note by id
// @Tags         Notes
// @Produce      json
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  noteModel.Note
// @Failure      404  {object}  api.ErrorResponse
// @Router       /notes/{id} [get]
func GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	id := utils.GetChiURLParam(r, "id")

	note, found := handlerInstance.noteStore.GetNote(r.Context(), id)
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, id, "Note not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, note)
}

// UpsertArtifactHandler godoc
// @Summary      Upsert an artifact
// @Description  Replaces the stored artifact of the given kind under the given id. CreatedAt of an existing record is preserved.
// @Tags         Artifacts
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "flashcards, quiz or scenario"
// @Param        id    path  string  true  "Artifact ID"
// @Success      200   {object}  interface{}
// @Failure      400   {object}  api.ErrorResponse "Unknown artifact kind"
// @Router       /artifacts/{kind}/{id} [put]
func UpsertArtifactHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	defer closeBody(r.Body)

	kind := utils.GetChiURLParam(r, "kind")
	id := utils.GetChiURLParam(r, "id")

	switch kind {
	case "flashcards":
		var set artifactModel.FlashcardSet
		if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, id, "Bad Request")
			return
		}
		set.Id = id
		saved, err := handlerInstance.artifactStore.SaveFlashcardSet(r.Context(), set)
		respondUpsert(w, id, saved, err)
	case "quiz":
		var quiz artifactModel.GeneratedQuiz
		if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, id, "Bad Request")
			return
		}
		quiz.Id = id
		saved, err := handlerInstance.artifactStore.SaveQuiz(r.Context(), quiz)
		respondUpsert(w, id, saved, err)
	case "scenario":
		var scenario artifactModel.SimulationScenario
		if err := json.NewDecoder(r.Body).Decode(&scenario); err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, id, "Bad Request")
			return
		}
		scenario.Id = id
		saved, err := handlerInstance.artifactStore.SaveScenario(r.Context(), scenario)
		respondUpsert(w, id, saved, err)
	default:
		WriteErrorResponse(w, http.StatusBadRequest, id, "Unknown artifact kind: "+kind)
	}
}

func respondUpsert(w http.ResponseWriter, id string, saved any, err error) {
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, id, "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, saved)
}

// resolveGenerateInput decodes the request and resolves a note reference
// into generator input. Returns ok=false after writing the error response.
func resolveGenerateInput(w http.ResponseWriter, r *http.Request) (generate.Input, string, bool) {
	if !validateContext(r.Context()) {
		return generate.Input{}, "", false
	}
	defer closeBody(r.Body)

	var body api.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logRH.Warn("Bad generate request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "", "Bad Request")
		return generate.Input{}, "", false
	}

	if body.NoteId != "" && body.NoteContent == "" {
		note, found := handlerInstance.noteStore.GetNote(r.Context(), body.NoteId)
		if !found {
			WriteErrorResponse(w, http.StatusNotFound, body.NoteId, "Note not found")
			return generate.Input{}, "", false
		}
		return generate.Input{NoteContent: note.CleanedText, Sections: note.Sections}, note.Id, true
	}

	if body.NoteContent == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "noteId or noteContent is required")
		return generate.Input{}, "", false
	}
	return generate.Input{NoteContent: body.NoteContent, Sections: body.Sections}, body.NoteId, true
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logRH.Error("Couldn't close the request body", "error", err)
	}
}
