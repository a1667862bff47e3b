package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/LabAPI/internal/adapter/utils"
	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/middleware"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/health", middleware.GetHandler)

	//synchronous pipeline
	r.Router.Post("/process", middleware.ProcessHandler)
	r.Router.Post("/generate/flashcards", middleware.GenerateFlashcardsHandler)
	r.Router.Post("/generate/quiz", middleware.GenerateQuizHandler)
	r.Router.Post("/generate/scenario", middleware.GenerateScenarioHandler)

	//persistence
	r.Router.Post("/notes", middleware.SaveNoteHandler)
	r.Router.Get("/notes/{id}", middleware.GetNoteHandler)
	r.Router.Put("/artifacts/{kind}/{id}", middleware.UpsertArtifactHandler)

	//background jobs
	r.Router.Post("/jobs/process", middleware.ProcessJobHandler)
	r.Router.Get("/jobs/{id}", middleware.GetStatusHandler)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
