// @title           Lab Notes API
// @version         1.0
// @description     Turns lab procedure documents into typed sections, flashcards, quizzes and simulation scenarios.
// @termsOfService  http://swagger.io/terms/

// @contact.name    API Support
// @contact.url
// @contact.email   ank.github@gmail.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/data/store"
	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	jobmodel "github.com/akolanti/LabAPI/internal/domain/jobModel"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/internal/handlers"
	"github.com/akolanti/LabAPI/internal/job"
	"github.com/akolanti/LabAPI/internal/pipeline"
	"github.com/akolanti/LabAPI/internal/pipeline/llm"
	"github.com/akolanti/LabAPI/internal/pipeline/llm/gemini"
	"github.com/akolanti/LabAPI/internal/pipeline/llm/openai"
	"github.com/akolanti/LabAPI/internal/server"
	"github.com/akolanti/LabAPI/internal/worker"
	"github.com/akolanti/LabAPI/pkg/logger_i"
	"github.com/joho/godotenv"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using process environment")
	}
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init stores, falling back to in-memory when redis is offline
	redisNotes := store.GetRedisNoteStore(serviceContext)
	redisArtifacts := store.GetRedisArtifactStore(serviceContext)
	redisJobs := store.GetRedisJobStore(serviceContext)

	var noteStore noteModel.NoteStore
	var artifactStore artifactModel.ArtifactStore
	var jobStore jobmodel.JobStore

	if redisNotes == nil || redisArtifacts == nil || redisJobs == nil {
		logger.Error("Redis stores are offline, falling back to in-memory storage")
		noteStore = store.InitInMemoryNoteStore()
		artifactStore = store.InitInMemoryArtifactStore()
		jobStore = store.InitInMemoryJobStore()
	} else {
		noteStore = redisNotes
		artifactStore = redisArtifacts
		jobStore = redisJobs
	}

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	llmProvider := selectProvider(serviceContext, logger)
	if llmProvider == nil {
		// The API still serves stored notes and artifacts; processing and
		// generation endpoints answer with a configuration error.
		logger.Error("No generation provider available - processing endpoints will fail until credentials are set")
	}

	pipelineService := pipeline.NewService(llmProvider)

	handlers.InitHandlers(service, pipelineService, noteStore, artifactStore)

	//init worker pool
	worker.InitServices(service, pipelineService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

func selectProvider(ctx context.Context, logger *logger_i.Logger) llm.Provider {
	switch config.LLMProviderName() {
	case "openai":
		logger.Info("Using OpenAI generation backend")
		return openai.GetOpenAIClient(ctx, config.OpenAIAPIKey(), config.OpenAIModelName)
	default:
		logger.Info("Using Gemini generation backend")
		return gemini.GetGeminiClient(ctx, config.GeminiAPIKey(), config.GeminiModelName)
	}
}
