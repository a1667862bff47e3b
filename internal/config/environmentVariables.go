package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//document processing
	//the chunker truncates anything above this to respect upstream token limits
	MaxChunkInputChars = 30000
	TruncationMarker   = "\n\n[Content truncated for processing]"

	//per-page pdf extraction guard
	PageExtractTimeout = 10 * time.Second

	//worker pool
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second //generation calls ride on the request
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//llm
	GenerationCallTimeout         = 30 * time.Second
	GeminiModelName               = "gemini-2.5-flash-lite-preview-09-2025"
	OpenAIModelName               = "gpt-4o-mini"
	ModelTemperature      float32 = 0.2

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//upload cap for multipart bodies
	MaxUploadSize = 32 << 20

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisNoteStore     = 0
	RedisArtifactStore = 1
	RedisJobStore      = 2

	//redis timeouts
	RedisNoteStoreTTL     = 0 //notes are durable
	RedisArtifactStoreTTL = 0
	RedisJobStoreTTL      = 24 * time.Hour
)

// Credentials and provider selection come from the environment so that the
// constants above stay checked in.

func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

// LLMProviderName selects the generation backend, "gemini" by default.
func LLMProviderName() string {
	p := os.Getenv("LLM_PROVIDER")
	if p == "" {
		return "gemini"
	}
	return p
}

func AuthToken() string {
	return os.Getenv("API_AUTH_TOKEN")
}

// NoAuthBypass is true when no token is configured - local dev mode.
func NoAuthBypass() bool {
	return AuthToken() == ""
}
