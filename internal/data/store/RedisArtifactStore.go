package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/data/redisStore"
	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

// Key prefixes keep the three artifact kinds apart inside one logical DB.
const (
	flashcardKeyPrefix = "flashcards:"
	quizKeyPrefix      = "quiz:"
	scenarioKeyPrefix  = "scenario:"
)

type RedisArtifactStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisArtifactStore(ctx context.Context) *RedisArtifactStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisArtifactStore)
	if backing == nil {
		return nil
	}
	return &RedisArtifactStore{
		store:  backing,
		logger: logger_i.NewLogger("ArtifactStore"),
	}
}

func getArtifact[T any](ctx context.Context, s *RedisArtifactStore, key string) (T, bool) {
	var out T
	val, err := s.store.Get(ctx, key)
	if s.store.IsNil(err) {
		return out, false
	} else if err != nil {
		s.logger.Error("error reading artifact", "key", key, "error", err)
		return out, false
	}
	if err = json.Unmarshal([]byte(val), &out); err != nil {
		s.logger.Error("stored artifact is unreadable", "key", key, "error", err)
		return out, false
	}
	return out, true
}

func (s *RedisArtifactStore) saveArtifact(ctx context.Context, key string, value any) error {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "key", key)
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err = s.store.Set(ctx, key, data, config.RedisArtifactStoreTTL); err != nil {
		log.Error("error saving artifact", "error", err)
		return err
	}
	log.Debug("Saved artifact to Redis")
	return nil
}

func (s *RedisArtifactStore) SaveFlashcardSet(ctx context.Context, set artifactModel.FlashcardSet) (artifactModel.FlashcardSet, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	set.UpdatedAt = now
	set.CreatedAt = now
	if existing, found := s.GetFlashcardSet(ctx, set.Id); found {
		set.CreatedAt = existing.CreatedAt
	}
	if err := s.saveArtifact(ctx, flashcardKeyPrefix+set.Id, set); err != nil {
		return artifactModel.FlashcardSet{}, err
	}
	return set, nil
}

func (s *RedisArtifactStore) GetFlashcardSet(ctx context.Context, id string) (artifactModel.FlashcardSet, bool) {
	return getArtifact[artifactModel.FlashcardSet](ctx, s, flashcardKeyPrefix+id)
}

func (s *RedisArtifactStore) SaveQuiz(ctx context.Context, quiz artifactModel.GeneratedQuiz) (artifactModel.GeneratedQuiz, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	quiz.UpdatedAt = now
	quiz.CreatedAt = now
	if existing, found := s.GetQuiz(ctx, quiz.Id); found {
		quiz.CreatedAt = existing.CreatedAt
	}
	if err := s.saveArtifact(ctx, quizKeyPrefix+quiz.Id, quiz); err != nil {
		return artifactModel.GeneratedQuiz{}, err
	}
	return quiz, nil
}

func (s *RedisArtifactStore) GetQuiz(ctx context.Context, id string) (artifactModel.GeneratedQuiz, bool) {
	return getArtifact[artifactModel.GeneratedQuiz](ctx, s, quizKeyPrefix+id)
}

func (s *RedisArtifactStore) SaveScenario(ctx context.Context, scenario artifactModel.SimulationScenario) (artifactModel.SimulationScenario, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	scenario.UpdatedAt = now
	scenario.CreatedAt = now
	if existing, found := s.GetScenario(ctx, scenario.Id); found {
		scenario.CreatedAt = existing.CreatedAt
	}
	if err := s.saveArtifact(ctx, scenarioKeyPrefix+scenario.Id, scenario); err != nil {
		return artifactModel.SimulationScenario{}, err
	}
	return scenario, nil
}

func (s *RedisArtifactStore) GetScenario(ctx context.Context, id string) (artifactModel.SimulationScenario, bool) {
	return getArtifact[artifactModel.SimulationScenario](ctx, s, scenarioKeyPrefix+id)
}

func TestArtifactStore(store *redisStore.Store) *RedisArtifactStore {
	return &RedisArtifactStore{
		store:  store,
		logger: logger_i.NewLogger("test artifact store"),
	}
}
