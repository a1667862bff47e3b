package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
)

type InMemoryArtifactStore struct {
	artifactLock *sync.RWMutex
	flashcardMap map[string]artifactModel.FlashcardSet
	quizMap      map[string]artifactModel.GeneratedQuiz
	scenarioMap  map[string]artifactModel.SimulationScenario
}

func InitInMemoryArtifactStore() *InMemoryArtifactStore {
	return &InMemoryArtifactStore{
		artifactLock: new(sync.RWMutex),
		flashcardMap: make(map[string]artifactModel.FlashcardSet),
		quizMap:      make(map[string]artifactModel.GeneratedQuiz),
		scenarioMap:  make(map[string]artifactModel.SimulationScenario),
	}
}

func (store *InMemoryArtifactStore) SaveFlashcardSet(ctx context.Context, set artifactModel.FlashcardSet) (artifactModel.FlashcardSet, error) {
	store.artifactLock.Lock()
	defer store.artifactLock.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	set.UpdatedAt = now
	set.CreatedAt = now
	if existing, found := store.flashcardMap[set.Id]; found {
		set.CreatedAt = existing.CreatedAt
	}
	store.flashcardMap[set.Id] = set
	return set, nil
}

func (store *InMemoryArtifactStore) GetFlashcardSet(ctx context.Context, id string) (artifactModel.FlashcardSet, bool) {
	store.artifactLock.RLock()
	defer store.artifactLock.RUnlock()
	result, found := store.flashcardMap[id]
	return result, found
}

func (store *InMemoryArtifactStore) SaveQuiz(ctx context.Context, quiz artifactModel.GeneratedQuiz) (artifactModel.GeneratedQuiz, error) {
	store.artifactLock.Lock()
	defer store.artifactLock.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	quiz.UpdatedAt = now
	quiz.CreatedAt = now
	if existing, found := store.quizMap[quiz.Id]; found {
		quiz.CreatedAt = existing.CreatedAt
	}
	store.quizMap[quiz.Id] = quiz
	return quiz, nil
}

func (store *InMemoryArtifactStore) GetQuiz(ctx context.Context, id string) (artifactModel.GeneratedQuiz, bool) {
	store.artifactLock.RLock()
	defer store.artifactLock.RUnlock()
	result, found := store.quizMap[id]
	return result, found
}

func (store *InMemoryArtifactStore) SaveScenario(ctx context.Context, scenario artifactModel.SimulationScenario) (artifactModel.SimulationScenario, error) {
	store.artifactLock.Lock()
	defer store.artifactLock.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	scenario.UpdatedAt = now
	scenario.CreatedAt = now
	if existing, found := store.scenarioMap[scenario.Id]; found {
		scenario.CreatedAt = existing.CreatedAt
	}
	store.scenarioMap[scenario.Id] = scenario
	return scenario, nil
}

func (store *InMemoryArtifactStore) GetScenario(ctx context.Context, id string) (artifactModel.SimulationScenario, bool) {
	store.artifactLock.RLock()
	defer store.artifactLock.RUnlock()
	result, found := store.scenarioMap[id]
	return result, found
}
