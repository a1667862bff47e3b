package store_test

import (
	"context"
	"testing"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/data/redisStore"
	"github.com/akolanti/LabAPI/internal/data/store"
	"github.com/akolanti/LabAPI/internal/domain/artifactModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestArtifactStore(t *testing.T) *store.RedisArtifactStore {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestArtifactStore(redisStore.NewTestStore(client))
}

func TestRedisArtifactStore_FlashcardsRoundtrip(t *testing.T) {
	artifactStore := newTestArtifactStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	set := artifactModel.FlashcardSet{
		Id:    "set-1",
		Title: "Centrifuge Cards",
		Flashcards: []artifactModel.Flashcard{
			{Id: "card_1_0", Front: "f", Back: "b", Difficulty: artifactModel.DifficultyHard, Tags: []string{"procedure_steps"}},
		},
	}

	saved, err := artifactStore.SaveFlashcardSet(ctx, set)
	if err != nil {
		t.Fatalf("SaveFlashcardSet failed: %v", err)
	}
	if saved.CreatedAt == "" {
		t.Error("save must stamp CreatedAt")
	}

	retrieved, found := artifactStore.GetFlashcardSet(ctx, "set-1")
	if !found {
		t.Fatal("set was saved but not found")
	}
	if len(retrieved.Flashcards) != 1 || retrieved.Flashcards[0].Difficulty != artifactModel.DifficultyHard {
		t.Errorf("Data mismatch! Got %+v", retrieved)
	}

	// Upsert keeps the original CreatedAt.
	saved.Title = "Renamed"
	resaved, err := artifactStore.SaveFlashcardSet(ctx, saved)
	if err != nil {
		t.Fatalf("resave failed: %v", err)
	}
	if resaved.CreatedAt != saved.CreatedAt {
		t.Errorf("CreatedAt changed on upsert: %s -> %s", saved.CreatedAt, resaved.CreatedAt)
	}
}

func TestRedisArtifactStore_KindsAreIsolated(t *testing.T) {
	artifactStore := newTestArtifactStore(t)
	ctx := context.Background()

	// Same id across kinds must not collide.
	if _, err := artifactStore.SaveQuiz(ctx, artifactModel.GeneratedQuiz{Id: "shared", Title: "Quiz"}); err != nil {
		t.Fatalf("SaveQuiz failed: %v", err)
	}
	if _, err := artifactStore.SaveScenario(ctx, artifactModel.SimulationScenario{Id: "shared", Title: "Scenario"}); err != nil {
		t.Fatalf("SaveScenario failed: %v", err)
	}

	quiz, foundQuiz := artifactStore.GetQuiz(ctx, "shared")
	scenario, foundScenario := artifactStore.GetScenario(ctx, "shared")
	if !foundQuiz || !foundScenario {
		t.Fatal("both kinds should resolve under the same id")
	}
	if quiz.Title != "Quiz" || scenario.Title != "Scenario" {
		t.Errorf("kinds bled into each other: %q / %q", quiz.Title, scenario.Title)
	}

	if _, found := artifactStore.GetFlashcardSet(ctx, "shared"); found {
		t.Error("flashcard lookup must miss for a quiz-only id")
	}
}
