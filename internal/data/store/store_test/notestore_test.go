package store_test

import (
	"context"
	"testing"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/data/redisStore"
	"github.com/akolanti/LabAPI/internal/data/store"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestNoteStore(t *testing.T) (*store.RedisNoteStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return store.TestNoteStore(redisStore.NewTestStore(client)), mr
}

func TestRedisNoteStore_Lifecycle(t *testing.T) {
	noteStore, mr := newTestNoteStore(t)
	ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")

	note := noteModel.Note{
		Id:          "note_abc_123",
		Title:       "Titration Lab",
		RawText:     "raw",
		CleanedText: "clean",
		Sections: []noteModel.Section{
			{Type: noteModel.SectionProcedureSteps, Title: "Steps", Content: "Titrate.", Order: 1},
		},
	}

	t.Run("Save and Get Roundtrip", func(t *testing.T) {
		saved, err := noteStore.SaveNote(ctx, note)
		if err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
		if saved.CreatedAt == "" || saved.UpdatedAt == "" {
			t.Error("save must stamp CreatedAt and UpdatedAt")
		}

		retrieved, found := noteStore.GetNote(ctx, note.Id)
		if !found {
			t.Fatal("Note was saved but not found in Redis")
		}
		if retrieved.Title != note.Title || len(retrieved.Sections) != 1 {
			t.Errorf("Data mismatch! Got %+v", retrieved)
		}
	})

	t.Run("Upsert Preserves CreatedAt", func(t *testing.T) {
		first, _ := noteStore.GetNote(ctx, note.Id)

		// Age the stored record so the refresh is observable.
		updated := note
		updated.Title = "Titration Lab v2"
		saved, err := noteStore.SaveNote(ctx, updated)
		if err != nil {
			t.Fatalf("second SaveNote failed: %v", err)
		}

		if saved.CreatedAt != first.CreatedAt {
			t.Errorf("CreatedAt changed on upsert: %s -> %s", first.CreatedAt, saved.CreatedAt)
		}
		if saved.UpdatedAt < saved.CreatedAt {
			t.Errorf("UpdatedAt %s predates CreatedAt %s", saved.UpdatedAt, saved.CreatedAt)
		}

		retrieved, _ := noteStore.GetNote(ctx, note.Id)
		if retrieved.Title != "Titration Lab v2" {
			t.Errorf("upsert did not replace content, got %q", retrieved.Title)
		}
	})

	t.Run("Delete Note", func(t *testing.T) {
		noteStore.DeleteNote(ctx, note.Id)
		if mr.Exists(note.Id) {
			t.Error("Note still exists in Redis after DeleteNote call")
		}
	})
}

func TestInMemoryNoteStore_MatchesRedisSemantics(t *testing.T) {
	memStore := store.InitInMemoryNoteStore()
	ctx := context.Background()

	first, err := memStore.SaveNote(ctx, noteModel.Note{Id: "n1", Title: "one"})
	if err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	second, err := memStore.SaveNote(ctx, noteModel.Note{Id: "n1", Title: "two"})
	if err != nil {
		t.Fatalf("second SaveNote failed: %v", err)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Error("in-memory upsert must preserve CreatedAt like the redis store")
	}

	got, found := memStore.GetNote(ctx, "n1")
	if !found || got.Title != "two" {
		t.Errorf("got %+v found=%v", got, found)
	}

	memStore.DeleteNote(ctx, "n1")
	if _, found = memStore.GetNote(ctx, "n1"); found {
		t.Error("note survived delete")
	}
}
