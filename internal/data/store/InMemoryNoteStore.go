package store

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/LabAPI/internal/domain/noteModel"
)

type InMemoryNoteStore struct {
	noteLock *sync.RWMutex
	noteMap  map[string]noteModel.Note
}

func InitInMemoryNoteStore() *InMemoryNoteStore {
	return &InMemoryNoteStore{
		noteLock: new(sync.RWMutex),
		noteMap:  make(map[string]noteModel.Note),
	}
}

func (store *InMemoryNoteStore) SaveNote(ctx context.Context, note noteModel.Note) (noteModel.Note, error) {
	store.noteLock.Lock()
	defer store.noteLock.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	note.UpdatedAt = now
	note.CreatedAt = now
	if existing, found := store.noteMap[note.Id]; found {
		note.CreatedAt = existing.CreatedAt
	}
	store.noteMap[note.Id] = note
	return note, nil
}

func (store *InMemoryNoteStore) GetNote(ctx context.Context, id string) (noteModel.Note, bool) {
	store.noteLock.RLock()
	defer store.noteLock.RUnlock()
	result, found := store.noteMap[id]
	return result, found
}

func (store *InMemoryNoteStore) DeleteNote(ctx context.Context, id string) {
	store.noteLock.Lock()
	defer store.noteLock.Unlock()
	delete(store.noteMap, id)
}
