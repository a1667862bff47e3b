package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/akolanti/LabAPI/internal/config"
	"github.com/akolanti/LabAPI/internal/data/redisStore"
	"github.com/akolanti/LabAPI/internal/domain/noteModel"
	"github.com/akolanti/LabAPI/pkg/logger_i"
)

type RedisNoteStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

func GetRedisNoteStore(ctx context.Context) *RedisNoteStore {
	backing := redisStore.GetRedisStore(ctx, config.RedisNoteStore)
	if backing == nil {
		return nil
	}
	return &RedisNoteStore{
		store:  backing,
		logger: logger_i.NewLogger("NoteStore"),
	}
}

// SaveNote upserts by note id. The first write stamps CreatedAt, every write
// refreshes UpdatedAt.
func (s *RedisNoteStore) SaveNote(ctx context.Context, note noteModel.Note) (noteModel.Note, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "note Id", note.Id)
	log.Debug("saving note")

	now := time.Now().UTC().Format(time.RFC3339)
	note.UpdatedAt = now
	note.CreatedAt = now
	if existing, found := s.GetNote(ctx, note.Id); found {
		note.CreatedAt = existing.CreatedAt
	}

	data, err := json.Marshal(note)
	if err != nil {
		return noteModel.Note{}, err
	}

	err = s.store.Set(ctx, note.Id, data, config.RedisNoteStoreTTL)
	if err != nil {
		log.Error("error saving note", "error", err)
		return noteModel.Note{}, err
	}
	log.Debug("Saved note to Redis")
	return note, nil
}

func (s *RedisNoteStore) GetNote(ctx context.Context, id string) (noteModel.Note, bool) {
	var note noteModel.Note
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "note Id", id)

	val, err := s.store.Get(ctx, id)
	if s.store.IsNil(err) {
		return note, false
	} else if err != nil {
		log.Error("error reading note", "error", err)
		return note, false
	}

	if err = json.Unmarshal([]byte(val), &note); err != nil {
		log.Error("stored note is unreadable", "error", err)
		return note, false
	}
	return note, true
}

func (s *RedisNoteStore) DeleteNote(ctx context.Context, id string) {
	if err := s.store.Del(ctx, id); err != nil {
		s.logger.Error("error deleting note", "note Id", id, "error", err)
		return
	}
	s.logger.Debug("Note deleted from Redis", "note Id", id)
}

func TestNoteStore(store *redisStore.Store) *RedisNoteStore {
	return &RedisNoteStore{
		store:  store,
		logger: logger_i.NewLogger("test note store"),
	}
}
