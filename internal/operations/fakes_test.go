package operations

import (
	"context"
	"errors"

	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/storage"
	"github.com/julianstephens/botroom/internal/storage/memory"
)

var errStoreDown = errors.New("store unavailable")

// recordingStore wraps a memory store, counts calls and can be told to fail.
type recordingStore struct {
	inner *memory.Store

	failList, failInsert, failUpdate, failDelete bool

	lists, inserts, updates, deletes int
	lastUpdateID                     string
	lastInsert                       models.BotRow
}

var _ storage.BotStore = (*recordingStore)(nil)

func newRecordingStore(rows ...models.BotRow) *recordingStore {
	m := memory.New("test")
	m.Seed(rows...)
	return &recordingStore{inner: m}
}

func (s *recordingStore) writes() int { return s.inserts + s.updates + s.deletes }

func (s *recordingStore) ListBots(ctx context.Context) ([]models.BotRow, error) {
	s.lists++
	if s.failList {
		return nil, errStoreDown
	}
	return s.inner.ListBots(ctx)
}

func (s *recordingStore) InsertBot(ctx context.Context, row models.BotRow) (models.BotRow, error) {
	s.inserts++
	s.lastInsert = row
	if s.failInsert {
		return models.BotRow{}, errStoreDown
	}
	return s.inner.InsertBot(ctx, row)
}

func (s *recordingStore) UpdateBot(ctx context.Context, id string, row models.BotRow) error {
	s.updates++
	s.lastUpdateID = id
	if s.failUpdate {
		return errStoreDown
	}
	return s.inner.UpdateBot(ctx, id, row)
}

func (s *recordingStore) DeleteBot(ctx context.Context, id string) error {
	s.deletes++
	if s.failDelete {
		return errStoreDown
	}
	return s.inner.DeleteBot(ctx, id)
}
