// Package memory is an in-process BotStore used by tests and by the
// "memory:" DSN.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/julianstephens/botroom/internal/migration"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/storage"
)

type Store struct {
	name string

	mu   sync.Mutex
	rows []models.BotRow
}

func New(name string) *Store {
	return &Store{name: name}
}

// Seed preloads rows, assigning ids to rows without one.
func (s *Store) Seed(rows ...models.BotRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		s.rows = append(s.rows, copyRow(r))
	}
}

func (s *Store) Init() error  { return nil }
func (s *Store) Load() error  { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) Migrate(func(string)) (migration.Result, error) {
	return migration.Result{}, nil
}

func (s *Store) GetConfigPath() string {
	return "memory:" + s.name
}

func (s *Store) ListBots(ctx context.Context) ([]models.BotRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BotRow, len(s.rows))
	for i, r := range s.rows {
		out[i] = copyRow(r)
	}
	return out, nil
}

func (s *Store) InsertBot(ctx context.Context, row models.BotRow) (models.BotRow, error) {
	if err := ctx.Err(); err != nil {
		return models.BotRow{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	row = copyRow(row)
	row.ID = uuid.NewString()
	s.rows = append(s.rows, row)
	return copyRow(row), nil
}

func (s *Store) UpdateBot(ctx context.Context, id string, row models.BotRow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	row = copyRow(row)
	row.ID = id
	s.rows[i] = row
	return nil
}

func (s *Store) DeleteBot(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return storage.ErrNotFound
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return nil
}

func (s *Store) indexOf(id string) int {
	for i, r := range s.rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func copyRow(r models.BotRow) models.BotRow {
	days := make([]string, len(r.ScheduledDays))
	copy(days, r.ScheduledDays)
	r.ScheduledDays = days
	return r
}
