package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	pq "github.com/lib/pq"

	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/storage"
)

const botColumns = `id::text, name, machine_name, platform, start_time, end_time, scheduled_days`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBot(sc rowScanner) (models.BotRow, error) {
	var r models.BotRow
	var days pq.StringArray
	if err := sc.Scan(&r.ID, &r.Name, &r.MachineName, &r.Platform, &r.StartTime, &r.EndTime, &days); err != nil {
		return models.BotRow{}, err
	}
	r.ScheduledDays = []string(days)
	if r.ScheduledDays == nil {
		r.ScheduledDays = []string{}
	}
	return r, nil
}

func days(d []string) any {
	if d == nil {
		d = []string{}
	}
	return pq.Array(d)
}

func (s *Store) ListBots(ctx context.Context) ([]models.BotRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+botColumns+` FROM bots ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BotRow{}
	for rows.Next() {
		r, err := scanBot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) InsertBot(ctx context.Context, row models.BotRow) (models.BotRow, error) {
	return scanBot(s.db.QueryRowContext(ctx, `
INSERT INTO bots (name, machine_name, platform, start_time, end_time, scheduled_days)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+botColumns,
		row.Name, row.MachineName, row.Platform, row.StartTime, row.EndTime, days(row.ScheduledDays),
	))
}

func (s *Store) UpdateBot(ctx context.Context, id string, row models.BotRow) error {
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `
UPDATE bots
SET name = $1, machine_name = $2, platform = $3, start_time = $4, end_time = $5,
    scheduled_days = $6, updated_at = now()
WHERE id = $7`,
		row.Name, row.MachineName, row.Platform, row.StartTime, row.EndTime, days(row.ScheduledDays), id,
	)
	if err != nil {
		return err
	}
	return requireOne(res)
}

func (s *Store) DeleteBot(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return storage.ErrNotFound
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM bots WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOne(res)
}

func requireOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
