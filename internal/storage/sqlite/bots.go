package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/storage"
)

const botColumns = `id, name, machine_name, platform, start_time, end_time, scheduled_days`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBot(sc rowScanner) (models.BotRow, error) {
	var r models.BotRow
	var days string
	if err := sc.Scan(&r.ID, &r.Name, &r.MachineName, &r.Platform, &r.StartTime, &r.EndTime, &days); err != nil {
		return models.BotRow{}, err
	}
	r.ScheduledDays = []string{}
	if days != "" {
		if err := json.Unmarshal([]byte(days), &r.ScheduledDays); err != nil {
			return models.BotRow{}, fmt.Errorf("bot %s: malformed scheduled_days: %w", r.ID, err)
		}
	}
	return r, nil
}

func encodeDays(days []string) (string, error) {
	if days == nil {
		days = []string{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *Store) ListBots(ctx context.Context) ([]models.BotRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+botColumns+` FROM bots ORDER BY rowid`)
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
	days, err := encodeDays(row.ScheduledDays)
	if err != nil {
		return models.BotRow{}, err
	}

	return scanBot(s.db.QueryRowContext(ctx, `
INSERT INTO bots (id, name, machine_name, platform, start_time, end_time, scheduled_days)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING `+botColumns,
		uuid.NewString(), row.Name, row.MachineName, row.Platform, row.StartTime, row.EndTime, days,
	))
}

func (s *Store) UpdateBot(ctx context.Context, id string, row models.BotRow) error {
	days, err := encodeDays(row.ScheduledDays)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
UPDATE bots
SET name = ?, machine_name = ?, platform = ?, start_time = ?, end_time = ?, scheduled_days = ?,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
WHERE id = ?`,
		row.Name, row.MachineName, row.Platform, row.StartTime, row.EndTime, days, id,
	)
	if err != nil {
		return err
	}
	return requireOne(res)
}

func (s *Store) DeleteBot(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bots WHERE id = ?`, id)
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

// GetBot is used by diagnostics; ErrNotFound when absent.
func (s *Store) GetBot(ctx context.Context, id string) (models.BotRow, error) {
	r, err := scanBot(s.db.QueryRowContext(ctx, `SELECT `+botColumns+` FROM bots WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.BotRow{}, storage.ErrNotFound
	}
	return r, err
}
