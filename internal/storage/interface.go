package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/botroom/internal/migration"
	"github.com/julianstephens/botroom/internal/models"
)

var (
	// ErrNotFound is returned when an update or delete names an unknown id.
	ErrNotFound = errors.New("bot not found")
	// ErrNotInitialized is returned by Load when the store was never created.
	ErrNotInitialized = errors.New("storage not initialized, run 'botroom init' first")
)

// BotStore is the remote system of record for bots. Every call is a single
// round trip; nothing is retried.
type BotStore interface {
	// ListBots returns every stored bot in insertion order.
	ListBots(ctx context.Context) ([]models.BotRow, error)
	// InsertBot stores row and returns it with the store-assigned id.
	InsertBot(ctx context.Context, row models.BotRow) (models.BotRow, error)
	// UpdateBot replaces every field of the bot with the given id.
	UpdateBot(ctx context.Context, id string, row models.BotRow) error
	// DeleteBot removes the bot with the given id.
	DeleteBot(ctx context.Context, id string) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Migrate applies pending schema migrations.
	Migrate(logFn func(string)) (migration.Result, error)

	BotStore

	// Utils
	GetConfigPath() string
}
