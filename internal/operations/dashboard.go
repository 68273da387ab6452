package operations

import (
	"context"

	"github.com/julianstephens/botroom/internal/constants"
	apperrors "github.com/julianstephens/botroom/internal/errors"
	"github.com/julianstephens/botroom/internal/identity"
	"github.com/julianstephens/botroom/internal/logger"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/notify"
	"github.com/julianstephens/botroom/internal/storage"
)

// Dashboard is the page-level state behind the roster view: who is signed
// in, the roster, and whether the initial fetch is still running.
type Dashboard struct {
	Username string
	Roster   *Roster
	Loading  bool

	notifier notify.Notifier
}

// NewDashboard starts in the loading state with an empty roster.
func NewDashboard(id identity.Identity, notifier notify.Notifier) *Dashboard {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Dashboard{
		Username: id.DisplayName(),
		Roster:   NewRoster(),
		Loading:  true,
		notifier: notifier,
	}
}

// FetchRoster lists and decodes every stored bot. It touches no dashboard
// state so it can run off the UI goroutine.
func FetchRoster(ctx context.Context, store storage.BotStore) ([]models.BotRecord, error) {
	rows, err := store.ListBots(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromRows(rows)
}

// Apply ends loading with the result of FetchRoster. On error the roster is
// left empty, one destructive toast is shown and a StoreReadFailure returned.
func (d *Dashboard) Apply(records []models.BotRecord, err error) error {
	d.Loading = false
	if err != nil {
		logger.Error("failed to fetch bots", "error", err)
		d.Roster.Reset(nil)
		d.notifier.Notify(notify.Notification{
			Title:       constants.ToastError,
			Description: constants.MsgFetchFailed,
			Severity:    notify.SeverityDestructive,
		})
		return &apperrors.StoreReadFailure{Err: err}
	}
	d.Roster.Reset(records)
	logger.Debug("roster loaded", "count", d.Roster.Len())
	return nil
}

// Load fetches and applies in one step.
func (d *Dashboard) Load(ctx context.Context, store storage.BotStore) error {
	records, err := FetchRoster(ctx, store)
	return d.Apply(records, err)
}

// Controller returns a controller sharing this dashboard's roster.
func (d *Dashboard) Controller(store storage.BotStore) *Controller {
	return NewController(store, d.Roster, d.notifier)
}
