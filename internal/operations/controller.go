package operations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/botroom/internal/constants"
	apperrors "github.com/julianstephens/botroom/internal/errors"
	"github.com/julianstephens/botroom/internal/logger"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/notify"
	"github.com/julianstephens/botroom/internal/storage"
	"github.com/julianstephens/botroom/internal/validation"
)

var (
	ErrUnknownBot    = errors.New("unknown bot")
	ErrNoActiveDraft = errors.New("no bot is being added")
	ErrNoActiveEdit  = errors.New("no bot is being edited")
)

// Controller owns the roster and the add/edit lifecycle. The roster only
// changes after the store confirms a write. A Controller must be used from
// one goroutine at a time.
type Controller struct {
	store     storage.BotStore
	notifier  notify.Notifier
	validator *validation.Validator
	roster    *Roster
	mode      Mode
}

func NewController(store storage.BotStore, roster *Roster, notifier notify.Notifier) *Controller {
	if roster == nil {
		roster = NewRoster()
	}
	if notifier == nil {
		notifier = notify.Discard{}
	}
	return &Controller{
		store:     store,
		notifier:  notifier,
		validator: validation.New(),
		roster:    roster,
		mode:      Idle{},
	}
}

func (c *Controller) Mode() Mode {
	return c.mode
}

// Bots returns a copy of the roster.
func (c *Controller) Bots() []models.BotRecord {
	return c.roster.All()
}

// Draft returns the draft being added, if any.
func (c *Controller) Draft() (models.BotDraft, bool) {
	a, ok := c.mode.(Adding)
	return a.Draft, ok
}

// WorkingCopy returns the copy being edited, if any.
func (c *Controller) WorkingCopy() (models.BotRecord, bool) {
	e, ok := c.mode.(Editing)
	return e.WorkingCopy, ok
}

// RequestAdd starts a fresh draft. Any edit in progress is discarded.
// Calling it while already adding keeps the current draft.
func (c *Controller) RequestAdd() {
	if _, ok := c.mode.(Adding); ok {
		return
	}
	if e, ok := c.mode.(Editing); ok {
		logger.Debug("discarding edit for add", "id", e.WorkingCopy.ID)
	}
	c.mode = Adding{Draft: models.NewDraft()}
}

func (c *Controller) CancelAdd() {
	if _, ok := c.mode.(Adding); ok {
		c.mode = Idle{}
	}
}

// SelectForEdit opens an independent working copy of the bot with id. Any
// draft in progress is discarded.
func (c *Controller) SelectForEdit(id string) error {
	b, ok := c.roster.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownBot, id)
	}
	c.mode = Editing{WorkingCopy: b.Clone()}
	return nil
}

func (c *Controller) CancelEdit() {
	if _, ok := c.mode.(Editing); ok {
		c.mode = Idle{}
	}
}

// ToggleDay flips day on the active draft or working copy.
func (c *Controller) ToggleDay(day time.Weekday) {
	switch m := c.mode.(type) {
	case Adding:
		m.Draft.ToggleDay(day)
		c.mode = m
	case Editing:
		m.WorkingCopy.ToggleDay(day)
		c.mode = m
	}
}

// EditDraft applies fn to the draft. It reports false when not adding.
func (c *Controller) EditDraft(fn func(*models.BotDraft)) bool {
	a, ok := c.mode.(Adding)
	if !ok {
		return false
	}
	fn(&a.Draft)
	c.mode = a
	return true
}

// EditWorkingCopy applies fn to the working copy. The id cannot be changed.
// It reports false when not editing.
func (c *Controller) EditWorkingCopy(fn func(*models.BotRecord)) bool {
	e, ok := c.mode.(Editing)
	if !ok {
		return false
	}
	id := e.WorkingCopy.ID
	fn(&e.WorkingCopy)
	e.WorkingCopy.ID = id
	c.mode = e
	return true
}

// SubmitCreate sends the draft to the store. On success the stored bot is
// appended and the controller returns to Idle; on failure nothing changes.
func (c *Controller) SubmitCreate(ctx context.Context) error {
	a, ok := c.mode.(Adding)
	if !ok {
		return ErrNoActiveDraft
	}
	if res := c.validator.ValidateDraft(a.Draft); res.HasConflicts() {
		return c.rejectInvalid(res)
	}

	logger.Debug("creating bot", "name", a.Draft.Name, "platform", a.Draft.Platform)
	row, err := c.store.InsertBot(ctx, a.Draft.InsertRow())
	if err == nil {
		var rec models.BotRecord
		if rec, err = models.FromRow(row); err == nil {
			err = c.roster.Append(rec)
		}
	}
	if err != nil {
		return c.writeFailed("create", row.ID, constants.MsgCreateFailed, err)
	}

	logger.Info("bot created", "id", row.ID, "name", row.Name)
	c.mode = Idle{}
	c.notifier.Notify(notify.Notification{
		Title:       constants.ToastBotCreated,
		Description: fmt.Sprintf(constants.MsgCreatedFmt, row.Name),
	})
	return nil
}

// SubmitUpdate sends the whole working copy, keyed by its id, to the store.
func (c *Controller) SubmitUpdate(ctx context.Context) error {
	e, ok := c.mode.(Editing)
	if !ok {
		return ErrNoActiveEdit
	}
	wc := e.WorkingCopy
	if res := c.validator.ValidateRecord(wc); res.HasConflicts() {
		return c.rejectInvalid(res)
	}

	logger.Debug("updating bot", "id", wc.ID)
	if err := c.store.UpdateBot(ctx, wc.ID, models.ToRow(wc)); err != nil {
		return c.writeFailed("update", wc.ID, constants.MsgUpdateFailed, err)
	}
	if err := c.roster.Replace(wc); err != nil {
		// The store accepted a bot the roster no longer holds; keep the edit open.
		return c.writeFailed("update", wc.ID, constants.MsgUpdateFailed, err)
	}

	logger.Info("bot updated", "id", wc.ID, "name", wc.Name)
	c.mode = Idle{}
	c.notifier.Notify(notify.Notification{
		Title:       constants.ToastBotUpdated,
		Description: fmt.Sprintf(constants.MsgUpdatedFmt, wc.Name),
	})
	return nil
}

// SubmitDelete removes the bot being edited. The success toast is
// destructive in tone.
func (c *Controller) SubmitDelete(ctx context.Context) error {
	e, ok := c.mode.(Editing)
	if !ok {
		return ErrNoActiveEdit
	}
	wc := e.WorkingCopy

	logger.Debug("deleting bot", "id", wc.ID)
	if err := c.store.DeleteBot(ctx, wc.ID); err != nil {
		return c.writeFailed("delete", wc.ID, constants.MsgDeleteFailed, err)
	}
	name := wc.Name
	if stored, ok := c.roster.Get(wc.ID); ok {
		name = stored.Name
	}
	_ = c.roster.Remove(wc.ID)

	logger.Info("bot deleted", "id", wc.ID, "name", name)
	c.mode = Idle{}
	c.notifier.Notify(notify.Notification{
		Title:       constants.ToastBotDeleted,
		Description: fmt.Sprintf(constants.MsgDeletedFmt, name),
		Severity:    notify.SeverityDestructive,
	})
	return nil
}

func (c *Controller) rejectInvalid(res validation.ValidationResult) error {
	problems := res.Descriptions()
	logger.Debug("rejected invalid bot", "problems", problems)
	c.notifier.Notify(notify.Notification{
		Title:       constants.ToastInvalidBot,
		Description: strings.Join(problems, "; "),
		Severity:    notify.SeverityDestructive,
	})
	return &apperrors.ValidationFailure{Problems: problems}
}

func (c *Controller) writeFailed(op, id, msg string, err error) error {
	logger.Error("store write failed", "op", op, "id", id, "error", err)
	c.notifier.Notify(notify.Notification{
		Title:       constants.ToastError,
		Description: msg,
		Severity:    notify.SeverityDestructive,
	})
	return &apperrors.StoreWriteFailure{Op: op, BotID: id, Err: err}
}
