package operations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/botroom/internal/errors"
	"github.com/julianstephens/botroom/internal/identity"
	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/notify"
)

func seedRow(id, name string) models.BotRow {
	return models.BotRow{
		ID:            id,
		Name:          name,
		MachineName:   "VM-" + id,
		Platform:      string(models.PlatformBluePrism),
		StartTime:     "8:00 AM",
		EndTime:       "6:00 PM",
		ScheduledDays: []string{"Tuesday", "Thursday"},
	}
}

type fixture struct {
	store *recordingStore
	queue *notify.Queue
	ctrl  *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newRecordingStore(seedRow("a", "Alpha"), seedRow("b", "Bravo"), seedRow("c", "Charlie"))
	queue := notify.NewQueue()
	dash := NewDashboard(identity.Identity{Email: "ops@example.com"}, queue)
	require.NoError(t, dash.Load(context.Background(), store))
	store.lists = 0
	return &fixture{store: store, queue: queue, ctrl: dash.Controller(store)}
}

func fillInvoiceBot(d *models.BotDraft) {
	d.Name = "Invoice Bot"
	d.MachineName = "WKS-07"
	d.Platform = models.PlatformUiPath
	d.Start = models.ClockTime{Hour: 9, Minute: 0, Period: models.AM}
	d.End = models.ClockTime{Hour: 5, Minute: 0, Period: models.PM}
}

func TestSubmitCreateSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ctrl.RequestAdd()
	f.ctrl.EditDraft(fillInvoiceBot)
	for _, d := range []time.Weekday{time.Monday, time.Wednesday, time.Friday} {
		f.ctrl.ToggleDay(d)
	}

	require.NoError(t, f.ctrl.SubmitCreate(ctx))

	assert.Equal(t, 1, f.store.inserts)
	assert.Empty(t, f.store.lastInsert.ID, "the controller never assigns ids")
	assert.Equal(t, []string{"Monday", "Wednesday", "Friday"}, f.store.lastInsert.ScheduledDays)

	bots := f.ctrl.Bots()
	require.Len(t, bots, 4)
	created := bots[3]
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Invoice Bot", created.Name)
	assert.Equal(t, "WKS-07", created.MachineName)
	assert.Equal(t, models.PlatformUiPath, created.Platform)
	assert.Equal(t, "9:00 AM", created.Schedule.Start)
	assert.Equal(t, "5:00 PM", created.Schedule.End)
	assert.Equal(t, models.NewWeekdaySet(time.Monday, time.Wednesday, time.Friday), created.Schedule.Days)

	assert.IsType(t, Idle{}, f.ctrl.Mode())
	toasts := f.queue.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Bot Created", toasts[0].Title)
	assert.Equal(t, notify.SeverityNeutral, toasts[0].Severity)

	// a later add starts from a fresh draft
	f.ctrl.RequestAdd()
	d, ok := f.ctrl.Draft()
	require.True(t, ok)
	assert.Equal(t, models.NewDraft(), d)
}

func TestSubmitCreateFailureKeepsState(t *testing.T) {
	f := newFixture(t)
	f.store.failInsert = true
	before := f.ctrl.Bots()

	f.ctrl.RequestAdd()
	f.ctrl.EditDraft(fillInvoiceBot)
	f.ctrl.ToggleDay(time.Monday)
	draftBefore, _ := f.ctrl.Draft()

	err := f.ctrl.SubmitCreate(context.Background())
	var wf *apperrors.StoreWriteFailure
	require.ErrorAs(t, err, &wf)
	assert.Equal(t, "create", wf.Op)
	assert.ErrorIs(t, err, errStoreDown)
	assert.True(t, apperrors.IsNotified(err))

	assert.Equal(t, before, f.ctrl.Bots())
	draftAfter, ok := f.ctrl.Draft()
	require.True(t, ok, "still adding")
	assert.Equal(t, draftBefore, draftAfter)

	toasts := f.queue.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Error", toasts[0].Title)
	assert.Equal(t, "Failed to create bot. Please try again.", toasts[0].Description)
	assert.Equal(t, notify.SeverityDestructive, toasts[0].Severity)
}

func TestSubmitCreateValidation(t *testing.T) {
	f := newFixture(t)
	f.ctrl.RequestAdd()
	f.ctrl.EditDraft(func(d *models.BotDraft) {
		d.Name = "   "
		d.MachineName = "WKS-07"
	})

	err := f.ctrl.SubmitCreate(context.Background())
	var vf *apperrors.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Len(t, vf.Problems, 1)
	assert.Equal(t, 0, f.store.inserts)
	assert.IsType(t, Adding{}, f.ctrl.Mode())

	toasts := f.queue.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, notify.SeverityDestructive, toasts[0].Severity)
}

func TestSubmitWithoutModeMakesNoCall(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.ctrl.SubmitCreate(ctx), ErrNoActiveDraft)
	assert.ErrorIs(t, f.ctrl.SubmitUpdate(ctx), ErrNoActiveEdit)
	assert.ErrorIs(t, f.ctrl.SubmitDelete(ctx), ErrNoActiveEdit)

	f.ctrl.RequestAdd()
	assert.ErrorIs(t, f.ctrl.SubmitUpdate(ctx), ErrNoActiveEdit)

	assert.Equal(t, 0, f.store.writes())
	assert.Empty(t, f.queue.Drain())
}

func TestEditThenCancelLeavesRoster(t *testing.T) {
	f := newFixture(t)
	before := f.ctrl.Bots()

	require.NoError(t, f.ctrl.SelectForEdit("b"))
	f.ctrl.EditWorkingCopy(func(b *models.BotRecord) {
		b.Name = "Changed"
		b.MachineName = "Elsewhere"
		b.SetStart(models.ClockTime{Hour: 11, Minute: 45, Period: models.PM})
	})
	f.ctrl.ToggleDay(time.Sunday)
	f.ctrl.CancelEdit()

	assert.IsType(t, Idle{}, f.ctrl.Mode())
	assert.Equal(t, before, f.ctrl.Bots())
	assert.Equal(t, 0, f.store.writes())
}

func TestSubmitUpdateSuccess(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectForEdit("b"))
	f.ctrl.EditWorkingCopy(func(b *models.BotRecord) {
		b.Name = "Bravo 2"
		b.ID = "hijacked"
	})
	f.ctrl.ToggleDay(time.Tuesday)

	require.NoError(t, f.ctrl.SubmitUpdate(context.Background()))
	assert.Equal(t, "b", f.store.lastUpdateID, "id cannot be edited")

	bots := f.ctrl.Bots()
	require.Len(t, bots, 3)
	assert.Equal(t, "b", bots[1].ID, "updated in place")
	assert.Equal(t, "Bravo 2", bots[1].Name)
	assert.Equal(t, models.NewWeekdaySet(time.Thursday), bots[1].Schedule.Days)
	assert.IsType(t, Idle{}, f.ctrl.Mode())

	rows, err := f.store.inner.ListBots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bravo 2", rows[1].Name)

	toasts := f.queue.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Bot Updated", toasts[0].Title)
}

func TestSubmitUpdateFailureKeepsState(t *testing.T) {
	f := newFixture(t)
	f.store.failUpdate = true
	before := f.ctrl.Bots()

	require.NoError(t, f.ctrl.SelectForEdit("a"))
	f.ctrl.EditWorkingCopy(func(b *models.BotRecord) { b.Name = "Alpha 2" })
	wcBefore, _ := f.ctrl.WorkingCopy()

	err := f.ctrl.SubmitUpdate(context.Background())
	var wf *apperrors.StoreWriteFailure
	require.ErrorAs(t, err, &wf)
	assert.Equal(t, "update", wf.Op)
	assert.Equal(t, "a", wf.BotID)

	assert.Equal(t, before, f.ctrl.Bots())
	wcAfter, ok := f.ctrl.WorkingCopy()
	require.True(t, ok)
	assert.Equal(t, wcBefore, wcAfter)

	toasts := f.queue.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Failed to update bot. Please try again.", toasts[0].Description)
}

func TestSubmitDeleteSuccess(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectForEdit("b"))
	require.NoError(t, f.ctrl.SubmitDelete(context.Background()))

	bots := f.ctrl.Bots()
	require.Len(t, bots, 2)
	assert.Equal(t, "a", bots[0].ID)
	assert.Equal(t, "c", bots[1].ID)
	assert.Equal(t, 1, f.store.deletes)

	toasts := f.queue.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Bot Deleted", toasts[0].Title)
	assert.Equal(t, notify.SeverityDestructive, toasts[0].Severity)
	assert.Contains(t, toasts[0].Description, "Bravo")
}

func TestSubmitDeleteFailureKeepsState(t *testing.T) {
	f := newFixture(t)
	f.store.failDelete = true
	before := f.ctrl.Bots()

	require.NoError(t, f.ctrl.SelectForEdit("c"))
	err := f.ctrl.SubmitDelete(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotified(err))

	assert.Equal(t, before, f.ctrl.Bots())
	assert.IsType(t, Editing{}, f.ctrl.Mode())
	require.Len(t, f.queue.Drain(), 1)
}

func TestRequestAddWhileEditingDiscardsEdit(t *testing.T) {
	f := newFixture(t)
	before := f.ctrl.Bots()

	require.NoError(t, f.ctrl.SelectForEdit("a"))
	f.ctrl.EditWorkingCopy(func(b *models.BotRecord) { b.Name = "Edited" })
	f.ctrl.RequestAdd()

	_, editing := f.ctrl.WorkingCopy()
	assert.False(t, editing)
	d, adding := f.ctrl.Draft()
	require.True(t, adding)
	assert.Equal(t, models.NewDraft(), d)

	assert.Equal(t, 0, f.store.updates)
	assert.Equal(t, 0, f.store.deletes)
	assert.Equal(t, before, f.ctrl.Bots())
}

func TestRequestAddWhileAddingKeepsDraft(t *testing.T) {
	f := newFixture(t)
	f.ctrl.RequestAdd()
	f.ctrl.EditDraft(func(d *models.BotDraft) { d.Name = "Keep me" })
	f.ctrl.RequestAdd()

	d, _ := f.ctrl.Draft()
	assert.Equal(t, "Keep me", d.Name)
}

func TestSelectForEditWhileAddingDiscardsDraft(t *testing.T) {
	f := newFixture(t)
	f.ctrl.RequestAdd()
	f.ctrl.EditDraft(fillInvoiceBot)

	require.NoError(t, f.ctrl.SelectForEdit("c"))
	_, adding := f.ctrl.Draft()
	assert.False(t, adding)
	wc, ok := f.ctrl.WorkingCopy()
	require.True(t, ok)
	assert.Equal(t, "Charlie", wc.Name)
}

func TestSelectForEditUnknown(t *testing.T) {
	f := newFixture(t)
	f.ctrl.RequestAdd()
	assert.ErrorIs(t, f.ctrl.SelectForEdit("zzz"), ErrUnknownBot)
	assert.IsType(t, Adding{}, f.ctrl.Mode(), "mode unchanged")
}

func TestWorkingCopyDoesNotAliasRoster(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.ctrl.SelectForEdit("a"))
	f.ctrl.ToggleDay(time.Monday)
	f.ctrl.EditWorkingCopy(func(b *models.BotRecord) { b.Name = "x" })

	bots := f.ctrl.Bots()
	assert.Equal(t, "Alpha", bots[0].Name)
	assert.False(t, bots[0].Schedule.Days.Has(time.Monday))
}

func TestCancelAddDiscardsDraft(t *testing.T) {
	f := newFixture(t)
	f.ctrl.RequestAdd()
	f.ctrl.EditDraft(fillInvoiceBot)
	f.ctrl.CancelAdd()

	assert.IsType(t, Idle{}, f.ctrl.Mode())
	assert.False(t, f.ctrl.EditDraft(fillInvoiceBot))
	assert.Equal(t, 0, f.store.writes())
}

func TestToggleDayIdleIsNoop(t *testing.T) {
	f := newFixture(t)
	before := f.ctrl.Bots()
	f.ctrl.ToggleDay(time.Monday)
	assert.Equal(t, before, f.ctrl.Bots())
	assert.IsType(t, Idle{}, f.ctrl.Mode())
}
