// Package storagetest holds the behavioral contract every BotStore adapter
// must satisfy.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/botroom/internal/models"
	"github.com/julianstephens/botroom/internal/storage"
)

// SampleRow returns a valid insert row.
func SampleRow(name string) models.BotRow {
	return models.BotRow{
		Name:          name,
		MachineName:   "WKS-07",
		Platform:      string(models.PlatformUiPath),
		StartTime:     "9:00 AM",
		EndTime:       "5:00 PM",
		ScheduledDays: []string{"Monday", "Wednesday", "Friday"},
	}
}

// Run exercises store against the BotStore contract. newStore must return
// an empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.BotStore) {
	ctx := context.Background()

	t.Run("EmptyList", func(t *testing.T) {
		rows, err := newStore(t).ListBots(ctx)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("InsertAssignsID", func(t *testing.T) {
		s := newStore(t)
		in := SampleRow("Invoice Bot")

		got, err := s.InsertBot(ctx, in)
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)

		in.ID = got.ID
		assert.Equal(t, in, got)

		other, err := s.InsertBot(ctx, SampleRow("Payroll Bot"))
		require.NoError(t, err)
		assert.NotEqual(t, got.ID, other.ID)
	})

	t.Run("ListPreservesInsertionOrder", func(t *testing.T) {
		s := newStore(t)
		var ids []string
		for _, name := range []string{"c", "a", "b"} {
			row, err := s.InsertBot(ctx, SampleRow(name))
			require.NoError(t, err)
			ids = append(ids, row.ID)
		}

		rows, err := s.ListBots(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for i, row := range rows {
			assert.Equal(t, ids[i], row.ID)
		}
		assert.Equal(t, "c", rows[0].Name)
	})

	t.Run("EmptyDaysRoundTrip", func(t *testing.T) {
		s := newStore(t)
		in := SampleRow("Idle Bot")
		in.ScheduledDays = []string{}

		_, err := s.InsertBot(ctx, in)
		require.NoError(t, err)

		rows, err := s.ListBots(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Empty(t, rows[0].ScheduledDays)
		assert.NotNil(t, rows[0].ScheduledDays)
	})

	t.Run("UpdateReplacesFields", func(t *testing.T) {
		s := newStore(t)
		row, err := s.InsertBot(ctx, SampleRow("Invoice Bot"))
		require.NoError(t, err)

		row.Name = "Invoice Bot v2"
		row.Platform = string(models.PlatformBluePrism)
		row.EndTime = "11:30 PM"
		row.ScheduledDays = []string{"Saturday", "Sunday"}
		require.NoError(t, s.UpdateBot(ctx, row.ID, row))

		rows, err := s.ListBots(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, row, rows[0])
	})

	t.Run("UpdateUnknownID", func(t *testing.T) {
		s := newStore(t)
		err := s.UpdateBot(ctx, "00000000-0000-0000-0000-000000000000", SampleRow("x"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteRemovesOne", func(t *testing.T) {
		s := newStore(t)
		a, err := s.InsertBot(ctx, SampleRow("a"))
		require.NoError(t, err)
		b, err := s.InsertBot(ctx, SampleRow("b"))
		require.NoError(t, err)
		c, err := s.InsertBot(ctx, SampleRow("c"))
		require.NoError(t, err)

		require.NoError(t, s.DeleteBot(ctx, b.ID))

		rows, err := s.ListBots(ctx)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, a.ID, rows[0].ID)
		assert.Equal(t, c.ID, rows[1].ID)

		assert.ErrorIs(t, s.DeleteBot(ctx, b.ID), storage.ErrNotFound)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		s := newStore(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := s.InsertBot(cctx, SampleRow("late"))
		assert.Error(t, err)
	})
}
