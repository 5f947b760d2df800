package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizdash/bizdash/internal/client"
	"github.com/bizdash/bizdash/internal/domain/crm"
	"github.com/bizdash/bizdash/internal/fixtures"
	"github.com/bizdash/bizdash/internal/gateway"
)

func newScanScheduler(t *testing.T, now time.Time) (*FollowupScheduler, *fixtures.Store) {
	t.Helper()
	store := fixtures.NewStore("tenant-test")
	gw := gateway.NewMockGateway(store, gateway.WithMockDelay(0, 0))
	api := client.New(gw, "tenant-test")
	s := NewFollowupScheduler(api, "@every 15m", WithClock(func() time.Time { return now }))
	return s, store
}

func TestScan(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	s, store := newScanScheduler(t, now)

	store.Leads.Insert(crm.Lead{
		ID: "l1", Name: "Ravi", Contact: "9876543210",
		Status: crm.LeadStatusNew, FollowupDate: "2026-08-28", FollowupTime: "09:00",
	})
	store.Leads.Insert(crm.Lead{
		ID: "l2", Name: "Meera",
		Status: crm.LeadStatusNew, FollowupDate: "2026-08-28", FollowupTime: "16:00",
	})
	store.Leads.Insert(crm.Lead{
		ID: "l3", Name: "Done",
		Status: crm.LeadStatusConvert, FollowupDate: "2026-08-01",
	})

	require.NoError(t, s.Scan(context.Background()))

	t.Run("only the due lead gets a reminder", func(t *testing.T) {
		notes := store.Notifications.All()
		require.Len(t, notes, 1)
		assert.Contains(t, notes[0].Title, "Ravi")
		assert.Contains(t, notes[0].Message, "9876543210")
	})

	t.Run("a second scan does not repeat the reminder", func(t *testing.T) {
		require.NoError(t, s.Scan(context.Background()))
		assert.Equal(t, 1, store.Notifications.Len())
	})

	t.Run("a rescheduled followup is reminded again", func(t *testing.T) {
		lead, err := store.Leads.Get("l1")
		require.NoError(t, err)
		lead.FollowupDate = "2026-08-27"
		lead.FollowupTime = "10:00"
		_, err = store.Leads.Update("l1", lead)
		require.NoError(t, err)

		require.NoError(t, s.Scan(context.Background()))
		assert.Equal(t, 2, store.Notifications.Len())
	})
}

func TestScanPagesThroughLeads(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.Local)
	s, store := newScanScheduler(t, now)

	// More leads than one scan page, all due.
	for i := 0; i < scanPageSize+10; i++ {
		store.Leads.Insert(crm.Lead{
			ID:           fmt.Sprintf("lead-%d", i),
			Name:         "Lead",
			Status:       crm.LeadStatusCallFollowup,
			FollowupDate: "2026-08-27",
			FollowupTime: "10:00",
		})
	}

	require.NoError(t, s.Scan(context.Background()))
	assert.Equal(t, scanPageSize+10, store.Notifications.Len())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	store := fixtures.NewStore("tenant-test")
	gw := gateway.NewMockGateway(store, gateway.WithMockDelay(0, 0))
	s := NewFollowupScheduler(client.New(gw, "tenant-test"), "not a schedule")

	assert.Error(t, s.Start())
}
