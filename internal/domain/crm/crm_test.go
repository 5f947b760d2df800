package crm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAliases(t *testing.T) {
	t.Run("new client has synced aliases", func(t *testing.T) {
		c, err := NewClient("tenant-1", "Acme Corp", "9876543210", "ops@acme.example")
		require.NoError(t, err)

		assert.True(t, c.AliasesInSync())
		assert.Equal(t, "Acme Corp", c.Name)
		assert.Equal(t, "9876543210", c.Phone)
		assert.Equal(t, "ops@acme.example", c.Email)
	})

	t.Run("mutation desyncs until SyncAliases", func(t *testing.T) {
		c, err := NewClient("tenant-1", "Acme Corp", "9876543210", "ops@acme.example")
		require.NoError(t, err)

		c.ClientName = "Acme Industries"
		assert.False(t, c.AliasesInSync())

		c.SyncAliases()
		assert.True(t, c.AliasesInSync())
		assert.Equal(t, "Acme Industries", c.Name)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewClient("tenant-1", "  ", "", "")
		assert.Error(t, err)
	})
}

func TestLeadFollowupAt(t *testing.T) {
	loc := time.UTC

	t.Run("date and time pair", func(t *testing.T) {
		l := Lead{FollowupDate: "2026-08-28", FollowupTime: "14:30"}
		at, ok := l.FollowupAt(loc)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 8, 28, 14, 30, 0, 0, loc), at)
	})

	t.Run("missing time defaults to morning", func(t *testing.T) {
		l := Lead{FollowupDate: "2026-08-28"}
		at, ok := l.FollowupAt(loc)
		require.True(t, ok)
		assert.Equal(t, 9, at.Hour())
	})

	t.Run("no date means no followup", func(t *testing.T) {
		l := Lead{}
		_, ok := l.FollowupAt(loc)
		assert.False(t, ok)
	})

	t.Run("garbage date does not parse", func(t *testing.T) {
		l := Lead{FollowupDate: "soon"}
		_, ok := l.FollowupAt(loc)
		assert.False(t, ok)
	})
}

func TestLeadDueBy(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		lead Lead
		due  bool
	}{
		{"new lead past followup", Lead{Status: LeadStatusNew, FollowupDate: "2026-08-28", FollowupTime: "09:00"}, true},
		{"followup exactly now", Lead{Status: LeadStatusCallFollowup, FollowupDate: "2026-08-28", FollowupTime: "12:00"}, true},
		{"followup later today", Lead{Status: LeadStatusNew, FollowupDate: "2026-08-28", FollowupTime: "15:00"}, false},
		{"converted lead never due", Lead{Status: LeadStatusConvert, FollowupDate: "2026-08-01"}, false},
		{"unqualified lead never due", Lead{Status: LeadStatusUnqualified, FollowupDate: "2026-08-01"}, false},
		{"no followup scheduled", Lead{Status: LeadStatusNew}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.due, tc.lead.DueBy(now))
		})
	}
}

func TestLeadIsOpen(t *testing.T) {
	assert.True(t, (&Lead{Status: LeadStatusNew}).IsOpen())
	assert.True(t, (&Lead{Status: LeadStatusReadyForQuote}).IsOpen())
	assert.False(t, (&Lead{Status: LeadStatusConvert}).IsOpen())
	assert.False(t, (&Lead{Status: LeadStatusUnqualified}).IsOpen())
}
