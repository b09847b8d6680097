package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porcelain/internal/domain"
)

func TestSessionDefaults(t *testing.T) {
	st := NewSessionStore(time.Hour)
	snap := st.Get("a").Snapshot()

	assert.Equal(t, ViewShop, snap.View)
	assert.False(t, snap.CartOpen)
	assert.True(t, snap.Filter.All())
	assert.Empty(t, snap.Lines)
	assert.Equal(t, domain.CategoryCups, snap.Draft.Category)
	assert.False(t, snap.Draft.CanSave())
}

func TestSessionTransitionsBumpRevision(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := st.Get("a")

	s.ShowAdmin()
	s.OpenCart()
	s.SelectFilter(domain.FilterOf(domain.CategoryTeapots))
	snap := s.Snapshot()

	assert.Equal(t, ViewAdmin, snap.View)
	assert.True(t, snap.CartOpen)
	assert.Equal(t, domain.CategoryTeapots, snap.Filter.Category)
	assert.Equal(t, uint64(3), snap.Revision)

	s.CloseCart()
	s.ShowShop()
	snap = s.Snapshot()
	assert.False(t, snap.CartOpen)
	assert.Equal(t, ViewShop, snap.View)
	assert.Equal(t, domain.CategoryTeapots, s.Filter().Category, "view changes keep the filter")
}

func TestShowShopDiscardsFinishedDraft(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := st.Get("a")
	s.draft = draftSlot{notes: "n", category: domain.CategoryPlates, listing: &domain.DraftListing{Title: "t"}}

	s.ShowShop()

	d := s.Snapshot().Draft
	assert.Nil(t, d.Listing)
	assert.Empty(t, d.Notes)
	assert.Equal(t, domain.CategoryPlates, d.Category)
}

func TestShowShopKeepsPendingDraft(t *testing.T) {
	st := NewSessionStore(time.Hour)
	s := st.Get("a")
	s.draft = draftSlot{notes: "n", category: domain.CategoryPlates, pending: true}

	s.ShowShop()

	d := s.Snapshot().Draft
	assert.True(t, d.Pending)
	assert.Equal(t, "n", d.Notes)
}

func TestStoreEvictsIdleSessions(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	st := NewSessionStore(time.Hour)
	st.now = func() time.Time { return now }

	var evicted []string
	st.OnEvict(func(ids []string) { evicted = append(evicted, ids...) })

	st.Get("old")
	busy := st.Get("busy")
	busy.draft.pending = true

	now = now.Add(2 * time.Hour)
	st.Get("new")

	assert.Equal(t, []string{"old"}, evicted)
	require.Equal(t, 2, st.Len())
	assert.Same(t, busy, st.Get("busy"), "sessions with a pending draft are kept")
}
