package services

import (
	"sync"
	"time"

	"porcelain/internal/domain"
)

// View is the top-level page a visitor is on.
type View int

const (
	ViewShop View = iota
	ViewAdmin
)

func (v View) String() string {
	if v == ViewAdmin {
		return "admin"
	}
	return "shop"
}

func (v View) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// draftSlot is the admin drafting state of one session.
type draftSlot struct {
	notes    string
	category domain.Category
	pending  bool
	failed   bool
	listing  *domain.DraftListing
}

// Session is the state owned by one visitor. All methods are safe for
// concurrent use.
type Session struct {
	ID string

	mu       sync.Mutex
	view     View
	cartOpen bool
	filter   domain.CategoryFilter
	ledger   domain.Ledger
	draft    draftSlot
	rev      uint64
	lastSeen time.Time
}

// DraftState is a copy of the drafting slot for rendering.
type DraftState struct {
	Notes    string               `json:"notes"`
	Category domain.Category      `json:"category"`
	Pending  bool                 `json:"pending"`
	Failed   bool                 `json:"failed"`
	Listing  *domain.DraftListing `json:"listing,omitempty"`
}

// CanSave reports whether a draft is ready to be accepted.
func (d DraftState) CanSave() bool { return d.Listing != nil && !d.Pending }

// Snapshot is a consistent copy of a session.
type Snapshot struct {
	View      View                  `json:"view"`
	CartOpen  bool                  `json:"cartOpen"`
	Filter    domain.CategoryFilter `json:"filter"`
	Lines     []domain.CartLine     `json:"lines"`
	ItemCount int                   `json:"itemCount"`
	Total     int64                 `json:"total"`
	Draft     DraftState            `json:"draft"`
	Revision  uint64                `json:"revision"`
}

func newSession(id string, now time.Time) *Session {
	return &Session{ID: id, lastSeen: now, draft: draftSlot{category: domain.CategoryCups}}
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var listing *domain.DraftListing
	if s.draft.listing != nil {
		l := *s.draft.listing
		listing = &l
	}
	return Snapshot{
		View:      s.view,
		CartOpen:  s.cartOpen,
		Filter:    s.filter,
		Lines:     s.ledger.Lines(),
		ItemCount: s.ledger.ItemCount(),
		Total:     s.ledger.Total(),
		Draft: DraftState{
			Notes:    s.draft.notes,
			Category: s.draft.category,
			Pending:  s.draft.pending,
			Failed:   s.draft.failed,
			Listing:  listing,
		},
		Revision: s.rev,
	}
}

func (s *Session) update(fn func()) {
	s.mu.Lock()
	fn()
	s.rev++
	s.mu.Unlock()
}

// ShowShop switches to the shop. A finished draft is discarded; one still
// being generated keeps its slot and lands when it resolves.
func (s *Session) ShowShop() {
	s.update(func() {
		s.view = ViewShop
		if !s.draft.pending {
			s.draft = draftSlot{category: s.draft.category}
		}
	})
}

func (s *Session) ShowAdmin() { s.update(func() { s.view = ViewAdmin }) }

func (s *Session) OpenCart() { s.update(func() { s.cartOpen = true }) }

func (s *Session) CloseCart() { s.update(func() { s.cartOpen = false }) }

func (s *Session) SelectFilter(f domain.CategoryFilter) { s.update(func() { s.filter = f }) }

func (s *Session) Filter() domain.CategoryFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

func (s *Session) addToCart(p domain.Product) { s.update(func() { s.ledger.AddItem(p) }) }

func (s *Session) removeFromCart(id string) { s.update(func() { s.ledger.RemoveItem(id) }) }

// SessionStore is the in-memory registry of visitor sessions.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	onEvict  []func(ids []string)
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{sessions: map[string]*Session{}, ttl: ttl, now: time.Now}
}

// OnEvict registers fn to be called with the ids of evicted sessions.
func (st *SessionStore) OnEvict(fn func(ids []string)) {
	st.mu.Lock()
	st.onEvict = append(st.onEvict, fn)
	st.mu.Unlock()
}

// Get returns the session for id, creating it on first use. Creating a
// session also evicts the ones idle for longer than the TTL.
func (st *SessionStore) Get(id string) *Session {
	now := st.now()
	st.mu.Lock()
	s, ok := st.sessions[id]
	var evicted []string
	if !ok {
		evicted = st.sweepLocked(now)
		s = newSession(id, now)
		st.sessions[id] = s
	}
	hooks := st.onEvict
	st.mu.Unlock()

	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()

	if len(evicted) > 0 {
		for _, fn := range hooks {
			fn(evicted)
		}
	}
	return s
}

func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

func (st *SessionStore) sweepLocked(now time.Time) []string {
	if st.ttl <= 0 {
		return nil
	}
	var evicted []string
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen) > st.ttl && !s.draft.pending
		s.mu.Unlock()
		if idle {
			delete(st.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
