package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"porcelain/internal/domain"
	applog "porcelain/internal/log"
	"porcelain/internal/validate"
)

var (
	ErrEmptyNotes    = errors.New("notes are empty")
	ErrDraftInFlight = errors.New("a draft is already being generated")
	ErrNoDraft       = errors.New("no draft to save")
)

// UnknownManufacturer is recorded for products created from drafts.
const UnknownManufacturer = "Neznámý"

// Drafter is the drafting gateway as seen by the admin flow.
type Drafter interface {
	Available() bool
	Draft(ctx context.Context, key, notes string, category domain.Category) *domain.DraftListing
}

// DraftService runs at most one drafting request per session on a
// background goroutine and turns accepted drafts into catalog products.
type DraftService struct {
	Sessions *SessionStore
	Catalog  *CatalogService
	Gateway  Drafter

	base context.Context
	wg   sync.WaitGroup
	now  func() time.Time
}

// NewDraftService ties background drafting to base; cancelling it aborts
// requests still in flight.
func NewDraftService(base context.Context, sessions *SessionStore, catalog *CatalogService, gw Drafter) *DraftService {
	return &DraftService{Sessions: sessions, Catalog: catalog, Gateway: gw, base: base, now: time.Now}
}

// Start records notes and category and dispatches a drafting request.
// notes must already be normalized.
func (s *DraftService) Start(sessionID, notes string, category domain.Category) error {
	if notes == "" {
		return ErrEmptyNotes
	}
	if !category.Valid() {
		return fmt.Errorf("start draft: invalid category %d", int(category))
	}
	sess := s.Sessions.Get(sessionID)

	sess.mu.Lock()
	if sess.draft.pending {
		sess.mu.Unlock()
		return ErrDraftInFlight
	}
	sess.draft = draftSlot{notes: notes, category: category, pending: true}
	sess.rev++
	sess.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		listing := s.Gateway.Draft(s.base, sessionID, notes, category)
		sess.update(func() {
			sess.draft.pending = false
			sess.draft.listing = listing
			sess.draft.failed = listing == nil
		})
	}()
	return nil
}

// Accept converts the session's draft into a product, adds it to the
// catalog, clears the draft and returns the visitor to the shop.
func (s *DraftService) Accept(sessionID string) (domain.Product, error) {
	sess := s.Sessions.Get(sessionID)

	sess.mu.Lock()
	if sess.draft.pending || sess.draft.listing == nil {
		sess.mu.Unlock()
		return domain.Product{}, ErrNoDraft
	}
	d := *sess.draft.listing
	if !d.PriceInRange() {
		sess.mu.Unlock()
		return domain.Product{}, validate.FieldErrors{"price": "is out of range"}
	}
	category := sess.draft.category
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)
	p := domain.Product{
		ID:           uuid.NewString(),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.PriceKc(),
		Category:     category,
		Condition:    domain.ConditionGood,
		ImageURL:     "https://picsum.photos/400/400?random=" + stamp,
		Year:         d.EstimatedYear,
		Manufacturer: UnknownManufacturer,
	}
	if err := s.Catalog.AddProduct(p); err != nil {
		sess.mu.Unlock()
		return domain.Product{}, err
	}
	sess.draft = draftSlot{category: category}
	sess.view = ViewShop
	sess.rev++
	sess.mu.Unlock()

	applog.Audit(nil, "admin.draft.accept", map[string]any{"session": sessionID, "product": p.ID, "price": p.Price})
	return p, nil
}

// Discard drops a finished draft and the notes that produced it.
func (s *DraftService) Discard(sessionID string) {
	sess := s.Sessions.Get(sessionID)
	sess.update(func() {
		if !sess.draft.pending {
			sess.draft = draftSlot{category: sess.draft.category}
		}
	})
}

// Wait blocks until every dispatched request has resolved.
func (s *DraftService) Wait() { s.wg.Wait() }
