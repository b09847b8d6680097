package services

import "porcelain/internal/domain"

// CartService mutates the ledger of a visitor session. It has no say over
// the cart drawer; handlers open it explicitly after adding.
type CartService struct {
	Sessions *SessionStore
	Catalog  *CatalogService
}

func NewCartService(sessions *SessionStore, catalog *CatalogService) *CartService {
	return &CartService{Sessions: sessions, Catalog: catalog}
}

// Add puts one more of productID into the session's cart.
func (s *CartService) Add(sessionID, productID string) (domain.Product, error) {
	p, err := s.Catalog.GetProduct(productID)
	if err != nil {
		return domain.Product{}, err
	}
	s.Sessions.Get(sessionID).addToCart(p)
	return p, nil
}

// Remove drops the line for productID; unknown ids are ignored.
func (s *CartService) Remove(sessionID, productID string) {
	s.Sessions.Get(sessionID).removeFromCart(productID)
}

type CartView struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"itemCount"`
	Total     int64             `json:"total"`
	Currency  string            `json:"currency"`
}

func (s *CartService) View(sessionID string) CartView {
	snap := s.Sessions.Get(sessionID).Snapshot()
	return CartView{
		Lines:     snap.Lines,
		ItemCount: snap.ItemCount,
		Total:     snap.Total,
		Currency:  domain.ShopCurrency.String(),
	}
}
