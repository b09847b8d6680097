package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"porcelain/internal/domain"
	"porcelain/internal/repos"
	"porcelain/internal/validate"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

// ListAll returns every product, most recently added first.
func (s *CatalogService) ListAll() ([]domain.Product, error) {
	ps, err := s.Prods.ListAll()
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return ps, nil
}

// FilterBy returns the products visible under f in catalog order.
func (s *CatalogService) FilterBy(f domain.CategoryFilter) ([]domain.Product, error) {
	ps, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	return domain.FilterProducts(ps, f), nil
}

// AddProduct checks that p is well formed and puts it at the front of the
// catalog. Ids are not checked for uniqueness.
func (s *CatalogService) AddProduct(p domain.Product) error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if err := s.Prods.Prepend(p); err != nil {
		return fmt.Errorf("add product: %w", err)
	}
	return nil
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return p, nil
}

// Search matches q against title, description and manufacturer, ignoring case.
func (s *CatalogService) Search(q string, f domain.CategoryFilter) ([]domain.Product, error) {
	ps, err := s.FilterBy(f)
	if err != nil {
		return nil, err
	}
	// A Caser is stateful; one per call.
	fold := cases.Fold()
	needle := fold.String(q)
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		hay := fold.String(p.Title + "\n" + p.Description + "\n" + p.Manufacturer)
		if strings.Contains(hay, needle) {
			out = append(out, p)
		}
	}
	return out, nil
}
