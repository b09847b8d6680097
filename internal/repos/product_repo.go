package repos

import (
	"github.com/jmoiron/sqlx"

	"porcelain/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	Pos int64 `db:"pos"`
	domain.Product
}

const productColumns = `id, title, description, price, category, condition, image_url, year, manufacturer`

const insertProduct = `
	INSERT INTO products(pos, ` + productColumns + `)
	VALUES(:pos, :id, :title, :description, :price, :category, :condition, :image_url, :year, :manufacturer)`

// ListAll returns the catalog front to back.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT `+productColumns+` FROM products ORDER BY pos`)
	return out, err
}

// Get returns the front-most product with the id, or sql.ErrNoRows.
func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productColumns+` FROM products WHERE id = ? ORDER BY pos LIMIT 1`, id)
	return p, err
}

// Prepend stores p ahead of every existing product.
func (r *ProductRepo) Prepend(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(pos, `+productColumns+`)
		SELECT COALESCE(MIN(pos), 1) - 1, ?, ?, ?, ?, ?, ?, ?, ?, ? FROM products`,
		p.ID, p.Title, p.Description, p.Price, p.Category, p.Condition, p.ImageURL, p.Year, p.Manufacturer)
	return err
}

func (r *ProductRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
	return n, err
}
