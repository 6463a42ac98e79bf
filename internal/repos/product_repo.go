package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"mandaladaka/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, availability, category, image_url, visibility`

func (r *ProductRepo) FindByID(id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListVisible returns the customer-facing menu.
func (r *ProductRepo) ListVisible() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		WHERE visibility = 1
		ORDER BY category, name
	`)
	return out, err
}

// ListAll returns every product, hidden ones included (admin view).
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY category, name`)
	return out, err
}

func (r *ProductRepo) Create(p *domain.Product) (*domain.Product, error) {
	res, err := r.db.Exec(`
		INSERT INTO products(name, price, availability, category, image_url, visibility)
		VALUES(?,?,?,?,?,?)
	`, p.Name, p.Price, p.Availability, p.Category, p.ImageURL, p.Visibility)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return p, nil
}

// Update applies the non-nil patch fields to one product. Explicit per-field
// checks keep the set of updatable columns visible at compile time.
func (r *ProductRepo) Update(id int64, patch domain.ProductPatch) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Availability != nil {
		add("availability", *patch.Availability)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Visibility != nil {
		add("visibility", *patch.Visibility)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	res, err := r.db.Exec(`UPDATE products SET `+set+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.NotFoundError{Kind: "product", ID: id}
	}
	return nil
}
