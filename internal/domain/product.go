package domain

// Product is a read-only catalog reference. The aggregates never create or
// mutate products; they are looked up by the catalog repository and passed in.
type Product struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Price        float64 `db:"price"`
	Availability bool    `db:"availability"`
	Category     string  `db:"category"`
	ImageURL     string  `db:"image_url"`
	Visibility   bool    `db:"visibility"`
}

// ProductPatch carries optional field updates for a product. Nil fields are
// left untouched.
type ProductPatch struct {
	Name         *string
	Price        *float64
	Availability *bool
	Category     *string
	ImageURL     *string
	Visibility   *bool
}
