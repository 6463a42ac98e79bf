package handlers

import (
	"time"

	"mandaladaka/internal/domain"
)

type productView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability bool    `json:"availability"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
	Visibility   bool    `json:"visibility,omitempty"`
}

type itemView struct {
	Product  productView `json:"product"`
	Quantity int         `json:"quantity"`
	// Price the line bills at; may differ from the product's current price.
	PriceAtOrder float64 `json:"price_at_order"`
	Total        float64 `json:"total"`
}

type orderView struct {
	ID          int64      `json:"id"`
	TableNumber int64      `json:"table_number"`
	WaiterID    int64      `json:"waiter_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	Items       []itemView `json:"items"`
	TotalPrice  float64    `json:"total_price"`
}

type tableView struct {
	ID             int64       `json:"id"`
	Status         string      `json:"status"`
	NumberOfPeople int         `json:"number_of_people"`
	Orders         []orderView `json:"orders,omitempty"`
	TotalBill      float64     `json:"total_bill"`
}

func toProductView(p domain.Product) productView {
	return productView{
		ID: p.ID, Name: p.Name, Price: p.Price, Availability: p.Availability,
		Category: p.Category, ImageURL: p.ImageURL, Visibility: p.Visibility,
	}
}

func toOrderView(o *domain.Order) orderView {
	v := orderView{
		ID:          o.ID,
		TableNumber: o.TableNumber,
		WaiterID:    o.WaiterID,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		Items:       make([]itemView, 0, len(o.Items)),
		TotalPrice:  o.TotalPrice(),
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, itemView{
			Product:      toProductView(it.Product),
			Quantity:     it.Quantity,
			PriceAtOrder: it.UnitPrice,
			Total:        it.Total(),
		})
	}
	return v
}

func toOrderViews(orders []*domain.Order) []orderView {
	out := make([]orderView, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderView(o))
	}
	return out
}

func toTableView(t *domain.Table) tableView {
	return tableView{
		ID:             t.ID,
		Status:         string(t.Status),
		NumberOfPeople: t.NumberOfPeople,
		Orders:         toOrderViews(t.Orders),
		TotalBill:      t.TotalBill(),
	}
}
