package services

import (
	"mandaladaka/internal/domain"
	"mandaladaka/internal/repos"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// WaiterService orchestrates the floor: seating, ordering and billing.
// All state rules live on the aggregates; this layer loads them, invokes the
// domain and persists the result.
type WaiterService struct {
	Tables   *repos.TableRepo
	Orders   *repos.OrderRepo
	Products *repos.ProductRepo
}

func NewWaiterService(tables *repos.TableRepo, orders *repos.OrderRepo, products *repos.ProductRepo) *WaiterService {
	return &WaiterService{Tables: tables, Orders: orders, Products: products}
}

func (s *WaiterService) ListTables() ([]*domain.Table, error) {
	return s.Tables.GetAllTables()
}

// TableDetails loads the table with its full order graph.
func (s *WaiterService) TableDetails(tableID int64) (*domain.Table, error) {
	t, err := s.Tables.FindByID(tableID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &domain.NotFoundError{Kind: "table", ID: tableID}
	}
	return t, nil
}

func (s *WaiterService) OpenTable(tableID int64, people int) (*domain.Table, error) {
	t, err := s.TableDetails(tableID)
	if err != nil {
		return nil, err
	}
	if err := t.Open(people); err != nil {
		return nil, err
	}
	return s.Tables.Save(t)
}

// CreateOrder builds a new pending order for an occupied table and persists
// it. The order id on the returned aggregate is the generated one.
func (s *WaiterService) CreateOrder(tableID, waiterID int64, items []OrderItemInput) (*domain.Order, error) {
	t, err := s.TableDetails(tableID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &domain.BusinessRuleError{Message: "cannot create an empty order"}
	}

	order := domain.NewOrder(tableID, waiterID)
	for _, in := range items {
		p, err := s.Products.FindByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.NotFoundError{Kind: "product", ID: in.ProductID}
		}
		if err := order.AddItem(*p, in.Quantity); err != nil {
			return nil, err
		}
	}

	// The table validates it can accept the order (occupied, matching
	// number, pending status) before anything is written.
	if err := t.AddNewOrder(order); err != nil {
		return nil, err
	}

	return s.Orders.Save(order)
}

func (s *WaiterService) AddItemToOrder(orderID, productID int64, quantity int) (*domain.Order, error) {
	o, err := s.orderByID(orderID)
	if err != nil {
		return nil, err
	}
	p, err := s.Products.FindByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.NotFoundError{Kind: "product", ID: productID}
	}
	if err := o.AddItem(*p, quantity); err != nil {
		return nil, err
	}
	return s.Orders.Save(o)
}

func (s *WaiterService) RemoveItemFromOrder(orderID, productID int64) (*domain.Order, error) {
	o, err := s.orderByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := o.RemoveProduct(productID); err != nil {
		return nil, err
	}
	return s.Orders.Save(o)
}

func (s *WaiterService) CancelOrder(orderID int64) (*domain.Order, error) {
	o, err := s.orderByID(orderID)
	if err != nil {
		return nil, err
	}
	if err := o.MarkCancelled(); err != nil {
		return nil, err
	}
	return s.Orders.Save(o)
}

// CloseTable ends the session. The completed orders are returned for the
// bill; they stay in storage as history but leave the table's live graph.
func (s *WaiterService) CloseTable(tableID int64) (*domain.Table, []*domain.Order, error) {
	t, err := s.TableDetails(tableID)
	if err != nil {
		return nil, nil, err
	}
	completed, err := t.Close()
	if err != nil {
		return nil, nil, err
	}
	if err := s.Orders.ArchiveByTable(tableID); err != nil {
		return nil, nil, err
	}
	saved, err := s.Tables.Save(t)
	if err != nil {
		return nil, nil, err
	}
	return saved, completed, nil
}

func (s *WaiterService) orderByID(orderID int64) (*domain.Order, error) {
	o, err := s.Orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Kind: "order", ID: orderID}
	}
	return o, nil
}
