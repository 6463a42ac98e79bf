package services

import (
	"mandaladaka/internal/domain"
	"mandaladaka/internal/repos"
)

// KitchenService drives the preparation side of the order state machine.
type KitchenService struct {
	Orders *repos.OrderRepo
}

func NewKitchenService(orders *repos.OrderRepo) *KitchenService {
	return &KitchenService{Orders: orders}
}

func (s *KitchenService) ListPendingOrders() ([]*domain.Order, error) {
	return s.Orders.FindByStatus(domain.OrderPending)
}

func (s *KitchenService) StartPreparation(orderID int64) (*domain.Order, error) {
	return s.transition(orderID, (*domain.Order).MarkInProgress)
}

func (s *KitchenService) CompletePreparation(orderID int64) (*domain.Order, error) {
	return s.transition(orderID, (*domain.Order).MarkCompleted)
}

func (s *KitchenService) transition(orderID int64, do func(*domain.Order) error) (*domain.Order, error) {
	o, err := s.Orders.FindByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, &domain.NotFoundError{Kind: "order", ID: orderID}
	}
	if err := do(o); err != nil {
		return nil, err
	}
	return s.Orders.Save(o)
}
