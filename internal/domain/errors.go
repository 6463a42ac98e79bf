package domain

import "fmt"

// ValidationError reports bad caller input (zero/negative quantities,
// people counts and the like). Never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// BusinessRuleError reports an aggregate precondition that does not hold,
// e.g. adding items to a finalized order or closing an available table.
type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// InvalidTransitionError reports an illegal status transition. The aggregate
// is left unchanged.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: invalid transition %s -> %s", e.Entity, e.From, e.To)
}

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// PersistenceError wraps a transaction or connection fault. The failed save
// was rolled back in full, so the caller may retry the whole call.
type PersistenceError struct {
	OrderID int64
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting order %d: %v", e.OrderID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
