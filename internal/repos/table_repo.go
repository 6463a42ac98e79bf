package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"mandaladaka/internal/domain"
)

type TableRepo struct{ db *sqlx.DB }

func NewTableRepo(db *sqlx.DB) *TableRepo { return &TableRepo{db: db} }

type tableRow struct {
	ID             int64  `db:"id"`
	Status         string `db:"status"`
	NumberOfPeople int    `db:"number_of_people"`
}

func (r tableRow) toTable() *domain.Table {
	return &domain.Table{
		ID:             r.ID,
		Status:         domain.TableStatus(r.Status),
		NumberOfPeople: r.NumberOfPeople,
	}
}

// FindByID eagerly loads the full table graph in three steps: the table
// header, every live (non-archived) order header for that table number, then
// one batched item+product join across all those orders. (nil, nil) when the
// table does not exist.
func (r *TableRepo) FindByID(tableID int64) (*domain.Table, error) {
	var row tableRow
	err := r.db.Get(&row, `
		SELECT id, status, number_of_people FROM tables WHERE id=?
	`, tableID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := row.toTable()

	var orderRows []orderRow
	if err := r.db.Select(&orderRows, `
		SELECT id, table_number, waiter_id, status, created_at
		FROM orders WHERE table_number=? AND archived=0 ORDER BY id
	`, tableID); err != nil {
		return nil, err
	}
	if len(orderRows) == 0 {
		return t, nil
	}

	ids := make([]int64, 0, len(orderRows))
	byID := make(map[int64]*domain.Order, len(orderRows))
	for _, row := range orderRows {
		o := row.toOrder()
		t.Orders = append(t.Orders, o)
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	items, err := loadItems(r.db, ids)
	if err != nil {
		return nil, err
	}
	for id, lines := range items {
		byID[id].Items = lines
	}
	return t, nil
}

// GetAllTables loads table headers only. List views never need order detail,
// so the orders stay unloaded.
func (r *TableRepo) GetAllTables() ([]*domain.Table, error) {
	var rows []tableRow
	if err := r.db.Select(&rows, `
		SELECT id, status, number_of_people FROM tables ORDER BY id
	`); err != nil {
		return nil, err
	}
	tables := make([]*domain.Table, 0, len(rows))
	for _, row := range rows {
		tables = append(tables, row.toTable())
	}
	return tables, nil
}

// Save persists the table header only. Orders are a separate aggregate and
// never cascade from here; mutating them goes through OrderRepo.Save.
func (r *TableRepo) Save(t *domain.Table) (*domain.Table, error) {
	_, err := r.db.Exec(`
		UPDATE tables SET status=?, number_of_people=? WHERE id=?
	`, string(t.Status), t.NumberOfPeople, t.ID)
	if err != nil {
		return nil, err
	}
	return t, nil
}
