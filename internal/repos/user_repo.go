package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"mandaladaka/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userCols = `id, username, name, password_hash, roles`

func (r *UserRepo) ByUsername(username string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(username)=LOWER(?)`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List() ([]domain.User, error) {
	var out []domain.User
	err := r.db.Select(&out, `SELECT `+userCols+` FROM users ORDER BY username`)
	return out, err
}

func (r *UserRepo) Create(u *domain.User) (*domain.User, error) {
	res, err := r.db.Exec(`
		INSERT INTO users(username, name, password_hash, roles)
		VALUES(?,?,?,?)
	`, u.Username, u.Name, u.Hash, u.Roles)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

// Update applies the non-nil patch fields. The password arrives pre-hashed;
// hashing lives in the staff service, not here.
func (r *UserRepo) Update(id int64, username, name, hash, roles *string) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		if set != "" {
			set += ", "
		}
		set += col + "=?"
		args = append(args, v)
	}
	if username != nil {
		add("username", *username)
	}
	if name != nil {
		add("name", *name)
	}
	if hash != nil {
		add("password_hash", *hash)
	}
	if roles != nil {
		add("roles", *roles)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	res, err := r.db.Exec(`UPDATE users SET `+set+` WHERE id=?`, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &domain.NotFoundError{Kind: "user", ID: id}
	}
	return nil
}
