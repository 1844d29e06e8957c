package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"fsanano/garden-shop/internal/model"
)

const userColumns = `id, nom, correu, contrasenya, edat, nacionalitat, codiPostal, imatgePerfil, btc`

type UserRepository struct {
	db *Database
}

func NewUserRepository(db *Database) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Age,
		&u.Nationality,
		&u.PostalCode,
		&u.ProfileImage,
		&u.Balance,
	)
	return u, err
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.db.read(ctx, func(q PgxExecutor) error {
		rows, err := q.Query(ctx, "SELECT "+userColumns+" FROM usuaris ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close()

		users = users[:0]
		for rows.Next() {
			u, err := scanUser(rows)
			if err != nil {
				return err
			}
			users = append(users, u)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, convertErr(err, nil, "list users")
	}
	return users, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := r.db.read(ctx, func(q PgxExecutor) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx, "SELECT "+userColumns+" FROM usuaris WHERE id = $1", id))
		return err
	})
	if err != nil {
		return model.User{}, convertErr(err, model.ErrUserNotFound, "get user")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := r.db.read(ctx, func(q PgxExecutor) error {
		var err error
		u, err = scanUser(q.QueryRow(ctx, "SELECT "+userColumns+" FROM usuaris WHERE correu = $1", email))
		return err
	})
	if err != nil {
		return model.User{}, convertErr(err, model.ErrUserNotFound, "get user by email")
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, in model.UserInput, passwordHash string) (model.User, error) {
	row := r.db.getExecutor(ctx).QueryRow(ctx,
		`INSERT INTO usuaris (nom, correu, contrasenya, edat, nacionalitat, codiPostal, imatgePerfil)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		in.Name, in.Email, passwordHash, in.Age, in.Nationality, in.PostalCode, in.ProfileImage,
	)
	u, err := scanUser(row)
	if err != nil {
		return model.User{}, convertErr(err, nil, "create user")
	}
	return u, nil
}

// Update replaces the profile fields. An empty passwordHash keeps the stored one.
func (r *UserRepository) Update(ctx context.Context, id int64, in model.UserInput, passwordHash string) (model.User, error) {
	row := r.db.getExecutor(ctx).QueryRow(ctx,
		`UPDATE usuaris
		SET nom = $2, correu = $3, contrasenya = COALESCE(NULLIF($4, ''), contrasenya), edat = $5,
			nacionalitat = $6, codiPostal = $7, imatgePerfil = $8
		WHERE id = $1
		RETURNING `+userColumns,
		id, in.Name, in.Email, passwordHash, in.Age, in.Nationality, in.PostalCode, in.ProfileImage,
	)
	u, err := scanUser(row)
	if err != nil {
		return model.User{}, convertErr(err, model.ErrUserNotFound, "update user")
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.getExecutor(ctx).Exec(ctx, "DELETE FROM usuaris WHERE id = $1", id)
	if err != nil {
		return convertErr(err, nil, "delete user")
	}
	return mustOneRow(tag, model.ErrUserNotFound)
}

// LockBalance locks the user row for the rest of the transaction and returns its balance.
func (r *UserRepository) LockBalance(ctx context.Context, id int64) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.getExecutor(ctx).QueryRow(ctx, "SELECT btc FROM usuaris WHERE id = $1 FOR UPDATE", id).Scan(&balance)
	if err != nil {
		return decimal.Decimal{}, convertErr(err, model.ErrUserNotFound, "lock user balance")
	}
	return balance, nil
}

// ApplyBalanceDelta is the only statement that changes a balance. With BalanceConstrained a
// delta that would leave the balance below zero is rejected with model.ErrInsufficientBalance
// and nothing is written.
func (r *UserRepository) ApplyBalanceDelta(
	ctx context.Context,
	id int64,
	delta decimal.Decimal,
	policy model.BalancePolicy,
) (decimal.Decimal, error) {
	q := r.db.getExecutor(ctx)

	var balance decimal.Decimal
	err := q.QueryRow(ctx,
		`UPDATE usuaris SET btc = btc + $2
		WHERE id = $1 AND ($3 OR btc + $2 >= 0)
		RETURNING btc`,
		id, delta, policy == model.BalanceUnconstrained,
	).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) || policy == model.BalanceUnconstrained {
		return decimal.Decimal{}, convertErr(err, model.ErrUserNotFound, "apply balance delta")
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM usuaris WHERE id = $1)", id).Scan(&exists); err != nil {
		return decimal.Decimal{}, convertErr(err, nil, "check user exists")
	}
	if !exists {
		return decimal.Decimal{}, model.ErrUserNotFound
	}
	return decimal.Decimal{}, model.ErrInsufficientBalance
}
