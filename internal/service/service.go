package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fsanano/garden-shop/internal/model"
)

// Transactor runs fn inside one database transaction carried by the context.
type Transactor interface {
	RunAtomic(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	List(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, in model.UserInput, passwordHash string) (model.User, error)
	Update(ctx context.Context, id int64, in model.UserInput, passwordHash string) (model.User, error)
	Delete(ctx context.Context, id int64) error
	LockBalance(ctx context.Context, id int64) (decimal.Decimal, error)
	ApplyBalanceDelta(ctx context.Context, id int64, delta decimal.Decimal, policy model.BalancePolicy) (decimal.Decimal, error)
}

type ItemRepository interface {
	List(ctx context.Context) ([]model.Item, error)
	GetByID(ctx context.Context, id int64) (model.Item, error)
	Create(ctx context.Context, in model.ItemInput) (model.Item, error)
	Update(ctx context.Context, id int64, in model.ItemInput) (model.Item, error)
	Delete(ctx context.Context, id int64) error
	Prices(ctx context.Context, ids []int64) (map[int64]decimal.Decimal, error)
}

type HoldingRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Holding, error)
	Upsert(ctx context.Context, userID int64, lines []model.BasketLine) ([]model.Holding, error)
}

type PlantRepository interface {
	List(ctx context.Context) ([]model.Plant, error)
	GetByID(ctx context.Context, id int64) (model.Plant, error)
	Create(ctx context.Context, in model.PlantInput) (model.Plant, error)
	Update(ctx context.Context, id int64, in model.PlantInput) (model.Plant, error)
	Delete(ctx context.Context, id int64) error
}
