package handler

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"fsanano/garden-shop/internal/model"
)

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, in model.UserInput) (model.User, error)
	Update(ctx context.Context, id int64, in model.UserInput) (model.User, error)
	Delete(ctx context.Context, id int64) error
	AdjustBalance(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error)
}

type ItemService interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id int64) (model.Item, error)
	Create(ctx context.Context, in model.ItemInput) (model.Item, error)
	Update(ctx context.Context, id int64, in model.ItemInput) (model.Item, error)
	Delete(ctx context.Context, id int64) error
}

type PlantService interface {
	List(ctx context.Context) ([]model.Plant, error)
	Get(ctx context.Context, id int64) (model.Plant, error)
	Create(ctx context.Context, in model.PlantInput) (model.Plant, error)
	Update(ctx context.Context, id int64, in model.PlantInput) (model.Plant, error)
	Delete(ctx context.Context, id int64) error
}

type PurchaseService interface {
	Purchase(ctx context.Context, req model.PurchaseRequest) (model.Receipt, error)
	Holdings(ctx context.Context, userID int64) ([]model.Holding, error)
}

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
