package service

import (
	"context"

	"github.com/shopspring/decimal"

	"fsanano/garden-shop/internal/model"
)

type UserService struct {
	users  UserRepository
	hasher PasswordHasher
}

func NewUserService(users UserRepository, hasher PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *UserService) Create(ctx context.Context, in model.UserInput) (model.User, error) {
	if in.Password == "" {
		return model.User{}, model.NewValidationError("contrasenya is required")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, err
	}
	return s.users.Create(ctx, in, hash)
}

// Update replaces the user's fields. An empty password keeps the stored one.
func (s *UserService) Update(ctx context.Context, id int64, in model.UserInput) (model.User, error) {
	var hash string
	if in.Password != "" {
		var err error
		if hash, err = s.hasher.Hash(in.Password); err != nil {
			return model.User{}, err
		}
	}
	return s.users.Update(ctx, id, in, hash)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

// AdjustBalance adds a signed amount to the user's balance with no lower bound and returns the
// new balance.
func (s *UserService) AdjustBalance(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.users.ApplyBalanceDelta(ctx, id, amount, model.BalanceUnconstrained)
}
