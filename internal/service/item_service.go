package service

import (
	"context"

	"fsanano/garden-shop/internal/model"
)

type ItemService struct {
	items ItemRepository
}

func NewItemService(items ItemRepository) *ItemService {
	return &ItemService{items: items}
}

func (s *ItemService) List(ctx context.Context) ([]model.Item, error) {
	return s.items.List(ctx)
}

func (s *ItemService) Get(ctx context.Context, id int64) (model.Item, error) {
	return s.items.GetByID(ctx, id)
}

func (s *ItemService) Create(ctx context.Context, in model.ItemInput) (model.Item, error) {
	return s.items.Create(ctx, in)
}

func (s *ItemService) Update(ctx context.Context, id int64, in model.ItemInput) (model.Item, error) {
	return s.items.Update(ctx, id, in)
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	return s.items.Delete(ctx, id)
}
