package service

import (
	"context"

	"fsanano/garden-shop/internal/model"
)

type PlantService struct {
	plants PlantRepository
}

func NewPlantService(plants PlantRepository) *PlantService {
	return &PlantService{plants: plants}
}

func (s *PlantService) List(ctx context.Context) ([]model.Plant, error) {
	return s.plants.List(ctx)
}

func (s *PlantService) Get(ctx context.Context, id int64) (model.Plant, error) {
	return s.plants.GetByID(ctx, id)
}

func (s *PlantService) Create(ctx context.Context, in model.PlantInput) (model.Plant, error) {
	return s.plants.Create(ctx, in)
}

func (s *PlantService) Update(ctx context.Context, id int64, in model.PlantInput) (model.Plant, error) {
	return s.plants.Update(ctx, id, in)
}

func (s *PlantService) Delete(ctx context.Context, id int64) error {
	return s.plants.Delete(ctx, id)
}
