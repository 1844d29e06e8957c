package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"fsanano/garden-shop/internal/model"
)

const plantColumns = `id, nom, especie, descripcio, imatge`

type PlantRepository struct {
	db *Database
}

func NewPlantRepository(db *Database) *PlantRepository {
	return &PlantRepository{db: db}
}

func scanPlant(row pgx.Row) (model.Plant, error) {
	var p model.Plant
	err := row.Scan(&p.ID, &p.Name, &p.Species, &p.Description, &p.Image)
	return p, err
}

func (r *PlantRepository) List(ctx context.Context) ([]model.Plant, error) {
	plants := []model.Plant{}
	err := r.db.read(ctx, func(q PgxExecutor) error {
		rows, err := q.Query(ctx, "SELECT "+plantColumns+" FROM plantas ORDER BY id")
		if err != nil {
			return err
		}
		defer rows.Close()

		plants = plants[:0]
		for rows.Next() {
			p, err := scanPlant(rows)
			if err != nil {
				return err
			}
			plants = append(plants, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, convertErr(err, nil, "list plants")
	}
	return plants, nil
}

func (r *PlantRepository) GetByID(ctx context.Context, id int64) (model.Plant, error) {
	var p model.Plant
	err := r.db.read(ctx, func(q PgxExecutor) error {
		var err error
		p, err = scanPlant(q.QueryRow(ctx, "SELECT "+plantColumns+" FROM plantas WHERE id = $1", id))
		return err
	})
	if err != nil {
		return model.Plant{}, convertErr(err, model.ErrPlantNotFound, "get plant")
	}
	return p, nil
}

func (r *PlantRepository) Create(ctx context.Context, in model.PlantInput) (model.Plant, error) {
	row := r.db.getExecutor(ctx).QueryRow(ctx,
		"INSERT INTO plantas (nom, especie, descripcio, imatge) VALUES ($1, $2, $3, $4) RETURNING "+plantColumns,
		in.Name, in.Species, in.Description, in.Image,
	)
	p, err := scanPlant(row)
	if err != nil {
		return model.Plant{}, convertErr(err, nil, "create plant")
	}
	return p, nil
}

func (r *PlantRepository) Update(ctx context.Context, id int64, in model.PlantInput) (model.Plant, error) {
	row := r.db.getExecutor(ctx).QueryRow(ctx,
		"UPDATE plantas SET nom = $2, especie = $3, descripcio = $4, imatge = $5 WHERE id = $1 RETURNING "+plantColumns,
		id, in.Name, in.Species, in.Description, in.Image,
	)
	p, err := scanPlant(row)
	if err != nil {
		return model.Plant{}, convertErr(err, model.ErrPlantNotFound, "update plant")
	}
	return p, nil
}

func (r *PlantRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.getExecutor(ctx).Exec(ctx, "DELETE FROM plantas WHERE id = $1", id)
	if err != nil {
		return convertErr(err, nil, "delete plant")
	}
	return mustOneRow(tag, model.ErrPlantNotFound)
}
