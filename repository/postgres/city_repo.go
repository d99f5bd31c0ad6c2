package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

const cityColumns = "id, name, region, country, status, population_target, current_population, renewable_energy_percentage, waste_recycling_percentage, coordinates, metadata, created_at, updated_at"

type cityRepository struct {
	pool *pgxpool.Pool
}

// NewCityRepository returns a Postgres-backed implementation of CityRepository.
func NewCityRepository(pool *pgxpool.Pool) repository.CityRepository {
	return &cityRepository{pool: pool}
}

func (r *cityRepository) List(ctx context.Context, filter repository.CityFilter) ([]domain.CircularCity, error) {
	conds := &conditions{}
	conds.eq("region", filter.Region)
	conds.eq("status", filter.Status)

	limit, offset := normalizePage(filter.Page, filter.Limit, 10)
	query := fmt.Sprintf(
		"SELECT %s FROM circular_cities%s ORDER BY created_at DESC%s",
		cityColumns, conds.where(), conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cities := []domain.CircularCity{}
	for rows.Next() {
		city, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, *city)
	}
	return cities, rows.Err()
}

func (r *cityRepository) GetByID(ctx context.Context, id string) (*domain.CircularCity, error) {
	query := fmt.Sprintf("SELECT %s FROM circular_cities WHERE id = $1", cityColumns)
	return scanCity(r.pool.QueryRow(ctx, query, id))
}

func (r *cityRepository) Create(ctx context.Context, city *domain.CircularCity) (*domain.CircularCity, error) {
	if city == nil {
		return nil, domain.ErrInvalidPayload
	}
	if city.ID == "" {
		city.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO circular_cities (id, name, region, country, status, population_target, current_population, renewable_energy_percentage, waste_recycling_percentage, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		city.ID,
		city.Name,
		city.Region,
		city.Country,
		city.Status,
		city.PopulationTarget,
		city.CurrentPopulation,
		city.RenewableEnergyPercentage,
		city.WasteRecyclingPercentage,
		marshalJSON(city.Metadata),
	).Scan(&city.CreatedAt, &city.UpdatedAt); err != nil {
		return nil, err
	}
	return city, nil
}

func (r *cityRepository) Update(ctx context.Context, id string, patch domain.CityPatch) (*domain.CircularCity, error) {
	set := newSetClause(id)
	if patch.Name != nil {
		set.set("name", *patch.Name)
	}
	if patch.Region != nil {
		set.set("region", *patch.Region)
	}
	if patch.Country != nil {
		set.set("country", *patch.Country)
	}
	if patch.Status != nil {
		set.set("status", *patch.Status)
	}
	if patch.PopulationTarget != nil {
		set.set("population_target", *patch.PopulationTarget)
	}
	if patch.CurrentPopulation != nil {
		set.set("current_population", *patch.CurrentPopulation)
	}
	if patch.RenewableEnergyPercentage != nil {
		set.set("renewable_energy_percentage", *patch.RenewableEnergyPercentage)
	}
	if patch.WasteRecyclingPercentage != nil {
		set.set("waste_recycling_percentage", *patch.WasteRecyclingPercentage)
	}
	if patch.Metadata != nil {
		set.set("metadata", marshalJSON(patch.Metadata))
	}
	if set.empty() {
		return nil, domain.ErrEmptyUpdate
	}

	query := fmt.Sprintf("UPDATE circular_cities SET %s WHERE id = $1 RETURNING %s", set.render(), cityColumns)
	return scanCity(r.pool.QueryRow(ctx, query, set.args...))
}

func (r *cityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM circular_cities WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

func (r *cityRepository) StatsByStatus(ctx context.Context) ([]domain.CityStatusStat, error) {
	const query = `
	SELECT
		status,
		COUNT(*) AS total_cities,
		COALESCE(SUM(population_target), 0) AS total_population_target,
		COALESCE(SUM(current_population), 0) AS total_current_population,
		AVG(renewable_energy_percentage) AS avg_renewable_energy,
		AVG(waste_recycling_percentage) AS avg_waste_recycling
	FROM circular_cities
	GROUP BY status
	ORDER BY total_cities DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.CityStatusStat{}
	for rows.Next() {
		var stat domain.CityStatusStat
		if err := rows.Scan(
			&stat.Status,
			&stat.TotalCities,
			&stat.TotalPopulationTarget,
			&stat.TotalCurrentPopulation,
			&stat.AvgRenewableEnergy,
			&stat.AvgWasteRecycling,
		); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *cityRepository) Summary(ctx context.Context) (*domain.CitySummary, error) {
	const query = `
	SELECT
		COUNT(*) AS total_cities,
		COALESCE(SUM(CASE WHEN status = 'operational' THEN 1 ELSE 0 END), 0) AS operational_cities,
		COALESCE(SUM(CASE WHEN status = 'construction' THEN 1 ELSE 0 END), 0) AS under_construction,
		COALESCE(SUM(CASE WHEN status = 'planning' THEN 1 ELSE 0 END), 0) AS in_planning,
		COALESCE(SUM(CASE WHEN status = 'proposed' THEN 1 ELSE 0 END), 0) AS proposed,
		COALESCE(SUM(current_population), 0) AS total_population,
		AVG(renewable_energy_percentage) AS avg_renewable_energy,
		AVG(waste_recycling_percentage) AS avg_waste_recycling
	FROM circular_cities
	`
	var summary domain.CitySummary
	if err := r.pool.QueryRow(ctx, query).Scan(
		&summary.TotalCities,
		&summary.OperationalCities,
		&summary.UnderConstruction,
		&summary.InPlanning,
		&summary.Proposed,
		&summary.TotalPopulation,
		&summary.AvgRenewableEnergy,
		&summary.AvgWasteRecycling,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}

func scanCity(row pgx.Row) (*domain.CircularCity, error) {
	var city domain.CircularCity
	var (
		coordinates []byte
		metadata    []byte
	)

	if err := row.Scan(
		&city.ID,
		&city.Name,
		&city.Region,
		&city.Country,
		&city.Status,
		&city.PopulationTarget,
		&city.CurrentPopulation,
		&city.RenewableEnergyPercentage,
		&city.WasteRecyclingPercentage,
		&coordinates,
		&metadata,
		&city.CreatedAt,
		&city.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCityNotFound
		}
		return nil, err
	}

	city.Coordinates = coordinates
	city.Metadata = metadata
	return &city, nil
}
