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

const cooperationColumns = "id, region_from, region_to, cooperation_type, metric_name, metric_value, timestamp, source, metadata"

type cooperationRepository struct {
	pool *pgxpool.Pool
}

// NewCooperationRepository returns a Postgres-backed implementation of CooperationRepository.
func NewCooperationRepository(pool *pgxpool.Pool) repository.CooperationRepository {
	return &cooperationRepository{pool: pool}
}

func (r *cooperationRepository) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.CooperationMetric, error) {
	conds := &conditions{}
	conds.either("region_from", "region_to", filter.Region)
	conds.gte("timestamp", filter.StartDate)
	conds.lte("timestamp", filter.EndDate)

	limit, offset := normalizePage(filter.Page, filter.Limit, 10)
	query := fmt.Sprintf(
		"SELECT %s FROM cooperation_metrics%s ORDER BY timestamp DESC%s",
		cooperationColumns, conds.where(), conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []domain.CooperationMetric{}
	for rows.Next() {
		metric, err := scanCooperation(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *metric)
	}
	return metrics, rows.Err()
}

func (r *cooperationRepository) GetByID(ctx context.Context, id string) (*domain.CooperationMetric, error) {
	query := fmt.Sprintf("SELECT %s FROM cooperation_metrics WHERE id = $1", cooperationColumns)
	return scanCooperation(r.pool.QueryRow(ctx, query, id))
}

func (r *cooperationRepository) Create(ctx context.Context, metric *domain.CooperationMetric) (*domain.CooperationMetric, error) {
	if metric == nil {
		return nil, domain.ErrInvalidPayload
	}
	if metric.ID == "" {
		metric.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO cooperation_metrics (id, region_from, region_to, cooperation_type, metric_name, metric_value, source, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING timestamp
	`
	if err := r.pool.QueryRow(ctx, query,
		metric.ID,
		metric.RegionFrom,
		metric.RegionTo,
		metric.CooperationType,
		metric.MetricName,
		metric.MetricValue,
		metric.Source,
		marshalJSON(metric.Metadata),
	).Scan(&metric.Timestamp); err != nil {
		return nil, err
	}
	return metric, nil
}

func (r *cooperationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM cooperation_metrics WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCooperationNotFound
	}
	return nil
}

func (r *cooperationRepository) StatsByRegion(ctx context.Context) ([]domain.CooperationRegionStat, error) {
	const query = `
	SELECT
		region_from,
		COUNT(*) AS total_cooperations,
		COALESCE(AVG(metric_value), 0) AS avg_cooperation_value,
		COALESCE(MAX(metric_value), 0) AS max_cooperation_value
	FROM cooperation_metrics
	GROUP BY region_from
	ORDER BY avg_cooperation_value DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.CooperationRegionStat{}
	for rows.Next() {
		var stat domain.CooperationRegionStat
		if err := rows.Scan(&stat.RegionFrom, &stat.TotalCooperations, &stat.AvgCooperationValue, &stat.MaxCooperationValue); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *cooperationRepository) StatsByType(ctx context.Context) ([]domain.CooperationTypeStat, error) {
	const query = `
	SELECT cooperation_type, COUNT(*) AS total, COALESCE(AVG(metric_value), 0) AS avg_value
	FROM cooperation_metrics
	GROUP BY cooperation_type
	ORDER BY avg_value DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.CooperationTypeStat{}
	for rows.Next() {
		var stat domain.CooperationTypeStat
		if err := rows.Scan(&stat.CooperationType, &stat.Total, &stat.AvgValue); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func scanCooperation(row pgx.Row) (*domain.CooperationMetric, error) {
	var metric domain.CooperationMetric
	var (
		regionTo *string
		source   *string
		metadata []byte
	)

	if err := row.Scan(
		&metric.ID,
		&metric.RegionFrom,
		&regionTo,
		&metric.CooperationType,
		&metric.MetricName,
		&metric.MetricValue,
		&metric.Timestamp,
		&source,
		&metadata,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCooperationNotFound
		}
		return nil, err
	}

	metric.RegionTo = derefText(regionTo)
	metric.Source = derefText(source)
	metric.Metadata = metadata
	return &metric, nil
}
