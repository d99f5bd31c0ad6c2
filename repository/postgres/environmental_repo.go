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

const environmentalColumns = "id, metric_name, metric_type, value, unit, region, timestamp, source, metadata"

type environmentalRepository struct {
	pool *pgxpool.Pool
}

// NewEnvironmentalRepository returns a Postgres-backed implementation of EnvironmentalRepository.
func NewEnvironmentalRepository(pool *pgxpool.Pool) repository.EnvironmentalRepository {
	return &environmentalRepository{pool: pool}
}

func (r *environmentalRepository) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.EnvironmentalMetric, error) {
	conds := &conditions{}
	conds.eq("region", filter.Region)
	conds.gte("timestamp", filter.StartDate)
	conds.lte("timestamp", filter.EndDate)

	limit, offset := normalizePage(filter.Page, filter.Limit, 10)
	query := fmt.Sprintf(
		"SELECT %s FROM environmental_metrics%s ORDER BY timestamp DESC%s",
		environmentalColumns, conds.where(), conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []domain.EnvironmentalMetric{}
	for rows.Next() {
		metric, err := scanEnvironmental(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *metric)
	}
	return metrics, rows.Err()
}

func (r *environmentalRepository) GetByID(ctx context.Context, id string) (*domain.EnvironmentalMetric, error) {
	query := fmt.Sprintf("SELECT %s FROM environmental_metrics WHERE id = $1", environmentalColumns)
	return scanEnvironmental(r.pool.QueryRow(ctx, query, id))
}

func (r *environmentalRepository) Create(ctx context.Context, metric *domain.EnvironmentalMetric) (*domain.EnvironmentalMetric, error) {
	if metric == nil {
		return nil, domain.ErrInvalidPayload
	}
	if metric.ID == "" {
		metric.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO environmental_metrics (id, metric_name, metric_type, value, unit, region, source, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING timestamp
	`
	if err := r.pool.QueryRow(ctx, query,
		metric.ID,
		metric.MetricName,
		metric.MetricType,
		metric.Value,
		metric.Unit,
		metric.Region,
		metric.Source,
		marshalJSON(metric.Metadata),
	).Scan(&metric.Timestamp); err != nil {
		return nil, err
	}
	return metric, nil
}

func (r *environmentalRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM environmental_metrics WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEnvironmentalNotFound
	}
	return nil
}

func (r *environmentalRepository) StatsByType(ctx context.Context) ([]domain.EnvironmentalTypeStat, error) {
	const query = `
	SELECT metric_type, COUNT(*) AS total_metrics, COALESCE(AVG(value), 0) AS avg_value
	FROM environmental_metrics
	GROUP BY metric_type
	ORDER BY total_metrics DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.EnvironmentalTypeStat{}
	for rows.Next() {
		var stat domain.EnvironmentalTypeStat
		if err := rows.Scan(&stat.MetricType, &stat.TotalMetrics, &stat.AvgValue); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *environmentalRepository) Latest(ctx context.Context) ([]domain.EnvironmentalLatest, error) {
	// id DESC makes the winner deterministic on exact timestamp ties.
	const query = `
	SELECT DISTINCT ON (metric_name)
		metric_name, metric_type, value, unit, region, timestamp
	FROM environmental_metrics
	ORDER BY metric_name, timestamp DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := []domain.EnvironmentalLatest{}
	for rows.Next() {
		var row domain.EnvironmentalLatest
		if err := rows.Scan(&row.MetricName, &row.MetricType, &row.Value, &row.Unit, &row.Region, &row.Timestamp); err != nil {
			return nil, err
		}
		latest = append(latest, row)
	}
	return latest, rows.Err()
}

func scanEnvironmental(row pgx.Row) (*domain.EnvironmentalMetric, error) {
	var metric domain.EnvironmentalMetric
	var (
		source   *string
		metadata []byte
	)

	if err := row.Scan(
		&metric.ID,
		&metric.MetricName,
		&metric.MetricType,
		&metric.Value,
		&metric.Unit,
		&metric.Region,
		&metric.Timestamp,
		&source,
		&metadata,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEnvironmentalNotFound
		}
		return nil, err
	}

	metric.Source = derefText(source)
	metric.Metadata = metadata
	return &metric, nil
}
