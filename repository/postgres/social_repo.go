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

const socialColumns = "id, metric_name, category, value, region, timestamp, source"

type socialRepository struct {
	pool *pgxpool.Pool
}

// NewSocialRepository returns a Postgres-backed implementation of SocialRepository.
func NewSocialRepository(pool *pgxpool.Pool) repository.SocialRepository {
	return &socialRepository{pool: pool}
}

func (r *socialRepository) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.SocialMetric, error) {
	conds := &conditions{}
	conds.eq("region", filter.Region)
	conds.eq("category", filter.Category)

	limit, offset := normalizePage(filter.Page, filter.Limit, 10)
	query := fmt.Sprintf(
		"SELECT %s FROM social_metrics%s ORDER BY timestamp DESC%s",
		socialColumns, conds.where(), conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metrics := []domain.SocialMetric{}
	for rows.Next() {
		metric, err := scanSocial(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, *metric)
	}
	return metrics, rows.Err()
}

func (r *socialRepository) GetByID(ctx context.Context, id string) (*domain.SocialMetric, error) {
	query := fmt.Sprintf("SELECT %s FROM social_metrics WHERE id = $1", socialColumns)
	return scanSocial(r.pool.QueryRow(ctx, query, id))
}

func (r *socialRepository) Create(ctx context.Context, metric *domain.SocialMetric) (*domain.SocialMetric, error) {
	if metric == nil {
		return nil, domain.ErrInvalidPayload
	}
	if metric.ID == "" {
		metric.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO social_metrics (id, metric_name, category, value, region, source)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING timestamp
	`
	if err := r.pool.QueryRow(ctx, query,
		metric.ID,
		metric.MetricName,
		metric.Category,
		metric.Value,
		metric.Region,
		metric.Source,
	).Scan(&metric.Timestamp); err != nil {
		return nil, err
	}
	return metric, nil
}

func (r *socialRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM social_metrics WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSocialNotFound
	}
	return nil
}

func (r *socialRepository) StatsByCategory(ctx context.Context) ([]domain.SocialCategoryStat, error) {
	const query = `
	SELECT
		category,
		COUNT(*) AS total_metrics,
		COALESCE(AVG(value), 0) AS avg_value,
		COALESCE(MAX(value), 0) AS max_value,
		COALESCE(MIN(value), 0) AS min_value
	FROM social_metrics
	GROUP BY category
	ORDER BY avg_value DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.SocialCategoryStat{}
	for rows.Next() {
		var stat domain.SocialCategoryStat
		if err := rows.Scan(&stat.Category, &stat.TotalMetrics, &stat.AvgValue, &stat.MaxValue, &stat.MinValue); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *socialRepository) StatsByRegion(ctx context.Context) ([]domain.SocialRegionStat, error) {
	const query = `
	SELECT region, COUNT(*) AS total_metrics, COALESCE(AVG(value), 0) AS avg_value
	FROM social_metrics
	GROUP BY region
	ORDER BY avg_value DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.SocialRegionStat{}
	for rows.Next() {
		var stat domain.SocialRegionStat
		if err := rows.Scan(&stat.Region, &stat.TotalMetrics, &stat.AvgValue); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *socialRepository) Latest(ctx context.Context) ([]domain.SocialLatest, error) {
	// id DESC makes the winner deterministic on exact timestamp ties.
	const query = `
	SELECT DISTINCT ON (metric_name, region)
		metric_name, category, value, region, timestamp
	FROM social_metrics
	ORDER BY metric_name, region, timestamp DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := []domain.SocialLatest{}
	for rows.Next() {
		var row domain.SocialLatest
		if err := rows.Scan(&row.MetricName, &row.Category, &row.Value, &row.Region, &row.Timestamp); err != nil {
			return nil, err
		}
		latest = append(latest, row)
	}
	return latest, rows.Err()
}

func scanSocial(row pgx.Row) (*domain.SocialMetric, error) {
	var metric domain.SocialMetric
	var source *string

	if err := row.Scan(
		&metric.ID,
		&metric.MetricName,
		&metric.Category,
		&metric.Value,
		&metric.Region,
		&metric.Timestamp,
		&source,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSocialNotFound
		}
		return nil, err
	}

	metric.Source = derefText(source)
	return &metric, nil
}
