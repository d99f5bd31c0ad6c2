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

const automationColumns = "id, sector, subsector, automation_percentage, jobs_automated, jobs_created, region, timestamp, notes"

type automationRepository struct {
	pool *pgxpool.Pool
}

// NewAutomationRepository returns a Postgres-backed implementation of AutomationRepository.
func NewAutomationRepository(pool *pgxpool.Pool) repository.AutomationRepository {
	return &automationRepository{pool: pool}
}

func (r *automationRepository) List(ctx context.Context, filter repository.TimeSeriesFilter) ([]domain.AutomationProgress, error) {
	conds := &conditions{}
	conds.eq("region", filter.Region)
	conds.eq("sector", filter.Category)

	limit, offset := normalizePage(filter.Page, filter.Limit, 10)
	query := fmt.Sprintf(
		"SELECT %s FROM automation_progress%s ORDER BY timestamp DESC%s",
		automationColumns, conds.where(), conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.AutomationProgress{}
	for rows.Next() {
		record, err := scanAutomation(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

func (r *automationRepository) GetByID(ctx context.Context, id string) (*domain.AutomationProgress, error) {
	query := fmt.Sprintf("SELECT %s FROM automation_progress WHERE id = $1", automationColumns)
	return scanAutomation(r.pool.QueryRow(ctx, query, id))
}

func (r *automationRepository) Create(ctx context.Context, record *domain.AutomationProgress) (*domain.AutomationProgress, error) {
	if record == nil {
		return nil, domain.ErrInvalidPayload
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO automation_progress (id, sector, subsector, automation_percentage, jobs_automated, jobs_created, region, notes)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING timestamp
	`
	if err := r.pool.QueryRow(ctx, query,
		record.ID,
		record.Sector,
		record.Subsector,
		record.AutomationPercentage,
		record.JobsAutomated,
		record.JobsCreated,
		record.Region,
		record.Notes,
	).Scan(&record.Timestamp); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *automationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM automation_progress WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAutomationNotFound
	}
	return nil
}

func (r *automationRepository) StatsBySector(ctx context.Context) ([]domain.AutomationSectorStat, error) {
	const query = `
	SELECT
		sector,
		COALESCE(AVG(automation_percentage), 0) AS avg_automation,
		COALESCE(SUM(jobs_automated), 0) AS total_jobs_automated,
		COALESCE(SUM(jobs_created), 0) AS total_jobs_created
	FROM automation_progress
	GROUP BY sector
	ORDER BY avg_automation DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.AutomationSectorStat{}
	for rows.Next() {
		var stat domain.AutomationSectorStat
		if err := rows.Scan(&stat.Sector, &stat.AvgAutomation, &stat.TotalJobsAutomated, &stat.TotalJobsCreated); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (r *automationRepository) Summary(ctx context.Context) (*domain.AutomationSummary, error) {
	const query = `
	SELECT
		COALESCE(AVG(automation_percentage), 0) AS global_avg_automation,
		COALESCE(SUM(jobs_automated), 0) AS total_jobs_automated,
		COALESCE(SUM(jobs_created), 0) AS total_jobs_created,
		COUNT(DISTINCT sector) AS sectors_tracked
	FROM automation_progress
	`
	var summary domain.AutomationSummary
	if err := r.pool.QueryRow(ctx, query).Scan(
		&summary.GlobalAvgAutomation,
		&summary.TotalJobsAutomated,
		&summary.TotalJobsCreated,
		&summary.SectorsTracked,
	); err != nil {
		return nil, err
	}
	return &summary, nil
}

func scanAutomation(row pgx.Row) (*domain.AutomationProgress, error) {
	var record domain.AutomationProgress
	var (
		subsector *string
		notes     *string
	)

	if err := row.Scan(
		&record.ID,
		&record.Sector,
		&subsector,
		&record.AutomationPercentage,
		&record.JobsAutomated,
		&record.JobsCreated,
		&record.Region,
		&record.Timestamp,
		&notes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAutomationNotFound
		}
		return nil, err
	}

	record.Subsector = derefText(subsector)
	record.Notes = derefText(notes)
	return &record, nil
}
