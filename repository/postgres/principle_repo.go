package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rbe-platform/backend/domain"
	"github.com/rbe-platform/backend/repository"
)

const principleColumns = "id, principle_number, principle_text, category, status, progress_percentage, region, evidence_links, notes, created_at, updated_at, updated_by"

type principleRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipleRepository returns a Postgres-backed implementation of PrincipleRepository.
func NewPrincipleRepository(pool *pgxpool.Pool) repository.PrincipleRepository {
	return &principleRepository{pool: pool}
}

func (r *principleRepository) List(ctx context.Context, filter repository.PrincipleFilter) ([]domain.Principle, error) {
	conds := &conditions{}
	conds.eq("region", filter.Region)
	conds.eq("category", filter.Category)
	conds.eq("status", filter.Status)

	limit, offset := normalizePage(filter.Page, filter.Limit, 100)
	query := fmt.Sprintf(
		"SELECT %s FROM principles_implementation%s ORDER BY principle_number ASC%s",
		principleColumns, conds.where(), conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	principles := []domain.Principle{}
	for rows.Next() {
		principle, err := scanPrinciple(rows)
		if err != nil {
			return nil, err
		}
		principles = append(principles, *principle)
	}
	return principles, rows.Err()
}

func (r *principleRepository) GetByNumber(ctx context.Context, number int) (*domain.Principle, error) {
	query := fmt.Sprintf("SELECT %s FROM principles_implementation WHERE principle_number = $1", principleColumns)
	return scanPrinciple(r.pool.QueryRow(ctx, query, number))
}

func (r *principleRepository) UpdateByNumber(ctx context.Context, number int, patch domain.PrinciplePatch) (*domain.Principle, error) {
	set := newSetClause(number)
	if patch.Status != nil {
		set.set("status", *patch.Status)
	}
	if patch.ProgressPercentage != nil {
		set.set("progress_percentage", *patch.ProgressPercentage)
	}
	if patch.EvidenceLinks != nil {
		set.set("evidence_links", patch.EvidenceLinks)
	}
	if patch.Notes != nil {
		set.set("notes", *patch.Notes)
	}
	if set.empty() {
		return nil, domain.ErrEmptyUpdate
	}

	query := fmt.Sprintf(
		"UPDATE principles_implementation SET %s WHERE principle_number = $1 RETURNING %s",
		set.render(), principleColumns,
	)
	return scanPrinciple(r.pool.QueryRow(ctx, query, set.args...))
}

func (r *principleRepository) StatsSummary(ctx context.Context) (*domain.PrincipleSummary, error) {
	const query = `
	SELECT status, COUNT(*) AS count, COALESCE(AVG(progress_percentage), 0) AS avg_progress
	FROM principles_implementation
	GROUP BY status
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &domain.PrincipleSummary{ByStatus: []domain.PrincipleStatusStat{}}
	for rows.Next() {
		var stat domain.PrincipleStatusStat
		if err := rows.Scan(&stat.Status, &stat.Count, &stat.AvgProgress); err != nil {
			return nil, err
		}
		summary.ByStatus = append(summary.ByStatus, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM principles_implementation").Scan(&summary.Total); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *principleRepository) StatsByCategory(ctx context.Context) ([]domain.PrincipleCategoryStat, error) {
	const query = `
	SELECT
		category,
		COUNT(*) AS total,
		SUM(CASE WHEN status = 'implemented' THEN 1 ELSE 0 END) AS implemented,
		SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END) AS in_progress,
		SUM(CASE WHEN status = 'planned' THEN 1 ELSE 0 END) AS planned,
		COALESCE(AVG(progress_percentage), 0) AS avg_progress
	FROM principles_implementation
	GROUP BY category
	ORDER BY category
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []domain.PrincipleCategoryStat{}
	for rows.Next() {
		var stat domain.PrincipleCategoryStat
		if err := rows.Scan(&stat.Category, &stat.Total, &stat.Implemented, &stat.InProgress, &stat.Planned, &stat.AvgProgress); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func scanPrinciple(row pgx.Row) (*domain.Principle, error) {
	var principle domain.Principle
	var (
		notes     *string
		updatedBy *string
	)

	if err := row.Scan(
		&principle.ID,
		&principle.PrincipleNumber,
		&principle.PrincipleText,
		&principle.Category,
		&principle.Status,
		&principle.ProgressPercentage,
		&principle.Region,
		&principle.EvidenceLinks,
		&notes,
		&principle.CreatedAt,
		&principle.UpdatedAt,
		&updatedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPrincipleNotFound
		}
		return nil, err
	}

	principle.Notes = derefText(notes)
	principle.UpdatedBy = derefText(updatedBy)
	return &principle, nil
}
