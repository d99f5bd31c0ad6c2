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

const contributionColumns = "id, user_id, contribution_type, content, status, verified, created_at, reviewed_at, reviewed_by"

type contributionRepository struct {
	pool *pgxpool.Pool
}

// NewContributionRepository returns a Postgres-backed implementation of ContributionRepository.
func NewContributionRepository(pool *pgxpool.Pool) repository.ContributionRepository {
	return &contributionRepository{pool: pool}
}

func (r *contributionRepository) Create(ctx context.Context, contribution *domain.UserContribution) (*domain.UserContribution, error) {
	if contribution == nil {
		return nil, domain.ErrInvalidPayload
	}
	if contribution.ID == "" {
		contribution.ID = uuid.NewString()
	}
	if contribution.Status == "" {
		contribution.Status = domain.ContributionStatusPending
	}

	const query = `
	INSERT INTO user_contributions (id, user_id, contribution_type, content, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING verified, created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		contribution.ID,
		contribution.UserID,
		contribution.ContributionType,
		marshalJSON(contribution.Content),
		contribution.Status,
	).Scan(&contribution.Verified, &contribution.CreatedAt); err != nil {
		return nil, err
	}
	return contribution, nil
}

func (r *contributionRepository) GetByID(ctx context.Context, id string) (*domain.UserContribution, error) {
	query := fmt.Sprintf("SELECT %s FROM user_contributions WHERE id = $1", contributionColumns)
	return scanContribution(r.pool.QueryRow(ctx, query, id))
}

func (r *contributionRepository) List(ctx context.Context, filter repository.ContributionFilter) ([]domain.UserContribution, error) {
	conds := &conditions{}
	conds.eq("user_id", filter.UserID)
	conds.eq("status", filter.Status)

	limit, offset := normalizePage(filter.Page, filter.Limit, 10)
	query := fmt.Sprintf(
		"SELECT %s FROM user_contributions%s ORDER BY created_at DESC%s",
		contributionColumns, conds.where(), conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contributions := []domain.UserContribution{}
	for rows.Next() {
		contribution, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, *contribution)
	}
	return contributions, rows.Err()
}

func (r *contributionRepository) Review(ctx context.Context, id, status, reviewerID string, verified bool) (*domain.UserContribution, error) {
	query := fmt.Sprintf(`
	UPDATE user_contributions
	SET status = $2, verified = $3, reviewed_by = $4, reviewed_at = NOW()
	WHERE id = $1
	RETURNING %s`, contributionColumns)
	return scanContribution(r.pool.QueryRow(ctx, query, id, status, verified, reviewerID))
}

func scanContribution(row pgx.Row) (*domain.UserContribution, error) {
	var contribution domain.UserContribution
	var (
		content    []byte
		reviewedBy *string
	)

	if err := row.Scan(
		&contribution.ID,
		&contribution.UserID,
		&contribution.ContributionType,
		&content,
		&contribution.Status,
		&contribution.Verified,
		&contribution.CreatedAt,
		&contribution.ReviewedAt,
		&reviewedBy,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContributionNotFound
		}
		return nil, err
	}

	contribution.Content = content
	contribution.ReviewedBy = derefText(reviewedBy)
	return &contribution, nil
}
