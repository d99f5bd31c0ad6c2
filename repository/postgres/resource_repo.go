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

const resourceColumns = "id, category, subcategory, name, current_amount, unit, region, last_updated, source_api, confidence_level, metadata, created_at, updated_at"

// Sortable resource columns. Anything else falls back to last_updated so
// user input never reaches the ORDER BY clause verbatim.
var resourceSortColumns = map[string]bool{
	"name":           true,
	"category":       true,
	"region":         true,
	"current_amount": true,
	"last_updated":   true,
	"created_at":     true,
	"updated_at":     true,
}

type resourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository returns a Postgres-backed implementation of ResourceRepository.
func NewResourceRepository(pool *pgxpool.Pool) repository.ResourceRepository {
	return &resourceRepository{pool: pool}
}

func (r *resourceRepository) List(ctx context.Context, filter repository.ResourceFilter) ([]domain.Resource, int64, error) {
	conds := &conditions{}
	conds.eq("region", filter.Region)
	conds.eq("category", filter.Category)
	where := conds.where()

	var total int64
	countQuery := "SELECT COUNT(*) FROM resources" + where
	if err := r.pool.QueryRow(ctx, countQuery, conds.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, offset := normalizePage(filter.Page, filter.Limit, 10)
	query := fmt.Sprintf(
		"SELECT %s FROM resources%s ORDER BY %s %s%s",
		resourceColumns, where,
		resourceSortColumn(filter.SortBy), sortOrder(filter.Order),
		conds.page(limit, offset),
	)

	rows, err := r.pool.Query(ctx, query, conds.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	resources := []domain.Resource{}
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, 0, err
		}
		resources = append(resources, *resource)
	}
	return resources, total, rows.Err()
}

func (r *resourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	query := fmt.Sprintf("SELECT %s FROM resources WHERE id = $1", resourceColumns)
	return scanResource(r.pool.QueryRow(ctx, query, id))
}

func (r *resourceRepository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	if resource == nil {
		return nil, domain.ErrInvalidPayload
	}
	if resource.ID == "" {
		resource.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO resources (id, category, subcategory, name, current_amount, unit, region, source_api, confidence_level, metadata)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING last_updated, created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		resource.ID,
		resource.Category,
		resource.Subcategory,
		resource.Name,
		resource.CurrentAmount,
		resource.Unit,
		resource.Region,
		resource.SourceAPI,
		resource.ConfidenceLevel,
		marshalJSON(resource.Metadata),
	).Scan(&resource.LastUpdated, &resource.CreatedAt, &resource.UpdatedAt); err != nil {
		return nil, err
	}

	return resource, nil
}

func (r *resourceRepository) Update(ctx context.Context, id string, patch domain.ResourcePatch) (*domain.Resource, error) {
	set := newSetClause(id)
	if patch.Category != nil {
		set.set("category", *patch.Category)
	}
	if patch.Subcategory != nil {
		set.set("subcategory", *patch.Subcategory)
	}
	if patch.Name != nil {
		set.set("name", *patch.Name)
	}
	if patch.CurrentAmount != nil {
		set.set("current_amount", *patch.CurrentAmount)
	}
	if patch.Unit != nil {
		set.set("unit", *patch.Unit)
	}
	if patch.Region != nil {
		set.set("region", *patch.Region)
	}
	if patch.SourceAPI != nil {
		set.set("source_api", *patch.SourceAPI)
	}
	if patch.ConfidenceLevel != nil {
		set.set("confidence_level", *patch.ConfidenceLevel)
	}
	if patch.Metadata != nil {
		set.set("metadata", marshalJSON(patch.Metadata))
	}
	if set.empty() {
		return nil, domain.ErrEmptyUpdate
	}

	query := fmt.Sprintf("UPDATE resources SET %s WHERE id = $1 RETURNING %s", set.render(), resourceColumns)
	resource, err := scanResource(r.pool.QueryRow(ctx, query, set.args...))
	if err != nil {
		return nil, err
	}
	return resource, nil
}

func (r *resourceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM resources WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func (r *resourceRepository) Categories(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT category FROM resources ORDER BY category")
}

func (r *resourceRepository) Regions(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "SELECT DISTINCT region FROM resources ORDER BY region")
}

func (r *resourceRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func resourceSortColumn(requested string) string {
	if resourceSortColumns[requested] {
		return requested
	}
	return "last_updated"
}

func sortOrder(requested string) string {
	if requested == "asc" {
		return "ASC"
	}
	return "DESC"
}

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var resource domain.Resource
	var (
		subcategory *string
		sourceAPI   *string
		metadata    []byte
	)

	if err := row.Scan(
		&resource.ID,
		&resource.Category,
		&subcategory,
		&resource.Name,
		&resource.CurrentAmount,
		&resource.Unit,
		&resource.Region,
		&resource.LastUpdated,
		&sourceAPI,
		&resource.ConfidenceLevel,
		&metadata,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, err
	}

	resource.Subcategory = derefText(subcategory)
	resource.SourceAPI = derefText(sourceAPI)
	resource.Metadata = metadata
	return &resource, nil
}
