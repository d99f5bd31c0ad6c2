package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionsEmpty(t *testing.T) {
	conds := &conditions{}

	assert.Equal(t, "", conds.where())
	assert.Empty(t, conds.args)
}

func TestConditionsSkipsUnsuppliedFilters(t *testing.T) {
	conds := &conditions{}
	conds.eq("region", "")
	conds.eq("category", "energy")

	assert.Equal(t, " WHERE category = $1", conds.where())
	assert.Equal(t, []interface{}{"energy"}, conds.args)
}

func TestConditionsANDCombining(t *testing.T) {
	conds := &conditions{}
	conds.eq("region", "europe")
	conds.eq("category", "water")
	conds.gte("timestamp", "2025-01-01")
	conds.lte("timestamp", "2025-12-31")

	assert.Equal(t,
		" WHERE region = $1 AND category = $2 AND timestamp >= $3 AND timestamp <= $4",
		conds.where(),
	)
	require.Len(t, conds.args, 4)
}

func TestConditionsEither(t *testing.T) {
	conds := &conditions{}
	conds.either("region_from", "region_to", "asia")

	assert.Equal(t, " WHERE (region_from = $1 OR region_to = $1)", conds.where())
	assert.Equal(t, []interface{}{"asia"}, conds.args)
}

func TestConditionsPageSharesArgsWithCount(t *testing.T) {
	conds := &conditions{}
	conds.eq("region", "global")

	// The count query consumes the args before paging appends to them.
	countArgs := make([]interface{}, len(conds.args))
	copy(countArgs, conds.args)

	fragment := conds.page(10, 20)

	assert.Equal(t, " LIMIT $2 OFFSET $3", fragment)
	assert.Equal(t, []interface{}{"global"}, countArgs)
	assert.Equal(t, []interface{}{"global", 10, 20}, conds.args)
}

func TestSetClause(t *testing.T) {
	sc := newSetClause("row-id")
	assert.True(t, sc.empty())

	sc.set("name", "Solar capacity")
	sc.set("current_amount", 42.5)

	assert.False(t, sc.empty())
	assert.Equal(t, "name = $2, current_amount = $3, updated_at = NOW()", sc.render())
	assert.Equal(t, []interface{}{"row-id", "Solar capacity", 42.5}, sc.args)
}

func TestSetClauseKeepsEmptyStrings(t *testing.T) {
	sc := newSetClause("row-id")
	sc.set("notes", "")

	// Clearing an optional text column writes '', never NULL; the columns
	// are declared NOT NULL DEFAULT ''.
	assert.Equal(t, []interface{}{"row-id", ""}, sc.args)
}

func TestUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}

	assert.True(t, uniqueViolation(dup))
	assert.True(t, uniqueViolation(fmt.Errorf("insert user: %w", dup)))
	assert.False(t, uniqueViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, uniqueViolation(errors.New("connection refused")))
	assert.False(t, uniqueViolation(nil))
}

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		wantLimit  int
		wantOffset int
	}{
		{"defaults", 0, 0, 10, 0},
		{"first page", 1, 25, 25, 0},
		{"third page", 3, 10, 10, 20},
		{"negative page", -2, 5, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := normalizePage(tt.page, tt.limit, 10)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestResourceSortWhitelist(t *testing.T) {
	assert.Contains(t, resourceSortColumns, "name")
	assert.Contains(t, resourceSortColumns, "current_amount")
	assert.Contains(t, resourceSortColumns, "last_updated")
	assert.NotContains(t, resourceSortColumns, "password_hash")
	assert.NotContains(t, resourceSortColumns, "1; DROP TABLE resources")
}
