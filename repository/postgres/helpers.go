package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// conditions accumulates AND-combined WHERE predicates together with their
// positional arguments. Filters that were not supplied are never added, so
// the rendered clause only compares columns the caller actually filtered on.
// Both the page query and its count query consume the same instance, which
// keeps the two WHERE clauses from drifting apart.
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) eq(column, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf("%s = $%d", column, len(c.args)))
}

// either matches value against one of two columns, e.g. a cooperation link's
// origin or destination region.
func (c *conditions) either(columnA, columnB, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	n := len(c.args)
	c.clauses = append(c.clauses, fmt.Sprintf("(%s = $%d OR %s = $%d)", columnA, n, columnB, n))
}

func (c *conditions) gte(column, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf("%s >= $%d", column, len(c.args)))
}

func (c *conditions) lte(column, value string) {
	if value == "" {
		return
	}
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf("%s <= $%d", column, len(c.args)))
}

// where renders the accumulated predicates, or an empty string when no
// filter was supplied.
func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// page appends LIMIT/OFFSET arguments and returns the rendered fragment.
func (c *conditions) page(limit, offset int) string {
	c.args = append(c.args, limit)
	limitPos := len(c.args)
	c.args = append(c.args, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", limitPos, limitPos+1)
}

// setClause accumulates SET assignments for partial updates. Argument $1 is
// reserved for the row identifier.
type setClause struct {
	assignments []string
	args        []interface{}
}

func newSetClause(id interface{}) *setClause {
	return &setClause{args: []interface{}{id}}
}

func (s *setClause) set(column string, value interface{}) {
	s.args = append(s.args, value)
	s.assignments = append(s.assignments, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setClause) empty() bool {
	return len(s.assignments) == 0
}

// render joins the assignments and appends the updated_at refresh.
func (s *setClause) render() string {
	return strings.Join(append(s.assignments, "updated_at = NOW()"), ", ")
}

func marshalJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

// uniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func derefText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return limit, (page - 1) * limit
}
