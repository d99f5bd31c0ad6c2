package postgres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The create statements always list the optional text columns and bind them
// to plain Go strings, so an omitted field arrives as ''. That only works
// while the schema declares those columns NOT NULL with an empty-string
// default; this pins the declarations the insert paths rely on.
func TestSchemaDefaultsForOptionalTextColumns(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "..", "assets", "migrations", "000001_init_schema.up.sql"))
	require.NoError(t, err)
	schema := string(raw)

	declarations := []string{
		"subcategory TEXT NOT NULL DEFAULT ''",
		"source_api TEXT NOT NULL DEFAULT ''",
		"region_to TEXT NOT NULL DEFAULT ''",
		"subsector TEXT NOT NULL DEFAULT ''",
		"notes TEXT NOT NULL DEFAULT ''",
		"source TEXT NOT NULL DEFAULT ''",
	}
	for _, decl := range declarations {
		assert.Contains(t, schema, decl)
	}

	// Every region column shares the 'global' default, users included.
	assert.NotContains(t, schema, "region TEXT NOT NULL DEFAULT ''")
	assert.Contains(t, schema, "region TEXT NOT NULL DEFAULT 'global'")
}
