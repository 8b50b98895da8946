package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrations(t *testing.T) {
	names, err := ListMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, names)
	assert.Equal(t, "000001_init_schema.up.sql", names[0])

	for _, name := range names {
		down := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrationFiles, migrationsRoot+"/"+down)
		assert.NoError(t, err, "missing down migration for %s", name)
	}
}

func TestInitSchemaCoversStoreTables(t *testing.T) {
	raw, err := fs.ReadFile(migrationFiles, migrationsRoot+"/000001_init_schema.up.sql")
	require.NoError(t, err)

	schema := string(raw)
	for _, table := range []string{"users", "products", "orders", "order_items", "bank_accounts"} {
		assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, schema, "position")
}
