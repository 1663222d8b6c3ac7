// Package helper provides shared test support: the env-driven configuration
// for the local test database and goqu-built fixture statements.
package helper

import (
	"fmt"
	"strings"
	"testing"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/provstack/postgres-provider-go/provider"
)

const dialectPostgres = "postgres"

// TestConfig returns the provider configuration for the local test database.
// Values come from the environment (optionally via a .env file) with defaults
// matching the local test database.
func TestConfig() provider.Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("POSTGRES_USER", "test")
	v.SetDefault("POSTGRES_PASSWORD", "test")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_DATABASE", "test")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.AutomaticEnv()

	return provider.Config{
		Authentication: map[string]string{
			"username": v.GetString("POSTGRES_USER"),
			"password": v.GetString("POSTGRES_PASSWORD"),
			"host":     v.GetString("POSTGRES_HOST"),
			"database": v.GetString("POSTGRES_DATABASE"),
			"port":     v.GetString("POSTGRES_PORT"),
		},
	}
}

// GivenUniqueTableName returns a table name unique to this test run, so
// concurrent test runs never collide on fixture tables.
func GivenUniqueTableName(_ testing.TB) string {
	return "provider_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// FixtureRow is a row of the fixture table used by the adapter tests.
type FixtureRow struct {
	ID   int
	Name string
}

// CreateTableSQL returns the DDL for the fixture table.
func CreateTableSQL(tableName string) string {
	return fmt.Sprintf("CREATE TABLE %s (id integer PRIMARY KEY, name text NOT NULL)", tableName)
}

// DropTableSQL returns the DDL to drop the fixture table.
func DropTableSQL(tableName string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", tableName)
}

// InsertRowsSQL builds an insert statement for the given fixture rows.
func InsertRowsSQL(t testing.TB, tableName string, rows ...FixtureRow) string {
	records := make([]any, len(rows))
	for i, row := range rows {
		records[i] = goqu.Record{"id": row.ID, "name": row.Name}
	}

	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		Insert(tableName).
		Rows(records...).
		ToSQL()
	assert.NoError(t, toSQLErr, "error building fixture insert statement")

	return sqlQuery
}

// SelectAllSQL builds a select over the fixture table ordered by id, so
// assertions on row order are deterministic.
func SelectAllSQL(t testing.TB, tableName string) string {
	sqlQuery, _, toSQLErr := goqu.Dialect(dialectPostgres).
		From(tableName).
		Select("id", "name").
		Order(goqu.I("id").Asc()).
		ToSQL()
	assert.NoError(t, toSQLErr, "error building fixture select statement")

	return sqlQuery
}
