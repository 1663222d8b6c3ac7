// Command smoketest is a manual smoke-test harness: it builds a provider
// configuration from environment variables, runs a fixed sample query against
// the configured database and prints the result set as JSON.
//
// It is not a production interface; it exists to verify credentials and
// connectivity end to end.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/provstack/postgres-provider-go/provider"
	"github.com/provstack/postgres-provider-go/provider/postgresengine"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger); err != nil {
		logger.Error("smoke test failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("POSTGRES_PORT", provider.DefaultPort)
	v.AutomaticEnv()

	config := provider.Config{
		Authentication: map[string]string{
			"username": v.GetString("POSTGRES_USER"),
			"password": v.GetString("POSTGRES_PASSWORD"),
			"host":     v.GetString("POSTGRES_HOST"),
			"database": v.GetString("POSTGRES_DATABASE"),
			"port":     v.GetString("POSTGRES_PORT"),
		},
	}

	adapter, newErr := postgresengine.NewAdapterWithPGX(
		"postgres-smoketest",
		config,
		postgresengine.WithLogger(logger),
	)
	if newErr != nil {
		return newErr
	}
	defer adapter.Dispose(context.Background())

	sampleQuery, _, toSQLErr := goqu.Dialect("postgres").
		From("pg_stat_database").
		Select("datname", "numbackends").
		ToSQL()
	if toSQLErr != nil {
		return toSQLErr
	}

	rows, queryErr := adapter.Query(context.Background(), sampleQuery)
	if queryErr != nil {
		return queryErr
	}

	output, jsonErr := rows.JSON()
	if jsonErr != nil {
		return jsonErr
	}

	fmt.Println(string(output))

	return nil
}
