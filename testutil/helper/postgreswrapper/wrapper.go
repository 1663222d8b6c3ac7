// Package postgreswrapper creates test adapters for the backend selected via
// the ADAPTER_TYPE environment variable (pgx, sqldb or sqlx).
package postgreswrapper

import (
	"context"
	"fmt"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/provstack/postgres-provider-go/provider"
	"github.com/provstack/postgres-provider-go/provider/postgresengine"
	"github.com/provstack/postgres-provider-go/testutil/helper"
)

// Adapter type constants
const (
	typePGX   = "pgx"
	typeSQLDB = "sqldb"
	typeSQLX  = "sqlx"
)

const testProviderID = "postgres-test"

// CreateAdapterWithTestConfig creates an adapter for the backend selected via
// the ADAPTER_TYPE environment variable, defaulting to pgx.
func CreateAdapterWithTestConfig(t testing.TB, options ...postgresengine.Option) *postgresengine.Adapter {
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))
	config := helper.TestConfig()

	switch adapterTypeFromEnv {
	case typePGX, "":
		adapter, err := postgresengine.NewAdapterWithPGX(testProviderID, config, options...)
		assert.NoError(t, err, "error creating pgx adapter in test setup")

		return adapter

	case typeSQLDB:
		adapter, err := postgresengine.NewAdapterWithSQLDB(testProviderID, config, options...)
		assert.NoError(t, err, "error creating sqldb adapter in test setup")

		return adapter

	case typeSQLX:
		adapter, err := postgresengine.NewAdapterWithSQLX(testProviderID, config, options...)
		assert.NoError(t, err, "error creating sqlx adapter in test setup")

		return adapter

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterTypeFromEnv))
	}
}

// SkipUnlessPostgresIsUp skips the test when the configured test database is
// not reachable.
func SkipUnlessPostgresIsUp(t testing.TB) {
	authConfig, buildErr := provider.BuildAuthConfig(helper.TestConfig().Authentication)
	assert.NoError(t, buildErr, "error building test auth config")

	address := net.JoinHostPort(authConfig.Host, authConfig.Port)

	conn, dialErr := net.DialTimeout("tcp", address, 2*time.Second)
	if dialErr != nil {
		t.Skipf("postgres is not reachable at %s: %v", address, dialErr)
		return
	}

	_ = conn.Close()
}

// CleanUp drops the fixture table for the given adapter.
func CleanUp(t testing.TB, adapter *postgresengine.Adapter, tableName string) {
	err := adapter.Notify(context.Background(), helper.DropTableSQL(tableName))
	assert.NoError(t, err, "error cleaning up the fixture table")
}
