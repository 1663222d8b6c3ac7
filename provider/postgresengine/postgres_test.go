package postgresengine_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/provstack/postgres-provider-go/provider"
	"github.com/provstack/postgres-provider-go/provider/oteladapters"
	"github.com/provstack/postgres-provider-go/provider/postgresengine"
	. "github.com/provstack/postgres-provider-go/testutil/helper"                 //nolint:revive
	. "github.com/provstack/postgres-provider-go/testutil/helper/postgreswrapper" //nolint:revive
)

func Test_Adapter_Query_ShouldReturnAllRows_InServerOrder(t *testing.T) {
	// setup
	SkipUnlessPostgresIsUp(t)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter := CreateAdapterWithTestConfig(t)
	tableName := GivenUniqueTableName(t)

	// arrange
	require.NoError(t, adapter.Notify(ctxWithTimeout, CreateTableSQL(tableName)))
	defer CleanUp(t, adapter, tableName)

	insertSQL := InsertRowsSQL(t, tableName,
		FixtureRow{ID: 1, Name: "disk"},
		FixtureRow{ID: 2, Name: "cpu"},
		FixtureRow{ID: 3, Name: "memory"},
	)
	require.NoError(t, adapter.Notify(ctxWithTimeout, insertSQL))

	// act
	rows, queryErr := adapter.Query(ctxWithTimeout, SelectAllSQL(t, tableName))

	// assert
	assert.NoError(t, queryErr)
	assert.Len(t, rows, 3)

	expectedNames := []string{"disk", "cpu", "memory"}
	for i, row := range rows {
		assert.Len(t, row, 2)
		assert.EqualValues(t, i+1, row[0])
		assert.EqualValues(t, expectedNames[i], row[1])
	}
}

func Test_Adapter_Query_ShouldReturnEmptyResultSet_ForEmptyTable(t *testing.T) {
	// setup
	SkipUnlessPostgresIsUp(t)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter := CreateAdapterWithTestConfig(t)
	tableName := GivenUniqueTableName(t)

	// arrange
	require.NoError(t, adapter.Notify(ctxWithTimeout, CreateTableSQL(tableName)))
	defer CleanUp(t, adapter, tableName)

	// act
	rows, queryErr := adapter.Query(ctxWithTimeout, SelectAllSQL(t, tableName))

	// assert
	assert.NoError(t, queryErr)
	assert.Empty(t, rows)
}

func Test_Adapter_Query_SelectOne_ShouldReturnSingleValue(t *testing.T) {
	// setup
	SkipUnlessPostgresIsUp(t)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter := CreateAdapterWithTestConfig(t)

	// act
	rows, queryErr := adapter.Query(ctxWithTimeout, "select 1")

	// assert
	assert.NoError(t, queryErr)
	assert.Len(t, rows, 1)
	assert.Len(t, rows[0], 1)
	assert.EqualValues(t, 1, rows[0][0])
}

func Test_Adapter_Notify_ShouldCommitWrites_VisibleToSubsequentQuery(t *testing.T) {
	// setup
	SkipUnlessPostgresIsUp(t)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter := CreateAdapterWithTestConfig(t)
	tableName := GivenUniqueTableName(t)

	// arrange
	require.NoError(t, adapter.Notify(ctxWithTimeout, CreateTableSQL(tableName)))
	defer CleanUp(t, adapter, tableName)

	// act: the write goes through one connection, the read through another,
	// so the row is only visible if notify committed
	notifyErr := adapter.Notify(ctxWithTimeout, InsertRowsSQL(t, tableName, FixtureRow{ID: 1, Name: "disk"}))
	rows, queryErr := adapter.Query(ctxWithTimeout, SelectAllSQL(t, tableName))

	// assert
	assert.NoError(t, notifyErr)
	assert.NoError(t, queryErr)
	assert.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0][0])
	assert.EqualValues(t, "disk", rows[0][1])
}

func Test_Adapter_Query_ShouldFail_WithMalformedSQL(t *testing.T) {
	// setup
	SkipUnlessPostgresIsUp(t)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter := CreateAdapterWithTestConfig(t)

	// act
	_, queryErr := adapter.Query(ctxWithTimeout, "select * from")

	// assert
	assert.ErrorIs(t, queryErr, provider.ErrQueryFailed)

	// the failed call must have released its connection
	assert.NotPanics(t, func() {
		adapter.Dispose(ctxWithTimeout)
	})
}

func Test_Adapter_Notify_ShouldFail_WithConstraintViolation_AndStayUsable(t *testing.T) {
	// setup
	SkipUnlessPostgresIsUp(t)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adapter := CreateAdapterWithTestConfig(t)
	tableName := GivenUniqueTableName(t)

	// arrange
	require.NoError(t, adapter.Notify(ctxWithTimeout, CreateTableSQL(tableName)))
	defer CleanUp(t, adapter, tableName)
	require.NoError(t, adapter.Notify(ctxWithTimeout, InsertRowsSQL(t, tableName, FixtureRow{ID: 1, Name: "disk"})))

	// act: duplicate primary key
	notifyErr := adapter.Notify(ctxWithTimeout, InsertRowsSQL(t, tableName, FixtureRow{ID: 1, Name: "disk"}))

	// assert
	assert.ErrorIs(t, notifyErr, provider.ErrQueryFailed)

	// the failed write was rolled back and the adapter still works
	rows, queryErr := adapter.Query(ctxWithTimeout, SelectAllSQL(t, tableName))
	assert.NoError(t, queryErr)
	assert.Len(t, rows, 1)
}

func Test_Adapter_WithFullObservability_ShouldLogOperations(t *testing.T) {
	// setup
	SkipUnlessPostgresIsUp(t)

	ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var logBuffer bytes.Buffer
	handler := slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelDebug})

	adapter := CreateAdapterWithTestConfig(t,
		postgresengine.WithLogger(slog.New(handler)),
		postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLoggerWithHandler(handler)),
		postgresengine.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter("postgres-provider-test"))),
	)

	// act
	rows, queryErr := adapter.Query(ctxWithTimeout, "select 1")
	adapter.Dispose(ctxWithTimeout)

	// assert
	assert.NoError(t, queryErr)
	assert.Len(t, rows, 1)
	assert.Contains(t, logBuffer.String(), "query completed")
	assert.Contains(t, logBuffer.String(), "executed sql for: query")
	assert.Contains(t, logBuffer.String(), "provider disposed")
}
