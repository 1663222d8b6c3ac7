package postgresengine

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/provstack/postgres-provider-go/provider"
	"github.com/provstack/postgres-provider-go/provider/postgresengine/internal/connectors"
)

const (
	logMsgConnectFailed   = "connecting to postgres failed"
	logMsgDBQueryFailed   = "database query execution failed"
	logMsgDBNotifyFailed  = "database execution failed during notify"
	logMsgReadColsFailed  = "failed to read result columns"
	logMsgScanRowFailed   = "failed to scan database row"
	logMsgRowsErrFailed   = "row iteration ended with an error"
	logMsgCloseRowsFailed = "failed to close database rows"
	logMsgCloseConnFailed = "failed to close database connection"
	logMsgQueryCompleted  = "query completed"
	logMsgNotifyCompleted = "notify completed"
	logMsgDisposed        = "provider disposed, no connection retained"
	logMsgSQLExecuted     = "executed sql for: "
	logMsgOperation       = "provider operation: "
	logAttrError          = "error"
	logAttrQuery          = "query"
	logAttrProviderID     = "provider_id"
	logAttrRowCount       = "row_count"
	logAttrDurationMS     = "duration_ms"
	logActionQuery        = "query"
	logActionNotify       = "notify"

	metricOperationDuration = "provider_operation_duration"
	metricOperationErrors   = "provider_operation_errors"
	labelOperation          = "operation"
	labelProviderID         = "provider_id"
)

// Adapter translates the generic provider capability set into Postgres
// operations. It holds configuration only; connections are scoped to
// individual calls.
type Adapter struct {
	providerID       string
	authConfig       provider.AuthConfig
	connector        connectors.Connector
	logger           provider.Logger
	contextualLogger provider.ContextualLogger
	metricsCollector provider.MetricsCollector
}

// Ensure Adapter implements the provider contract.
var _ provider.Provider = (*Adapter)(nil)

// NewAdapterWithPGX creates an Adapter that connects through pgx.
func NewAdapterWithPGX(providerID string, config provider.Config, options ...Option) (*Adapter, error) {
	adapter, newErr := newAdapter(providerID, config, options...)
	if newErr != nil {
		return nil, newErr
	}

	adapter.connector = connectors.NewPGXConnector(adapter.authConfig.DSN())

	return adapter, nil
}

// NewAdapterWithSQLDB creates an Adapter that connects through database/sql
// with the lib/pq driver.
func NewAdapterWithSQLDB(providerID string, config provider.Config, options ...Option) (*Adapter, error) {
	adapter, newErr := newAdapter(providerID, config, options...)
	if newErr != nil {
		return nil, newErr
	}

	adapter.connector = connectors.NewSQLConnector(adapter.authConfig.DSN())

	return adapter, nil
}

// NewAdapterWithSQLX creates an Adapter that connects through sqlx.
func NewAdapterWithSQLX(providerID string, config provider.Config, options ...Option) (*Adapter, error) {
	adapter, newErr := newAdapter(providerID, config, options...)
	if newErr != nil {
		return nil, newErr
	}

	adapter.connector = connectors.NewSQLXConnector(adapter.authConfig.DSN())

	return adapter, nil
}

func newAdapter(providerID string, config provider.Config, options ...Option) (*Adapter, error) {
	authConfig, buildErr := provider.BuildAuthConfig(config.Authentication)
	if buildErr != nil {
		return nil, buildErr
	}

	if providerID == "" {
		providerID = uuid.NewString()
	}

	adapter := &Adapter{
		providerID: providerID,
		authConfig: authConfig,
	}

	for _, option := range options {
		if optionErr := option(adapter); optionErr != nil {
			return nil, optionErr
		}
	}

	return adapter, nil
}

// ID returns the provider identifier.
func (a *Adapter) ID() string {
	return a.providerID
}

// Query executes the supplied SQL as a read statement and returns the full
// result set in server row and column order. A fresh connection is opened for
// the call and closed before it returns, on success and on failure alike.
// No limit is imposed on the result-set size.
func (a *Adapter) Query(ctx context.Context, query string) (provider.Rows, error) {
	if query == "" {
		return nil, provider.ErrMissingQuery
	}

	start := time.Now()

	conn, connectErr := a.openConnection(ctx, logActionQuery)
	if connectErr != nil {
		return nil, connectErr
	}
	defer a.closeConnection(ctx, conn)

	rows, queryErr := conn.Query(ctx, query)
	if queryErr != nil {
		a.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, query)
		a.countError(logActionQuery)

		return nil, errors.Join(provider.ErrQueryFailed, queryErr)
	}
	defer a.closeRows(ctx, rows)

	resultSet, collectErr := a.collectRows(ctx, rows)
	if collectErr != nil {
		a.countError(logActionQuery)
		return nil, collectErr
	}

	duration := time.Since(start)
	a.logQueryWithDuration(ctx, query, logActionQuery, duration)
	a.logOperation(ctx, logMsgQueryCompleted, logAttrRowCount, len(resultSet), logAttrDurationMS, a.durationToMilliseconds(duration))
	a.recordDuration(logActionQuery, duration)

	return resultSet, nil
}

// Notify executes the supplied SQL as a write statement. The statement runs
// inside a transaction that is committed on success; no rows are returned.
// Preconditions and connection handling mirror Query.
func (a *Adapter) Notify(ctx context.Context, query string) error {
	if query == "" {
		return provider.ErrMissingQuery
	}

	start := time.Now()

	conn, connectErr := a.openConnection(ctx, logActionNotify)
	if connectErr != nil {
		return connectErr
	}
	defer a.closeConnection(ctx, conn)

	if execErr := conn.Exec(ctx, query); execErr != nil {
		a.logError(ctx, logMsgDBNotifyFailed, logAttrError, execErr.Error(), logAttrQuery, query)
		a.countError(logActionNotify)

		return errors.Join(provider.ErrQueryFailed, execErr)
	}

	duration := time.Since(start)
	a.logQueryWithDuration(ctx, query, logActionNotify, duration)
	a.logOperation(ctx, logMsgNotifyCompleted, logAttrDurationMS, a.durationToMilliseconds(duration))
	a.recordDuration(logActionNotify, duration)

	return nil
}

// Dispose releases any resources held by the adapter. Connections are scoped
// to individual calls, so there is nothing to close; the method never fails a
// caller's shutdown sequence.
func (a *Adapter) Dispose(ctx context.Context) {
	a.logDebug(ctx, logMsgDisposed, logAttrProviderID, a.providerID)
}

// openConnection acquires a fresh connection for a single operation.
func (a *Adapter) openConnection(ctx context.Context, action string) (connectors.Conn, error) {
	conn, connectErr := a.connector.Connect(ctx)
	if connectErr != nil {
		a.logError(ctx, logMsgConnectFailed, logAttrError, connectErr.Error())
		a.countError(action)

		return nil, errors.Join(provider.ErrConnectFailed, connectErr)
	}

	return conn, nil
}

// closeConnection closes the operation's connection and logs any failure.
// Close failures are swallowed, a failed cleanup must not fail the operation.
func (a *Adapter) closeConnection(ctx context.Context, conn connectors.Conn) {
	if closeErr := conn.Close(ctx); closeErr != nil {
		a.logWarn(ctx, logMsgCloseConnFailed, logAttrError, closeErr.Error())
	}
}

// closeRows safely closes database rows and logs any errors.
func (a *Adapter) closeRows(ctx context.Context, rows connectors.Rows) {
	if closeErr := rows.Close(); closeErr != nil {
		a.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

// collectRows materializes the full result set, preserving server order.
func (a *Adapter) collectRows(ctx context.Context, rows connectors.Rows) (provider.Rows, error) {
	columns, columnsErr := rows.Columns()
	if columnsErr != nil {
		a.logError(ctx, logMsgReadColsFailed, logAttrError, columnsErr.Error())
		return nil, errors.Join(provider.ErrQueryFailed, columnsErr)
	}

	resultSet := make(provider.Rows, 0)

	for rows.Next() {
		values := make(provider.Row, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if scanErr := rows.Scan(pointers...); scanErr != nil {
			a.logError(ctx, logMsgScanRowFailed, logAttrError, scanErr.Error())
			return nil, errors.Join(provider.ErrScanningRowFailed, scanErr)
		}

		resultSet = append(resultSet, values)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		a.logError(ctx, logMsgRowsErrFailed, logAttrError, rowsErr.Error())
		return nil, errors.Join(provider.ErrQueryFailed, rowsErr)
	}

	return resultSet, nil
}

// logQueryWithDuration logs SQL with execution time at debug level.
func (a *Adapter) logQueryWithDuration(ctx context.Context, query string, action string, duration time.Duration) {
	a.logDebug(ctx, logMsgSQLExecuted+action, logAttrDurationMS, a.durationToMilliseconds(duration), logAttrQuery, query)
}

// logOperation logs operational information at info level.
func (a *Adapter) logOperation(ctx context.Context, action string, args ...any) {
	if a.contextualLogger != nil {
		a.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
	if a.logger != nil {
		a.logger.Info(logMsgOperation+action, args...)
	}
}

func (a *Adapter) logDebug(ctx context.Context, msg string, args ...any) {
	if a.contextualLogger != nil {
		a.contextualLogger.DebugContext(ctx, msg, args...)
	}
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func (a *Adapter) logWarn(ctx context.Context, msg string, args ...any) {
	if a.contextualLogger != nil {
		a.contextualLogger.WarnContext(ctx, msg, args...)
	}
	if a.logger != nil {
		a.logger.Warn(msg, args...)
	}
}

func (a *Adapter) logError(ctx context.Context, msg string, args ...any) {
	if a.contextualLogger != nil {
		a.contextualLogger.ErrorContext(ctx, msg, args...)
	}
	if a.logger != nil {
		a.logger.Error(msg, args...)
	}
}

func (a *Adapter) recordDuration(action string, duration time.Duration) {
	if a.metricsCollector != nil {
		a.metricsCollector.RecordDuration(metricOperationDuration, duration, a.metricLabels(action))
	}
}

func (a *Adapter) countError(action string) {
	if a.metricsCollector != nil {
		a.metricsCollector.IncrementCounter(metricOperationErrors, a.metricLabels(action))
	}
}

func (a *Adapter) metricLabels(action string) map[string]string {
	return map[string]string{
		labelOperation:  action,
		labelProviderID: a.providerID,
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (a *Adapter) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
