// Package telemetry provides OpenTelemetry integration for database metrics collection.
package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool
	// SlowQueryThreshold defines the threshold for slow query detection (default: 200ms).
	SlowQueryThreshold time.Duration
	// PoolStatsInterval defines how often to collect connection pool stats (default: 15s).
	PoolStatsInterval time.Duration
}

// DefaultDBMetricsConfig returns default configuration for database metrics.
func DefaultDBMetricsConfig() DBMetricsConfig {
	return DBMetricsConfig{
		Enabled:            true,
		SlowQueryThreshold: 200 * time.Millisecond,
		PoolStatsInterval:  15 * time.Second,
	}
}

// DBMetrics holds the database-side instruments: connection pool gauges plus
// query counters and latency histograms. The anticipation store is a single
// table, so per-query metrics are cheap and the pool gauges are the main
// early-warning signal under load.
type DBMetrics struct {
	poolConnections    *Gauge // anticipay_db_pool_connections with state label
	poolConnectionsMax *Gauge // anticipay_db_pool_connections_max

	queryTotal      *Counter   // anticipay_db_query_total
	queryErrorTotal *Counter   // anticipay_db_query_errors_total
	queryDuration   *Histogram // anticipay_db_query_duration_seconds
	slowQueryTotal  *Counter   // anticipay_db_slow_query_total

	config   DBMetricsConfig
	logger   *zap.Logger
	sqlDB    *sql.DB
	stopCh   chan struct{}
	wg       sync.WaitGroup
	mu       sync.RWMutex
	stopOnce sync.Once
}

// NewDBMetrics creates a new DBMetrics instance with the given meter.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.SlowQueryThreshold == 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval == 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	poolConnections, err := NewGauge(
		meter,
		"anticipay_db_pool_connections",
		"Number of connections in the pool by state",
		"{connection}",
	)
	if err != nil {
		return nil, err
	}

	poolConnectionsMax, err := NewGauge(
		meter,
		"anticipay_db_pool_connections_max",
		"Maximum number of connections in the pool",
		"{connection}",
	)
	if err != nil {
		return nil, err
	}

	queryTotal, err := NewCounter(
		meter,
		"anticipay_db_query_total",
		"Total number of database queries by operation type",
		"{query}",
	)
	if err != nil {
		return nil, err
	}

	queryErrorTotal, err := NewCounter(
		meter,
		"anticipay_db_query_errors_total",
		"Total number of failed database queries by operation type",
		"{query}",
	)
	if err != nil {
		return nil, err
	}

	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "anticipay_db_query_duration_seconds",
		Description: "Database query latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	slowQueryTotal, err := NewCounter(
		meter,
		"anticipay_db_slow_query_total",
		"Total number of slow database queries",
		"{query}",
	)
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		poolConnections:    poolConnections,
		poolConnectionsMax: poolConnectionsMax,
		queryTotal:         queryTotal,
		queryErrorTotal:    queryErrorTotal,
		queryDuration:      queryDuration,
		slowQueryTotal:     slowQueryTotal,
		config:             cfg,
		logger:             logger,
		stopCh:             make(chan struct{}),
	}, nil
}

// SetSQLDB sets the sql.DB instance for connection pool metrics collection.
// This must be called before StartPoolStatsCollection.
func (m *DBMetrics) SetSQLDB(sqlDB *sql.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sqlDB = sqlDB
}

// StartPoolStatsCollection starts a goroutine that periodically collects
// connection pool statistics. Call Stop() to terminate.
func (m *DBMetrics) StartPoolStatsCollection(ctx context.Context) {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		m.logger.Warn("Cannot start pool stats collection: sqlDB not set")
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.config.PoolStatsInterval)
		defer ticker.Stop()

		m.collectPoolStats(ctx)

		for {
			select {
			case <-ticker.C:
				m.collectPoolStats(ctx)
			case <-m.stopCh:
				m.logger.Debug("Stopping pool stats collection")
				return
			case <-ctx.Done():
				m.logger.Debug("Pool stats collection context cancelled")
				return
			}
		}
	}()

	m.logger.Info("Started database connection pool stats collection",
		zap.Duration("interval", m.config.PoolStatsInterval),
	)
}

// collectPoolStats collects and records connection pool statistics.
func (m *DBMetrics) collectPoolStats(ctx context.Context) {
	m.mu.RLock()
	sqlDB := m.sqlDB
	m.mu.RUnlock()

	if sqlDB == nil {
		return
	}

	stats := sqlDB.Stats()

	m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections))

	// OpenConnections = Idle + InUse. WaitCount is cumulative rather than a
	// current state, so it is not reported here.
	m.poolConnections.Record(ctx, int64(stats.Idle), AttrDBState.String("idle"))
	m.poolConnections.Record(ctx, int64(stats.InUse), AttrDBState.String("in_use"))
	m.poolConnections.Record(ctx, int64(stats.OpenConnections), AttrDBState.String("open"))
}

// Stop stops the pool stats collection goroutine. Safe to call multiple times.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
		m.logger.Debug("Database metrics stopped")
	})
}

// RecordQuery records metrics for a database query. Record-not-found does not
// count as a failure: lookups for missing anticipation requests are a normal
// outcome surfaced to callers as a domain error.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation string, table string, duration time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}

	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		m.queryErrorTotal.Inc(ctx, AttrDBOperation.String(operation))
	}

	if duration > m.config.SlowQueryThreshold {
		tableName := table
		if tableName == "" {
			tableName = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(tableName))
	}
}

// DBMetricsPlugin is a GORM plugin that feeds DBMetrics from query callbacks.
type DBMetricsPlugin struct {
	metrics *DBMetrics
	logger  *zap.Logger
}

// NewDBMetricsPlugin creates a new GORM plugin for database metrics.
func NewDBMetricsPlugin(metrics *DBMetrics, logger *zap.Logger) *DBMetricsPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBMetricsPlugin{
		metrics: metrics,
		logger:  logger,
	}
}

// Name returns the plugin name.
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

// Initialize registers the GORM callbacks for metrics collection.
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	before := func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		db.Statement.Context = context.WithValue(ctx, dbMetricsStartTimeKey, time.Now())
	}

	type registerFunc func(string, func(*gorm.DB)) error
	hooks := []struct {
		op             string
		after          func(*gorm.DB)
		registerBefore registerFunc
		registerAfter  registerFunc
	}{
		{"create", p.afterCallback("INSERT"), db.Callback().Create().Before("gorm:create").Register, db.Callback().Create().After("gorm:create").Register},
		{"query", p.afterCallback("SELECT"), db.Callback().Query().Before("gorm:query").Register, db.Callback().Query().After("gorm:query").Register},
		{"update", p.afterCallback("UPDATE"), db.Callback().Update().Before("gorm:update").Register, db.Callback().Update().After("gorm:update").Register},
		{"delete", p.afterCallback("DELETE"), db.Callback().Delete().Before("gorm:delete").Register, db.Callback().Delete().After("gorm:delete").Register},
		{"row", p.afterRawCallback, db.Callback().Row().Before("gorm:row").Register, db.Callback().Row().After("gorm:row").Register},
		{"raw", p.afterRawCallback, db.Callback().Raw().Before("gorm:raw").Register, db.Callback().Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		if err := h.registerBefore("db_metrics:before_"+h.op, before); err != nil {
			return err
		}
		if err := h.registerAfter("db_metrics:after_"+h.op, h.after); err != nil {
			return err
		}
	}

	p.logger.Info("Database metrics plugin initialized")
	return nil
}

// afterCallback returns a callback that records metrics for a fixed operation type.
func (p *DBMetricsPlugin) afterCallback(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		p.recordMetrics(db, operation)
	}
}

// afterRawCallback records metrics for row/raw operations, detecting the
// operation type from the SQL text.
func (p *DBMetricsPlugin) afterRawCallback(db *gorm.DB) {
	p.recordMetrics(db, detectOperationType(db.Statement.SQL.String()))
}

// recordMetrics records metrics for a completed database operation.
func (p *DBMetricsPlugin) recordMetrics(db *gorm.DB, operation string) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	var duration time.Duration
	if startTime, ok := ctx.Value(dbMetricsStartTimeKey).(time.Time); ok {
		duration = time.Since(startTime)
	}

	p.metrics.RecordQuery(ctx, operation, db.Statement.Table, duration, db.Error)
}

// detectOperationType attempts to detect the SQL operation type from the query.
func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))

	switch {
	case strings.HasPrefix(sql, "SELECT"):
		return "SELECT"
	case strings.HasPrefix(sql, "INSERT"):
		return "INSERT"
	case strings.HasPrefix(sql, "UPDATE"):
		return "UPDATE"
	case strings.HasPrefix(sql, "DELETE"):
		return "DELETE"
	default:
		return "OTHER"
	}
}

// dbMetricsStartTimeKey is the context key for storing query start time.
type dbMetricsContextKey string

const dbMetricsStartTimeKey dbMetricsContextKey = "db_metrics_start_time"

// RegisterDBMetrics creates and registers database metrics on a GORM DB instance.
// It returns the DBMetrics instance for lifecycle management (call Stop() on
// shutdown), or nil when metrics are disabled.
func RegisterDBMetrics(db *gorm.DB, meterProvider *MeterProvider, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if !cfg.Enabled {
		logger.Debug("Database metrics disabled, skipping registration")
		return nil, nil
	}

	if meterProvider == nil || !meterProvider.IsEnabled() {
		logger.Debug("MeterProvider not available, skipping database metrics")
		return nil, nil
	}

	meter := meterProvider.Meter("db.client")

	metrics, err := NewDBMetrics(meter, cfg, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	metrics.SetSQLDB(sqlDB)

	plugin := NewDBMetricsPlugin(metrics, logger)
	if err := db.Use(plugin); err != nil {
		return nil, err
	}

	logger.Info("Database metrics registered",
		zap.Duration("slow_query_threshold", cfg.SlowQueryThreshold),
		zap.Duration("pool_stats_interval", cfg.PoolStatsInterval),
	)

	return metrics, nil
}
