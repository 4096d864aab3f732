package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/metrics"
	"github.com/securecheck/backend/pkg/logger"
)

// OverviewStatement selects every stop for the dashboard grid and summary cards.
const OverviewStatement = "SELECT * FROM traffic_logs"

type Status int

const (
	StatusOK Status = iota
	StatusEmpty
	StatusUnavailable
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of one statement. Table is empty unless Status is
// StatusOK; Err is set for StatusUnavailable and StatusFailed.
type Result struct {
	Table  display.Table
	Status Status
	Err    error
}

// Degraded reports whether the store could not produce data.
func (r Result) Degraded() bool {
	return r.Status == StatusUnavailable || r.Status == StatusFailed
}

// Client runs statements against the traffic_logs store. It holds no
// connection: every Query opens one and releases it before returning.
type Client struct {
	driver string
	dsn    string
}

func NewClient(driver, dsn string) *Client {
	return &Client{driver: driver, dsn: dsn}
}

func (c *Client) Driver() string {
	return c.driver
}

// Query executes statement and returns every row. It never returns an
// error to the caller; connection and statement failures are reported
// through Result.Status.
func (c *Client) Query(ctx context.Context, statement string) Result {
	start := time.Now()
	res := c.query(ctx, statement)

	metrics.StoreQueryTotal.WithLabelValues(res.Status.String()).Inc()
	metrics.StoreQueryDuration.WithLabelValues(c.driver).Observe(time.Since(start).Seconds())

	switch res.Status {
	case StatusUnavailable:
		logger.Error("Store unavailable", zap.String("driver", c.driver), zap.Error(res.Err))
	case StatusFailed:
		logger.Error("Store query failed", zap.String("driver", c.driver), zap.Error(res.Err))
	default:
		logger.Debug("Store query finished",
			zap.String("status", res.Status.String()),
			zap.Int("rows", res.Table.Len()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
	return res
}

func (c *Client) query(ctx context.Context, statement string) Result {
	db, err := sql.Open(c.driver, c.dsn)
	if err != nil {
		return Result{Status: StatusUnavailable, Err: fmt.Errorf("failed to open store: %w", err)}
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return Result{Status: StatusUnavailable, Err: fmt.Errorf("failed to connect to store: %w", err)}
	}

	rows, err := db.QueryContext(ctx, statement)
	if err != nil {
		return Result{Status: StatusFailed, Err: fmt.Errorf("failed to execute query: %w", err)}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return Result{Status: StatusFailed, Err: fmt.Errorf("failed to read columns: %w", err)}
	}

	table := display.NewTable(columns...)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Result{Status: StatusFailed, Err: fmt.Errorf("failed to scan row: %w", err)}
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		table.Append(values...)
	}
	if err := rows.Err(); err != nil {
		return Result{Status: StatusFailed, Err: fmt.Errorf("failed to iterate rows: %w", err)}
	}

	if table.Empty() {
		return Result{Status: StatusEmpty}
	}
	return Result{Table: table, Status: StatusOK}
}
