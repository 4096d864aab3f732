package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/securecheck/backend/internal/catalog"
	"github.com/securecheck/backend/internal/display"
	"github.com/securecheck/backend/internal/ingestion"
	"github.com/securecheck/backend/internal/lookup"
	"github.com/securecheck/backend/internal/metrics"
	"github.com/securecheck/backend/internal/storage/sqlstore"
	"github.com/securecheck/backend/internal/summary"
	"github.com/securecheck/backend/pkg/logger"
)

var ErrUnknownSource = errors.New("unknown data source")

const (
	NoResultMessage    = "No result found for the selected query"
	NoStopsMessage     = "No traffic stops recorded"
	storeErrorPrefix   = "Unable to reach the record store: "
	queryErrorPrefix   = "Query failed: "
	extractErrorPrefix = "Unable to load the stop extract: "
)

// Source selects where a catalog query is evaluated.
type Source string

const (
	SourceStore   Source = "store"
	SourceExtract Source = "extract"
)

// ParseSource maps a request value to a Source. Blank means the store.
func ParseSource(value string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(value))) {
	case "", SourceStore:
		return SourceStore, nil
	case SourceExtract:
		return SourceExtract, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, value)
	}
}

// Store runs one SQL statement. *sqlstore.Client satisfies it.
type Store interface {
	Query(ctx context.Context, statement string) sqlstore.Result
}

// driverReporter is implemented by stores that know their database/sql
// driver. Catalog SQL is PostgreSQL text and only runs on pgx.
type driverReporter interface {
	Driver() string
}

const catalogDriver = "pgx"

func catalogDialectNotice(store Store) *display.Notice {
	d, ok := store.(driverReporter)
	if !ok || d.Driver() == catalogDriver {
		return nil
	}
	return display.Error(fmt.Sprintf(
		"Catalog queries are written for PostgreSQL and cannot run on the %s store; use the extract source instead", d.Driver()))
}

type Engine struct {
	store       Store
	loader      *ingestion.Loader
	extractPath string
}

type OverviewResponse struct {
	ID        string
	Table     display.Table
	Summary   summary.Summary
	Status    sqlstore.Status
	Notice    *display.Notice
	LatencyMS int
}

type RunResponse struct {
	ID        string
	Entry     catalog.Entry
	Source    Source
	Table     display.Table
	Notice    *display.Notice
	LatencyMS int
}

type LookupResponse struct {
	ID string
	lookup.Result
	LatencyMS int
}

func NewEngine(store Store, loader *ingestion.Loader, extractPath string) *Engine {
	return &Engine{
		store:       store,
		loader:      loader,
		extractPath: extractPath,
	}
}

// Overview fetches every stop and computes the headline metrics from
// the same rows. Store failures degrade to an empty table with zero
// metrics and an error notice.
func (e *Engine) Overview(ctx context.Context) *OverviewResponse {
	startTime := time.Now()
	resp := &OverviewResponse{ID: uuid.New().String()}

	res := e.store.Query(ctx, sqlstore.OverviewStatement)
	resp.Table = res.Table
	resp.Status = res.Status
	resp.Summary = summary.Summarize(res.Table)
	resp.Notice = storeNotice(res, NoStopsMessage)
	resp.LatencyMS = int(time.Since(startTime).Milliseconds())

	logger.Info("Overview served",
		zap.String("request_id", resp.ID),
		zap.String("status", res.Status.String()),
		zap.Int("rows", res.Table.Len()),
		zap.Int("latency_ms", resp.LatencyMS),
	)
	return resp
}

func (e *Engine) Catalog() []catalog.Entry {
	return catalog.All()
}

// RunCatalog evaluates one catalog question against the chosen source.
// Only an unknown slug or source is returned as an error; data problems
// are reported through the response notice.
func (e *Engine) RunCatalog(ctx context.Context, slug string, source Source) (*RunResponse, error) {
	entry, err := catalog.BySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, slug)
	}
	if source != SourceStore && source != SourceExtract {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	startTime := time.Now()
	resp := &RunResponse{
		ID:     uuid.New().String(),
		Entry:  entry,
		Source: source,
	}

	switch source {
	case SourceStore:
		if notice := catalogDialectNotice(e.store); notice != nil {
			resp.Table = display.NewTable()
			resp.Notice = notice
			break
		}
		res := e.store.Query(ctx, entry.SQL)
		resp.Table = res.Table
		resp.Notice = storeNotice(res, NoResultMessage)
	case SourceExtract:
		ds, err := e.loader.Load(e.extractPath)
		if err != nil {
			logger.Warn("Extract unavailable for catalog run", zap.String("query", slug), zap.Error(err))
			resp.Table = display.NewTable()
			resp.Notice = display.Error(extractErrorPrefix + err.Error())
			break
		}
		resp.Table = entry.Evaluate(ds.Records())
		if resp.Table.Empty() {
			resp.Notice = display.Warning(NoResultMessage)
		}
	}

	metrics.CatalogRunsTotal.WithLabelValues(entry.Slug, string(source)).Inc()
	resp.LatencyMS = int(time.Since(startTime).Milliseconds())

	logger.Info("Catalog query run",
		zap.String("request_id", resp.ID),
		zap.String("query", entry.Slug),
		zap.String("source", string(source)),
		zap.Int("rows", resp.Table.Len()),
		zap.Int("latency_ms", resp.LatencyMS),
	)
	return resp, nil
}

// Lookup searches the extract for vehicles matching input. Blank input
// never touches the extract.
func (e *Engine) Lookup(ctx context.Context, input string) *LookupResponse {
	startTime := time.Now()
	resp := &LookupResponse{ID: uuid.New().String()}

	outcome := ""
	if strings.TrimSpace(input) == "" {
		resp.Result = lookup.Search(nil, input)
		outcome = resp.Status.String()
	} else if ds, err := e.loader.Load(e.extractPath); err != nil {
		logger.Warn("Extract unavailable for lookup", zap.Error(err))
		resp.Result = lookup.Result{
			Query:  strings.TrimSpace(input),
			Status: lookup.StatusNotFound,
			Notice: display.Error(extractErrorPrefix + err.Error()),
		}
		outcome = "error"
	} else {
		resp.Result = lookup.Search(ds.Records(), input)
		outcome = resp.Status.String()
	}

	metrics.LookupTotal.WithLabelValues(outcome).Inc()
	resp.LatencyMS = int(time.Since(startTime).Milliseconds())

	logger.Info("Vehicle lookup",
		zap.String("request_id", resp.ID),
		zap.String("query", resp.Query),
		zap.String("outcome", outcome),
		zap.Int("matches", len(resp.Matches)),
		zap.Int("latency_ms", resp.LatencyMS),
	)
	return resp
}

func storeNotice(res sqlstore.Result, emptyMessage string) *display.Notice {
	switch res.Status {
	case sqlstore.StatusUnavailable:
		return display.Error(storeErrorPrefix + errText(res.Err))
	case sqlstore.StatusFailed:
		return display.Error(queryErrorPrefix + errText(res.Err))
	case sqlstore.StatusEmpty:
		return display.Warning(emptyMessage)
	default:
		return nil
	}
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
