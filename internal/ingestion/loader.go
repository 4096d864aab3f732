package ingestion

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/securecheck/backend/internal/metrics"
	"github.com/securecheck/backend/internal/storage/models"
	"github.com/securecheck/backend/pkg/logger"
)

// Dataset is a normalized extract. It is never modified after loading;
// callers must treat Records as read-only.
type Dataset struct {
	source   string
	records  []models.StopRecord
	report   Report
	loadedAt time.Time
}

func (d *Dataset) Source() string               { return d.source }
func (d *Dataset) Records() []models.StopRecord { return d.records }
func (d *Dataset) Len() int                     { return len(d.records) }
func (d *Dataset) Report() Report               { return d.report }
func (d *Dataset) LoadedAt() time.Time          { return d.loadedAt }

// Loader reads each extract at most once per process. Successful loads
// are cached by path; failed loads are retried on the next call.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*Dataset
	read  func(path string) ([]models.RawRecord, error)
}

func NewLoader() *Loader {
	return &Loader{
		cache: make(map[string]*Dataset),
		read:  ReadRows,
	}
}

func (l *Loader) Load(path string) (*Dataset, error) {
	key := filepath.Clean(path)

	l.mu.Lock()
	defer l.mu.Unlock()

	if ds, ok := l.cache[key]; ok {
		metrics.ExtractCacheHits.Inc()
		return ds, nil
	}

	start := time.Now()
	rows, err := l.read(key)
	if err != nil {
		metrics.ExtractLoads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load extract %s: %w", key, err)
	}

	records, report := Normalize(rows)
	metrics.ExtractLoads.WithLabelValues("ok").Inc()
	metrics.ExtractCoercionFailures.WithLabelValues(models.ColDriverAge).Add(float64(report.InvalidAge))
	metrics.ExtractCoercionFailures.WithLabelValues(models.ColStopDateTime).Add(float64(report.InvalidTimestamp))

	ds := &Dataset{
		source:   key,
		records:  records,
		report:   report,
		loadedAt: time.Now(),
	}
	l.cache[key] = ds

	logger.Info("Extract loaded",
		zap.String("path", key),
		zap.Int("rows", report.Rows),
		zap.Int("invalid_age", report.InvalidAge),
		zap.Int("invalid_timestamp", report.InvalidTimestamp),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ds, nil
}
