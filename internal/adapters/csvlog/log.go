// Package csvlog implements the record log on a two-column CSV file.
//
// The file layout matches the ingestion contract: a single
// "time,ecg_signal" header followed by one row per sample, appended in
// order and never rewritten. Readers select records by skipping
// already-consumed rows.
package csvlog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vitalwave/ecgship/internal/domain"
	"github.com/vitalwave/ecgship/internal/ports"
	"github.com/vitalwave/ecgship/pkg/metrics"
)

var header = []string{"time", "ecg_signal"}

// Log is a file-backed append-only record log. The synthesizer is the sole
// appender and the shipper the sole reader, so no lock is held across the
// two sides; appends rely on O_APPEND atomicity.
type Log struct {
	path   string
	logger ports.Logger
}

// New creates a log backed by the CSV file at path. The file is created
// lazily on first append.
func New(path string, logger ports.Logger) *Log {
	return &Log{path: path, logger: logger}
}

// Path returns the backing file path.
func (l *Log) Path() string { return l.path }

// Append writes records to the end of the file, creating it (with the
// header) if needed. Appending zero records is a no-op.
func (l *Log) Append(ctx context.Context, records []domain.Sample) error {
	if len(records) == 0 {
		return nil
	}
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open record log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat record log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, r := range records {
		row := []string{
			strconv.FormatFloat(r.Time, 'g', -1, 64),
			strconv.FormatFloat(r.Amplitude, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush record log: %w", err)
	}
	return nil
}

// ReadFrom returns every record past offset, in append order. A log file
// that does not exist yet yields zero records. Malformed rows are skipped
// with a warning and do not count toward the offset, so offsets stay stable
// across repeated reads.
func (l *Log) ReadFrom(ctx context.Context, offset uint64) ([]domain.Sample, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var (
		records []domain.Sample
		index   uint64
		line    int
	)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
		}
		line++
		if line == 1 && len(row) > 0 && row[0] == header[0] {
			continue
		}
		sample, ok := l.parseRow(row, line)
		if !ok {
			continue
		}
		if index >= offset {
			records = append(records, sample)
		}
		index++
	}
	return records, nil
}

// Len returns the number of well-formed records in the log.
func (l *Log) Len(ctx context.Context) (uint64, error) {
	records, err := l.ReadFrom(ctx, 0)
	if err != nil {
		return 0, err
	}
	return uint64(len(records)), nil
}

func (l *Log) parseRow(row []string, line int) (domain.Sample, bool) {
	if len(row) != 2 {
		l.warnMalformed(line, fmt.Errorf("expected 2 fields, got %d", len(row)))
		return domain.Sample{}, false
	}
	t, err := strconv.ParseFloat(row[0], 64)
	if err != nil {
		l.warnMalformed(line, err)
		return domain.Sample{}, false
	}
	a, err := strconv.ParseFloat(row[1], 64)
	if err != nil {
		l.warnMalformed(line, err)
		return domain.Sample{}, false
	}
	return domain.Sample{Time: t, Amplitude: a}, true
}

func (l *Log) warnMalformed(line int, err error) {
	metrics.RecordsSkipped.Inc()
	l.logger.Warn("skipping malformed record",
		ports.String("file", l.path),
		ports.Int("line", line),
		ports.Err(err),
	)
}
