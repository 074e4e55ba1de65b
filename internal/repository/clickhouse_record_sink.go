package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"PriceCast/internal/domain/models"
	"PriceCast/internal/domain/repository"
)

// ClickHouseRecordSink implements RecordSink over a ClickHouse table.
// Every row carries a monotonic insertion sequence number; ReadAll orders
// by it, so append order is preserved even across equal timestamps.
type ClickHouseRecordSink struct {
	db    *sql.DB
	table string
	seq   atomic.Uint64
}

func NewClickHouseRecordSink(db *sql.DB, table string) repository.RecordSink {
	return &ClickHouseRecordSink{db: db, table: table}
}

// Init resumes the insertion sequence from the highest persisted value so
// rows appended after a restart still sort behind earlier ones.
func (s *ClickHouseRecordSink) Init(ctx context.Context) error {
	q := fmt.Sprintf("SELECT coalesce(max(seq), 0) FROM %s", s.table)
	var max uint64
	if err := s.db.QueryRowContext(ctx, q).Scan(&max); err != nil {
		return fmt.Errorf("init sink: %w", err)
	}
	s.seq.Store(max)
	return nil
}

func (s *ClickHouseRecordSink) Append(ctx context.Context, records []models.PricingRecord) error {
	if len(records) == 0 {
		return nil
	}
	// Batch insert using VALUES multi-row to reduce round-trips.
	const chunkSize = 2000
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		q, args := s.insertChunk(records[start:end])
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			return fmt.Errorf("append records: %w", err)
		}
	}
	return nil
}

// insertChunk builds one multi-row insert, assigning each row the next
// sequence number.
func (s *ClickHouseRecordSink) insertChunk(records []models.PricingRecord) (string, []interface{}) {
	values := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*9)
	for _, r := range records {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			s.seq.Add(1),
			r.Timestamp,
			r.BasePrice,
			r.Demand,
			r.CompetitionPrice,
			r.TimeOfDay,
			r.DayOfWeek,
			r.Season,
			r.OptimalPrice,
		)
	}
	q := fmt.Sprintf("INSERT INTO %s (seq, ts, base_price, demand, competition_price, time_of_day, day_of_week, season, optimal_price) VALUES %s",
		s.table, strings.Join(values, ","))
	return q, args
}

func (s *ClickHouseRecordSink) readAllQuery() string {
	return fmt.Sprintf("SELECT ts, base_price, demand, competition_price, time_of_day, day_of_week, season, optimal_price FROM %s ORDER BY seq", s.table)
}

func (s *ClickHouseRecordSink) ReadAll(ctx context.Context) ([]models.PricingRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.readAllQuery())
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}
	defer rows.Close()

	var records []models.PricingRecord
	for rows.Next() {
		var r models.PricingRecord
		var ts time.Time
		if err := rows.Scan(&ts, &r.BasePrice, &r.Demand, &r.CompetitionPrice, &r.TimeOfDay, &r.DayOfWeek, &r.Season, &r.OptimalPrice); err != nil {
			return nil, err
		}
		r.Timestamp = ts
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *ClickHouseRecordSink) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *ClickHouseRecordSink) Close() error {
	return nil // Managed by pkg
}
