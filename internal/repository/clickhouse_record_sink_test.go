package repository

import (
	"strings"
	"testing"
	"time"

	"PriceCast/internal/domain/models"
)

func sinkRecords(n int, ts time.Time) []models.PricingRecord {
	out := make([]models.PricingRecord, n)
	for i := range out {
		out[i] = models.PricingRecord{
			BasePrice:        10 + float64(i),
			Demand:           i,
			CompetitionPrice: 11,
			OptimalPrice:     9,
			Timestamp:        ts,
		}
	}
	return out
}

func TestClickHouseInsertAssignsSequence(t *testing.T) {
	s := &ClickHouseRecordSink{table: "pricecast.pricing_records"}

	// All records share one timestamp; the sequence column is what keeps
	// them in append order.
	q, args := s.insertChunk(sinkRecords(3, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))

	if !strings.Contains(q, "(seq, ts,") {
		t.Fatalf("insert does not lead with seq column: %s", q)
	}
	const cols = 9
	if len(args) != 3*cols {
		t.Fatalf("expected %d args, got %d", 3*cols, len(args))
	}
	for row := 0; row < 3; row++ {
		seq, ok := args[row*cols].(uint64)
		if !ok {
			t.Fatalf("row %d: first arg is %T, want uint64", row, args[row*cols])
		}
		if seq != uint64(row+1) {
			t.Fatalf("row %d: seq = %d, want %d", row, seq, row+1)
		}
	}
}

func TestClickHouseSequenceContinuesAcrossChunks(t *testing.T) {
	s := &ClickHouseRecordSink{table: "pricecast.pricing_records"}
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, first := s.insertChunk(sinkRecords(2, ts))
	_, second := s.insertChunk(sinkRecords(2, ts))

	if first[0].(uint64) != 1 || second[0].(uint64) != 3 {
		t.Fatalf("sequence restarted between chunks: %v then %v", first[0], second[0])
	}
	if s.seq.Load() != 4 {
		t.Fatalf("counter = %d after 4 rows", s.seq.Load())
	}
}

func TestClickHouseReadAllOrdersBySequence(t *testing.T) {
	s := &ClickHouseRecordSink{table: "pricecast.pricing_records"}
	q := s.readAllQuery()
	if !strings.HasSuffix(q, "ORDER BY seq") {
		t.Fatalf("read query does not order by insertion sequence: %s", q)
	}
}
