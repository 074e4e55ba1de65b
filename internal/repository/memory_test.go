package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"PriceCast/internal/domain/models"
	domrepo "PriceCast/internal/domain/repository"
)

func TestMemoryObjectStorePutGet(t *testing.T) {
	s := NewMemoryObjectStore()
	ctx := context.Background()

	if err := s.Put(ctx, "models/a.json", []byte("blob")); err != nil {
		t.Fatalf("put: %v", err)
	}
	b, err := s.Get(ctx, "models/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(b) != "blob" {
		t.Fatalf("got %q", b)
	}

	// Returned bytes are copies; mutation must not leak into the store.
	b[0] = 'x'
	again, err := s.Get(ctx, "models/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(again) != "blob" {
		t.Fatalf("store mutated through returned slice: %q", again)
	}
}

func TestMemoryObjectStoreNotFound(t *testing.T) {
	s := NewMemoryObjectStore()
	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, domrepo.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryObjectStoreList(t *testing.T) {
	s := NewMemoryObjectStore()
	ctx := context.Background()
	for _, k := range []string{"models/b", "models/a", "reports/x"} {
		if err := s.Put(ctx, k, []byte("v")); err != nil {
			t.Fatalf("put: %v", err)
		}
	}

	keys, err := s.List(ctx, "models/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"models/a", "models/b"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("list = %v, want %v", keys, want)
	}
}

func TestMemoryRecordSinkAppendOrder(t *testing.T) {
	s := NewMemoryRecordSink()
	ctx := context.Background()

	first := []models.PricingRecord{
		{BasePrice: 10, CompetitionPrice: 11, Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{BasePrice: 20, CompetitionPrice: 21, Timestamp: time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)},
	}
	second := []models.PricingRecord{
		{BasePrice: 30, CompetitionPrice: 31, Timestamp: time.Date(2024, 1, 1, 0, 2, 0, 0, time.UTC)},
	}
	if err := s.Append(ctx, first); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append(ctx, second); err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	for i, want := range []float64{10, 20, 30} {
		if all[i].BasePrice != want {
			t.Fatalf("record %d out of order: %v", i, all[i].BasePrice)
		}
	}
}
