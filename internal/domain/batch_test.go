package domain

import (
	"testing"
	"time"
)

func TestPartition(t *testing.T) {
	records := make([]OutboundRecord, 1000)
	for i := range records {
		records[i] = OutboundRecord{Signal: float64(i)}
	}

	batches := Partition(records, 250)
	if len(batches) != 4 {
		t.Fatalf("batch count = %d, want 4", len(batches))
	}
	for i, b := range batches {
		if b.Size() != 250 || b.RecordCount != 250 {
			t.Fatalf("batch %d: size=%d count=%d, want 250/250", i, b.Size(), b.RecordCount)
		}
	}
	// Order preserved across the batch boundary.
	if batches[1].Records[0].Signal != 250 {
		t.Fatalf("second batch head = %v, want 250", batches[1].Records[0].Signal)
	}
}

func TestPartitionRemainder(t *testing.T) {
	records := make([]OutboundRecord, 7)
	batches := Partition(records, 3)
	want := []int{3, 3, 1}
	if len(batches) != len(want) {
		t.Fatalf("batch count = %d, want %d", len(batches), len(want))
	}
	for i, b := range batches {
		if b.Size() != want[i] {
			t.Fatalf("batch %d size = %d, want %d", i, b.Size(), want[i])
		}
	}
}

func TestPartitionEdgeCases(t *testing.T) {
	if batches := Partition(nil, 10); batches != nil {
		t.Fatalf("Partition(nil) = %v, want nil", batches)
	}

	records := make([]OutboundRecord, 5)
	batches := Partition(records, 0)
	if len(batches) != 1 || batches[0].Size() != 5 {
		t.Fatalf("non-positive size: batches = %v, want one batch of 5", batches)
	}
}

func TestEnrich(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 123456789, time.UTC)
	s := Sample{Time: 3.14, Amplitude: 0.5}

	out := s.Enrich(now)
	if out.Signal != 0.5 {
		t.Fatalf("Signal = %v, want 0.5", out.Signal)
	}
	parsed, err := time.Parse(time.RFC3339Nano, out.Timestamp)
	if err != nil {
		t.Fatalf("timestamp %q not RFC3339Nano: %v", out.Timestamp, err)
	}
	if !parsed.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", parsed, now)
	}
}

func TestCursorAdvance(t *testing.T) {
	now := time.Now()
	var c Cursor
	c.Advance(250, now)
	c.Advance(250, now.Add(time.Second))

	if c.LastSentIndex != 500 {
		t.Fatalf("LastSentIndex = %d, want 500", c.LastSentIndex)
	}
	if !c.LastSendAt.Equal(now.Add(time.Second)) {
		t.Fatalf("LastSendAt = %v, want %v", c.LastSendAt, now.Add(time.Second))
	}
}
