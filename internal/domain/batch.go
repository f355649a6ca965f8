package domain

// Batch is a bounded group of outbound records dispatched in one delivery
// attempt. RecordCount tracks how many log records the batch covers so the
// delivery cursor can be advanced after dispatch.
type Batch struct {
	// Records contains the enriched records in append order.
	Records []OutboundRecord

	// RecordCount is the number of log records covered by this batch.
	RecordCount uint64
}

// Partition splits records into consecutive batches of at most size records,
// preserving order. A non-positive size yields a single batch.
func Partition(records []OutboundRecord, size int) []Batch {
	if len(records) == 0 {
		return nil
	}
	if size <= 0 {
		return []Batch{{Records: records, RecordCount: uint64(len(records))}}
	}
	batches := make([]Batch, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, Batch{
			Records:     records[start:end],
			RecordCount: uint64(end - start),
		})
	}
	return batches
}

// Size returns the number of records in the batch.
func (b Batch) Size() int {
	return len(b.Records)
}

// Empty returns true if the batch has no records.
func (b Batch) Empty() bool {
	return len(b.Records) == 0
}
