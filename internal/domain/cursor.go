package domain

import "time"

// Cursor is the shipper's durable delivery position. LastSentIndex counts
// log records already dispatched and is monotonically non-decreasing; it is
// owned exclusively by the shipper and never touched by the synthesizer.
type Cursor struct {
	// LastSentIndex is the number of records already dispatched.
	LastSentIndex uint64 `json:"last_sent_index"`

	// LastSendAt is the wall-clock time of the last dispatch attempt.
	LastSendAt time.Time `json:"last_send_at"`

	// LastCommitAt is the wall-clock time the cursor was last persisted.
	LastCommitAt time.Time `json:"last_commit_at"`
}

// Advance moves the cursor forward by n records and stamps the send time.
func (c *Cursor) Advance(n uint64, now time.Time) {
	c.LastSentIndex += n
	c.LastSendAt = now
	c.LastCommitAt = now
}
