// Package app orchestrates the ecgship pipeline: the synthesizer loop that
// produces waveform windows, the shipper loop that delivers them in bounded
// batches, and the lifecycle state machine that manages both.
//
// The two loops share no memory. They communicate only through the
// append-only record log, so either side may stop and resume without losing
// synchronization: position is tracked by record count, not by in-memory
// queue state.
package app
