// Package domain contains the core domain entities and value objects for
// ecgship.
//
// This package represents the innermost layer of the architecture. It has
// no dependencies on infrastructure concerns (HTTP, file system, logging)
// and contains only pure business logic.
//
// # Entities
//
//   - [Sample]: A single synthesized waveform point (time, amplitude)
//   - [OutboundRecord]: A sample enriched for transmission (timestamp, signal)
//   - [Batch]: A bounded group of outbound records sent in one delivery attempt
//   - [Cursor]: Persistent delivery position for crash recovery
//
// # Design Principles
//
// Domain entities are:
//   - Immutable after construction (where practical)
//   - Free of infrastructure dependencies
//   - Testable without mocks or external systems
package domain
