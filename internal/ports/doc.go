// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those needs
// are fulfilled.
//
// # Port Interfaces
//
//   - [RecordLog]: Append-only sample store shared by synthesizer and shipper
//   - [RecordSender]: Delivers record batches to the ingestion endpoint
//   - [CursorStore]: Persists and loads the delivery cursor
//   - [Clock]: Time source and cancellable sleep for loop pacing
//   - [Logger]: Structured logging abstraction
//   - [HTTPClient]: HTTP request abstraction for dependency injection
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (CSV file, HTTP, NATS, zerolog, etc.).
package ports
