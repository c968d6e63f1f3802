// Package audit implements the async audit pipeline for token engine operations.
//
// # Components
//
//   - [Event] — one audited operation: timestamp, type, operator, target,
//     run ID, token fingerprint, success flag, error text, metadata.
//   - [Sink] — consumer interface with channel, JSON-lines, and no-op
//     implementations.
//   - [Dispatcher] — buffered relay that either drops or blocks when the
//     sink falls behind, counting every drop.
//
// # Architecture boundaries
//
// This package owns buffering and delivery. Deciding which operations are
// audited, and with what fields, is the Engine's job.
//
// # What this package must NOT do
//
//   - Receive secret material: events carry token fingerprints and run IDs,
//     never candidate secrets, recovered secrets, or keys.
//   - Filter or suppress events based on business logic.
//   - Import goForge or any sibling internal package.
//   - Perform network I/O beyond what a caller-supplied Sink does.
package audit
