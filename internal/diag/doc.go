// Package diag defines the diagnostic model shared by the merge-tag scanners,
// the document loader and the structural linter adapter.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error (severity.go).
//   - Code: compact numeric identifier with a stable string ID such as TAG1001 (codes.go).
//   - Message: the human-readable text shown to the template author.
//   - Primary: the source.Span of the offending text.
//   - Notes: optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. BagReporter collects into a Bag, which
// keeps insertion order and caps the number of stored entries; CountingReporter
// wraps another Reporter to tell how many were cut off. Order matters: the merge-tag checks emit angle,
// square and curly findings in that sequence and consumers must not re-sort.
//
// Package diag performs no formatting or IO; rendering lives in internal/diagfmt.
package diag
