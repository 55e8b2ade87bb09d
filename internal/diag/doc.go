// Package diag defines the diagnostic model shared by the declaration
// decoders, the inheritance resolver and the CLI.
//
// Nothing in the resolver aborts a batch: redundant declarations, unresolved
// super classes, inheritance cycles and malformed flag merges are all
// reported as Diagnostic records through a Reporter and the caller decides
// what to surface.
//
// # Data model
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable ID() (DEF1001, DCL2002, ...).
//   - Message – short human readable text.
//   - Primary – source.Location of the declaration the finding is about.
//   - Notes – secondary locations, e.g. the other members of a cycle.
//
// # Emitting diagnostics
//
// Producers take a Reporter. BagReporter stores into a Bag, which supports
// counting by severity, sorting, deduplication and filtering. DedupReporter
// drops exact repeats, MultiReporter fans out. ReportBuilder
// (ReportWarning/ReportError + WithNote + Emit) is the convenient way to
// attach notes.
//
// Rendering lives in internal/diagfmt; FormatShortDiagnostics here is the
// one stable text form used by golden tests.
package diag
