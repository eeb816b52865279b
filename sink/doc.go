// Package sink contains the destinations LioLi trees and log lines are
// written to.
//
// # Sink kinds
//
//   - Lines / Records: text-line and opaque-record appenders. RotatingFile is
//     the file-backed implementation.
//   - Trees: consumers of whole trees. TextSink renders each tree as Lorth or
//     indented text into a Lines sink; BinarySink encodes each tree as a BILL
//     record into a Records sink.
//
// # Null sink
//
// Null is a single distinguished value implementing every sink interface as
// a no-op. Registry.Resolve and Resolver.Get return it when a configured
// name does not resolve, so producers never branch on a missing sink.
//
// # Rotating files
//
// RotatingFile appends records to <base><unix-ms> files, opening a new file
// once the per-file record cap is reached (when rotation is enabled), and
// flushing every FlushEvery records. If a file cannot be opened the sink
// aborts and drops every later record; losing output is preferred to
// blocking or failing producers.
//
// # Thread Safety
//
// RotatingFile, TextSink, BinarySink, Registry and Resolver are safe for
// concurrent use. Each record is written atomically with respect to other
// records; ordering across goroutines is the order they acquire the sink.
package sink
