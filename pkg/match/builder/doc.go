// Package builder provides the fluent session style: open a session over a
// subject, register arms with With, an optional default with Otherwise, and
// finish with Run or RunAsync.
//
// With evaluates its arm against the subject at once. The first arm that
// fires latches the session: later With/Otherwise calls are no-ops and Run
// returns the zero value without invoking anything. The fired result is kept
// in Outcome.
package builder
