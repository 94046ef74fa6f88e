// Package solo is the synchronous dispatcher. It walks arms in registration
// order, fires the first satisfied one and never waits.
//
// Highlights:
// - TryArm: decide and fire a single arm
// - Scan: first satisfied arm wins, with an explicit found flag
// - Dispatch: Scan, then the default handler, then ErrNoMatch
//
// An arm that needs to wait (async predicate, pending value, async handler)
// stops the scan with match.ErrTypeMismatch.
package solo
