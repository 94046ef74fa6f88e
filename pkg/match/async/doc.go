// Package async is the asynchronous dispatcher. It mirrors solo but waits
// for async predicates, pending values and async handlers, one arm at a
// time and strictly in registration order.
//
// A pattern whose wait fails (rejected future, error, panic) counts as not
// satisfied and the scan moves on; the failure is only reported through
// core.Hooks. Cancelling the context aborts the scan with ctx.Err().
//
// Highlights:
// - Classify: decide a pattern, waiting when it suspends
// - TryArm/Scan/Run: blocking forms of the solo operations
// - Dispatch: Run on its own goroutine, returned as a match.Future
// - Of/Predicate: helpers building already-settled and async predicates
package async
