// Package chain provides the link-chaining style: Start a chain over a
// subject, test it with Case, and close it with Default.
//
// Case evaluates immediately. When it fires, it returns a settled chain that
// carries the Outcome; otherwise it returns the same chain for the next Case.
// Default on an unsettled chain always runs its handler; on a settled chain
// it returns the settled Outcome.
package chain
