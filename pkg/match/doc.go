// Package match holds the shared model of the pattern-matching engine: the
// Pattern variants and their classifier, handlers and arms, the Outcome
// envelope and the Future used for values that are not known yet.
//
// Highlights:
// - Lit/Pred/Regexp/Regexp2/Glob/Gen/AsyncPredicate/Pending/Shape/Any: build patterns
// - Value/Fn/FnX/Try/Async: build handlers
// - Classify: decide one pattern against one subject without waiting
// - Go/Resolve/Reject/FromChan: build futures; Await/Get settle them
// - Matched/Unmatched: construct Outcome[R]
// - ErrNoMatch/ErrTypeMismatch: failure conditions shared by every style
//
// The dispatching styles live in the builder, when, chain and arms packages,
// on top of the synchronous (solo) and asynchronous (async) dispatchers.
package match
