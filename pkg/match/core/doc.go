// Package core contains dispatch plumbing: context-carried options and hooks,
// channel helpers, and the locomotive that walks arms one at a time. It does
// not decide patterns itself; solo and async build on it.
package core
