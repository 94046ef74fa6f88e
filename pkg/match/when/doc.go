// Package when provides the declarative-map style: a Table of keyed entries
// evaluated in the order they were added, with `_` reserved for the default.
//
// Keys are strings:
// - "_": the default entry
// - "/expr/": a regular expression matched against text subjects
// - anything else: equal to a string subject
//
// Regexp, predicate, async and pending patterns can be added with
// CasePattern. Tables can be read from a YAML mapping, which keeps the
// document order.
package when
