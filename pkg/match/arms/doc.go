// Package arms provides the positional arms-list style: a subject and an
// ordered list of arms, the first satisfied arm wins. A wildcard arm
// (match.Any or match.Otherwise) matches every subject, so it belongs last.
package arms
