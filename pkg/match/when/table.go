package when

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/ib-77/match3/pkg/match"
)

// DefaultKey is the reserved key of the default entry.
const DefaultKey = "_"

// Entry is one keyed row of a Table.
type Entry[T, R any] struct {
	Key string
	Arm match.Arm[T, R]
}

// Table is an ordered key to handler mapping.
type Table[T, R any] struct {
	entries []Entry[T, R]
	def     *match.Handler[T, R]
	err     error
}

func NewTable[T, R any]() *Table[T, R] {
	return &Table[T, R]{}
}

// FromMap builds a table from m with keys in sorted order, since Go maps
// carry no order of their own.
func FromMap[T, R any](m map[string]R) *Table[T, R] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := NewTable[T, R]()
	for _, k := range keys {
		t.Case(k, match.Value[T](m[k]))
	}
	return t
}

// Case adds an entry keyed by a string. A key that does not compile is kept
// as the table error and reported by Match.
func (t *Table[T, R]) Case(key string, h match.Handler[T, R]) *Table[T, R] {
	if key == DefaultKey {
		return t.Default(h)
	}

	p, err := ParseKey[T](key)
	if err != nil {
		if t.err == nil {
			t.err = err
		}
		return t
	}

	t.entries = append(t.entries, Entry[T, R]{Key: key, Arm: match.On(p, h)})
	return t
}

// CaseRegexp adds an entry keyed by a compiled regular expression.
func (t *Table[T, R]) CaseRegexp(re *regexp.Regexp, h match.Handler[T, R]) *Table[T, R] {
	t.entries = append(t.entries, Entry[T, R]{Key: "/" + re.String() + "/", Arm: match.On(match.Regexp[T](re), h)})
	return t
}

// CasePattern adds an entry for any pattern kind.
func (t *Table[T, R]) CasePattern(p match.Pattern[T], h match.Handler[T, R]) *Table[T, R] {
	t.entries = append(t.entries, Entry[T, R]{Key: p.String(), Arm: match.On(p, h)})
	return t
}

// Default sets the `_` entry.
func (t *Table[T, R]) Default(h match.Handler[T, R]) *Table[T, R] {
	t.def = &h
	return t
}

func (t *Table[T, R]) Entries() []Entry[T, R] {
	return t.entries
}

// Arms returns the non-default entries in order.
func (t *Table[T, R]) Arms() []match.Arm[T, R] {
	arms := make([]match.Arm[T, R], len(t.entries))
	for i, e := range t.entries {
		arms[i] = e.Arm
	}
	return arms
}

func (t *Table[T, R]) DefaultHandler() *match.Handler[T, R] {
	return t.def
}

func (t *Table[T, R]) Err() error {
	return t.err
}

// ParseKey turns a table key into a pattern. `/expr/` keys compile with
// regexp2 in ECMAScript mode: character classes such as \d are ASCII only.
func ParseKey[T any](key string) (match.Pattern[T], error) {
	if len(key) >= 2 && strings.HasPrefix(key, "/") && strings.HasSuffix(key, "/") {
		re, err := regexp2.Compile(key[1:len(key)-1], regexp2.ECMAScript)
		if err != nil {
			return match.Pattern[T]{}, fmt.Errorf("when: key %q: %w", key, err)
		}
		return match.Regexp2[T](re), nil
	}

	return match.Pred(func(v T) bool {
		s, ok := any(v).(string)
		return ok && s == key
	}), nil
}
