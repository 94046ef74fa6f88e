package match

import (
	"context"
	"fmt"
	"regexp"

	"github.com/dlclark/regexp2"
	glob "github.com/tidwall/match"
)

// Kind tags the variant held by a Pattern.
type Kind int

const (
	KindLiteral Kind = iota
	KindWildcard
	KindRegexp
	KindGlob
	KindGenerator
	KindAsyncPredicate
	KindPending
	KindStructural
	KindPredicate
)

var kindNames = [...]string{
	KindLiteral:        "literal",
	KindWildcard:       "wildcard",
	KindRegexp:         "regexp",
	KindGlob:           "glob",
	KindGenerator:      "generator",
	KindAsyncPredicate: "async-predicate",
	KindPending:        "pending",
	KindStructural:     "structural",
	KindPredicate:      "predicate",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// TextMatcher matches text subjects and returns the captured substrings,
// whole match first.
type TextMatcher interface {
	Submatch(s string) ([]string, bool)
}

// Pattern is one of the pattern variants, built with the constructors below.
// The zero Pattern is a literal matching the zero value of T.
type Pattern[T any] struct {
	kind    Kind
	literal T
	text    TextMatcher
	gen     GeneratorFunc[T]
	async   func(ctx context.Context, v T) *Future[bool]
	pending *Future[T]
	shape   map[string]any
	pred    func(ctx context.Context, v T) bool
}

func (p Pattern[T]) Kind() Kind {
	return p.kind
}

// Suspends reports whether the pattern can only be decided by waiting.
func (p Pattern[T]) Suspends() bool {
	return p.kind == KindAsyncPredicate || p.kind == KindPending
}

// Pending returns the future held by a pending pattern.
func (p Pattern[T]) Pending() *Future[T] {
	return p.pending
}

// AsyncPredicate returns the predicate held by an async-predicate pattern.
func (p Pattern[T]) AsyncPredicate() func(ctx context.Context, v T) *Future[bool] {
	return p.async
}

func (p Pattern[T]) String() string {
	switch p.kind {
	case KindLiteral:
		return fmt.Sprintf("%v", p.literal)
	case KindWildcard:
		return "_"
	case KindStructural:
		return fmt.Sprintf("%v", p.shape)
	}
	return p.kind.String()
}

// Lit matches values equal to v.
func Lit[T any](v T) Pattern[T] {
	return Pattern[T]{kind: KindLiteral, literal: v}
}

// Any is the wildcard `_`: it matches every subject.
func Any[T any]() Pattern[T] {
	return Pattern[T]{kind: KindWildcard}
}

func Pred[T any](pred func(v T) bool) Pattern[T] {
	return Pattern[T]{kind: KindPredicate, pred: func(_ context.Context, v T) bool { return pred(v) }}
}

func PredCtx[T any](pred func(ctx context.Context, v T) bool) Pattern[T] {
	return Pattern[T]{kind: KindPredicate, pred: pred}
}

// Regexp matches text subjects against re.
func Regexp[T any](re *regexp.Regexp) Pattern[T] {
	return Text[T](stdRegexp{re: re})
}

func MustRegexp[T any](expr string) Pattern[T] {
	return Regexp[T](regexp.MustCompile(expr))
}

// Regexp2 matches text subjects with the backtracking engine, which supports
// lookarounds and backreferences.
func Regexp2[T any](re *regexp2.Regexp) Pattern[T] {
	return Text[T](Regexp2Matcher{Re: re})
}

// Text wraps any TextMatcher as a regexp-kind pattern.
func Text[T any](m TextMatcher) Pattern[T] {
	return Pattern[T]{kind: KindRegexp, text: m}
}

// Glob matches text subjects against a wildcard pattern ('*' and '?').
func Glob[T any](pattern string) Pattern[T] {
	return Pattern[T]{kind: KindGlob, text: globMatcher(pattern)}
}

func Gen[T any](fn GeneratorFunc[T]) Pattern[T] {
	return Pattern[T]{kind: KindGenerator, gen: fn}
}

// AsyncPredicate is satisfied when the future returned by pred settles with true.
func AsyncPredicate[T any](pred func(ctx context.Context, v T) *Future[bool]) Pattern[T] {
	return Pattern[T]{kind: KindAsyncPredicate, async: pred}
}

// AsyncFunc runs a blocking predicate as an async predicate.
func AsyncFunc[T any](pred func(ctx context.Context, v T) (bool, error)) Pattern[T] {
	return AsyncPredicate(func(ctx context.Context, v T) *Future[bool] {
		return Go(ctx, func(ctx context.Context) (bool, error) {
			return pred(ctx, v)
		})
	})
}

// Pending is satisfied when f resolves to a value equal to the subject.
func Pending[T any](f *Future[T]) Pattern[T] {
	return Pattern[T]{kind: KindPending, pending: f}
}

// Shape matches subjects whose properties equal every entry of fields.
func Shape[T any](fields map[string]any) Pattern[T] {
	return Pattern[T]{kind: KindStructural, shape: fields}
}

type stdRegexp struct {
	re *regexp.Regexp
}

func (r stdRegexp) Submatch(s string) ([]string, bool) {
	if r.re == nil {
		return nil, false
	}
	m := r.re.FindStringSubmatch(s)
	return m, m != nil
}

type Regexp2Matcher struct {
	Re *regexp2.Regexp
}

func (r Regexp2Matcher) Submatch(s string) ([]string, bool) {
	if r.Re == nil {
		return nil, false
	}
	m, err := r.Re.FindStringMatch(s)
	if err != nil || m == nil {
		return nil, false
	}

	groups := m.Groups()
	out := make([]string, len(groups))
	for i := range groups {
		out[i] = groups[i].String()
	}
	return out, true
}

type globMatcher string

func (g globMatcher) Submatch(s string) ([]string, bool) {
	if glob.Match(s, string(g)) {
		return []string{s}, true
	}
	return nil, false
}

// textOf returns the text form of v when v is text.
func textOf(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case fmt.Stringer:
		if IsNil(t) {
			return "", false
		}
		return t.String(), true
	}
	return "", false
}
