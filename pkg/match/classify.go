package match

import (
	"context"
	"fmt"
)

// Verdict is the classification of one pattern against one subject.
type Verdict struct {
	Satisfied bool
	Extra     Extra
}

// Classify decides p against v without waiting. Patterns that need to wait
// (async predicates, pending values) fail with ErrTypeMismatch.
func Classify[T any](ctx context.Context, p Pattern[T], v T) (Verdict, error) {
	return ClassifyWith(ctx, p, v, Options{})
}

func ClassifyWith[T any](ctx context.Context, p Pattern[T], v T, opts Options) (Verdict, error) {
	switch p.kind {
	case KindWildcard:
		return Verdict{Satisfied: true}, nil

	case KindRegexp, KindGlob:
		s, ok := textOf(any(v))
		if !ok || p.text == nil {
			return Verdict{}, nil
		}
		groups, ok := p.text.Submatch(s)
		if !ok {
			return Verdict{}, nil
		}
		return Verdict{Satisfied: true, Extra: Extra{Groups: groups}}, nil

	case KindGenerator:
		if p.gen == nil {
			return Verdict{}, nil
		}
		g, ok := startGenerator(ctx, p.gen, v)
		if !ok {
			return Verdict{}, nil
		}
		return Verdict{Satisfied: true, Extra: Extra{Generator: g}}, nil

	case KindAsyncPredicate, KindPending:
		return Verdict{}, fmt.Errorf("%w: %s pattern", ErrTypeMismatch, p.kind)

	case KindStructural:
		return Verdict{Satisfied: matchShape(p.shape, any(v), opts.Shapes)}, nil

	case KindPredicate:
		return Verdict{Satisfied: p.pred != nil && p.pred(ctx, v)}, nil
	}

	return Verdict{Satisfied: Equal(any(p.literal), any(v))}, nil
}
