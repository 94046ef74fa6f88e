package core

import (
	"context"
	"log/slog"

	"github.com/ib-77/match3/pkg/match"
)

type OptionKey string

const (
	HooksOptionKey OptionKey = "hooks_options"
	ShapeOptionKey OptionKey = "shape_options"
)

// Hooks observe a dispatch. Every field is optional. Index is the arm
// position in scan order, -1 for the default handler.
type Hooks struct {
	OnArmTried          func(ctx context.Context, index int, kind match.Kind, satisfied bool)
	OnMatch             func(ctx context.Context, index int)
	OnSuspensionFailure func(ctx context.Context, index int, err error)
	OnNoMatch           func(ctx context.Context, subject any)
}

type ShapeOptions struct {
	Mode match.ShapeMode
}

func WithHooks(ctx context.Context, hooks Hooks) context.Context {
	return context.WithValue(ctx, HooksOptionKey, hooks)
}

func GetHooks(ctx context.Context) Hooks {
	hooks, ok := ctx.Value(HooksOptionKey).(Hooks)
	if ok {
		return hooks
	}
	return Hooks{}
}

// WithShapeMode selects how structural patterns are decided under ctx.
func WithShapeMode(ctx context.Context, mode match.ShapeMode) context.Context {
	return context.WithValue(ctx, ShapeOptionKey, ShapeOptions{Mode: mode})
}

func GetClassifyOptions(ctx context.Context) match.Options {
	options, ok := ctx.Value(ShapeOptionKey).(ShapeOptions)
	if ok {
		return match.Options{Shapes: options.Mode}
	}
	return match.Options{}
}

func (h Hooks) Tried(ctx context.Context, index int, kind match.Kind, satisfied bool) {
	if h.OnArmTried != nil {
		h.OnArmTried(ctx, index, kind, satisfied)
	}
}

func (h Hooks) Matched(ctx context.Context, index int) {
	if h.OnMatch != nil {
		h.OnMatch(ctx, index)
	}
}

func (h Hooks) SuspensionFailed(ctx context.Context, index int, err error) {
	if h.OnSuspensionFailure != nil {
		h.OnSuspensionFailure(ctx, index, err)
	}
}

func (h Hooks) NoMatch(ctx context.Context, subject any) {
	if h.OnNoMatch != nil {
		h.OnNoMatch(ctx, subject)
	}
}

// LogHooks reports dispatch events to logger at debug level, and swallowed
// suspension failures at warn level.
func LogHooks(logger *slog.Logger) Hooks {
	return Hooks{
		OnArmTried: func(ctx context.Context, index int, kind match.Kind, satisfied bool) {
			logger.DebugContext(ctx, "arm tried",
				slog.Int("index", index), slog.String("kind", kind.String()), slog.Bool("satisfied", satisfied))
		},
		OnMatch: func(ctx context.Context, index int) {
			logger.DebugContext(ctx, "arm matched", slog.Int("index", index))
		},
		OnSuspensionFailure: func(ctx context.Context, index int, err error) {
			logger.WarnContext(ctx, "pattern suspension failed", slog.Int("index", index), slog.Any("error", err))
		},
		OnNoMatch: func(ctx context.Context, subject any) {
			logger.DebugContext(ctx, "no match", slog.Any("subject", subject))
		},
	}
}
