package global

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ib-77/match3/pkg/match"
	"github.com/ib-77/match3/pkg/match/arms"
	"github.com/ib-77/match3/pkg/match/async"
	"github.com/ib-77/match3/pkg/match/builder"
	"github.com/ib-77/match3/pkg/match/chain"
	"github.com/ib-77/match3/pkg/match/when"
)

// Name is the binding Install registers.
const Name = "match"

var ErrAlreadyRegistered = errors.New("name already registered")

// Facade exposes every style over untyped subjects and results.
type Facade struct {
	New       func(ctx context.Context, subject any) *builder.Session[any, any]
	When      func(ctx context.Context, subject any, t *when.Table[any, any]) (any, error)
	WhenAsync func(ctx context.Context, subject any, t *when.Table[any, any]) *match.Future[any]
	Chain     func(ctx context.Context, subject any) *chain.Chain[any, any]
	Rust      func(ctx context.Context, subject any, list ...match.Arm[any, any]) (any, error)
	RustAsync func(ctx context.Context, subject any, list ...match.Arm[any, any]) *match.Future[any]
	Generator func(condition func(v any) bool) match.GeneratorFunc[any]
	Async     func(condition any) *match.Future[any]
}

// NewFacade wires the façade to the package functions.
func NewFacade() *Facade {
	return &Facade{
		New:       builder.New[any, any],
		When:      when.Match[any, any],
		WhenAsync: when.MatchAsync[any, any],
		Chain:     chain.Start[any, any],
		Rust:      arms.Match[any, any],
		RustAsync: arms.MatchAsync[any, any],
		Generator: match.Yield[any],
		Async:     async.Of[any],
	}
}

var (
	mu        sync.RWMutex
	registry  = map[string]*Facade{}
	installed sync.Once
)

// Register binds f to name. A name can be bound once.
func Register(name string, f *Facade) error {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := registry[name]; ok {
		return fmt.Errorf("%w: %q", ErrAlreadyRegistered, name)
	}
	registry[name] = f
	return nil
}

func Lookup(name string) (*Facade, bool) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := registry[name]
	return f, ok
}

// Install registers the default façade under Name. Later calls return the
// installed façade and change nothing.
func Install() *Facade {
	installed.Do(func() {
		if _, ok := Lookup(Name); !ok {
			_ = Register(Name, NewFacade())
		}
	})

	f, _ := Lookup(Name)
	return f
}
