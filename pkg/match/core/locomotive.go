package core

import "context"

// Locomotive feeds the items of inputCh through engine strictly one at a
// time: the next item is read only after the channel returned by engine for
// the previous one has yielded or closed. It returns the first engine output
// accepted by stop. found is false when inputCh is drained without a stop.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan In,
	engine func(ctx context.Context, input In) <-chan Out,
	stop func(out Out) bool) (res Out, found bool, err error) {

	for {
		select {
		case <-ctx.Done():
			return res, false, ctx.Err()
		case in, ok := <-inputCh:
			if !ok {
				return res, false, nil
			}

			select {
			case <-ctx.Done():
				return res, false, ctx.Err()
			case out, running := <-engine(ctx, in):
				if !running {
					continue
				}
				if stop(out) {
					return out, true, nil
				}
			}
		}
	}
}
