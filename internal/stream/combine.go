// Package stream joins live feeds.
package stream

import "context"

// CombineLatest3 waits until each of a, b and c has produced a value, then
// emits fn(latestA, latestB, latestC) every time any input emits. The output
// channel is closed when ctx is done or all inputs are closed.
//
// Values are applied in arrival order with no sequencing, so a slow producer
// may overwrite a newer state with an older one.
func CombineLatest3[A, B, C, R any](ctx context.Context, a <-chan A, b <-chan B, c <-chan C, fn func(A, B, C) R) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)

		var va A
		var vb B
		var vc C
		var hasA, hasB, hasC bool

		for a != nil || b != nil || c != nil {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-a:
				if !ok {
					a = nil
					continue
				}
				va, hasA = v, true
			case v, ok := <-b:
				if !ok {
					b = nil
					continue
				}
				vb, hasB = v, true
			case v, ok := <-c:
				if !ok {
					c = nil
					continue
				}
				vc, hasC = v, true
			}

			if !hasA || !hasB || !hasC {
				continue
			}
			select {
			case out <- fn(va, vb, vc):
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
