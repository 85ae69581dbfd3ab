package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// poll calls fetch immediately and then every interval, sending each
// successful result. Failed fetches are logged and skipped. The channel is
// closed when ctx is done.
func poll[T any](ctx context.Context, interval time.Duration, fetch func(context.Context) (T, error)) <-chan T {
	out := make(chan T)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			v, err := fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Warn().Err(err).Msg("repository: poll failed")
			} else {
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
