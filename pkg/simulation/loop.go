package simulation

import (
	"context"
	"time"
)

// RunOptions controls Run.
type RunOptions struct {
	Rate     int    // host ticks per second; <= 0 runs unthrottled
	MaxTicks uint64 // stop after this many host ticks; 0 runs until ctx is done
	// OnTick is called after every host tick, paused or not, with the host
	// tick count. It runs on the loop goroutine, so it may read Bodies.
	OnTick func(tick uint64)
}

// Run calls AdvanceTick at a bounded rate until ctx is done or MaxTicks host
// ticks have passed. It returns ctx.Err() when cancelled and nil otherwise.
func (s *Simulator[V]) Run(ctx context.Context, opts RunOptions) error {
	var tick <-chan time.Time
	if opts.Rate > 0 {
		interval := max(time.Second/time.Duration(opts.Rate), time.Nanosecond)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for n := uint64(1); opts.MaxTicks == 0 || n <= opts.MaxTicks; n++ {
		if tick != nil {
			select {
			case <-tick:
			case <-ctx.Done():
				return ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		s.AdvanceTick()
		if opts.OnTick != nil {
			opts.OnTick(n)
		}
	}
	return nil
}
