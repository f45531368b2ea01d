package events

import (
	"context"
	"errors"
)

// Fanout publishes every event to all of its publishers and joins their errors.
// Nil publishers are skipped, so optional transports can be passed as is.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
