package notifier

import (
	"context"
	"errors"
	"fmt"
)

// Publisher delivers a finished report somewhere people read it.
type Publisher interface {
	Name() string
	Publish(ctx context.Context, message string) error
}

// Multi publishes to every configured sink; one failing sink does not stop
// the others.
type Multi []Publisher

// Name lists the sinks.
func (m Multi) Name() string {
	name := "multi("
	for i, p := range m {
		if i > 0 {
			name += ","
		}
		name += p.Name()
	}
	return name + ")"
}

// Publish sends message to every sink in order and joins their errors.
func (m Multi) Publish(ctx context.Context, message string) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, message); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
