package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jotter/pkg/core"
)

// SourceOption configures a Source.
type SourceOption func(*source)

// WithEntities restricts the source to events about the given entities.
func WithEntities(entities ...core.Entity) SourceOption {
	return func(s *source) {
		s.entities = make(map[core.Entity]bool, len(entities))
		for _, e := range entities {
			s.entities[e] = true
		}
	}
}

type source struct {
	events   <-chan core.Event
	out      chan lifecycle.Event
	entities map[core.Entity]bool // nil accepts everything
}

// NewSource creates a lifecycle.Source that emits store change events, so a
// lifecycle router can react to notes or settings edited outside the process.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &source{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *source) Events() <-chan lifecycle.Event {
	return s.out
}

// Start forwards events until ctx ends or the store channel closes, then
// closes the output channel.
func (s *source) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if s.entities != nil && !s.entities[e.Entity] {
					continue
				}
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
