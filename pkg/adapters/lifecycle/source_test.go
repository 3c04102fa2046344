package lifecycle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jotter/pkg/adapters/lifecycle"
	"github.com/aretw0/jotter/pkg/core"
)

func TestSource(t *testing.T) {
	t.Run("Forwards events and closes with the input", func(t *testing.T) {
		in := make(chan core.Event, 2)
		in <- core.Event{Type: core.EventCreate, Entity: core.EntityNote, ID: 3}
		in <- core.Event{Type: core.EventModify, Entity: core.EntitySettings}
		close(in)

		src := lifecycle.NewSource(in)
		require.NoError(t, src.Start(context.Background()))

		var got []string
		for e := range src.Events() {
			got = append(got, e.String())
		}
		assert.Equal(t, []string{"CREATE note 3", "MODIFY settings"}, got)
	})

	t.Run("Filters by entity", func(t *testing.T) {
		in := make(chan core.Event, 2)
		in <- core.Event{Type: core.EventCreate, Entity: core.EntityNote, ID: 3}
		in <- core.Event{Type: core.EventModify, Entity: core.EntitySettings}
		close(in)

		src := lifecycle.NewSource(in, lifecycle.WithEntities(core.EntitySettings))
		require.NoError(t, src.Start(context.Background()))

		var got []string
		for e := range src.Events() {
			got = append(got, e.String())
		}
		assert.Equal(t, []string{"MODIFY settings"}, got)
	})

	t.Run("Stops on cancel", func(t *testing.T) {
		in := make(chan core.Event)
		ctx, cancel := context.WithCancel(context.Background())

		src := lifecycle.NewSource(in)
		require.NoError(t, src.Start(ctx))
		cancel()

		select {
		case _, ok := <-src.Events():
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("source not closed after cancel")
		}
	})
}
