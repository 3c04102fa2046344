package core

import (
	"context"
	"fmt"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

// SaveResult reports the outcome of an asynchronous save.
type SaveResult struct {
	RequestID uuid.UUID
	Note      Note
	Err       error
}

// SaveNoteAsync saves n on a tracked goroutine. The returned channel receives
// exactly one result and is then closed; on a failed save the host can retry
// with the same note.
func (s *Service) SaveNoteAsync(ctx context.Context, n Note) (uuid.UUID, <-chan SaveResult) {
	id := uuid.New()
	out := make(chan SaveResult, 1)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		res := SaveResult{RequestID: id}
		defer func() {
			if r := recover(); r != nil {
				res = SaveResult{RequestID: id, Err: fmt.Errorf("save %s: panic: %v", id, r)}
				if s.logger != nil {
					s.logger.Error("async save panic", "request", id, "id", n.ID, "error", res.Err)
				}
			}
			out <- res
			close(out)
		}()

		res.Note, res.Err = s.SaveNote(ctx, n)
		if res.Err != nil && s.logger != nil {
			s.logger.Warn("async save failed", "request", id, "id", n.ID, "error", res.Err)
		}
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.logger != nil {
			s.logger.Error("async save crashed", "request", id, "error", fmt.Errorf("save %s: %w", id, err))
		}
	}))

	return id, out
}
