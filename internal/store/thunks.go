package store

import (
	"context"
	"time"

	"fullstack/internal/client"
	"fullstack/internal/domain/models"
)

// Thunk is a deferred unit of work that may hit the network and dispatch
// follow-up actions when done.
type Thunk func(ctx context.Context, s *Store) error

// RunThunk executes t against the store. Callers wanting the usual fire
// and forget behavior run it in a goroutine; the pre-I/O state stays
// current until the thunk's dispatches land.
func (s *Store) RunThunk(ctx context.Context, t Thunk) error {
	return t(ctx, s)
}

// InitializeAnecdotes fetches the full list and replaces the slice.
func InitializeAnecdotes(api *client.Client) Thunk {
	return func(ctx context.Context, s *Store) error {
		anecdotes, err := api.GetAnecdotes(ctx)
		if err != nil {
			return err
		}
		s.Dispatch(SetAnecdotes{Anecdotes: anecdotes})
		return nil
	}
}

// CreateAnecdote persists a new anecdote and appends the server-confirmed
// entity.
func CreateAnecdote(api *client.Client, content string) Thunk {
	return func(ctx context.Context, s *Store) error {
		created, err := api.CreateAnecdote(ctx, content)
		if err != nil {
			return err
		}
		s.Dispatch(AppendAnecdote{Anecdote: *created})
		return nil
	}
}

// VoteAnecdote increments votes by exactly one through a full-replace
// update and swaps in the server-confirmed copy. Concurrent voters can
// still lose an increment; last write wins.
func VoteAnecdote(api *client.Client, anecdote models.Anecdote) Thunk {
	return func(ctx context.Context, s *Store) error {
		voted := anecdote
		voted.Votes++
		saved, err := api.UpdateAnecdote(ctx, anecdote.ID, voted)
		if err != nil {
			return err
		}
		s.Dispatch(ReplaceAnecdote{Anecdote: *saved})
		return nil
	}
}

// Notify shows message for d and self-clears, cancelling any prior
// pending clear.
func Notify(message, typ string, d time.Duration) Thunk {
	return func(ctx context.Context, s *Store) error {
		s.SetTimedNotification(message, typ, d)
		return nil
	}
}
