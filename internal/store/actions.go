// Package store is a single state tree updated by pure reducers in
// response to dispatched actions, with thunks for work that needs network
// round-trips before follow-up dispatches.
package store

import "fullstack/internal/domain/models"

// Action is the closed set of state transitions. Each slice of the tree
// reacts only to its own variants.
type Action interface {
	isAction()
}

type SetAnecdotes struct {
	Anecdotes []models.Anecdote
}

type AppendAnecdote struct {
	Anecdote models.Anecdote
}

// ReplaceAnecdote swaps the entry with a matching id, used after a vote
// round-trip confirms the new count.
type ReplaceAnecdote struct {
	Anecdote models.Anecdote
}

type SetFilter struct {
	Filter string
}

type SetNotification struct {
	Message string
	Type    string
}

type ClearNotification struct{}

func (SetAnecdotes) isAction()      {}
func (AppendAnecdote) isAction()    {}
func (ReplaceAnecdote) isAction()   {}
func (SetFilter) isAction()         {}
func (SetNotification) isAction()   {}
func (ClearNotification) isAction() {}
