package store

import "fullstack/internal/domain/models"

// State is the whole tree. Reducers never mutate it in place; every
// transition builds a fresh value.
type State struct {
	Anecdotes    []models.Anecdote
	Filter       string
	Notification models.Notification
}

func rootReducer(state State, action Action) State {
	return State{
		Anecdotes:    anecdotesReducer(state.Anecdotes, action),
		Filter:       filterReducer(state.Filter, action),
		Notification: notificationReducer(state.Notification, action),
	}
}

func anecdotesReducer(state []models.Anecdote, action Action) []models.Anecdote {
	switch a := action.(type) {
	case SetAnecdotes:
		next := make([]models.Anecdote, len(a.Anecdotes))
		copy(next, a.Anecdotes)
		return next
	case AppendAnecdote:
		next := make([]models.Anecdote, len(state), len(state)+1)
		copy(next, state)
		return append(next, a.Anecdote)
	case ReplaceAnecdote:
		next := make([]models.Anecdote, len(state))
		for i, existing := range state {
			if existing.ID == a.Anecdote.ID {
				next[i] = a.Anecdote
			} else {
				next[i] = existing
			}
		}
		return next
	default:
		return state
	}
}

func filterReducer(state string, action Action) string {
	if a, ok := action.(SetFilter); ok {
		return a.Filter
	}
	return state
}

func notificationReducer(state models.Notification, action Action) models.Notification {
	switch a := action.(type) {
	case SetNotification:
		return models.Notification{Message: a.Message, Type: a.Type}
	case ClearNotification:
		return models.Notification{}
	default:
		return state
	}
}

// VisibleAnecdotes applies the filter slice to the anecdote slice, the
// way the list view selects from the tree.
func VisibleAnecdotes(state State) []models.Anecdote {
	if state.Filter == "" {
		visible := make([]models.Anecdote, len(state.Anecdotes))
		copy(visible, state.Anecdotes)
		return visible
	}
	visible := []models.Anecdote{}
	for _, a := range state.Anecdotes {
		if containsFold(a.Content, state.Filter) {
			visible = append(visible, a)
		}
	}
	return visible
}
