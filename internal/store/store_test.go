package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fullstack/internal/client"
	"fullstack/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchNotifiesSubscribers(t *testing.T) {
	s := New()

	var mu sync.Mutex
	seen := []State{}
	unsubscribe := s.Subscribe(func(state State) {
		mu.Lock()
		seen = append(seen, state)
		mu.Unlock()
	})

	s.Dispatch(SetFilter{Filter: "a"})
	s.Dispatch(SetFilter{Filter: "b"})

	mu.Lock()
	require.Len(t, seen, 2)
	assert.Equal(t, "a", seen[0].Filter)
	assert.Equal(t, "b", seen[1].Filter)
	mu.Unlock()

	unsubscribe()
	s.Dispatch(SetFilter{Filter: "c"})
	mu.Lock()
	assert.Len(t, seen, 2)
	mu.Unlock()
	assert.Equal(t, "c", s.State().Filter)
}

func TestStateSnapshotIsDetached(t *testing.T) {
	s := New()
	s.Dispatch(SetAnecdotes{Anecdotes: []models.Anecdote{{ID: "1", Content: "x"}}})

	snap := s.State()
	snap.Anecdotes[0].Content = "mutated"

	assert.Equal(t, "x", s.State().Anecdotes[0].Content)
}

func TestTimedNotificationClears(t *testing.T) {
	s := New()

	s.SetTimedNotification("saved", "info", 50*time.Millisecond)
	assert.Equal(t, "saved", s.State().Notification.Message)

	assert.Eventually(t, func() bool {
		return s.State().Notification.Message == ""
	}, time.Second, 10*time.Millisecond)
}

// Even with a zero duration the message must be visible before the clear
// lands; if the timer were armed first it could fire ahead of the set and
// the message would never be cleared.
func TestTimedNotificationZeroDuration(t *testing.T) {
	s := New()

	for i := 0; i < 50; i++ {
		s.SetTimedNotification("saved", "info", 0)
		assert.Eventually(t, func() bool {
			return s.State().Notification.Message == ""
		}, time.Second, time.Millisecond)
	}
}

// A second notification inside the first one's window must cancel the
// pending clear: "B" stays visible for its full duration and exactly one
// clear lands.
func TestTimedNotificationRace(t *testing.T) {
	s := New()

	var mu sync.Mutex
	clears := 0
	messages := []string{}
	s.Subscribe(func(state State) {
		mu.Lock()
		defer mu.Unlock()
		messages = append(messages, state.Notification.Message)
		if state.Notification.Message == "" {
			clears++
		}
	})

	s.SetTimedNotification("A", "info", 80*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	s.SetTimedNotification("B", "info", 120*time.Millisecond)

	// were A's timer still pending, B would vanish around the 80ms mark
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "B", s.State().Notification.Message)

	assert.Eventually(t, func() bool {
		return s.State().Notification.Message == ""
	}, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, clears)
	assert.Contains(t, messages, "A")
	assert.Contains(t, messages, "B")
}

func anecdoteTestServer(t *testing.T) (*httptest.Server, *[]models.Anecdote) {
	t.Helper()
	anecdotes := &[]models.Anecdote{
		{ID: "a1", Content: "If it hurts, do it more often", Votes: 0},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/anecdotes", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(*anecdotes)
	})
	mux.HandleFunc("POST /api/anecdotes", func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateAnecdoteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		created := models.Anecdote{ID: "a2", Content: req.Content}
		*anecdotes = append(*anecdotes, created)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(created)
	})
	mux.HandleFunc("PUT /api/anecdotes/{id}", func(w http.ResponseWriter, r *http.Request) {
		var req models.Anecdote
		_ = json.NewDecoder(r.Body).Decode(&req)
		req.ID = r.PathValue("id")
		for i := range *anecdotes {
			if (*anecdotes)[i].ID == req.ID {
				(*anecdotes)[i] = req
			}
		}
		_ = json.NewEncoder(w).Encode(req)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, anecdotes
}

func TestThunks(t *testing.T) {
	srv, _ := anecdoteTestServer(t)
	api := client.New(srv.URL)
	s := New()
	ctx := context.Background()

	require.NoError(t, s.RunThunk(ctx, InitializeAnecdotes(api)))
	require.Len(t, s.State().Anecdotes, 1)

	require.NoError(t, s.RunThunk(ctx, CreateAnecdote(api, "Premature optimization is the root of all evil")))
	require.Len(t, s.State().Anecdotes, 2)
	assert.Equal(t, "Premature optimization is the root of all evil", s.State().Anecdotes[1].Content)

	require.NoError(t, s.RunThunk(ctx, VoteAnecdote(api, s.State().Anecdotes[0])))
	state := s.State()
	assert.Equal(t, 1, state.Anecdotes[0].Votes)
	assert.Equal(t, 0, state.Anecdotes[1].Votes)

	require.NoError(t, s.RunThunk(ctx, Notify("you voted", "info", 40*time.Millisecond)))
	assert.Equal(t, "you voted", s.State().Notification.Message)
	assert.Eventually(t, func() bool {
		return s.State().Notification.Message == ""
	}, time.Second, 10*time.Millisecond)
}

func TestThunkFailureLeavesStateIntact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
	}))
	t.Cleanup(srv.Close)

	s := New()
	err := s.RunThunk(context.Background(), InitializeAnecdotes(client.New(srv.URL)))
	require.Error(t, err)
	assert.Empty(t, s.State().Anecdotes)
}
