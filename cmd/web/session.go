package main

import (
	"net/http"
	"sync"

	"github.com/cropsage/cropsage/internal/advisor"
	"github.com/cropsage/cropsage/internal/detect"
	"github.com/google/uuid"
)

const advisorTokenSessionKey = "advisorToken"

// advisorState is the server-side state for one analysis flow. Detection is
// set after the upload; session after the details form. The mutex serializes
// dispatches because the conversational channel is not safe for concurrent
// use.
type advisorState struct {
	mu         sync.Mutex
	detection  detect.Result
	assessment string
	session    *advisor.Session
}

// sessionRegistry maps session cookie tokens to live advisor state. The
// conversational channel cannot be serialized into the cookie-backed session
// store, so it lives here for the lifetime of the process.
type sessionRegistry struct {
	mu     sync.Mutex
	states map[string]*advisorState
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		states: make(map[string]*advisorState),
	}
}

// add registers the state under a fresh token and returns the token.
func (r *sessionRegistry) add(state *advisorState) string {
	token := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[token] = state
	return token
}

func (r *sessionRegistry) get(token string) (*advisorState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	state, ok := r.states[token]
	return state, ok
}

func (r *sessionRegistry) remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, token)
}

// advisorState looks up the live state for the request's session, or nil when
// the visitor has not uploaded an image yet.
func (app *application) advisorState(r *http.Request) *advisorState {
	token := app.sessionManager.GetString(r.Context(), advisorTokenSessionKey)
	if token == "" {
		return nil
	}
	state, ok := app.sessions.get(token)
	if !ok {
		return nil
	}
	return state
}
