package bootstrap

import (
	"sync"
	"sync/atomic"

	"github.com/jrsteele09/uigen-server/auth"
)

// Action is the credential action an invocation performs.
type Action string

const (
	ActionSignIn Action = "signin"
	ActionSignUp Action = "signup"
)

// Invocation is a single run of the workflow. Each invocation owns its
// loading flag, so overlapping invocations never share state.
type Invocation struct {
	action  Action
	loading atomic.Bool
	done    chan struct{}

	mu          sync.RWMutex
	transitions []State
	decision    Decision
	result      auth.Result
	err         error
}

func newInvocation(action Action) *Invocation {
	inv := &Invocation{
		action:      action,
		done:        make(chan struct{}),
		transitions: []State{StateIdle},
	}
	inv.loading.Store(true)
	return inv
}

func (inv *Invocation) Action() Action {
	return inv.action
}

// Loading is true from the start of the invocation until it settles,
// whichever way it exits.
func (inv *Invocation) Loading() bool {
	return inv.loading.Load()
}

// State is the most recent state reached.
func (inv *Invocation) State() State {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.transitions[len(inv.transitions)-1]
}

// Transitions returns every state visited, in order.
func (inv *Invocation) Transitions() []State {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return append([]State(nil), inv.transitions...)
}

// Decision is the routing decision taken, or nil if none was reached.
func (inv *Invocation) Decision() Decision {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.decision
}

// Done is closed once the invocation has settled and Loading is false.
func (inv *Invocation) Done() <-chan struct{} {
	return inv.done
}

// Wait blocks until the invocation settles and returns the credential result
// together with any collaborator error.
func (inv *Invocation) Wait() (auth.Result, error) {
	<-inv.done
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.result, inv.err
}

func (inv *Invocation) enter(s State) {
	inv.mu.Lock()
	inv.transitions = append(inv.transitions, s)
	inv.mu.Unlock()
}

func (inv *Invocation) setDecision(d Decision) {
	inv.mu.Lock()
	inv.decision = d
	inv.mu.Unlock()
}

// settle records the outcome, clears the loading flag and releases waiters.
func (inv *Invocation) settle(result auth.Result, err error) {
	inv.mu.Lock()
	inv.result = result
	inv.err = err
	inv.mu.Unlock()

	inv.loading.Store(false)
	close(inv.done)
}
