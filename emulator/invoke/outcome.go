// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package invoke bridges the three handler completion protocols
// (synchronous panic, callback, promise settlement) into exactly one
// terminal outcome per invocation.
package invoke

import "sync"

// State is the resolution state of an invocation outcome.
type State int

const (
	// Pending means no completion signal has resolved the invocation yet.
	Pending State = iota
	// Succeeded is terminal; the invocation produced a result value.
	Succeeded
	// Failed is terminal; the invocation produced an error.
	Failed
)

// Outcome is a single-assignment result cell. The first Succeed or Fail
// wins; every later write is a silent no-op.
type Outcome struct {
	mu    sync.Mutex
	state State
	value interface{}
	err   error
	done  chan struct{}
}

// NewOutcome returns a pending outcome.
func NewOutcome() *Outcome {
	return &Outcome{done: make(chan struct{})}
}

// Succeed resolves the outcome with a result value. Reports whether this
// call performed the terminal transition.
func (o *Outcome) Succeed(value interface{}) bool {
	return o.resolve(Succeeded, value, nil)
}

// Fail resolves the outcome with an error. Reports whether this call
// performed the terminal transition.
func (o *Outcome) Fail(err error) bool {
	return o.resolve(Failed, nil, err)
}

func (o *Outcome) resolve(state State, value interface{}, err error) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != Pending {
		return false
	}
	o.state = state
	o.value = value
	o.err = err
	close(o.done)
	return true
}

// Done is closed once the outcome is resolved. It stays open forever for
// an invocation that never completes.
func (o *Outcome) Done() <-chan struct{} {
	return o.done
}

// State returns the current resolution state.
func (o *Outcome) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Value returns the success payload; only meaningful once State is Succeeded.
func (o *Outcome) Value() interface{} {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Err returns the failure cause; only meaningful once State is Failed.
func (o *Outcome) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
