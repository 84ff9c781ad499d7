// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package function

import "sync"

// Thenable is the promise-shaped completion protocol. A handler whose
// return value implements Thenable is classified as promise-based and its
// settlement owns the invocation outcome.
type Thenable interface {
	// Then subscribes to settlement. Exactly one of the two callbacks is
	// invoked, exactly once, regardless of whether settlement happened
	// before or after the subscription.
	Then(onFulfilled func(value interface{}), onRejected func(err error))
}

// Promise is a single-settlement Thenable. The zero value is usable.
type Promise struct {
	mu          sync.Mutex
	settled     bool
	value       interface{}
	err         error
	onFulfilled []func(interface{})
	onRejected  []func(error)
}

// NewPromise returns a promise and runs the executor, if any, with its
// resolve and reject functions. The executor runs synchronously; handlers
// wanting deferred settlement start their own goroutine inside it.
func NewPromise(executor func(resolve func(interface{}), reject func(error))) *Promise {
	p := &Promise{}
	if executor != nil {
		executor(p.Resolve, p.Reject)
	}
	return p
}

// Resolve fulfills the promise. Settlement is first-write-wins.
func (p *Promise) Resolve(value interface{}) {
	p.settle(value, nil)
}

// Reject fails the promise. Settlement is first-write-wins.
func (p *Promise) Reject(err error) {
	p.settle(nil, err)
}

func (p *Promise) settle(value interface{}, err error) {
	p.mu.Lock()
	if p.settled {
		p.mu.Unlock()
		return
	}
	p.settled = true
	p.value = value
	p.err = err
	fulfilled, rejected := p.onFulfilled, p.onRejected
	p.onFulfilled, p.onRejected = nil, nil
	p.mu.Unlock()

	if err != nil {
		for _, subscriber := range rejected {
			subscriber(err)
		}
		return
	}
	for _, subscriber := range fulfilled {
		subscriber(value)
	}
}

// Then subscribes to settlement. Subscribing after settlement delivers the
// stored result immediately. A nil receiver is inert: it never settles.
func (p *Promise) Then(onFulfilled func(value interface{}), onRejected func(err error)) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if !p.settled {
		if onFulfilled != nil {
			p.onFulfilled = append(p.onFulfilled, onFulfilled)
		}
		if onRejected != nil {
			p.onRejected = append(p.onRejected, onRejected)
		}
		p.mu.Unlock()
		return
	}
	value, err := p.value, p.err
	p.mu.Unlock()

	if err != nil {
		if onRejected != nil {
			onRejected(err)
		}
		return
	}
	if onFulfilled != nil {
		onFulfilled(value)
	}
}
