// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package invoke

import (
	"errors"
	"fmt"
	"sync"

	"github.com/funclocal/funclocal/emulator/function"
)

// ErrDeadlineExceeded resolves an invocation that outlives its deadline
// when deadline enforcement is enabled.
var ErrDeadlineExceeded = errors.New("invocation deadline exceeded")

// Arbiter runs handlers and resolves their completion signals into one
// Outcome. The zero value does not enforce the deadline: an invocation
// that never completes stays pending forever.
type Arbiter struct {
	// EnforceDeadline fails the outcome once the invocation context's
	// deadline passes instead of hanging.
	EnforceDeadline bool
}

// Run invokes fn and returns its outcome cell. The outcome may still be
// pending on return; callers wait on Done.
//
// Classification of the returned value ("is it a Thenable?") happens once,
// right after the call returns, and is latched before any callback effect
// may land: a callback fired during the call records its arguments
// immediately but applies them only after classification, so a handler
// that both calls its callback and returns a promise cannot double-resolve.
func (a *Arbiter) Run(fn function.Func, event interface{}, fctx *function.Context) *Outcome {
	out := NewOutcome()
	classified := make(chan struct{})
	promiseOwned := false // written before classified closes, read after

	var callbackOnce sync.Once
	callback := func(err error, result interface{}) {
		// First call wins; its effect is deferred to its own turn.
		callbackOnce.Do(func() {
			go func() {
				<-classified
				if promiseOwned {
					return
				}
				if err != nil {
					out.Fail(err)
					return
				}
				out.Succeed(result)
			}()
		})
	}

	returned, panicErr := call(fn, event, fctx, callback)
	if panicErr != nil {
		out.Fail(panicErr)
		close(classified)
		return out
	}

	if thenable, ok := returned.(function.Thenable); ok {
		promiseOwned = true
		close(classified)
		thenable.Then(
			func(value interface{}) { out.Succeed(value) },
			func(err error) { out.Fail(err) },
		)
	} else {
		close(classified)
	}

	if a.EnforceDeadline {
		go func() {
			select {
			case <-fctx.Done():
				out.Fail(ErrDeadlineExceeded)
			case <-out.Done():
			}
		}()
	}

	return out
}

// call recovers a synchronous panic at the invocation boundary and turns
// it into an error.
func call(fn function.Func, event interface{}, fctx *function.Context, callback function.Callback) (returned interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return fn(event, fctx, callback), nil
}
