// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package function defines the calling convention for emulated handlers:
// the handler signature, the callback and promise completion protocols,
// and the per-invocation context.
package function

// Callback is the callback-style completion protocol. A handler completes
// by calling it with a non-nil error (failure) or a result value (success).
// Only the first call has any effect.
type Callback func(err error, result interface{})

// Func is the entry point signature every handler export must satisfy.
// A handler may complete in one of three ways: panic at call time,
// invoke the callback, or return a Thenable that eventually settles.
type Func func(event interface{}, ctx *Context, callback Callback) interface{}
