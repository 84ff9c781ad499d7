// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package handler carries the per-route HTTP handlers of the invocation API.
package handler

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/funclocal/funclocal/emulator/api/middleware"
	"github.com/funclocal/funclocal/emulator/api/rendering"
	"github.com/funclocal/funclocal/emulator/function"
	"github.com/funclocal/funclocal/emulator/invoke"
	"github.com/funclocal/funclocal/emulator/registry"
)

type invocationHandler struct {
	binding *registry.Binding
	timeout time.Duration
	arbiter *invoke.Arbiter
}

func (h *invocationHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	event := middleware.EventFromRequest(request)

	fctx, cancel := function.NewContext(h.binding.Name, h.timeout, time.Now())
	defer cancel()

	log.WithFields(log.Fields{
		"function":  h.binding.Name,
		"requestId": fctx.RequestID,
		"params":    event,
	}).Info("Invoking function")

	outcome := h.arbiter.Run(h.binding.Func, event, fctx)

	// Blocks forever for a handler that never completes, unless deadline
	// enforcement resolves the outcome.
	<-outcome.Done()

	if outcome.State() == invoke.Succeeded {
		log.WithFields(log.Fields{
			"function": h.binding.Name,
			"params":   event,
			"response": outcome.Value(),
		}).Info("Function invocation succeeded")
		rendering.RenderInvocationResult(writer, request, outcome.Value())
		return
	}

	log.WithError(outcome.Err()).WithFields(log.Fields{
		"function": h.binding.Name,
		"params":   event,
	}).Error("Function invocation failed")
	rendering.RenderInvocationError(writer)
}

// NewInvocationHandler returns a new instance of http handler for serving
// /2015-03-31/functions/{functionName}/invocations for one bound function.
func NewInvocationHandler(binding *registry.Binding, timeout time.Duration, enforceDeadline bool) http.Handler {
	return &invocationHandler{
		binding: binding,
		timeout: timeout,
		arbiter: &invoke.Arbiter{EnforceDeadline: enforceDeadline},
	}
}
