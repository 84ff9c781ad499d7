// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package api binds one HTTP route per registered function, mimicking the
// cloud provider's invocation path.
package api

import (
	"time"

	"github.com/go-chi/chi"

	"github.com/funclocal/funclocal/emulator/api/handler"
	"github.com/funclocal/funclocal/emulator/api/middleware"
	"github.com/funclocal/funclocal/emulator/registry"
)

// Config carries the invocation settings shared by all routes.
type Config struct {
	// Timeout is the advisory per-invocation timeout from the manifest.
	Timeout time.Duration
	// EnforceTimeout turns the advisory timeout into a hard failure.
	EnforceTimeout bool
}

// NewRouter returns a chi router with one POST invocation route per bound
// function. Functions whose resolution failed at startup have no route at
// all; requests to them get chi's default 404.
func NewRouter(reg *registry.Registry, cfg Config) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.AccessLog)

	router.Get("/ping", handler.NewPingHandler().ServeHTTP)

	for _, binding := range reg.Bindings() {
		router.With(middleware.NormalizeBody).
			Post(InvocationPath(binding.Name),
				handler.NewInvocationHandler(binding, cfg.Timeout, cfg.EnforceTimeout).ServeHTTP)
	}

	return router
}

// InvocationPath returns the invocation route for a function name.
func InvocationPath(functionName string) string {
	return "/2015-03-31/functions/" + functionName + "/invocations"
}
