// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package registry resolves manifest function declarations to callable
// handler implementations. Resolution failures are per-entry: a function
// whose handler cannot be loaded is logged and skipped, never fatal.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/funclocal/funclocal/emulator/function"
	"github.com/funclocal/funclocal/emulator/manifest"
)

var (
	// ErrMalformedHandler is returned for a handler string without a
	// "<module-path>.<export-name>" shape.
	ErrMalformedHandler = errors.New("handler must be of the form <module-path>.<export-name>")
	// ErrModuleNotFound is returned when the handler module cannot be loaded.
	ErrModuleNotFound = errors.New("module not found")
	// ErrExportMissing is returned when the module has no such export.
	ErrExportMissing = errors.New("export missing")
	// ErrNotCallable is returned when the export does not satisfy the
	// handler calling convention.
	ErrNotCallable = errors.New("export is not a callable handler")
)

// Resolver loads the named export of a handler module.
type Resolver interface {
	Resolve(modulePath, exportName string) (function.Func, error)
}

// Binding associates a function name with its resolved implementation.
type Binding struct {
	Name    string
	Handler string
	Func    function.Func
}

// Registry is the bound-handler table. It is built once at startup and
// read-only afterwards, so concurrent route lookups need no locking.
type Registry struct {
	bindings map[string]*Binding
}

// Build walks the manifest's function mapping and attempts to bind every
// entry through the resolver chain, first match wins. Each successful bind
// logs a discovery event; each failure logs exactly one discovery-failure
// event and leaves the function out of the table.
func Build(m *manifest.Manifest, resolvers ...Resolver) *Registry {
	reg := &Registry{bindings: map[string]*Binding{}}

	for name, fn := range m.Functions {
		impl, err := resolve(fn.Handler, resolvers)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"function": name,
				"handler":  fn.Handler,
			}).Warn("Cannot bind function handler")
			continue
		}

		log.WithFields(log.Fields{
			"function": name,
			"handler":  fn.Handler,
		}).Info("Found function handler")

		reg.bindings[name] = &Binding{Name: name, Handler: fn.Handler, Func: impl}
	}

	return reg
}

func resolve(handler string, resolvers []Resolver) (function.Func, error) {
	modulePath, exportName, err := SplitHandler(handler)
	if err != nil {
		return nil, err
	}

	var lastErr error = ErrModuleNotFound
	for _, r := range resolvers {
		impl, err := r.Resolve(modulePath, exportName)
		if err == nil {
			return impl, nil
		}
		lastErr = err
		// A later resolver may still find the module.
		if !errors.Is(err, ErrModuleNotFound) {
			break
		}
	}
	return nil, lastErr
}

// SplitHandler splits "<module-path>.<export-name>" on the last dot, so
// module paths like "./handlers" keep their leading dot.
func SplitHandler(handler string) (modulePath, exportName string, err error) {
	i := strings.LastIndex(handler, ".")
	if i <= 0 || i == len(handler)-1 {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedHandler, handler)
	}
	return handler[:i], handler[i+1:], nil
}

// Lookup returns the binding for a function name.
func (r *Registry) Lookup(name string) (*Binding, bool) {
	b, ok := r.bindings[name]
	return b, ok
}

// Bindings returns all bindings sorted by function name, for deterministic
// route registration and startup reporting.
func (r *Registry) Bindings() []*Binding {
	out := make([]*Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Count reports how many functions were successfully bound.
func (r *Registry) Count() int {
	return len(r.bindings)
}
