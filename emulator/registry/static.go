// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"sync"

	"github.com/funclocal/funclocal/emulator/function"
)

// StaticResolver is a compiled-in handler table. Statically linked builds
// register their handlers here instead of shipping plugin objects; tests
// use it to bind handlers without building plugins.
type StaticResolver struct {
	mu      sync.RWMutex
	modules map[string]map[string]interface{}
}

// NewStaticResolver returns an empty table.
func NewStaticResolver() *StaticResolver {
	return &StaticResolver{modules: map[string]map[string]interface{}{}}
}

// Register adds an export under a module path. Registering the same
// module/export pair again overwrites the previous value.
func (s *StaticResolver) Register(modulePath, exportName string, export interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	module, ok := s.modules[modulePath]
	if !ok {
		module = map[string]interface{}{}
		s.modules[modulePath] = module
	}
	module[exportName] = export
}

// Resolve implements Resolver against the compiled-in table.
func (s *StaticResolver) Resolve(modulePath, exportName string) (function.Func, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	module, ok := s.modules[modulePath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, modulePath)
	}
	export, ok := module[exportName]
	if !ok {
		return nil, fmt.Errorf("%w: %s in module %s", ErrExportMissing, exportName, modulePath)
	}
	return asFunc(export, modulePath, exportName)
}

// asFunc accepts both the named Func type and its underlying signature.
func asFunc(export interface{}, modulePath, exportName string) (function.Func, error) {
	switch fn := export.(type) {
	case function.Func:
		return fn, nil
	case func(interface{}, *function.Context, function.Callback) interface{}:
		return fn, nil
	default:
		return nil, fmt.Errorf("%w: %s.%s has type %T", ErrNotCallable, modulePath, exportName, export)
	}
}

// defaultStatic is the process-wide table populated by Register.
var defaultStatic = NewStaticResolver()

// Register adds an export to the process-wide static table.
func Register(modulePath, exportName string, export interface{}) {
	defaultStatic.Register(modulePath, exportName, export)
}

// DefaultResolvers is the startup resolver chain: the process-wide static
// table first, then the plugin loader rooted at dir.
func DefaultResolvers(dir string) []Resolver {
	return []Resolver{defaultStatic, NewPluginResolver(dir)}
}
