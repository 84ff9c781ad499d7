// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"strings"

	"github.com/funclocal/funclocal/emulator/function"
)

// PluginResolver loads handler modules as Go plugin objects. The manifest's
// module path is resolved relative to Dir and suffixed with ".so" when the
// extension is omitted, so "handlers.createKey" loads "handlers.so" and
// looks up its CreateKey-style export by the declared name.
type PluginResolver struct {
	Dir string
}

// NewPluginResolver returns a resolver rooted at dir; empty means the
// process working directory.
func NewPluginResolver(dir string) *PluginResolver {
	return &PluginResolver{Dir: dir}
}

// Resolve implements Resolver by opening the plugin and asserting the
// export against the handler calling convention.
func (p *PluginResolver) Resolve(modulePath, exportName string) (function.Func, error) {
	path := modulePath
	if !strings.HasSuffix(path, ".so") {
		path += ".so"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(p.Dir, path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, path)
	}

	module, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModuleNotFound, path, err)
	}

	symbol, err := module.Lookup(exportName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s in module %s", ErrExportMissing, exportName, path)
	}

	// Lookup returns a pointer for exported variables; unwrap it.
	if ptr, ok := symbol.(*function.Func); ok {
		return *ptr, nil
	}
	return asFunc(symbol, modulePath, exportName)
}
