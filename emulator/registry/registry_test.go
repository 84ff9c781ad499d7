// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funclocal/funclocal/emulator/function"
	"github.com/funclocal/funclocal/emulator/manifest"
)

func echoHandler(event interface{}, ctx *function.Context, cb function.Callback) interface{} {
	cb(nil, event)
	return nil
}

func testManifest(handlers map[string]string) *manifest.Manifest {
	functions := map[string]manifest.Function{}
	for name, handler := range handlers {
		functions[name] = manifest.Function{Handler: handler}
	}
	return &manifest.Manifest{Service: "svc", Functions: functions}
}

func TestBuildBindsResolvableFunctions(t *testing.T) {
	static := NewStaticResolver()
	static.Register("handlers", "createKey", echoHandler)
	static.Register("handlers", "listKeys", function.Func(echoHandler))

	reg := Build(testManifest(map[string]string{
		"createKey": "handlers.createKey",
		"listKeys":  "handlers.listKeys",
	}), static)

	assert.Equal(t, 2, reg.Count())
	b, ok := reg.Lookup("createKey")
	require.True(t, ok)
	assert.Equal(t, "createKey", b.Name)
	assert.Equal(t, "handlers.createKey", b.Handler)
	assert.NotNil(t, b.Func)
}

func TestBuildSkipsUnresolvableFunctionsWithoutAffectingOthers(t *testing.T) {
	static := NewStaticResolver()
	static.Register("handlers", "good", echoHandler)
	static.Register("handlers", "notCallable", "just a string")

	hook := logtest.NewGlobal()
	defer hook.Reset()

	reg := Build(testManifest(map[string]string{
		"good":          "handlers.good",
		"missingModule": "elsewhere.fn",
		"missingExport": "handlers.nope",
		"notCallable":   "handlers.notCallable",
		"malformed":     "nodots",
	}), static)

	assert.Equal(t, 1, reg.Count())
	_, ok := reg.Lookup("good")
	assert.True(t, ok)

	failures := 0
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			failures++
		}
	}
	assert.Equal(t, 4, failures, "one discovery-failure event per unresolvable function")
}

func TestBindingsAreSortedByName(t *testing.T) {
	static := NewStaticResolver()
	static.Register("handlers", "b", echoHandler)
	static.Register("handlers", "a", echoHandler)
	static.Register("handlers", "c", echoHandler)

	reg := Build(testManifest(map[string]string{
		"b": "handlers.b",
		"a": "handlers.a",
		"c": "handlers.c",
	}), static)

	names := []string{}
	for _, b := range reg.Bindings() {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestSplitHandler(t *testing.T) {
	module, export, err := SplitHandler("./handlers.createKey")
	require.NoError(t, err)
	assert.Equal(t, "./handlers", module)
	assert.Equal(t, "createKey", export)

	module, export, err = SplitHandler("dist/functions.run")
	require.NoError(t, err)
	assert.Equal(t, "dist/functions", module)
	assert.Equal(t, "run", export)

	for _, bad := range []string{"nodots", "trailing.", ".leading", ""} {
		_, _, err := SplitHandler(bad)
		assert.ErrorIs(t, err, ErrMalformedHandler, "handler %q", bad)
	}
}

func TestStaticResolverFailureTaxonomy(t *testing.T) {
	static := NewStaticResolver()
	static.Register("handlers", "str", "not a function")

	_, err := static.Resolve("missing", "fn")
	assert.ErrorIs(t, err, ErrModuleNotFound)

	_, err = static.Resolve("handlers", "fn")
	assert.ErrorIs(t, err, ErrExportMissing)

	_, err = static.Resolve("handlers", "str")
	assert.ErrorIs(t, err, ErrNotCallable)
}

func TestPluginResolverMissingModule(t *testing.T) {
	resolver := NewPluginResolver(t.TempDir())
	_, err := resolver.Resolve("./handlers", "createKey")
	assert.ErrorIs(t, err, ErrModuleNotFound)
}

func TestResolverChainFallsThroughOnMissingModule(t *testing.T) {
	empty := NewStaticResolver()
	static := NewStaticResolver()
	static.Register("handlers", "fn", echoHandler)

	reg := Build(testManifest(map[string]string{"fn": "handlers.fn"}), empty, static)
	assert.Equal(t, 1, reg.Count())
}

func TestResolverChainStopsOnDefinitiveFailure(t *testing.T) {
	first := NewStaticResolver()
	first.Register("handlers", "fn", "not callable")
	second := NewStaticResolver()
	second.Register("handlers", "fn", echoHandler)

	// The module was found but its export is unusable; a later resolver
	// must not shadow that failure.
	reg := Build(testManifest(map[string]string{"fn": "handlers.fn"}), first, second)
	assert.Equal(t, 0, reg.Count())
}
