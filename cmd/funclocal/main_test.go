// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestResolveManifestPathPrefersYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultManifest), []byte("service: svc"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonManifest), []byte("{}"), 0644))
	chdir(t, dir)

	assert.Equal(t, defaultManifest, resolveManifestPath(defaultManifest))
}

func TestResolveManifestPathFallsBackToJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonManifest), []byte("{}"), 0644))
	chdir(t, dir)

	assert.Equal(t, jsonManifest, resolveManifestPath(defaultManifest))
}

func TestResolveManifestPathKeepsExplicitPath(t *testing.T) {
	chdir(t, t.TempDir())

	assert.Equal(t, "custom/stack.yml", resolveManifestPath("custom/stack.yml"))
}
