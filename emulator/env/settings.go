// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package env holds the process-wide emulation settings: the local-mode
// marker and the stage name, constructed once at startup and exported into
// the environment handlers observe.
package env

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/funclocal/funclocal/emulator/manifest"
)

const (
	localModeEnvKey = "IS_LOCAL"
	stageEnvKey     = "STAGE"
)

// Settings is the immutable process-wide configuration derived from the
// manifest's provider block.
type Settings struct {
	Stage   string
	IsLocal bool
}

// NewSettings derives settings from a loaded manifest. The stage falls
// back to the manifest default when the provider block leaves it unset.
func NewSettings(m *manifest.Manifest) Settings {
	stage := m.Provider.Stage
	if stage == "" {
		stage = manifest.DefaultStage
	}
	return Settings{Stage: stage, IsLocal: true}
}

// Export publishes the settings into the process environment so handler
// code can detect local emulation and the active stage.
func (s Settings) Export() {
	if s.IsLocal {
		setenv(localModeEnvKey, "true")
	}
	setenv(stageEnvKey, s.Stage)
}

// ExportFunctionEnvironment publishes a function's environment block.
// Entries overwrite existing process variables, matching what the function
// would see when deployed.
func ExportFunctionEnvironment(fn manifest.Function) {
	for key, value := range fn.Environment {
		setenv(key, value)
	}
}

func setenv(key, value string) {
	if err := os.Setenv(key, value); err != nil {
		log.WithError(err).Warnf("Cannot set %s", key)
	}
}
