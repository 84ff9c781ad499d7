// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package manifest loads the declarative service description mapping
// function names to handler entry points and provider settings.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultTimeout is the provider timeout in seconds when unset.
	DefaultTimeout = 6
	// DefaultStage is the provider stage when unset.
	DefaultStage = "dev"
)

// ErrNoFunctions is returned for a manifest declaring no functions at all.
var ErrNoFunctions = errors.New("manifest declares no functions")

// Function is one entry of the functions mapping. Description, Role and
// Environment are passed through untouched.
type Function struct {
	Handler     string            `yaml:"handler"`
	Description string            `yaml:"description,omitempty"`
	Role        string            `yaml:"role,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

// Provider carries the provider block settings relevant to invocation.
type Provider struct {
	Stage   string `yaml:"stage,omitempty"`
	Timeout int    `yaml:"timeout,omitempty"`
}

// Manifest is the service description. It is loaded once at startup and
// treated as immutable afterwards.
type Manifest struct {
	Service   string              `yaml:"service"`
	Provider  Provider            `yaml:"provider"`
	Functions map[string]Function `yaml:"functions"`
}

// Load reads and parses a manifest file. YAML and JSON are both accepted
// (JSON parses as a YAML subset). Defaults are applied after parsing.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read manifest %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes manifest bytes and applies defaults.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("cannot parse manifest: %w", err)
	}
	if len(m.Functions) == 0 {
		return nil, ErrNoFunctions
	}
	m.applyDefaults()
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Provider.Timeout <= 0 {
		m.Provider.Timeout = DefaultTimeout
	}
	if m.Provider.Stage == "" {
		m.Provider.Stage = DefaultStage
	}
}

// Timeout returns the provider timeout as a duration.
func (m *Manifest) Timeout() time.Duration {
	return time.Duration(m.Provider.Timeout) * time.Second
}
