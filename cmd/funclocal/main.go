// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/funclocal/funclocal/emulator/api"
	"github.com/funclocal/funclocal/emulator/env"
	"github.com/funclocal/funclocal/emulator/logging"
	"github.com/funclocal/funclocal/emulator/manifest"
	"github.com/funclocal/funclocal/emulator/registry"
)

const (
	defaultHost     = "0.0.0.0"
	defaultManifest = "serverless.yml"
	jsonManifest    = "serverless.json"
)

type options struct {
	Manifest       string `long:"manifest" short:"m" default:"serverless.yml" description:"path to the service manifest"`
	Port           int    `long:"port" short:"p" default:"9001" description:"listening port"`
	LogLevel       string `long:"log-level" default:"info" description:"log level"`
	LogFile        string `long:"log-file" description:"write logs to a size-rotated file instead of stderr"`
	EnforceTimeout bool   `long:"enforce-timeout" description:"fail invocations that exceed the function timeout"`
}

func main() {
	opts := getCLIArgs()
	logging.SetLogLevel(opts.LogLevel)
	if opts.LogFile != "" {
		logging.SetRotatingFileOutput(opts.LogFile)
	}

	m, err := manifest.Load(resolveManifestPath(opts.Manifest))
	if err != nil {
		log.WithError(err).Fatal("Failed to load service manifest")
	}

	settings := env.NewSettings(m)
	settings.Export()

	cwd, err := os.Getwd()
	if err != nil {
		log.WithError(err).Fatal("Cannot determine working directory")
	}

	reg := registry.Build(m, registry.DefaultResolvers(cwd)...)
	for _, binding := range reg.Bindings() {
		env.ExportFunctionEnvironment(m.Functions[binding.Name])
	}

	router := api.NewRouter(reg, api.Config{
		Timeout:        m.Timeout(),
		EnforceTimeout: opts.EnforceTimeout,
	})

	log.Infof("Starting service '%s' (stage=%s)", m.Service, settings.Stage)
	startHTTPServer(fmt.Sprintf("%s:%d", defaultHost, opts.Port), router, reg.Count())
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}

// resolveManifestPath falls back from the default YAML manifest to its
// JSON sibling when only the latter exists. An explicit --manifest path is
// used as given.
func resolveManifestPath(path string) string {
	if path != defaultManifest {
		return path
	}
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if _, err := os.Stat(jsonManifest); err == nil {
		return jsonManifest
	}
	return path
}
