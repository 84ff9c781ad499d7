// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package logging configures process-wide log output.
package logging

import (
	"io"
	"log"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// SetLogLevel configures the logrus level from its string name.
func SetLogLevel(logLevel string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set log level. Valid log levels are:", logrus.AllLevels)
	}
	logrus.SetLevel(level)
}

// SetOutput configures logging output for standard loggers.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
	logrus.SetOutput(w)
}

// SetRotatingFileOutput routes all log output into a size-rotated file.
func SetRotatingFileOutput(path string) {
	SetOutput(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 5,
		MaxAge:     14, // days
	})
}
