// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package middleware carries the per-request pipeline stages that run
// before invocation dispatch: access logging and body normalization.
package middleware

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"

	chimiddleware "github.com/go-chi/chi/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/funclocal/funclocal/emulator/api/rendering"
)

type contextKey int

const eventContextKey contextKey = iota

// EventFromRequest returns the normalized invocation event stowed by
// NormalizeBody.
func EventFromRequest(request *http.Request) interface{} {
	return request.Context().Value(eventContextKey)
}

// RequestWithEvent stows a normalized event on the request.
func RequestWithEvent(request *http.Request, event interface{}) *http.Request {
	return request.WithContext(context.WithValue(request.Context(), eventContextKey, event))
}

// NormalizeBody guarantees a structured invocation event before the route
// handler runs, even when the client sends no Content-Type header (the
// cloud CLI is known to omit it). The request stream is consumed exactly
// once; no later stage may read it again.
func NormalizeBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, err := ioutil.ReadAll(request.Body)
		if err != nil {
			log.WithError(err).Error("Failed to read invocation body")
			rendering.RenderInternalServerError(writer, request)
			return
		}

		event, err := normalizeEvent(request.Header.Get("Content-Type"), body)
		if err != nil {
			log.WithError(err).Error("Cannot parse invocation body")
			rendering.RenderInvalidRequestContent(writer, request, err)
			return
		}

		next.ServeHTTP(writer, RequestWithEvent(request, event))
	})
}

func normalizeEvent(contentType string, body []byte) (interface{}, error) {
	// A declared parseable content type with a non-empty structured body
	// needs no further work.
	if contentType != "" && parseableContentType(contentType) {
		if event, ok := parsedNonEmpty(body); ok {
			return event, nil
		}
	}

	// No declared type, or nothing usable came out of it: fall back to the
	// raw buffer. A leading brace must parse as JSON or the request fails;
	// anything else (including an empty body) passes through as raw text.
	if len(body) > 0 && body[0] == '{' {
		var event interface{}
		if err := json.Unmarshal(body, &event); err != nil {
			return nil, err
		}
		return event, nil
	}
	return string(body), nil
}

func parseableContentType(contentType string) bool {
	return strings.Contains(contentType, "application/json") ||
		strings.Contains(contentType, "binary/octet-stream")
}

func parsedNonEmpty(body []byte) (interface{}, bool) {
	var event interface{}
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, false
	}
	switch v := event.(type) {
	case map[string]interface{}:
		return v, len(v) > 0
	case []interface{}:
		return v, len(v) > 0
	default:
		return v, v != nil
	}
}

// AccessLog logs every request and its response status.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		log.Debugf("invoke: -> %s %s %v", request.Method, request.URL, request.Header)
		ww := chimiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)
		next.ServeHTTP(ww, request)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		if status/100 != 2 {
			log.Errorf("invoke: <- %s %d %v", request.URL, status, writer.Header())
		} else {
			log.Debugf("invoke: <- %s %d %v", request.URL, status, writer.Header())
		}
	})
}
