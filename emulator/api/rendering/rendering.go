// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package rendering writes invocation API responses.
package rendering

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"
)

const (
	// ErrorTypeInvalidRequestContent error type for unparseable request bodies
	ErrorTypeInvalidRequestContent = "InvalidRequestContent"
	// ErrorTypeInternalServerError error type for internal server error
	ErrorTypeInternalServerError = "InternalServerError"
)

// ErrorResponse is the JSON error payload shape.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

// RenderInvocationResult writes the handler's result as a 200 response.
// Structured results render as JSON, strings as plain text, nil as an
// empty body.
func RenderInvocationResult(writer http.ResponseWriter, request *http.Request, result interface{}) {
	switch v := result.(type) {
	case nil:
		writer.WriteHeader(http.StatusOK)
	case string:
		render.Status(request, http.StatusOK)
		render.PlainText(writer, request, v)
	default:
		render.Status(request, http.StatusOK)
		render.JSON(writer, request, result)
	}
}

// RenderInvocationError writes the uniform invocation failure response:
// 500 with an empty body. Callers are not told whether the handler threw,
// rejected, or passed an error to its callback.
func RenderInvocationError(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusInternalServerError)
}

// RenderInvalidRequestContent renders 400 with the parse failure cause.
func RenderInvalidRequestContent(writer http.ResponseWriter, request *http.Request, err error) {
	render.Status(request, http.StatusBadRequest)
	render.JSON(writer, request, ErrorResponse{
		ErrorMessage: err.Error(),
		ErrorType:    ErrorTypeInvalidRequestContent,
	})
}

// RenderInternalServerError renders 500 with a structured error payload.
func RenderInternalServerError(writer http.ResponseWriter, request *http.Request) {
	render.Status(request, http.StatusInternalServerError)
	render.JSON(writer, request, ErrorResponse{
		ErrorMessage: "Internal Server Error",
		ErrorType:    ErrorTypeInternalServerError,
	})
	log.WithField("ErrorType", ErrorTypeInternalServerError).Error("Internal Server Error")
}
