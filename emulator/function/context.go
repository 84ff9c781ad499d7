// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package function

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

const arnFormat = "arn:aws:lambda:us-east-1:012345678912:function:%s"

// Context is the per-invocation context passed to handlers. It is created
// fresh for every request and never reused.
type Context struct {
	FunctionName       string
	RequestID          string
	InvokedFunctionARN string

	deadline time.Time
	ctx      context.Context
}

// NewContext returns an invocation context whose deadline is start+timeout,
// along with the cancel func releasing the embedded context resources.
func NewContext(functionName string, timeout time.Duration, start time.Time) (*Context, context.CancelFunc) {
	requestID := uuid.New().String()
	arn := fmt.Sprintf(arnFormat, functionName)
	deadline := start.Add(timeout)

	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	ctx = lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{
		AwsRequestID:       requestID,
		InvokedFunctionArn: arn,
	})

	return &Context{
		FunctionName:       functionName,
		RequestID:          requestID,
		InvokedFunctionARN: arn,
		deadline:           deadline,
		ctx:                ctx,
	}, cancel
}

// GetRemainingTimeInMillis reports milliseconds until the invocation
// deadline. It is recomputed on every call and may go negative once the
// deadline has passed; the engine itself never kills the invocation.
func (c *Context) GetRemainingTimeInMillis() int64 {
	return time.Until(c.deadline).Milliseconds()
}

// Deadline returns the absolute invocation deadline.
func (c *Context) Deadline() time.Time {
	return c.deadline
}

// Context exposes the deadline-carrying context.Context for handlers that
// pass it into SDK calls. It also carries lambdacontext values.
func (c *Context) Context() context.Context {
	return c.ctx
}

// Done is closed when the invocation deadline passes or the request is
// torn down.
func (c *Context) Done() <-chan struct{} {
	return c.ctx.Done()
}
