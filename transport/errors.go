/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package transport

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrInvalidArgument    = errors.New("acp(transport): invalid argument")
	ErrNotFound           = errors.New("acp(transport): not found")
	ErrAlreadyExists      = errors.New("acp(transport): already exists")
	ErrDeadlineExceeded   = errors.New("acp(transport): deadline exceeded")
	ErrPermissionDenied   = errors.New("acp(transport): permission denied")
	ErrFailedPrecondition = errors.New("acp(transport): failed precondition")
	ErrUnimplemented      = errors.New("acp(transport): unimplemented")
	ErrUnavailable        = errors.New("acp(transport): unavailable")
	ErrInternal           = errors.New("acp(transport): internal server error")

	// ErrNotSupported is returned by stubs for methods the kind does not
	// serve (Put on read-only kinds, Create/Delete on non-creatable kinds).
	ErrNotSupported = errors.New("acp(transport): method not supported by kind")
)

// RPCError is a failed call with its gRPC code mapped to a sentinel error.
type RPCError struct {
	Code    codes.Code
	Method  string
	Details string
	// Kind is one of the sentinel errors of this package, or
	// context.Canceled.
	Kind error
}

func (e *RPCError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%v (%s)", e.Kind, e.Method)
	}
	return fmt.Sprintf("%v (%s): %s", e.Kind, e.Method, e.Details)
}

func (e *RPCError) Unwrap() error { return e.Kind }

// GRPCStatus lets status.FromError and status.Code see the original code.
func (e *RPCError) GRPCStatus() *status.Status {
	return status.New(e.Code, e.Details)
}

var codeKinds = map[codes.Code]error{
	codes.Canceled:           context.Canceled,
	codes.InvalidArgument:    ErrInvalidArgument,
	codes.OutOfRange:         ErrInvalidArgument,
	codes.NotFound:           ErrNotFound,
	codes.AlreadyExists:      ErrAlreadyExists,
	codes.DeadlineExceeded:   ErrDeadlineExceeded,
	codes.PermissionDenied:   ErrPermissionDenied,
	codes.Unauthenticated:    ErrPermissionDenied,
	codes.FailedPrecondition: ErrFailedPrecondition,
	codes.Aborted:            ErrFailedPrecondition,
	codes.ResourceExhausted:  ErrUnavailable,
	codes.Unimplemented:      ErrUnimplemented,
	codes.Unavailable:        ErrUnavailable,
	codes.Internal:           ErrInternal,
	codes.Unknown:            ErrInternal,
	codes.DataLoss:           ErrInternal,
}

// WrapError converts an error returned by a call of method into an
// *RPCError. Errors without a gRPC status are returned unchanged.
func WrapError(method string, err error) error {
	if err == nil {
		return nil
	}
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return err
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	kind, ok := codeKinds[st.Code()]
	if !ok {
		kind = ErrInternal
	}
	return &RPCError{
		Code:    st.Code(),
		Method:  method,
		Details: firstLine(st.Message()),
		Kind:    kind,
	}
}

// firstLine trims server stack traces appended to the status message.
func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}
