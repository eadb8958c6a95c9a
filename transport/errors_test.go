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

package transport_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"dirpx.dev/acp/transport"
)

func TestWrapError_Codes(t *testing.T) {
	cases := []struct {
		code codes.Code
		want error
	}{
		{codes.InvalidArgument, transport.ErrInvalidArgument},
		{codes.NotFound, transport.ErrNotFound},
		{codes.AlreadyExists, transport.ErrAlreadyExists},
		{codes.DeadlineExceeded, transport.ErrDeadlineExceeded},
		{codes.PermissionDenied, transport.ErrPermissionDenied},
		{codes.Unauthenticated, transport.ErrPermissionDenied},
		{codes.FailedPrecondition, transport.ErrFailedPrecondition},
		{codes.Aborted, transport.ErrFailedPrecondition},
		{codes.Unimplemented, transport.ErrUnimplemented},
		{codes.Unavailable, transport.ErrUnavailable},
		{codes.Internal, transport.ErrInternal},
		{codes.Unknown, transport.ErrInternal},
		{codes.Canceled, context.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.code.String(), func(t *testing.T) {
			err := transport.WrapError("/svc/M", status.Error(tc.code, "boom"))
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.code, status.Code(err))

			var rpcErr *transport.RPCError
			require.ErrorAs(t, err, &rpcErr)
			assert.Equal(t, "/svc/M", rpcErr.Method)
			assert.Equal(t, "boom", rpcErr.Details)
		})
	}
}

func TestWrapError_FirstLine(t *testing.T) {
	err := transport.WrapError("/svc/M", status.Error(codes.Internal, "  crashed \nTraceback:\n  frame"))
	assert.Equal(t, "acp(transport): internal server error (/svc/M): crashed", err.Error())
}

func TestWrapError_Passthrough(t *testing.T) {
	assert.NoError(t, transport.WrapError("/svc/M", nil))

	plain := errors.New("plain")
	assert.Same(t, plain, transport.WrapError("/svc/M", plain))

	wrapped := transport.WrapError("/svc/A", status.Error(codes.NotFound, "x"))
	assert.Same(t, wrapped, transport.WrapError("/svc/B", wrapped))
}
