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

// Package acptest runs an in-process server for tests.
//
// The server implements the object service of every served kind
// generically: objects are dynamic messages kept in an in-memory badger
// database, keyed by resource path. It assigns ids and versions, checks
// versions on Put and Delete, checks that links exist and stay within
// their model, and deletes objects together with their children.
//
//	srv := acptest.Start(t)
//	conn, err := srv.Dial()
package acptest

import (
	"context"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	acp "dirpx.dev/acp"
	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/config"
	"dirpx.dev/acp/transport"
)

const (
	// Address is the address reported in Config; the bufconn dialer
	// ignores it.
	Address = "localhost:50555"
	// ServerName is reported by GetServerInfo.
	ServerName = "acptest"
	// DefaultVersion is reported by GetServerInfo unless WithVersion is
	// given.
	DefaultVersion = "25.1"
)

// Server is an in-process server listening on an in-memory connection.
type Server struct {
	kinds      []*apis.Kind
	byLabel    map[string]*apis.Kind
	byService  map[string]*apis.Kind
	auto       map[string][]autoChild
	validators map[string][]Validator
	version    string
	log        *zap.Logger

	db  *badger.DB
	lis *bufconn.Listener
	gs  *grpc.Server

	// mu serializes all calls.
	mu    sync.Mutex
	seq   uint64
	calls map[string]int

	closeOnce sync.Once
	closeErr  error
}

// New starts a server. Without WithKinds it serves every kind registered
// in the global registry at the time of the call.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		auto:       make(map[string][]autoChild),
		validators: make(map[string][]Validator),
		version:    DefaultVersion,
		log:        zap.NewNop(),
		calls:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.kinds == nil {
		s.kinds = acp.Registry().Entries()
	}
	s.byLabel = make(map[string]*apis.Kind, len(s.kinds))
	s.byService = make(map[string]*apis.Kind, len(s.kinds))
	for _, k := range s.kinds {
		s.byLabel[k.Label] = k
		s.byService[k.Service()] = k
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	s.db = db
	s.lis = bufconn.Listen(1 << 20)
	s.gs = grpc.NewServer(grpc.UnknownServiceHandler(s.handle))
	go func() { _ = s.gs.Serve(s.lis) }()
	return s, nil
}

// Start is New for tests: it fails tb on error and closes the server on
// cleanup.
func Start(tb testing.TB, opts ...Option) *Server {
	tb.Helper()
	s, err := New(opts...)
	if err != nil {
		tb.Fatalf("acptest: start server: %v", err)
	}
	tb.Cleanup(func() { _ = s.Close() })
	return s
}

// Config returns a client configuration for the server.
func (s *Server) Config() apis.Config {
	return config.NewConfig(config.WithAddress(Address))
}

// DialOption routes connections to the in-memory listener.
func (s *Server) DialOption() grpc.DialOption {
	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return s.lis.DialContext(ctx)
	})
}

// Dial opens a client connection to the server.
func (s *Server) Dial(opts ...transport.Option) (*grpc.ClientConn, error) {
	opts = append(opts, transport.WithDialOptions(s.DialOption()))
	return transport.Dial(s.Config(), opts...)
}

// Calls returns how often the full method name was called.
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// Close stops the server and drops all objects.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.gs.Stop()
		_ = s.lis.Close()
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

func (s *Server) handle(_ any, stream grpc.ServerStream) error {
	full, ok := grpc.MethodFromServerStream(stream)
	if !ok {
		return status.Error(codes.Internal, "no method in stream")
	}
	service, method := splitMethod(full)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[full]++

	var (
		h   handler
		k   *apis.Kind
		err error
	)
	if service == controlService {
		h, ok = controlHandlers[method]
	} else if k, ok = s.byService[service]; ok {
		h, ok = objectHandlers[method]
		if ok && !serves(k, method) {
			ok = false
		}
	}
	if !ok {
		return status.Errorf(codes.Unimplemented, "unknown method %s", full)
	}

	req := h.request(k)
	if err := stream.RecvMsg(req); err != nil {
		return err
	}
	reply, err := h.run(s, k, req)
	if ce := s.log.Check(zap.DebugLevel, "handled"); ce != nil {
		ce.Write(zap.String("method", full), zap.Stringer("code", status.Code(err)))
	}
	if err != nil {
		return err
	}
	return stream.SendMsg(reply)
}

func splitMethod(full string) (service, method string) {
	full = strings.TrimPrefix(full, "/")
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		return full[:i], full[i+1:]
	}
	return full, ""
}

func serves(k *apis.Kind, method string) bool {
	switch method {
	case "Put":
		return !k.ReadOnly
	case "Create", "Delete":
		return k.Creatable
	}
	return true
}
