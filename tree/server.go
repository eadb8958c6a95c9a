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

// Package tree mirrors the object tree of a server with proxy objects.
//
// An Object is bound to a resource path once stored. Reads of stored
// objects fetch the current state from the server, writes send it back
// only when something changed. Unstored objects (new ones and clones) keep
// their state locally until Store creates them under a parent.
//
// Properties are reached through bindings declared once per kind:
//
//	var thickness = tree.Double("properties.thickness")
//
//	t, err := thickness.Get(ctx, fabric)
//	err = thickness.Set(ctx, fabric, 0.2)
package tree

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	acp "dirpx.dev/acp"
	"dirpx.dev/acp/apis"
)

// Server binds objects to a connection.
type Server struct {
	stubs         apis.StubFactory
	resolve       func(path string) *apis.Kind
	log           *zap.Logger
	version       string
	concurrency   int
	checkVersions bool
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithVersion sets the server version used for SupportedSince checks.
func WithVersion(v string) ServerOption {
	return func(s *Server) { s.version = v }
}

// WithConcurrency bounds parallel listings. Values below 1 are ignored.
func WithConcurrency(n int) ServerOption {
	return func(s *Server) {
		if n >= 1 {
			s.concurrency = n
		}
	}
}

// WithResolver replaces the global kind resolver.
func WithResolver(fn func(path string) *apis.Kind) ServerOption {
	return func(s *Server) {
		if fn != nil {
			s.resolve = fn
		}
	}
}

// WithVersionCheck enables or disables SupportedSince checks.
func WithVersionCheck(check bool) ServerOption {
	return func(s *Server) { s.checkVersions = check }
}

// FromConfig applies the client knobs of cfg.
func FromConfig(cfg apis.Config) ServerOption {
	return func(s *Server) {
		WithConcurrency(cfg.Concurrency)(s)
		s.checkVersions = cfg.CheckVersions
	}
}

// NewServer returns a Server calling the stubs of stubs.
func NewServer(stubs apis.StubFactory, opts ...ServerOption) *Server {
	s := &Server{
		stubs:         stubs,
		resolve:       acp.ResolvePath,
		log:           zap.NewNop(),
		concurrency:   4,
		checkVersions: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Version returns the server version, or "" if unknown.
func (s *Server) Version() string { return s.version }

// Logger returns the logger of the server.
func (s *Server) Logger() *zap.Logger { return s.log }

// Supports reports whether the server version is at least since. An empty
// since, an unknown server version or disabled checks always pass.
func (s *Server) Supports(since string) bool {
	if since == "" || s.version == "" || !s.checkVersions {
		return true
	}
	return semver.Compare(canonicalVersion(s.version), canonicalVersion(since)) >= 0
}

// canonicalVersion turns "25.1" or "25.1.dev0" into "v25.1".
func canonicalVersion(v string) string {
	v = "v" + strings.TrimPrefix(v, "v")
	end := 1
	for end < len(v) && (v[end] == '.' || (v[end] >= '0' && v[end] <= '9')) {
		end++
	}
	return strings.TrimSuffix(v[:end], ".")
}

// Kind resolves the kind of the objects at path.
func (s *Server) Kind(path string) (*apis.Kind, error) {
	k := s.resolve(path)
	if k == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, path)
	}
	return k, nil
}

func (s *Server) supported(k *apis.Kind) error {
	if !s.Supports(k.SupportedSince) {
		return fmt.Errorf("%w: %s requires server version %s, server is %s",
			ErrUnsupported, k.Name, k.SupportedSince, s.version)
	}
	return nil
}

// Stub returns the object service stub of k.
func (s *Server) Stub(k *apis.Kind) (apis.Stub, error) {
	if err := s.supported(k); err != nil {
		return nil, err
	}
	return s.stubs.Stub(k), nil
}

// Get fetches the object at rp.
func (s *Server) Get(ctx context.Context, rp string) (*Object, error) {
	k, err := s.Kind(rp)
	if err != nil {
		return nil, err
	}
	stub, err := s.Stub(k)
	if err != nil {
		return nil, err
	}
	info, err := stub.Get(ctx, rp)
	if err != nil {
		return nil, err
	}
	return attach(s, k, info), nil
}
