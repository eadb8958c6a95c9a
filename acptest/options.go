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

package acptest

import (
	"google.golang.org/protobuf/reflect/protoreflect"
	"go.uber.org/zap"

	"dirpx.dev/acp/apis"
)

// Option configures a Server.
type Option func(*Server)

// Validator checks the ObjectInfo of a created or updated object. A non-nil
// error is returned to the client as INVALID_ARGUMENT.
type Validator func(info protoreflect.Message) error

type autoChild struct {
	label string
	name  string
	init  func(props protoreflect.Message)
}

// WithKinds serves exactly the given kinds instead of every kind of the
// global registry.
func WithKinds(kinds ...*apis.Kind) Option {
	return func(s *Server) { s.kinds = append([]*apis.Kind(nil), kinds...) }
}

// WithVersion sets the version reported by GetServerInfo.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// WithLogger logs every handled call at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithAutoChild makes the server create a child named name in the
// collection label whenever an object of kind parent is created. init may
// fill the properties of the child.
func WithAutoChild(parent, label, name string, init func(props protoreflect.Message)) Option {
	return func(s *Server) {
		s.auto[parent] = append(s.auto[parent], autoChild{label: label, name: name, init: init})
	}
}

// WithValidator checks objects of the collection label on Create and Put.
func WithValidator(label string, v Validator) Option {
	return func(s *Server) { s.validators[label] = append(s.validators[label], v) }
}
