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

package strategy

import (
	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/paths"
)

// NewPathStrategy creates an apis.Strategy that looks up the collection
// label of a path in reg.
func NewPathStrategy(reg apis.Registry) apis.Strategy {
	return &pathStrategy{reg: reg}
}

// pathStrategy consults a provided apis.Registry by collection label.
type pathStrategy struct {
	reg apis.Registry
}

// Ensure pathStrategy implements apis.Strategy.
var _ apis.Strategy = (*pathStrategy)(nil)

// resourcePather is implemented by values bound to a resource path.
type resourcePather interface {
	ResourcePath() string
}

// TryResolve handles strings and values exposing ResourcePath().
func (s *pathStrategy) TryResolve(v any, cfg apis.Config) (*apis.Kind, bool) {
	if v == nil || s.reg == nil {
		return nil, false
	}
	switch x := v.(type) {
	case string:
		return s.TryResolvePath(x, cfg)
	case resourcePather:
		return s.TryResolvePath(x.ResourcePath(), cfg)
	}
	return nil, false
}

// TryResolvePath looks up the label of path in the registry.
func (s *pathStrategy) TryResolvePath(path string, _ apis.Config) (*apis.Kind, bool) {
	if s.reg == nil || paths.IsEmpty(path) {
		return nil, false
	}
	return s.reg.Lookup(paths.Label(path))
}
