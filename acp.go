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

package acp

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/builder"
	"dirpx.dev/acp/config"
	"dirpx.dev/acp/schema"
)

// init initializes the global state.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	s.reg = s.bld.BuildRegistry(s.cfg, nil)
	s.res = s.bld.BuildResolver(s.cfg, s.reg, nil)
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("acp: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("acp: builder returned nil resolver")
)

// Resolve returns the Kind of v using the global resolver, or nil.
// v may be a tree object, a resource path, or a protocol message.
func Resolve(v any) *apis.Kind {
	s := st.Load()
	return s.res.Resolve(v, s.cfg)
}

// ResolvePath returns the Kind of the object or collection at path, or nil.
func ResolvePath(path string) *apis.Kind {
	s := st.Load()
	return s.res.ResolvePath(path, s.cfg)
}

// Register adds k to the global registry.
func Register(k *apis.Kind) error {
	return st.Load().reg.Register(k)
}

// RegisterCatalog adds every kind of c to the global registry.
func RegisterCatalog(c *schema.Catalog) error {
	return c.RegisterAll(st.Load().reg)
}

// SetAll explicitly sets all global state components.
// Nil arguments leave the corresponding component unchanged; a nil
// registry or resolver is rebuilt and unpinned.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := &state{cfg: old.cfg, bld: old.bld, reg: reg, res: res}
	if cfg != nil {
		next.cfg = *cfg
	}
	if bld != nil {
		next.bld = bld
	}
	next.preg = reg != nil
	next.pres = res != nil
	if next.reg == nil {
		next.reg = next.bld.BuildRegistry(next.cfg, old.reg)
	}
	if next.res == nil {
		next.res = next.bld.BuildResolver(next.cfg, next.reg, old.res)
	}
	publish(next)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// It rebuilds the unpinned registry and resolver.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.cfg = cfg
	publish(rebuild(&next))
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets and pins the global registry. The resolver is rebuilt
// against it unless pinned.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.reg = reg
	next.preg = true
	publish(rebuild(&next))
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets and pins the global resolver.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.res = res
	next.pres = true
	publish(&next)
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder and rebuilds the unpinned layers with it.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	next.bld = b
	publish(rebuild(&next))
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops automatic rebuilds of the global registry.
func PinRegistry() { setPins(func(s *state) { s.preg = true }) }

// UnpinRegistry allows automatic rebuilds of the global registry again.
func UnpinRegistry() { setPins(func(s *state) { s.preg = false }) }

// IsResolverPinned returns whether the global resolver is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops automatic rebuilds of the global resolver.
func PinResolver() { setPins(func(s *state) { s.pres = true }) }

// UnpinResolver allows automatic rebuilds of the global resolver again.
func UnpinResolver() { setPins(func(s *state) { s.pres = false }) }

func setPins(fn func(*state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	next := *st.Load()
	fn(&next)
	publish(&next)
}

// rebuild replaces the unpinned layers of s using s.bld. The previous
// layers are handed to the builder for migration.
func rebuild(s *state) *state {
	if !s.preg {
		s.reg = s.bld.BuildRegistry(s.cfg, s.reg)
	}
	if !s.pres {
		s.res = s.bld.BuildResolver(s.cfg, s.reg, s.res)
	}
	return s
}

// publish checks s and stores it atomically. Callers hold buildMu.
func publish(s *state) {
	if s.reg == nil {
		panic(ErrNilRegistry)
	}
	if s.res == nil {
		panic(ErrNilResolver)
	}
	st.Store(s)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is the global state snapshot.
// Immutable once published via st.Store; writers copy it, modify the copy
// and swap it in.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// reg maps collection labels to kinds.
	reg apis.Registry
	// res resolves values and paths to kinds.
	res apis.Resolver
	// bld builds reg and res.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pres indicates whether the res is pinned (immutable).
	pres bool
}
