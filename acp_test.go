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
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/schema"
)

// Reset to a clean snapshot using our test builder.
// Pins are reset because we pass nil reg/res.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config) {
	tb.Helper()
	SetAll(&cfg, nil, nil, b)
}

// ---------------------- Test doubles (mocks) ----------------------

type mockRegistry struct {
	id   string
	mu   sync.Mutex
	data map[string]*apis.Kind
}

func newMockRegistry(id string) *mockRegistry {
	return &mockRegistry{id: id, data: make(map[string]*apis.Kind)}
}

func (m *mockRegistry) Register(k *apis.Kind) error {
	m.mu.Lock()
	m.data[k.Label] = k
	m.mu.Unlock()
	return nil
}
func (m *mockRegistry) Lookup(label string) (*apis.Kind, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, ok := m.data[label]
	return k, ok
}
func (m *mockRegistry) LookupMessage(protoreflect.FullName) (*apis.Kind, bool) { return nil, false }
func (m *mockRegistry) Entries() []*apis.Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*apis.Kind
	for _, k := range m.data {
		out = append(out, k)
	}
	return out
}
func (m *mockRegistry) Count() int { m.mu.Lock(); defer m.mu.Unlock(); return len(m.data) }
func (m *mockRegistry) Reset()     { m.mu.Lock(); m.data = make(map[string]*apis.Kind); m.mu.Unlock() }

type mockResolver struct {
	id  string
	reg apis.Registry
}

func (r *mockResolver) Resolve(v any, cfg apis.Config) *apis.Kind {
	if s, ok := v.(string); ok {
		return r.ResolvePath(s, cfg)
	}
	return nil
}

func (r *mockResolver) ResolvePath(path string, _ apis.Config) *apis.Kind {
	if r.reg == nil {
		return nil
	}
	k, _ := r.reg.Lookup(path)
	return k
}

type mockBuilder struct {
	mu            sync.Mutex
	lastCfg       apis.Config
	lastPrevRegID string
	regCounter    int
	resCounter    int
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	if mr, ok := prev.(*mockRegistry); ok {
		b.lastPrevRegID = mr.id
	}
	b.regCounter++
	return newMockRegistry("reg#" + strconv.Itoa(b.regCounter))
}

func (b *mockBuilder) BuildResolver(cfg apis.Config, reg apis.Registry, _ apis.Resolver) apis.Resolver {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg = cfg
	b.resCounter++
	return &mockResolver{id: "res#" + strconv.Itoa(b.resCounter), reg: reg}
}

func cfgWith(concurrency int) apis.Config {
	return apis.Config{Address: "localhost:1", Concurrency: concurrency, LogLevel: "info"}
}

// ---------------------- Tests ----------------------

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(1))

	s1Reg := Registry()
	s1Res := Resolver()

	SetConfig(cfgWith(7))

	if s1Reg == Registry() {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if s1Res == Resolver() {
		t.Fatalf("resolver was not rebuilt on SetConfig (unpinned)")
	}

	b.mu.Lock()
	gotCfg, prevID := b.lastCfg, b.lastPrevRegID
	b.mu.Unlock()
	if gotCfg.Concurrency != 7 {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if prevID == "" {
		t.Fatalf("builder did not receive the previous registry")
	}
	if Config().Concurrency != 7 {
		t.Fatalf("Config() = %+v, want concurrency 7", Config())
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsResolverIfUnpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(1))

	customReg := newMockRegistry("custom")
	SetRegistry(customReg)
	if !IsRegistryPinned() {
		t.Fatalf("SetRegistry did not pin the registry")
	}

	beforeRes := Resolver()
	SetConfig(cfgWith(2))

	if Registry() != customReg {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
	if Resolver() == beforeRes {
		t.Fatalf("resolver was not rebuilt when cfg changed and res not pinned")
	}
}

func TestSetResolver_PinsResolver(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(1))

	customRes := &mockResolver{id: "custom"}
	SetResolver(customRes)
	regBefore := Registry()

	SetConfig(cfgWith(3))

	if Resolver() != customRes {
		t.Fatalf("pinned resolver was rebuilt unexpectedly")
	}
	if Registry() == regBefore {
		t.Fatalf("registry was not rebuilt on SetConfig when resolver is pinned")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	a := &mockBuilder{}
	resetWithBuilder(t, a, cfgWith(1))

	SetResolver(&mockResolver{id: "pinned"})
	regBefore := Registry()
	resBefore := Resolver()

	b := &mockBuilder{}
	SetBuilder(b)

	if Builder() != b {
		t.Fatalf("Builder() did not return the new builder")
	}
	if Registry() == regBefore {
		t.Fatalf("registry did not rebuild after SetBuilder (unpinned)")
	}
	if Resolver() != resBefore {
		t.Fatalf("pinned resolver was rebuilt after SetBuilder")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(1))

	PinRegistry()
	PinResolver()

	reg1 := Registry()
	res1 := Resolver()
	SetConfig(cfgWith(4))
	if Registry() != reg1 || Resolver() != res1 {
		t.Fatalf("pinned layers should not rebuild on SetConfig")
	}

	UnpinRegistry()
	UnpinResolver()
	if IsRegistryPinned() || IsResolverPinned() {
		t.Fatalf("layers still pinned after Unpin")
	}
	SetConfig(cfgWith(6))
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
	if Resolver() == res1 {
		t.Fatalf("resolver should rebuild after UnpinResolver+SetConfig")
	}
}

func TestRegisterCatalog_ResolvesThroughGlobalState(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, cfgWith(1))

	cat, err := schema.Compile(schema.Spec{Label: "rosettes", Name: "Rosette", Package: "rosette", Creatable: true})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if err := RegisterCatalog(cat); err != nil {
		t.Fatalf("RegisterCatalog: %v", err)
	}
	want, _ := cat.Kind("rosettes")
	if got := ResolvePath("rosettes"); got != want {
		t.Fatalf("ResolvePath: got %v, want rosettes", got)
	}
	if got := Resolve("rosettes"); got != want {
		t.Fatalf("Resolve: got %v, want rosettes", got)
	}
}

func TestResolve_Concurrent_With_SetConfig(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, cfgWith(1))

	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = Resolve("models/m/fabrics/F.1")
				_ = ResolvePath("models/m")
			}
		}()
	}

	go func() {
		for i := 0; i < 20; i++ {
			SetConfig(cfgWith(1 + i%5))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
