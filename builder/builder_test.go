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

package builder_test

import (
	"runtime"
	"sync"
	"testing"

	"google.golang.org/protobuf/types/dynamicpb"

	"dirpx.dev/acp/apis"
	"dirpx.dev/acp/builder"
	"dirpx.dev/acp/config"
	"dirpx.dev/acp/registry"
	"dirpx.dev/acp/schema"
)

// catalog compiles two small kinds used across tests.
func catalog(t testing.TB) *schema.Catalog {
	t.Helper()
	cat, err := schema.Compile(
		schema.Spec{Label: "fabrics", Name: "Fabric", Package: "fabric", Creatable: true},
		schema.Spec{Label: "rosettes", Name: "Rosette", Package: "rosette", Creatable: true},
	)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return cat
}

// hot implements apis.Kinded and is used to verify that the kinded
// strategy takes priority over other strategies.
type hot struct{ k *apis.Kind }

func (h hot) Kind() *apis.Kind { return h.k }

// ResourcePath points somewhere else on purpose.
func (hot) ResourcePath() string { return "models/m/fabrics/F.1" }

// TestBuildRegistry_Basic asserts that BuildRegistry returns a non-nil,
// working Registry and migrates the previous entries.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()
	cat := catalog(t)

	// prev may be nil; this must still produce a valid registry.
	reg := b.BuildRegistry(config.DefaultConfig(), nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}
	if err := cat.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}

	next := b.BuildRegistry(config.DefaultConfig(), reg)
	if next.Count() != 2 {
		t.Fatalf("migrated Count = %d, want 2", next.Count())
	}
	if _, ok := next.Lookup("rosettes"); !ok {
		t.Fatalf("migrated registry misses rosettes")
	}
}

// TestBuildResolver_Order verifies resolution priority:
// 1. If the value implements apis.Kinded, use Kind().
// 2. Otherwise, if the path label is registered, use that.
// 3. Otherwise, resolve protocol messages by package.
func TestBuildResolver_Order(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	cat := catalog(t)

	reg := b.BuildRegistry(cfg, nil)
	if err := cat.RegisterAll(reg); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}
	res := b.BuildResolver(cfg, reg, nil)
	if res == nil {
		t.Fatal("BuildResolver returned nil")
	}
	fabric, _ := cat.Kind("fabrics")
	rosette, _ := cat.Kind("rosettes")

	if got := res.Resolve(hot{rosette}, cfg); got != rosette {
		t.Fatalf("Kinded priority broken: got %v", got)
	}
	if got := res.ResolvePath("models/m/fabrics/F.1", cfg); got != fabric {
		t.Fatalf("Path strategy broken: got %v", got)
	}
	if got := res.Resolve(dynamicpb.NewMessage(rosette.ObjectInfo), cfg); got != rosette {
		t.Fatalf("Message strategy broken: got %v", got)
	}
	if got := res.ResolvePath("models/m/unknown/U.1", cfg); got != nil {
		t.Fatalf("unknown label: got %v, want nil", got)
	}
}

// TestBuildResolver_WithExternalRegistry asserts that BuildResolver will
// accept *any* apis.Registry implementation.
func TestBuildResolver_WithExternalRegistry(t *testing.T) {
	r := registry.New(config.DefaultConfig())
	cat := catalog(t)
	if err := cat.RegisterAll(r); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}

	res := builder.New().BuildResolver(config.DefaultConfig(), r, nil)
	if got := res.ResolvePath("models/m/rosettes", config.DefaultConfig()); got == nil || got.Label != "rosettes" {
		t.Fatalf("resolver did not use registry mapping: got %v", got)
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()
	cat := catalog(t)

	reg := b.BuildRegistry(cfg, nil)
	_ = cat.RegisterAll(reg)
	res := b.BuildResolver(cfg, reg, nil)
	fabric, _ := cat.Kind("fabrics")
	msg := dynamicpb.NewMessage(fabric.ObjectInfo)

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				_ = res.ResolvePath("models/m/fabrics/F.1", cfg)
				_ = res.Resolve(msg, cfg)
				_ = res.Resolve(hot{fabric}, cfg)
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
