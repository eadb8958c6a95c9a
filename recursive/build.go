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

package recursive

import (
	"context"
	"fmt"

	"dirpx.dev/acp/graph"
	"dirpx.dev/acp/tree"
)

// WalkOptions selects the edges followed by BuildDependencyGraph.
type WalkOptions struct {
	IncludeChildren      bool
	IncludeLinkedObjects bool
}

// DependencyGraph is a graph of resource paths with the objects they were
// read from. An edge a -> b means a depends on b: a is a child of b or
// links to b.
type DependencyGraph struct {
	Graph   *graph.Graph
	Objects map[string]*tree.Object
}

// BuildDependencyGraph walks sources and, depending on opts, their
// children and linked objects. Each resource path is visited once.
// Children of kinds that cannot be created are skipped.
func BuildDependencyGraph(ctx context.Context, sources []*tree.Object, opts WalkOptions) (*DependencyGraph, error) {
	dg := &DependencyGraph{Graph: graph.New(), Objects: make(map[string]*tree.Object)}
	for _, src := range sources {
		if err := dg.walk(ctx, src, opts); err != nil {
			return nil, err
		}
	}
	return dg, nil
}

func (dg *DependencyGraph) walk(ctx context.Context, o *tree.Object, opts WalkOptions) error {
	key := o.ResourcePath()
	if !o.IsStored() {
		return fmt.Errorf("walk %s: %w", o, tree.ErrNotStored)
	}
	if _, seen := dg.Objects[key]; seen {
		return nil
	}
	dg.Objects[key] = o
	dg.Graph.AddNode(key)

	if opts.IncludeChildren {
		children, err := o.Children(ctx)
		if err != nil {
			return fmt.Errorf("children of %s: %w", key, err)
		}
		for _, c := range children {
			if !c.Kind().Creatable {
				continue
			}
			if err := dg.Graph.AddEdge(c.ResourcePath(), key); err != nil {
				return err
			}
			if err := dg.walk(ctx, c, opts); err != nil {
				return err
			}
		}
	}
	if opts.IncludeLinkedObjects {
		targets, err := o.LinkedObjects(ctx)
		if err != nil {
			return fmt.Errorf("links of %s: %w", key, err)
		}
		for _, t := range targets {
			if t.ResourcePath() == key {
				continue
			}
			if err := dg.Graph.AddEdge(key, t.ResourcePath()); err != nil {
				return err
			}
			if err := dg.walk(ctx, t, opts); err != nil {
				return err
			}
		}
	}
	return nil
}
