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

// Package recursive copies trees of objects together with the objects
// they depend on.
//
// Copy walks the sources (and, by default, their children and linked
// objects), orders the visited objects so that every object comes after
// its parent and the objects it links to, and stores a clone of each one
// under the new parent given by the parent mapping:
//
//	res, err := recursive.Copy(ctx, groups,
//	    recursive.WithParent(model1, model2),
//	)
package recursive

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"google.golang.org/protobuf/reflect/protoreflect"

	"dirpx.dev/acp/linked"
	"dirpx.dev/acp/paths"
	"dirpx.dev/acp/schema"
	"dirpx.dev/acp/tree"
)

var (
	// ErrParentNotMapped is returned when the parent of a copied object is
	// neither in the parent mapping nor copied before it.
	ErrParentNotMapped = errors.New("acp(recursive): parent object not found in parent_mapping")
	// ErrLinkNotMapped is returned when a link of a copied object points
	// at an object that was not copied.
	ErrLinkNotMapped = errors.New("acp(recursive): linked object not copied")
)

const tracerName = "dirpx.dev/acp/recursive"

// Option configures Copy.
type Option func(*options)

type options struct {
	mapping  map[string]*tree.Object
	handling LinkedObjectHandling
	children bool
	log      *zap.Logger
	tp       trace.TracerProvider
}

// WithParent stores copies of the children of from under to. from itself
// is not copied; objects linking to it link to to instead.
func WithParent(from, to *tree.Object) Option {
	return func(o *options) { o.mapping[from.ResourcePath()] = to }
}

// WithLinkedObjectHandling selects what happens to linked objects.
func WithLinkedObjectHandling(h LinkedObjectHandling) Option {
	return func(o *options) { o.handling = h }
}

// WithChildren selects whether children of the sources are copied.
func WithChildren(include bool) Option {
	return func(o *options) { o.children = include }
}

// WithLogger logs every copied object at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithTracerProvider sets the provider of the copy span.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tp = tp
		}
	}
}

// Result lists the objects created by Copy.
type Result struct {
	// Created holds the new objects in creation order.
	Created []*tree.Object
	// Mapping maps the resource path of each copied source object to its
	// copy.
	Mapping map[string]*tree.Object
}

// Copy copies sources into the parents given by WithParent. Objects that
// are keys of the parent mapping are never copied.
func Copy(ctx context.Context, sources []*tree.Object, opts ...Option) (*Result, error) {
	o := options{
		mapping:  make(map[string]*tree.Object),
		handling: CopyLinked,
		children: true,
		log:      zap.NewNop(),
		tp:       otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := o.tp.Tracer(tracerName).Start(ctx, "recursive.Copy",
		trace.WithAttributes(
			attribute.Int("acp.sources", len(sources)),
			attribute.String("acp.linked_object_handling", o.handling.String()),
			attribute.Bool("acp.include_children", o.children),
		),
	)
	defer span.End()

	res, err := copyTree(ctx, sources, o)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("acp.created", len(res.Created)))
	span.SetStatus(otelcodes.Ok, "")
	return res, nil
}

func copyTree(ctx context.Context, sources []*tree.Object, o options) (*Result, error) {
	dg, err := BuildDependencyGraph(ctx, sources, WalkOptions{
		IncludeChildren:      o.children,
		IncludeLinkedObjects: o.handling == CopyLinked,
	})
	if err != nil {
		return nil, err
	}
	order, err := dg.Graph.DependencyOrder()
	if err != nil {
		return nil, err
	}

	replaced := make(map[string]*tree.Object, len(o.mapping)+len(order))
	for k, v := range o.mapping {
		replaced[k] = v
	}
	res := &Result{Mapping: make(map[string]*tree.Object)}

	for _, node := range order {
		if _, done := replaced[node]; done {
			continue
		}
		src := dg.Objects[node]
		hook := hookFor(src.Kind().Label)
		if hook.Skip != nil && hook.Skip(src) {
			o.log.Debug("skipped", zap.String("path", node))
			continue
		}

		dst := src.Clone(o.handling == DiscardLinked)
		if o.handling == CopyLinked {
			if err := rewriteLinks(ctx, dst, replaced); err != nil {
				return nil, fmt.Errorf("copy %s: %w", node, err)
			}
		}

		parent, ok := replaced[paths.Parent(node)]
		if !ok {
			return nil, fmt.Errorf("%w: for object %s", ErrParentNotMapped, src)
		}
		if err := dst.Store(ctx, parent); err != nil {
			return nil, fmt.Errorf("copy %s: %w", node, err)
		}
		if hook.AfterStore != nil {
			if err := hook.AfterStore(ctx, src, dst, replaced); err != nil {
				return nil, fmt.Errorf("copy %s: %w", node, err)
			}
		}

		replaced[node] = dst
		res.Created = append(res.Created, dst)
		res.Mapping[node] = dst
		o.log.Debug("copied", zap.String("from", node), zap.String("to", dst.ResourcePath()))
	}
	return res, nil
}

// rewriteLinks points the links of the unstored clone dst at the copies in
// replaced. Collection paths follow their owning object.
func rewriteLinks(ctx context.Context, dst *tree.Object, replaced map[string]*tree.Object) error {
	return dst.Update(ctx, func(info protoreflect.Message) error {
		return linked.Rewrite(schema.Props(info), func(p string) (string, error) {
			if paths.IsCollection(p) {
				owner, ok := replaced[paths.Collection(p)]
				if !ok {
					return "", fmt.Errorf("%w: %s", ErrLinkNotMapped, p)
				}
				return paths.Join(owner.ResourcePath(), paths.Label(p)), nil
			}
			n, ok := replaced[p]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrLinkNotMapped, p)
			}
			return n.ResourcePath(), nil
		})
	})
}
