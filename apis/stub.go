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

package apis

import (
	"context"

	"google.golang.org/protobuf/reflect/protoreflect"
)

// Stub performs the object service calls of one Kind.
// Messages are instances of the descriptors held by the Kind.
type Stub interface {
	// Get returns the ObjectInfo stored at rp.
	Get(ctx context.Context, rp string) (protoreflect.Message, error)
	// List returns all ObjectInfo messages of the collection at cp.
	List(ctx context.Context, cp string) ([]protoreflect.Message, error)
	// Put writes info and returns the updated ObjectInfo.
	Put(ctx context.Context, info protoreflect.Message) (protoreflect.Message, error)
	// Delete removes the object at rp if its version matches.
	Delete(ctx context.Context, rp, version string) error
	// Create adds a new object named name to the collection at cp.
	Create(ctx context.Context, cp, name string, props protoreflect.Message) (protoreflect.Message, error)
}

// StubFactory returns the Stub for the given Kind.
type StubFactory interface {
	Stub(k *Kind) Stub
}
