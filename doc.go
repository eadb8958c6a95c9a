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

// Package acp is a client for a remote composite layup modeling server.
//
// The server holds a tree of objects (models, materials, fabrics,
// stackups, rosettes, selection rules, modeling groups and plies, ...)
// addressed by resource paths such as
//
//	models/<uuid>/modeling_groups/MG.1/modeling_plies/MP.1
//
// The client mirrors that tree with proxy objects (package tree) whose
// property reads and writes become remote calls, and adds operations the
// server does not offer directly, most notably copying whole sub-trees
// with their linked objects between models (package recursive).
//
// # Layout
//
//   - paths: resource and collection path helpers.
//   - schema: the protocol described as data and compiled into protobuf
//     descriptors; messages are dynamicpb messages.
//   - linked: discovery, rewriting and removal of links inside messages.
//   - transport: the gRPC connection, generic object service stubs and
//     error mapping.
//   - tree: tree object proxies, property bindings and mappings.
//   - layup: the concrete kinds (Model, Fabric, ModelingPly, ...).
//   - graph, recursive: dependency graphs and recursive copy.
//   - client: connecting to a server.
//   - acptest: an in-process server for tests.
//
// # Kind registry
//
// This package holds a read-mostly global snapshot of
//
//   - Config: connection and client knobs.
//   - Registry: collection label -> Kind. Package layup registers its
//     kinds on import.
//   - Resolver: finds the Kind of a value or path, trying in order
//     values that know their Kind, the collection label of a path, and the
//     protocol package of a message.
//   - Builder: constructs Registry and Resolver for a Config and may
//     migrate state from the previous ones.
//
// Readers load the snapshot atomically and never lock:
//
//	k := acp.ResolvePath("models/m/fabrics/Fabric.1")
//
// Writers (SetConfig, SetBuilder, SetRegistry, SetResolver, SetAll) take
// a short build mutex, derive a new snapshot and publish it. A registry or
// resolver installed explicitly is pinned and no longer rebuilt until it
// is unpinned.
package acp
