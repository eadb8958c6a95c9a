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

// Resolver coordinates strategies to find the Kind of values and paths.
// Typical chain: Kinded -> Path -> Message.
type Resolver interface {
	// Resolve returns the Kind of v, or nil if none can be determined.
	Resolve(v any, cfg Config) *Kind

	// ResolvePath returns the Kind of the object or collection at path,
	// or nil if none can be determined.
	ResolvePath(path string, cfg Config) *Kind
}
