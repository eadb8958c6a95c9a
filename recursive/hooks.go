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
	"sync"

	"dirpx.dev/acp/tree"
)

// Hook adjusts Copy for one kind.
type Hook struct {
	// Skip reports whether src must not be copied, typically because the
	// server creates it together with its parent.
	Skip func(src *tree.Object) bool

	// AfterStore runs once the copy dst of src is stored. It may record
	// additional old -> new pairs in replaced.
	AfterStore func(ctx context.Context, src, dst *tree.Object, replaced map[string]*tree.Object) error
}

var hooks sync.Map // label -> Hook

// RegisterHook installs h for objects of the collection label, replacing
// any previous hook.
func RegisterHook(label string, h Hook) {
	hooks.Store(label, h)
}

func hookFor(label string) Hook {
	if v, ok := hooks.Load(label); ok {
		return v.(Hook)
	}
	return Hook{}
}
