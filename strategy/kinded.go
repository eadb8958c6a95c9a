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
)

// NewKindedStrategy creates an apis.Strategy that uses apis.Kinded.
func NewKindedStrategy() apis.Strategy {
	return &kindedStrategy{}
}

// kindedStrategy is a zero-cost fast path: if v implements apis.Kinded,
// return its Kind() and stop the chain.
type kindedStrategy struct{}

// Ensure kindedStrategy implements apis.Strategy.
var _ apis.Strategy = (*kindedStrategy)(nil)

// TryResolve checks if v implements apis.Kinded and returns its Kind().
func (*kindedStrategy) TryResolve(v any, _ apis.Config) (*apis.Kind, bool) {
	if v == nil {
		return nil, false
	}
	if n, ok := v.(apis.Kinded); ok {
		if k := n.Kind(); k != nil {
			return k, true
		}
	}
	return nil, false
}

// TryResolvePath always returns false: a bare path carries no Kind.
func (*kindedStrategy) TryResolvePath(_ string, _ apis.Config) (*apis.Kind, bool) {
	return nil, false
}
