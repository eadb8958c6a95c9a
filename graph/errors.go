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

package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGraph is the kind of errors caused by malformed input.
	ErrInvalidGraph = errors.New("acp(graph): invalid dependency graph")
	// ErrCycleFound is the kind of errors caused by dependency cycles.
	ErrCycleFound = errors.New("acp(graph): cycle detected")
)

// Error wraps deterministic graph failures.
type Error struct {
	Kind error
	Msg  string
	// Cycle holds one cycle witness for ErrCycleFound, first node repeated last.
	Cycle []string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *Error) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidGraph, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	msg := "cycle"
	if len(path) > 0 {
		msg = "cycle: " + strings.Join(path, " -> ")
	}
	return &Error{Kind: ErrCycleFound, Msg: msg, Cycle: path}
}
