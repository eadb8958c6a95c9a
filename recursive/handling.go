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
	"fmt"
	"strings"
)

// LinkedObjectHandling selects what Copy does with objects linked from
// the copied objects.
//
// # Values
//
//   - CopyLinked: linked objects are copied too and links are rewritten
//     to the copies.
//   - KeepLinked: linked objects are not copied; copies keep their links.
//     This only works when copying within one model.
//   - DiscardLinked: linked objects are not copied; copies are stored
//     without links.
type LinkedObjectHandling int

const (
	// CopyLinked includes linked objects in the copied set and points
	// links of the copies at the new objects. It is the default.
	CopyLinked LinkedObjectHandling = iota

	// KeepLinked stores copies with their original links.
	KeepLinked

	// DiscardLinked removes all links from the copies before they are
	// stored.
	DiscardLinked
)

// String returns "Copy", "Keep" or "Discard", or "Unknown(<n>)" for
// out-of-range values.
func (h LinkedObjectHandling) String() string {
	switch h {
	case CopyLinked:
		return "Copy"
	case KeepLinked:
		return "Keep"
	case DiscardLinked:
		return "Discard"
	default:
		return fmt.Sprintf("Unknown(%d)", int(h))
	}
}

// ParseHandling parses the tokens produced by String, ignoring case and
// surrounding whitespace. On failure it returns CopyLinked and an error.
func ParseHandling(s string) (LinkedObjectHandling, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return CopyLinked, fmt.Errorf("acp(recursive): empty linked object handling")
	}

	switch strings.ToUpper(trimmed) {
	case "COPY":
		return CopyLinked, nil
	case "KEEP":
		return KeepLinked, nil
	case "DISCARD":
		return DiscardLinked, nil
	default:
		return CopyLinked, fmt.Errorf("acp(recursive): unknown linked object handling %q", s)
	}
}

// MustParseHandling is like ParseHandling but panics on invalid input.
func MustParseHandling(s string) LinkedObjectHandling {
	h, err := ParseHandling(s)
	if err != nil {
		panic(err)
	}
	return h
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error rather than an "Unknown(...)" token.
func (h LinkedObjectHandling) MarshalText() ([]byte, error) {
	switch h {
	case CopyLinked, KeepLinked, DiscardLinked:
		return []byte(h.String()), nil
	default:
		return nil, fmt.Errorf("acp(recursive): cannot marshal unknown linked object handling %d", int(h))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure *h is left
// unchanged.
func (h *LinkedObjectHandling) UnmarshalText(text []byte) error {
	value, err := ParseHandling(string(text))
	if err != nil {
		return err
	}
	*h = value
	return nil
}
