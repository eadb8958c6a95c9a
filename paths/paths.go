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

// Package paths implements the string addressing of objects and
// collections in the server tree.
//
// A resource path alternates collection labels and object ids:
//
//	models/3f1c.../modeling_groups/MG.1/modeling_plies/MP.1
//
// A collection path is a resource path followed by a collection label
// (or a single top-level label such as "models"). The empty string is the
// resource path of "no object" and is used for unset links.
package paths

import "strings"

// Sep separates the segments of a path.
const Sep = "/"

// ModelsLabel is the label of the top-level collection.
const ModelsLabel = "models"

// Join joins parts with Sep. Double separators are collapsed and leading
// or trailing separators removed.
func Join(parts ...string) string {
	return strings.Trim(strings.ReplaceAll(strings.Join(parts, Sep), Sep+Sep, Sep), Sep)
}

// Split returns the non-empty segments of p.
func Split(p string) []string {
	raw := strings.Split(p, Sep)
	out := raw[:0]
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsEmpty reports whether p addresses no object.
func IsEmpty(p string) bool {
	return strings.Trim(p, Sep) == ""
}

// IsResource reports whether p has the shape of a resource path
// (an even, non-zero number of segments).
func IsResource(p string) bool {
	n := len(Split(p))
	return n > 0 && n%2 == 0
}

// IsCollection reports whether p has the shape of a collection path
// (an odd number of segments).
func IsCollection(p string) bool {
	return len(Split(p))%2 == 1
}

// Label returns the collection label of p. For a resource path it is the
// second to last segment, for a collection path the last one.
func Label(p string) string {
	segs := Split(p)
	if len(segs) == 0 {
		return ""
	}
	// Labels sit at even indices.
	return segs[(len(segs)-1)/2*2]
}

// ID returns the last segment of the resource path rp.
func ID(rp string) string {
	segs := Split(rp)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Collection returns the collection path containing rp.
func Collection(rp string) string {
	segs := Split(rp)
	if len(segs) < 2 {
		return ""
	}
	return strings.Join(segs[:len(segs)-1], Sep)
}

// Parent returns the resource path of the object owning rp, or "" for
// objects of a top-level collection.
func Parent(rp string) string {
	segs := Split(rp)
	if len(segs) < 4 {
		return ""
	}
	return strings.Join(segs[:len(segs)-2], Sep)
}

// Root returns the resource path of the top-level object containing p,
// or "" if p is shorter than one label/id pair.
func Root(p string) string {
	segs := Split(p)
	if len(segs) < 2 {
		return ""
	}
	return segs[0] + Sep + segs[1]
}

// Depth returns the number of label/id pairs in the resource path rp.
func Depth(rp string) int {
	return len(Split(rp)) / 2
}

// CommonPrefix returns the longest segment-aligned common prefix of a and b.
func CommonPrefix(a, b string) string {
	as, bs := Split(a), Split(b)
	n := 0
	for n < len(as) && n < len(bs) && as[n] == bs[n] {
		n++
	}
	return strings.Join(as[:n], Sep)
}

// HasPrefix reports whether p equals prefix or lies below it.
func HasPrefix(p, prefix string) bool {
	p, prefix = Join(p), Join(prefix)
	if prefix == "" {
		return true
	}
	return p == prefix || strings.HasPrefix(p, prefix+Sep)
}
