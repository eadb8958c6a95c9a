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

package tree

import (
	"context"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Node is a node of a printed tree.
type Node struct {
	Label    string
	Children []*Node
}

func (n *Node) write(b *strings.Builder, level int) {
	b.WriteString(strings.Repeat("    ", level))
	b.WriteString(n.Label)
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.write(b, level+1)
	}
}

// String renders the tree indented by four spaces per level.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

// Tree builds the tree below root: one node per non-empty child collection
// holding one node per object id.
func Tree(ctx context.Context, root *Object) (*Node, error) {
	node := &Node{Label: root.Kind().Name}
	if err := addChildren(ctx, node, root); err != nil {
		return nil, err
	}
	return node, nil
}

func addChildren(ctx context.Context, node *Node, o *Object) error {
	for _, label := range o.Kind().Children {
		m, err := o.Collection(label)
		if err != nil {
			// Kinds the server does not know are left out.
			continue
		}
		items, err := m.Items(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}
		coll := &Node{Label: humanize(label)}
		for _, it := range items {
			child := &Node{Label: it.ID}
			if err := addChildren(ctx, child, it.Object); err != nil {
				return err
			}
			coll.Children = append(coll.Children, child)
		}
		node.Children = append(node.Children, coll)
	}
	return nil
}

// Print writes the tree below root to w.
func Print(ctx context.Context, w io.Writer, root *Object) error {
	t, err := Tree(ctx, root)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, t.String())
	return err
}

// humanize turns "modeling_groups" into "Modeling Groups".
func humanize(label string) string {
	words := strings.Split(label, "_")
	for i, w := range words {
		if r, size := utf8.DecodeRuneInString(w); size > 0 {
			words[i] = string(unicode.ToUpper(r)) + w[size:]
		}
	}
	return strings.Join(words, " ")
}
