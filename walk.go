// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package mmark

// Node is implemented by *Block and *Inline, the two node types that
// appear in a parsed Document.
type Node interface {
	// ChildCount returns the number of children this node has.
	ChildCount() int
	// Child returns the i'th child, 0 <= i < ChildCount().
	Child(i int) Node
	// Block returns the node itself if it is a *Block, or nil otherwise.
	Block() *Block
}

func (b *Block) ChildCount() int {
	if b == nil {
		return 0
	}
	switch b.kind {
	case UnorderedListKind:
		return len(b.items)
	case ListItemKind:
		return len(b.blocks)
	case HeadingKind, ParagraphKind:
		return len(b.inlines)
	default:
		return 0
	}
}

func (b *Block) Child(i int) Node {
	switch b.kind {
	case UnorderedListKind:
		return b.items[i]
	case ListItemKind:
		return b.blocks[i]
	case HeadingKind, ParagraphKind:
		return b.inlines[i]
	default:
		return nil
	}
}

func (b *Block) Block() *Block {
	return b
}

func (in *Inline) ChildCount() int {
	if in == nil {
		return 0
	}
	return len(in.children)
}

func (in *Inline) Child(i int) Node {
	return in.children[i]
}

func (in *Inline) Block() *Block {
	return nil
}

// A Cursor describes a [Node] encountered during [Walk].
type Cursor struct {
	node   Node
	parent Node
	block  *Block
	index  int
}

// Node returns the current [Node].
func (c *Cursor) Node() Node {
	return c.node
}

// Parent returns the parent of the current [Node].
func (c *Cursor) Parent() Node {
	return c.parent
}

// ParentBlock returns the nearest [*Block] ancestor of the current [Node],
// not counting the node itself, or nil for a walk root.
func (c *Cursor) ParentBlock() *Block {
	return c.block
}

// Index returns the index >= 0 of the current [Node] in the list of
// children that contains it, or a value < 0 for a walk root.
func (c *Cursor) Index() int {
	return c.index
}

// WalkOptions is the set of parameters to [Walk].
type WalkOptions struct {
	// Pre, if not nil, is called for each node before its children are
	// traversed. If Pre returns false, the node's children are skipped and
	// Post is not called for that node.
	Pre func(c *Cursor) bool
	// Post, if not nil, is called for each node after its children have
	// been traversed. If Post returns false, traversal stops immediately.
	Post func(c *Cursor) bool
}

// Walk traverses a [Node] recursively in document order, starting with
// root, calling [WalkOptions.Pre] and [WalkOptions.Post].
func Walk(root Node, opts *WalkOptions) {
	type walkFrame struct {
		Cursor
		post bool
	}

	stack := []walkFrame{{Cursor: Cursor{node: root, index: -1}}}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if curr.post {
			if opts.Post != nil {
				*cursor = curr.Cursor
				if !opts.Post(cursor) {
					break
				}
			}
			continue
		}

		if opts.Pre != nil {
			*cursor = curr.Cursor
			if !opts.Pre(cursor) {
				continue
			}
		}
		curr.post = true
		stack = append(stack, curr)
		for i := curr.node.ChildCount() - 1; i >= 0; i-- {
			currBlock := curr.block
			if b := curr.node.Block(); b != nil {
				currBlock = b
			}
			stack = append(stack, walkFrame{
				Cursor: Cursor{
					parent: curr.node,
					node:   curr.node.Child(i),
					block:  currBlock,
					index:  i,
				},
			})
		}
	}
}

// WalkDocument calls [Walk] on each of the document's top-level blocks in
// order.
func WalkDocument(doc *Document, opts *WalkOptions) {
	for _, b := range doc.Blocks {
		Walk(b, opts)
	}
}
