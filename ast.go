// Copyright 2023 Ross Light
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

// Document is the result of a successful parse: an optional YAML front
// matter value and an ordered sequence of top-level blocks.
type Document struct {
	// HasYAML reports whether the source began with a recognized front
	// matter block. YAML holds the decoded value when HasYAML is true
	// (which may itself be nil, e.g. for "---\n---\n").
	HasYAML bool
	YAML    any

	Blocks []*Block
}

// BlockKind is an enumeration of values returned by [*Block.Kind].
type BlockKind int

const (
	ThematicBreakKind BlockKind = 1 + iota
	HeadingKind
	CodeBlockKind
	ParagraphKind
	UnorderedListKind
	ListItemKind
)

// Block is a structural element of an mmark document. It is a single
// tagged struct rather than one Go type per case; callers switch on
// Kind() and read only the fields that kind defines.
type Block struct {
	kind BlockKind
	pos  Position

	// level is the heading level (1-6) for HeadingKind.
	level int

	// info is the fenced code block's info string for CodeBlockKind, or
	// nil if omitted ("info_string: optional text").
	info *string
	// content is the verbatim body text for CodeBlockKind.
	content string

	// payload is the block phase's pending inline text for HeadingKind
	// and ParagraphKind, consumed once by the inline parser. It is nil
	// once Inlines has been populated.
	payload *Isp
	// inlines is the resolved inline tree for HeadingKind and
	// ParagraphKind, populated by the top-level orchestrator.
	inlines []*Inline

	// items holds the list items for UnorderedListKind.
	items []*Block
	// blocks holds the nested block sequence for ListItemKind.
	blocks []*Block
}

// Isp ("inline-source-pending") is the pair of (start position, raw text)
// that the block parser hands to the inline parser, per the GLOSSARY.
type Isp struct {
	Pos Position
	Raw string
}

func (b *Block) Kind() BlockKind {
	if b == nil {
		return 0
	}
	return b.kind
}

// Position returns the position of the block's first character.
func (b *Block) Position() Position {
	if b == nil {
		return Position{}
	}
	return b.pos
}

// Level returns the heading level (1-6) for a HeadingKind block.
func (b *Block) Level() int {
	if b == nil {
		return 0
	}
	return b.level
}

// Info returns the fenced code block's info string, or "" with ok=false
// if it has none.
func (b *Block) Info() (info string, ok bool) {
	if b == nil || b.info == nil {
		return "", false
	}
	return *b.info, true
}

// Content returns the verbatim body text for a CodeBlockKind block.
func (b *Block) Content() string {
	if b == nil {
		return ""
	}
	return b.content
}

// Inlines returns the resolved inline content for HeadingKind and
// ParagraphKind blocks. It is nil before the inline phase has run.
func (b *Block) Inlines() []*Inline {
	if b == nil {
		return nil
	}
	return b.inlines
}

// Items returns the list items of an UnorderedListKind block.
func (b *Block) Items() []*Block {
	if b == nil {
		return nil
	}
	return b.items
}

// Blocks returns the nested block sequence of a ListItemKind block.
func (b *Block) Blocks() []*Block {
	if b == nil {
		return nil
	}
	return b.blocks
}

// InlineKind is an enumeration of values returned by [*Inline.Kind].
type InlineKind int

const (
	PlainKind InlineKind = 1 + iota
	LineBreakKind
	CodeSpanKind
	EmphasisKind
	StrongKind
	StrikeoutKind
	SubscriptKind
	SuperscriptKind
	LinkKind
	ImageKind
)

// Inline is a node in the tree produced by parsing a Block's inline
// payload's Inline sum type.
type Inline struct {
	kind InlineKind
	pos  Position

	// text holds the literal content for PlainKind and CodeSpanKind.
	text string

	// children holds the nested inline sequence for the emphasis-class
	// kinds (Emphasis, Strong, Strikeout, Subscript, Superscript) and the
	// label/description for Link and Image.
	children []*Inline

	// dest is the link/image destination.
	dest URI
	// title is the optional link/image title.
	title *string
}

func (in *Inline) Kind() InlineKind {
	if in == nil {
		return 0
	}
	return in.kind
}

// Position returns the position of the inline node's first character.
func (in *Inline) Position() Position {
	if in == nil {
		return Position{}
	}
	return in.pos
}

// Text returns the literal text for PlainKind and CodeSpanKind nodes.
func (in *Inline) Text() string {
	if in == nil {
		return ""
	}
	return in.text
}

// Children returns the nested inline sequence, or the label/description
// for Link and Image nodes.
func (in *Inline) Children() []*Inline {
	if in == nil {
		return nil
	}
	return in.children
}

// Destination returns the link/image destination URI.
func (in *Inline) Destination() URI {
	if in == nil {
		return URI{}
	}
	return in.dest
}

// Title returns the optional link/image title.
func (in *Inline) Title() (title string, ok bool) {
	if in == nil || in.title == nil {
		return "", false
	}
	return *in.title, true
}
