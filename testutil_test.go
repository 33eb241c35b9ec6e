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

import (
	"fmt"
	"strings"
)

// dumpBlocks renders a block sequence into the compact notation used
// throughout this package's tests, mirroring the shape of worked examples
// like "Paragraph([Plain(\"a \"), Emphasis([Plain(\"b\")])])".
func dumpBlocks(blocks []*Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = dumpBlock(b)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func dumpBlock(b *Block) string {
	switch b.Kind() {
	case ThematicBreakKind:
		return "ThematicBreak"
	case HeadingKind:
		return fmt.Sprintf("Heading(%d, %s)", b.Level(), dumpInlines(b.Inlines()))
	case CodeBlockKind:
		info, ok := b.Info()
		if !ok {
			return fmt.Sprintf("CodeBlock(nil, %q)", b.Content())
		}
		return fmt.Sprintf("CodeBlock(%q, %q)", info, b.Content())
	case ParagraphKind:
		return fmt.Sprintf("Paragraph(%s)", dumpInlines(b.Inlines()))
	case UnorderedListKind:
		return fmt.Sprintf("UnorderedList(%s)", dumpBlocks(b.Items()))
	case ListItemKind:
		return fmt.Sprintf("ListItem(%s)", dumpBlocks(b.Blocks()))
	default:
		return "?"
	}
}

func dumpInlines(ins []*Inline) string {
	parts := make([]string, len(ins))
	for i, in := range ins {
		parts[i] = dumpInline(in)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func dumpInline(in *Inline) string {
	switch in.Kind() {
	case PlainKind:
		return fmt.Sprintf("Plain(%q)", in.Text())
	case LineBreakKind:
		return "LineBreak"
	case CodeSpanKind:
		return fmt.Sprintf("CodeSpan(%q)", in.Text())
	case EmphasisKind:
		return fmt.Sprintf("Emphasis(%s)", dumpInlines(in.Children()))
	case StrongKind:
		return fmt.Sprintf("Strong(%s)", dumpInlines(in.Children()))
	case StrikeoutKind:
		return fmt.Sprintf("Strikeout(%s)", dumpInlines(in.Children()))
	case SubscriptKind:
		return fmt.Sprintf("Subscript(%s)", dumpInlines(in.Children()))
	case SuperscriptKind:
		return fmt.Sprintf("Superscript(%s)", dumpInlines(in.Children()))
	case LinkKind:
		title, ok := in.Title()
		if ok {
			return fmt.Sprintf("Link(%s, %q, %q)", dumpInlines(in.Children()), in.Destination().String(), title)
		}
		return fmt.Sprintf("Link(%s, %q)", dumpInlines(in.Children()), in.Destination().String())
	case ImageKind:
		title, ok := in.Title()
		if ok {
			return fmt.Sprintf("Image(%s, %q, %q)", dumpInlines(in.Children()), in.Destination().String(), title)
		}
		return fmt.Sprintf("Image(%s, %q)", dumpInlines(in.Children()), in.Destination().String())
	default:
		return "?"
	}
}

// errStrings renders a ParseError slice as a slice of its Error() strings,
// for concise failure messages.
func errStrings(errs []*ParseError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}
