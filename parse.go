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

// Package mmark parses mmark documents: an optional YAML front matter
// block followed by a sequence of blocks (thematic breaks, ATX headings,
// code blocks, paragraphs, and unordered lists whose items hold nested
// block sequences), with
// paragraph and heading text further parsed into an inline tree of
// emphasis, links, images, code spans, and autolinks.
package mmark

import "go4.org/bytereplacer"

// nulReplacer replaces NUL bytes with the Unicode replacement character;
// Parse applies it to the whole input before parsing begins.
var nulReplacer = bytereplacer.New("\x00", "�")

// Parse parses a complete mmark document. fileName is recorded in every
// returned Position and ParseError but is not otherwise interpreted; it
// may be empty.
//
// Parse runs both parsing phases to completion before returning: a
// block-level failure does not stop the parser
// from attempting to resolve the inline payloads of the blocks it did
// recognize, and the returned errors (if any) are the union of both
// phases, in source order. The Document is returned only when that union
// is empty.
func Parse(fileName, input string) (*Document, []*ParseError) {
	input = string(nulReplacer.Replace([]byte(input)))
	lines := splitLines(input)

	yamlValue, consumed, fmErr := parseFrontMatter(fileName, lines)
	hasYAML := consumed > 0 || fmErr != nil

	var errs []*ParseError
	if fmErr != nil {
		errs = append(errs, fmErr)
	}

	bp := newBlockParser(fileName, lines[consumed:])
	blocks := bp.parseBlocks(1)
	errs = append(errs, bp.errs...)
	errs = append(errs, resolveInlines(blocks)...)

	sortErrors(errs)
	if len(errs) > 0 {
		return nil, errs
	}
	return &Document{HasYAML: hasYAML, YAML: yamlValue, Blocks: blocks}, nil
}

// resolveInlines runs the inline parser over every HeadingKind and
// ParagraphKind block's pending Isp payload, recursing into list items.
// Errors carry an end-of-input sentinel whose label is rewritten to
// "end of inline block".
func resolveInlines(blocks []*Block) []*ParseError {
	var errs []*ParseError
	for _, b := range blocks {
		switch b.kind {
		case HeadingKind, ParagraphKind:
			in, err := parseInline(b.payload, defaultInlineConfig())
			if err != nil {
				errs = append(errs, withEOFLabel(err, "end of inline block"))
				continue
			}
			b.inlines = in
			b.payload = nil
		case UnorderedListKind:
			for _, item := range b.items {
				errs = append(errs, resolveInlines(item.blocks)...)
			}
		}
	}
	return errs
}
