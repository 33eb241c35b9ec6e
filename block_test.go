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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBlocksForTest(input string) ([]*Block, *blockParser) {
	bp := newBlockParser("", splitLines(input))
	blocks := bp.parseBlocks(1)
	return blocks, bp
}

func TestTryThematicBreak(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"***\n", true},
		{"---\n", true},
		{"___\n", true},
		{"  * * *\n", true},
		{"**\n", false},
		{"--\n", false},
		{"*-*\n", false},
	}
	for _, test := range tests {
		blocks, _ := parseBlocksForTest(test.input)
		got := len(blocks) == 1 && blocks[0].Kind() == ThematicBreakKind
		assert.Equalf(t, test.want, got, "parseBlocks(%q) thematic break", test.input)
	}
}

func TestTryATXHeading(t *testing.T) {
	blocks, _ := parseBlocksForTest("## Two\n")
	require.Len(t, blocks, 1)
	require.Equal(t, HeadingKind, blocks[0].Kind())
	assert.Equal(t, 2, blocks[0].Level())
	assert.Equal(t, "Two", blocks[0].payload.Raw)
}

func TestTryATXHeadingTooManyHashes(t *testing.T) {
	blocks, _ := parseBlocksForTest("####### too many\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, ParagraphKind, blocks[0].Kind())
}

func TestTryATXHeadingEmptyText(t *testing.T) {
	// The opener "# " is recognized (space after the hash), but trailing
	// whitespace alone leaves no heading text.
	_, bp := parseBlocksForTest("#   \n")
	assert.Len(t, bp.errs, 1, errStrings(bp.errs))
}

func TestTryATXHeadingStripsClosingSequence(t *testing.T) {
	blocks, _ := parseBlocksForTest("# Title ###\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, "Title", blocks[0].payload.Raw)
}

func TestTryFencedCode(t *testing.T) {
	blocks, _ := parseBlocksForTest("```hs\nfoo\n```\n")
	require.Len(t, blocks, 1)
	require.Equal(t, CodeBlockKind, blocks[0].Kind())
	info, ok := blocks[0].Info()
	require.True(t, ok)
	assert.Equal(t, "hs", info)
	assert.Equal(t, "foo\n", blocks[0].Content())
}

func TestTryFencedCodeBacktickInfoRejected(t *testing.T) {
	// A backtick-fenced block whose info string itself contains a
	// backtick isn't a valid fence opener.
	blocks, _ := parseBlocksForTest("```a`b\nfoo\n```\n")
	require.Len(t, blocks, 1)
	assert.Equal(t, ParagraphKind, blocks[0].Kind())
}

func TestTryFencedCodeUnterminated(t *testing.T) {
	blocks, _ := parseBlocksForTest("```\nfoo\nbar\n")
	require.Len(t, blocks, 1)
	require.Equal(t, CodeBlockKind, blocks[0].Kind())
	assert.Equal(t, "foo\nbar\n", blocks[0].Content())
	_, ok := blocks[0].Info()
	assert.False(t, ok)
}

func TestParseIndentedCode(t *testing.T) {
	blocks, _ := parseBlocksForTest("    foo\n    bar\n")
	require.Len(t, blocks, 1)
	require.Equal(t, CodeBlockKind, blocks[0].Kind())
	assert.Equal(t, "foo\nbar\n", blocks[0].Content())
}

func TestTryUnorderedList(t *testing.T) {
	blocks, _ := parseBlocksForTest("* one\n* two\n")
	require.Len(t, blocks, 1)
	require.Equal(t, UnorderedListKind, blocks[0].Kind())
	items := blocks[0].Items()
	require.Len(t, items, 2)
	for i, item := range items {
		assert.Equalf(t, ListItemKind, item.Kind(), "items[%d].Kind()", i)
		nested := item.Blocks()
		require.Lenf(t, nested, 1, "items[%d].Blocks()", i)
		assert.Equalf(t, ParagraphKind, nested[0].Kind(), "items[%d].Blocks()[0].Kind()", i)
	}
}

func TestParseParagraphMultiline(t *testing.T) {
	blocks, _ := parseBlocksForTest("foo\nbar\n")
	require.Len(t, blocks, 1)
	require.Equal(t, ParagraphKind, blocks[0].Kind())
	assert.Equal(t, "foo\nbar", blocks[0].payload.Raw)
}

func TestParseBlocksBlankLineSeparates(t *testing.T) {
	blocks, _ := parseBlocksForTest("foo\n\nbar\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, "foo", blocks[0].payload.Raw)
	assert.Equal(t, "bar", blocks[1].payload.Raw)
}

func TestDecodeEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`\*foo\*`, "*foo*"},
		{`\a`, `\a`},
		{`\\`, `\`},
	}
	for _, test := range tests {
		assert.Equalf(t, test.want, decodeEscapes(test.input), "decodeEscapes(%q)", test.input)
	}
}
