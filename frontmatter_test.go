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

func TestFrontMatterOpener(t *testing.T) {
	tests := []struct {
		name  string
		lines []sourceLine
		want  bool
	}{
		{"Exact", []sourceLine{{"---", 1}}, true},
		{"TrailingSpace", []sourceLine{{"---  ", 1}}, true},
		{"FourDashes", []sourceLine{{"----", 1}}, false},
		{"NotOpener", []sourceLine{{"# Hello", 1}}, false},
		{"Empty", nil, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, frontMatterOpener(test.lines))
		})
	}
}

func TestParseFrontMatterAbsent(t *testing.T) {
	lines := splitLines("# Hello\n")
	v, consumed, err := parseFrontMatter("", lines)
	assert.Nil(t, v)
	assert.Equal(t, 0, consumed)
	assert.Nil(t, err)
}

func TestParseFrontMatterValue(t *testing.T) {
	lines := splitLines("---\ntitle: x\n---\n# T\n")
	v, consumed, err := parseFrontMatter("", lines)
	require.Nil(t, err)
	assert.Equal(t, 3, consumed)
	m, ok := v.(map[any]any)
	require.True(t, ok, "v = %#v (%T); want map", v, v)
	assert.Equal(t, "x", m["title"])
}

func TestParseFrontMatterEmptyBody(t *testing.T) {
	lines := splitLines("---\n---\n")
	v, consumed, err := parseFrontMatter("", lines)
	require.Nil(t, err)
	assert.Nil(t, v)
	assert.Equal(t, 2, consumed)
}

func TestParseFrontMatterUnclosed(t *testing.T) {
	lines := splitLines("---\ntitle: x\n")
	v, consumed, err := parseFrontMatter("", lines)
	require.Nil(t, err)
	m, ok := v.(map[any]any)
	require.True(t, ok)
	assert.Equal(t, "x", m["title"])
	assert.Equal(t, len(lines), consumed)
}

func TestParseFrontMatterDecodeError(t *testing.T) {
	lines := splitLines("---\n: : :\n---\n")
	_, _, err := parseFrontMatter("doc.mm", lines)
	require.NotNil(t, err)
	_, ok := err.Fancy.(YamlParseError)
	assert.True(t, ok, "err.Fancy = %#v (%T); want YamlParseError", err.Fancy, err.Fancy)
}
