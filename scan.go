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

import "strings"

// sourceLine is one line of input, stripped of its line terminator, along
// with its 1-based line number.
type sourceLine struct {
	text   string
	lineNo int
}

// splitLines splits input into lines, recognizing "\n", "\r\n", and "\r" as
// line terminators. mmark loads the whole document up front rather than
// reading it incrementally: streaming parsing is out of scope, so there is
// no benefit to a chunked-reader design here.
func splitLines(input string) []sourceLine {
	var lines []sourceLine
	lineNo := 1
	start := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\n':
			lines = append(lines, sourceLine{text: input[start:i], lineNo: lineNo})
			lineNo++
			start = i + 1
		case '\r':
			lines = append(lines, sourceLine{text: input[start:i], lineNo: lineNo})
			lineNo++
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(input) {
		lines = append(lines, sourceLine{text: input[start:], lineNo: lineNo})
	}
	return lines
}

// isBlankLine reports whether line consists entirely of horizontal
// whitespace.
func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return false
		}
	}
	return true
}

// leadingWhitespace returns the length of the run of spaces and tabs at
// the start of line.
func leadingWhitespace(line string) int {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return i
}

// indentColumn returns the 1-based column reached after consuming line's
// leading whitespace, i.e. the column of the first non-whitespace
// character (or len(line)+1 worth of columns if the line is blank).
func indentColumn(line string) int {
	n := leadingWhitespace(line)
	return columnAfter(1, line[:n])
}

// ilevel is the column at which an indented code block must start:
// rlevel + 4.
func ilevel(rlevel int) int {
	return rlevel + 4
}

// casualLevel reports whether alevel is shallow enough to try the
// "casual" block alternatives (thematic break, heading, fence, list,
// paragraph) rather than committing to an indented code block.
func casualLevel(alevel, rlevel int) bool {
	return alevel < ilevel(rlevel)
}

// codeBlockLevel reports whether alevel is deep enough to require an
// indented code block.
func codeBlockLevel(alevel, rlevel int) bool {
	return alevel > rlevel+3
}

// stripIndent drops up to (indent-1) effective columns of leading
// whitespace-or-'>' characters from line. Tabs count as 4 columns;
// every other consumed character counts as 1. The '>' allowance is
// inherited unchanged from the shared block-quote/code indentation
// stripper this is modeled on; mmark never constructs a block-quote
// container (see DESIGN.md open question 2), so in practice '>' is only
// ever stripped when it happens to be literal leading punctuation within
// the stripping budget.
func stripIndent(indent int, line string) string {
	budget := indent - 1
	col := 0
	i := 0
loop:
	for i < len(line) && col < budget {
		switch line[i] {
		case ' ', '>':
			col++
			i++
		case '\t':
			col += tabStopSize
			i++
		default:
			break loop
		}
	}
	return line[i:]
}

// assembleCodeBlock strips each line's indentation and joins the result
// with '\n', appending a final trailing newline
func assembleCodeBlock(indent int, lines []string) string {
	stripped := make([]string, len(lines))
	for i, l := range lines {
		stripped[i] = stripIndent(indent, l)
	}
	return strings.Join(stripped, "\n") + "\n"
}

// assembleParagraph joins lines with '\n', right-trimming horizontal
// whitespace from the final line only
func assembleParagraph(lines []string) string {
	joined := strings.Join(lines, "\n")
	return strings.TrimRight(joined, " \t")
}

// collapseWhitespace replaces every maximal run of ASCII whitespace in s
// with a single space, then trims both ends: a code span's text must
// contain no leading or trailing space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	inWS := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			inWS = true
			continue
		}
		if inWS {
			b.WriteByte(' ')
			inWS = false
		}
		b.WriteByte(c)
	}
	if inWS {
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}
