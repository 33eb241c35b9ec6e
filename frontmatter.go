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
	"regexp"
	"strconv"
	"strings"

	yaml "go.yaml.in/yaml/v2"
)

// yamlExceptionPattern matches the external YAML decoder's
// "YAML parse exception at line L, column C:\n<rest>" message shape
// described in the grammar, so the reported position can be corrected for
// the stripped opening "---" line.
var yamlExceptionPattern = regexp.MustCompile(`(?s)^YAML parse exception at line (\d+), column (\d+):\n(.*)$`)

// frontMatterOpener reports whether the first line of lines is exactly
// "---" followed only by horizontal whitespace, which is the only
// trigger for front matter recognition.
func frontMatterOpener(lines []sourceLine) bool {
	if len(lines) == 0 {
		return false
	}
	first := lines[0].text
	if !strings.HasPrefix(first, "---") {
		return false
	}
	return isBlankLine(first[3:])
}

// frontMatterFenceLine reports whether line's trimmed content is exactly
// "---".
func frontMatterFenceLine(line string) bool {
	return strings.TrimSpace(line) == "---"
}

// parseFrontMatter attempts to recognize and decode a leading YAML front
// matter block. It reports the value (nil if none was present or if the
// document had no front matter section), the number of lines consumed
// from lines, and a non-nil error if front matter was present but failed
// to decode.
func parseFrontMatter(file string, lines []sourceLine) (value any, consumed int, err *ParseError) {
	if !frontMatterOpener(lines) {
		return nil, 0, nil
	}

	bodyEnd := len(lines)
	closeLine := -1
	for i := 1; i < len(lines); i++ {
		if frontMatterFenceLine(lines[i].text) {
			bodyEnd = i
			closeLine = i
			break
		}
	}

	var body []string
	for _, l := range lines[1:bodyEnd] {
		body = append(body, l.text)
	}
	bodyText := strings.Join(body, "\n")

	var v any
	if decodeErr := yaml.Unmarshal([]byte(bodyText), &v); decodeErr != nil {
		pos := Position{File: file, Line: 1, Column: 1}
		if m := yamlExceptionPattern.FindStringSubmatch(decodeErr.Error()); m != nil {
			line, _ := strconv.Atoi(m[1])
			col, _ := strconv.Atoi(m[2])
			pos = Position{File: file, Line: line + 2, Column: col + 1}
			return nil, 0, fancyErr(pos, YamlParseError{Message: m[3]})
		}
		return nil, 0, fancyErr(pos, YamlParseError{Message: decodeErr.Error()})
	}

	if closeLine >= 0 {
		return v, closeLine + 1, nil
	}
	return v, len(lines), nil
}
