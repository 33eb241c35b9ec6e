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
	"net/url"
	"strings"
)

// URI is the destination of a Link or Image. mmark treats URI parsing as
// an opaque external collaborator: it hands a literal
// slice to a sub-parser and gets back either a structured value or an
// error. [net/url] fills that role; no third-party URI-literal parser
// appears anywhere in the example pack (see SPEC_FULL.md, domain stack).
type URI struct {
	raw *url.URL
}

// String renders the URI the way it should appear as link/autolink text.
func (u URI) String() string {
	if u.raw == nil {
		return ""
	}
	return u.raw.String()
}

// Scheme returns the URI's scheme, or "" if it has none.
func (u URI) Scheme() string {
	if u.raw == nil {
		return ""
	}
	return u.raw.Scheme
}

// Opaque reports the part of the URI after the scheme, ignoring any
// leading "//".
func (u URI) Opaque() string {
	if u.raw == nil {
		return ""
	}
	if u.raw.Opaque != "" {
		return u.raw.Opaque
	}
	s := u.raw.String()
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimPrefix(s, "//")
}

// parseURI parses text as a URI literal. Link and image destinations are
// unescaped with decodeEscapes before they reach it; autolink bodies are
// passed as written.
func parseURI(text string) (URI, error) {
	u, err := url.Parse(text)
	if err != nil {
		return URI{}, err
	}
	return URI{raw: u}, nil
}

// makeScheme returns a scheme token; this always succeeds.
func makeScheme(name string) string {
	return name
}

// makeAbsolute attaches scheme to uri if it does not already have a
// scheme
func makeAbsolute(scheme string, uri URI) URI {
	if uri.raw != nil && uri.raw.Scheme != "" {
		return uri
	}
	raw := uri.String()
	u, err := url.Parse(scheme + ":" + raw)
	if err != nil {
		return uri
	}
	return URI{raw: u}
}
