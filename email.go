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

import "net/mail"

// isValidEmail is the opaque email-validator predicate autolinks rely on.
// [net/mail.ParseAddress] fills that external-collaborator role, the same
// way [net/url] fills the URI-parser role (see uri.go).
func isValidEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// ParseAddress accepts "Display Name <addr>" forms; autolinks only
	// ever contain a bare address, so reject anything that isn't one.
	return addr.Address == s && addr.Name == ""
}
