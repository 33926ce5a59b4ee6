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

package turniptext

import "testing"

func mustSource(t *testing.T, contents string) *source {
	t.Helper()
	src, err := newSource(0, NamedSource{Name: "t", Contents: contents}, NullSpan(), NoSource)
	if err != nil {
		t.Fatalf("newSource: %v", err)
	}
	return src
}

func TestTokenStringifyRaw(t *testing.T) {
	src := mustSource(t, `a\{b`)
	tok := escapedToken(Span{Source: 0, Start: 1, End: 3}, EscapeSqgOpen)
	if got, want := tok.stringifyRaw(src), `\{`; got != want {
		t.Errorf("stringifyRaw() = %q, want %q", got, want)
	}
}

func TestTokenStringifyEscaped(t *testing.T) {
	tests := []struct {
		esc  Escapable
		want string
	}{
		{EscapeBackslash, "\\"},
		{EscapeSqrOpen, "["},
		{EscapeSqrClose, "]"},
		{EscapeSqgOpen, "{"},
		{EscapeSqgClose, "}"},
		{EscapeHash, "#"},
	}
	src := mustSource(t, "")
	for _, test := range tests {
		tok := escapedToken(NullSpan(), test.esc)
		if got := tok.stringifyEscaped(src); got != test.want {
			t.Errorf("stringifyEscaped(%v) = %q, want %q", test.esc, got, test.want)
		}
	}
}

func TestTokenStringifyEscapedNewlinePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic stringifying an escaped newline as text")
		}
	}()
	src := mustSource(t, "")
	escapedToken(NullSpan(), EscapeNewline).stringifyEscaped(src)
}

func TestTokenIsInert(t *testing.T) {
	if !(Token{Kind: TokWhitespace}).isInert() {
		t.Error("TokWhitespace should be inert")
	}
	if (Token{Kind: TokNewline}).isInert() {
		t.Error("TokNewline should not be inert")
	}
}
