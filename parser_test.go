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

// This file drives turniptext.Parse end to end through testhost, so it
// lives in an external test package: testhost imports turniptext, and an
// internal turniptext test file importing testhost would form a cycle.
package turniptext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turniptext.dev/go/turniptext"
	"turniptext.dev/go/turniptext/testhost"
)

func parse(t *testing.T, contents string) *turniptext.Document {
	t.Helper()
	h := testhost.NewHost()
	doc, err := turniptext.Parse(h, turniptext.NamedSource{Name: "main", Contents: contents}, turniptext.ParseOptions{})
	require.NoError(t, err)
	return doc
}

func sentenceText(s *turniptext.Sentence) string {
	var out string
	for i := 0; i < s.Len(); i++ {
		if text, ok := s.At(i).(*turniptext.Text); ok {
			out += text.Value
		}
	}
	return out
}

// headerValue returns the host value a DocSegment's header was classified
// from, or nil if h does not expose one.
func headerValue(h turniptext.Header) turniptext.HostValue {
	if hv, ok := h.(interface{ HostValue() turniptext.HostValue }); ok {
		return hv.HostValue()
	}
	return nil
}

func TestParseBareText(t *testing.T) {
	doc := parse(t, "hello world\n")

	require.Equal(t, 1, doc.Contents.Len())
	para, ok := doc.Contents.At(0).(*turniptext.Paragraph)
	require.True(t, ok, "block 0 should be a Paragraph")
	require.Equal(t, 1, para.Len())
	assert.Equal(t, "hello world", sentenceText(para.At(0)))
}

func TestParseImmediateEvalPreservesSurroundingWhitespace(t *testing.T) {
	doc := parse(t, "a [1] b\n")

	require.Equal(t, 1, doc.Contents.Len())
	para, ok := doc.Contents.At(0).(*turniptext.Paragraph)
	require.True(t, ok, "block 0 should be a Paragraph")
	require.Equal(t, 1, para.Len())
	assert.Equal(t, "a 1 b", sentenceText(para.At(0)))
}

func TestParseTwoSentencesOneParagraph(t *testing.T) {
	doc := parse(t, "First sentence.\nSecond sentence.\n")

	require.Equal(t, 1, doc.Contents.Len())
	para, ok := doc.Contents.At(0).(*turniptext.Paragraph)
	require.True(t, ok, "block 0 should be a Paragraph")
	require.Equal(t, 2, para.Len())
	assert.Equal(t, "First sentence.", sentenceText(para.At(0)))
	assert.Equal(t, "Second sentence.", sentenceText(para.At(1)))
}

func TestParseEvalBuilderEmph(t *testing.T) {
	doc := parse(t, "a [emph()]{b} c\n")

	require.Equal(t, 1, doc.Contents.Len())
	para := doc.Contents.At(0).(*turniptext.Paragraph)
	require.Equal(t, 1, para.Len())
	sent := para.At(0)

	var found *testhost.Inline
	for i := 0; i < sent.Len(); i++ {
		if hi, ok := sent.At(i).(*turniptext.HostInline); ok {
			if in, ok := hi.Value.(*testhost.Inline); ok {
				found = in
			}
		}
	}
	require.NotNil(t, found, "expected an emph inline in the sentence")
	assert.Equal(t, "emph", found.Label)
	require.Equal(t, 1, len(found.Items))
	text, ok := found.Items[0].(*turniptext.Text)
	require.True(t, ok)
	assert.Equal(t, "b", text.Value)
}

func TestParseHyphenExpansion(t *testing.T) {
	doc := parse(t, "a - b -- c --- d ---- e\n")

	para := doc.Contents.At(0).(*turniptext.Paragraph)
	got := sentenceText(para.At(0))
	want := "a - b – c — d —- e"
	assert.Equal(t, want, got)
}

func TestParseInlineScopeOpenedMidLineWithNoContentIsBlockShaped(t *testing.T) {
	h := testhost.NewHost()
	_, err := turniptext.Parse(h, turniptext.NamedSource{
		Name:     "main",
		Contents: "foo {\nbar}\n",
	}, turniptext.ParseOptions{})
	require.Error(t, err)

	diag, ok := err.(*turniptext.Diagnostic)
	require.True(t, ok, "err = %T, want *turniptext.Diagnostic", err)
	assert.Equal(t, turniptext.InlineScopeOpenedMidLineButBlockShape, diag.Kind)
}

func TestParseInlineScopeWithContentThenNewlineStillErrors(t *testing.T) {
	h := testhost.NewHost()
	_, err := turniptext.Parse(h, turniptext.NamedSource{
		Name:     "main",
		Contents: "foo {bar\nbaz}\n",
	}, turniptext.ParseOptions{})
	require.Error(t, err)

	diag, ok := err.(*turniptext.Diagnostic)
	require.True(t, ok, "err = %T, want *turniptext.Diagnostic", err)
	assert.Equal(t, turniptext.InlineScopeClosedAcrossNewline, diag.Kind)
}

func TestParseHeaderInsideBlockScopeStaysLocal(t *testing.T) {
	doc := parse(t, "{\n[chap(\"One\")]\n\n}\n")

	assert.Empty(t, doc.Segments, "a header emitted inside a block scope must not open a document segment")
	require.Equal(t, 1, doc.Contents.Len())
	hdr, ok := doc.Contents.At(0).(turniptext.Header)
	require.True(t, ok, "block 0 should still classify as a Header")
	assert.Equal(t, int64(0), hdr.Weight())
}

func TestParseHeaderWeighting(t *testing.T) {
	doc := parse(t, "[chap(\"One\")]\n\nintro text\n\n[sec(\"Sub\")]\n\nsection text\n")

	require.Equal(t, 1, len(doc.Segments))
	chap := doc.Segments[0]
	chapHdr, ok := headerValue(chap.SegHeader).(*testhost.Header)
	require.True(t, ok)
	assert.Equal(t, "One", chapHdr.Title)
	assert.Equal(t, int64(0), chap.Weight())

	require.Equal(t, 1, chap.Contents.Len())
	require.Equal(t, 1, len(chap.Subsegments))
	sec := chap.Subsegments[0]
	secHdr, ok := headerValue(sec.SegHeader).(*testhost.Header)
	require.True(t, ok)
	assert.Equal(t, "Sub", secHdr.Title)
	assert.Equal(t, int64(1), sec.Weight())
}

func TestParseRecursiveInclude(t *testing.T) {
	h := testhost.NewHost()
	h.RegisterSource("other", "included text\n")
	doc, err := turniptext.Parse(h, turniptext.NamedSource{Name: "main", Contents: "[load(\"other\")]\n"}, turniptext.ParseOptions{})
	require.NoError(t, err)

	require.Equal(t, 1, doc.Contents.Len())
	para := doc.Contents.At(0).(*turniptext.Paragraph)
	assert.Equal(t, "included text", sentenceText(para.At(0)))
	assert.Equal(t, 2, len(doc.Sources))
}

func TestParseRecursionLimitFires(t *testing.T) {
	h := testhost.NewHost()
	h.RegisterSource("loop", "[load(\"loop\")]\n")
	_, err := turniptext.Parse(h, turniptext.NamedSource{Name: "loop", Contents: "[load(\"loop\")]\n"}, turniptext.ParseOptions{MaxFileDepth: 8})
	require.Error(t, err)

	diag, ok := err.(*turniptext.Diagnostic)
	require.True(t, ok, "err should be a *turniptext.Diagnostic")
	assert.Equal(t, turniptext.RecursionLimit, diag.Kind)
}

func TestParseRecursionWarningIsNonFatal(t *testing.T) {
	h := testhost.NewHost()
	h.RegisterSource("dup", "second\n")
	doc, err := turniptext.Parse(h, turniptext.NamedSource{
		// main pushes a source also named "dup" (via the two-arg load
		// form) whose own content loads the registered "dup" by name,
		// reusing the name while the first "dup" is still on the stack.
		// The outer bracket is fenced so the `]` inside its string
		// argument does not close it.
		Name:     "main",
		Contents: "[-load(\"dup\", \"[load(\\\"dup\\\")]\")-]\n",
	}, turniptext.ParseOptions{RecursionWarning: true})
	require.NoError(t, err)

	var sawWarning bool
	for _, w := range doc.Warnings {
		if w.Kind == turniptext.RecursionWarning {
			sawWarning = true
		}
	}
	assert.True(t, sawWarning, "expected a RecursionWarning for the reused source name \"dup\"")
}
