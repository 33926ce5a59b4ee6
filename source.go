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

import (
	"sort"
	"unicode/utf8"
)

// NamedSource is the caller-supplied (name, contents) pair that seeds a
// parse, or that a host TurnipTextSource value carries for an include.
type NamedSource struct {
	Name     string
	Contents string
}

// source is one buffer on the source stack: a name, its raw bytes, and a
// line map, built when the source is created, for byte->Pos conversion.
// The byte cursor lives in the lexer reading the source. A source is owned
// by the sourceStack and destroyed when its parse completes.
type source struct {
	id       SourceID
	name     string
	contents string
	lineMap  []int // byte offset of the start of each line; lineMap[0] == 0

	// pushedFrom is the span of the eval-bracket (or the zero Span for the
	// initial source) that caused this source to be pushed, used for
	// recursion-chain diagnostics.
	pushedFrom Span
	pushedFromSource SourceID
}

func newSource(id SourceID, ns NamedSource, pushedFrom Span, pushedFromSource SourceID) (*source, error) {
	if !utf8.ValidString(ns.Contents) {
		return nil, &Diagnostic{
			Kind:    InvalidUtf8,
			Message: "source " + ns.Name + " is not valid UTF-8",
			Primary: Span{Source: id, Start: 0, End: len(ns.Contents)},
		}
	}
	if i := indexByte(ns.Contents, 0); i >= 0 {
		return nil, &Diagnostic{
			Kind:    NulInSource,
			Message: "source " + ns.Name + " contains a NUL byte",
			Primary: Span{Source: id, Start: i, End: i + 1},
		}
	}
	s := &source{
		id:               id,
		name:             ns.Name,
		contents:         ns.Contents,
		pushedFrom:       pushedFrom,
		pushedFromSource: pushedFromSource,
	}
	s.buildLineMap()
	return s, nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func (s *source) buildLineMap() {
	s.lineMap = append(s.lineMap, 0)
	for i := 0; i < len(s.contents); i++ {
		switch s.contents[i] {
		case '\n':
			s.lineMap = append(s.lineMap, i+1)
		case '\r':
			// A standalone \r (not part of \r\n) also starts a new
			// logical line for diagnostic purposes.
			if i+1 >= len(s.contents) || s.contents[i+1] != '\n' {
				s.lineMap = append(s.lineMap, i+1)
			}
		}
	}
}

// Name returns the source's display name, satisfying SourceText.
func (s *source) Name() string { return s.name }

// Pos converts a byte offset into a 1-based line/column position. Column is
// counted in UTF-8 runes from the start of the line, not bytes.
func (s *source) Pos(byteOfs int) Pos {
	if byteOfs < 0 {
		byteOfs = 0
	}
	if byteOfs > len(s.contents) {
		byteOfs = len(s.contents)
	}
	line := sort.Search(len(s.lineMap), func(i int) bool { return s.lineMap[i] > byteOfs }) - 1
	if line < 0 {
		line = 0
	}
	lineStart := s.lineMap[line]
	col := utf8.RuneCountInString(s.contents[lineStart:byteOfs])
	return Pos{Line: line + 1, Column: col + 1}
}

// Line returns the raw bytes of the line containing byteOfs, without its
// trailing newline sequence.
func (s *source) Line(byteOfs int) string {
	line := sort.Search(len(s.lineMap), func(i int) bool { return s.lineMap[i] > byteOfs }) - 1
	if line < 0 {
		line = 0
	}
	start := s.lineMap[line]
	end := len(s.contents)
	if line+1 < len(s.lineMap) {
		end = s.lineMap[line+1]
	}
	for end > start && (s.contents[end-1] == '\n' || s.contents[end-1] == '\r') {
		end--
	}
	return s.contents[start:end]
}

// sourceStack is the stack of named UTF-8 buffers being parsed, supporting
// recursive includes (§4.3 TurnipTextSource emission).
type sourceStack struct {
	sources      []*source // sources[0] is the original top-level source
	stack        []SourceID
	nextID       SourceID
	maxDepth     int
	warnOnReuse  bool
	namesOnStack map[string]int
}

func newSourceStack(maxDepth int, warnOnReuse bool) *sourceStack {
	return &sourceStack{
		maxDepth:     maxDepth,
		warnOnReuse:  warnOnReuse,
		namesOnStack: make(map[string]int),
	}
}

// push validates and pushes a new source, returning it, or a fatal
// RecursionLimit diagnostic if the stack is already at maxDepth, or a
// RecursionWarning if the same name reappears and warnings are enabled.
func (ss *sourceStack) push(ns NamedSource, pushedFrom Span) (*source, *Diagnostic, error) {
	if len(ss.stack) >= ss.maxDepth {
		return nil, nil, &Diagnostic{
			Kind:    RecursionLimit,
			Message: "exceeded maximum include depth of turniptext sources",
			Primary: pushedFrom,
		}
	}
	var pushedFromSource SourceID = NoSource
	if len(ss.stack) > 0 {
		pushedFromSource = ss.stack[len(ss.stack)-1]
	}
	id := ss.nextID
	ss.nextID++
	src, err := newSource(id, ns, pushedFrom, pushedFromSource)
	if err != nil {
		return nil, nil, err
	}
	ss.sources = append(ss.sources, src)
	ss.stack = append(ss.stack, id)

	var warning *Diagnostic
	if ss.warnOnReuse {
		if n := ss.namesOnStack[ns.Name]; n > 0 {
			warning = &Diagnostic{
				Kind:     RecursionWarning,
				Severity: SeverityWarning,
				Message:  "source \"" + ns.Name + "\" is already on the include stack",
				Primary:  pushedFrom,
			}
			for i := len(ss.stack) - 2; i >= 0; i-- {
				if from := ss.get(ss.stack[i]).pushedFrom; from.Source != NoSource {
					warning.Secondary = append(warning.Secondary, Label{Span: from, Note: "included from here"})
				}
			}
		}
		ss.namesOnStack[ns.Name]++
	}
	return src, warning, nil
}

// pop removes the topmost source from the stack.
func (ss *sourceStack) pop() {
	n := len(ss.stack)
	if n == 0 {
		panic("turniptext: pop on empty source stack")
	}
	top := ss.get(ss.stack[n-1])
	if ss.warnOnReuse {
		ss.namesOnStack[top.name]--
	}
	ss.stack = ss.stack[:n-1]
}

func (ss *sourceStack) depth() int {
	return len(ss.stack)
}

func (ss *sourceStack) get(id SourceID) *source {
	return ss.sources[int(id)]
}

func (ss *sourceStack) top() *source {
	return ss.get(ss.stack[len(ss.stack)-1])
}

// exportAll returns every source pushed during the parse, in SourceID
// order, as the public SourceText view diag rendering needs. Unlike
// stack/pop bookkeeping, sources is append-only and never shrinks, so a
// popped include's text is still available after the parse completes.
func (ss *sourceStack) exportAll() []SourceText {
	out := make([]SourceText, len(ss.sources))
	for i, s := range ss.sources {
		out[i] = s
	}
	return out
}
