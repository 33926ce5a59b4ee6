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

func testHeader(weight int64) Header {
	return &hostHeader{weight: weight}
}

func TestAssemblerAppendBlockAtRoot(t *testing.T) {
	a := newAssembler()
	a.AppendBlock(&Paragraph{})
	doc := a.Document()
	if got := doc.Contents.Len(); got != 1 {
		t.Fatalf("root Blocks.Len() = %d, want 1", got)
	}
}

func TestAssemblerAppendHeaderNests(t *testing.T) {
	a := newAssembler()
	chap := a.AppendHeader(testHeader(0)) // chapter
	sec := a.AppendHeader(testHeader(1))   // section, nests under chapter
	a.AppendBlock(&Paragraph{})

	doc := a.Document()
	if got := len(doc.Segments); got != 1 {
		t.Fatalf("len(doc.Segments) = %d, want 1", got)
	}
	if doc.Segments[0] != chap {
		t.Errorf("doc.Segments[0] is not the chapter segment")
	}
	if got := len(chap.Subsegments); got != 1 {
		t.Fatalf("len(chap.Subsegments) = %d, want 1", got)
	}
	if chap.Subsegments[0] != sec {
		t.Errorf("chap.Subsegments[0] is not the section segment")
	}
	if got := sec.Contents.Len(); got != 1 {
		t.Fatalf("sec.Contents.Len() = %d, want 1 (the trailing paragraph)", got)
	}
}

func TestAssemblerAppendHeaderSiblingAscendsSpine(t *testing.T) {
	// Two same-weight headers in a row are siblings, not nested: the second
	// must ascend back past the first before attaching to their shared
	// parent (§4.7's ">=" comparison, not ">").
	a := newAssembler()
	first := a.AppendHeader(testHeader(1))
	second := a.AppendHeader(testHeader(1))

	doc := a.Document()
	if got := len(doc.Segments); got != 2 {
		t.Fatalf("len(doc.Segments) = %d, want 2 siblings", got)
	}
	if doc.Segments[0] != first || doc.Segments[1] != second {
		t.Errorf("doc.Segments = %v, want [first, second]", doc.Segments)
	}
	if got := len(first.Subsegments); got != 0 {
		t.Errorf("first.Subsegments should be empty, got %d", got)
	}
}

func TestAssemblerAppendHeaderAscendsMultipleLevels(t *testing.T) {
	// chap(0) / sec(1) / subsec(2), then a new chap(0) must ascend all the
	// way back to the root, skipping over both the section and subsection.
	a := newAssembler()
	chap1 := a.AppendHeader(testHeader(0))
	a.AppendHeader(testHeader(1))
	a.AppendHeader(testHeader(2))
	chap2 := a.AppendHeader(testHeader(0))

	doc := a.Document()
	if got := len(doc.Segments); got != 2 {
		t.Fatalf("len(doc.Segments) = %d, want 2 top-level chapters", got)
	}
	if doc.Segments[0] != chap1 || doc.Segments[1] != chap2 {
		t.Errorf("doc.Segments = %v, want [chap1, chap2]", doc.Segments)
	}
	if got := len(chap1.Subsegments); got != 1 {
		t.Errorf("chap1.Subsegments should still hold the earlier section, got %d", got)
	}
}

func TestAssemblerAppendHeaderLowerWeightOutranksAncestor(t *testing.T) {
	// A smaller weight outranks (is more senior than) a larger one: sec(1)
	// nested under chap(0), then a fresh chap(0) must still ascend past
	// sec(1) to reattach at the root, even though 0 < 1.
	a := newAssembler()
	a.AppendHeader(testHeader(0))
	a.AppendHeader(testHeader(1))
	chap2 := a.AppendHeader(testHeader(0))

	doc := a.Document()
	if got := len(doc.Segments); got != 2 {
		t.Fatalf("len(doc.Segments) = %d, want 2", got)
	}
	if doc.Segments[1] != chap2 {
		t.Errorf("doc.Segments[1] is not the second chapter")
	}
}
