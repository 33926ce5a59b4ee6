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

func TestParagraphAppend(t *testing.T) {
	para := newParagraph(NullSpan())
	s1 := newSentence(NullSpan())
	s1.Append(&Text{Value: "a"})
	s2 := newSentence(NullSpan())
	s2.Append(&Text{Value: "b"})
	para.Append(s1)
	para.Append(s2)

	if got := para.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
	if got := para.At(0).At(0).(*Text).Value; got != "a" {
		t.Errorf("At(0).At(0) = %q, want %q", got, "a")
	}
}

func TestBlocksInsertAt(t *testing.T) {
	b := newBlocks(NullSpan())
	b.Append(&Paragraph{})
	b.Append(&Paragraph{})
	marker := &HostBlock{Value: "middle"}
	b.InsertAt(1, marker)

	if got, want := b.Len(), 3; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if b.At(1) != Block(marker) {
		t.Errorf("At(1) did not return the inserted block")
	}
}

func TestSentenceInsertAt(t *testing.T) {
	s := newSentence(NullSpan())
	s.Append(&Text{Value: "a"})
	s.Append(&Text{Value: "c"})
	s.InsertAt(1, &Text{Value: "b"})

	var got []string
	for i := 0; i < s.Len(); i++ {
		got = append(got, s.At(i).(*Text).Value)
	}
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("At(%d) = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDocSegmentWeight(t *testing.T) {
	hdr := &hostHeader{weight: 5}
	seg := &DocSegment{SegHeader: hdr, Contents: newBlocks(NullSpan())}
	if got := seg.Weight(); got != 5 {
		t.Errorf("Weight() = %d, want 5", got)
	}

	root := &DocSegment{Contents: newBlocks(NullSpan())}
	if got := root.Weight(); got != minWeight {
		t.Errorf("Weight() with nil SegHeader = %d, want minWeight", got)
	}
}

func TestDocumentWeightIsRootSentinel(t *testing.T) {
	doc := &Document{Contents: newBlocks(NullSpan())}
	if got := doc.weight(); got != minWeight {
		t.Errorf("Document.weight() = %d, want minWeight", got)
	}
}
