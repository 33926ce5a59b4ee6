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

// segmentContainer is implemented by Document and DocSegment: anything the
// assembler's spine can append a block or a header-rooted child to.
type segmentContainer interface {
	appendChild(*DocSegment)
	appendBlock(Block)
	weight() int64
}

// assembler is the document assembler (§2 component 5, §4.7): an
// append-only tree builder holding the current segment spine, from the
// synthetic root (weight -infinity) down to the most recently opened
// header.
type assembler struct {
	doc   *Document
	spine []segmentContainer
}

func newAssembler() *assembler {
	doc := &Document{Contents: newBlocks(NullSpan())}
	return &assembler{doc: doc, spine: []segmentContainer{doc}}
}

func (a *assembler) top() segmentContainer {
	return a.spine[len(a.spine)-1]
}

// AppendBlock appends b to the Blocks of whichever segment is currently
// open at the bottom of the spine.
func (a *assembler) AppendBlock(b Block) {
	a.top().appendBlock(b)
}

// AppendHeader implements the §4.7 weight-placement algorithm: ascend the
// spine while the current segment's weight is >= h's weight, then append a
// new child DocSegment to the deepest remaining ancestor and descend into
// it.
func (a *assembler) AppendHeader(h Header) *DocSegment {
	for len(a.spine) > 1 && a.top().weight() >= h.Weight() {
		a.spine = a.spine[:len(a.spine)-1]
	}
	seg := &DocSegment{SegHeader: h, Contents: newBlocks(NullSpan())}
	a.top().appendChild(seg)
	a.spine = append(a.spine, seg)
	return seg
}

// Document returns the assembled document. Valid to call at any point, but
// only meaningful once the parse has finished (the tree is append-only
// until then, per §5).
func (a *assembler) Document() *Document {
	return a.doc
}
