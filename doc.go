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

// Inline is implemented by every node that can live inside a Sentence: the
// primitives Text and Raw, or any host value the bridge classifies as
// inline-capable (wrapped in HostInline). Inlines itself does not
// implement Inline; an Inlines returned by a host builder is stored
// wrapped in an unexported group node.
type Inline interface {
	inlineNode()
}

// Block is implemented by every node that can live inside a Blocks: the
// primitives Paragraph and Blocks itself, a DocSegment's header, or any
// host value the bridge classifies as block-capable (wrapped in
// HostBlock).
type Block interface {
	blockNode()
}

// Header is a Block that also carries a weight controlling DocSegment
// nesting (§4.7).
type Header interface {
	Block
	Weight() int64
}

// Text is a primitive Inline holding literal prose, produced either
// directly by the lexer/dash-expansion or by Stringish coercion (§4.3
// emission rules).
type Text struct {
	Span  Span
	Value string
}

func (*Text) inlineNode() {}

// Raw is a primitive Inline holding the untokenized body of a raw scope
// that was emitted without a builder (§4.5).
type Raw struct {
	Span  Span
	Value string
}

func (*Raw) inlineNode() {}

// HostInline wraps a host value the bridge classified as inline-capable so
// it can be stored in a Sentence without the core inspecting its internals.
type HostInline struct {
	Span  Span
	Value HostValue
}

func (*HostInline) inlineNode() {}

// HostBlock wraps a host value the bridge classified as block-capable so it
// can be stored in a Blocks without the core inspecting its internals.
type HostBlock struct {
	Span  Span
	Value HostValue
}

func (*HostBlock) blockNode() {}

// Sentence is an ordered, non-empty-once-closed sequence of Inline; it is
// the atomic unit of a line inside a Paragraph (§3).
type Sentence struct {
	Span  Span
	items []Inline
}

func (s *Sentence) Len() int            { return len(s.items) }
func (s *Sentence) At(i int) Inline     { return s.items[i] }
func (s *Sentence) Inlines() []Inline   { return s.items }
func (s *Sentence) Append(i Inline)     { s.items = append(s.items, i) }
func (s *Sentence) InsertAt(i int, v Inline) {
	s.items = append(s.items[:i:i], append([]Inline{v}, s.items[i:]...)...)
}

// Inlines is an ordered sequence of Inline, the payload handed to a
// BuildFromInlines builder and the result of flattening an unbuilt
// InlineScope close.
type Inlines struct {
	Span  Span
	items []Inline
}

func (in *Inlines) Len() int        { return len(in.items) }
func (in *Inlines) At(i int) Inline { return in.items[i] }
func (in *Inlines) Items() []Inline { return in.items }
func (in *Inlines) Append(i Inline) { in.items = append(in.items, i) }
func (in *Inlines) InsertAt(i int, v Inline) {
	in.items = append(in.items[:i:i], append([]Inline{v}, in.items[i:]...)...)
}

// Paragraph is an ordered, non-empty sequence of Sentence (§3).
type Paragraph struct {
	Span      Span
	sentences []*Sentence
}

func (*Paragraph) blockNode() {}

func (p *Paragraph) Len() int             { return len(p.sentences) }
func (p *Paragraph) At(i int) *Sentence   { return p.sentences[i] }
func (p *Paragraph) Sentences() []*Sentence { return p.sentences }
func (p *Paragraph) Append(s *Sentence)   { p.sentences = append(p.sentences, s) }

// Blocks is an ordered sequence of Block: the payload handed to a
// BuildFromBlocks builder, the contents of a DocSegment, and the top-level
// contents of a Document.
type Blocks struct {
	Span  Span
	items []Block
}

func (*Blocks) blockNode() {}

func (b *Blocks) Len() int       { return len(b.items) }
func (b *Blocks) At(i int) Block { return b.items[i] }
func (b *Blocks) Items() []Block { return b.items }
func (b *Blocks) Append(v Block) { b.items = append(b.items, v) }
func (b *Blocks) InsertAt(i int, v Block) {
	b.items = append(b.items[:i:i], append([]Block{v}, b.items[i:]...)...)
}

// DocSegment is a header-rooted subtree: its own contents plus nested
// subsegments whose headers must all outweigh its own (§3, §4.7).
type DocSegment struct {
	SegHeader  Header
	Contents   *Blocks
	Subsegments []*DocSegment
}

func (d *DocSegment) Weight() int64 {
	if d.SegHeader == nil {
		return minWeight
	}
	return d.SegHeader.Weight()
}

func (d *DocSegment) appendChild(seg *DocSegment) { d.Subsegments = append(d.Subsegments, seg) }
func (d *DocSegment) appendBlock(b Block)         { d.Contents.Append(b) }
func (d *DocSegment) weight() int64               { return d.Weight() }

// minWeight represents the synthetic root's weight of -infinity (§4.7):
// every legal Header weight fits in a signed 64-bit integer, so the
// minimum representable int64 is strictly less than any real header and
// serves as the root sentinel.
const minWeight = int64(-1) << 63

// SourceText is the read-only view of a pushed source buffer that
// diagnostic rendering needs: its display name, and line/position lookups
// by byte offset. *source satisfies this directly; Document.Sources lets a
// renderer resolve any Span's Source field after the parse has finished
// and the live Parser is gone.
type SourceText interface {
	Name() string
	Line(byteOfs int) string
	Pos(byteOfs int) Pos
}

// Document is the root of the parsed tree: top-level Blocks plus a list of
// top-level DocSegments (§3, §6).
type Document struct {
	Contents *Blocks
	Segments []*DocSegment

	// Warnings accumulates non-fatal diagnostics (currently only
	// RecursionWarning) produced during the parse that produced this
	// Document (§7 policy).
	Warnings []*Diagnostic

	// Sources holds every source pushed during the parse (the initial one
	// plus every include), indexed by SourceID, so a Span attached to any
	// Diagnostic or tree node can still be resolved to source text after
	// the parse has returned.
	Sources []SourceText
}

func (d *Document) appendChild(seg *DocSegment) { d.Segments = append(d.Segments, seg) }
func (d *Document) appendBlock(b Block)         { d.Contents.Append(b) }
func (d *Document) weight() int64               { return minWeight }

// TurnipTextSource is the primitive a host eval-bracket returns to request
// that the parser push and parse another named source before resuming
// (§4.3 emission rules, §6).
type TurnipTextSource struct {
	Span Span
	NamedSource
}

func newBlocks(span Span) *Blocks     { return &Blocks{Span: span} }
func newSentence(span Span) *Sentence { return &Sentence{Span: span} }
func newParagraph(span Span) *Paragraph {
	return &Paragraph{Span: span}
}
