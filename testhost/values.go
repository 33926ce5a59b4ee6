// Package testhost is a small reference HostBridge implementation used to
// drive the core parser end to end without embedding a real interpreter: an
// expression/statement evaluator over a flat namespace, plus the three
// builder object shapes, mirroring the role helpers.py/helpers.rs play in
// the language turniptext was distilled from.
package testhost

import "turniptext.dev/go/turniptext"

// Block is a host-classified block value carrying arbitrary children; the
// "note" builder returns one built from its block scope's contents.
type Block struct {
	Label string
	Items *turniptext.Blocks
}

func (*Block) isBlock() {}

// Inline is the inline analogue of Block; the emph builder returns one
// built from its inline scope's contents.
type Inline struct {
	Label string
	Items []turniptext.Inline
}

func (*Inline) isInline() {}

// Header is a host-classified header value (§4.7): Weight_ controls
// DocSegment nesting, and it doubles as a BuildFromBlocks builder so
// `[chap("Title")]{ ... }` attaches the scope's contents to the same
// header that was classified from the bare eval-bracket.
type Header struct {
	Title    string
	Weight_  int64
	Contents *turniptext.Blocks
}

func (*Header) isHeader() {}

func (h *Header) BuildFromBlocks(b *turniptext.Blocks) (turniptext.HostValue, error) {
	return &Header{Title: h.Title, Weight_: h.Weight_, Contents: b}, nil
}

// BlockBuilder adapts a plain function to the BuildFromBlocks contract,
// mirroring helpers.py's block_scope_builder decorator.
type BlockBuilder struct {
	Label string
	Fn    func(*turniptext.Blocks) (turniptext.HostValue, error)
}

func (b *BlockBuilder) BuildFromBlocks(blocks *turniptext.Blocks) (turniptext.HostValue, error) {
	return b.Fn(blocks)
}

// InlineBuilder adapts a plain function to the BuildFromInlines contract,
// mirroring helpers.py's inline_scope_builder decorator.
type InlineBuilder struct {
	Label string
	Fn    func(*turniptext.Inlines) (turniptext.HostValue, error)
}

func (b *InlineBuilder) BuildFromInlines(in *turniptext.Inlines) (turniptext.HostValue, error) {
	return b.Fn(in)
}

// RawBuilder adapts a plain function to the BuildFromRaw contract,
// mirroring helpers.py's raw_scope_builder decorator.
type RawBuilder struct {
	Label string
	Fn    func(string) (turniptext.HostValue, error)
}

func (b *RawBuilder) BuildFromRaw(raw string) (turniptext.HostValue, error) {
	return b.Fn(raw)
}

// blockBuilderIface, inlineBuilderIface and rawBuilderIface are the three
// capabilities CallBuilder probes for, matching turniptext.BuilderKind's
// three-way union (§4.2 rule 2, §9).
type blockBuilderIface interface {
	BuildFromBlocks(*turniptext.Blocks) (turniptext.HostValue, error)
}

type inlineBuilderIface interface {
	BuildFromInlines(*turniptext.Inlines) (turniptext.HostValue, error)
}

type rawBuilderIface interface {
	BuildFromRaw(string) (turniptext.HostValue, error)
}

// headerMarker, blockMarker and inlineMarker are the capability markers
// Classify probes for, in the fixed Header -> Block -> Inline order (§9).
type headerMarker interface{ isHeader() }
type blockMarker interface{ isBlock() }
type inlineMarker interface{ isInline() }
