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

// resolved is the result of classifying a HostValue for emission (§4.3
// "Emission rules"): exactly one of its typed fields is meaningful,
// selected by class.
type resolved struct {
	class Class
	text  string
	inl   Inline
	blk   Block
	hdr   Header
	src   NamedSource

	// flattenBlocks/flattenInlines are set only when the underlying value
	// is literally our own *Blocks/*Inlines primitive, letting the
	// caller decide whether to flatten (no builder involved) or append
	// as a single element (builder-produced, per §4.3's "not the product
	// of a builder" proviso).
	flattenBlocks  *Blocks
	flattenInlines *Inlines
}

// classify turns a raw HostValue into one of the emission-rule categories.
// It recognizes the core's own primitives directly before falling back to
// the host bridge, since primitives (produced by scope closes and raw
// scopes) never need a bridge round-trip.
func (p *Parser) classify(v HostValue, span Span) (resolved, *Diagnostic) {
	switch val := v.(type) {
	case nil:
		return resolved{class: ClassNone}, nil
	case *Text:
		return resolved{class: ClassInline, inl: val}, nil
	case *Raw:
		return resolved{class: ClassInline, inl: val}, nil
	case *Inlines:
		return resolved{class: ClassInline, inl: flattenInlineHolder(val), flattenInlines: val}, nil
	case *Paragraph:
		return resolved{class: ClassBlock, blk: val}, nil
	case *Blocks:
		return resolved{class: ClassBlock, blk: val, flattenBlocks: val}, nil
	case *TurnipTextSource:
		return resolved{class: ClassSource, src: val.NamedSource}, nil
	}

	class := p.bridge.Classify(v)
	switch class {
	case ClassNone:
		return resolved{class: ClassNone}, nil
	case ClassHeader:
		weight, err := p.bridge.Weight(v)
		if err != nil {
			return resolved{}, &Diagnostic{Kind: HostEvalError, Message: "failed to read header weight", Primary: span, Cause: err}
		}
		if weight == minWeight {
			return resolved{}, &Diagnostic{Kind: HeaderWeightOutOfRange, Message: "header weight out of range", Primary: span}
		}
		return resolved{class: ClassHeader, hdr: &hostHeader{HostBlock: HostBlock{Span: span, Value: v}, weight: weight}}, nil
	case ClassBlock:
		return resolved{class: ClassBlock, blk: &HostBlock{Span: span, Value: v}}, nil
	case ClassInline:
		return resolved{class: ClassInline, inl: &HostInline{Span: span, Value: v}}, nil
	case ClassSource:
		ns, err := p.bridge.AsSource(v)
		if err != nil {
			return resolved{}, &Diagnostic{Kind: HostEvalError, Message: "failed to read turniptext source", Primary: span, Cause: err}
		}
		return resolved{class: ClassSource, src: ns}, nil
	case ClassStringish:
		text, ok := p.bridge.Stringify(v)
		if !ok {
			return resolved{}, &Diagnostic{Kind: CoercionFailed, Message: "value classified Stringish but could not be stringified: " + p.bridge.Describe(v), Primary: span}
		}
		return resolved{class: ClassStringish, text: text, inl: &Text{Span: span, Value: text}}, nil
	default:
		return resolved{}, &Diagnostic{Kind: CoercionFailed, Message: "could not coerce value for emission: " + p.bridge.Describe(v), Primary: span}
	}
}

// blockSink is implemented by whatever block-level container should
// receive a classified Block or flattened Blocks elements.
type blockSink interface {
	AppendBlock(Block)
}

// blockSinkFunc adapts a plain function to blockSink, letting callers
// bind a Parser reference via closure instead of threading it through an
// extra interface parameter.
type blockSinkFunc func(Block)

func (f blockSinkFunc) AppendBlock(b Block) { f(b) }

// appendResolvedBlock implements the §4.3 "append, flattening a plain
// Blocks that is not the product of a builder" rule.
func appendResolvedBlock(sink blockSink, res resolved, fromCall bool) {
	if !fromCall && res.flattenBlocks != nil {
		for _, item := range res.flattenBlocks.Items() {
			sink.AppendBlock(item)
		}
		return
	}
	sink.AppendBlock(res.blk)
}

// appendResolvedInline implements the symmetric flattening rule for an
// Inlines value closing without a builder, appending into a plain Go
// slice used by both paragraphProcessor and inlineScopeProcessor.
func appendResolvedInline(items *[]Inline, res resolved, fromCall bool) {
	if !fromCall && res.flattenInlines != nil {
		*items = append(*items, res.flattenInlines.Items()...)
		return
	}
	*items = append(*items, res.inl)
}

// flattenInlineHolder wraps an Inlines value that must itself act as a
// single Inline (e.g. when a builder explicitly returns an Inlines to be
// nested, as opposed to the no-builder flatten case handled by
// appendResolvedInline).
func flattenInlineHolder(in *Inlines) Inline {
	return &inlineGroup{items: in.Items(), span: in.Span}
}

// inlineGroup is an Inline composed of other Inlines, used when an
// Inlines value is emitted as a single node rather than flattened into
// the enclosing Sentence.
type inlineGroup struct {
	span  Span
	items []Inline
}

func (*inlineGroup) inlineNode() {}

// hostHeader adapts a Header-classified HostValue so it satisfies the
// Header interface with its bridge-reported weight.
type hostHeader struct {
	HostBlock
	weight int64
}

func (h *hostHeader) Weight() int64 { return h.weight }

// HostValue returns the host value the header was classified from.
func (h *hostHeader) HostValue() HostValue { return h.Value }
