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

// blockLevelProcessor implements block mode (§4.3) for both the TopLevel
// and BlockScope frame kinds, mirroring original_source's
// BlockLevelProcessor<T> generic over its container.
type blockLevelProcessor struct {
	isTopLevel bool
	openSpan   Span
	container  *Blocks // nil when isTopLevel; container is an assembler append instead

	// selfBuilder is the builder the parent frame attached to this scope
	// when it was pushed (§4.4); consumed when this frame itself closes.
	selfBuilder *awaitingBuilder

	// nextChildBuilder holds the result of this frame's own most recent
	// eval-bracket, if it is awaiting the next scope this frame opens.
	nextChildBuilder *awaitingBuilder

	awaitingSeparation bool
}

func newTopLevelProcessor() *blockLevelProcessor {
	return &blockLevelProcessor{isTopLevel: true}
}

func newBlockScopeProcessor(openSpan Span, builder *awaitingBuilder) *blockLevelProcessor {
	return &blockLevelProcessor{openSpan: openSpan, container: newBlocks(openSpan), selfBuilder: builder}
}

func (bp *blockLevelProcessor) Kind() FrameKind {
	if bp.isTopLevel {
		return FrameTopLevel
	}
	return FrameBlockScope
}

func (bp *blockLevelProcessor) OpenSpan() Span { return bp.openSpan }

func (bp *blockLevelProcessor) sink(p *Parser) blockSinkFunc {
	if bp.isTopLevel {
		return blockSinkFunc(func(b Block) { p.asm.AppendBlock(b) })
	}
	return blockSinkFunc(func(b Block) { bp.container.Append(b) })
}

func (bp *blockLevelProcessor) unclosedDiag() *Diagnostic {
	return &Diagnostic{
		Kind:    UnclosedScope,
		Message: "block scope was never closed",
		Primary: bp.openSpan,
	}
}

func (bp *blockLevelProcessor) ProcessToken(p *Parser, tok Token) (ProcResult, *Diagnostic) {
	if bp.awaitingSeparation {
		switch tok.Kind {
		case TokWhitespace:
			return contResult(), nil
		case TokNewline:
			bp.awaitingSeparation = false
			return contResult(), nil
		case TokHashes:
			if diag := p.skipComment(); diag != nil {
				return ProcResult{}, diag
			}
			return contResult(), nil
		case TokEOF:
			if bp.isTopLevel {
				return contResult(), nil
			}
			return ProcResult{}, bp.unclosedDiag()
		default:
			return ProcResult{}, &Diagnostic{
				Kind:    SameLineContentAfterBlock,
				Message: "content follows a block or header emission on the same source line",
				Primary: tok.Span,
			}
		}
	}

	switch tok.Kind {
	case TokNewline, TokWhitespace:
		return contResult(), nil
	case TokHashes:
		if diag := p.skipComment(); diag != nil {
			return ProcResult{}, diag
		}
		return contResult(), nil
	case TokEOF:
		if bp.isTopLevel {
			return contResult(), nil
		}
		return ProcResult{}, bp.unclosedDiag()
	case TokScopeClose:
		if bp.isTopLevel {
			return ProcResult{}, &Diagnostic{Kind: UnmatchedScopeClose, Message: "unmatched `}`", Primary: tok.Span}
		}
		return bp.closeSelf(p, bp.openSpan.Combine(tok.Span))
	case TokScopeOpen:
		return bp.resolveScopeOpen(p, tok)
	case TokRawScopeOpen:
		return bp.resolveRawScopeImmediate(p, tok, bp.takeChildBuilder())
	case TokCodeOpen:
		return bp.resolveCodeOpenInBlock(p, tok)
	case TokOtherText, TokHyphens, TokEscaped, TokBackslash, TokCodeClose:
		para := newParagraphProcessor(tok.Span)
		return pushReprocessResult(para, tok), nil
	default:
		return contResult(), nil
	}
}

func (bp *blockLevelProcessor) takeChildBuilder() *awaitingBuilder {
	b := bp.nextChildBuilder
	bp.nextChildBuilder = nil
	return b
}

// resolveScopeOpen implements the block-mode BlockScope-vs-InlineScope
// ambiguity (§4.3): a ScopeOpen followed eventually by a bare Newline
// opens a BlockScope; anything else opens an InlineScope starting a new
// Paragraph.
func (bp *blockLevelProcessor) resolveScopeOpen(p *Parser, open Token) (ProcResult, *Diagnostic) {
	builder := bp.takeChildBuilder()
	lx := p.curLexer()
	for {
		save := lx.pos
		tok, diag := lx.Next()
		if diag != nil {
			return ProcResult{}, diag
		}
		switch tok.Kind {
		case TokWhitespace:
			continue
		case TokHashes:
			if diag := p.skipComment(); diag != nil {
				return ProcResult{}, diag
			}
			continue
		case TokNewline:
			return pushResult(newBlockScopeProcessor(open.Span, builder)), nil
		case TokEOF:
			return ProcResult{}, bp.unclosedDiag()
		default:
			lx.pos = save
			para := newParagraphProcessorWithPendingBuilder(open.Span, builder)
			return pushReprocessResult(para, open), nil
		}
	}
}

func (bp *blockLevelProcessor) resolveCodeOpenInBlock(p *Parser, tok Token) (ProcResult, *Diagnostic) {
	outcome, diag := p.resolveCodeOpen(tok)
	if diag != nil {
		return ProcResult{}, diag
	}
	if !outcome.emitNow {
		bp.nextChildBuilder = outcome.pending
		switch outcome.scopeTok.Kind {
		case TokScopeOpen:
			return bp.resolveScopeOpen(p, outcome.scopeTok)
		case TokRawScopeOpen:
			return bp.resolveRawScopeImmediate(p, outcome.scopeTok, bp.takeChildBuilder())
		}
	}
	return bp.emitValue(p, outcome.value, outcome.span, false)
}

// resolveRawScopeImmediate implements §4.5: the raw body is captured in
// one shot by the lexer, then dispatched to call_builder or emitted as a
// primitive Raw.
func (bp *blockLevelProcessor) resolveRawScopeImmediate(p *Parser, open Token, builder *awaitingBuilder) (ProcResult, *Diagnostic) {
	lx := p.curLexer()
	body, full, ok := lx.scanRawScopeBody(open.Span.Start, open.N)
	if !ok {
		return ProcResult{}, &Diagnostic{Kind: RawScopeFenceMismatch, Message: "raw scope was never closed with a matching fence", Primary: open.Span}
	}
	if builder != nil {
		result, err := p.bridge.CallBuilder(builder.value, BuildFromRaw, body, full)
		if err != nil {
			if d, ok := err.(*Diagnostic); ok {
				return ProcResult{}, d
			}
			return ProcResult{}, &Diagnostic{Kind: HostBuilderError, Message: "raw scope builder failed", Primary: full, Cause: err}
		}
		return bp.emitValue(p, result, full, true)
	}
	return bp.emitValue(p, &Raw{Span: full, Value: body}, full, false)
}

// closeSelf finalizes this BlockScope's content, invoking call_builder if
// a selfBuilder is attached, and returns the Done result for the parent.
func (bp *blockLevelProcessor) closeSelf(p *Parser, span Span) (ProcResult, *Diagnostic) {
	if bp.selfBuilder != nil {
		result, err := p.bridge.CallBuilder(bp.selfBuilder.value, BuildFromBlocks, bp.container, span)
		if err != nil {
			if d, ok := err.(*Diagnostic); ok {
				return ProcResult{}, d
			}
			return ProcResult{}, &Diagnostic{Kind: HostBuilderError, Message: "block scope builder failed", Primary: span, Cause: err}
		}
		return doneResult(result, span, true), nil
	}
	return doneResult(bp.container, span, false), nil
}

// emitValue classifies v and appends/dispatches it according to the
// current block-level context, implicitly starting a Paragraph when v is
// Inline/Stringish (§4.3 Emission rules).
func (bp *blockLevelProcessor) emitValue(p *Parser, v HostValue, span Span, fromCall bool) (ProcResult, *Diagnostic) {
	res, diag := p.classify(v, span)
	if diag != nil {
		return ProcResult{}, diag
	}
	switch res.class {
	case ClassNone:
		return contResult(), nil
	case ClassHeader:
		if bp.selfBuilder != nil {
			return ProcResult{}, &Diagnostic{Kind: HeaderEmittedInNonTopContext, Message: "a header cannot be emitted into a scope bound for a builder", Primary: span}
		}
		if bp.isTopLevel {
			p.asm.AppendHeader(res.hdr)
		} else {
			// A header emitted inside a plain (non-builder) block scope
			// stays local to that scope's own blocks rather than
			// jumping out to the document's segment structure; only a
			// top-level header opens a new DocSegment.
			bp.sink(p).AppendBlock(res.hdr)
		}
		bp.awaitingSeparation = true
		return contResult(), nil
	case ClassBlock:
		appendResolvedBlock(bp.sink(p), res, fromCall)
		// A paragraph closes on a blank line, EOF or `}`, so nothing of
		// it remains on the line that follows.
		if _, isPara := v.(*Paragraph); !isPara {
			bp.awaitingSeparation = true
		}
		return contResult(), nil
	case ClassInline, ClassStringish:
		para := newParagraphProcessorWithSeed(span, res, fromCall)
		return pushResult(para), nil
	case ClassSource:
		return newSourceResult(res.src, span), nil
	default:
		return ProcResult{}, &Diagnostic{Kind: CoercionFailed, Message: "value could not be classified for emission", Primary: span}
	}
}

// ProcessEmission absorbs the value produced by a child frame that just
// closed (a BlockScope, an implicitly-opened Paragraph, or an eval-bracket
// resolved with no following scope that this frame pushed itself).
func (bp *blockLevelProcessor) ProcessEmission(p *Parser, v HostValue, span Span, fromCall bool) (ProcResult, *Diagnostic) {
	return bp.emitValue(p, v, span, fromCall)
}

// Finish is reached only for the bottom TopLevel frame of a source, since
// step() only calls it when the builder-context stack has settled back to
// size 1; a BlockScope left open at EOF is caught earlier by ProcessToken's
// own TokEOF case.
func (bp *blockLevelProcessor) Finish(p *Parser) (HostValue, *Diagnostic) {
	if !bp.isTopLevel {
		return nil, bp.unclosedDiag()
	}
	return nil, nil
}
