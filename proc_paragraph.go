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

// paragraphProcessor implements inline mode for running text (§4.3),
// folding the separate Paragraph and Sentence frame kinds of
// original_source into one stack entry: a single newline ends the current
// Sentence and starts the next one in the same Paragraph, while a blank
// line (two newlines in a row with no content between them) ends the
// Paragraph itself.
type paragraphProcessor struct {
	openSpan  Span
	sentences []*Sentence
	cur       *Sentence

	// sawBlankCandidate is true immediately after a Newline has ended the
	// current sentence (or arrived while no sentence was open); it is false
	// at construction. A second Newline observed in this state is a blank
	// line and closes the paragraph.
	sawBlankCandidate bool

	// nextChildBuilder holds the builder attached by an eval-bracket this
	// processor itself resolved, awaiting the next scope it opens.
	nextChildBuilder *awaitingBuilder
}

func newParagraphProcessor(openSpan Span) *paragraphProcessor {
	return &paragraphProcessor{openSpan: openSpan}
}

// newParagraphProcessorWithPendingBuilder seeds a paragraph whose very
// first token will be the ScopeOpen that a parent's block-mode lookahead
// already determined starts inline content, carrying the builder that
// ScopeOpen's eval-bracket produced.
func newParagraphProcessorWithPendingBuilder(openSpan Span, builder *awaitingBuilder) *paragraphProcessor {
	return &paragraphProcessor{openSpan: openSpan, nextChildBuilder: builder}
}

// newParagraphProcessorWithSeed starts a paragraph already containing one
// classified value, for the case where a bare eval-bracket result or a
// just-closed scope is Inline/Stringish and must open an implicit
// paragraph around itself.
func newParagraphProcessorWithSeed(span Span, res resolved, fromCall bool) *paragraphProcessor {
	pp := &paragraphProcessor{openSpan: span}
	pp.ensureSentence(span)
	appendResolvedInline(&pp.cur.items, res, fromCall)
	return pp
}

func (pp *paragraphProcessor) Kind() FrameKind { return FrameParagraph }
func (pp *paragraphProcessor) OpenSpan() Span  { return pp.openSpan }

func (pp *paragraphProcessor) ensureSentence(span Span) {
	if pp.cur == nil {
		pp.cur = newSentence(span)
	}
	pp.sawBlankCandidate = false
}

func (pp *paragraphProcessor) flushSentence() {
	if pp.cur != nil && pp.cur.Len() > 0 {
		pp.sentences = append(pp.sentences, pp.cur)
	}
	pp.cur = nil
}

func (pp *paragraphProcessor) buildParagraph(closeSpan Span) *Paragraph {
	pp.flushSentence()
	para := newParagraph(pp.openSpan.Combine(closeSpan))
	para.sentences = pp.sentences
	return para
}

func (pp *paragraphProcessor) takeChildBuilder() *awaitingBuilder {
	b := pp.nextChildBuilder
	pp.nextChildBuilder = nil
	return b
}

func (pp *paragraphProcessor) appendText(p *Parser, tok Token) {
	pp.ensureSentence(tok.Span)
	pp.cur.Append(&Text{Span: tok.Span, Value: tok.stringifyRaw(p.curLexer().src)})
}

func (pp *paragraphProcessor) ProcessToken(p *Parser, tok Token) (ProcResult, *Diagnostic) {
	switch tok.Kind {
	case TokWhitespace:
		if pp.cur != nil {
			pp.appendText(p, tok)
		}
		return contResult(), nil
	case TokNewline:
		if pp.cur != nil && pp.cur.Len() > 0 {
			pp.flushSentence()
			pp.sawBlankCandidate = true
			return contResult(), nil
		}
		if pp.sawBlankCandidate {
			return doneResult(pp.buildParagraph(tok.Span), pp.openSpan.Combine(tok.Span), false), nil
		}
		pp.sawBlankCandidate = true
		return contResult(), nil
	case TokHashes:
		if diag := p.skipComment(); diag != nil {
			return ProcResult{}, diag
		}
		return contResult(), nil
	case TokEOF:
		return doneResult(pp.buildParagraph(tok.Span), pp.openSpan.Combine(tok.Span), false), nil
	case TokScopeClose:
		para := pp.buildParagraph(tok.Span)
		return doneReprocessResult(para, para.Span, false, tok), nil
	case TokCodeClose:
		pp.ensureSentence(tok.Span)
		pp.cur.Append(&Text{Span: tok.Span, Value: expandHyphenRun(tok.N) + "]"})
		return contResult(), nil
	case TokHyphens:
		pp.ensureSentence(tok.Span)
		pp.cur.Append(&Text{Span: tok.Span, Value: expandHyphenRun(tok.N)})
		return contResult(), nil
	case TokOtherText, TokBackslash:
		pp.appendText(p, tok)
		return contResult(), nil
	case TokEscaped:
		return pp.handleEscaped(p, tok)
	case TokScopeOpen:
		pp.ensureSentence(tok.Span)
		return pp.pushInlineScope(p, tok.Span)
	case TokRawScopeOpen:
		return pp.resolveRawScopeImmediate(p, tok, pp.takeChildBuilder())
	case TokCodeOpen:
		return pp.resolveCodeOpenInline(p, tok)
	default:
		return contResult(), nil
	}
}

func (pp *paragraphProcessor) handleEscaped(p *Parser, tok Token) (ProcResult, *Diagnostic) {
	if tok.Escapable() == EscapeNewline {
		// Soft line continuation: neither ends the sentence nor
		// contributes text.
		return contResult(), nil
	}
	pp.ensureSentence(tok.Span)
	pp.cur.Append(&Text{Span: tok.Span, Value: tok.stringifyEscaped(p.curLexer().src)})
	return contResult(), nil
}

func (pp *paragraphProcessor) resolveCodeOpenInline(p *Parser, tok Token) (ProcResult, *Diagnostic) {
	outcome, diag := p.resolveCodeOpen(tok)
	if diag != nil {
		return ProcResult{}, diag
	}
	if !outcome.emitNow {
		pp.nextChildBuilder = outcome.pending
		switch outcome.scopeTok.Kind {
		case TokScopeOpen:
			pp.ensureSentence(outcome.scopeTok.Span)
			return pp.pushInlineScope(p, outcome.scopeTok.Span)
		case TokRawScopeOpen:
			return pp.resolveRawScopeImmediate(p, outcome.scopeTok, pp.takeChildBuilder())
		}
	}
	return pp.emitInline(p, outcome.value, outcome.span, false)
}

// pushInlineScope implements the ScopeOpen lookahead (§4.3): a `{` opened
// mid-line with nothing but whitespace/comments before the next newline is
// block-shaped, not inline, and is rejected rather than silently reported
// as the unrelated InlineScopeClosedAcrossNewline the newline would
// otherwise trigger once inside the scope.
func (pp *paragraphProcessor) pushInlineScope(p *Parser, openSpan Span) (ProcResult, *Diagnostic) {
	blockShaped, diag := p.inlineScopeIsBlockShaped()
	if diag != nil {
		return ProcResult{}, diag
	}
	if blockShaped {
		return ProcResult{}, &Diagnostic{
			Kind:    InlineScopeOpenedMidLineButBlockShape,
			Message: "a scope opened mid-line must have content before the end of the line",
			Primary: openSpan,
		}
	}
	return pushResult(newInlineScopeProcessor(openSpan, pp.takeChildBuilder())), nil
}

func (pp *paragraphProcessor) resolveRawScopeImmediate(p *Parser, open Token, builder *awaitingBuilder) (ProcResult, *Diagnostic) {
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
		return pp.emitInline(p, result, full, true)
	}
	return pp.emitInline(p, &Raw{Span: full, Value: body}, full, false)
}

// emitInline classifies v and folds it into the current sentence, or
// rejects it if it is not inline-capable (§4.3 Emission rules).
func (pp *paragraphProcessor) emitInline(p *Parser, v HostValue, span Span, fromCall bool) (ProcResult, *Diagnostic) {
	res, diag := p.classify(v, span)
	if diag != nil {
		return ProcResult{}, diag
	}
	switch res.class {
	case ClassNone:
		return contResult(), nil
	case ClassHeader, ClassBlock:
		return ProcResult{}, &Diagnostic{Kind: BlockEmittedInInlineMode, Message: "a block or header cannot be emitted inside running text", Primary: span}
	case ClassInline, ClassStringish:
		pp.ensureSentence(span)
		appendResolvedInline(&pp.cur.items, res, fromCall)
		return contResult(), nil
	case ClassSource:
		return newSourceResult(res.src, span), nil
	default:
		return ProcResult{}, &Diagnostic{Kind: CoercionFailed, Message: "value could not be classified for emission", Primary: span}
	}
}

// ProcessEmission absorbs the value produced by a nested InlineScope or
// RawScope frame this processor pushed.
func (pp *paragraphProcessor) ProcessEmission(p *Parser, v HostValue, span Span, fromCall bool) (ProcResult, *Diagnostic) {
	return pp.emitInline(p, v, span, fromCall)
}

// Finish is never called on a paragraphProcessor: it always closes itself
// on TokEOF from within ProcessToken, since it is never the bottom frame
// of a source's builder-context stack.
func (pp *paragraphProcessor) Finish(p *Parser) (HostValue, *Diagnostic) {
	return pp.buildParagraph(pp.openSpan), nil
}
