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

// inlineScopeProcessor implements the contents of an explicit `{...}`
// InlineScope (§4.3): unlike paragraphProcessor it must close on the same
// source line it was opened on, and never splits its content into
// sentences.
type inlineScopeProcessor struct {
	openSpan Span
	items    []Inline

	// selfBuilder is consumed when this scope itself closes.
	selfBuilder *awaitingBuilder
	// nextChildBuilder awaits the next scope this processor pushes.
	nextChildBuilder *awaitingBuilder
}

func newInlineScopeProcessor(openSpan Span, builder *awaitingBuilder) *inlineScopeProcessor {
	return &inlineScopeProcessor{openSpan: openSpan, selfBuilder: builder}
}

func (ip *inlineScopeProcessor) Kind() FrameKind { return FrameInlineScope }
func (ip *inlineScopeProcessor) OpenSpan() Span  { return ip.openSpan }

func (ip *inlineScopeProcessor) takeChildBuilder() *awaitingBuilder {
	b := ip.nextChildBuilder
	ip.nextChildBuilder = nil
	return b
}

func (ip *inlineScopeProcessor) unclosedDiag() *Diagnostic {
	return &Diagnostic{Kind: UnclosedScope, Message: "inline scope was never closed", Primary: ip.openSpan}
}

func (ip *inlineScopeProcessor) appendText(p *Parser, tok Token) {
	ip.items = append(ip.items, &Text{Span: tok.Span, Value: tok.stringifyRaw(p.curLexer().src)})
}

func (ip *inlineScopeProcessor) ProcessToken(p *Parser, tok Token) (ProcResult, *Diagnostic) {
	switch tok.Kind {
	case TokWhitespace, TokOtherText, TokBackslash:
		ip.appendText(p, tok)
		return contResult(), nil
	case TokNewline:
		return ProcResult{}, &Diagnostic{
			Kind:    InlineScopeClosedAcrossNewline,
			Message: "inline scope must be closed on the line it was opened",
			Primary: tok.Span,
			Secondary: []Label{{Span: ip.openSpan, Note: "scope opened here"}},
		}
	case TokEOF:
		return ProcResult{}, ip.unclosedDiag()
	case TokHashes:
		if diag := p.skipComment(); diag != nil {
			return ProcResult{}, diag
		}
		return contResult(), nil
	case TokEscaped:
		if tok.Escapable() == EscapeNewline {
			return contResult(), nil
		}
		ip.items = append(ip.items, &Text{Span: tok.Span, Value: tok.stringifyEscaped(p.curLexer().src)})
		return contResult(), nil
	case TokHyphens:
		ip.items = append(ip.items, &Text{Span: tok.Span, Value: expandHyphenRun(tok.N)})
		return contResult(), nil
	case TokCodeClose:
		ip.items = append(ip.items, &Text{Span: tok.Span, Value: expandHyphenRun(tok.N) + "]"})
		return contResult(), nil
	case TokScopeOpen:
		return ip.pushInlineScope(p, tok.Span)
	case TokRawScopeOpen:
		return ip.resolveRawScopeImmediate(p, tok, ip.takeChildBuilder())
	case TokCodeOpen:
		return ip.resolveCodeOpenInline(p, tok)
	case TokScopeClose:
		return ip.closeSelf(p, ip.openSpan.Combine(tok.Span))
	default:
		return contResult(), nil
	}
}

func (ip *inlineScopeProcessor) resolveCodeOpenInline(p *Parser, tok Token) (ProcResult, *Diagnostic) {
	outcome, diag := p.resolveCodeOpen(tok)
	if diag != nil {
		return ProcResult{}, diag
	}
	if !outcome.emitNow {
		ip.nextChildBuilder = outcome.pending
		switch outcome.scopeTok.Kind {
		case TokScopeOpen:
			return ip.pushInlineScope(p, outcome.scopeTok.Span)
		case TokRawScopeOpen:
			return ip.resolveRawScopeImmediate(p, outcome.scopeTok, ip.takeChildBuilder())
		}
	}
	return ip.emitInline(p, outcome.value, outcome.span, false)
}

// pushInlineScope implements the ScopeOpen lookahead (§4.3): a `{` opened
// mid-line with nothing but whitespace/comments before the next newline is
// block-shaped, not inline, and is rejected rather than silently reported
// as the unrelated InlineScopeClosedAcrossNewline the newline would
// otherwise trigger once inside the scope.
func (ip *inlineScopeProcessor) pushInlineScope(p *Parser, openSpan Span) (ProcResult, *Diagnostic) {
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
	return pushResult(newInlineScopeProcessor(openSpan, ip.takeChildBuilder())), nil
}

func (ip *inlineScopeProcessor) resolveRawScopeImmediate(p *Parser, open Token, builder *awaitingBuilder) (ProcResult, *Diagnostic) {
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
		return ip.emitInline(p, result, full, true)
	}
	return ip.emitInline(p, &Raw{Span: full, Value: body}, full, false)
}

func (ip *inlineScopeProcessor) emitInline(p *Parser, v HostValue, span Span, fromCall bool) (ProcResult, *Diagnostic) {
	res, diag := p.classify(v, span)
	if diag != nil {
		return ProcResult{}, diag
	}
	switch res.class {
	case ClassNone:
		return contResult(), nil
	case ClassHeader, ClassBlock:
		return ProcResult{}, &Diagnostic{Kind: BlockEmittedInInlineMode, Message: "a block or header cannot be emitted inside an inline scope", Primary: span}
	case ClassInline, ClassStringish:
		appendResolvedInline(&ip.items, res, fromCall)
		return contResult(), nil
	case ClassSource:
		return newSourceResult(res.src, span), nil
	default:
		return ProcResult{}, &Diagnostic{Kind: CoercionFailed, Message: "value could not be classified for emission", Primary: span}
	}
}

func (ip *inlineScopeProcessor) closeSelf(p *Parser, span Span) (ProcResult, *Diagnostic) {
	in := &Inlines{Span: span, items: ip.items}
	if ip.selfBuilder != nil {
		result, err := p.bridge.CallBuilder(ip.selfBuilder.value, BuildFromInlines, in, span)
		if err != nil {
			if d, ok := err.(*Diagnostic); ok {
				return ProcResult{}, d
			}
			return ProcResult{}, &Diagnostic{Kind: HostBuilderError, Message: "inline scope builder failed", Primary: span, Cause: err}
		}
		return doneResult(result, span, true), nil
	}
	return doneResult(in, span, false), nil
}

// ProcessEmission absorbs the value produced by a nested InlineScope or
// RawScope frame this processor pushed.
func (ip *inlineScopeProcessor) ProcessEmission(p *Parser, v HostValue, span Span, fromCall bool) (ProcResult, *Diagnostic) {
	return ip.emitInline(p, v, span, fromCall)
}

// Finish is unreachable: an InlineScope is never the bottom frame of a
// source's builder-context stack, and an unclosed one is caught by
// ProcessToken's TokEOF case before a source can run out of tokens at
// stack depth 1.
func (ip *inlineScopeProcessor) Finish(p *Parser) (HostValue, *Diagnostic) {
	return nil, ip.unclosedDiag()
}
