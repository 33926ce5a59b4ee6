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

// FrameKind names the six builder-frame kinds of the context stack (§3).
type FrameKind uint8

const (
	FrameTopLevel FrameKind = iota
	FrameBlockScope
	FrameInlineScope
	FrameRawScope
	FrameParagraph
	FrameSentence
)

func (k FrameKind) String() string {
	switch k {
	case FrameTopLevel:
		return "top-level"
	case FrameBlockScope:
		return "block scope"
	case FrameInlineScope:
		return "inline scope"
	case FrameRawScope:
		return "raw scope"
	case FrameParagraph:
		return "paragraph"
	case FrameSentence:
		return "sentence"
	default:
		return "frame"
	}
}

// procStatus is the sum-type tag of ProcResult, the Go analogue of the
// original BuildFromTokens contract's ProcStatus/BuildStatus (§4.3, §9
// "Builder dispatch polymorphism").
type procStatus uint8

const (
	procContinue procStatus = iota
	procDone
	procDoneReprocess
	procPush
	procDoneNewSource
)

// ProcResult is returned by every Processor method: it tells the parser's
// main loop whether the top frame stays open, closes (optionally handing
// its value to the newly exposed top frame), pushes a child frame, or
// requests that a new source be pushed onto the source stack.
type ProcResult struct {
	status procStatus

	// valid when status == procDone or procDoneReprocess.
	value    HostValue
	fromCall bool // true if value came from call_builder, false if it is one of our primitives / a plain eval result
	valueSpan Span

	// valid when status == procDoneReprocess: the token the new top frame
	// should process again after absorbing value.
	reprocess Token

	// valid when status == procPush.
	child Processor

	// hasReprocess, when set alongside procPush, tells the main loop to
	// immediately feed reprocess to the newly pushed child before
	// fetching another token from the lexer.
	hasReprocess bool

	// valid when status == procDoneNewSource.
	source     NamedSource
	sourceSpan Span
}

func contResult() ProcResult {
	return ProcResult{status: procContinue}
}

func doneResult(v HostValue, span Span, fromCall bool) ProcResult {
	return ProcResult{status: procDone, value: v, valueSpan: span, fromCall: fromCall}
}

func doneReprocessResult(v HostValue, span Span, fromCall bool, tok Token) ProcResult {
	return ProcResult{status: procDoneReprocess, value: v, valueSpan: span, fromCall: fromCall, reprocess: tok}
}

func pushResult(child Processor) ProcResult {
	return ProcResult{status: procPush, child: child}
}

func pushReprocessResult(child Processor, tok Token) ProcResult {
	return ProcResult{status: procPush, child: child, reprocess: tok, hasReprocess: true}
}

func newSourceResult(ns NamedSource, span Span) ProcResult {
	return ProcResult{status: procDoneNewSource, source: ns, sourceSpan: span}
}

// Processor is the Go analogue of original_source's BuildFromTokens: one
// entry of the builder-context stack. It consumes tokens one at a time and
// absorbs the values emitted by any child frame it pushed.
type Processor interface {
	Kind() FrameKind
	OpenSpan() Span

	// ProcessToken consumes the next token from the active source.
	ProcessToken(p *Parser, tok Token) (ProcResult, *Diagnostic)

	// ProcessEmission absorbs a value produced by a child frame that just
	// closed (or by an eval-bracket resolved with no following scope).
	ProcessEmission(p *Parser, val HostValue, span Span, fromCall bool) (ProcResult, *Diagnostic)

	// Finish is called when the enclosing source reaches EOF while this
	// frame is still open. The TopLevel frame accepts EOF; block and
	// inline scope frames report UnclosedScope; a paragraph frame returns
	// its paragraph.
	Finish(p *Parser) (HostValue, *Diagnostic)
}

// awaitingBuilder holds the host value a preceding eval-bracket produced
// that is waiting to receive the contents of the next scope opened (§4.4).
type awaitingBuilder struct {
	value HostValue
	span  Span
}
