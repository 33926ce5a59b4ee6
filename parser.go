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

import (
	"github.com/charmbracelet/log"

	"turniptext.dev/go/turniptext/internal/logging"
)

// DefaultMaxFileDepth is the default include-recursion ceiling (§4.3).
const DefaultMaxFileDepth = 128

// ParseOptions configures a single Parse call (§6 "recursion_warning",
// "max_file_depth").
type ParseOptions struct {
	// RecursionWarning enables the non-fatal diagnostic fired when an
	// already-open source name reappears on the include stack. The zero
	// value leaves the warning off; config.Default turns it on.
	RecursionWarning bool
	// MaxFileDepth caps the include stack; exceeding it is a fatal
	// RecursionLimit. Zero means DefaultMaxFileDepth.
	MaxFileDepth int
	// Logger receives debug-level structured logs of source pushes and
	// pops; nothing is logged as the include depth nears MaxFileDepth.
	// Defaults to a logger with output discarded.
	Logger *log.Logger
}

// sourceBuilderStack is the Go analogue of original_source's
// FileBuilderStack: the stack of Processor frames opened within one
// pushed source (§4.3).
type sourceBuilderStack struct {
	frames []Processor
}

func (s *sourceBuilderStack) top() Processor {
	return s.frames[len(s.frames)-1]
}

func (s *sourceBuilderStack) push(p Processor) {
	s.frames = append(s.frames, p)
}

func (s *sourceBuilderStack) pop() Processor {
	n := len(s.frames)
	top := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return top
}

// Parser drives the source stack, lexer, builder-context stack, host
// bridge, and document assembler to completion (§2).
type Parser struct {
	bridge HostBridge
	logger *log.Logger

	sources *sourceStack
	lexers  []*lexer
	stacks  []*sourceBuilderStack

	asm      *assembler
	warnings []*Diagnostic
}

// Parse is the core's entry point (§6): it runs source through the lexer
// and builder-context state machine, driving bridge for every
// eval-bracket and builder dispatch, and returns the assembled Document.
// Non-fatal diagnostics (currently only RecursionWarning) are returned on
// Document.Warnings rather than as an error; the first fatal diagnostic
// aborts the parse and is returned as err (§7 policy).
func Parse(bridge HostBridge, source NamedSource, opts ParseOptions) (*Document, error) {
	maxDepth := opts.MaxFileDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxFileDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	p := &Parser{
		bridge:  bridge,
		logger:  logger,
		sources: newSourceStack(maxDepth, opts.RecursionWarning),
		asm:     newAssembler(),
	}

	if diag := p.pushSource(source, NullSpan()); diag != nil {
		return nil, diag
	}

	for {
		done, diag := p.step()
		if diag != nil {
			return nil, diag
		}
		if done {
			break
		}
	}

	doc := p.asm.Document()
	doc.Warnings = p.warnings
	doc.Sources = p.sources.exportAll()
	return doc, nil
}

func (p *Parser) curLexer() *lexer {
	return p.lexers[len(p.lexers)-1]
}

func (p *Parser) curStack() *sourceBuilderStack {
	return p.stacks[len(p.stacks)-1]
}

// addWarning accumulates a non-fatal diagnostic for the final Document.
func (p *Parser) addWarning(d *Diagnostic) {
	p.warnings = append(p.warnings, d)
}

// pushSource validates and pushes a new (name, contents) pair onto the
// source stack, the lexer stack, and the builder-context stack, seeding a
// fresh TopLevel frame for it (§4.3 TurnipTextSource emission).
func (p *Parser) pushSource(ns NamedSource, pushedFrom Span) *Diagnostic {
	src, warn, err := p.sources.push(ns, pushedFrom)
	if err != nil {
		return err.(*Diagnostic)
	}
	if warn != nil {
		p.addWarning(warn)
	}
	p.logger.Debug("pushing source", logging.FieldSource, ns.Name, logging.FieldDepth, p.sources.depth())
	p.lexers = append(p.lexers, newLexer(src, 0))
	stack := &sourceBuilderStack{}
	stack.push(newTopLevelProcessor())
	p.stacks = append(p.stacks, stack)
	return nil
}

func (p *Parser) popSource() {
	p.logger.Debug("popping source", logging.FieldDepth, p.sources.depth())
	p.sources.pop()
	p.lexers = p.lexers[:len(p.lexers)-1]
	p.stacks = p.stacks[:len(p.stacks)-1]
}

// step processes exactly one token from the active source against the
// active source's top frame, applying any cascading Done/Push results,
// and reports whether the whole parse has finished.
func (p *Parser) step() (done bool, diag *Diagnostic) {
	lx := p.curLexer()
	stack := p.curStack()

	tok, diag := lx.Next()
	if diag != nil {
		return false, diag
	}

	if tok.Kind == TokEOF && len(stack.frames) == 1 {
		if _, diag := stack.top().Finish(p); diag != nil {
			return false, diag
		}
		p.popSource()
		if len(p.stacks) == 0 {
			return true, nil
		}
		return false, nil
	}

	return false, p.dispatch(stack, tok)
}

// dispatch feeds tok to the top frame and applies the resulting
// ProcResult, cascading through any number of Done/Push chains without
// consuming another token from the lexer.
func (p *Parser) dispatch(stack *sourceBuilderStack, tok Token) *Diagnostic {
	result, diag := stack.top().ProcessToken(p, tok)
	if diag != nil {
		return diag
	}
	return p.applyResult(stack, result)
}

func (p *Parser) applyResult(stack *sourceBuilderStack, result ProcResult) *Diagnostic {
	for {
		switch result.status {
		case procContinue:
			return nil
		case procPush:
			stack.push(result.child)
			if result.hasReprocess {
				return p.dispatch(stack, result.reprocess)
			}
			return nil
		case procDoneNewSource:
			if diag := p.pushSource(result.source, result.sourceSpan); diag != nil {
				return diag
			}
			return nil
		case procDone, procDoneReprocess:
			stack.pop()
			if len(stack.frames) == 0 {
				// Only the per-source TopLevel frame can legitimately
				// have no parent; it is handled by step()'s EOF check,
				// never by a Done bubbling out of itself.
				return nil
			}
			parent := stack.top()
			next, diag := parent.ProcessEmission(p, result.value, result.valueSpan, result.fromCall)
			if diag != nil {
				return diag
			}
			if result.status == procDoneReprocess {
				reDiag := p.dispatch(stack, result.reprocess)
				if reDiag != nil {
					return reDiag
				}
			}
			result = next
			continue
		default:
			return nil
		}
	}
}

// peekSignificant reads and discards tokens from the active lexer while
// they are purely-whitespace (§4.4's "ignoring only purely-whitespace
// characters, not newlines"), returning the first token that is not.
func (p *Parser) peekSignificant() (Token, *Diagnostic) {
	lx := p.curLexer()
	for {
		tok, diag := lx.Next()
		if diag != nil {
			return Token{}, diag
		}
		if !tok.isInert() {
			return tok, nil
		}
	}
}

// inlineScopeIsBlockShaped implements the lookahead an inline-mode
// ScopeOpen needs (original_source's InlineLevelAmbiguousScopeProcessor in
// ambiguous_scope.rs): a `{` opened mid-line is only legal if some content
// follows on the same line. Whitespace and comments don't count as content;
// if the next significant token is a Newline, the scope has no inline
// content before end of line and must be reported block-shaped. Any other
// outcome rewinds the lexer to just after the ScopeOpen so normal
// token-by-token processing resumes unaffected (an EOF here, for instance,
// still falls through to the inline scope's own unclosed-scope handling).
func (p *Parser) inlineScopeIsBlockShaped() (bool, *Diagnostic) {
	lx := p.curLexer()
	save := lx.pos
	for {
		tok, diag := lx.Next()
		if diag != nil {
			return false, diag
		}
		switch tok.Kind {
		case TokWhitespace:
			continue
		case TokHashes:
			if diag := p.skipComment(); diag != nil {
				return false, diag
			}
			continue
		case TokNewline:
			lx.pos = save
			return true, nil
		default:
			lx.pos = save
			return false, nil
		}
	}
}

// skipComment discards tokens up to but not including the next Newline or
// EOF (§4.1's "# begins a comment extending to the next \n").
func (p *Parser) skipComment() *Diagnostic {
	lx := p.curLexer()
	for {
		save := lx.pos
		tok, diag := lx.Next()
		if diag != nil {
			return diag
		}
		if tok.Kind == TokNewline || tok.Kind == TokEOF {
			lx.pos = save
			return nil
		}
	}
}

// codeOutcome is the resolved effect of a CodeOpen token (§4.4): either a
// value ready for immediate emission, or a scope token to open next with
// an optional builder attached.
type codeOutcome struct {
	emitNow    bool
	value      HostValue
	span       Span
	scopeTok   Token
	pending    *awaitingBuilder
}

// resolveCodeOpen implements §4.4 in full: code capture, the three-attempt
// host compilation (delegated to bridge.CompileAndEval), and the one-token
// lookahead deciding whether the result becomes an awaiting_builder or is
// emitted immediately.
func (p *Parser) resolveCodeOpen(openTok Token) (codeOutcome, *Diagnostic) {
	lx := p.curLexer()
	code, full, ok := lx.scanCodeCapture(openTok.Span.Start, openTok.N)
	if !ok {
		return codeOutcome{}, &Diagnostic{
			Kind:    CodeBracketFenceMismatch,
			Message: "eval-bracket was never closed with a matching fence",
			Primary: openTok.Span,
		}
	}

	value, outcome, err := p.bridge.CompileAndEval(code, full)
	if err != nil {
		if d, ok := err.(*Diagnostic); ok {
			return codeOutcome{}, d
		}
		return codeOutcome{}, &Diagnostic{Kind: HostCompileError, Message: "host failed to compile eval-bracket", Primary: full, Cause: err}
	}
	if outcome == EvalStatementsOnly {
		value = nil
	}

	peeked, diag := p.peekSignificant()
	if diag != nil {
		return codeOutcome{}, diag
	}

	if peeked.Kind == TokScopeOpen || peeked.Kind == TokRawScopeOpen {
		var pending *awaitingBuilder
		if value != nil {
			pending = &awaitingBuilder{value: value, span: full}
		}
		return codeOutcome{emitNow: false, scopeTok: peeked, pending: pending}, nil
	}

	// No scope follows: emit immediately and rewind to just after the
	// close fence, not to peeked's start. peekSignificant already
	// consumed any whitespace between the fence and peeked to decide
	// this, but that whitespace is a significant word separator (unlike
	// the purely-cosmetic whitespace §1 excludes from its guarantees),
	// so it must be re-lexed as ordinary text rather than discarded.
	lx.pos = full.End
	return codeOutcome{emitNow: true, value: value, span: full}, nil
}
