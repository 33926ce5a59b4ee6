package testhost

import (
	"fmt"
	"strconv"
	"strings"

	"turniptext.dev/go/turniptext"
)

// Host is a reference turniptext.HostBridge backed by Env. It satisfies
// §4.2's full contract with the minimal language lang.go implements, and is
// the bridge both the test suite and cmd/turniptext's parse command drive
// the core parser with.
type Host struct {
	Env *Env

	// Sources backs the load builtin (§4.3 TurnipTextSource emission):
	// name -> contents, populated by RegisterSource.
	Sources map[string]string
}

// NewHost returns a Host with the builtin functions registered (see
// builtins.go) and an empty namespace.
func NewHost() *Host {
	h := &Host{Env: NewEnv(), Sources: make(map[string]string)}
	registerBuiltins(h)
	return h
}

// RegisterSource makes contents available to a load(name) eval-bracket call
// (§4.3, §4.4 recursive include).
func (h *Host) RegisterSource(name, contents string) {
	h.Sources[name] = contents
}

// CompileAndEval implements the three-attempt strategy of §4.2 rule 1:
// first as a single expression, then as a statement list against the
// trimmed code, then again against the untrimmed source in case stripping
// leading/trailing whitespace changed what would parse (lang.go's grammar
// is whitespace-insensitive today, but the third attempt is kept so a
// future whitespace-sensitive extension has somewhere to hook in without
// changing this contract).
func (h *Host) CompileAndEval(code string, span turniptext.Span) (turniptext.HostValue, turniptext.EvalOutcome, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, turniptext.EvalStatementsOnly, nil
	}

	if ex, err := parseSingleExpr(trimmed); err == nil {
		v, err := h.Env.evalExpr(ex)
		if err != nil {
			return nil, 0, &turniptext.Diagnostic{Kind: turniptext.HostEvalError, Message: err.Error(), Primary: span}
		}
		return v, turniptext.EvalValue, nil
	}

	if stmts, err := parseStatements(trimmed); err == nil {
		if diag := h.execStatements(stmts, span); diag != nil {
			return nil, 0, diag
		}
		return nil, turniptext.EvalStatementsOnly, nil
	}

	if stmts, err := parseStatements(code); err == nil {
		if diag := h.execStatements(stmts, span); diag != nil {
			return nil, 0, diag
		}
		return nil, turniptext.EvalStatementsOnly, nil
	}

	return nil, 0, &turniptext.Diagnostic{
		Kind:    turniptext.HostCompileError,
		Message: "eval-bracket is neither a valid expression nor a valid statement list",
		Primary: span,
	}
}

func (h *Host) execStatements(stmts []*stmt, span turniptext.Span) *turniptext.Diagnostic {
	for _, s := range stmts {
		v, err := h.Env.evalExpr(s.rhs)
		if err != nil {
			return &turniptext.Diagnostic{Kind: turniptext.HostEvalError, Message: err.Error(), Primary: span}
		}
		h.Env.Set(s.name, v)
	}
	return nil
}

// CallBuilder dispatches obj to whichever of the three builder capabilities
// kind selects (§4.2 rule 2), returning an ExpectedBuilder diagnostic if
// obj lacks it.
func (h *Host) CallBuilder(obj turniptext.HostValue, kind turniptext.BuilderKind, payload any, span turniptext.Span) (turniptext.HostValue, error) {
	switch kind {
	case turniptext.BuildFromBlocks:
		b, ok := obj.(blockBuilderIface)
		if !ok {
			return nil, h.expectedBuilder("a block scope", obj, span)
		}
		blocks, _ := payload.(*turniptext.Blocks)
		return b.BuildFromBlocks(blocks)
	case turniptext.BuildFromInlines:
		b, ok := obj.(inlineBuilderIface)
		if !ok {
			return nil, h.expectedBuilder("an inline scope", obj, span)
		}
		inlines, _ := payload.(*turniptext.Inlines)
		return b.BuildFromInlines(inlines)
	case turniptext.BuildFromRaw:
		b, ok := obj.(rawBuilderIface)
		if !ok {
			return nil, h.expectedBuilder("a raw scope", obj, span)
		}
		raw, _ := payload.(string)
		return b.BuildFromRaw(raw)
	default:
		return nil, fmt.Errorf("unknown builder kind")
	}
}

func (h *Host) expectedBuilder(shape string, obj turniptext.HostValue, span turniptext.Span) *turniptext.Diagnostic {
	return &turniptext.Diagnostic{
		Kind:    turniptext.ExpectedBuilder,
		Message: h.Describe(obj) + " does not know how to build from " + shape,
		Primary: span,
	}
}

// Classify implements §4.2 rule 3: the Stringish primitive types (§9) are
// recognised first, then Header -> Block -> Inline are probed, then
// TurnipTextSource.
func (h *Host) Classify(obj turniptext.HostValue) turniptext.Class {
	switch obj.(type) {
	case nil:
		return turniptext.ClassNone
	case string, int64, float64:
		return turniptext.ClassStringish
	}
	if _, ok := obj.(headerMarker); ok {
		return turniptext.ClassHeader
	}
	if _, ok := obj.(blockMarker); ok {
		return turniptext.ClassBlock
	}
	if _, ok := obj.(inlineMarker); ok {
		return turniptext.ClassInline
	}
	if _, ok := obj.(*turniptext.TurnipTextSource); ok {
		return turniptext.ClassSource
	}
	return turniptext.ClassNone
}

// Weight is only ever called after Classify(obj) == ClassHeader.
func (h *Host) Weight(obj turniptext.HostValue) (int64, error) {
	hdr, ok := obj.(*Header)
	if !ok {
		return 0, fmt.Errorf("%s is not a header", h.Describe(obj))
	}
	return hdr.Weight_, nil
}

// Stringify implements the str/int/float Stringish coercion of §4.3's
// emission rules.
func (h *Host) Stringify(obj turniptext.HostValue) (string, bool) {
	switch v := obj.(type) {
	case string:
		return v, true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return "", false
	}
}

// Describe renders a short repr-like description for diagnostic messages.
func (h *Host) Describe(obj turniptext.HostValue) string {
	switch v := obj.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(v)
	case *Header:
		return fmt.Sprintf("chap/sec(%q)", v.Title)
	case *Block:
		return fmt.Sprintf("block(%q)", v.Label)
	case *Inline:
		return fmt.Sprintf("inline(%q)", v.Label)
	case *BlockBuilder:
		return fmt.Sprintf("block_builder(%q)", v.Label)
	case *InlineBuilder:
		return fmt.Sprintf("inline_builder(%q)", v.Label)
	case *RawBuilder:
		return fmt.Sprintf("raw_builder(%q)", v.Label)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AsSource extracts a (name, contents) pair from a ClassSource-classified
// value. testhost's own load builtin returns a *turniptext.TurnipTextSource
// directly, which the core recognizes before ever reaching the bridge
// (emit.go's classify special-cases it), so this path only matters for
// other hypothetical ClassSource host values.
func (h *Host) AsSource(obj turniptext.HostValue) (turniptext.NamedSource, error) {
	src, ok := obj.(*turniptext.TurnipTextSource)
	if !ok {
		return turniptext.NamedSource{}, fmt.Errorf("%s is not a turniptext source", h.Describe(obj))
	}
	return src.NamedSource, nil
}
