package diag

import (
	"strings"
	"testing"

	"turniptext.dev/go/turniptext"
)

// fakeSource is a minimal turniptext.SourceText for exercising Render
// without driving a real parse.
type fakeSource struct {
	name     string
	contents string
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Line(byteOfs int) string {
	start := strings.LastIndexByte(f.contents[:byteOfs], '\n') + 1
	end := strings.IndexByte(f.contents[byteOfs:], '\n')
	if end < 0 {
		return f.contents[start:]
	}
	return f.contents[start : byteOfs+end]
}

func (f *fakeSource) Pos(byteOfs int) turniptext.Pos {
	line := 1 + strings.Count(f.contents[:byteOfs], "\n")
	lineStart := strings.LastIndexByte(f.contents[:byteOfs], '\n') + 1
	return turniptext.Pos{Line: line, Column: byteOfs - lineStart + 1}
}

func TestRenderResolvesSourceLineAndCaret(t *testing.T) {
	src := &fakeSource{name: "doc.tt", contents: "one two three\n"}
	sources := []turniptext.SourceText{src}
	d := &turniptext.Diagnostic{
		Kind:    turniptext.UnmatchedScopeClose,
		Message: "no scope is open",
		Primary: turniptext.Span{Source: 0, Start: 4, End: 7},
	}

	got := Render(d, sources, NewStyles(false))

	if !strings.Contains(got, "doc.tt:1:5") {
		t.Errorf("output missing location %q:\n%s", "doc.tt:1:5", got)
	}
	if !strings.Contains(got, "one two three") {
		t.Errorf("output missing source line:\n%s", got)
	}
	if !strings.Contains(got, "unmatched-scope-close: no scope is open") {
		t.Errorf("output missing kind/message:\n%s", got)
	}
	if !strings.Contains(got, "   ^^^") && !strings.Contains(got, "    ^^^") {
		t.Errorf("output missing a 3-wide caret run for the \"two\" span:\n%s", got)
	}
}

func TestRenderFallsBackWithoutSource(t *testing.T) {
	d := &turniptext.Diagnostic{
		Kind:    turniptext.HostCompileError,
		Message: "bad code",
		Primary: turniptext.NullSpan(),
	}

	got := Render(d, nil, NewStyles(false))

	if !strings.Contains(got, "host-compile-error: bad code") {
		t.Errorf("output missing kind/message:\n%s", got)
	}
	if strings.Contains(got, "^") {
		t.Errorf("output should have no caret line without a resolvable source:\n%s", got)
	}
}

func TestRenderZeroWidthEOFSpanStillResolves(t *testing.T) {
	// A Span.Point() (zero-width but carrying a real Source) must still
	// resolve to its source, unlike a genuinely sourceless NullSpan.
	src := &fakeSource{name: "doc.tt", contents: "abc"}
	sources := []turniptext.SourceText{src}
	eof := turniptext.Span{Source: 0, Start: 3, End: 3}
	d := &turniptext.Diagnostic{Kind: turniptext.UnclosedScope, Message: "eof", Primary: eof}

	got := Render(d, sources, NewStyles(false))

	if !strings.Contains(got, "doc.tt:1:4") {
		t.Errorf("output missing EOF location doc.tt:1:4:\n%s", got)
	}
}

func TestRenderAllJoinsMultipleDiagnostics(t *testing.T) {
	d1 := &turniptext.Diagnostic{Kind: turniptext.HostEvalError, Message: "first", Primary: turniptext.NullSpan()}
	d2 := &turniptext.Diagnostic{Kind: turniptext.HostEvalError, Message: "second", Primary: turniptext.NullSpan()}

	got := RenderAll([]*turniptext.Diagnostic{d1, d2}, nil, NewStyles(false))

	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("RenderAll output missing one of the messages:\n%s", got)
	}
}

func TestRenderSecondaryLabelsAppendIncludedFrom(t *testing.T) {
	src := &fakeSource{name: "doc.tt", contents: "x\n"}
	sources := []turniptext.SourceText{src}
	d := &turniptext.Diagnostic{
		Kind:    turniptext.RecursionLimit,
		Message: "too deep",
		Primary: turniptext.Span{Source: 0, Start: 0, End: 1},
		Secondary: []turniptext.Label{
			{Span: turniptext.Span{Source: 0, Start: 0, End: 1}, Note: "pushed from here"},
		},
	}

	got := Render(d, sources, NewStyles(false))

	if !strings.Contains(got, "included from:") {
		t.Errorf("output missing \"included from:\":\n%s", got)
	}
	if !strings.Contains(got, "pushed from here") {
		t.Errorf("output missing secondary label note:\n%s", got)
	}
}
