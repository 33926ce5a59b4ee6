package testhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turniptext.dev/go/turniptext"
)

func TestCompileAndEvalExpression(t *testing.T) {
	h := NewHost()
	v, outcome, err := h.CompileAndEval(`chap("Intro")`, turniptext.NullSpan())
	require.NoError(t, err)
	assert.Equal(t, turniptext.EvalValue, outcome)

	hdr, ok := v.(*Header)
	require.True(t, ok, "value = %T, want *Header", v)
	assert.Equal(t, "Intro", hdr.Title)
	assert.Equal(t, int64(0), hdr.Weight_)
}

func TestCompileAndEvalStatements(t *testing.T) {
	h := NewHost()
	_, outcome, err := h.CompileAndEval("x = chap(\"A\")\ny = sec(\"B\")", turniptext.NullSpan())
	require.NoError(t, err)
	assert.Equal(t, turniptext.EvalStatementsOnly, outcome)

	x, ok := h.Env.Get("x")
	require.True(t, ok, "x was not bound")
	assert.Equal(t, "A", x.(*Header).Title)

	y, ok := h.Env.Get("y")
	require.True(t, ok, "y was not bound")
	assert.Equal(t, int64(1), y.(*Header).Weight_)
}

func TestCompileAndEvalRejectsGarbage(t *testing.T) {
	h := NewHost()
	_, _, err := h.CompileAndEval("{{{ not valid", turniptext.NullSpan())
	require.Error(t, err)

	diag, ok := err.(*turniptext.Diagnostic)
	require.True(t, ok, "err = %T, want *turniptext.Diagnostic", err)
	assert.Equal(t, turniptext.HostCompileError, diag.Kind)
}

func TestClassify(t *testing.T) {
	h := NewHost()
	tests := []struct {
		name string
		v    turniptext.HostValue
		want turniptext.Class
	}{
		{"nil", nil, turniptext.ClassNone},
		{"string", "hi", turniptext.ClassStringish},
		{"int", int64(5), turniptext.ClassStringish},
		{"header", &Header{Title: "x"}, turniptext.ClassHeader},
		{"block", &Block{Label: "note"}, turniptext.ClassBlock},
		{"inline", &Inline{Label: "emph"}, turniptext.ClassInline},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, h.Classify(test.v))
		})
	}
}

func TestCallBuilderInline(t *testing.T) {
	h := NewHost()
	v, _, err := h.CompileAndEval("emph()", turniptext.NullSpan())
	require.NoError(t, err)

	in := &turniptext.Inlines{}
	in.Append(&turniptext.Text{Value: "hello"})
	result, err := h.CallBuilder(v, turniptext.BuildFromInlines, in, turniptext.NullSpan())
	require.NoError(t, err)

	built, ok := result.(*Inline)
	require.True(t, ok, "result = %T, want *Inline", result)
	assert.Len(t, built.Items, 1)
}

func TestCallBuilderWrongShape(t *testing.T) {
	h := NewHost()
	v, _, err := h.CompileAndEval("emph()", turniptext.NullSpan())
	require.NoError(t, err)

	_, err = h.CallBuilder(v, turniptext.BuildFromBlocks, &turniptext.Blocks{}, turniptext.NullSpan())
	require.Error(t, err, "expected an error building blocks from an inline-only builder")

	diag, ok := err.(*turniptext.Diagnostic)
	require.True(t, ok, "err = %T, want *turniptext.Diagnostic", err)
	assert.Equal(t, turniptext.ExpectedBuilder, diag.Kind)
}

func TestLoadRegisteredSource(t *testing.T) {
	h := NewHost()
	h.RegisterSource("other.tt", "hello\n")
	v, _, err := h.CompileAndEval(`load("other.tt")`, turniptext.NullSpan())
	require.NoError(t, err)

	src, ok := v.(*turniptext.TurnipTextSource)
	require.True(t, ok, "value = %T, want *turniptext.TurnipTextSource", v)
	assert.Equal(t, "other.tt", src.Name)
	assert.Equal(t, "hello\n", src.Contents)
}

func TestLoadInlineContents(t *testing.T) {
	h := NewHost()
	v, _, err := h.CompileAndEval(`load("self.tt", "recurse")`, turniptext.NullSpan())
	require.NoError(t, err)
	assert.Equal(t, "recurse", v.(*turniptext.TurnipTextSource).Contents)
}
