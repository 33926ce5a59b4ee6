package testhost

import (
	"fmt"

	"turniptext.dev/go/turniptext"
)

// registerBuiltins installs the small fixed set of functions the test suite
// and cmd/turniptext's parse command exercise against: chap/sec for §4.7
// header weighting, emph/note/math for the three builder shapes, and load
// for §4.3's TurnipTextSource recursive-include path.
func registerBuiltins(h *Host) {
	h.Env.SetFunc("chap", headerFunc(0))
	h.Env.SetFunc("sec", headerFunc(1))
	h.Env.SetFunc("subsec", headerFunc(2))

	h.Env.SetFunc("emph", func(args []turniptext.HostValue) (turniptext.HostValue, error) {
		return &InlineBuilder{
			Label: "emph",
			Fn: func(in *turniptext.Inlines) (turniptext.HostValue, error) {
				return &Inline{Label: "emph", Items: in.Items()}, nil
			},
		}, nil
	})

	h.Env.SetFunc("note", func(args []turniptext.HostValue) (turniptext.HostValue, error) {
		label := "note"
		if len(args) > 0 {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("note() expects a string label, got %s", h.Describe(args[0]))
			}
			label = s
		}
		return &BlockBuilder{
			Label: label,
			Fn: func(b *turniptext.Blocks) (turniptext.HostValue, error) {
				return &Block{Label: label, Items: b}, nil
			},
		}, nil
	})

	h.Env.SetFunc("math", func(args []turniptext.HostValue) (turniptext.HostValue, error) {
		return &RawBuilder{
			Label: "math",
			Fn: func(raw string) (turniptext.HostValue, error) {
				return &Inline{Label: "math", Items: []turniptext.Inline{&turniptext.Raw{Span: turniptext.NullSpan(), Value: raw}}}, nil
			},
		}, nil
	})

	h.Env.SetFunc("load", func(args []turniptext.HostValue) (turniptext.HostValue, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("load() requires at least a source name")
		}
		name, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("load() expects a string name, got %s", h.Describe(args[0]))
		}
		if len(args) >= 2 {
			contents, ok := args[1].(string)
			if !ok {
				return nil, fmt.Errorf("load() expects a string contents, got %s", h.Describe(args[1]))
			}
			return &turniptext.TurnipTextSource{NamedSource: turniptext.NamedSource{Name: name, Contents: contents}}, nil
		}
		contents, ok := h.Sources[name]
		if !ok {
			return nil, fmt.Errorf("load(): no source registered under %q", name)
		}
		return &turniptext.TurnipTextSource{NamedSource: turniptext.NamedSource{Name: name, Contents: contents}}, nil
	})
}

func headerFunc(weight int64) Func {
	return func(args []turniptext.HostValue) (turniptext.HostValue, error) {
		title := ""
		if len(args) > 0 {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("header function expects a string title argument")
			}
			title = s
		}
		return &Header{Title: title, Weight_: weight}, nil
	}
}
