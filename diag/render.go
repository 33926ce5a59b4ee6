package diag

import (
	"fmt"
	"strings"

	"turniptext.dev/go/turniptext"
)

// Render formats one Diagnostic as a multi-line report: a location line,
// the offending source line with a caret run under the exact byte range,
// and, for each secondary label, a dimmed "included from:" line followed by
// that label's own excerpt, mirroring gomdlint's pretty.FormatDiagnostic.
// Source lines are printed whole, without truncation.
func Render(d *turniptext.Diagnostic, sources []turniptext.SourceText, styles *Styles) string {
	var b strings.Builder
	writeEntry(&b, styles, d.Severity, d.Kind.String(), d.Message, d.Primary, sources)
	for _, label := range d.Secondary {
		b.WriteString(styles.Dim.Render("  included from:") + "\n")
		writeEntry(&b, styles, turniptext.SeverityWarning, label.Note, "", label.Span, sources)
	}
	return b.String()
}

// RenderAll formats a sequence of diagnostics (e.g. Document.Warnings),
// separated by blank lines.
func RenderAll(ds []*turniptext.Diagnostic, sources []turniptext.SourceText, styles *Styles) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = Render(d, sources, styles)
	}
	return strings.Join(parts, "\n")
}

func writeEntry(b *strings.Builder, styles *Styles, sev turniptext.Severity, kind, message string, span turniptext.Span, sources []turniptext.SourceText) {
	sevStyle := styles.Error
	sevWord := "error"
	if sev == turniptext.SeverityWarning {
		sevStyle = styles.Warning
		sevWord = "warning"
	}

	src, pos, ok := resolve(span, sources)
	if !ok {
		fmt.Fprintf(b, "%s: %s", sevStyle.Render(sevWord), styles.Message.Render(joinKindMessage(kind, message)))
		b.WriteString("\n")
		return
	}

	location := fmt.Sprintf("%s:%s", src.Name(), pos)
	fmt.Fprintf(b, "%s %s: %s\n", styles.Location.Render(location), sevStyle.Render(sevWord), styles.Message.Render(joinKindMessage(kind, message)))

	line := src.Line(span.Start)
	b.WriteString("    " + styles.SourceLine.Render(line) + "\n")
	if pos.Column > 0 {
		width := span.Len()
		if width < 1 {
			width = 1
		}
		padding := strings.Repeat(" ", pos.Column-1)
		b.WriteString("    " + padding + styles.Caret.Render(strings.Repeat("^", width)) + "\n")
	}
}

func joinKindMessage(kind, message string) string {
	if message == "" {
		return kind
	}
	return kind + ": " + message
}

func resolve(span turniptext.Span, sources []turniptext.SourceText) (turniptext.SourceText, turniptext.Pos, bool) {
	if span.Source < 0 {
		return nil, turniptext.Pos{}, false
	}
	idx := int(span.Source)
	if idx < 0 || idx >= len(sources) {
		return nil, turniptext.Pos{}, false
	}
	src := sources[idx]
	return src, src.Pos(span.Start), true
}
