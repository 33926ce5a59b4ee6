package logging

// Field name constants for structured logging, mirroring the parser's own
// vocabulary so log lines stay greppable across releases.
const (
	FieldSource = "source"
	FieldDepth  = "depth"
	FieldSpan   = "span"
	FieldKind   = "kind"
)
