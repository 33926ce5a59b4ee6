package main

import (
	"fmt"
	"io"
	"strings"

	"turniptext.dev/go/turniptext"
)

// dumpDocument writes a compact indented tree of doc to w, in parse order:
// each top-level block, then each top-level DocSegment recursively.
func dumpDocument(w io.Writer, doc *turniptext.Document) {
	dumpBlocks(w, 0, doc.Contents)
	for _, seg := range doc.Segments {
		dumpSegment(w, 0, seg)
	}
}

func dumpSegment(w io.Writer, depth int, seg *turniptext.DocSegment) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sSegment(weight=%d)\n", indent, seg.Weight())
	if seg.SegHeader != nil {
		dumpBlock(w, depth+1, seg.SegHeader)
	}
	dumpBlocks(w, depth+1, seg.Contents)
	for _, child := range seg.Subsegments {
		dumpSegment(w, depth+1, child)
	}
}

func dumpBlocks(w io.Writer, depth int, blocks *turniptext.Blocks) {
	if blocks == nil {
		return
	}
	for _, b := range blocks.Items() {
		dumpBlock(w, depth, b)
	}
}

func dumpBlock(w io.Writer, depth int, b turniptext.Block) {
	indent := strings.Repeat("  ", depth)
	switch v := b.(type) {
	case *turniptext.Paragraph:
		fmt.Fprintf(w, "%sParagraph\n", indent)
		for _, s := range v.Sentences() {
			dumpSentence(w, depth+1, s)
		}
	case *turniptext.Blocks:
		fmt.Fprintf(w, "%sBlocks\n", indent)
		dumpBlocks(w, depth+1, v)
	case *turniptext.HostBlock:
		fmt.Fprintf(w, "%sHostBlock(%v)\n", indent, v.Value)
	default:
		fmt.Fprintf(w, "%s%T\n", indent, v)
	}
}

func dumpSentence(w io.Writer, depth int, s *turniptext.Sentence) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sSentence\n", indent)
	for _, in := range s.Inlines() {
		dumpInline(w, depth+1, in)
	}
}

func dumpInline(w io.Writer, depth int, in turniptext.Inline) {
	indent := strings.Repeat("  ", depth)
	switch v := in.(type) {
	case *turniptext.Text:
		fmt.Fprintf(w, "%sText(%q)\n", indent, v.Value)
	case *turniptext.Raw:
		fmt.Fprintf(w, "%sRaw(%q)\n", indent, v.Value)
	case *turniptext.HostInline:
		fmt.Fprintf(w, "%sHostInline(%v)\n", indent, v.Value)
	default:
		fmt.Fprintf(w, "%s%T\n", indent, v)
	}
}
