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

import "fmt"

// SourceID identifies one buffer on the source stack. SourceIDs are handed
// out in push order and are never reused within a parse, mirroring
// file_idx in original_source/src/util.rs.
type SourceID int32

// NoSource is the SourceID of an invalid or absent source.
const NoSource SourceID = -1

// Pos is a line/column position within a source, both 1-based. Pos is
// derived on demand from a byte offset via a source's line map; it is never
// stored on a Span.
type Pos struct {
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start, End) within one source buffer.
// Every token and every tree node created from source carries at least one
// Span; diagnostics carry one or more annotated Spans.
type Span struct {
	Source SourceID
	Start  int
	End    int
}

// NullSpan returns the zero Span, used where no source position applies.
func NullSpan() Span {
	return Span{Source: NoSource}
}

// Valid reports whether s refers to an actual source range.
func (s Span) Valid() bool {
	return s.Source != NoSource && s.Start < s.End
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	if s.End < s.Start {
		return 0
	}
	return s.End - s.Start
}

// Combine returns the smallest span covering both s and other. Both spans
// must belong to the same source.
func (s Span) Combine(other Span) Span {
	if s.Source != other.Source {
		panic("turniptext: cannot combine spans from different sources")
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Source: s.Source, Start: start, End: end}
}

// Point returns the zero-width span at the end of s, used for EOF tokens
// and other zero-length markers.
func (s Span) Point() Span {
	return Span{Source: s.Source, Start: s.End, End: s.End}
}
