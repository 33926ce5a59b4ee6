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

// HostValue is an opaque reference to a value owned by the embedded host
// interpreter. The core never inspects a HostValue's internals; every
// operation on one is mediated by a HostBridge.
type HostValue interface{}

// Class is the result of HostBridge.Classify (§4.2, rule 3): distinguishes
// the core's own primitives, capability membership, and Stringish
// coercion eligibility. Capabilities are probed in the fixed order
// Header -> Block -> Inline (§9).
type Class uint8

const (
	ClassNone Class = iota
	// ClassPrimitive is never returned by Classify: Text, Raw, Inlines,
	// Paragraph, Blocks and TurnipTextSource are classified by the core
	// itself before a value ever reaches the bridge.
	ClassPrimitive
	ClassHeader
	ClassBlock
	ClassInline
	ClassSource
	ClassStringish
)

// EvalOutcome distinguishes an eval-bracket's value result from its
// statements-only (no return value) result (§4.2 rule 1).
type EvalOutcome uint8

const (
	EvalValue EvalOutcome = iota
	EvalStatementsOnly
)

// BuilderKind selects which of the three builder contracts call_builder
// dispatches to (§4.2 rule 2, §9 "three-way union").
type BuilderKind uint8

const (
	BuildFromBlocks BuilderKind = iota
	BuildFromInlines
	BuildFromRaw
)

// HostBridge is the thin, typed boundary through which the core compiles,
// evaluates, and dispatches build callbacks on host objects (§4.2). The
// core is implemented against this interface alone; testhost provides a
// reference implementation for tests and the CLI.
type HostBridge interface {
	// CompileAndEval implements the three-attempt compilation strategy of
	// §4.2 rule 1: expression, then statements, then an indentation-guarded
	// statement retry using the unstripped source. code is the literal
	// captured eval-bracket text; span is the bracket's source span for
	// error attribution.
	CompileAndEval(code string, span Span) (HostValue, EvalOutcome, error)

	// CallBuilder dispatches to whichever of the three builder members obj
	// exposes for kind (§4.2 rule 2). payload is an *Inlines, *Blocks, or a
	// plain string depending on kind. Returns ExpectedBuilder if the
	// required member is absent.
	CallBuilder(obj HostValue, kind BuilderKind, payload any, span Span) (HostValue, error)

	// Classify implements §4.2 rule 3.
	Classify(obj HostValue) Class

	// Weight returns a Header-classified value's weight. Only called after
	// Classify(obj) == ClassHeader.
	Weight(obj HostValue) (int64, error)

	// Stringify implements the Stringish coercion of §4.3's emission
	// rules: str/int/float conversion to text. ok is false if obj is not
	// Stringish.
	Stringify(obj HostValue) (string, bool)

	// Describe renders a short human-readable description of obj for
	// diagnostic messages (e.g. ExpectedBuilder), mirroring a repr() call.
	Describe(obj HostValue) string

	// AsSource extracts the (name, contents) pair from a value Classify
	// reported as ClassSource (a TurnipTextSource), for the §4.3
	// "TurnipTextSource" emission rule.
	AsSource(obj HostValue) (NamedSource, error)
}
