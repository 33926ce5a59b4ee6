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

import "strings"

const (
	hyphenMinus = '-'
	enDash      = '–'
	emDash      = '—'
)

// expandHyphenRun maps a run of n ASCII hyphens in text position to its
// dash-typography text, per spec.md §4.6:
//
//	n=1 -> "-"
//	n=2 -> en-dash
//	n=3 -> em-dash
//	n>=4 -> greedily split into em-dashes, with one en-dash or hyphen
//	        remainder, preferring em-dashes on the tie
//
// This overrides original_source's literal n-hyphen-minus stringification
// for n>=4; see DESIGN.md for the Open Question resolution.
func expandHyphenRun(n int) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return string(hyphenMinus)
	case n == 2:
		return string(enDash)
	case n == 3:
		return string(emDash)
	}

	ems := n / 3
	rem := n % 3

	var b strings.Builder
	b.Grow(n)
	for i := 0; i < ems; i++ {
		b.WriteRune(emDash)
	}
	switch rem {
	case 1:
		b.WriteRune(hyphenMinus)
	case 2:
		b.WriteRune(enDash)
	}
	return b.String()
}
