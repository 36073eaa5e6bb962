// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose flattens a component tree into a single document.
//
// Components reference each other through a single-line include directive;
// wrapper templates additionally carry two sentinel lines marking where a
// target's body and numbering preamble are spliced. Expansion is strictly
// depth-first and in document order, with a per-branch inclusion chain
// guarding against circular includes.
package compose

import "strings"

const (
	includePrefix    = "!!!>include("
	includeSuffix    = ")"
	targetSentinel   = "!!!>include_target"
	preambleSentinel = "!!!>target_preamble"
)

// lineKind classifies one source line. The classifier is the single place
// that knows the directive grammar; both the plain composer and the wrapper
// composer dispatch on it.
type lineKind int

const (
	lineText lineKind = iota
	lineInclude
	lineTarget
	linePreamble
)

// classifyLine inspects one raw line (terminator included) and returns its
// kind plus the include reference for lineInclude. A directive must occupy
// the entire line after trimming trailing whitespace; directives embedded
// mid-line stay ordinary text.
func classifyLine(line string) (lineKind, string) {
	trimmed := strings.TrimRight(line, " \t\r\n")
	switch trimmed {
	case targetSentinel:
		return lineTarget, ""
	case preambleSentinel:
		return linePreamble, ""
	}
	if strings.HasPrefix(trimmed, includePrefix) && strings.HasSuffix(trimmed, includeSuffix) {
		ref := strings.TrimSpace(trimmed[len(includePrefix) : len(trimmed)-len(includeSuffix)])
		if ref != "" {
			return lineInclude, ref
		}
	}
	return lineText, ""
}
