// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// fuzzyCutoff is the minimum similarity ratio for an edit-distance
// suggestion.
const fuzzyCutoff = 0.6

// probeExtensions are tried verbatim against a handle with no extension.
var probeExtensions = []string{".tex", ".txt", ".md"}

// Suggestions ranks components similar to a handle that failed to resolve.
// In order of preference: the handle with a common extension appended,
// files elsewhere in the tree whose basename matches (with or without
// extension), then fuzzy basename matches by edit distance.
func Suggestions(folder, handle string, max int) []string {
	var suggestions []string
	seen := make(map[string]bool)
	add := func(rel string) {
		if !seen[rel] {
			seen[rel] = true
			suggestions = append(suggestions, rel)
		}
	}

	for _, ext := range probeExtensions {
		candidate := handle + ext
		if isFile(filepath.Join(folder, filepath.FromSlash(candidate))) {
			add(candidate)
		}
	}

	all := listComponents(folder)
	base := filepath.Base(filepath.FromSlash(handle))
	baseNoExt := strings.TrimSuffix(base, filepath.Ext(base))

	for _, rel := range all {
		relBase := filepath.Base(rel)
		if relBase == base || strings.TrimSuffix(relBase, filepath.Ext(relBase)) == base {
			add(rel)
		}
	}

	// Fuzzy matches, best ratio first.
	type scored struct {
		rel   string
		ratio float64
	}
	var fuzzy []scored
	for _, rel := range all {
		relBase := filepath.Base(rel)
		r := similarity(base, relBase)
		if r2 := similarity(baseNoExt, strings.TrimSuffix(relBase, filepath.Ext(relBase))); r2 > r {
			r = r2
		}
		if r >= fuzzyCutoff {
			fuzzy = append(fuzzy, scored{rel: rel, ratio: r})
		}
	}
	sort.SliceStable(fuzzy, func(i, j int) bool { return fuzzy[i].ratio > fuzzy[j].ratio })
	for _, s := range fuzzy {
		add(s.rel)
	}

	if len(suggestions) > max {
		suggestions = suggestions[:max]
	}
	return suggestions
}

// similarity maps edit distance onto a 0..1 ratio where 1 is identical.
func similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1 - float64(d)/float64(longest)
}

// listComponents returns every file under folder as a slash-separated path
// relative to folder.
func listComponents(folder string) []string {
	var all []string
	filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(folder, path)
		if relErr != nil {
			return nil
		}
		all = append(all, filepath.ToSlash(rel))
		return nil
	})
	sort.Strings(all)
	return all
}
