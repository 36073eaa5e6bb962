// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split partitions a component at LaTeX sectioning commands into
// sub-components, the inverse of composing. The sectioning line itself
// stays in the parent; the body that follows moves into a new component
// referenced by an include directive inserted after the command line.
package split

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Options controls how a component is split.
type Options struct {
	// Command is the sectioning command to split on, e.g. `\section`.
	// A missing leading backslash is tolerated since shells often eat it.
	Command string

	// Subdir optionally places the sub-components into a subdirectory of
	// the parent's folder; include references are written relative to the
	// parent accordingly.
	Subdir string

	// Numbered prefixes the generated filenames with a zero-padded
	// sequence number (1_, 2_, ...).
	Numbered bool

	// Prefix, when Numbered is set, goes in front of the sequence number
	// (prefix "c2" yields c2_1_, c2_2_, ...).
	Prefix string
}

// slugPattern collapses every non-alphanumeric run in a title.
var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Result summarizes one split run.
type Result struct {
	// Created lists the new sub-component paths in document order.
	Created []string
}

// Split partitions the component at componentPath according to opts and
// rewrites the parent in place. A component without any matching command
// line is left untouched.
func Split(componentPath string, opts Options, out io.Writer) (Result, error) {
	cmdName := opts.Command
	if cmdName == "" {
		return Result{}, fmt.Errorf("no sectioning command given")
	}
	if !strings.HasPrefix(cmdName, `\`) {
		cmdName = `\` + cmdName
	}

	data, err := os.ReadFile(componentPath)
	if err != nil {
		return Result{}, fmt.Errorf("reading component %s: %w", componentPath, err)
	}
	lines := splitKeepEnds(string(data))

	cmdLine := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(cmdName) + `\{`)
	titleOf := regexp.MustCompile(regexp.QuoteMeta(cmdName) + `\{([^}]*)\}`)

	var starts []int
	for i, line := range lines {
		if cmdLine.MatchString(line) {
			starts = append(starts, i)
		}
	}
	if len(starts) == 0 {
		fmt.Fprintf(out, "no %q commands found in %s, nothing to split\n", cmdName, componentPath)
		return Result{}, nil
	}

	parentDir := filepath.Dir(componentPath)
	ext := filepath.Ext(componentPath)
	if ext == "" {
		ext = ".tex"
	}
	outDir := parentDir
	if opts.Subdir != "" {
		outDir = filepath.Join(parentDir, opts.Subdir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", outDir, err)
	}

	padWidth := len(fmt.Sprint(len(starts)))

	var result Result
	var parent strings.Builder
	for idx, start := range starts {
		title := extractTitle(titleOf, lines[start])
		if title == "" {
			title = fmt.Sprintf("untitled_%d", idx)
		}

		bodyEnd := len(lines)
		if idx+1 < len(starts) {
			bodyEnd = starts[idx+1]
		}
		body := strings.Join(lines[start+1:bodyEnd], "")

		filename := slugify(title) + ext
		if opts.Numbered {
			num := zeroPad(idx+1, padWidth)
			if opts.Prefix != "" {
				filename = opts.Prefix + "_" + num + "_" + filename
			} else {
				filename = num + "_" + filename
			}
		}

		subPath := filepath.Join(outDir, filename)
		if err := os.WriteFile(subPath, []byte(body), 0o644); err != nil {
			return result, fmt.Errorf("writing sub-component %s: %w", subPath, err)
		}
		result.Created = append(result.Created, subPath)
		fmt.Fprintf(out, "created sub-component: %s\n", subPath)

		ref := filename
		if opts.Subdir != "" {
			ref = opts.Subdir + "/" + filename
		}

		// Parent keeps everything up to and including the command line,
		// then gains the include directive in place of the body.
		if idx == 0 {
			parent.WriteString(strings.Join(lines[:start], ""))
		}
		parent.WriteString(lines[start])
		if !strings.HasSuffix(lines[start], "\n") {
			parent.WriteString("\n")
		}
		fmt.Fprintf(&parent, "!!!>include(%s)\n", ref)
	}

	if err := os.WriteFile(componentPath, []byte(parent.String()), 0o644); err != nil {
		return result, fmt.Errorf("rewriting parent component %s: %w", componentPath, err)
	}
	fmt.Fprintf(out, "split %s into %d sub-component(s)\n", filepath.Base(componentPath), len(result.Created))
	return result, nil
}

// slugify converts a section title into a filename-safe slug, e.g.
// "Counting Techniques & Combinatorics" -> "counting_techniques_combinatorics".
func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "_")
	return strings.Trim(slug, "_")
}

func extractTitle(pattern *regexp.Regexp, line string) string {
	if m := pattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}

func zeroPad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}

// splitKeepEnds splits text into lines, each keeping its terminator. The
// final fragment without a trailing newline is preserved verbatim.
func splitKeepEnds(text string) []string {
	var lines []string
	for {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			if text != "" {
				lines = append(lines, text)
			}
			return lines
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
}
