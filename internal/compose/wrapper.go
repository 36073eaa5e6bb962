// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/index"
)

var (
	// chapNamePattern extracts the chapter number from a target name like
	// "chap5".
	chapNamePattern = regexp.MustCompile(`^chap(\d+)$`)

	// numPrefixPattern extracts the chapter number from a referenced
	// filename like "5_intro.tex".
	numPrefixPattern = regexp.MustCompile(`^(\d+)_`)
)

// ChapterNumber derives the chapter number for a compose target. The target
// name wins over the referenced filename; a target matching neither pattern
// has no number and gets no numbering preamble.
func ChapterNumber(targetName, ref string) (int, bool) {
	if m := chapNamePattern.FindStringSubmatch(targetName); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}
	base := filepath.Base(filepath.FromSlash(ref))
	if m := numPrefixPattern.FindStringSubmatch(base); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

// NumberingPreamble builds the counter-setup text spliced into the wrapper
// at the preamble sentinel. The chapter counter is set to n-1 so the
// auto-incrementing \chapter inside the body yields n; when the chapter
// page map knows where chapter n started in the last full build, the page
// counter is set too, giving page continuity across partial builds.
func NumberingPreamble(n int, pages map[int]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\\setcounter{chapter}{%d}\n", n-1)
	if page, ok := pages[n]; ok {
		fmt.Fprintf(&b, "\\setcounter{page}{%d}\n", page)
	}
	return b.String()
}

// ComposeTarget expands the wrapper template for one compose target. The
// wrapper is read line by line like a plain component, with two extra line
// kinds honored at this top level only: the target sentinel is replaced by
// body (a trailing newline is enforced), and the preamble sentinel is
// replaced by preamble when non-empty or dropped otherwise. Ordinary
// include directives in the wrapper expand recursively via Expand, so
// sentinels nested inside included files stay literal text.
func ComposeTarget(wrapperPath, body, preamble, root string, idx index.Index) (string, error) {
	f, err := os.Open(wrapperPath)
	if err != nil {
		return "", fmt.Errorf("reading wrapper %s: %w", wrapperPath, err)
	}
	defer f.Close()

	if body != "" && !strings.HasSuffix(body, "\n") {
		body += "\n"
	}

	var out strings.Builder
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadString('\n')
		if line != "" {
			if err := composeWrapperLine(&out, line, body, preamble, root, idx); err != nil {
				return "", err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("reading wrapper %s: %w", wrapperPath, readErr)
		}
	}
	return out.String(), nil
}

func composeWrapperLine(out *strings.Builder, line, body, preamble, root string, idx index.Index) error {
	kind, ref := classifyLine(line)
	switch kind {
	case lineTarget:
		out.WriteString(body)
	case linePreamble:
		if preamble != "" {
			out.WriteString(preamble)
		}
	case lineInclude:
		target, err := index.Resolve(ref, root, idx)
		if err != nil {
			return err
		}
		expanded, err := Expand(target, root, idx, nil)
		if err != nil {
			return err
		}
		out.WriteString(expanded)
	default:
		out.WriteString(line)
	}
	return nil
}
