// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
)

// contentsLinePattern matches the \contentsline chapter entries LaTeX
// writes to the aux/toc machinery, e.g.
//
//	\contentsline {chapter}{\numberline {2}Probability}{15}{chapter.2}
//
// The first digit group is the chapter number, the second the start page.
var contentsLinePattern = regexp.MustCompile(
	`\\contentsline\s*\{chapter\}\{\\numberline\s*\{(\d+)\}.*?\}\{(\d+)\}`)

// ParseAux scans a compiler-produced auxiliary file for chapter entries and
// returns the chapter-to-start-page map. A missing file is a first build,
// not an error: the result is simply empty. When the same chapter number
// appears more than once the last occurrence in file order wins.
func ParseAux(path string) (map[int]int, error) {
	pages := make(map[int]int)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pages, nil
		}
		return nil, fmt.Errorf("reading aux file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := contentsLinePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		chapter, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		page, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		pages[chapter] = page
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading aux file %s: %w", path, err)
	}
	return pages, nil
}
