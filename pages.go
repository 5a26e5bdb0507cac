package pdfword

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxPageNumber is the largest page number ParsePages accepts.
const MaxPageNumber = 10000

// ParsePages parses a page selection such as "1-3,5" into 1-indexed page
// numbers for Pages. An empty selection returns nil, meaning all pages.
// Ranges are inclusive; the numbers are validated against the PDF later.
func ParsePages(selection string) ([]int, error) {
	selection = strings.TrimSpace(selection)
	if selection == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty entry in page selection %q", selection)
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := parsePageNumber(lo)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parsePageNumber(hi); err != nil {
				return nil, err
			}
			if end < start {
				return nil, fmt.Errorf("page range %q is reversed", part)
			}
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}

func parsePageNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("page number %d must be at least 1", n)
	}
	if n > MaxPageNumber {
		return 0, fmt.Errorf("page number %d exceeds the limit of %d", n, MaxPageNumber)
	}
	return n, nil
}
