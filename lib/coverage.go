package lib

import (
	"regexp"
	"strconv"
	"strings"
)

// Coverage figures the runner recognizes in test tool output:
//
//	pytest-cov: "TOTAL    120    15    88%"
//	go test:    "coverage: 87.5% of statements"
var (
	pytestTotalRe = regexp.MustCompile(`(?m)^TOTAL\s+\d+\s+\d+\s+(\d+(?:\.\d+)?)%`)
	goCoverageRe  = regexp.MustCompile(`coverage:\s+(\d+(?:\.\d+)?)%`)
)

// ParseCoverage extracts the total coverage percentage from a test tool's
// terminal output. The second return value reports whether a figure was
// found; a missing figure is not an error.
func ParseCoverage(output string) (float64, bool) {
	for _, re := range []*regexp.Regexp{pytestTotalRe, goCoverageRe} {
		match := re.FindStringSubmatch(output)
		if match == nil {
			continue
		}
		pct, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		return pct, true
	}
	return 0, false
}

// FormatCoverage renders a percentage the way the banners print it, with
// whole numbers reading as "88%" rather than "88.0%".
func FormatCoverage(pct float64) string {
	s := strconv.FormatFloat(pct, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s + "%"
}
