// Package safety holds the document safety analyzer: a pure, deterministic
// function from document text to a pass/fail verdict with findings. The
// reference implementation is a stand-in rules engine; any replacement must
// keep the Analyzer contract.
package safety

import "regexp"

// Verdict is the result of a safety check. IsSafe is true iff Findings is
// empty. Findings keep the order of the rules that produced them.
type Verdict struct {
	IsSafe   bool
	Findings []string
}

// Analyzer checks document text for completeness. Implementations must be
// stateless and deterministic for identical input.
type Analyzer interface {
	Check(text string) Verdict
}

type rule struct {
	marker  *regexp.Regexp
	finding string
}

// RulesAnalyzer flags documents missing required elements by
// case-insensitive whole-word presence.
type RulesAnalyzer struct {
	rules []rule
}

func NewRulesAnalyzer() *RulesAnalyzer {
	return &RulesAnalyzer{
		rules: []rule{
			{regexp.MustCompile(`(?i)\bdate\b`), "Missing crucial date"},
			{regexp.MustCompile(`(?i)\bparty\b`), "Missing party names"},
			{regexp.MustCompile(`(?i)\bsignature\b`), "Missing signature"},
		},
	}
}

func (a *RulesAnalyzer) Check(text string) Verdict {
	var findings []string
	for _, r := range a.rules {
		if !r.marker.MatchString(text) {
			findings = append(findings, r.finding)
		}
	}
	return Verdict{IsSafe: len(findings) == 0, Findings: findings}
}
