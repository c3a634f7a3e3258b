// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package generate

import (
	"regexp"
	"strings"

	"github.com/spyq/spyq/internal/pycode"
	"github.com/spyq/spyq/internal/rules"
)

// Scorer judges promoted code. The default heuristic is replaceable and
// not part of any contract.
type Scorer interface {
	Score(code string, report *rules.Report) float64
}

// HeuristicScorer blends the style report with simple structural signals:
// docstrings, error handling, imports, and type hints each add points.
type HeuristicScorer struct{}

var _ Scorer = (*HeuristicScorer)(nil)

var typeHintPattern = regexp.MustCompile(`def\s+\w+\s*\([^)]*:\s*\w|->\s*\w`)

// Score returns a value in 0..100.
func (s *HeuristicScorer) Score(code string, report *rules.Report) float64 {
	score := report.QualityScore * 0.7

	if hasAnyDocstring(code) {
		score += 10
	}
	if strings.Contains(code, "try:") && strings.Contains(code, "except") {
		score += 5
	}
	if importPattern.MatchString(code) {
		score += 5
	}
	if typeHintPattern.MatchString(code) {
		score += 10
	}

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

var importPattern = regexp.MustCompile(`(?m)^\s*(import|from)\s+\w`)

func hasAnyDocstring(code string) bool {
	for _, fn := range pycode.Functions(code) {
		for _, line := range fn.Body {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			if strings.HasPrefix(trimmed, `"""`) || strings.HasPrefix(trimmed, "'''") {
				return true
			}
			break
		}
	}
	return false
}
