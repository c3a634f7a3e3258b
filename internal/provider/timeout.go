// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"strings"
	"time"
)

// Adaptive timeout tuning. Longer prompts and slower-to-generate languages
// get more time; everything is clamped to maxTimeout so one provider can
// never block a session indefinitely.
const (
	baseTimeout      = 30 * time.Second
	longPromptOffset = 45 * time.Second
	maxTimeout       = 300 * time.Second

	perCharMid  = 50 * time.Millisecond // per char between 100 and 1000
	perCharLong = 20 * time.Millisecond // per char beyond 1000

	codeGenFactor = 1.5
)

// languageFactor scales the timeout for languages that historically take
// models longer to generate correctly.
func languageFactor(language string) float64 {
	switch strings.ToLower(language) {
	case "c++", "cpp", "java", "rust":
		return 1.3
	case "python", "javascript", "ruby", "go":
		return 1.1
	default:
		return 1.0
	}
}

// AdaptiveTimeout computes a per-request timeout from prompt length and
// task type.
func AdaptiveTimeout(promptLen int, task Task, language string) time.Duration {
	var d time.Duration
	switch {
	case promptLen < 100:
		d = baseTimeout
	case promptLen < 1000:
		d = baseTimeout + time.Duration(promptLen-100)*perCharMid
	default:
		d = baseTimeout + longPromptOffset + time.Duration(promptLen-1000)*perCharLong
	}

	if task == TaskCodeGeneration {
		d = time.Duration(float64(d) * codeGenFactor * languageFactor(language))
	}

	if d > maxTimeout {
		d = maxTimeout
	}
	return d
}
