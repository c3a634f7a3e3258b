// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package extract recovers code payloads from raw model output: markdown
// fences, JSON envelopes, and provider wire bodies.
package extract

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// Fence patterns, tried in order of strictness. The first pattern that
// yields non-empty content wins.
var fencePatterns = []*regexp.Regexp{
	// Language tag followed by a newline: ```python\n...\n```
	regexp.MustCompile("(?s)```[a-zA-Z0-9_+.-]*\n(.*?)```"),
	// Language tag without a mandatory newline: ```python ...```
	regexp.MustCompile("(?s)```[a-zA-Z0-9_+.-]*\\s?(.*?)```"),
	// Anything between a backtick pair.
	regexp.MustCompile("(?s)```(.*?)```"),
}

// envelopeFields are checked in priority order when the response is a JSON
// object rather than plain text.
var envelopeFields = []string{
	"code",
	"content",
	"message.content",
	"choices.0.message.content",
	"choices.0.text",
}

// ErrorPayload reports whether text is a JSON error envelope, returning the
// embedded message. It recognizes both a bare string "error" field and an
// object with a "message" field.
func ErrorPayload(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return "", false
	}
	errField := gjson.Get(trimmed, "error")
	if !errField.Exists() {
		return "", false
	}
	if errField.Type == gjson.String {
		return errField.String(), true
	}
	if msg := errField.Get("message"); msg.Exists() {
		return msg.String(), true
	}
	return errField.Raw, true
}

// FromEnvelope attempts structured extraction from a JSON object response.
// It returns the first non-empty field from the priority list, or ok=false
// when the text is not a JSON object or no field matches.
func FromEnvelope(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return "", false
	}
	for _, field := range envelopeFields {
		if v := gjson.Get(trimmed, field); v.Exists() && v.Type == gjson.String && v.String() != "" {
			return v.String(), true
		}
	}
	return "", false
}

// CodeBlocks extracts fenced code spans from text. Text with no fence
// markers is returned unchanged (it is assumed to already be code), as is
// empty or whitespace-only input. Multiple fenced spans are joined with a
// blank line. CodeBlocks never fails: if every pattern comes up empty the
// original text is returned.
func CodeBlocks(text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	if !strings.Contains(text, "```") {
		return text
	}

	for i, pat := range fencePatterns {
		matches := pat.FindAllStringSubmatch(text, -1)
		if len(matches) == 0 {
			continue
		}
		var spans []string
		for _, m := range matches {
			if block := strings.Trim(m[1], "\n"); strings.TrimSpace(block) != "" {
				spans = append(spans, block)
			}
		}
		if len(spans) > 0 {
			return strings.Join(spans, "\n\n")
		}
		slog.Debug("fence pattern matched but produced no content, trying next", "pattern", i)
	}
	return text
}

// wireFields are the payload locations used by the supported backend wire
// shapes: completion-style and chat-style bodies.
var wireFields = []string{
	"response",
	"message.content",
	"choices.0.text",
	"choices.0.message.content",
}

// AllTextContent pulls the text payload out of a provider response body,
// trying every known wire shape in priority order. It returns an empty
// string when no payload field is present.
func AllTextContent(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}
	for _, field := range wireFields {
		if v := gjson.GetBytes(body, field); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
