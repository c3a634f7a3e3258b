// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

package provider

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors classifying provider failures. Adapters wrap the raw
// cause with %w so logs keep the detail while callers match on the class.
var (
	ErrTimeout       = errors.New("provider timed out")
	ErrConnection    = errors.New("cannot reach provider")
	ErrModelNotFound = errors.New("model not found")
	ErrAuth          = errors.New("authentication failed")
	ErrRateLimited   = errors.New("rate limited")
	ErrServer        = errors.New("provider server error")

	// ErrExhausted is matched by ExhaustedError; it never occurs bare.
	ErrExhausted = errors.New("all providers exhausted")
)

// ExhaustedError is returned by the Manager when every provider in the
// fallback order failed. It carries the ordered list of providers
// attempted and the last underlying error for diagnosability.
type ExhaustedError struct {
	Attempts []string
	Last     error
}

func (e *ExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return "all providers exhausted: no providers configured"
	}
	return fmt.Sprintf("all providers exhausted (tried: %s): %v",
		strings.Join(e.Attempts, ", "), e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// Is lets errors.Is(err, ErrExhausted) match regardless of the wrapped
// cause.
func (e *ExhaustedError) Is(target error) bool { return target == ErrExhausted }

// classifyStatus maps an HTTP response status to a sentinel error.
func classifyStatus(status int, detail string) error {
	msg := strings.TrimSpace(detail)
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrModelNotFound, msg)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, msg)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", ErrRateLimited, msg)
	case status >= 500:
		return fmt.Errorf("%w: HTTP %d: %s", ErrServer, status, msg)
	default:
		return fmt.Errorf("%w: HTTP %d: %s", ErrServer, status, msg)
	}
}
