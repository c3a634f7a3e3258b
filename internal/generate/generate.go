// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package generate drives the code-generation loop: build a prompt, call
// a provider, normalize and validate the response, complete stubbed
// functions, and score the result. One Session per request, never shared
// between goroutines.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/spyq/spyq/internal/candidate"
	"github.com/spyq/spyq/internal/config"
	"github.com/spyq/spyq/internal/promptctx"
	"github.com/spyq/spyq/internal/provider"
	"github.com/spyq/spyq/internal/pycode"
	"github.com/spyq/spyq/internal/rules"
	"github.com/spyq/spyq/internal/stubs"
)

// DefaultMaxIterations bounds the retry loop when the request does not
// set its own limit.
const DefaultMaxIterations = 3

const systemPrompt = `You are a Python code generator.
Return only Python code in a single fenced code block.
Every function needs a docstring. Do not explain the code.`

// Generator is the provider surface the orchestrator needs. Satisfied by
// *provider.Manager and by test doubles.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts provider.GenerateOpts) (*provider.Result, error)
}

// Request describes one generation job.
type Request struct {
	UserRequest   string
	Context       map[string]string // extra key/value context rendered into the prompt
	SessionID     string            // defaults to a new uuid
	MaxIterations int               // defaults to DefaultMaxIterations
	FastMode      bool              // forces exactly one provider call
}

// Outcome is the terminal result of a generation session. Err is set on
// failure; GeneratedCode is only set when a syntax-valid candidate was
// promoted.
type Outcome struct {
	GeneratedCode  string
	QualityScore   float64
	IterationsUsed int
	Issues         []string
	Validation     *rules.Report
	Err            error
}

// Session tracks one request through the state machine.
type Session struct {
	ID         string
	Iteration  int
	Candidates []*candidate.Candidate
	FinalCode  string
	Score      float64
}

type state int

const (
	stateBuildContext state = iota
	stateCallProvider
	stateClassifyExtract
	stateValidate
	stateCompleteStubs
	stateDone
	stateFailed
)

// Orchestrator runs generation sessions against a provider chain.
type Orchestrator struct {
	gen     Generator
	scorer  Scorer
	checker *rules.Validator
	project *promptctx.Context
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithScorer replaces the default heuristic scorer.
func WithScorer(s Scorer) Option {
	return func(o *Orchestrator) { o.scorer = s }
}

// WithRules sets the style validator applied to promoted candidates.
func WithRules(v *rules.Validator) Option {
	return func(o *Orchestrator) { o.checker = v }
}

// WithProjectContext injects gathered project context into every prompt.
func WithProjectContext(pc *promptctx.Context) Option {
	return func(o *Orchestrator) { o.project = pc }
}

// New creates an Orchestrator backed by gen.
func New(gen Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:     gen,
		scorer:  &HeuristicScorer{},
		checker: rules.New(config.RulesConfig{}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate runs the state machine for one request. Stage panics are
// converted into a failed outcome; callers never see a raw panic.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("generation stage panicked", "panic", r)
			out = Outcome{Err: fmt.Errorf("generation failed: internal error: %v", r)}
		}
	}()

	sess := &Session{ID: req.SessionID}
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}

	maxIterations := req.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if req.FastMode {
		maxIterations = 1
	}

	var (
		basePrompt string
		prompt     string
		cand       *candidate.Candidate
		lastErr    error
		issues     []string
		st         = stateBuildContext
	)

	for st != stateDone && st != stateFailed {
		switch st {
		case stateBuildContext:
			basePrompt = o.buildPrompt(req)
			prompt = basePrompt
			st = stateCallProvider

		case stateCallProvider:
			if sess.Iteration >= maxIterations {
				st = stateFailed
				continue
			}
			sess.Iteration++
			slog.Debug("calling provider", "session", sess.ID, "iteration", sess.Iteration)

			res, err := o.gen.Generate(ctx, prompt, provider.GenerateOpts{
				Task:         provider.TaskCodeGeneration,
				Language:     "python",
				SystemPrompt: systemPrompt,
			})
			if err != nil {
				lastErr = err
				if ctx.Err() != nil {
					st = stateFailed
					continue
				}
				issues = append(issues, fmt.Sprintf("iteration %d: %v", sess.Iteration, err))
				st = stateCallProvider
				continue
			}
			cand = candidate.Process(res.Text, "python")
			sess.Candidates = append(sess.Candidates, cand)
			st = stateClassifyExtract

		case stateClassifyExtract:
			issues = append(issues, cand.Issues...)
			if cand.Extracted == "" || !cand.SyntaxValid {
				// Not promotable; retry with feedback.
				prompt = o.retryPrompt(basePrompt, cand.Issues)
				st = stateCallProvider
				continue
			}
			st = stateCompleteStubs

		case stateCompleteStubs:
			if req.FastMode {
				st = stateValidate
				continue
			}
			cand.Extracted = o.completeStubs(ctx, sess, cand.Extracted)
			if still, remaining := stubs.Detect(cand.Extracted); still {
				names := make([]string, len(remaining))
				for i, inc := range remaining {
					names[i] = inc.Name
				}
				issues = append(issues, fmt.Sprintf("incomplete functions remain: %s", strings.Join(names, ", ")))
			}
			st = stateValidate

		case stateValidate:
			// Stub completion may have rewritten the candidate; only code
			// that still checks out is promoted.
			if chk := pycode.Check(cand.Extracted); !chk.Valid {
				issues = append(issues, chk.Issues...)
				prompt = o.retryPrompt(basePrompt, chk.Issues)
				st = stateCallProvider
				continue
			}
			sess.FinalCode = cand.Extracted
			st = stateDone
		}
	}

	if st == stateFailed || sess.FinalCode == "" {
		err := lastErr
		if err == nil {
			err = fmt.Errorf("no valid code after %d iteration(s)", sess.Iteration)
		}
		return Outcome{
			IterationsUsed: sess.Iteration,
			Issues:         issues,
			Err:            fmt.Errorf("generation failed: %w", err),
		}
	}

	report := o.checker.ValidateContent(sess.FinalCode)
	sess.Score = o.scorer.Score(sess.FinalCode, report)

	return Outcome{
		GeneratedCode:  sess.FinalCode,
		QualityScore:   sess.Score,
		IterationsUsed: sess.Iteration,
		Issues:         issues,
		Validation:     report,
	}
}

// buildPrompt renders project context, request context, and the user
// request into the initial prompt.
func (o *Orchestrator) buildPrompt(req Request) string {
	var b strings.Builder

	if o.project != nil {
		if rendered := o.project.Render(); rendered != "" {
			b.WriteString(rendered)
			b.WriteByte('\n')
		}
	}

	if len(req.Context) > 0 {
		keys := make([]string, 0, len(req.Context))
		for k := range req.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, req.Context[k])
		}
		b.WriteByte('\n')
	}

	b.WriteString(req.UserRequest)
	return b.String()
}

// retryPrompt appends feedback from a failed attempt to the base prompt.
func (o *Orchestrator) retryPrompt(basePrompt string, problems []string) string {
	var b strings.Builder
	b.WriteString(basePrompt)
	b.WriteString("\n\nThe previous attempt had these problems:\n")
	for _, p := range problems {
		b.WriteString("  - ")
		b.WriteString(p)
		b.WriteByte('\n')
	}
	b.WriteString("Return corrected, complete Python code.")
	return b.String()
}

// completeStubs runs one targeted completion pass over stub functions.
// Any failure leaves the original code untouched.
func (o *Orchestrator) completeStubs(ctx context.Context, sess *Session, code string) string {
	hasStubs, incomplete := stubs.Detect(code)
	if !hasStubs {
		return code
	}

	names := make([]string, len(incomplete))
	for i, inc := range incomplete {
		names[i] = inc.Name
	}
	slog.Debug("completing stub functions", "session", sess.ID, "functions", names)

	res, err := o.gen.Generate(ctx, stubs.FormatForCompletion(code, incomplete), provider.GenerateOpts{
		Task:         provider.TaskCodeGeneration,
		Language:     "python",
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		slog.Warn("stub completion call failed", "session", sess.ID, "error", err)
		return code
	}

	completion := candidate.Process(res.Text, "python")
	if !completion.SyntaxValid || completion.Extracted == "" {
		slog.Warn("stub completion response unusable", "session", sess.ID, "issues", completion.Issues)
		return code
	}

	merged := stubs.Merge(code, completion.Extracted)
	if !pycode.Check(merged).Valid {
		slog.Warn("stub merge produced invalid code", "session", sess.ID)
		return code
	}
	return merged
}
