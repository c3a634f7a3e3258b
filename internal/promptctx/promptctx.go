// Copyright 2026 The SPYQ Authors
// SPDX-License-Identifier: MIT

// Package promptctx assembles project context for generation prompts:
// recent git activity, project file names, and the user's style rules.
// Context gathering is best-effort; a missing repo degrades to an empty
// section rather than an error.
package promptctx

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/spyq/spyq/internal/config"
)

// CommitSummary holds metadata about a single recent commit.
type CommitSummary struct {
	Hash    string
	Message string
	Author  string
	Date    time.Time
}

// Context is the gathered project context injected into prompts.
type Context struct {
	RecentCommits []CommitSummary
	PythonFiles   []string // relative paths, sorted
	Rules         config.RulesConfig
}

// Builder gathers context from a project root.
type Builder struct {
	root       string
	maxCommits int
	maxFiles   int
}

// Option configures a Builder.
type Option func(*Builder)

// WithMaxCommits caps the number of commits included in the context.
func WithMaxCommits(n int) Option {
	return func(b *Builder) { b.maxCommits = n }
}

// WithMaxFiles caps the number of project files listed in the context.
func WithMaxFiles(n int) Option {
	return func(b *Builder) { b.maxFiles = n }
}

// NewBuilder creates a Builder for the given project root.
func NewBuilder(root string, opts ...Option) *Builder {
	b := &Builder{root: root, maxCommits: 5, maxFiles: 30}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build gathers context. Failures in individual sources are logged at
// debug level and produce empty sections, never an error.
func (b *Builder) Build(rules config.RulesConfig) *Context {
	ctx := &Context{Rules: rules}

	commits, err := recentCommits(b.root, b.maxCommits)
	if err != nil {
		slog.Debug("no git history available", "path", b.root, "error", err)
	} else {
		ctx.RecentCommits = commits
	}

	files, err := pythonFiles(b.root, b.maxFiles)
	if err != nil {
		slog.Debug("project file scan failed", "path", b.root, "error", err)
	} else {
		ctx.PythonFiles = files
	}

	return ctx
}

// recentCommits walks the git log and returns up to max commits,
// newest first.
func recentCommits(repoPath string, max int) ([]CommitSummary, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{Order: git.LogOrderCommitterTime})
	if err != nil {
		// Empty repo with no commits returns "reference not found".
		return nil, nil
	}

	var commits []CommitSummary
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, CommitSummary{
			Hash:    c.Hash.String()[:8],
			Message: firstLine(c.Message),
			Author:  c.Author.Name,
			Date:    c.Author.When,
		})
		if len(commits) >= max {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

// pythonFiles lists .py files under root, skipping hidden directories and
// common vendored trees.
func pythonFiles(root string, max int) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == "__pycache__" || name == "venv" || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".py") {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	if len(files) > max {
		files = files[:max]
	}
	return files, nil
}

// Render formats the context as a prompt preamble. An empty context
// renders to an empty string.
func (c *Context) Render() string {
	var b strings.Builder

	if len(c.PythonFiles) > 0 {
		b.WriteString("Project files:\n")
		for _, f := range c.PythonFiles {
			b.WriteString("  ")
			b.WriteString(f)
			b.WriteByte('\n')
		}
	}

	if len(c.RecentCommits) > 0 {
		b.WriteString("Recent commits:\n")
		for _, cs := range c.RecentCommits {
			fmt.Fprintf(&b, "  %s %s (%s)\n", cs.Hash, cs.Message, cs.Author)
		}
	}

	var ruleLines []string
	if c.Rules.MaxLineLength > 0 {
		ruleLines = append(ruleLines, fmt.Sprintf("max line length %d", c.Rules.MaxLineLength))
	}
	if c.Rules.MaxFunctionLines > 0 {
		ruleLines = append(ruleLines, fmt.Sprintf("max function length %d lines", c.Rules.MaxFunctionLines))
	}
	if c.Rules.RequireDocstrings == nil || *c.Rules.RequireDocstrings {
		ruleLines = append(ruleLines, "every function needs a docstring")
	}
	if c.Rules.ForbidPrint {
		ruleLines = append(ruleLines, "no print calls; use logging")
	}
	if len(ruleLines) > 0 {
		b.WriteString("Style rules:\n")
		for _, r := range ruleLines {
			b.WriteString("  - ")
			b.WriteString(r)
			b.WriteByte('\n')
		}
	}

	return b.String()
}

// firstLine returns the first line of a multi-line string.
func firstLine(s string) string {
	for i, c := range s {
		if c == '\n' {
			return s[:i]
		}
	}
	return s
}
