// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package text turns literal values into cookiecutter placeholders.
//
// A RuleSet is built from pattern → symbol pairs and compiled into a single
// Replacer. The Replacer performs one left-to-right scan per input: every
// match is replaced by the placeholder of the rule that produced it, and
// replacement text is never scanned again.
//
//	rules, _ := text.NewRuleSet(text.Pair{Pattern: "myapp", Symbol: "project_name"})
//	r, _ := text.NewReplacer(rules)
//	r.Replace("run myapp now") // "run {{cookiecutter.project_name}} now"
package text

import (
	"context"
	"io"
)

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// RuleCounts maps each rule's pattern to the number of its matches
	RuleCounts map[string]int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// Replace rewrites a string in a single pass
	Replace(input string) string

	// ReplaceText rewrites the full content of a reader and reports what changed.
	// The content must be valid UTF-8.
	ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error)
}
