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

package text

import (
	"context"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/walteh/cuttercookie/pkg/errkind"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*Replacer)(nil)

// 🔄 Replacer is the combined matcher for a RuleSet.
//
// All patterns are joined into one alternation, one outer group per rule in
// RuleSet order. Go's regexp picks the leftmost match and, at the same
// offset, the first alternative that matches, which is what gives the
// longer pattern priority. A Replacer is read-only after construction and
// safe for concurrent use.
type Replacer struct {
	rules  RuleSet
	re     *regexp.Regexp
	groups []int // outer submatch index of each rule
}

// 🏭 NewReplacer compiles a RuleSet
func NewReplacer(rules RuleSet) (*Replacer, error) {
	r := &Replacer{rules: rules}
	if len(rules) == 0 {
		return r, nil
	}

	parts := make([]string, len(rules))
	r.groups = make([]int, len(rules))

	// patterns may carry their own groups, which shift the outer indexes
	next := 1
	for i, rule := range rules {
		single, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, errkind.Config("", errors.Errorf("compiling pattern %q: %w", rule.Pattern, err))
		}
		r.groups[i] = next
		next += 1 + single.NumSubexp()
		parts[i] = "(" + rule.Pattern + ")"
	}

	re, err := regexp.Compile(strings.Join(parts, "|"))
	if err != nil {
		return nil, errkind.Config("", errors.Errorf("compiling combined pattern: %w", err))
	}
	r.re = re

	return r, nil
}

// Rules returns the rules in priority order
func (r *Replacer) Rules() RuleSet {
	return r.rules
}

// Replace implements TextReplacer.Replace
func (r *Replacer) Replace(input string) string {
	out, _ := r.replace(input, nil)
	return out
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *Replacer) ReplaceText(ctx context.Context, content io.Reader) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errkind.FileSystem("", errors.Errorf("reading content: %w", err))
	}

	if !utf8.Valid(originalContent) {
		return nil, errkind.Encoding("", errors.New("content is not valid UTF-8"))
	}

	counts := make(map[string]int)
	modified, n := r.replace(string(originalContent), counts)

	return &ReplacementResult{
		WasModified:      n > 0,
		ReplacementCount: n,
		RuleCounts:       counts,
		OriginalContent:  originalContent,
		ModifiedContent:  []byte(modified),
	}, nil
}

// replace performs the single scan. counts may be nil.
func (r *Replacer) replace(input string, counts map[string]int) (string, int) {
	if r.re == nil {
		return input, 0
	}

	matches := r.re.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input, 0
	}

	var b strings.Builder
	b.Grow(len(input))

	last, n := 0, 0
	for _, m := range matches {
		b.WriteString(input[last:m[0]])
		if rule, ok := r.attribute(m); ok {
			b.WriteString(rule.Placeholder)
			n++
			if counts != nil {
				counts[rule.Pattern]++
			}
		} else {
			b.WriteString(input[m[0]:m[1]])
		}
		last = m[1]
	}
	b.WriteString(input[last:])

	return b.String(), n
}

// attribute finds the rule whose outer group took part in the match
func (r *Replacer) attribute(m []int) (Rule, bool) {
	for i, g := range r.groups {
		if 2*g < len(m) && m[2*g] >= 0 {
			return r.rules[i], true
		}
	}
	return Rule{}, false
}
