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
	"sort"

	"github.com/walteh/cuttercookie/pkg/errkind"
	"gitlab.com/tozd/go/errors"
)

const (
	markerOpen  = "{{cookiecutter."
	markerClose = "}}"
)

// Pair is one entry of the pattern → symbol mapping
type Pair struct {
	// Pattern is a regular expression, usually a plain literal
	Pattern string

	// Symbol is the cookiecutter variable name the pattern stands for
	Symbol string
}

// Rule is a pattern paired with the placeholder it is rewritten into
type Rule struct {
	Pattern     string
	Symbol      string
	Placeholder string
}

// RuleSet is an ordered list of rules; earlier rules win at the same offset
type RuleSet []Rule

// Placeholder wraps a symbol in the cookiecutter marker syntax
func Placeholder(symbol string) string {
	return markerOpen + symbol + markerClose
}

// NewRule creates a rule for a single pair
func NewRule(p Pair) (Rule, error) {
	if p.Pattern == "" {
		return Rule{}, errkind.Config("", errors.Errorf("empty pattern for symbol %q", p.Symbol))
	}
	if p.Symbol == "" {
		return Rule{}, errkind.Config("", errors.Errorf("empty symbol for pattern %q", p.Pattern))
	}
	return Rule{
		Pattern:     p.Pattern,
		Symbol:      p.Symbol,
		Placeholder: Placeholder(p.Symbol),
	}, nil
}

// NewRuleSet builds a RuleSet ordered by descending pattern length, so that a
// longer pattern is tried before any shorter one at the same start offset.
// Patterns of equal length keep the order in which they were given.
func NewRuleSet(pairs ...Pair) (RuleSet, error) {
	rules := make(RuleSet, 0, len(pairs))
	for _, p := range pairs {
		rule, err := NewRule(p)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].Pattern) > len(rules[j].Pattern)
	})

	return rules, nil
}

// Patterns returns the raw patterns in priority order
func (rs RuleSet) Patterns() []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Pattern
	}
	return out
}
