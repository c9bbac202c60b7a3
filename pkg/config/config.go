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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/cuttercookie/pkg/errkind"
	"github.com/walteh/cuttercookie/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// DefaultFileName is the mapping file looked up in the source root
const DefaultFileName = "cuttercookie.json"

// 🔌 Parser is the interface for mapping parsers
type Parser interface {
	// 📝 Parse parses the mapping from bytes
	Parse(ctx context.Context, data []byte) (*Mapping, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// 📚 Mapping is the ordered pattern → symbol mapping of a mapping file
type Mapping struct {
	Pairs    []text.Pair
	location string
	index    map[string]int
}

// NewMapping creates a mapping from pairs, in order
func NewMapping(pairs ...text.Pair) *Mapping {
	m := &Mapping{}
	for _, p := range pairs {
		m.Add(p.Pattern, p.Symbol)
	}
	return m
}

// Add appends a pair. A pattern seen before keeps its position and takes
// the new symbol, the way a JSON object keeps only the last duplicate key.
func (m *Mapping) Add(pattern, symbol string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[pattern]; ok {
		m.Pairs[i].Symbol = symbol
		return
	}
	m.index[pattern] = len(m.Pairs)
	m.Pairs = append(m.Pairs, text.Pair{Pattern: pattern, Symbol: symbol})
}

// Len returns the number of pairs
func (m *Mapping) Len() int {
	return len(m.Pairs)
}

// Location returns the file the mapping was loaded from
func (m *Mapping) Location() string {
	return m.location
}

// RuleSet builds the priority ordered rules for this mapping
func (m *Mapping) RuleSet() (text.RuleSet, error) {
	rules, err := text.NewRuleSet(m.Pairs...)
	if err != nil {
		return nil, errors.Errorf("building rules from %s: %w", m.location, err)
	}
	return rules, nil
}

// Replacer builds the combined matcher for this mapping
func (m *Mapping) Replacer() (*text.Replacer, error) {
	rules, err := m.RuleSet()
	if err != nil {
		return nil, err
	}
	r, err := text.NewReplacer(rules)
	if err != nil {
		return nil, errors.Errorf("compiling rules from %s: %w", m.location, err)
	}
	return r, nil
}

// 🎯 Load loads the mapping from a file. Every failure is a config error.
func Load(ctx context.Context, path string) (*Mapping, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading substitution mapping")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errkind.Config(path, errors.Errorf("reading mapping file: %w", err))
	}

	p := GetParser(path)
	if p == nil {
		return nil, errkind.Config(path, errors.Errorf("no parser found for file extension %q", filepath.Ext(path)))
	}

	m, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errkind.Config(path, errors.Errorf("parsing mapping: %w", err))
	}
	m.location = path

	logger.Debug().Str("path", path).Int("rules", m.Len()).Msg("loaded substitution mapping")

	return m, nil
}
