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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/cuttercookie/pkg/errkind"
)

func mustReplacer(t *testing.T, pairs ...Pair) *Replacer {
	t.Helper()
	rules, err := NewRuleSet(pairs...)
	require.NoError(t, err)
	r, err := NewReplacer(rules)
	require.NoError(t, err)
	return r
}

func TestReplacer_Replace(t *testing.T) {
	tests := []struct {
		name  string
		pairs []Pair
		input string
		want  string
	}{
		{
			name:  "no_match_is_identity",
			pairs: []Pair{{Pattern: "myapp", Symbol: "project_name"}},
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "empty_rules_is_identity",
			pairs: nil,
			input: "anything {{ at all }}",
			want:  "anything {{ at all }}",
		},
		{
			name:  "empty_input",
			pairs: []Pair{{Pattern: "myapp", Symbol: "project_name"}},
			input: "",
			want:  "",
		},
		{
			name:  "file_name",
			pairs: []Pair{{Pattern: "myapp", Symbol: "project_name"}},
			input: "myapp_config.txt",
			want:  "{{cookiecutter.project_name}}_config.txt",
		},
		{
			name:  "file_content",
			pairs: []Pair{{Pattern: "myapp", Symbol: "project_name"}},
			input: "run myapp now",
			want:  "run {{cookiecutter.project_name}} now",
		},
		{
			name: "longest_pattern_wins",
			pairs: []Pair{
				{Pattern: "old", Symbol: "short"},
				{Pattern: "old_value", Symbol: "long"},
			},
			input: "old_value",
			want:  "{{cookiecutter.long}}",
		},
		{
			name: "longest_pattern_wins_mixed",
			pairs: []Pair{
				{Pattern: "old", Symbol: "short"},
				{Pattern: "old_value", Symbol: "long"},
			},
			input: "old old_value old_",
			want:  "{{cookiecutter.short}} {{cookiecutter.long}} {{cookiecutter.short}}_",
		},
		{
			name: "no_cascading",
			pairs: []Pair{
				{Pattern: "a", Symbol: "b"},
				{Pattern: "b", Symbol: "c"},
			},
			input: "a",
			want:  "{{cookiecutter.b}}",
		},
		{
			name: "no_cascading_adjacent",
			pairs: []Pair{
				{Pattern: "a", Symbol: "b"},
				{Pattern: "b", Symbol: "c"},
			},
			input: "ab",
			want:  "{{cookiecutter.b}}{{cookiecutter.c}}",
		},
		{
			name:  "regex_pattern",
			pairs: []Pair{{Pattern: `v\d+\.\d+`, Symbol: "version"}},
			input: "release v1.20 today",
			want:  "release {{cookiecutter.version}} today",
		},
		{
			name: "pattern_with_inner_groups",
			pairs: []Pair{
				{Pattern: "(foo|bar)baz", Symbol: "x"},
				{Pattern: "qux", Symbol: "y"},
			},
			input: "barbaz qux foobaz",
			want:  "{{cookiecutter.x}} {{cookiecutter.y}} {{cookiecutter.x}}",
		},
		{
			name: "equal_length_keeps_given_order",
			pairs: []Pair{
				{Pattern: "a.c", Symbol: "first"},
				{Pattern: "abc", Symbol: "second"},
			},
			input: "abc",
			want:  "{{cookiecutter.first}}",
		},
		{
			name:  "multibyte_text",
			pairs: []Pair{{Pattern: "café", Symbol: "name"}},
			input: "le café.",
			want:  "le {{cookiecutter.name}}.",
		},
		{
			name:  "path_components",
			pairs: []Pair{{Pattern: "myapp", Symbol: "project_name"}},
			input: "myapp/src/myapp.go",
			want:  "{{cookiecutter.project_name}}/src/{{cookiecutter.project_name}}.go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustReplacer(t, tt.pairs...)
			assert.Equal(t, tt.want, r.Replace(tt.input))
		})
	}
}

func TestReplacer_ReplaceText(t *testing.T) {
	r := mustReplacer(t,
		Pair{Pattern: "myapp", Symbol: "project_name"},
		Pair{Pattern: "Jane Doe", Symbol: "author"},
	)

	result, err := r.ReplaceText(context.Background(), strings.NewReader("myapp by Jane Doe, myapp"))
	require.NoError(t, err)
	assert.True(t, result.WasModified)
	assert.Equal(t, 3, result.ReplacementCount)
	assert.Equal(t, map[string]int{"myapp": 2, "Jane Doe": 1}, result.RuleCounts)
	assert.Equal(t, "myapp by Jane Doe, myapp", string(result.OriginalContent))
	assert.Equal(t, "{{cookiecutter.project_name}} by {{cookiecutter.author}}, {{cookiecutter.project_name}}", string(result.ModifiedContent))

	result, err = r.ReplaceText(context.Background(), strings.NewReader("nothing here"))
	require.NoError(t, err)
	assert.False(t, result.WasModified)
	assert.Equal(t, 0, result.ReplacementCount)
	assert.Equal(t, "nothing here", string(result.ModifiedContent))
}

func TestReplacer_ReplaceTextInvalidUTF8(t *testing.T) {
	r := mustReplacer(t, Pair{Pattern: "myapp", Symbol: "project_name"})

	_, err := r.ReplaceText(context.Background(), bytes.NewReader([]byte{'m', 0xff, 0xfe}))
	require.Error(t, err)
	assert.ErrorIs(t, err, errkind.ErrEncoding)
}

func TestReplacer_ReplaceTextReadFailure(t *testing.T) {
	r := mustReplacer(t, Pair{Pattern: "myapp", Symbol: "project_name"})
	cause := errors.New("disk went away")

	_, err := r.ReplaceText(context.Background(), iotest.ErrReader(cause))
	require.Error(t, err)
	assert.ErrorIs(t, err, errkind.ErrFileSystem)
	assert.ErrorIs(t, err, cause)
}

func TestNewReplacerErrors(t *testing.T) {
	tests := []struct {
		name      string
		pairs     []Pair
		wantError string
	}{
		{
			name:      "invalid_regex",
			pairs:     []Pair{{Pattern: "(", Symbol: "x"}},
			wantError: `compiling pattern "("`,
		},
		{
			name: "invalid_regex_among_valid",
			pairs: []Pair{
				{Pattern: "ok", Symbol: "x"},
				{Pattern: "[a-", Symbol: "y"},
			},
			wantError: `compiling pattern "[a-"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := NewRuleSet(tt.pairs...)
			require.NoError(t, err)

			_, err = NewReplacer(rules)
			require.Error(t, err)
			assert.ErrorIs(t, err, errkind.ErrConfig)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}
