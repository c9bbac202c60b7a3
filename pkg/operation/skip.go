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

package operation

import "github.com/walteh/cuttercookie/pkg/text"

// ⏭️ SkipSet holds mapped relative paths that are never materialized
type SkipSet map[string]struct{}

// NewSkipSet creates a SkipSet from slash separated relative paths
func NewSkipSet(paths ...string) SkipSet {
	s := make(SkipSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

// DefaultSkipSet skips the source root and the mapping file, under both its
// plain and its mapped name
func DefaultSkipSet(configName string, r text.TextReplacer) SkipSet {
	return NewSkipSet("", configName, r.Replace(configName))
}

// Contains reports whether a mapped path is skipped
func (s SkipSet) Contains(mapped string) bool {
	_, ok := s[mapped]
	return ok
}
