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
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
	"gitlab.com/tozd/go/errors"
)

// 🔧 TOMLParser implements the Parser interface for TOML files
type TOMLParser struct{}

func init() {
	Register(&TOMLParser{})
}

func (p *TOMLParser) CanParse(filename string) bool {
	return hasExt(filename, ".toml")
}

// Parse reads top level key/value pairs in document order. Tables, dotted
// keys and repeated keys are rejected.
func (p *TOMLParser) Parse(ctx context.Context, data []byte) (*Mapping, error) {
	parser := unstable.Parser{}
	parser.Reset(data)

	m := &Mapping{}
	seen := make(map[string]struct{})
	for parser.NextExpression() {
		expr := parser.Expression()
		switch expr.Kind {
		case unstable.KeyValue:
		case unstable.Comment, unstable.Invalid:
			continue
		default:
			return nil, errors.Errorf("unexpected TOML %s, mapping must be flat", expr.Kind)
		}

		var parts []string
		key := expr.Key()
		for key.Next() {
			parts = append(parts, string(key.Node().Data))
		}
		name := strings.Join(parts, ".")
		if len(parts) != 1 || name == "" {
			return nil, errors.Errorf("key %q must be a single non-empty key", name)
		}

		if _, dup := seen[name]; dup {
			return nil, errors.Errorf("key %q is defined more than once", name)
		}
		seen[name] = struct{}{}

		value := expr.Value()
		if value.Kind != unstable.String || len(value.Data) == 0 {
			return nil, errors.Errorf("value for %q must be a non-empty string", name)
		}
		m.Add(name, string(value.Data))
	}
	if err := parser.Error(); err != nil {
		return nil, errors.Errorf("parsing TOML: %w", err)
	}

	return m, nil
}
