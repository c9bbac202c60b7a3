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
	"bytes"
	"context"
	"encoding/json"
	"io"

	"gitlab.com/tozd/go/errors"
)

// 🔧 JSONParser implements the Parser interface for JSON files
type JSONParser struct{}

func init() {
	Register(&JSONParser{})
}

// 🔍 CanParse checks if this parser can handle the given file
func (p *JSONParser) CanParse(filename string) bool {
	return hasExt(filename, ".json")
}

// 📝 Parse parses the mapping from JSON bytes, keeping key order
func (p *JSONParser) Parse(ctx context.Context, data []byte) (*Mapping, error) {
	if err := validateJSON(data); err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))

	tok, err := decoder.Token()
	if err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("expected JSON object")
	}

	m := &Mapping{}
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return nil, errors.Errorf("parsing JSON: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected key %v", keyTok)
		}

		valTok, err := decoder.Token()
		if err != nil {
			return nil, errors.Errorf("parsing JSON: %w", err)
		}
		value, ok := valTok.(string)
		if !ok {
			return nil, errors.Errorf("value for %q must be a string", key)
		}

		m.Add(key, value)
	}

	// closing brace, then nothing else
	if _, err := decoder.Token(); err != nil {
		return nil, errors.Errorf("parsing JSON: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}

	return m, nil
}
