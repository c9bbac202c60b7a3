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
	_ "embed"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gitlab.com/tozd/go/errors"
)

const schemaURL = "https://raw.githubusercontent.com/walteh/cuttercookie/main/pkg/config/mapping.schema.json"

//go:embed mapping.schema.json
var schemaData []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// mappingSchema compiles the embedded schema once
func mappingSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
		if err != nil {
			schemaErr = errors.Errorf("unmarshal schema: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			schemaErr = errors.Errorf("add schema resource: %w", err)
			return
		}

		schema, schemaErr = compiler.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = errors.Errorf("compile schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// validateJSON checks raw JSON against the mapping schema
func validateJSON(data []byte) error {
	sch, err := mappingSchema()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Errorf("parsing JSON: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return errors.Errorf("schema validation: %w", err)
	}

	return errors.Errorf("mapping must be a flat object of non-empty strings: error at %q", "/"+strings.Join(mostSpecificLocation(verr), "/"))
}

// mostSpecificLocation returns the deepest instance location among the causes
func mostSpecificLocation(err *jsonschema.ValidationError) []string {
	longest := err.InstanceLocation
	for _, cause := range err.Causes {
		if loc := mostSpecificLocation(cause); len(loc) > len(longest) {
			longest = loc
		}
	}
	return longest
}
