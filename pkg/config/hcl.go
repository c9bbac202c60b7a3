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

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gitlab.com/tozd/go/errors"
)

const hclRulesAttr = "rules"

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// The file holds a single object attribute:
//
//	rules = {
//	  "myapp"    = "project_name"
//	  "Jane Doe" = "author"
//	}
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return hasExt(filename, ".hcl")
}

// 📝 Parse parses the mapping from HCL, keeping source order
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Mapping, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "cuttercookie.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	attrs, diags := hclFile.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	for name := range attrs {
		if name != hclRulesAttr {
			return nil, errors.Errorf("unsupported attribute %q", name)
		}
	}

	rules, ok := attrs[hclRulesAttr]
	if !ok {
		return nil, errors.Errorf("missing %q attribute", hclRulesAttr)
	}

	items, diags := hcl.ExprMap(rules.Expr)
	if diags.HasErrors() {
		return nil, errors.Errorf("%q must be an object: %s", hclRulesAttr, diags.Error())
	}

	m := &Mapping{}
	for _, item := range items {
		key, diags := item.Key.Value(nil)
		if diags.HasErrors() {
			return nil, errors.Errorf("evaluating key: %s", diags.Error())
		}
		key, err := convert.Convert(key, cty.String)
		if err != nil || key.IsNull() || !key.IsKnown() {
			return nil, errors.Errorf("key at %s must be a string", item.Key.Range())
		}

		value, diags := item.Value.Value(nil)
		if diags.HasErrors() {
			return nil, errors.Errorf("evaluating value for %q: %s", key.AsString(), diags.Error())
		}
		if value.IsNull() || !value.IsKnown() || value.Type() != cty.String {
			return nil, errors.Errorf("value for %q must be a string", key.AsString())
		}

		m.Add(key.AsString(), value.AsString())
	}

	return m, nil
}
