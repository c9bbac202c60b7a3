/*
Package config loads the pattern → symbol mapping that drives a run.

	+-------------------+      +-----------+      +--------------+
	| cuttercookie.json | ---> |  Mapping  | ---> | text.RuleSet |
	| .yaml .hcl .toml  |      | (ordered) |      |  (sorted)    |
	+-------------------+      +-----------+      +--------------+

🎯 Purpose:
- Read the mapping file (JSON by default, YAML, HCL and TOML by extension)
- Keep the order of the pairs as written, which breaks ties between
  patterns of equal length
- Reject anything that is not a flat object of strings

🔄 Flow:
 1. Load picks a registered Parser by file extension
 2. The parser decodes the file into a Mapping
 3. Mapping.RuleSet / Mapping.Replacer hand off to package text

Every failure returned by Load is classified as errkind.KindConfig.

🔍 Example:

	m, err := config.Load(ctx, filepath.Join(src, config.DefaultFileName))
	if err != nil {
		return err
	}
	replacer, err := m.Replacer()
*/
package config
