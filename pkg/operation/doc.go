/*
Package operation turns a source directory into a cookiecutter template.

	+-------------+
	|    Walk     |
	|  (entries)  |
	+------+------+
	       |
	+------+------+
	|  Processor  |
	|  (rewrite)  |
	+------+------+
	       |
	+------+------+
	|   Status    |
	|  (writes)   |
	+-------------+

🎯 Purpose:
- Validates the destination before anything is written
- Maps every source relative path through the Replacer
- Rewrites file contents through the same Replacer
- Delegates writes and tracking to the status package

🔄 Flow:
1. ValidateDestination: dest is empty (except the mapping file) and not inside the source
2. The output root is created, unless NoRoot writes straight into dest
3. The runner walks the source, in order or partitioned by top-level directory
4. The Processor skips the root and the mapping file, creates directories
   and writes rewritten files

⚡ Failure:
The first error aborts the run. Output already written stays on disk.

🔍 Example:

	op, err := operation.NewTemplatizeOperation(operation.Options{
		Source:      "./myapp",
		Destination: "./template",
		Replacer:    replacer,
	})
	if err != nil {
		return err
	}
	err = op.Execute(ctx)
*/
package operation
