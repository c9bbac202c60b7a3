/*
Package status owns the output tree and tracks what happened to each entry.

	            +-------------+
	            |   Manager   |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Writes   |           | Summary |
	| (outputs) |           | (UI/UX) |
	+-----------+           +---------+

🎯 Purpose:
- Creates the output root, directories and files below it
- Tracks the status of every entry (created, planned, skipped, failed)
- Totals a run into a Summary

⚡ Rules:
- Directories are created one level at a time; the walk order guarantees
  the parent exists, so a missing parent or an existing target is an error
- Files are created or truncated and keep the source permission bits
- Nothing is written atomically and nothing is rolled back
- In dry run mode every write is a no-op but still tracked

🤝 Interfaces:
- FileManager: the writes
- StatusReporter: tracking and totals
- FileFormatter: status messages
*/
package status
