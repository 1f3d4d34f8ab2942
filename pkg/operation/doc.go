/*
Package operation implements the batch update flows run against the
letter-template repository.

	+-------------+
	|  Operation  |
	|  (Batch)    |
	+------+------+
	       |
	+------+------+
	|  Transform  |
	| (text/tiers)|
	+------+------+

🎯 Purpose:
- Drives the wording and signature batches end to end
- Selects candidate files from the remote store
- Records a per-file outcome for every candidate

🔄 Flow:
1. List candidates from the store (base templates or live letters)
2. Read each file's text
3. Transform it (marker replacement, snippet generation)
4. Commit the result back with a descriptive message
5. Track the outcome via the status package

⚡ Key Responsibilities:
- Per-file error isolation: one failure never aborts the batch
- Commit message conventions
- Candidate selection (folder + filename pattern)

🤝 Interfaces:
- remote.Store: the versioned text-blob repository
- text.Replacer: delimited-region replacement
- tiers: tier validation, ordering, snippet generation
- status.Manager: per-file outcome tracking

📝 Design Philosophy:
Operations hold no state across runs and never touch the transforms'
internals: text and tiers stay pure, the store stays agnostic to what
the text means, and this package is the only place that catches a
per-file failure and keeps going. There is deliberately no rollback:
a failure on file N does not undo commits to files 1..N-1, and the
report surfaces exactly what happened to each.
*/
package operation
