/*
Package operation implements the build: mirroring a source tree into a
target tree while rewriting marked files on the way.

	+-------------+      +-------------+
	|   Source    | ---> |   Builder   |
	|   (tree)    |      | build pass  |
	+-------------+      +------+------+
	                            |
	                     +------+------+
	                     |   Target    |
	                     | clean pass  |
	                     +-------------+

🔄 Build pass, for every source entry in pre-order:
 1. directories are created in the target
 2. processable files (".js" by default) go through the rewriter; when a
    marker fired the result is written if the target differs
 3. every other file, and processable files without markers, is copied
    when the target is missing or its modification time differs

🧹 Clean pass: every target entry without a source counterpart is deleted,
directories with their whole subtree.

Both passes report through a status.Reporter and count what they did into
a Result. With DryRun set the counts and reports are the same but the
target is left alone, which is what Status uses.

🔍 Example:

	res, err := operation.Build(ctx, operation.Options{
		Source:   "src",
		Target:   "dist",
		Reporter: logger,
	})
	if err != nil {
		return err
	}
	fmt.Println(status.SummaryLines(res.Counts))

Several builds run through a Runner, one after the other or in parallel
when their targets do not overlap.
*/
package operation
