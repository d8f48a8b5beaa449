/*
Package status describes what a build did, without printing anything itself.

	+-------------+        Event        +-------------+
	|  operation  | ------------------> |  Reporter   |
	| (the build) |                     | (log, test) |
	+------+------+                     +-------------+
	       |
	       v
	    Counts  ---> SummaryLines

🎯 Purpose:
  - Name the actions a build takes on a target path (rewritten, copied,
    deleted, created, unchanged)
  - Carry optional per-action notifications to whoever listens
  - Format events and totals for people

📝 Notes:
A nil Reporter is valid everywhere; builds behave identically with
notifications turned off. Formatting lives here so the operation package
never decides how anything looks.
*/
package status
