// Package io writes renumbered drawings and traversal mappings.
//
// # Replacing a File
//
// [ReplaceWithBackup] keeps the original next to the result:
//
//	part.svg      renumbered output
//	part.svg.bak  the input as it was
//
// The output is first written to a temporary file in the same directory and
// only moved into place once complete, so a failed write never leaves a
// truncated part.svg behind. An existing backup is overwritten.
//
// # Mapping Export
//
// [WriteMappingJSON] records which id became which connector:
//
//	{
//	  "file": "part.svg",
//	  "base": 0,
//	  "state": "exhausted",
//	  "connectors": [
//	    {"old": "connector0pin+", "index": 0, "new": "connector0pin"},
//	    {"old": "connector3pin", "index": 1, "new": "connector1pin"}
//	  ]
//	}
//
// The export is meant for review and for scripting checks against the
// matching .fzp part file.
package io
