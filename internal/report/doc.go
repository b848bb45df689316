// Package report journals conversion runs in SQLite.
//
// Each run gets a row plus one row per converted file or page, written as
// outcomes happen so a crashed run still leaves a usable record. The journal
// is purely an output artifact: nothing in the conversion pipeline reads it
// back, it only feeds the report command.
package report
