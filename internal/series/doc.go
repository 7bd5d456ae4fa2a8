// Package series holds the (time, value) data model and its text codecs.
//
// Load/Parse sniff the field delimiter by trying comma, semicolon and
// whitespace in that order; the first one under which every non-blank line
// holds exactly two numeric fields wins. When none does, the error is a
// *ParseError carrying the line and reason from the attempt that got
// furthest into the file.
//
// Write/WriteFile emit headerless "time,value" lines that Parse reads back
// exactly.
package series
