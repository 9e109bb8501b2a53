// Package hexdump renders file content as fixed-width offset/hex/ASCII lines.
//
// A dump reads the input one block at a time (16 bytes, or 32 when wide), formats
// each block into a line, collapses runs of identical blocks into a single boundary
// line preceded by an elision marker, and optionally restricts the output to the
// first N lines, the last T lines, or both.
//
//	0000  48 65 6C 6C 6F 2C 20 57  6F 72 6C 64 21 0A        |Hello, World!.  |
//
// The engine is strictly sequential. Output goes to a LineWriter one line per call
// and problems are reported to a Reporter; nothing is written to process-wide
// handles.
package hexdump
