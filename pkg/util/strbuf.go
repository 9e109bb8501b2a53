// Package util provides small text helpers shared by the dump engine and its driver.
package util

import "strings"

// StrBuf accumulates a single output line.
type StrBuf struct {
	builder strings.Builder
}

// NewStrBuf creates an empty StrBuf with room for size bytes.
func NewStrBuf(size int) *StrBuf {
	sb := &StrBuf{}
	sb.builder.Grow(size)
	return sb
}

// Write appends the given string to the buffer.
func (sb *StrBuf) Write(s string) {
	sb.builder.WriteString(s)
}

// PutByte appends a single byte.
func (sb *StrBuf) PutByte(c byte) {
	sb.builder.WriteByte(c)
}

// Pad appends n copies of c. Nothing is written when n <= 0.
func (sb *StrBuf) Pad(c byte, n int) {
	for ; n > 0; n-- {
		sb.builder.WriteByte(c)
	}
}

func (sb *StrBuf) Len() int {
	return sb.builder.Len()
}

// String returns the accumulated string.
func (sb *StrBuf) String() string {
	return sb.builder.String()
}

// Take returns the accumulated string and leaves the buffer empty. The returned
// string is never aliased by later writes.
func (sb *StrBuf) Take() string {
	s := sb.builder.String()
	sb.builder.Reset()
	return s
}
