package hexdump

import "strings"

// OffsetWidth returns the number of hex digits used for offset fields. The width
// depends on the larger of offset and fileSize so that it stays constant for a
// whole dump when the size is known up front.
func OffsetWidth(offset, fileSize int64) int {
	m := max(offset, fileSize)
	switch {
	case m >= 1<<32:
		return 16
	case m >= 1<<16:
		return 8
	}
	return 4
}

// Marker returns the elision marker for an offset field of the given width.
func Marker(width int) string {
	return strings.Repeat("*", width)
}

// markerFor returns the marker matching the offset field of an already formatted line.
func markerFor(line string) string {
	w := strings.IndexByte(line, ' ')
	if w <= 0 {
		w = 4
	}
	return Marker(w)
}
